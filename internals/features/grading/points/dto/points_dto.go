package dto

import (
	"time"

	"github.com/google/uuid"

	model "tutly_backend/internals/features/grading/points/model"
	"tutly_backend/internals/features/grading/scoring"
)

// POST /api/g/submissions/:id/points
type GradeRequest struct {
	Points []PointItem `json:"points" validate:"required,min=1,dive"`
}

type PointItem struct {
	Category string  `json:"category" validate:"required,oneof=RESPOSIVENESS STYLING OTHER"`
	Score    *int    `json:"score" validate:"required"`
	Feedback *string `json:"feedback" validate:"omitempty,max=2000"`
}

type PointResponse struct {
	PointID      uuid.UUID  `json:"point_id"`
	Category     string     `json:"category"`
	Score        int        `json:"score"`
	Feedback     *string    `json:"feedback,omitempty"`
	SubmissionID *uuid.UUID `json:"submission_id,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromModel(m model.PointModel) PointResponse {
	return PointResponse{
		PointID:      m.PointID,
		Category:     string(m.PointCategory),
		Score:        m.PointScore,
		Feedback:     m.PointFeedback,
		SubmissionID: m.PointSubmissionID,
		UpdatedAt:    m.PointUpdatedAt,
	}
}

func FromModels(rows []model.PointModel) []PointResponse {
	out := make([]PointResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

type ScoreResponse struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	scoring.Score
}
