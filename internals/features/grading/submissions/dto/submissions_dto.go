package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "tutly_backend/internals/features/grading/submissions/model"
)

// POST /api/u/submissions
type CreateSubmissionRequest struct {
	AttachmentID   uuid.UUID       `json:"attachment_id" validate:"required"`
	CourseID       *uuid.UUID      `json:"course_id" validate:"omitempty"`
	Data           json.RawMessage `json:"data"`
	SubmissionLink *string         `json:"submission_link" validate:"omitempty,url,max=2048"`
}

// PATCH /api/u/submissions/:id
type EditSubmissionRequest struct {
	Data           json.RawMessage `json:"data"`
	SubmissionLink *string         `json:"submission_link" validate:"omitempty,url,max=2048"`
}

// PATCH /api/g/submissions/:id/feedback
type FeedbackRequest struct {
	OverallFeedback string `json:"overall_feedback" validate:"required,max=5000"`
}

type SubmissionResponse struct {
	SubmissionID    uuid.UUID      `json:"submission_id"`
	EnrolledUserID  uuid.UUID      `json:"enrolled_user_id"`
	AttachmentID    uuid.UUID      `json:"attachment_id"`
	Data            datatypes.JSON `json:"data,omitempty"`
	SubmissionLink  *string        `json:"submission_link,omitempty"`
	OverallFeedback *string        `json:"overall_feedback,omitempty"`
	EditableTill    time.Time      `json:"editable_till"`
	Editable        bool           `json:"editable"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Username       string  `json:"username,omitempty"`
	Name           string  `json:"name,omitempty"`
	MentorUsername *string `json:"mentor_username,omitempty"`
}

func FromModel(m *model.SubmissionModel, now time.Time) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:    m.SubmissionID,
		EnrolledUserID:  m.SubmissionEnrolledUserID,
		AttachmentID:    m.SubmissionAttachmentID,
		Data:            m.SubmissionData,
		SubmissionLink:  m.SubmissionLink,
		OverallFeedback: m.SubmissionOverallFeedback,
		EditableTill:    m.SubmissionEditableTill,
		Editable:        m.Editable(now),
		CreatedAt:       m.SubmissionCreatedAt,
		UpdatedAt:       m.SubmissionUpdatedAt,
	}
}

func WithOwner(r SubmissionResponse, o *model.SubmissionOwnerRow) SubmissionResponse {
	if o != nil {
		r.Username = o.Username
		r.Name = o.Name
		r.MentorUsername = o.MentorUsername
	}
	return r
}

type SubmissionListItem struct {
	SubmissionID   uuid.UUID `json:"submission_id"`
	AttachmentID   uuid.UUID `json:"attachment_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Image          *string   `json:"image,omitempty"`
	MentorUsername *string   `json:"mentor_username,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromOwnerRows(rows []model.SubmissionOwnerRow) []SubmissionListItem {
	out := make([]SubmissionListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, SubmissionListItem{
			SubmissionID:   r.SubmissionID,
			AttachmentID:   r.AttachmentID,
			Username:       r.Username,
			Name:           r.Name,
			Image:          r.Image,
			MentorUsername: r.MentorUsername,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}
