package dto

import (
	"time"

	"github.com/google/uuid"

	model "tutly_backend/internals/features/learning/attachments/model"
)

type CreateAttachmentRequest struct {
	Title          string     `json:"title" validate:"required,max=200"`
	ClassID        *uuid.UUID `json:"class_id"`
	CourseID       *uuid.UUID `json:"course_id"`
	DueDate        *time.Time `json:"due_date"`
	MaxSubmissions *int       `json:"max_submissions" validate:"omitempty,min=1"`
	SubmissionMode string     `json:"submission_mode" validate:"omitempty,oneof=HTML_CSS_JS REACT EXTERNAL_LINK GITHUB SANDBOX"`
}

type AttachmentResponse struct {
	AttachmentID   uuid.UUID  `json:"attachment_id"`
	Title          string     `json:"title"`
	ClassID        *uuid.UUID `json:"class_id,omitempty"`
	CourseID       *uuid.UUID `json:"course_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	MaxSubmissions *int       `json:"max_submissions,omitempty"`
	SubmissionMode string     `json:"submission_mode"`
	CreatedBy      *string    `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromModel(m *model.AttachmentModel) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID:   m.AttachmentID,
		Title:          m.AttachmentTitle,
		ClassID:        m.AttachmentClassID,
		CourseID:       m.AttachmentCourseID,
		DueDate:        m.AttachmentDueDate,
		MaxSubmissions: m.AttachmentMaxSubmissions,
		SubmissionMode: string(m.AttachmentSubmissionMode),
		CreatedBy:      m.AttachmentCreatedBy,
		CreatedAt:      m.AttachmentCreatedAt,
	}
}
