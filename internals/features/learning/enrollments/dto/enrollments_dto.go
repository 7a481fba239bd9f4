package dto

import (
	"time"

	"github.com/google/uuid"
)

// POST /api/i/enrollments
type CreateEnrollmentRequest struct {
	Username       string     `json:"username" validate:"required,max=64"`
	CourseID       uuid.UUID  `json:"course_id" validate:"required"`
	MentorUsername *string    `json:"mentor_username" validate:"omitempty,max=64"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

// PATCH /api/i/enrollments/:id/mentor (null = lepas mentor)
type UpdateMentorRequest struct {
	MentorUsername *string `json:"mentor_username" validate:"omitempty,max=64"`
}
