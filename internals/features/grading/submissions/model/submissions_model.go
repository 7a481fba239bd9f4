package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubmissionModel struct {
	SubmissionID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:submission_id" json:"submission_id"`
	SubmissionEnrolledUserID  uuid.UUID      `gorm:"type:uuid;not null;index;column:submission_enrolled_user_id" json:"submission_enrolled_user_id"`
	SubmissionAttachmentID    uuid.UUID      `gorm:"type:uuid;not null;index;column:submission_attachment_id" json:"submission_attachment_id"`
	SubmissionData            datatypes.JSON `gorm:"type:jsonb;column:submission_data" json:"submission_data,omitempty"`
	SubmissionLink            *string        `gorm:"type:text;column:submission_link" json:"submission_link,omitempty"`
	SubmissionOverallFeedback *string        `gorm:"type:text;column:submission_overall_feedback" json:"submission_overall_feedback,omitempty"`

	// Di-set saat create, tidak dihitung ulang saat update.
	SubmissionEditableTill time.Time `gorm:"type:timestamptz;not null;column:submission_editable_till" json:"submission_editable_till"`

	SubmissionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();index;column:submission_created_at" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:submission_updated_at" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string { return "submissions" }

// Editable: owner masih boleh edit pada waktu now.
func (s SubmissionModel) Editable(now time.Time) bool {
	return now.Before(s.SubmissionEditableTill)
}

// SubmissionOwnerRow: submission + owner enrollment (hasil join), dipakai scoring/report/leaderboard.
type SubmissionOwnerRow struct {
	SubmissionID   uuid.UUID  `gorm:"column:submission_id"`
	AttachmentID   uuid.UUID  `gorm:"column:submission_attachment_id"`
	EnrolledUserID uuid.UUID  `gorm:"column:enrolled_user_id"`
	CourseID       *uuid.UUID `gorm:"column:enrolled_user_course_id"`
	Username       string     `gorm:"column:enrolled_user_username"`
	MentorUsername *string    `gorm:"column:enrolled_user_mentor_username"`
	Name           string     `gorm:"column:user_name"`
	Image          *string    `gorm:"column:user_image"`
	OrganizationID uuid.UUID  `gorm:"column:user_organization_id"`
	CreatedAt      time.Time  `gorm:"column:submission_created_at"`
}
