package model

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionMode string

const (
	SubmissionModeHTMLCSSJS    SubmissionMode = "HTML_CSS_JS"
	SubmissionModeReact        SubmissionMode = "REACT"
	SubmissionModeExternalLink SubmissionMode = "EXTERNAL_LINK"
	SubmissionModeGithub       SubmissionMode = "GITHUB"
	SubmissionModeSandbox      SubmissionMode = "SANDBOX"
)

type AttachmentModel struct {
	AttachmentID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attachment_id" json:"attachment_id"`
	AttachmentTitle          string         `gorm:"type:varchar(200);not null;column:attachment_title" json:"attachment_title"`
	AttachmentClassID        *uuid.UUID     `gorm:"type:uuid;index;column:attachment_class_id" json:"attachment_class_id,omitempty"`
	AttachmentCourseID       *uuid.UUID     `gorm:"type:uuid;index;column:attachment_course_id" json:"attachment_course_id,omitempty"`
	AttachmentDueDate        *time.Time     `gorm:"type:timestamptz;column:attachment_due_date" json:"attachment_due_date,omitempty"`
	AttachmentMaxSubmissions *int           `gorm:"column:attachment_max_submissions" json:"attachment_max_submissions,omitempty"`
	AttachmentSubmissionMode SubmissionMode `gorm:"type:varchar(24);not null;default:'HTML_CSS_JS';column:attachment_submission_mode" json:"attachment_submission_mode"`
	AttachmentCreatedBy      *string        `gorm:"type:varchar(64);column:attachment_created_by" json:"attachment_created_by,omitempty"`

	AttachmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attachment_created_at" json:"attachment_created_at"`
}

func (AttachmentModel) TableName() string { return "attachments" }
