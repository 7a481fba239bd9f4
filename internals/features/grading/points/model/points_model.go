package model

import (
	"time"

	"github.com/google/uuid"
)

// Category sesuai enum di sisi client; ejaan RESPOSIVENESS dipertahankan.
type Category string

const (
	CategoryResponsiveness Category = "RESPOSIVENESS"
	CategoryStyling        Category = "STYLING"
	CategoryOther          Category = "OTHER"
)

var Categories = []Category{CategoryResponsiveness, CategoryStyling, CategoryOther}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// PointModel: paling banyak satu baris per (submission_id, category).
type PointModel struct {
	PointID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:point_id" json:"point_id"`
	PointCategory     Category   `gorm:"type:varchar(24);not null;uniqueIndex:uq_point_submission_category;column:point_category" json:"point_category"`
	PointScore        int        `gorm:"not null;default:0;column:point_score" json:"point_score"`
	PointFeedback     *string    `gorm:"type:text;column:point_feedback" json:"point_feedback,omitempty"`
	PointSubmissionID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_point_submission_category;column:point_submission_id" json:"point_submission_id,omitempty"`

	PointCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:point_created_at" json:"point_created_at"`
	PointUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:point_updated_at" json:"point_updated_at"`
}

func (PointModel) TableName() string { return "points" }

// PointOwnerRow: point + username pemilik submission (LEFT JOIN, bisa NULL).
type PointOwnerRow struct {
	PointID      uuid.UUID  `gorm:"column:point_id"`
	Score        int        `gorm:"column:point_score"`
	SubmissionID *uuid.UUID `gorm:"column:point_submission_id"`
	Username     *string    `gorm:"column:enrolled_user_username"`
}
