package model

import (
	"time"

	"github.com/google/uuid"
)

type CourseModel struct {
	CourseID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_id" json:"course_id"`
	CourseTitle          string    `gorm:"type:varchar(160);not null;column:course_title" json:"course_title"`
	CourseOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:course_organization_id" json:"course_organization_id"`
	CourseCreatedBy      *string   `gorm:"type:varchar(64);column:course_created_by" json:"course_created_by,omitempty"`
	CourseIsPublished    bool      `gorm:"not null;default:false;column:course_is_published" json:"course_is_published"`

	CourseCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:course_created_at" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:course_updated_at" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

// ClassModel adalah satu sesi kelas di dalam course; dipakai untuk persentase kehadiran.
type ClassModel struct {
	ClassID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassCourseID *uuid.UUID `gorm:"type:uuid;index;column:class_course_id" json:"class_course_id,omitempty"`
	ClassTitle    string     `gorm:"type:varchar(160);not null;column:class_title" json:"class_title"`

	ClassCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:class_created_at" json:"class_created_at"`
}

func (ClassModel) TableName() string { return "classes" }
