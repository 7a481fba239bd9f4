package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttendanceModel unik per (username, class_id).
type AttendanceModel struct {
	AttendanceID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`
	AttendanceUsername         string         `gorm:"type:varchar(64);not null;uniqueIndex:uq_attendance_user_class;column:attendance_username" json:"attendance_username"`
	AttendanceClassID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_user_class;column:attendance_class_id" json:"attendance_class_id"`
	AttendanceAttended         bool           `gorm:"not null;default:false;column:attendance_attended" json:"attendance_attended"`
	AttendanceAttendedDuration *int           `gorm:"column:attendance_attended_duration" json:"attendance_attended_duration,omitempty"`
	AttendanceData             datatypes.JSON `gorm:"type:jsonb;column:attendance_data" json:"attendance_data,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_created_at" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:attendance_updated_at" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendance" }
