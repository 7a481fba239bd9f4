package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrolledUserModel: keanggotaan student di course, opsional dengan mentor.
// Triple (username, course_id, mentor_username) unik.
type EnrolledUserModel struct {
	EnrolledUserID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrolled_user_id" json:"enrolled_user_id"`
	EnrolledUserUsername       string     `gorm:"type:varchar(64);not null;uniqueIndex:uq_enrolled_user_triple;column:enrolled_user_username" json:"enrolled_user_username"`
	EnrolledUserCourseID       *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_enrolled_user_triple;index;column:enrolled_user_course_id" json:"enrolled_user_course_id,omitempty"`
	EnrolledUserMentorUsername *string    `gorm:"type:varchar(64);uniqueIndex:uq_enrolled_user_triple;index;column:enrolled_user_mentor_username" json:"enrolled_user_mentor_username,omitempty"`

	EnrolledUserStartDate time.Time  `gorm:"type:timestamptz;not null;default:now();column:enrolled_user_start_date" json:"enrolled_user_start_date"`
	EnrolledUserEndDate   *time.Time `gorm:"type:timestamptz;column:enrolled_user_end_date" json:"enrolled_user_end_date,omitempty"`
}

func (EnrolledUserModel) TableName() string { return "enrolled_users" }

// MentorUsername mengembalikan "" bila belum ada mentor.
func (e EnrolledUserModel) MentorUsername() string {
	if e.EnrolledUserMentorUsername == nil {
		return ""
	}
	return *e.EnrolledUserMentorUsername
}

// ActiveAt: true bila t berada di dalam window start/end.
func (e EnrolledUserModel) ActiveAt(t time.Time) bool {
	if t.Before(e.EnrolledUserStartDate) {
		return false
	}
	return e.EnrolledUserEndDate == nil || t.Before(*e.EnrolledUserEndDate)
}
