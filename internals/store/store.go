// Package store is the persistence boundary of the grading core. Services only
// talk to Store; gormstore backs it with Postgres and memstore keeps everything
// in process memory for tests and local demos.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	eventModel "tutly_backend/internals/features/grading/events/model"
	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	attachmentModel "tutly_backend/internals/features/learning/attachments/model"
	attendanceModel "tutly_backend/internals/features/learning/attendance/model"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// SubmissionFilter mempersempit ListSubmissionOwners. Field nil = tidak difilter.
type SubmissionFilter struct {
	OrganizationID *uuid.UUID
	CourseID       *uuid.UUID
	AttachmentID   *uuid.UUID
	MentorUsername *string
	Username       *string
	CreatedBefore  *time.Time

	Limit  int
	Offset int
}

// EnrollmentRow: enrollment + profil student (join users).
type EnrollmentRow struct {
	EnrolledUserID uuid.UUID  `gorm:"column:enrolled_user_id"`
	Username       string     `gorm:"column:enrolled_user_username"`
	CourseID       *uuid.UUID `gorm:"column:enrolled_user_course_id"`
	MentorUsername *string    `gorm:"column:enrolled_user_mentor_username"`
	Name           string     `gorm:"column:user_name"`
}

// SubmissionPatch: nil = kolom tidak diubah.
type SubmissionPatch struct {
	Data            []byte
	Link            *string
	OverallFeedback *string
}

type Store interface {
	CreateUser(ctx context.Context, u *accountModel.UserModel) error
	GetUserByUsername(ctx context.Context, username string) (*accountModel.UserModel, error)

	CreateCourse(ctx context.Context, c *courseModel.CourseModel) error
	GetCourse(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error)
	CreateClass(ctx context.Context, c *courseModel.ClassModel) error
	GetClass(ctx context.Context, id uuid.UUID) (*courseModel.ClassModel, error)
	CountClasses(ctx context.Context) (int64, error)

	CreateEnrollment(ctx context.Context, e *enrollmentModel.EnrolledUserModel) error
	GetEnrollment(ctx context.Context, id uuid.UUID) (*enrollmentModel.EnrolledUserModel, error)
	UpdateEnrollmentMentor(ctx context.Context, id uuid.UUID, mentor *string) error
	DeleteEnrollment(ctx context.Context, id uuid.UUID) error
	ListEnrollmentsByUsername(ctx context.Context, username string) ([]enrollmentModel.EnrolledUserModel, error)
	// ListCourseStudents: enrollment course tsb milik user ber-role STUDENT di organisasi orgID.
	ListCourseStudents(ctx context.Context, courseID, orgID uuid.UUID) ([]EnrollmentRow, error)

	CreateAttachment(ctx context.Context, a *attachmentModel.AttachmentModel) error
	GetAttachment(ctx context.Context, id uuid.UUID) (*attachmentModel.AttachmentModel, error)

	CreateSubmission(ctx context.Context, s *submissionModel.SubmissionModel) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error)
	GetSubmissionOwner(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionOwnerRow, error)
	UpdateSubmission(ctx context.Context, id uuid.UUID, patch SubmissionPatch) error
	// DeleteSubmission menghapus submission beserta point-nya dalam satu transaksi.
	DeleteSubmission(ctx context.Context, id uuid.UUID) error
	CountSubmissions(ctx context.Context, enrolledUserID, attachmentID uuid.UUID) (int64, error)
	// ListSubmissionOwners mengembalikan baris terurut submission_created_at ASC dan total (sebelum limit).
	ListSubmissionOwners(ctx context.Context, f SubmissionFilter) ([]submissionModel.SubmissionOwnerRow, int64, error)

	// UpsertPoint menulis skor per (submission, category). Feedback hanya ditimpa bila p.PointFeedback != nil.
	UpsertPoint(ctx context.Context, p *pointModel.PointModel) error
	ListPointsBySubmissions(ctx context.Context, submissionIDs []uuid.UUID) ([]pointModel.PointModel, error)
	ListPointOwners(ctx context.Context) ([]pointModel.PointOwnerRow, error)

	UpsertAttendance(ctx context.Context, rows []attendanceModel.AttendanceModel) error
	ListAttendanceByUsername(ctx context.Context, username string) ([]attendanceModel.AttendanceModel, error)
	CountAttendedByUsername(ctx context.Context) (map[string]int, error)

	CreateGradingEvent(ctx context.Context, e *eventModel.GradingEventModel) error
	DeleteGradingEventsBefore(ctx context.Context, before time.Time) (int64, error)
}
