package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	eventModel "tutly_backend/internals/features/grading/events/model"
	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	attachmentModel "tutly_backend/internals/features/learning/attachments/model"
	attendanceModel "tutly_backend/internals/features/learning/attendance/model"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
	helper "tutly_backend/internals/helpers"
	"tutly_backend/internals/store"
)

type Store struct {
	DB *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case helper.IsUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrConflict
	default:
		return err
	}
}

/* =========================
   Users, courses, classes
========================= */

func (s *Store) CreateUser(ctx context.Context, u *accountModel.UserModel) error {
	return translate(s.DB.WithContext(ctx).Create(u).Error)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*accountModel.UserModel, error) {
	var u accountModel.UserModel
	if err := s.DB.WithContext(ctx).Where("user_username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateCourse(ctx context.Context, c *courseModel.CourseModel) error {
	return translate(s.DB.WithContext(ctx).Create(c).Error)
}

func (s *Store) GetCourse(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error) {
	var c courseModel.CourseModel
	if err := s.DB.WithContext(ctx).First(&c, "course_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CreateClass(ctx context.Context, c *courseModel.ClassModel) error {
	return translate(s.DB.WithContext(ctx).Create(c).Error)
}

func (s *Store) GetClass(ctx context.Context, id uuid.UUID) (*courseModel.ClassModel, error) {
	var c courseModel.ClassModel
	if err := s.DB.WithContext(ctx).First(&c, "class_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CountClasses(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&courseModel.ClassModel{}).Count(&n).Error
	return n, err
}

/* =========================
   Enrollments
========================= */

func (s *Store) CreateEnrollment(ctx context.Context, e *enrollmentModel.EnrolledUserModel) error {
	return translate(s.DB.WithContext(ctx).Create(e).Error)
}

func (s *Store) GetEnrollment(ctx context.Context, id uuid.UUID) (*enrollmentModel.EnrolledUserModel, error) {
	var e enrollmentModel.EnrolledUserModel
	if err := s.DB.WithContext(ctx).First(&e, "enrolled_user_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) UpdateEnrollmentMentor(ctx context.Context, id uuid.UUID, mentor *string) error {
	res := s.DB.WithContext(ctx).
		Model(&enrollmentModel.EnrolledUserModel{}).
		Where("enrolled_user_id = ?", id).
		Update("enrolled_user_mentor_username", mentor)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEnrollment(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&enrollmentModel.EnrolledUserModel{}, "enrolled_user_id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListEnrollmentsByUsername(ctx context.Context, username string) ([]enrollmentModel.EnrolledUserModel, error) {
	var out []enrollmentModel.EnrolledUserModel
	err := s.DB.WithContext(ctx).
		Where("enrolled_user_username = ?", username).
		Order("enrolled_user_start_date ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) ListCourseStudents(ctx context.Context, courseID, orgID uuid.UUID) ([]store.EnrollmentRow, error) {
	var rows []store.EnrollmentRow
	err := s.DB.WithContext(ctx).
		Table("enrolled_users AS e").
		Select(`e.enrolled_user_id, e.enrolled_user_username, e.enrolled_user_course_id,
		        e.enrolled_user_mentor_username, u.user_name`).
		Joins("JOIN users AS u ON u.user_username = e.enrolled_user_username").
		Where("e.enrolled_user_course_id = ?", courseID).
		Where("u.user_role = ? AND u.user_organization_id = ?", "STUDENT", orgID).
		Order("e.enrolled_user_start_date ASC").
		Scan(&rows).Error
	return rows, err
}

/* =========================
   Attachments
========================= */

func (s *Store) CreateAttachment(ctx context.Context, a *attachmentModel.AttachmentModel) error {
	return translate(s.DB.WithContext(ctx).Create(a).Error)
}

func (s *Store) GetAttachment(ctx context.Context, id uuid.UUID) (*attachmentModel.AttachmentModel, error) {
	var a attachmentModel.AttachmentModel
	if err := s.DB.WithContext(ctx).First(&a, "attachment_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

/* =========================
   Submissions
========================= */

func (s *Store) CreateSubmission(ctx context.Context, sub *submissionModel.SubmissionModel) error {
	return translate(s.DB.WithContext(ctx).Create(sub).Error)
}

func (s *Store) GetSubmission(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error) {
	var sub submissionModel.SubmissionModel
	if err := s.DB.WithContext(ctx).First(&sub, "submission_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func ownerQuery(db *gorm.DB) *gorm.DB {
	return db.Table("submissions AS s").
		Select(`s.submission_id, s.submission_attachment_id, s.submission_created_at,
		        e.enrolled_user_id, e.enrolled_user_course_id, e.enrolled_user_username,
		        e.enrolled_user_mentor_username, u.user_name, u.user_image, u.user_organization_id`).
		Joins("JOIN enrolled_users AS e ON e.enrolled_user_id = s.submission_enrolled_user_id").
		Joins("JOIN users AS u ON u.user_username = e.enrolled_user_username")
}

func (s *Store) GetSubmissionOwner(ctx context.Context, id uuid.UUID) (*submissionModel.SubmissionOwnerRow, error) {
	var rows []submissionModel.SubmissionOwnerRow
	if err := ownerQuery(s.DB.WithContext(ctx)).
		Where("s.submission_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

func (s *Store) UpdateSubmission(ctx context.Context, id uuid.UUID, patch store.SubmissionPatch) error {
	updates := map[string]any{"submission_updated_at": time.Now()}
	if patch.Data != nil {
		updates["submission_data"] = patch.Data
	}
	if patch.Link != nil {
		updates["submission_link"] = *patch.Link
	}
	if patch.OverallFeedback != nil {
		updates["submission_overall_feedback"] = *patch.OverallFeedback
	}
	res := s.DB.WithContext(ctx).
		Model(&submissionModel.SubmissionModel{}).
		Where("submission_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("point_submission_id = ?", id).Delete(&pointModel.PointModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&submissionModel.SubmissionModel{}, "submission_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *Store) CountSubmissions(ctx context.Context, enrolledUserID, attachmentID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&submissionModel.SubmissionModel{}).
		Where("submission_enrolled_user_id = ? AND submission_attachment_id = ?", enrolledUserID, attachmentID).
		Count(&n).Error
	return n, err
}

func applySubmissionFilter(q *gorm.DB, f store.SubmissionFilter) *gorm.DB {
	if f.OrganizationID != nil {
		q = q.Where("u.user_organization_id = ?", *f.OrganizationID)
	}
	if f.CourseID != nil {
		q = q.Where("e.enrolled_user_course_id = ?", *f.CourseID)
	}
	if f.AttachmentID != nil {
		q = q.Where("s.submission_attachment_id = ?", *f.AttachmentID)
	}
	if f.MentorUsername != nil {
		q = q.Where("e.enrolled_user_mentor_username = ?", *f.MentorUsername)
	}
	if f.Username != nil {
		q = q.Where("e.enrolled_user_username = ?", *f.Username)
	}
	if f.CreatedBefore != nil {
		q = q.Where("s.submission_created_at < ?", *f.CreatedBefore)
	}
	return q
}

func (s *Store) ListSubmissionOwners(ctx context.Context, f store.SubmissionFilter) ([]submissionModel.SubmissionOwnerRow, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := applySubmissionFilter(ownerQuery(db), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := applySubmissionFilter(ownerQuery(db), f).Order("s.submission_created_at ASC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var rows []submissionModel.SubmissionOwnerRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

/* =========================
   Points
========================= */

func (s *Store) UpsertPoint(ctx context.Context, p *pointModel.PointModel) error {
	now := time.Now()
	p.PointUpdatedAt = now
	if p.PointCreatedAt.IsZero() {
		p.PointCreatedAt = now
	}
	assign := []string{"point_score", "point_updated_at"}
	if p.PointFeedback != nil {
		assign = append(assign, "point_feedback")
	}
	err := s.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "point_submission_id"}, {Name: "point_category"}},
				DoUpdates: clause.AssignmentColumns(assign),
			},
			clause.Returning{},
		).
		Create(p).Error
	return translate(err)
}

func (s *Store) ListPointsBySubmissions(ctx context.Context, submissionIDs []uuid.UUID) ([]pointModel.PointModel, error) {
	if len(submissionIDs) == 0 {
		return nil, nil
	}
	var out []pointModel.PointModel
	err := s.DB.WithContext(ctx).
		Where("point_submission_id IN ?", submissionIDs).
		Order("point_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) ListPointOwners(ctx context.Context) ([]pointModel.PointOwnerRow, error) {
	var rows []pointModel.PointOwnerRow
	err := s.DB.WithContext(ctx).
		Table("points AS p").
		Select("p.point_id, p.point_score, p.point_submission_id, e.enrolled_user_username").
		Joins("LEFT JOIN submissions AS s ON s.submission_id = p.point_submission_id").
		Joins("LEFT JOIN enrolled_users AS e ON e.enrolled_user_id = s.submission_enrolled_user_id").
		Scan(&rows).Error
	return rows, err
}

/* =========================
   Attendance
========================= */

func (s *Store) UpsertAttendance(ctx context.Context, rows []attendanceModel.AttendanceModel) error {
	if len(rows) == 0 {
		return nil
	}
	now := time.Now()
	for i := range rows {
		rows[i].AttendanceUpdatedAt = now
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attendance_username"}, {Name: "attendance_class_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_attended",
				"attendance_attended_duration",
				"attendance_data",
				"attendance_updated_at",
			}),
		}).
		Create(&rows).Error
}

func (s *Store) ListAttendanceByUsername(ctx context.Context, username string) ([]attendanceModel.AttendanceModel, error) {
	var out []attendanceModel.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("attendance_username = ?", username).
		Order("attendance_created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *Store) CountAttendedByUsername(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Username string `gorm:"column:attendance_username"`
		Total    int    `gorm:"column:total"`
	}
	if err := s.DB.WithContext(ctx).
		Model(&attendanceModel.AttendanceModel{}).
		Select("attendance_username, COUNT(*) AS total").
		Where("attendance_attended = ?", true).
		Group("attendance_username").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Username] = r.Total
	}
	return out, nil
}

/* =========================
   Grading events
========================= */

func (s *Store) CreateGradingEvent(ctx context.Context, e *eventModel.GradingEventModel) error {
	return translate(s.DB.WithContext(ctx).Create(e).Error)
}

func (s *Store) DeleteGradingEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("grading_event_created_at < ?", before).
		Delete(&eventModel.GradingEventModel{})
	return res.RowsAffected, res.Error
}
