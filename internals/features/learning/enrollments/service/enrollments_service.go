package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tutly_backend/internals/constants"
	model "tutly_backend/internals/features/learning/enrollments/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

type Service struct {
	Store store.Store
}

func New(st store.Store) *Service {
	return &Service{Store: st}
}

type CreateInput struct {
	Username       string
	CourseID       uuid.UUID
	MentorUsername *string
	StartDate      *time.Time
	EndDate        *time.Time
}

// courseInOrg memastikan course ada dan milik organisasi caller.
func (s *Service) courseInOrg(ctx context.Context, caller helperAuth.Caller, courseID uuid.UUID) error {
	course, err := s.Store.GetCourse(ctx, courseID)
	if err != nil {
		return errors.Wrap(err, "load course")
	}
	if course.CourseOrganizationID != caller.OrganizationID {
		return helperAuth.ErrForbidden
	}
	return nil
}

func (s *Service) userInOrg(ctx context.Context, caller helperAuth.Caller, username string, roles []string) error {
	u, err := s.Store.GetUserByUsername(ctx, username)
	if err != nil {
		return errors.Wrapf(err, "load user %s", username)
	}
	if u.UserOrganizationID != caller.OrganizationID {
		return errors.Wrapf(helper.ErrInvalidInput, "user %s bukan anggota organisasi", username)
	}
	for _, r := range roles {
		if u.UserRole == r {
			return nil
		}
	}
	return errors.Wrapf(helper.ErrInvalidInput, "role %s tidak boleh untuk %s", u.UserRole, username)
}

// Create: satu student hanya boleh punya satu mentor per course.
func (s *Service) Create(ctx context.Context, caller helperAuth.Caller, in CreateInput) (*model.EnrolledUserModel, error) {
	if err := helperAuth.Check(helperAuth.OpEnrollmentManage, caller); err != nil {
		return nil, err
	}
	if in.StartDate != nil && in.EndDate != nil && !in.EndDate.After(*in.StartDate) {
		return nil, errors.Wrap(helper.ErrInvalidInput, "end_date harus setelah start_date")
	}
	if err := s.courseInOrg(ctx, caller, in.CourseID); err != nil {
		return nil, err
	}
	if err := s.userInOrg(ctx, caller, in.Username, constants.AllRoles); err != nil {
		return nil, err
	}
	if in.MentorUsername != nil {
		if err := s.userInOrg(ctx, caller, *in.MentorUsername, constants.GraderRoles); err != nil {
			return nil, err
		}
	}

	existing, err := s.Store.ListEnrollmentsByUsername(ctx, in.Username)
	if err != nil {
		return nil, errors.Wrap(err, "list enrollments")
	}
	// satu enrollment per (student, course); mentor NULL di Postgres tidak pernah bentrok di unique index
	for _, e := range existing {
		if e.EnrolledUserCourseID != nil && *e.EnrolledUserCourseID == in.CourseID {
			return nil, errors.Wrapf(store.ErrConflict, "%s sudah terdaftar di course ini", in.Username)
		}
	}

	courseID := in.CourseID
	e := &model.EnrolledUserModel{
		EnrolledUserUsername:       in.Username,
		EnrolledUserCourseID:       &courseID,
		EnrolledUserMentorUsername: in.MentorUsername,
		EnrolledUserEndDate:        in.EndDate,
	}
	if in.StartDate != nil {
		e.EnrolledUserStartDate = *in.StartDate
	}
	if err := s.Store.CreateEnrollment(ctx, e); err != nil {
		return nil, errors.Wrap(err, "create enrollment")
	}
	return e, nil
}

func (s *Service) loadManaged(ctx context.Context, caller helperAuth.Caller, id uuid.UUID) (*model.EnrolledUserModel, error) {
	if err := helperAuth.Check(helperAuth.OpEnrollmentManage, caller); err != nil {
		return nil, err
	}
	e, err := s.Store.GetEnrollment(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load enrollment")
	}
	if e.EnrolledUserCourseID != nil {
		if err := s.courseInOrg(ctx, caller, *e.EnrolledUserCourseID); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// UpdateMentor mengganti mentor di tempat. nil = lepas mentor.
func (s *Service) UpdateMentor(ctx context.Context, caller helperAuth.Caller, id uuid.UUID, mentor *string) (*model.EnrolledUserModel, error) {
	if _, err := s.loadManaged(ctx, caller, id); err != nil {
		return nil, err
	}
	if mentor != nil {
		if err := s.userInOrg(ctx, caller, *mentor, constants.GraderRoles); err != nil {
			return nil, err
		}
	}
	if err := s.Store.UpdateEnrollmentMentor(ctx, id, mentor); err != nil {
		return nil, errors.Wrap(err, "update mentor")
	}
	return s.Store.GetEnrollment(ctx, id)
}

func (s *Service) Delete(ctx context.Context, caller helperAuth.Caller, id uuid.UUID) error {
	if _, err := s.loadManaged(ctx, caller, id); err != nil {
		return err
	}
	if err := s.Store.DeleteEnrollment(ctx, id); err != nil {
		return errors.Wrap(err, "delete enrollment")
	}
	return nil
}

func (s *Service) ListMine(ctx context.Context, caller helperAuth.Caller) ([]model.EnrolledUserModel, error) {
	if err := helperAuth.Check(helperAuth.OpEnrollmentRead, caller); err != nil {
		return nil, err
	}
	rows, err := s.Store.ListEnrollmentsByUsername(ctx, caller.Username)
	if err != nil {
		return nil, errors.Wrap(err, "list enrollments")
	}
	return rows, nil
}
