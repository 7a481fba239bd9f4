package seeds

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"tutly_backend/internals/constants"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
	"tutly_backend/internals/store"
)

type UserSeed struct {
	ID             uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Email          *string   `json:"email"`
	Image          *string   `json:"image"`
	Role           string    `json:"role"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

type CourseSeed struct {
	ID             uuid.UUID `json:"course_id"`
	Title          string    `json:"title"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedBy      *string   `json:"created_by"`
}

type ClassSeed struct {
	ID       uuid.UUID `json:"class_id"`
	CourseID uuid.UUID `json:"course_id"`
	Title    string    `json:"title"`
}

type EnrollmentSeed struct {
	Username       string     `json:"username"`
	CourseID       uuid.UUID  `json:"course_id"`
	MentorUsername *string    `json:"mentor_username"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

func seedUsers(ctx context.Context, st store.Store, raw []byte) (int, error) {
	rows, err := decode[UserSeed](raw)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		if !constants.IsKnownRole(r.Role) {
			log.Printf("❌ [SEED] user %s: role %q tidak dikenal", r.Username, r.Role)
			continue
		}
		u := &accountModel.UserModel{
			UserID:             r.ID,
			UserUsername:       r.Username,
			UserName:           r.Name,
			UserEmail:          r.Email,
			UserImage:          r.Image,
			UserRole:           r.Role,
			UserOrganizationID: r.OrganizationID,
			UserIsActive:       true,
		}
		err := st.CreateUser(ctx, u)
		switch {
		case errors.Is(err, store.ErrConflict):
			log.Printf("ℹ️ [SEED] user '%s' sudah ada, dilewati.", r.Username)
		case err != nil:
			return n, errors.Wrapf(err, "user %s", r.Username)
		default:
			n++
		}
	}
	return n, nil
}

func seedCourses(ctx context.Context, st store.Store, raw []byte) (int, error) {
	rows, err := decode[CourseSeed](raw)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		if _, err := st.GetCourse(ctx, r.ID); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return n, err
		}
		c := &courseModel.CourseModel{
			CourseID:             r.ID,
			CourseTitle:          r.Title,
			CourseOrganizationID: r.OrganizationID,
			CourseCreatedBy:      r.CreatedBy,
			CourseIsPublished:    true,
		}
		if err := st.CreateCourse(ctx, c); err != nil {
			return n, errors.Wrapf(err, "course %s", r.Title)
		}
		n++
	}
	return n, nil
}

func seedClasses(ctx context.Context, st store.Store, raw []byte) (int, error) {
	rows, err := decode[ClassSeed](raw)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		if _, err := st.GetClass(ctx, r.ID); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return n, err
		}
		courseID := r.CourseID
		c := &courseModel.ClassModel{ClassID: r.ID, ClassCourseID: &courseID, ClassTitle: r.Title}
		if err := st.CreateClass(ctx, c); err != nil {
			return n, errors.Wrapf(err, "class %s", r.Title)
		}
		n++
	}
	return n, nil
}

func seedEnrollments(ctx context.Context, st store.Store, raw []byte) (int, error) {
	rows, err := decode[EnrollmentSeed](raw)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		courseID := r.CourseID
		e := &enrollmentModel.EnrolledUserModel{
			EnrolledUserUsername:       r.Username,
			EnrolledUserCourseID:       &courseID,
			EnrolledUserMentorUsername: r.MentorUsername,
			EnrolledUserEndDate:        r.EndDate,
		}
		if r.StartDate != nil {
			e.EnrolledUserStartDate = *r.StartDate
		}
		err := st.CreateEnrollment(ctx, e)
		switch {
		case errors.Is(err, store.ErrConflict):
			log.Printf("ℹ️ [SEED] enrollment %s sudah ada, dilewati.", r.Username)
		case err != nil:
			return n, errors.Wrapf(err, "enrollment %s", r.Username)
		default:
			n++
		}
	}
	return n, nil
}
