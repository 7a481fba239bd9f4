package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/constants"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
	"tutly_backend/internals/store/storetest"
)

func setup(t *testing.T) (*Service, *storetest.Fixture) {
	fx := storetest.New(t)
	fx.User("inst", "Instructor", constants.RoleInstructor)
	fx.User("mentor1", "Mentor One", constants.RoleMentor)
	fx.User("mentor2", "Mentor Two", constants.RoleMentor)
	fx.User("alice", "Alice", constants.RoleStudent)
	return New(fx.Store), fx
}

func TestCreate_AssignsMentor(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, fx.Caller("inst"), CreateInput{
		Username:       "alice",
		CourseID:       fx.Course.CourseID,
		MentorUsername: storetest.StrPtr("mentor1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mentor1", e.MentorUsername())
	assert.False(t, e.EnrolledUserStartDate.IsZero())

	mine, err := svc.ListMine(ctx, fx.Caller("alice"))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, e.EnrolledUserID, mine[0].EnrolledUserID)
}

func TestCreate_SecondMentorSameCourseRejected(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	in := CreateInput{Username: "alice", CourseID: fx.Course.CourseID, MentorUsername: storetest.StrPtr("mentor1")}

	_, err := svc.Create(ctx, fx.Caller("inst"), in)
	require.NoError(t, err)

	// triple yang sama
	_, err = svc.Create(ctx, fx.Caller("inst"), in)
	assert.True(t, errors.Is(err, store.ErrConflict))

	in.MentorUsername = storetest.StrPtr("mentor2")
	_, err = svc.Create(ctx, fx.Caller("inst"), in)
	assert.True(t, errors.Is(err, store.ErrConflict))
}

func TestCreate_NoMentorTwiceRejected(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	in := CreateInput{Username: "alice", CourseID: fx.Course.CourseID}

	_, err := svc.Create(ctx, fx.Caller("inst"), in)
	require.NoError(t, err)

	// ditolak di service, bukan mengandalkan unique index (NULL != NULL di Postgres)
	_, err = svc.Create(ctx, fx.Caller("inst"), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrConflict))
	assert.Contains(t, err.Error(), "sudah terdaftar di course ini")

	rows, err := fx.Store.ListEnrollmentsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	inst := fx.Caller("inst")

	_, err := svc.Create(ctx, fx.Caller("mentor1"), CreateInput{Username: "alice", CourseID: fx.Course.CourseID})
	assert.True(t, errors.Is(err, helperAuth.ErrForbidden))

	// mentor harus grader
	_, err = svc.Create(ctx, inst, CreateInput{Username: "alice", CourseID: fx.Course.CourseID, MentorUsername: storetest.StrPtr("alice")})
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))

	_, err = svc.Create(ctx, inst, CreateInput{Username: "ghost", CourseID: fx.Course.CourseID})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = svc.Create(ctx, inst, CreateInput{Username: "alice", CourseID: fx.Course.CourseID, StartDate: &start, EndDate: &end})
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))

	// course di organisasi lain
	other := &courseModel.CourseModel{CourseTitle: "Other", CourseOrganizationID: uuid.New()}
	require.NoError(t, fx.Store.CreateCourse(ctx, other))
	_, err = svc.Create(ctx, inst, CreateInput{Username: "alice", CourseID: other.CourseID})
	assert.True(t, errors.Is(err, helperAuth.ErrForbidden))
}

func TestUpdateMentorAndDelete(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	inst := fx.Caller("inst")

	e, err := svc.Create(ctx, inst, CreateInput{Username: "alice", CourseID: fx.Course.CourseID, MentorUsername: storetest.StrPtr("mentor1")})
	require.NoError(t, err)

	updated, err := svc.UpdateMentor(ctx, inst, e.EnrolledUserID, storetest.StrPtr("mentor2"))
	require.NoError(t, err)
	assert.Equal(t, "mentor2", updated.MentorUsername())

	updated, err = svc.UpdateMentor(ctx, inst, e.EnrolledUserID, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.EnrolledUserMentorUsername)

	require.NoError(t, svc.Delete(ctx, inst, e.EnrolledUserID))
	_, err = fx.Store.GetEnrollment(ctx, e.EnrolledUserID)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	err = svc.Delete(ctx, inst, e.EnrolledUserID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
