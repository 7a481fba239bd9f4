package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/constants"
	eventService "tutly_backend/internals/features/grading/events/service"
	model "tutly_backend/internals/features/grading/points/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
	"tutly_backend/internals/store/storetest"
)

func setup(t *testing.T) (*Service, *storetest.Fixture) {
	fx := storetest.New(t)
	fx.User("mentor1", "Mentor One", constants.RoleMentor)
	fx.User("mentor2", "Mentor Two", constants.RoleMentor)
	fx.User("inst", "Instructor", constants.RoleInstructor)
	return New(fx.Store, eventService.New(fx.Store)), fx
}

func TestGradeIdempotentRegrade(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryStyling, Score: 4}})
	require.NoError(t, err)
	points, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryStyling, Score: 9}})
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.Equal(t, model.CategoryStyling, points[0].PointCategory)
	assert.Equal(t, 9, points[0].PointScore)
}

func TestGradeTwoCategoriesYieldTwoRows(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryResponsiveness, Score: 3}})
	require.NoError(t, err)
	points, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryStyling, Score: 5}})
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, model.CategoryResponsiveness, points[0].PointCategory)
	assert.Equal(t, model.CategoryStyling, points[1].PointCategory)
}

func TestGradeKeepsFeedbackWhenOmitted(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{
		{Category: model.CategoryOther, Score: 2, Feedback: storetest.StrPtr("needs alt text")},
	})
	require.NoError(t, err)
	points, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryOther, Score: 6}})
	require.NoError(t, err)

	require.Len(t, points, 1)
	require.NotNil(t, points[0].PointFeedback)
	assert.Equal(t, "needs alt text", *points[0].PointFeedback)
	assert.Equal(t, 6, points[0].PointScore)
}

func TestGradeEmitsOneEventPerCall(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("inst"), sub.SubmissionID, []PointInput{
		{Category: model.CategoryResponsiveness, Score: 3},
		{Category: model.CategoryStyling, Score: 4},
		{Category: model.CategoryOther, Score: 5},
	})
	require.NoError(t, err)

	events := fx.Store.GradingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, sub.SubmissionID, events[0].GradingEventSubmissionID)
	assert.Equal(t, "inst", events[0].GradingEventActorUsername)
	assert.JSONEq(t, `{"categories":["RESPOSIVENESS","STYLING","OTHER"],"total":12}`, string(events[0].GradingEventData))
}

func TestGradeRoleGating(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("alice"), sub.SubmissionID, []PointInput{{Category: model.CategoryStyling, Score: 10}})
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)

	_, err = svc.Grade(ctx, fx.Caller("mentor2"), sub.SubmissionID, []PointInput{{Category: model.CategoryStyling, Score: 10}})
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)

	points, err := fx.Store.ListPointOwners(ctx)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Empty(t, fx.Store.GradingEvents())
}

func TestGradeValidation(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	_, err := svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, nil)
	assert.ErrorIs(t, err, helper.ErrInvalidInput)

	_, err = svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: "SPEED", Score: 1}})
	assert.ErrorIs(t, err, helper.ErrInvalidInput)

	_, err = svc.Grade(ctx, fx.Caller("mentor1"), fx.Course.CourseID, []PointInput{{Category: model.CategoryOther, Score: 1}})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestScoreKeepsBothSignals(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())

	score, err := svc.Score(ctx, fx.Caller("alice"), sub.SubmissionID)
	require.NoError(t, err)
	assert.Zero(t, score.Total)
	assert.False(t, score.Graded)

	_, err = svc.Grade(ctx, fx.Caller("mentor1"), sub.SubmissionID, []PointInput{{Category: model.CategoryOther, Score: 0}})
	require.NoError(t, err)

	score, err = svc.Score(ctx, fx.Caller("alice"), sub.SubmissionID)
	require.NoError(t, err)
	assert.Zero(t, score.Total)
	assert.True(t, score.Graded)
	assert.Equal(t, 1, score.PointCount)
}

func TestListVisibility(t *testing.T) {
	svc, fx := setup(t)
	ctx := context.Background()
	e := fx.Student("alice", "Alice", "mentor1")
	fx.Student("bob", "Bob", "mentor2")
	sub := fx.Submission(e, fx.Attachment("Landing page", nil), time.Now())
	fx.Point(sub, model.CategoryStyling, 7)

	points, err := svc.List(ctx, fx.Caller("alice"), sub.SubmissionID)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	_, err = svc.List(ctx, fx.Caller("bob"), sub.SubmissionID)
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)

	_, err = svc.List(ctx, fx.Caller("mentor2"), sub.SubmissionID)
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)
}
