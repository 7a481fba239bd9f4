package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/constants"
	pointModel "tutly_backend/internals/features/grading/points/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
	"tutly_backend/internals/store/storetest"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func setup(t *testing.T) (*Service, *storetest.Fixture, *clock) {
	fx := storetest.New(t)
	fx.User("mentor1", "Mentor One", constants.RoleMentor)
	fx.User("mentor2", "Mentor Two", constants.RoleMentor)
	fx.User("inst", "Instructor", constants.RoleInstructor)
	clk := &clock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	svc := New(fx.Store, 15*time.Minute)
	svc.Now = clk.Now
	return svc, fx, clk
}

func TestCreateSetsEditableTill(t *testing.T) {
	svc, fx, clk := setup(t)
	fx.Student("alice", "Alice", "mentor1")
	att := fx.Attachment("Portfolio", nil)

	sub, err := svc.Create(context.Background(), fx.Caller("alice"), CreateInput{
		AttachmentID: att.AttachmentID,
		Data:         []byte(`{"index.html":"<p>x</p>"}`),
	})
	require.NoError(t, err)
	assert.True(t, clk.now.Add(15*time.Minute).Equal(sub.SubmissionEditableTill))
	assert.True(t, clk.now.Equal(sub.SubmissionCreatedAt))
}

func TestCreateEnforcesCapForStudents(t *testing.T) {
	svc, fx, _ := setup(t)
	ctx := context.Background()
	fx.Student("alice", "Alice", "mentor1")
	att := fx.Attachment("Portfolio", storetest.IntPtr(2))

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, fx.Caller("alice"), CreateInput{AttachmentID: att.AttachmentID})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, fx.Caller("alice"), CreateInput{AttachmentID: att.AttachmentID})
	assert.ErrorIs(t, err, helper.ErrSubmissionLimit)
}

func TestCreateCapOverrideForMentor(t *testing.T) {
	svc, fx, _ := setup(t)
	ctx := context.Background()
	fx.Enroll("mentor1", fx.Course.CourseID, "")
	att := fx.Attachment("Portfolio", storetest.IntPtr(1))

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, fx.Caller("mentor1"), CreateInput{AttachmentID: att.AttachmentID})
		require.NoError(t, err)
	}
}

func TestCreateRequiresEnrollment(t *testing.T) {
	svc, fx, _ := setup(t)
	fx.User("stranger", "Stranger", constants.RoleStudent)
	att := fx.Attachment("Portfolio", nil)

	_, err := svc.Create(context.Background(), fx.Caller("stranger"), CreateInput{AttachmentID: att.AttachmentID})
	assert.ErrorIs(t, err, helper.ErrNotEnrolled)
}

func TestEditWindow(t *testing.T) {
	svc, fx, clk := setup(t)
	ctx := context.Background()
	fx.Student("alice", "Alice", "mentor1")
	fx.Student("bob", "Bob", "mentor1")
	att := fx.Attachment("Portfolio", nil)

	sub, err := svc.Create(ctx, fx.Caller("alice"), CreateInput{AttachmentID: att.AttachmentID, Data: []byte(`{"v":1}`)})
	require.NoError(t, err)
	editableTill := sub.SubmissionEditableTill

	clk.now = clk.now.Add(10 * time.Minute)
	link := "https://github.com/alice/portfolio"
	edited, err := svc.Edit(ctx, fx.Caller("alice"), sub.SubmissionID, EditInput{Data: []byte(`{"v":2}`), Link: &link})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(edited.SubmissionData))
	assert.True(t, editableTill.Equal(edited.SubmissionEditableTill))

	_, err = svc.Edit(ctx, fx.Caller("bob"), sub.SubmissionID, EditInput{Data: []byte(`{"v":3}`)})
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)

	clk.now = editableTill
	_, err = svc.Edit(ctx, fx.Caller("alice"), sub.SubmissionID, EditInput{Data: []byte(`{"v":3}`)})
	assert.ErrorIs(t, err, helper.ErrEditWindowClosed)
}

func TestListByAttachmentScopesMentor(t *testing.T) {
	svc, fx, _ := setup(t)
	ctx := context.Background()
	alice := fx.Student("alice", "Alice", "mentor1")
	bob := fx.Student("bob", "Bob", "mentor2")
	att := fx.Attachment("Portfolio", nil)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fx.Submission(alice, att, base)
	fx.Submission(bob, att, base.Add(time.Hour))
	fx.Submission(alice, att, base.Add(2*time.Hour))

	rows, total, err := svc.ListByAttachment(ctx, fx.Caller("mentor1"), att.AttachmentID, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, r := range rows {
		assert.Equal(t, "alice", r.Username)
	}

	rows, total, err = svc.ListByAttachment(ctx, fx.Caller("inst"), att.AttachmentID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 2)

	_, _, err = svc.ListByAttachment(ctx, fx.Caller("alice"), att.AttachmentID, 20, 0)
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)
}

func TestDeleteRemovesPoints(t *testing.T) {
	svc, fx, _ := setup(t)
	ctx := context.Background()
	alice := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(alice, fx.Attachment("Portfolio", nil), time.Now())
	fx.Point(sub, pointModel.CategoryStyling, 5)

	assert.ErrorIs(t, svc.Delete(ctx, fx.Caller("alice"), sub.SubmissionID), helperAuth.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, fx.Caller("mentor2"), sub.SubmissionID), helperAuth.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, fx.Caller("mentor1"), sub.SubmissionID))
	_, err := fx.Store.GetSubmission(ctx, sub.SubmissionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	points, err := fx.Store.ListPointOwners(ctx)
	require.NoError(t, err)
	assert.Empty(t, points)

	assert.ErrorIs(t, svc.Delete(ctx, fx.Caller("mentor1"), sub.SubmissionID), store.ErrNotFound)
}

func TestSetFeedbackAndGet(t *testing.T) {
	svc, fx, _ := setup(t)
	ctx := context.Background()
	alice := fx.Student("alice", "Alice", "mentor1")
	sub := fx.Submission(alice, fx.Attachment("Portfolio", nil), time.Now())

	updated, err := svc.SetFeedback(ctx, fx.Caller("inst"), sub.SubmissionID, "great layout")
	require.NoError(t, err)
	require.NotNil(t, updated.SubmissionOverallFeedback)
	assert.Equal(t, "great layout", *updated.SubmissionOverallFeedback)

	d, err := svc.Get(ctx, fx.Caller("alice"), sub.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", d.Owner.Username)

	_, err = svc.SetFeedback(ctx, fx.Caller("alice"), sub.SubmissionID, "self praise")
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)
}
