// Package storetest seeds a memstore with a small organization for service and
// handler tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"tutly_backend/internals/constants"
	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	attachmentModel "tutly_backend/internals/features/learning/attachments/model"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store/memstore"
)

type Fixture struct {
	t   *testing.T
	ctx context.Context

	Store  *memstore.Store
	OrgID  uuid.UUID
	Course *courseModel.CourseModel
	Users  map[string]*accountModel.UserModel
}

// New: satu organisasi, satu course, belum ada user.
func New(t *testing.T) *Fixture {
	t.Helper()
	st := memstore.New()
	f := &Fixture{
		t:     t,
		ctx:   context.Background(),
		Store: st,
		OrgID: uuid.New(),
		Users: map[string]*accountModel.UserModel{},
	}
	f.Course = &courseModel.CourseModel{CourseTitle: "Web Dev 101", CourseOrganizationID: f.OrgID}
	require.NoError(t, st.CreateCourse(f.ctx, f.Course))
	return f
}

func (f *Fixture) User(username, name, role string) *accountModel.UserModel {
	f.t.Helper()
	u := &accountModel.UserModel{
		UserUsername:       username,
		UserName:           name,
		UserRole:           role,
		UserOrganizationID: f.OrgID,
		UserIsActive:       true,
	}
	require.NoError(f.t, f.Store.CreateUser(f.ctx, u))
	f.Users[username] = u
	return u
}

func (f *Fixture) Caller(username string) helperAuth.Caller {
	u, ok := f.Users[username]
	require.True(f.t, ok, "unknown user %s", username)
	return helperAuth.Caller{
		UserID:         u.UserID,
		Username:       u.UserUsername,
		Role:           u.UserRole,
		OrganizationID: u.UserOrganizationID,
	}
}

// Student membuat user STUDENT dan enrollment di course fixture.
func (f *Fixture) Student(username, name string, mentor string) *enrollmentModel.EnrolledUserModel {
	f.t.Helper()
	f.User(username, name, constants.RoleStudent)
	return f.Enroll(username, f.Course.CourseID, mentor)
}

func (f *Fixture) Enroll(username string, courseID uuid.UUID, mentor string) *enrollmentModel.EnrolledUserModel {
	f.t.Helper()
	e := &enrollmentModel.EnrolledUserModel{
		EnrolledUserUsername: username,
		EnrolledUserCourseID: &courseID,
	}
	if mentor != "" {
		e.EnrolledUserMentorUsername = &mentor
	}
	require.NoError(f.t, f.Store.CreateEnrollment(f.ctx, e))
	return e
}

func (f *Fixture) Attachment(title string, maxSubmissions *int) *attachmentModel.AttachmentModel {
	f.t.Helper()
	a := &attachmentModel.AttachmentModel{
		AttachmentTitle:          title,
		AttachmentCourseID:       &f.Course.CourseID,
		AttachmentMaxSubmissions: maxSubmissions,
		AttachmentSubmissionMode: attachmentModel.SubmissionModeHTMLCSSJS,
	}
	require.NoError(f.t, f.Store.CreateAttachment(f.ctx, a))
	return a
}

func (f *Fixture) Submission(e *enrollmentModel.EnrolledUserModel, a *attachmentModel.AttachmentModel, at time.Time) *submissionModel.SubmissionModel {
	f.t.Helper()
	s := &submissionModel.SubmissionModel{
		SubmissionEnrolledUserID: e.EnrolledUserID,
		SubmissionAttachmentID:   a.AttachmentID,
		SubmissionData:           datatypes.JSON(`{"index.html":"<h1>hi</h1>"}`),
		SubmissionCreatedAt:      at,
		SubmissionEditableTill:   at.Add(15 * time.Minute),
	}
	require.NoError(f.t, f.Store.CreateSubmission(f.ctx, s))
	return s
}

func (f *Fixture) Point(sub *submissionModel.SubmissionModel, cat pointModel.Category, score int) {
	f.t.Helper()
	id := sub.SubmissionID
	require.NoError(f.t, f.Store.UpsertPoint(f.ctx, &pointModel.PointModel{
		PointSubmissionID: &id,
		PointCategory:     cat,
		PointScore:        score,
	}))
}

func (f *Fixture) Class(title string) *courseModel.ClassModel {
	f.t.Helper()
	c := &courseModel.ClassModel{ClassCourseID: &f.Course.CourseID, ClassTitle: title}
	require.NoError(f.t, f.Store.CreateClass(f.ctx, c))
	return c
}

func IntPtr(v int) *int       { return &v }
func StrPtr(v string) *string { return &v }
