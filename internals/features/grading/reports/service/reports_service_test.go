package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/constants"
	pointModel "tutly_backend/internals/features/grading/points/model"
	attendanceModel "tutly_backend/internals/features/learning/attendance/model"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
	"tutly_backend/internals/store/storetest"
)

func seedCourse(t *testing.T) *storetest.Fixture {
	fx := storetest.New(t)
	ctx := context.Background()
	fx.User("mentor1", "Mentor One", constants.RoleMentor)
	fx.User("mentor2", "Mentor Two", constants.RoleMentor)
	fx.User("inst", "Instructor", constants.RoleInstructor)

	alice := fx.Student("alice", "Alice", "mentor1")
	bob := fx.Student("bob", "Bob", "mentor2")
	att := fx.Attachment("Portfolio", nil)
	s1 := fx.Submission(alice, att, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	s2 := fx.Submission(bob, att, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	fx.Point(s1, pointModel.CategoryStyling, 7)
	fx.Point(s2, pointModel.CategoryStyling, 9)

	c1 := fx.Class("Intro")
	fx.Class("Flexbox")
	require.NoError(t, fx.Store.UpsertAttendance(ctx, []attendanceModel.AttendanceModel{
		{AttendanceUsername: "alice", AttendanceClassID: c1.ClassID, AttendanceAttended: true},
	}))
	return fx
}

func TestGenerateInstructorSeesAll(t *testing.T) {
	fx := seedCourse(t)
	svc := New(fx.Store)

	rows, err := svc.Generate(context.Background(), fx.Caller("inst"), fx.Course.CourseID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, 7, rows[0].Score)
	assert.Equal(t, "50.00", rows[0].Attendance)
	assert.Equal(t, "bob", rows[1].Username)
	assert.Equal(t, "0.00", rows[1].Attendance)
}

func TestGenerateMentorSeesOwnMentees(t *testing.T) {
	fx := seedCourse(t)
	svc := New(fx.Store)

	rows, err := svc.Generate(context.Background(), fx.Caller("mentor2"), fx.Course.CourseID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bob", rows[0].Username)
	assert.Equal(t, 9, rows[0].Score)
}

func TestGenerateRejectsStudent(t *testing.T) {
	fx := seedCourse(t)
	svc := New(fx.Store)

	rows, err := svc.Generate(context.Background(), fx.Caller("alice"), fx.Course.CourseID)
	assert.ErrorIs(t, err, helperAuth.ErrForbidden)
	assert.Nil(t, rows)
}

func TestGenerateUnknownCourse(t *testing.T) {
	fx := seedCourse(t)
	svc := New(fx.Store)

	_, err := svc.Generate(context.Background(), fx.Caller("inst"), fx.OrgID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenerateCSV(t *testing.T) {
	fx := seedCourse(t)
	svc := New(fx.Store)

	out, err := svc.GenerateCSV(context.Background(), fx.Caller("inst"), fx.Course.CourseID)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "username,name,submission_count,assignment_count,score,submission_evaluated,attendance,mentor_username", lines[0])
	assert.Equal(t, "alice,Alice,1,1,7,1,50.00,mentor1", lines[1])
}
