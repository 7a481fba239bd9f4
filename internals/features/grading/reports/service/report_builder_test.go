package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pointModel "tutly_backend/internals/features/grading/points/model"
	dto "tutly_backend/internals/features/grading/reports/dto"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	"tutly_backend/internals/store"
)

func strPtr(s string) *string { return &s }

func enrollment(username, name, mentor string) store.EnrollmentRow {
	row := store.EnrollmentRow{EnrolledUserID: uuid.New(), Username: username, Name: name}
	if mentor != "" {
		row.MentorUsername = strPtr(mentor)
	}
	return row
}

func submission(username, mentor string, attachment uuid.UUID) submissionModel.SubmissionOwnerRow {
	row := submissionModel.SubmissionOwnerRow{SubmissionID: uuid.New(), AttachmentID: attachment, Username: username}
	if mentor != "" {
		row.MentorUsername = strPtr(mentor)
	}
	return row
}

func pointFor(sub submissionModel.SubmissionOwnerRow, score int) pointModel.PointOwnerRow {
	id := sub.SubmissionID
	return pointModel.PointOwnerRow{PointID: uuid.New(), Score: score, SubmissionID: &id, Username: strPtr(sub.Username)}
}

func names(rows []dto.ReportRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestBuildSortsMentorThenScoreThenName(t *testing.T) {
	att := uuid.New()
	subs := []submissionModel.SubmissionOwnerRow{
		submission("zed", "m1", att),
		submission("amy", "m1", att),
		submission("bea", "m1", att),
		submission("cal", "m0", att),
	}
	rows := Build(Facts{
		Enrollments: []store.EnrollmentRow{
			enrollment("zed", "Zed", "m1"),
			enrollment("amy", "amy", "m1"),
			enrollment("bea", "Bea", "m1"),
			enrollment("cal", "Cal", "m0"),
		},
		Submissions: subs,
		Points: []pointModel.PointOwnerRow{
			pointFor(subs[0], 10),
			pointFor(subs[1], 10),
			pointFor(subs[2], 30),
			pointFor(subs[3], 1),
		},
	})

	// m0 before m1 even with a lower score; equal scores ordered by name (case-insensitive).
	assert.Equal(t, []string{"Cal", "Bea", "amy", "Zed"}, names(rows))
}

func TestBuildNilMentorSortsFirst(t *testing.T) {
	rows := Build(Facts{
		Enrollments: []store.EnrollmentRow{
			enrollment("a", "A", "m1"),
			enrollment("b", "B", ""),
		},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].MentorUsername)
	assert.Equal(t, "B", rows[0].Name)
}

func TestBuildCountsAndAttendance(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	s1 := submission("amy", "m1", a1)
	s2 := submission("amy", "m1", a1)
	s3 := submission("amy", "m1", a2)

	rows := Build(Facts{
		Enrollments:  []store.EnrollmentRow{enrollment("amy", "Amy", "m1"), enrollment("bob", "Bob", "m1"), enrollment("cat", "Cat", "m1")},
		Submissions:  []submissionModel.SubmissionOwnerRow{s1, s2, s3},
		Points:       []pointModel.PointOwnerRow{pointFor(s1, 4), pointFor(s1, 6), pointFor(s3, 5)},
		Attended:     map[string]int{"amy": 3, "bob": 0, "cat": 1},
		TotalClasses: 3,
	})

	byUser := map[string]dto.ReportRow{}
	for _, r := range rows {
		byUser[r.Username] = r
	}
	amy := byUser["amy"]
	assert.Equal(t, 3, amy.SubmissionCount)
	assert.Equal(t, 2, amy.AssignmentCount)
	assert.Equal(t, 15, amy.Score)
	assert.Equal(t, 2, amy.SubmissionEvaluated)
	assert.Equal(t, "100.00", amy.Attendance)
	assert.Equal(t, "0.00", byUser["bob"].Attendance)
	assert.Equal(t, "33.33", byUser["cat"].Attendance)
}

func TestAttendancePercent(t *testing.T) {
	assert.Equal(t, "0.00", AttendancePercent(0, 10))
	assert.Equal(t, "0.00", AttendancePercent(4, 0))
	assert.Equal(t, "100.00", AttendancePercent(10, 10))
	assert.Equal(t, "66.67", AttendancePercent(2, 3))
}

// Facts dirakit manual: kedua store tidak pernah menghasilkan point ber-Username tanpa
// submission, jadi ini menguji guard defensif di userScore.
func TestBuildToleratesPerUserFault(t *testing.T) {
	att := uuid.New()
	good := submission("amy", "m1", att)
	broken := submission("bob", "m1", att)

	rows := Build(Facts{
		Enrollments: []store.EnrollmentRow{enrollment("amy", "Amy", "m1"), enrollment("bob", "Bob", "m1")},
		Submissions: []submissionModel.SubmissionOwnerRow{good, broken},
		Points: []pointModel.PointOwnerRow{
			pointFor(good, 8),
			pointFor(broken, 5),
			{PointID: uuid.New(), Score: 7, Username: strPtr("bob")},
		},
		Attended:     map[string]int{"bob": 1},
		TotalClasses: 2,
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "amy", rows[0].Username)
	assert.Equal(t, 8, rows[0].Score)

	bob := rows[1]
	assert.Equal(t, "bob", bob.Username)
	assert.Zero(t, bob.Score)
	assert.Zero(t, bob.SubmissionEvaluated)
	assert.Equal(t, 1, bob.SubmissionCount)
	assert.Equal(t, "50.00", bob.Attendance)
}

func TestBuildMentorFilter(t *testing.T) {
	att := uuid.New()
	rows := Build(Facts{
		Enrollments: []store.EnrollmentRow{
			enrollment("amy", "Amy", "m1"),
			enrollment("bob", "Bob", "m2"),
		},
		Submissions: []submissionModel.SubmissionOwnerRow{
			submission("amy", "m1", att),
			submission("bob", "m2", att),
		},
		MentorUsername: "m1",
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "amy", rows[0].Username)
	assert.Equal(t, 1, rows[0].SubmissionCount)
}

func TestBuildIgnoresOrphanPoints(t *testing.T) {
	rows := Build(Facts{
		Enrollments: []store.EnrollmentRow{enrollment("amy", "Amy", "m1")},
		Points:      []pointModel.PointOwnerRow{{PointID: uuid.New(), Score: 9}},
	})
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Score)
}
