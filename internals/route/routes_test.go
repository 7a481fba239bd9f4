package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/configs"
	"tutly_backend/internals/constants"
	helper "tutly_backend/internals/helpers"
	authMiddleware "tutly_backend/internals/middlewares/auth"
	"tutly_backend/internals/store/storetest"
)

const testSecret = "test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func newApp(t *testing.T) (*fiber.App, *storetest.Fixture) {
	t.Helper()
	configs.JWTSecret = testSecret
	configs.AppLocation = time.UTC

	fx := storetest.New(t)
	fx.User("inst", "Ira", constants.RoleInstructor)
	fx.User("mentor1", "Mira", constants.RoleMentor)
	fx.Student("alice", "Alice", "mentor1")

	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	SetupRoutes(app, fx.Store, configs.Config{SubmissionEditWindow: 15 * time.Minute}, nil)
	return app, fx
}

func call(t *testing.T, app *fiber.App, fx *storetest.Fixture, as, method, path string, body any) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		tok, err := authMiddleware.IssueToken(testSecret, fx.Users[as], time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, sonic.Unmarshal(raw, &env))
	}
	return resp, env
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthGate(t *testing.T) {
	app, fx := newApp(t)

	resp, env := call(t, app, fx, "", http.MethodGet, "/api/u/enrollments/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)

	resp, _ = call(t, app, fx, "alice", http.MethodGet, "/api/u/enrollments/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// student tidak boleh masuk group grader / instructor
	resp, _ = call(t, app, fx, "alice", http.MethodGet, "/api/g/reports/"+fx.Course.CourseID.String(), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = call(t, app, fx, "mentor1", http.MethodPost, "/api/i/attachments", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitGradeReportFlow(t *testing.T) {
	app, fx := newApp(t)
	a := fx.Attachment("Landing page", storetest.IntPtr(1))

	resp, env := call(t, app, fx, "alice", http.MethodPost, "/api/u/submissions", map[string]any{
		"attachment_id": a.AttachmentID,
		"data":          map[string]string{"index.html": "<h1>hi</h1>"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	var sub struct {
		SubmissionID string `json:"submission_id"`
		Editable     bool   `json:"editable"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &sub))
	assert.True(t, sub.Editable)

	// cap = 1
	resp, env = call(t, app, fx, "alice", http.MethodPost, "/api/u/submissions", map[string]any{
		"attachment_id": a.AttachmentID,
		"data":          map[string]string{"index.html": "again"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, env.Message)

	resp, _ = call(t, app, fx, "alice", http.MethodPost, "/api/g/submissions/"+sub.SubmissionID+"/points",
		map[string]any{"points": []map[string]any{{"category": "STYLING", "score": 5}}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = call(t, app, fx, "mentor1", http.MethodPost, "/api/g/submissions/"+sub.SubmissionID+"/points",
		map[string]any{"points": []map[string]any{
			{"category": "STYLING", "score": 5},
			{"category": "RESPOSIVENESS", "score": 7, "feedback": "ok di mobile"},
		}})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = call(t, app, fx, "mentor1", http.MethodPost, "/api/g/submissions/"+sub.SubmissionID+"/points",
		map[string]any{"points": []map[string]any{{"category": "BONUS", "score": 1}}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	resp, env = call(t, app, fx, "alice", http.MethodGet, "/api/u/submissions/"+sub.SubmissionID+"/score", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var score struct {
		Total      int  `json:"total"`
		Graded     bool `json:"graded"`
		PointCount int  `json:"point_count"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &score))
	assert.Equal(t, 12, score.Total)
	assert.True(t, score.Graded)
	assert.Equal(t, 2, score.PointCount)

	resp, env = call(t, app, fx, "inst", http.MethodGet, "/api/g/reports/"+fx.Course.CourseID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var rows []struct {
		Username            string `json:"username"`
		Score               int    `json:"score"`
		SubmissionEvaluated int    `json:"submission_evaluated"`
		Attendance          string `json:"attendance"`
	}
	require.NoError(t, sonic.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, 12, rows[0].Score)
	assert.Equal(t, 1, rows[0].SubmissionEvaluated)
	assert.Equal(t, "0.00", rows[0].Attendance)

	req := httptest.NewRequest(http.MethodGet, "/api/g/reports/"+fx.Course.CourseID.String()+"/csv", nil)
	tok, err := authMiddleware.IssueToken(testSecret, fx.Users["inst"], time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	csvResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, csvResp.StatusCode)
	assert.Contains(t, csvResp.Header.Get("Content-Type"), "text/csv")
	raw, _ := io.ReadAll(csvResp.Body)
	assert.Contains(t, string(raw), "alice,Alice,1,1,12,1,0.00,mentor1")
}

func TestInstructorEnrollsAndMarksAttendance(t *testing.T) {
	app, fx := newApp(t)
	fx.User("bob", "Bob", constants.RoleStudent)
	class := fx.Class("Week 1")

	resp, env := call(t, app, fx, "inst", http.MethodPost, "/api/i/enrollments", map[string]any{
		"username":        "bob",
		"course_id":       fx.Course.CourseID,
		"mentor_username": "mentor1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	resp, _ = call(t, app, fx, "inst", http.MethodPost, "/api/i/enrollments", map[string]any{
		"username":        "bob",
		"course_id":       fx.Course.CourseID,
		"mentor_username": "inst",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = call(t, app, fx, "mentor1", http.MethodPost, "/api/g/attendance", map[string]any{
		"class_id": class.ClassID,
		"records":  []map[string]any{{"username": "bob", "attended": true, "attended_duration": 50}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = call(t, app, fx, "bob", http.MethodGet, "/api/u/attendance/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []map[string]any
	require.NoError(t, sonic.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0]["attendance_attended"])
}
