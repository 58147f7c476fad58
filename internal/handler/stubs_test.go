package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/middleware"
	"github.com/skillbridge/mobile-gateway/internal/session"
)

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Details map[string]string      `json:"details"`
}

var (
	studentSession = session.Session{ID: "sess-s", UserID: "student-1", Role: "student", Token: "upstream-s"}
	teacherSession = session.Session{ID: "sess-t", UserID: "teacher-1", Role: "teacher", Token: "upstream-t"}
)

// newAppAs builds an app whose /api/v1 group is authenticated as current.
func newAppAs(current *session.Session) (*fiber.App, fiber.Router) {
	app := fiber.New()
	group := app.Group("/api/v1", func(c *fiber.Ctx) error {
		if current != nil {
			middleware.WithSession(c, *current)
		}
		return c.Next()
	})
	return app, group
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp, payload
}

type stubAuthService struct {
	response  dto.LoginResponse
	err       error
	loggedOut []string
	lastLogin dto.LoginRequest
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	s.lastLogin = req
	return s.response, s.err
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return s.err
}

type stubBoardService struct {
	response dto.AssignmentBoardResponse
	err      error
	deleted  []string
	lastRole string
}

func (s *stubBoardService) Board(_ context.Context, sess session.Session) (dto.AssignmentBoardResponse, error) {
	s.lastRole = sess.Role
	return s.response, s.err
}

func (s *stubBoardService) Delete(_ context.Context, _ session.Session, assignmentID string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, assignmentID)
	return nil
}

type stubGradingService struct {
	response dto.SubmissionResponse
	err      error
	calls    int
}

func (s *stubGradingService) Grade(_ context.Context, _ session.Session, _ string, _ dto.GradeRequest) (dto.SubmissionResponse, error) {
	s.calls++
	return s.response, s.err
}

type stubFeedService struct {
	response dto.ActivityFeedResponse
	lastReq  dto.ActivityFeedRequest
}

func (s *stubFeedService) List(_ context.Context, _ session.Session, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error) {
	s.lastReq = req
	return s.response, nil
}

type stubChatService struct {
	history  []dto.ChatMessageResponse
	sent     dto.ChatMessageResponse
	err      error
	lastSend dto.ChatSendRequest
}

func (s *stubChatService) History(_ context.Context, _ session.Session, _ dto.ChatHistoryQuery) ([]dto.ChatMessageResponse, error) {
	return s.history, s.err
}

func (s *stubChatService) Send(_ context.Context, _ session.Session, payload dto.ChatSendRequest) (dto.ChatMessageResponse, error) {
	s.lastSend = payload
	return s.sent, s.err
}

type stubTeamService struct {
	teams      []dto.TeamResponse
	attendance dto.AttendanceSummary
	err        error
}

func (s *stubTeamService) List(_ context.Context, _ session.Session) ([]dto.TeamResponse, error) {
	return s.teams, s.err
}

func (s *stubTeamService) Attendance(_ context.Context, _ session.Session, _ string) (dto.AttendanceSummary, error) {
	return s.attendance, s.err
}
