package service

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/events"
	"github.com/skillbridge/mobile-gateway/internal/models"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func floatPointer(v float64) *float64 {
	return &v
}

func stringPointer(v string) *string {
	return &v
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

// fakePlatform is an in-memory stand-in for the platform API.
type fakePlatform struct {
	mu sync.Mutex

	loginResult platform.LoginResult
	loginErr    error

	snapshot      models.AssignmentSnapshot
	snapshotErr   error
	snapshotCalls int
	lastToken     string
	lastRole      string
	deleted       []string
	deleteErr     error
	graded        map[string]platform.GradeInput
	gradeErr      error
	teams         []models.Team
	attendance    []models.AttendanceRecord
	attendanceErr error
	feed          models.ActivityPage
	feedCalls     int
	messages      []models.ChatMessage
	lastLimit     int
	sent          []string
	sendErr       error
}

func (f *fakePlatform) Login(ctx context.Context, email, password string) (platform.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakePlatform) AssignmentSnapshot(ctx context.Context, token, role string) (models.AssignmentSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshotCalls++
	f.lastToken = token
	f.lastRole = role
	return f.snapshot, f.snapshotErr
}

func (f *fakePlatform) DeleteAssignment(ctx context.Context, token, assignmentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, assignmentID)
	remaining := f.snapshot.Assignments[:0:0]
	for _, assignment := range f.snapshot.Assignments {
		if assignment.ID != assignmentID {
			remaining = append(remaining, assignment)
		}
	}
	f.snapshot.Assignments = remaining
	return nil
}

func (f *fakePlatform) GradeSubmission(ctx context.Context, token, submissionID string, input platform.GradeInput) (models.Submission, error) {
	if f.gradeErr != nil {
		return models.Submission{}, f.gradeErr
	}
	if f.graded == nil {
		f.graded = map[string]platform.GradeInput{}
	}
	f.graded[submissionID] = input
	feedback := input.Feedback
	return models.Submission{
		ID:          submissionID,
		SubmittedAt: "2025-04-20T10:00:00.000Z",
		Score:       floatPointer(input.Score),
		Feedback:    &feedback,
	}, nil
}

func (f *fakePlatform) Teams(ctx context.Context, token string) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakePlatform) Attendance(ctx context.Context, token, teamID string) ([]models.AttendanceRecord, error) {
	return f.attendance, f.attendanceErr
}

func (f *fakePlatform) Feed(ctx context.Context, token string, page, pageSize int) (models.ActivityPage, error) {
	f.feedCalls++
	return f.feed, nil
}

func (f *fakePlatform) Messages(ctx context.Context, token, teamID string, limit int) ([]models.ChatMessage, error) {
	f.lastLimit = limit
	return f.messages, nil
}

func (f *fakePlatform) SendMessage(ctx context.Context, token, teamID, content string) (models.ChatMessage, error) {
	if f.sendErr != nil {
		return models.ChatMessage{}, f.sendErr
	}
	f.sent = append(f.sent, content)
	return models.ChatMessage{ID: "msg-1", TeamID: teamID, SenderID: "teacher-1", Content: content}, nil
}

type publishedEvent struct {
	Type     events.Type
	EntityID string
	ActorID  string
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType events.Type, entityID, actorID string) error {
	p.events = append(p.events, publishedEvent{Type: eventType, EntityID: entityID, ActorID: actorID})
	return nil
}
