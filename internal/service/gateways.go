package service

import (
	"context"

	"github.com/skillbridge/mobile-gateway/internal/models"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

// The interfaces below are the slices of the platform client each service needs.
// *platform.Client satisfies all of them.

// AuthGateway exchanges credentials for a platform token.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (platform.LoginResult, error)
}

// AssignmentGateway reads and mutates assignments.
type AssignmentGateway interface {
	AssignmentSnapshot(ctx context.Context, token, role string) (models.AssignmentSnapshot, error)
	DeleteAssignment(ctx context.Context, token, assignmentID string) error
}

// GradingGateway grades submissions.
type GradingGateway interface {
	GradeSubmission(ctx context.Context, token, submissionID string, input platform.GradeInput) (models.Submission, error)
}

// TeamGateway reads classes and attendance.
type TeamGateway interface {
	Teams(ctx context.Context, token string) ([]models.Team, error)
	Attendance(ctx context.Context, token, teamID string) ([]models.AttendanceRecord, error)
}

// FeedGateway reads the activity feed.
type FeedGateway interface {
	Feed(ctx context.Context, token string, page, pageSize int) (models.ActivityPage, error)
}

// ChatGateway reads and posts class chat messages.
type ChatGateway interface {
	Messages(ctx context.Context, token, teamID string, limit int) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, token, teamID, content string) (models.ChatMessage, error)
}

// SnapshotStore caches raw assignment snapshots.
type SnapshotStore interface {
	Get(ctx context.Context, userID, role string) (models.AssignmentSnapshot, int64, bool)
	Set(ctx context.Context, userID, role string, generation int64, snapshot models.AssignmentSnapshot)
	Invalidate(ctx context.Context) error
}
