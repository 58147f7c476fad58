package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skillbridge/mobile-gateway/internal/cache"
	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/events"
	"github.com/skillbridge/mobile-gateway/internal/models"
	"github.com/skillbridge/mobile-gateway/internal/observability"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

// AssignmentBoardService builds the upcoming/overdue/completed lists shown on the
// assignment screens.
type AssignmentBoardService interface {
	Board(ctx context.Context, sess session.Session) (dto.AssignmentBoardResponse, error)
	Delete(ctx context.Context, sess session.Session, assignmentID string) error
}

type assignmentBoardService struct {
	platform   AssignmentGateway
	snapshots  SnapshotStore
	classifier status.Classifier
	notifier   changeNotifier
	logger     zerolog.Logger
}

// NewAssignmentBoardService constructs the board service. snapshots and publisher may be nil.
func NewAssignmentBoardService(gateway AssignmentGateway, snapshots SnapshotStore, classifier status.Classifier, publisher events.Publisher, logger zerolog.Logger) AssignmentBoardService {
	logger = logger.With().Str("component", "assignment_board_service").Logger()
	return &assignmentBoardService{
		platform:   gateway,
		snapshots:  snapshots,
		classifier: classifier,
		notifier:   changeNotifier{snapshots: snapshots, publisher: publisher, logger: logger},
		logger:     logger,
	}
}

func (s *assignmentBoardService) Board(ctx context.Context, sess session.Session) (dto.AssignmentBoardResponse, error) {
	tracer := otel.Tracer("github.com/skillbridge/mobile-gateway/internal/service/assignment_board")
	role := sess.StatusRole()
	ctx, span := tracer.Start(ctx, "assignment.board")
	span.SetAttributes(
		attribute.String("board.user_id", sess.UserID),
		attribute.String("board.role", string(role)),
	)
	defer span.End()

	snapshot, cacheHit, err := s.snapshot(ctx, sess, role)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot_failed")
		return dto.AssignmentBoardResponse{}, err
	}

	result := s.classifier.Partition(role, snapshot)

	response := dto.AssignmentBoardResponse{
		Role:        string(role),
		GeneratedAt: result.EvaluatedAt.UTC(),
		Upcoming:    make([]dto.AssignmentBoardItem, 0, len(result.Upcoming)),
		Overdue:     make([]dto.AssignmentBoardItem, 0, len(result.Overdue)),
		Completed:   make([]dto.AssignmentBoardItem, 0, len(result.Completed)),
		Warnings:    make([]dto.BoardWarning, 0, len(result.Errors)),
		CacheHit:    cacheHit,
	}

	for _, itemErr := range result.Errors {
		response.Warnings = append(response.Warnings, s.warn(role, itemErr.AssignmentID, itemErr.Err, "assignment left out of board"))
	}

	render := func(category status.Category, assignments []models.Assignment) []dto.AssignmentBoardItem {
		items := make([]dto.AssignmentBoardItem, 0, len(assignments))
		for _, assignment := range assignments {
			item, labelErr := s.renderItem(role, category, assignment, snapshot.SubmissionsByID)
			if labelErr != nil {
				response.Warnings = append(response.Warnings, s.warn(role, assignment.ID, labelErr, "assignment label unavailable"))
			}
			items = append(items, item)
		}
		return items
	}

	response.Upcoming = render(status.CategoryUpcoming, result.Upcoming)
	response.Overdue = render(status.CategoryOverdue, result.Overdue)
	response.Completed = render(status.CategoryCompleted, result.Completed)

	span.SetAttributes(
		attribute.Int("board.upcoming", len(response.Upcoming)),
		attribute.Int("board.overdue", len(response.Overdue)),
		attribute.Int("board.completed", len(response.Completed)),
		attribute.Int("board.warnings", len(response.Warnings)),
		attribute.Bool("board.cache_hit", cacheHit),
	)

	return response, nil
}

func (s *assignmentBoardService) Delete(ctx context.Context, sess session.Session, assignmentID string) error {
	tracer := otel.Tracer("github.com/skillbridge/mobile-gateway/internal/service/assignment_board")
	ctx, span := tracer.Start(ctx, "assignment.delete")
	span.SetAttributes(
		attribute.String("assignment.id", assignmentID),
		attribute.String("assignment.actor_id", sess.UserID),
	)
	defer span.End()

	if !sess.IsTeacher() {
		span.SetStatus(codes.Error, "forbidden")
		return ErrForbidden
	}

	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" {
		return ErrAssignmentNotFound
	}

	if err := s.platform.DeleteAssignment(ctx, sess.Token, assignmentID); err != nil {
		span.RecordError(err)
		if errors.Is(err, platform.ErrNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return ErrAssignmentNotFound
		}
		span.SetStatus(codes.Error, "delete_failed")
		return err
	}

	s.notifier.announce(ctx, events.AssignmentDeleted, assignmentID, sess.UserID)
	s.logger.Info().Str("assignment_id", assignmentID).Str("actor_id", sess.UserID).Msg("assignment deleted")

	return nil
}

func (s *assignmentBoardService) snapshot(ctx context.Context, sess session.Session, role status.Role) (models.AssignmentSnapshot, bool, error) {
	generation := cache.NoGeneration
	if s.snapshots != nil {
		cached, observed, ok := s.snapshots.Get(ctx, sess.UserID, string(role))
		if ok {
			return cached, true, nil
		}
		generation = observed
	}

	snapshot, err := s.platform.AssignmentSnapshot(ctx, sess.Token, string(role))
	if err != nil {
		return models.AssignmentSnapshot{}, false, err
	}

	if s.snapshots != nil {
		s.snapshots.Set(ctx, sess.UserID, string(role), generation, snapshot)
	}
	return snapshot, false, nil
}

func (s *assignmentBoardService) renderItem(role status.Role, category status.Category, assignment models.Assignment, submissionsByID map[string]models.Submission) (dto.AssignmentBoardItem, error) {
	item := dto.NewAssignmentBoardItem(assignment)
	item.Category = string(category)

	var submission *models.Submission
	if role == status.RoleStudent {
		if found, ok := status.FindSubmission(assignment.ID, submissionsByID); ok {
			submission = &found
			item.SubmissionID = found.ID
			item.SubmittedAt = found.SubmittedAt
			item.Score = found.Score
			item.Feedback = found.Feedback
			if late, err := status.IsLate(assignment, found); err == nil {
				item.Late = late
			}
		}
	}

	label, err := status.LabelOrPlaceholder(category, assignment, submission, s.classifier.Location())
	item.Label = label
	return item, err
}

func (s *assignmentBoardService) warn(role status.Role, assignmentID string, err error, msg string) dto.BoardWarning {
	observability.ClassificationFailures().WithLabelValues(string(role)).Inc()
	s.logger.Warn().Err(err).Str("assignment_id", assignmentID).Str("role", string(role)).Msg(msg)
	return dto.BoardWarning{AssignmentID: assignmentID, Error: err.Error()}
}
