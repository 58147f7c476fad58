package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/events"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

// GradingService lets teachers score submissions.
type GradingService interface {
	Grade(ctx context.Context, sess session.Session, submissionID string, payload dto.GradeRequest) (dto.SubmissionResponse, error)
}

type gradingService struct {
	platform  GradingGateway
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	notifier  changeNotifier
	logger    zerolog.Logger
}

// NewGradingService constructs the grading service. snapshots and publisher may be nil.
func NewGradingService(gateway GradingGateway, snapshots SnapshotStore, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger) GradingService {
	logger = logger.With().Str("component", "grading_service").Logger()
	return &gradingService{
		platform:  gateway,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		notifier:  changeNotifier{snapshots: snapshots, publisher: publisher, logger: logger},
		logger:    logger,
	}
}

func (s *gradingService) Grade(ctx context.Context, sess session.Session, submissionID string, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/skillbridge/mobile-gateway/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.update")
	span.SetAttributes(
		attribute.String("grading.submission_id", submissionID),
		attribute.String("grading.actor_id", sess.UserID),
	)
	defer span.End()

	if !sess.IsTeacher() {
		span.SetStatus(codes.Error, "forbidden")
		return dto.SubmissionResponse{}, ErrForbidden
	}

	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	payload.Feedback = strings.TrimSpace(payload.Feedback)
	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	input := platform.GradeInput{
		Score:    *payload.Score,
		Feedback: strings.TrimSpace(s.sanitizer.Sanitize(payload.Feedback)),
	}

	submission, err := s.platform.GradeSubmission(ctx, sess.Token, submissionID, input)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, platform.ErrNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.SetStatus(codes.Error, "grading_failed")
		return dto.SubmissionResponse{}, err
	}

	s.notifier.announce(ctx, events.SubmissionGraded, submissionID, sess.UserID)
	s.logger.Info().Str("submission_id", submissionID).Float64("score", input.Score).Msg("submission graded")

	return dto.NewSubmissionResponse(submission), nil
}
