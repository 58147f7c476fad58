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
	"go.opentelemetry.io/otel/trace"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

const defaultChatHistoryLimit = 50

// ChatService reads and posts class chat messages.
type ChatService interface {
	History(ctx context.Context, sess session.Session, query dto.ChatHistoryQuery) ([]dto.ChatMessageResponse, error)
	Send(ctx context.Context, sess session.Session, payload dto.ChatSendRequest) (dto.ChatMessageResponse, error)
}

type chatService struct {
	platform  ChatGateway
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	tracer    trace.Tracer
	logger    zerolog.Logger
}

// NewChatService creates the chat service.
func NewChatService(gateway ChatGateway, validate *validator.Validate, logger zerolog.Logger) ChatService {
	return &chatService{
		platform:  gateway,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		tracer:    otel.Tracer("github.com/skillbridge/mobile-gateway/internal/service/chat"),
		logger:    logger.With().Str("component", "chat_service").Logger(),
	}
}

func (s *chatService) History(ctx context.Context, sess session.Session, query dto.ChatHistoryQuery) ([]dto.ChatMessageResponse, error) {
	query.TeamID = strings.TrimSpace(query.TeamID)
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit == 0 {
		limit = defaultChatHistoryLimit
	}

	messages, err := s.platform.Messages(ctx, sess.Token, query.TeamID, limit)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	return dto.NewChatMessageResponseSlice(messages, sess.UserID), nil
}

func (s *chatService) Send(ctx context.Context, sess session.Session, payload dto.ChatSendRequest) (dto.ChatMessageResponse, error) {
	payload.TeamID = strings.TrimSpace(payload.TeamID)
	if err := s.validator.Struct(payload); err != nil {
		return dto.ChatMessageResponse{}, err
	}

	clean := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if clean == "" {
		return dto.ChatMessageResponse{}, ErrEmptyMessage
	}

	ctx, span := s.tracer.Start(ctx, "chat.send", trace.WithAttributes(
		attribute.String("chat.team_id", payload.TeamID),
		attribute.String("chat.sender_id", sess.UserID),
	))
	defer span.End()

	message, err := s.platform.SendMessage(ctx, sess.Token, payload.TeamID, clean)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send_failed")
		if errors.Is(err, platform.ErrNotFound) {
			return dto.ChatMessageResponse{}, ErrTeamNotFound
		}
		return dto.ChatMessageResponse{}, err
	}

	s.logger.Debug().Str("team_id", payload.TeamID).Str("message_id", message.ID).Msg("chat message sent")

	return dto.NewChatMessageResponse(message, sess.UserID), nil
}
