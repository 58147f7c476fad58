package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

// AuthService manages the login lifecycle.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	platform  AuthGateway
	sessions  session.Store
	issuer    *session.Issuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(gateway AuthGateway, sessions session.Store, issuer *session.Issuer, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		platform:  gateway,
		sessions:  sessions,
		issuer:    issuer,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	result, err := s.platform.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, platform.ErrUnauthorized) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		var apiErr *platform.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusForbidden) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	created, err := s.sessions.Create(ctx, session.Session{
		UserID: result.User.ID,
		Name:   result.User.Name,
		Email:  result.User.Email,
		Role:   result.User.Role,
		Token:  result.Token,
	})
	if err != nil {
		return dto.LoginResponse{}, err
	}

	accessToken, err := s.issuer.Issue(created)
	if err != nil {
		if deleteErr := s.sessions.Delete(ctx, created.ID); deleteErr != nil {
			s.logger.Warn().Err(deleteErr).Str("session_id", created.ID).Msg("failed to discard session after token error")
		}
		return dto.LoginResponse{}, err
	}

	s.logger.Info().Str("user_id", created.UserID).Str("role", created.Role).Msg("session started")

	user := dto.NewUserResponse(result.User)
	user.Role = created.Role
	return dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   created.ExpiresAt,
		User:        user,
	}, nil
}

// Logout is idempotent: an already expired session is not an error.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("session ended")
	return nil
}
