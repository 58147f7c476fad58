package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// AuthHandler exposes login and logout.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated login route.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// Register attaches routes that require a session.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to sign in")
	}

	return utils.SendSuccess(c, "signed in", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.Logout(c.UserContext(), current.ID); err != nil {
		return respondError(c, h.logger, err, "failed to sign out")
	}

	return utils.SendSuccess(c, "signed out", nil)
}
