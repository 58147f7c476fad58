package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/middleware"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// GradingHandler wires grading endpoints for teachers.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler constructs the handler.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches grading endpoints to the submissions group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Patch("/:id/grade", middleware.RequireRole(status.RoleTeacher), h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	submission, err := h.service.Grade(c.UserContext(), current, c.Params("id"), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to grade submission")
	}

	return utils.SendSuccess(c, "submission graded", submission)
}
