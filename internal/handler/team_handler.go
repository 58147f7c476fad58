package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// TeamHandler exposes classes and attendance.
type TeamHandler struct {
	service service.TeamService
	logger  zerolog.Logger
}

// NewTeamHandler constructs the handler.
func NewTeamHandler(service service.TeamService, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		logger:  logger.With().Str("component", "team_handler").Logger(),
	}
}

// Register attaches the team routes.
func (h *TeamHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id/attendance", h.attendance)
}

func (h *TeamHandler) list(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	teams, err := h.service.List(c.UserContext(), current)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load teams")
	}

	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *TeamHandler) attendance(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	summary, err := h.service.Attendance(c.UserContext(), current, c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "failed to load attendance")
	}

	return utils.SendSuccess(c, "attendance retrieved", summary)
}
