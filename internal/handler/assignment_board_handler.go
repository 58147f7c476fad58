package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/middleware"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// AssignmentBoardHandler serves the assignment list screens.
type AssignmentBoardHandler struct {
	service service.AssignmentBoardService
	logger  zerolog.Logger
}

// NewAssignmentBoardHandler creates a new handler instance.
func NewAssignmentBoardHandler(service service.AssignmentBoardService, logger zerolog.Logger) *AssignmentBoardHandler {
	return &AssignmentBoardHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_board_handler").Logger(),
	}
}

// Register attaches the board and delete endpoints.
func (h *AssignmentBoardHandler) Register(router fiber.Router) {
	router.Get("/board", h.board)
	router.Delete("/:id", middleware.RequireRole(status.RoleTeacher), h.delete)
}

func (h *AssignmentBoardHandler) board(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	board, err := h.service.Board(c.UserContext(), current)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load assignments")
	}

	if board.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.OK(c, board, "assignments retrieved", fiber.Map{
		"cache_hit": board.CacheHit,
		"warnings":  len(board.Warnings),
	})
}

func (h *AssignmentBoardHandler) delete(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.Delete(c.UserContext(), current, c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "failed to delete assignment")
	}

	return utils.SendSuccess(c, "assignment deleted", fiber.Map{"id": c.Params("id")})
}
