package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/middleware"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// ChatHandler exposes class chat over plain HTTP.
type ChatHandler struct {
	service   service.ChatService
	logger    zerolog.Logger
	rateLimit int
}

// NewChatHandler constructs the handler. rateLimit is the number of messages a user may
// send per minute.
func NewChatHandler(service service.ChatService, rateLimit int, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service:   service,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
		rateLimit: rateLimit,
	}
}

// Register attaches the chat routes to the teams group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/:id/messages", h.history)
	router.Post("/:id/messages", middleware.RateLimit("chat", h.rateLimit, time.Minute), h.send)
}

func (h *ChatHandler) history(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	messages, err := h.service.History(c.UserContext(), current, dto.ChatHistoryQuery{TeamID: c.Params("id"), Limit: limit})
	if err != nil {
		return respondError(c, h.logger, err, "failed to load messages")
	}

	return utils.SendSuccess(c, "messages retrieved", messages)
}

func (h *ChatHandler) send(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	var payload dto.ChatSendRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.TeamID = c.Params("id")

	message, err := h.service.Send(c.UserContext(), current, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to send message")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message sent", message)
}
