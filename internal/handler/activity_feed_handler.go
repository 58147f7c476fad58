package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// ActivityFeedHandler serves the activity feed.
type ActivityFeedHandler struct {
	service service.ActivityFeedService
	logger  zerolog.Logger
}

// NewActivityFeedHandler constructs the handler instance.
func NewActivityFeedHandler(service service.ActivityFeedService, logger zerolog.Logger) *ActivityFeedHandler {
	return &ActivityFeedHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_feed_handler").Logger(),
	}
}

// Register wires the activity feed routes.
func (h *ActivityFeedHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *ActivityFeedHandler) list(c *fiber.Ctx) error {
	current, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	result, err := h.service.List(c.UserContext(), current, dto.ActivityFeedRequest{Page: page, PageSize: pageSize})
	if err != nil {
		return respondError(c, h.logger, err, "failed to fetch activities")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.OK(c, result.Items, "activities retrieved", result.Pagination)
}
