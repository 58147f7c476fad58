package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/skillbridge/mobile-gateway/internal/config"
	"github.com/skillbridge/mobile-gateway/internal/handler"
	"github.com/skillbridge/mobile-gateway/internal/observability"
)

const apiPrefix = "/api/v1"

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler            *handler.AuthHandler
	AssignmentBoardHandler *handler.AssignmentBoardHandler
	GradingHandler         *handler.GradingHandler
	TeamHandler            *handler.TeamHandler
	ChatHandler            *handler.ChatHandler
	ActivityFeedHandler    *handler.ActivityFeedHandler
	HealthChecks           []handler.DependencyCheck
	SessionMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group(apiPrefix, func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthChecks...))
	api.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api.Group("/auth"))
	}

	// Everything below requires a session. Without a session middleware the
	// protected routes are not mounted at all.
	if deps.SessionMiddleware == nil {
		return
	}
	guard := deps.SessionMiddleware

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(protectedGroup(api, "/auth", guard))
	}

	if deps.AssignmentBoardHandler != nil {
		deps.AssignmentBoardHandler.Register(protectedGroup(api, "/assignments", guard))
	}

	if deps.GradingHandler != nil {
		deps.GradingHandler.Register(protectedGroup(api, "/submissions", guard))
	}

	if deps.TeamHandler != nil || deps.ChatHandler != nil {
		teams := protectedGroup(api, "/teams", guard)
		if deps.TeamHandler != nil {
			deps.TeamHandler.Register(teams)
		}
		if deps.ChatHandler != nil {
			deps.ChatHandler.Register(teams)
		}
	}

	if deps.ActivityFeedHandler != nil {
		deps.ActivityFeedHandler.Register(protectedGroup(api, "/feed", guard))
	}
}

// protectedGroup mounts a group under /api/v1 whose routes run behind guard. Fiber
// matches group middleware by raw prefix, so the guard re-checks the segment boundary
// and lets paths like /feeds fall through to the 404 handler.
func protectedGroup(api fiber.Router, prefix string, guard fiber.Handler) fiber.Router {
	full := strings.ToLower(apiPrefix + prefix)
	return api.Group(prefix, func(c *fiber.Ctx) error {
		path := strings.ToLower(c.Path())
		if path != full && !strings.HasPrefix(path, full+"/") {
			return c.Next()
		}
		return guard(c)
	})
}
