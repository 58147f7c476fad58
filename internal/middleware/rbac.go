package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

// RequireRole ensures that the authenticated session has one of the allowed roles.
// It must run after SessionAuth.
func RequireRole(roles ...status.Role) fiber.Handler {
	allowed := make(map[status.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		current, ok := SessionFromContext(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[current.StatusRole()]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
