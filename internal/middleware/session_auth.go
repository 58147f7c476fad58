package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/internal/utils"
)

const sessionLocalKey = "session"

// SessionAuth validates the gateway access token and loads the session it points to.
// The session is stored in the request locals; user_id and user_role are set for
// middleware that only needs the identity.
func SessionAuth(issuer *session.Issuer, store session.Store, logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "session_auth").Logger()

	return func(c *fiber.Ctx) error {
		authorization := c.Get(fiber.HeaderAuthorization)
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := issuer.Parse(tokenString)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		current, err := store.Get(c.UserContext(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "session expired")
			}
			logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("failed to load session")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to load session")
		}

		WithSession(c, current)

		return c.Next()
	}
}

// SessionFromContext returns the session loaded by SessionAuth.
func SessionFromContext(c *fiber.Ctx) (session.Session, bool) {
	if c == nil {
		return session.Session{}, false
	}
	current, ok := c.Locals(sessionLocalKey).(session.Session)
	return current, ok
}

// WithSession stores a session in the request locals. Used by tests and internal callers
// that authenticate by other means.
func WithSession(c *fiber.Ctx, current session.Session) {
	c.Locals(sessionLocalKey, current)
	c.Locals("user_id", current.UserID)
	c.Locals("user_role", string(current.StatusRole()))
}
