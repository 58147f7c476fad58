package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/session"
)

func newSessionApp(t *testing.T) (*fiber.App, session.Store, *session.Issuer) {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := session.NewRedisStore(client, time.Hour)
	issuer := session.NewIssuer("middleware-secret")

	app := fiber.New()
	app.Use(SessionAuth(issuer, store, zerolog.Nop()))
	app.Get("/me", func(c *fiber.Ctx) error {
		current, ok := SessionFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(current.UserID + ":" + c.Locals("user_role").(string))
	})
	return app, store, issuer
}

func getWithAuth(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSessionAuthLoadsSession(t *testing.T) {
	app, store, issuer := newSessionApp(t)

	created, err := store.Create(context.Background(), session.Session{UserID: "u1", Role: "TEACHER", Token: "upstream"})
	require.NoError(t, err)
	token, err := issuer.Issue(created)
	require.NoError(t, err)

	resp := getWithAuth(t, app, "bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	require.Equal(t, "u1:teacher", string(body[:n]))
}

func TestSessionAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	app, _, _ := newSessionApp(t)

	require.Equal(t, fiber.StatusUnauthorized, getWithAuth(t, app, "").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, getWithAuth(t, app, "Basic abc").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, getWithAuth(t, app, "Bearer ").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, getWithAuth(t, app, "Bearer not-a-jwt").StatusCode)
}

func TestSessionAuthRejectsLoggedOutSession(t *testing.T) {
	app, store, issuer := newSessionApp(t)
	ctx := context.Background()

	created, err := store.Create(ctx, session.Session{UserID: "u1", Role: "student"})
	require.NoError(t, err)
	token, err := issuer.Issue(created)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, created.ID))

	require.Equal(t, fiber.StatusUnauthorized, getWithAuth(t, app, "Bearer "+token).StatusCode)
}
