package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/handler"
	"github.com/skillbridge/mobile-gateway/internal/service"
)

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{response: dto.LoginResponse{
		AccessToken: "gateway-token",
		ExpiresAt:   time.Date(2025, time.April, 28, 0, 0, 0, 0, time.UTC),
		User:        dto.UserResponse{ID: "u1", Role: "student"},
	}}
	app, group := newAppAs(nil)
	handler.NewAuthHandler(svc, zerolog.Nop()).RegisterPublic(group.Group("/auth"))

	resp, payload := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "ada@example.com", svc.lastLogin.Email)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(payload.Data, &login))
	require.Equal(t, "gateway-token", login.AccessToken)

	svc.err = service.ErrInvalidCredentials
	resp, payload = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"ada@example.com","password":"wrong12"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, service.ErrInvalidCredentials.Error(), payload.Message)
}

func TestAuthHandlerLogout(t *testing.T) {
	svc := &stubAuthService{}
	app, group := newAppAs(&studentSession)
	handler.NewAuthHandler(svc, zerolog.Nop()).Register(group.Group("/auth"))

	resp, payload := doRequest(t, app, http.MethodPost, "/api/v1/auth/logout", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Equal(t, []string{studentSession.ID}, svc.loggedOut)
}
