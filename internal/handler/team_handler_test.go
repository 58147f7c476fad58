package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/handler"
	"github.com/skillbridge/mobile-gateway/internal/service"
)

func TestTeamHandlerRoutes(t *testing.T) {
	svc := &stubTeamService{
		teams:      []dto.TeamResponse{{ID: "t1", Name: "Physics", MemberCount: 3}},
		attendance: dto.AttendanceSummary{TeamID: "t1", Present: 2, Absent: 1, Rate: 66.67, Records: []dto.AttendanceResponse{}},
	}
	app, group := newAppAs(&teacherSession)
	handler.NewTeamHandler(svc, zerolog.Nop()).Register(group.Group("/teams"))

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/teams", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var teams []dto.TeamResponse
	require.NoError(t, json.Unmarshal(payload.Data, &teams))
	require.Len(t, teams, 1)

	resp, payload = doRequest(t, app, http.MethodGet, "/api/v1/teams/t1/attendance", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary dto.AttendanceSummary
	require.NoError(t, json.Unmarshal(payload.Data, &summary))
	require.Equal(t, 2, summary.Present)

	svc.err = service.ErrTeamNotFound
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/teams/t9/attendance", "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
