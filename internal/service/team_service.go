package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

// TeamService exposes the classes screen and attendance.
type TeamService interface {
	List(ctx context.Context, sess session.Session) ([]dto.TeamResponse, error)
	Attendance(ctx context.Context, sess session.Session, teamID string) (dto.AttendanceSummary, error)
}

type teamService struct {
	platform TeamGateway
	logger   zerolog.Logger
}

// NewTeamService constructs the team service.
func NewTeamService(gateway TeamGateway, logger zerolog.Logger) TeamService {
	return &teamService{
		platform: gateway,
		logger:   logger.With().Str("component", "team_service").Logger(),
	}
}

func (s *teamService) List(ctx context.Context, sess session.Session) ([]dto.TeamResponse, error) {
	teams, err := s.platform.Teams(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TeamResponse, 0, len(teams))
	for _, team := range teams {
		responses = append(responses, dto.NewTeamResponse(team, sess.UserID))
	}
	return responses, nil
}

func (s *teamService) Attendance(ctx context.Context, sess session.Session, teamID string) (dto.AttendanceSummary, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return dto.AttendanceSummary{}, ErrTeamNotFound
	}

	records, err := s.platform.Attendance(ctx, sess.Token, teamID)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return dto.AttendanceSummary{}, ErrTeamNotFound
		}
		return dto.AttendanceSummary{}, err
	}

	summary := dto.AttendanceSummary{
		TeamID:  teamID,
		Records: make([]dto.AttendanceResponse, 0, len(records)),
	}
	for _, record := range records {
		if record.Present {
			summary.Present++
		} else {
			summary.Absent++
		}
		summary.Records = append(summary.Records, dto.AttendanceResponse{
			StudentID:   record.StudentID,
			StudentName: record.StudentName,
			Date:        record.Date,
			Present:     record.Present,
		})
	}

	if total := summary.Present + summary.Absent; total > 0 {
		summary.Rate = math.Round(float64(summary.Present)/float64(total)*10000) / 100
	}

	return summary, nil
}
