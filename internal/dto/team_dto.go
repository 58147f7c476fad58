package dto

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// TeamResponse summarises a class.
type TeamResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code,omitempty"`
	MemberCount int    `json:"member_count"`
	Teaching    bool   `json:"teaching"`
}

// AttendanceResponse is one attendance mark.
type AttendanceResponse struct {
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Date        time.Time `json:"date"`
	Present     bool      `json:"present"`
}

// AttendanceSummary aggregates attendance for a class.
type AttendanceSummary struct {
	TeamID  string               `json:"team_id"`
	Present int                  `json:"present"`
	Absent  int                  `json:"absent"`
	Rate    float64              `json:"rate"` // percent present, two decimals
	Records []AttendanceResponse `json:"records"`
}

// NewTeamResponse converts a team. The join code is only shown to the teacher of the class.
func NewTeamResponse(model models.Team, userID string) TeamResponse {
	teaching := model.TeacherID != "" && model.TeacherID == userID
	response := TeamResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		MemberCount: model.MemberCount,
		Teaching:    teaching,
	}
	if teaching {
		response.Code = model.Code
	}
	return response
}
