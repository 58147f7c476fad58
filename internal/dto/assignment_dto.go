package dto

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// AssignmentBoardItem is one card on the assignment list screens.
type AssignmentBoardItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	ClassID      string   `json:"class_id"`
	ClassName    string   `json:"class_name"`
	Deadline     string   `json:"deadline"`
	Files        []string `json:"files"`
	Category     string   `json:"category"`
	Label        string   `json:"label"`
	SubmissionID string   `json:"submission_id,omitempty"`
	SubmittedAt  string   `json:"submitted_at,omitempty"`
	Late         bool     `json:"late"`
	Score        *float64 `json:"score,omitempty"`
	Feedback     *string  `json:"feedback,omitempty"`
}

// BoardWarning reports an assignment that could not be shown or labelled.
type BoardWarning struct {
	AssignmentID string `json:"assignment_id"`
	Error        string `json:"error"`
}

// AssignmentBoardResponse groups the three partitions for one role.
type AssignmentBoardResponse struct {
	Role        string                `json:"role"`
	GeneratedAt time.Time             `json:"generated_at"`
	Upcoming    []AssignmentBoardItem `json:"upcoming"`
	Overdue     []AssignmentBoardItem `json:"overdue"`
	Completed   []AssignmentBoardItem `json:"completed"`
	Warnings    []BoardWarning        `json:"warnings"`
	CacheHit    bool                  `json:"cache_hit"`
}

// NewAssignmentBoardItem copies the assignment fields shared by every category.
func NewAssignmentBoardItem(model models.Assignment) AssignmentBoardItem {
	files := model.Files
	if files == nil {
		files = []string{}
	}
	return AssignmentBoardItem{
		ID:        model.ID,
		Title:     model.Title,
		Content:   model.Content,
		ClassID:   model.ClassID,
		ClassName: model.ClassName,
		Deadline:  model.Deadline,
		Files:     files,
	}
}
