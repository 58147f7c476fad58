package dto

import "github.com/skillbridge/mobile-gateway/internal/models"

// GradeRequest is used by teachers to score a submission.
type GradeRequest struct {
	Score    *float64 `json:"score" validate:"required,gte=0,lte=100"`
	Feedback string   `json:"feedback" validate:"omitempty,max=2000"`
}

// SubmissionResponse is returned after grading.
type SubmissionResponse struct {
	ID          string   `json:"id"`
	SubmittedAt string   `json:"submitted_at,omitempty"`
	Files       []string `json:"files"`
	Score       *float64 `json:"score"`
	Feedback    *string  `json:"feedback"`
	Graded      bool     `json:"graded"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	files := model.Files
	if files == nil {
		files = []string{}
	}
	return SubmissionResponse{
		ID:          model.ID,
		SubmittedAt: model.SubmittedAt,
		Files:       files,
		Score:       model.Score,
		Feedback:    model.Feedback,
		Graded:      model.IsGraded(),
	}
}
