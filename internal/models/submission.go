package models

// Submission represents a student's response to one assignment.
type Submission struct {
	ID          string   `json:"id"`
	SubmittedAt string   `json:"submittedAt,omitempty"`
	Files       []string `json:"files,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Feedback    *string  `json:"feedback,omitempty"`
}

// IsGraded reports whether a teacher has scored the submission.
func (s Submission) IsGraded() bool {
	return s.Score != nil
}
