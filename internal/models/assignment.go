package models

// Assignment is a task issued to a class, as returned by the platform API.
// Deadline is kept as the raw timestamp string so malformed values can be reported
// instead of silently coerced.
type Assignment struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Deadline  string   `json:"deadline"`
	ClassID   string   `json:"classId"`
	ClassName string   `json:"className"`
	Files     []string `json:"files,omitempty"`
	CreatorID string   `json:"creatorId"`
}

// AssignmentSnapshot is one consistent fetch of assignments and the caller's submissions
// keyed by assignment id.
type AssignmentSnapshot struct {
	Assignments     []Assignment          `json:"assignments"`
	SubmissionsByID map[string]Submission `json:"submissionsById"`
}
