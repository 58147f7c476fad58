package status

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// FindSubmission looks up the submission recorded for an assignment.
// A miss is the normal "not submitted" state.
func FindSubmission(assignmentID string, submissionsByID map[string]models.Submission) (models.Submission, bool) {
	submission, ok := submissionsByID[assignmentID]
	return submission, ok
}

// Classify assigns a student-facing category to one assignment.
// A present submission always wins, late or not.
func Classify(assignment models.Assignment, submission *models.Submission, now time.Time) (Category, error) {
	past, err := IsPast(assignment.Deadline, now)
	if err != nil {
		return "", err
	}

	switch {
	case submission != nil:
		return CategoryCompleted, nil
	case past:
		return CategoryOverdue, nil
	default:
		return CategoryUpcoming, nil
	}
}

// ClassifyFor applies the rule for the given role. Teachers have no submissions of
// their own, so only the deadline is consulted for them.
func ClassifyFor(role Role, assignment models.Assignment, submissionsByID map[string]models.Submission, now time.Time) (Category, error) {
	if role == RoleTeacher {
		return Classify(assignment, nil, now)
	}

	if submission, ok := FindSubmission(assignment.ID, submissionsByID); ok {
		return Classify(assignment, &submission, now)
	}
	return Classify(assignment, nil, now)
}

// IsLate reports whether a submission arrived after the assignment deadline.
// Lateness never changes the category.
func IsLate(assignment models.Assignment, submission models.Submission) (bool, error) {
	due, err := ParseTimestamp(assignment.Deadline)
	if err != nil {
		return false, err
	}
	submittedAt, err := ParseTimestamp(submission.SubmittedAt)
	if err != nil {
		return false, err
	}
	return submittedAt.After(due), nil
}
