package status

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// ItemError records why a single assignment was left out of a partition.
type ItemError struct {
	AssignmentID string
	Err          error
}

func (e ItemError) Error() string {
	return "assignment " + e.AssignmentID + ": " + e.Err.Error()
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// Result holds the three disjoint, order-preserving partitions and the records that
// could not be classified.
type Result struct {
	Upcoming  []models.Assignment
	Overdue   []models.Assignment
	Completed []models.Assignment
	Errors    []ItemError
	// EvaluatedAt is the instant every record was compared against.
	EvaluatedAt time.Time
}

// Len returns the number of classified assignments.
func (r Result) Len() int {
	return len(r.Upcoming) + len(r.Overdue) + len(r.Completed)
}

// Partition classifies every assignment against the same instant. A record that fails
// classification is skipped and reported; it never aborts the batch.
func Partition(role Role, assignments []models.Assignment, submissionsByID map[string]models.Submission, now time.Time) Result {
	result := Result{
		Upcoming:  make([]models.Assignment, 0),
		Overdue:   make([]models.Assignment, 0),
		Completed: make([]models.Assignment, 0),
		Errors:    make([]ItemError, 0),

		EvaluatedAt: now,
	}

	for _, assignment := range assignments {
		category, err := ClassifyFor(role, assignment, submissionsByID, now)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{AssignmentID: assignment.ID, Err: err})
			continue
		}

		switch category {
		case CategoryCompleted:
			result.Completed = append(result.Completed, assignment)
		case CategoryOverdue:
			result.Overdue = append(result.Overdue, assignment)
		default:
			result.Upcoming = append(result.Upcoming, assignment)
		}
	}

	return result
}
