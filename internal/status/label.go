package status

import (
	"fmt"
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// DisplayLayout is the 24-hour, locale-agnostic timestamp format used in labels.
const DisplayLayout = "15:04, 02/01/2006"

// Placeholder is rendered in place of a label that could not be formatted.
const Placeholder = "—"

// FormatTimestamp renders raw in DisplayLayout within loc. A nil loc means UTC.
func FormatTimestamp(raw string, loc *time.Location) (string, error) {
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return "", err
	}
	if loc == nil {
		loc = time.UTC
	}
	return parsed.In(loc).Format(DisplayLayout), nil
}

// Label renders the status line shown under an assignment.
func Label(category Category, assignment models.Assignment, submission *models.Submission, loc *time.Location) (string, error) {
	switch category {
	case CategoryUpcoming:
		formatted, err := FormatTimestamp(assignment.Deadline, loc)
		if err != nil {
			return "", err
		}
		return "Due at " + formatted, nil
	case CategoryOverdue:
		formatted, err := FormatTimestamp(assignment.Deadline, loc)
		if err != nil {
			return "", err
		}
		return "Overdue at " + formatted, nil
	case CategoryCompleted:
		if submission == nil {
			return "", fmt.Errorf("%w: no submission for completed assignment %s", ErrMalformedTimestamp, assignment.ID)
		}
		formatted, err := FormatTimestamp(submission.SubmittedAt, loc)
		if err != nil {
			return "", err
		}
		return "Submitted at " + formatted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
}

// LabelOrPlaceholder is Label for rendering paths: formatting failures yield
// Placeholder together with the underlying error so callers can still report it.
func LabelOrPlaceholder(category Category, assignment models.Assignment, submission *models.Submission, loc *time.Location) (string, error) {
	label, err := Label(category, assignment, submission, loc)
	if err != nil {
		return Placeholder, err
	}
	return label, nil
}
