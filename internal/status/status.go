// Package status classifies assignments into upcoming, overdue and completed
// partitions and renders their display labels.
//
// Everything here is pure: inputs are never mutated and every call returns freshly
// allocated results, so partitions can be rebuilt from each new snapshot.
package status

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTimestamp indicates a deadline or submission timestamp could not be parsed.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// ErrUnknownCategory indicates a label was requested for a category outside the known set.
var ErrUnknownCategory = errors.New("unknown category")

// Category is the derived state of an assignment. It is never stored.
type Category string

const (
	CategoryUpcoming  Category = "upcoming"
	CategoryOverdue   Category = "overdue"
	CategoryCompleted Category = "completed"
)

// Role selects which classification rule applies.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole normalises a role string. Anything that is not a teacher is treated as a student.
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleTeacher)) {
		return RoleTeacher
	}
	return RoleStudent
}

// ParseTimestamp parses an RFC 3339 timestamp, with or without fractional seconds.
func ParseTimestamp(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}

	parsed, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
	}

	return parsed, nil
}

// IsPast reports whether deadline is strictly earlier than now.
func IsPast(deadline string, now time.Time) (bool, error) {
	due, err := ParseTimestamp(deadline)
	if err != nil {
		return false, err
	}
	return due.Before(now), nil
}
