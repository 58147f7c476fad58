package status

import (
	"time"

	"github.com/skillbridge/mobile-gateway/internal/models"
)

// Classifier binds the pure functions to a clock and a display location.
type Classifier struct {
	now      func() time.Time
	location *time.Location
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone labels are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Classifier) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewClassifier returns a Classifier using time.Now and UTC unless overridden.
func NewClassifier(opts ...Option) Classifier {
	c := Classifier{now: time.Now, location: time.UTC}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Now returns the classifier's current instant.
func (c Classifier) Now() time.Time {
	return c.now()
}

// Location returns the display location.
func (c Classifier) Location() *time.Location {
	return c.location
}

// IsPast compares deadline against the classifier clock.
func (c Classifier) IsPast(deadline string) (bool, error) {
	return IsPast(deadline, c.now())
}

// Partition evaluates a whole snapshot against a single reading of the clock.
func (c Classifier) Partition(role Role, snapshot models.AssignmentSnapshot) Result {
	return Partition(role, snapshot.Assignments, snapshot.SubmissionsByID, c.now())
}

// Label renders a label in the classifier's display location.
func (c Classifier) Label(category Category, assignment models.Assignment, submission *models.Submission) (string, error) {
	return Label(category, assignment, submission, c.location)
}
