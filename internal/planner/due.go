// Package planner derives the calendar, list and subject views from a
// snapshot of assignments.
//
// Every function is pure: inputs are treated as read-only, results are
// freshly allocated, and nothing is cached between calls. The viewer's
// location is taken from the reference instant passed in, so the same
// snapshot renders consistently for callers in different time zones.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

const (
	// DateLayout is the wire format of Assignment.DueDate.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of Assignment.DueTime.
	TimeLayout = "15:04"
)

// ErrMalformedDue reports an assignment whose due date or time cannot be parsed.
var ErrMalformedDue = errors.New("malformed due date or time")

// DueInstant combines the assignment's date and time into an absolute instant in loc.
func DueInstant(a models.Assignment, loc *time.Location) (time.Time, error) {
	if len(a.DueDate) != len(DateLayout) || len(a.DueTime) != len(TimeLayout) {
		return time.Time{}, fmt.Errorf("%w: assignment %d has %q %q", ErrMalformedDue, a.ID, a.DueDate, a.DueTime)
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.DueDate+" "+a.DueTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: assignment %d: %v", ErrMalformedDue, a.ID, err)
	}
	return due, nil
}

// MustDueInstant is DueInstant for records that were already validated.
// A malformed record would silently corrupt ordering for the whole list, so
// it panics instead of guessing.
func MustDueInstant(a models.Assignment, loc *time.Location) time.Time {
	due, err := DueInstant(a, loc)
	if err != nil {
		panic(err)
	}
	return due
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if len(key) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrMalformedDue, key)
	}
	day, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrMalformedDue, key, err)
	}
	return day, nil
}

// DateKey formats t as the zero-padded YYYY-MM-DD key used to join days
// against Assignment.DueDate.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates t to the start of its day in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Validate checks that every record in the snapshot carries a parseable due
// date and time. Callers run it before handing a snapshot to the other
// planner functions, which panic on malformed records.
func Validate(assignments []models.Assignment) error {
	var errs []error
	for _, a := range assignments {
		if _, err := DueInstant(a, time.UTC); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func mustDueDate(a models.Assignment, loc *time.Location) time.Time {
	day, err := ParseDateKey(a.DueDate, loc)
	if err != nil {
		panic(fmt.Errorf("assignment %d: %w", a.ID, err))
	}
	return day
}
