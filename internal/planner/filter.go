package planner

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// DateRange selects assignments due on Days consecutive days starting at Start.
// Only the calendar day of Start matters; its clock time is ignored.
type DateRange struct {
	Start time.Time
	Days  int
}

// Filters are the list-view toggles. Each one is an independent predicate,
// so the order they are applied in never changes the result.
type Filters struct {
	UnsubmittedOnly bool
	HideOverdue     bool
	DateRange       *DateRange
}

type predicate func(models.Assignment) bool

// Filter returns the assignments that pass every enabled filter, in input
// order. It panics on a malformed record even when no filter is enabled.
func Filter(assignments []models.Assignment, filters Filters, now time.Time) []models.Assignment {
	predicates := make([]predicate, 0, 3)
	if filters.DateRange != nil {
		predicates = append(predicates, inDateRange(*filters.DateRange))
	}
	if filters.UnsubmittedOnly {
		predicates = append(predicates, unsubmitted)
	}
	if filters.HideOverdue {
		predicates = append(predicates, notOverdue(now))
	}

	result := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		MustDueInstant(a, now.Location())
		if keepAll(a, predicates) {
			result = append(result, a)
		}
	}
	return result
}

func keepAll(a models.Assignment, predicates []predicate) bool {
	for _, keep := range predicates {
		if !keep(a) {
			return false
		}
	}
	return true
}

func unsubmitted(a models.Assignment) bool {
	return !a.Completed
}

func notOverdue(now time.Time) predicate {
	return func(a models.Assignment) bool {
		return !IsOverdue(a, now)
	}
}

func inDateRange(r DateRange) predicate {
	loc := r.Start.Location()
	first := Midnight(r.Start)
	last := first.AddDate(0, 0, r.Days-1)
	return func(a models.Assignment) bool {
		due := mustDueDate(a, loc)
		return !due.Before(first) && !due.After(last)
	}
}
