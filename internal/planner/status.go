package planner

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// Category classifies how urgent an assignment is.
type Category string

const (
	CategoryOverdue   Category = "overdue"
	CategoryDueSoon   Category = "due_soon"
	CategoryNormal    Category = "normal"
	CategoryCompleted Category = "completed"
	// CategoryAllCompleted is only produced by AggregateStatus for a subject
	// with no open assignments left.
	CategoryAllCompleted Category = "all_completed"
)

// Unit is the granularity of a remaining-time breakdown.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
)

// dueSoonDays is the largest whole-day distance still considered due soon.
const dueSoonDays = 3

const day = 24 * time.Hour

// Remaining is the time left until an assignment is due.
type Remaining struct {
	Unit   Unit  `json:"unit"`
	Amount int64 `json:"amount"`
}

// StatusResult is the classification of a single assignment.
type StatusResult struct {
	Category  Category   `json:"category"`
	Remaining *Remaining `json:"remaining,omitempty"`
}

// Classify computes the status of a relative to now. The due instant is
// interpreted in now's location.
func Classify(a models.Assignment, now time.Time) StatusResult {
	if a.Completed {
		return StatusResult{Category: CategoryCompleted}
	}

	delta := MustDueInstant(a, now.Location()).Sub(now)
	switch {
	case delta < 0:
		return StatusResult{Category: CategoryOverdue}
	case delta < time.Hour:
		return StatusResult{
			Category:  CategoryDueSoon,
			Remaining: &Remaining{Unit: UnitMinutes, Amount: ceilDiv(delta, time.Minute)},
		}
	case delta < day:
		return StatusResult{
			Category:  CategoryDueSoon,
			Remaining: &Remaining{Unit: UnitHours, Amount: ceilDiv(delta, time.Hour)},
		}
	}

	days := int64(delta / day)
	category := CategoryNormal
	if days <= dueSoonDays {
		category = CategoryDueSoon
	}
	return StatusResult{
		Category:  category,
		Remaining: &Remaining{Unit: UnitDays, Amount: days},
	}
}

// IsOverdue reports whether a is still open and its due instant is before now.
func IsOverdue(a models.Assignment, now time.Time) bool {
	if a.Completed {
		return false
	}
	return MustDueInstant(a, now.Location()).Before(now)
}

func ceilDiv(d, unit time.Duration) int64 {
	return int64((d + unit - 1) / unit)
}

// Entry pairs an assignment with its due instant and status.
type Entry struct {
	Assignment models.Assignment
	Due        time.Time
	Status     StatusResult
}

// Annotate classifies every assignment against now, keeping input order.
func Annotate(assignments []models.Assignment, now time.Time) []Entry {
	entries := make([]Entry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, Entry{
			Assignment: a,
			Due:        MustDueInstant(a, now.Location()),
			Status:     Classify(a, now),
		})
	}
	return entries
}
