package planner

import (
	"sort"
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// SortByDue returns a copy of assignments ordered by due instant, with equal
// instants kept in input order. When completedLast is set, completed
// assignments follow every open one.
func SortByDue(assignments []models.Assignment, completedLast bool) []models.Assignment {
	return SortByDueIn(assignments, completedLast, time.Local)
}

// SortByDueIn is SortByDue with due instants interpreted in loc.
func SortByDueIn(assignments []models.Assignment, completedLast bool, loc *time.Location) []models.Assignment {
	type keyed struct {
		assignment models.Assignment
		due        time.Time
	}

	items := make([]keyed, len(assignments))
	for i, a := range assignments {
		items[i] = keyed{assignment: a, due: MustDueInstant(a, loc)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if completedLast && items[i].assignment.Completed != items[j].assignment.Completed {
			return !items[i].assignment.Completed
		}
		return items[i].due.Before(items[j].due)
	})

	result := make([]models.Assignment, len(items))
	for i, item := range items {
		result[i] = item.assignment
	}
	return result
}
