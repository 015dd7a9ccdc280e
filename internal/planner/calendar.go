package planner

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

const (
	// CompactWindow is the number of days shown on narrow screens.
	CompactWindow = 14
	// ExpandedWindow is the number of days shown on wide screens.
	ExpandedWindow = 28

	compactStepWeeks  = 1
	expandedStepWeeks = 4
)

// CalendarFilters are the calendar toggles.
type CalendarFilters struct {
	UnsubmittedOnly bool
	HideOverdue     bool
}

// DayCell is one day of the calendar grid.
type DayCell struct {
	Date           time.Time
	DateKey        string
	IsToday        bool
	Platforms      []string
	HasAssignments bool
	Count          int
}

// BuildWindow lays out length consecutive days starting at start. Each day
// lists the distinct platforms, in first-seen order, of the assignments due
// that day that survive the filters. Overdue is judged against now using the
// full due instant; today only decides which cell is highlighted. Like the
// other planner functions it panics on a record that Validate would reject.
func BuildWindow(start time.Time, length int, assignments []models.Assignment, filters CalendarFilters, now, today time.Time) []DayCell {
	if length < 0 {
		length = 0
	}

	byDay := make(map[string][]models.Assignment)
	for _, a := range assignments {
		due := MustDueInstant(a, now.Location())
		if filters.UnsubmittedOnly && a.Completed {
			continue
		}
		if filters.HideOverdue && !a.Completed && due.Before(now) {
			continue
		}
		byDay[a.DueDate] = append(byDay[a.DueDate], a)
	}

	todayKey := DateKey(today)
	origin := Midnight(start)
	cells := make([]DayCell, 0, length)
	for i := 0; i < length; i++ {
		date := time.Date(origin.Year(), origin.Month(), origin.Day()+i, 0, 0, 0, 0, origin.Location())
		key := DateKey(date)
		selected := byDay[key]

		cells = append(cells, DayCell{
			Date:           date,
			DateKey:        key,
			IsToday:        key == todayKey,
			Platforms:      distinctPlatforms(selected),
			HasAssignments: len(selected) > 0,
			Count:          len(selected),
		})
	}
	return cells
}

func distinctPlatforms(assignments []models.Assignment) []string {
	platforms := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, a := range assignments {
		if _, ok := seen[a.Platform]; ok {
			continue
		}
		seen[a.Platform] = struct{}{}
		platforms = append(platforms, a.Platform)
	}
	return platforms
}

// StepWeeks returns how many weeks one navigation step moves a window of the given length.
func StepWeeks(length int) int {
	if length >= ExpandedWindow {
		return expandedStepWeeks
	}
	return compactStepWeeks
}

// ShiftWindow moves a window start by direction steps of weeksPerStep weeks.
func ShiftWindow(start time.Time, direction, weeksPerStep int) time.Time {
	return start.AddDate(0, 0, 7*weeksPerStep*direction)
}

// WeekStart returns midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	midnight := Midnight(t)
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}
