package models

import "time"

// FilterPreference stores the view toggles a user last chose.
type FilterPreference struct {
	UserID              string    `gorm:"primaryKey;size:64" json:"user_id"`
	UnsubmittedOnly     bool      `gorm:"not null" json:"unsubmitted_only"`
	HideOverdueCalendar bool      `gorm:"not null" json:"hide_overdue_calendar"`
	HideOverdueSubjects bool      `gorm:"not null" json:"hide_overdue_subjects"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DefaultFilterPreference returns the toggles a user starts with.
func DefaultFilterPreference(userID string) FilterPreference {
	return FilterPreference{
		UserID:              userID,
		UnsubmittedOnly:     false,
		HideOverdueCalendar: true,
		HideOverdueSubjects: true,
	}
}
