package dto

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// PreferenceUpdateRequest changes any subset of the stored filter toggles.
type PreferenceUpdateRequest struct {
	UnsubmittedOnly     *bool `json:"unsubmitted_only"`
	HideOverdueCalendar *bool `json:"hide_overdue_calendar"`
	HideOverdueSubjects *bool `json:"hide_overdue_subjects"`
}

// PreferenceResponse is the serialized filter preference.
type PreferenceResponse struct {
	UnsubmittedOnly     bool       `json:"unsubmitted_only"`
	HideOverdueCalendar bool       `json:"hide_overdue_calendar"`
	HideOverdueSubjects bool       `json:"hide_overdue_subjects"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// NewPreferenceResponse converts a model into a DTO.
func NewPreferenceResponse(model models.FilterPreference) PreferenceResponse {
	response := PreferenceResponse{
		UnsubmittedOnly:     model.UnsubmittedOnly,
		HideOverdueCalendar: model.HideOverdueCalendar,
		HideOverdueSubjects: model.HideOverdueSubjects,
	}
	if !model.UpdatedAt.IsZero() {
		updatedAt := model.UpdatedAt
		response.UpdatedAt = &updatedAt
	}
	return response
}
