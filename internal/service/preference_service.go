package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
)

// PreferenceService manages the filter toggles each user persists.
type PreferenceService interface {
	Get(ctx context.Context, userID string) (dto.PreferenceResponse, error)
	Update(ctx context.Context, userID string, payload dto.PreferenceUpdateRequest) (dto.PreferenceResponse, error)
	// Resolve returns the stored toggles, or the defaults for users who never saved any.
	Resolve(ctx context.Context, userID string) (models.FilterPreference, error)
}

type preferenceService struct {
	repo       repository.PreferenceRepository
	demoUserID string
	logger     zerolog.Logger
}

// NewPreferenceService builds the preference service.
func NewPreferenceService(repo repository.PreferenceRepository, demoUserID string, logger zerolog.Logger) PreferenceService {
	return &preferenceService{
		repo:       repo,
		demoUserID: demoUserID,
		logger:     logger.With().Str("component", "preference_service").Logger(),
	}
}

func (s *preferenceService) Resolve(ctx context.Context, userID string) (models.FilterPreference, error) {
	preference, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultFilterPreference(userID), nil
		}
		return models.FilterPreference{}, err
	}
	return preference, nil
}

func (s *preferenceService) Get(ctx context.Context, userID string) (dto.PreferenceResponse, error) {
	preference, err := s.Resolve(ctx, userID)
	if err != nil {
		return dto.PreferenceResponse{}, err
	}
	return dto.NewPreferenceResponse(preference), nil
}

func (s *preferenceService) Update(ctx context.Context, userID string, payload dto.PreferenceUpdateRequest) (dto.PreferenceResponse, error) {
	if s.demoUserID != "" && userID == s.demoUserID {
		return dto.PreferenceResponse{}, ErrDemoReadOnly
	}

	preference, err := s.Resolve(ctx, userID)
	if err != nil {
		return dto.PreferenceResponse{}, err
	}

	if payload.UnsubmittedOnly != nil {
		preference.UnsubmittedOnly = *payload.UnsubmittedOnly
	}
	if payload.HideOverdueCalendar != nil {
		preference.HideOverdueCalendar = *payload.HideOverdueCalendar
	}
	if payload.HideOverdueSubjects != nil {
		preference.HideOverdueSubjects = *payload.HideOverdueSubjects
	}

	if err := s.repo.Upsert(ctx, &preference); err != nil {
		return dto.PreferenceResponse{}, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Bool("unsubmitted_only", preference.UnsubmittedOnly).
		Bool("hide_overdue_calendar", preference.HideOverdueCalendar).
		Bool("hide_overdue_subjects", preference.HideOverdueSubjects).
		Msg("filter preferences updated")

	return dto.NewPreferenceResponse(preference), nil
}
