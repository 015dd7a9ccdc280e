package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

func TestPreferenceRepositoryUpsert(t *testing.T) {
	db := setupTestDB(t, &models.FilterPreference{})
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "alice")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	pref := models.DefaultFilterPreference("alice")
	require.NoError(t, repo.Upsert(ctx, &pref))

	stored, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, stored.HideOverdueCalendar)
	require.True(t, stored.HideOverdueSubjects)
	require.False(t, stored.UnsubmittedOnly)

	changed := models.FilterPreference{UserID: "alice", UnsubmittedOnly: true}
	require.NoError(t, repo.Upsert(ctx, &changed))

	stored, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, stored.UnsubmittedOnly)
	require.False(t, stored.HideOverdueCalendar)
	require.False(t, stored.HideOverdueSubjects)
}
