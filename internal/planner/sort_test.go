package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

func TestSortByDueCompletedLast(t *testing.T) {
	list := []models.Assignment{
		newAssignment(1, "Math", "2025-06-12", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Math", "2025-06-01", "10:00", models.PlatformTeams, true),
		newAssignment(3, "Math", "2025-06-10", "23:59", models.PlatformTeams, false),
		newAssignment(4, "Math", "2025-06-10", "08:00", models.PlatformTeams, false),
		newAssignment(5, "Math", "2025-05-01", "10:00", models.PlatformTeams, true),
	}

	sorted := SortByDueIn(list, true, testLoc)
	require.Equal(t, []uint{4, 3, 1, 5, 2}, ids(sorted))
}

func TestSortByDueMixed(t *testing.T) {
	list := []models.Assignment{
		newAssignment(1, "Math", "2025-06-12", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Math", "2025-06-01", "10:00", models.PlatformTeams, true),
		newAssignment(3, "Math", "2025-06-10", "23:59", models.PlatformTeams, false),
	}

	sorted := SortByDueIn(list, false, testLoc)
	require.Equal(t, []uint{2, 3, 1}, ids(sorted))
}

func TestSortByDueIsStable(t *testing.T) {
	list := []models.Assignment{
		newAssignment(9, "Math", "2025-06-10", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Physics", "2025-06-10", "10:00", models.PlatformOpenLMS, false),
		newAssignment(7, "Art", "2025-06-09", "10:00", models.PlatformTeams, false),
		newAssignment(1, "History", "2025-06-10", "10:00", models.PlatformTeams, false),
	}

	for _, completedLast := range []bool{true, false} {
		sorted := SortByDue(list, completedLast)
		require.Equal(t, []uint{7, 9, 3, 1}, ids(sorted))
	}
}

func TestSortByDueReturnsCopy(t *testing.T) {
	list := []models.Assignment{
		newAssignment(2, "Math", "2025-06-12", "10:00", models.PlatformTeams, false),
		newAssignment(1, "Math", "2025-06-10", "10:00", models.PlatformTeams, false),
	}

	sorted := SortByDue(list, true)
	require.Equal(t, []uint{1, 2}, ids(sorted))
	require.Equal(t, []uint{2, 1}, ids(list))

	empty := SortByDue(nil, true)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
