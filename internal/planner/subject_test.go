package planner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

func TestGroupBySubjectKeepsFirstSeenOrder(t *testing.T) {
	list := []models.Assignment{
		newAssignment(1, "Physics", "2025-06-10", "10:00", models.PlatformOpenLMS, false),
		newAssignment(2, "Math", "2025-06-11", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Physics", "2025-06-09", "10:00", models.PlatformTeams, true),
		newAssignment(4, "Math ", "2025-06-12", "10:00", models.PlatformTeams, false),
		newAssignment(5, "math", "2025-06-12", "10:00", models.PlatformTeams, false),
	}

	groups := GroupBySubject(list)
	require.Len(t, groups, 4)
	require.Equal(t, "Physics", groups[0].Subject)
	require.Equal(t, models.PlatformOpenLMS, groups[0].Platform)
	require.Equal(t, []uint{1, 3}, ids(groups[0].Assignments))
	require.Equal(t, "Math", groups[1].Subject)
	require.Equal(t, "Math ", groups[2].Subject)
	require.Equal(t, "math", groups[3].Subject)

	index := IndexSubjects(groups)
	require.Equal(t, 1, index["Math"])
	require.Equal(t, 2, index["Math "])

	require.NotNil(t, GroupBySubject(nil))
	require.Empty(t, GroupBySubject(nil))
}

func TestAggregateStatusPicksMostUrgentOpen(t *testing.T) {
	now := at(t, "2025-06-10 12:00:00")
	group := []models.Assignment{
		newAssignment(1, "Math", "2025-06-20", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Math", "2025-06-05", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Math", "2025-06-10", "13:30", models.PlatformTeams, false),
		newAssignment(4, "Math", "2025-06-10", "12:10", models.PlatformTeams, true),
	}

	shown := AggregateStatus(group, false, now)
	require.False(t, shown.AllCompleted())
	require.NotNil(t, shown.MostUrgent)
	require.Equal(t, uint(2), shown.MostUrgent.ID)
	require.Equal(t, CategoryOverdue, shown.Status.Category)

	hidden := AggregateStatus(group, true, now)
	require.NotNil(t, hidden.MostUrgent)
	require.Equal(t, uint(3), hidden.MostUrgent.ID)
	require.Equal(t, CategoryDueSoon, hidden.Status.Category)
	require.Equal(t, &Remaining{Unit: UnitHours, Amount: 2}, hidden.Status.Remaining)
}

func TestAggregateStatusAllCompleted(t *testing.T) {
	now := at(t, "2025-06-10 12:00:00")

	done := []models.Assignment{
		newAssignment(1, "Math", "2025-06-20", "10:00", models.PlatformTeams, true),
	}
	result := AggregateStatus(done, false, now)
	require.True(t, result.AllCompleted())
	require.Nil(t, result.MostUrgent)

	onlyOverdue := []models.Assignment{
		newAssignment(2, "Math", "2025-06-01", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Math", "2025-06-20", "10:00", models.PlatformTeams, true),
	}
	require.True(t, AggregateStatus(onlyOverdue, true, now).AllCompleted())
	require.False(t, AggregateStatus(onlyOverdue, false, now).AllCompleted())

	require.True(t, AggregateStatus(nil, false, now).AllCompleted())
}

func TestPaginateTwoPagesOfOne(t *testing.T) {
	now := at(t, "2025-05-20 12:00:00")
	group := []models.Assignment{
		newAssignment(2, "Web Programming", "2025-06-08", "23:59", models.PlatformTeams, false),
		newAssignment(1, "Web Programming", "2025-06-01", "23:59", models.PlatformTeams, false),
	}

	first := Paginate(group, true, now, PageState{CurrentPage: 0, ItemsPerPage: 1})
	require.Equal(t, []uint{1}, ids(first.Items))
	require.Equal(t, 2, first.TotalPages)
	require.Equal(t, 2, first.TotalItems)

	second := Paginate(group, true, now, PageState{CurrentPage: 1, ItemsPerPage: 1})
	require.Equal(t, []uint{2}, ids(second.Items))
	require.Equal(t, 1, second.PageIndex)
}

func TestPaginateCoversEveryItemOnce(t *testing.T) {
	now := at(t, "2025-06-10 12:00:00")
	group := []models.Assignment{
		newAssignment(1, "Math", "2025-06-15", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Math", "2025-06-01", "10:00", models.PlatformTeams, true),
		newAssignment(3, "Math", "2025-06-02", "10:00", models.PlatformTeams, false),
		newAssignment(4, "Math", "2025-06-11", "10:00", models.PlatformTeams, false),
		newAssignment(5, "Math", "2025-06-11", "10:00", models.PlatformTeams, true),
		newAssignment(6, "Math", "2025-07-01", "10:00", models.PlatformTeams, false),
		newAssignment(7, "Math", "2025-06-10", "12:00", models.PlatformTeams, false),
	}

	for _, hideOverdue := range []bool{false, true} {
		expected := []uint{2, 3, 7, 4, 5, 1, 6}
		if hideOverdue {
			expected = []uint{2, 7, 4, 5, 1, 6}
		}

		for perPage := 1; perPage <= len(group)+1; perPage++ {
			state := NewPageState(perPage)
			first := Paginate(group, hideOverdue, now, state)
			require.Equal(t, TotalPages(len(expected), perPage), first.TotalPages)

			collected := make([]uint, 0, len(expected))
			for page := 0; page < first.TotalPages; page++ {
				state.CurrentPage = page
				result := Paginate(group, hideOverdue, now, state)
				require.LessOrEqual(t, len(result.Items), perPage)
				collected = append(collected, ids(result.Items)...)
			}
			require.Equal(t, expected, collected, "per page %d", perPage)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	now := at(t, "2025-06-10 12:00:00")
	group := []models.Assignment{
		newAssignment(1, "Math", "2025-06-15", "10:00", models.PlatformTeams, false),
	}

	beyond := Paginate(group, false, now, PageState{CurrentPage: 5, ItemsPerPage: 3})
	require.NotNil(t, beyond.Items)
	require.Empty(t, beyond.Items)
	require.Equal(t, 1, beyond.TotalPages)
	require.Equal(t, 5, beyond.PageIndex)

	negative := Paginate(group, false, now, PageState{CurrentPage: -1, ItemsPerPage: 3})
	require.Empty(t, negative.Items)

	five := []models.Assignment{
		newAssignment(1, "Math", "2025-06-11", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Math", "2025-06-12", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Math", "2025-06-13", "10:00", models.PlatformTeams, false),
		newAssignment(4, "Math", "2025-06-14", "10:00", models.PlatformTeams, false),
		newAssignment(5, "Math", "2025-06-15", "10:00", models.PlatformTeams, false),
	}
	// huge*3 wraps around to an offset of 2.
	huge := math.MaxInt/3*2 + 2
	wrapped := Paginate(five, false, now, PageState{CurrentPage: huge, ItemsPerPage: 3})
	require.Empty(t, wrapped.Items)
	require.Equal(t, 2, wrapped.TotalPages)
	require.Equal(t, huge, wrapped.PageIndex)
	require.Equal(t, 1, PageState{CurrentPage: huge, ItemsPerPage: 3}.Clamp(wrapped.TotalPages).CurrentPage)

	defaulted := Paginate(group, false, now, PageState{})
	require.Equal(t, DefaultItemsPerPage, defaulted.ItemsPerPage)
	require.Len(t, defaulted.Items, 1)

	empty := Paginate(nil, true, now, NewPageState(3))
	require.Equal(t, 0, empty.TotalPages)
	require.Equal(t, 0, empty.TotalItems)
	require.NotNil(t, empty.Items)
}

func TestPageStateNavigation(t *testing.T) {
	state := NewPageState(0)
	require.Equal(t, DefaultItemsPerPage, state.ItemsPerPage)

	require.Equal(t, 0, state.Prev().CurrentPage)
	require.Equal(t, 0, state.Next(1).CurrentPage)
	require.Equal(t, 0, state.Next(0).CurrentPage)

	state = state.Next(3).Next(3).Next(3)
	require.Equal(t, 2, state.CurrentPage)
	require.Equal(t, 1, state.Prev().CurrentPage)

	require.Equal(t, 0, state.Clamp(1).CurrentPage)
	require.Equal(t, 0, state.Clamp(0).CurrentPage)
	require.Equal(t, 2, state.Clamp(5).CurrentPage)
	require.Equal(t, 0, PageState{CurrentPage: -4}.Clamp(2).CurrentPage)
}

func TestSubjectPages(t *testing.T) {
	list := []models.Assignment{
		newAssignment(1, "Math", "2025-06-15", "10:00", models.PlatformTeams, false),
		newAssignment(2, "Physics", "2025-06-15", "10:00", models.PlatformTeams, false),
		newAssignment(3, "Math", "2025-06-16", "10:00", models.PlatformTeams, false),
	}

	pages := InitSubjectPages(list, 2)
	require.Len(t, pages, 2)
	require.Equal(t, PageState{ItemsPerPage: 2}, pages["Math"])

	pages["Math"] = pages["Math"].Next(2)
	require.Equal(t, 1, pages.Get("Math", 2).CurrentPage)
	require.Equal(t, PageState{ItemsPerPage: 4}, pages.Get("Art", 4))
	require.Equal(t, DefaultItemsPerPage, SubjectPages{"Art": {CurrentPage: 1}}.Get("Art", 0).ItemsPerPage)
}
