package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/planner"
)

const referenceInstant = "2025-06-10T12:00:00Z"

func viewFixture() []models.Assignment {
	return []models.Assignment{
		{CourseName: "Math", Title: "Sets", DueDate: "2025-06-09", DueTime: "23:59", Platform: models.PlatformTeams},
		{CourseName: "Math", Title: "Logic", DueDate: "2025-06-11", DueTime: "09:00", Platform: models.PlatformTeams},
		{CourseName: "Web", Title: "HTML", DueDate: "2025-06-10", DueTime: "18:00", Platform: models.PlatformOpenLMS, Completed: true},
		{CourseName: "Web", Title: "CSS", DueDate: "2025-06-20", DueTime: "23:59", Platform: models.PlatformOpenLMS},
		{CourseName: "Math", Title: "Graphs", DueDate: "2025-06-25", DueTime: "23:59", Platform: models.PlatformTeams},
		{CourseName: "Math", Title: "Trees", DueDate: "2025-07-01", DueTime: "23:59", Platform: models.PlatformTeams},
	}
}

func titles(items []dto.AssignmentView) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestViewHandlerListAppliesFilters(t *testing.T) {
	app := setupCalendarApp(t)
	seedAssignments(t, app.repo, "alice", viewFixture()...)

	resp := app.do(t, http.MethodGet, "/api/v1/assignments?"+queryString(map[string][]string{
		"at": {referenceInstant},
		"tz": {"UTC"},
	}), "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope[dto.AssignmentListResponse]
	decodeResponse(t, resp, &body)
	require.Equal(t, []string{"Logic", "CSS", "Graphs", "Trees", "HTML"}, titles(body.Data.Items))
	require.Equal(t, planner.CategoryDueSoon, body.Data.Items[0].Status.Category)

	resp = app.do(t, http.MethodGet, "/api/v1/assignments?"+queryString(map[string][]string{
		"at":               {referenceInstant},
		"tz":               {"UTC"},
		"hide_overdue":     {"false"},
		"unsubmitted_only": {"true"},
		"start":            {"2025-06-09"},
		"days":             {"3"},
	}), "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &body)
	require.Equal(t, []string{"Sets", "Logic"}, titles(body.Data.Items))
	require.Equal(t, planner.CategoryOverdue, body.Data.Items[0].Status.Category)
}

func TestViewHandlerListRejectsBadParameters(t *testing.T) {
	app := setupCalendarApp(t)

	for _, query := range []string{"tz=Nowhere/City", "at=yesterday", "hide_overdue=maybe", "days=ten", "days=0&start=2025-02-30"} {
		resp := app.do(t, http.MethodGet, "/api/v1/assignments?"+query, "alice", nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestViewHandlerByDate(t *testing.T) {
	app := setupCalendarApp(t)
	seedAssignments(t, app.repo, "alice", viewFixture()...)

	resp := app.do(t, http.MethodGet, "/api/v1/assignments/by-date/2025-06-11?at="+referenceInstant, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope[dto.DayAssignmentsResponse]
	decodeResponse(t, resp, &body)
	require.Equal(t, "2025-06-11", body.Data.Date)
	require.Equal(t, []string{"Logic"}, titles(body.Data.Items))

	resp = app.do(t, http.MethodGet, "/api/v1/assignments/by-date/11-06-2025", "alice", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewHandlerCalendar(t *testing.T) {
	app := setupCalendarApp(t)
	seedAssignments(t, app.repo, "alice", viewFixture()...)

	resp := app.do(t, http.MethodGet, "/api/v1/calendar?tz=UTC&at="+referenceInstant, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope[dto.CalendarResponse]
	decodeResponse(t, resp, &body)
	require.Equal(t, "compact", body.Data.View)
	require.Equal(t, "2025-06-08", body.Data.Start)
	require.Len(t, body.Data.Days, planner.CompactWindow)
	require.True(t, body.Data.Days[2].IsToday)
	require.False(t, body.Data.Days[1].HasAssignments)

	resp = app.do(t, http.MethodGet, "/api/v1/calendar?view=expanded&shift=1&start=2025-06-08&tz=UTC&at="+referenceInstant, "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &body)
	require.Equal(t, "2025-07-06", body.Data.Start)
	require.Len(t, body.Data.Days, planner.ExpandedWindow)

	resp = app.do(t, http.MethodGet, "/api/v1/calendar?view=yearly", "alice", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewHandlerSubjectsPaging(t *testing.T) {
	app := setupCalendarApp(t)
	seedAssignments(t, app.repo, "alice", viewFixture()...)

	resp := app.do(t, http.MethodGet, "/api/v1/subjects?"+queryString(map[string][]string{
		"at":       {referenceInstant},
		"tz":       {"UTC"},
		"per_page": {"2"},
		"page":     {"Math:1", "Web:0"},
	}), "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope[dto.SubjectsResponse]
	decodeResponse(t, resp, &body)
	require.Len(t, body.Data.Subjects, 2)

	math := body.Data.Subjects[0]
	require.Equal(t, "Math", math.Subject)
	require.Equal(t, 1, math.Page.CurrentPage)
	require.Equal(t, 3, math.Page.TotalItems)
	require.Equal(t, []string{"Trees"}, titles(math.Page.Items))
	require.Equal(t, "due_soon", math.Status.Category)

	resp = app.do(t, http.MethodGet, "/api/v1/subjects?page=Math", "alice", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = app.do(t, http.MethodGet, "/api/v1/subjects?page=Math:-1", "alice", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestViewHandlerDemoRoutesArePublic(t *testing.T) {
	app := setupCalendarApp(t)
	seedAssignments(t, app.repo, "demo", viewFixture()...)

	resp := app.do(t, http.MethodGet, "/api/v1/demo/calendar?tz=UTC&at="+referenceInstant, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/v1/demo/subjects?tz=UTC&at="+referenceInstant, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var subjects envelope[dto.SubjectsResponse]
	decodeResponse(t, resp, &subjects)
	require.Len(t, subjects.Data.Subjects, 2)

	resp = app.do(t, http.MethodPost, "/api/v1/demo/assignments", "", map[string]string{"title": "x"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPreferenceHandlerRoundTrip(t *testing.T) {
	app := setupCalendarApp(t)

	resp := app.do(t, http.MethodGet, "/api/v1/preferences", "alice", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var prefs envelope[dto.PreferenceResponse]
	decodeResponse(t, resp, &prefs)
	require.False(t, prefs.Data.UnsubmittedOnly)
	require.True(t, prefs.Data.HideOverdueCalendar)

	resp = app.do(t, http.MethodPut, "/api/v1/preferences", "alice", map[string]bool{"hide_overdue_calendar": false})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &prefs)
	require.False(t, prefs.Data.HideOverdueCalendar)
	require.True(t, prefs.Data.HideOverdueSubjects)

	seedAssignments(t, app.repo, "alice", viewFixture()...)
	resp = app.do(t, http.MethodGet, "/api/v1/calendar?tz=UTC&at="+referenceInstant, "alice", nil)
	var calendar envelope[dto.CalendarResponse]
	decodeResponse(t, resp, &calendar)
	require.True(t, calendar.Data.Days[1].HasAssignments)
}
