package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/observability"
	"github.com/noah-isme/assignment-calendar-api/internal/planner"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
)

var (
	// ErrCorruptAssignment indicates a stored assignment has an unreadable due date or time.
	ErrCorruptAssignment = errors.New("stored assignment has a malformed due date")
	// ErrInvalidDate indicates a date parameter is not a valid YYYY-MM-DD day.
	ErrInvalidDate = errors.New("invalid date")
)

const (
	viewTracer = "github.com/noah-isme/assignment-calendar-api/internal/service/views"

	// ViewCompact and ViewExpanded name the calendar window sizes.
	ViewCompact  = "compact"
	ViewExpanded = "expanded"

	defaultRangeDays = 7
)

// ViewContext identifies who is looking and from when and where.
type ViewContext struct {
	UserID string
	// At overrides the reference instant; nil means now.
	At *time.Time
	// Location is the viewer's zone; nil means the service default.
	Location *time.Location
}

// ViewService renders the read-only planner views over a user's snapshot.
type ViewService interface {
	List(ctx context.Context, view ViewContext, query dto.ListQuery) (dto.AssignmentListResponse, error)
	DayAssignments(ctx context.Context, view ViewContext, date string) (dto.DayAssignmentsResponse, error)
	Calendar(ctx context.Context, view ViewContext, query dto.CalendarQuery) (dto.CalendarResponse, error)
	Subjects(ctx context.Context, view ViewContext, query dto.SubjectsQuery) (dto.SubjectsResponse, error)
}

type viewService struct {
	snapshots    SnapshotService
	assignments  repository.AssignmentRepository
	preferences  PreferenceService
	validator    *validator.Validate
	location     *time.Location
	itemsPerPage int
	logger       zerolog.Logger
	now          func() time.Time
}

// NewViewService builds the view service. location is the zone used when a
// request does not name one.
func NewViewService(snapshots SnapshotService, assignments repository.AssignmentRepository, preferences PreferenceService, validate *validator.Validate, location *time.Location, itemsPerPage int, logger zerolog.Logger) ViewService {
	if location == nil {
		location = time.Local
	}
	if itemsPerPage < 1 {
		itemsPerPage = planner.DefaultItemsPerPage
	}
	return &viewService{
		snapshots:    snapshots,
		assignments:  assignments,
		preferences:  preferences,
		validator:    validate,
		location:     location,
		itemsPerPage: itemsPerPage,
		logger:       logger.With().Str("component", "view_service").Logger(),
		now:          time.Now,
	}
}

func (s *viewService) reference(view ViewContext) time.Time {
	reference := s.now()
	if view.At != nil {
		reference = *view.At
	}
	loc := s.location
	if view.Location != nil {
		loc = view.Location
	}
	return reference.In(loc)
}

func (s *viewService) load(ctx context.Context, span trace.Span, viewName, userID string) ([]models.Assignment, error) {
	assignments, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_snapshot_failed")
		return nil, err
	}
	if err := s.checkIntegrity(span, userID, assignments); err != nil {
		return nil, err
	}

	observability.ViewAssignments().WithLabelValues(viewName).Observe(float64(len(assignments)))
	span.SetAttributes(attribute.Int("view.assignments", len(assignments)))
	return assignments, nil
}

func (s *viewService) checkIntegrity(span trace.Span, userID string, assignments []models.Assignment) error {
	if err := planner.Validate(assignments); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corrupt_snapshot")
		s.logger.Error().Err(err).Str("user_id", userID).Msg("snapshot contains malformed assignments")
		return fmt.Errorf("%w: %v", ErrCorruptAssignment, err)
	}
	return nil
}

func (s *viewService) List(ctx context.Context, view ViewContext, query dto.ListQuery) (dto.AssignmentListResponse, error) {
	ctx, span := otel.Tracer(viewTracer).Start(ctx, "views.list")
	defer span.End()

	if err := s.validator.Struct(query); err != nil {
		return dto.AssignmentListResponse{}, err
	}

	now := s.reference(view)
	preference, err := s.preferences.Resolve(ctx, view.UserID)
	if err != nil {
		return dto.AssignmentListResponse{}, err
	}

	filters := planner.Filters{
		UnsubmittedOnly: boolOr(query.UnsubmittedOnly, preference.UnsubmittedOnly),
		HideOverdue:     boolOr(query.HideOverdue, preference.HideOverdueCalendar),
	}
	echo := dto.ListFilters{
		UnsubmittedOnly: filters.UnsubmittedOnly,
		HideOverdue:     filters.HideOverdue,
		CompletedLast:   boolOr(query.CompletedLast, true),
	}

	if query.Start != "" || query.Days != 0 {
		start := planner.Midnight(now)
		if query.Start != "" {
			parsed, err := planner.ParseDateKey(query.Start, now.Location())
			if err != nil {
				return dto.AssignmentListResponse{}, fmt.Errorf("%w: %s", ErrInvalidDate, query.Start)
			}
			start = parsed
		}
		days := query.Days
		if days == 0 {
			days = defaultRangeDays
		}
		filters.DateRange = &planner.DateRange{Start: start, Days: days}
		echo.Start = planner.DateKey(start)
		echo.Days = days
	}

	assignments, err := s.load(ctx, span, "list", view.UserID)
	if err != nil {
		return dto.AssignmentListResponse{}, err
	}

	filtered := planner.Filter(assignments, filters, now)
	sorted := planner.SortByDueIn(filtered, echo.CompletedLast, now.Location())

	return dto.AssignmentListResponse{
		Items:         dto.NewAssignmentViews(planner.Annotate(sorted, now)),
		ReferenceTime: now,
		Filters:       echo,
	}, nil
}

func (s *viewService) DayAssignments(ctx context.Context, view ViewContext, date string) (dto.DayAssignmentsResponse, error) {
	ctx, span := otel.Tracer(viewTracer).Start(ctx, "views.day")
	span.SetAttributes(attribute.String("view.date", date))
	defer span.End()

	now := s.reference(view)
	day, err := planner.ParseDateKey(date, now.Location())
	if err != nil {
		return dto.DayAssignmentsResponse{}, fmt.Errorf("%w: %s", ErrInvalidDate, date)
	}

	assignments, err := s.assignments.ListByDate(ctx, view.UserID, planner.DateKey(day))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_by_date_failed")
		return dto.DayAssignmentsResponse{}, err
	}
	if err := s.checkIntegrity(span, view.UserID, assignments); err != nil {
		return dto.DayAssignmentsResponse{}, err
	}
	observability.ViewAssignments().WithLabelValues("day").Observe(float64(len(assignments)))

	sorted := planner.SortByDueIn(assignments, false, now.Location())
	return dto.DayAssignmentsResponse{
		Date:  planner.DateKey(day),
		Items: dto.NewAssignmentViews(planner.Annotate(sorted, now)),
	}, nil
}

func (s *viewService) Calendar(ctx context.Context, view ViewContext, query dto.CalendarQuery) (dto.CalendarResponse, error) {
	ctx, span := otel.Tracer(viewTracer).Start(ctx, "views.calendar")
	defer span.End()

	if err := s.validator.Struct(query); err != nil {
		return dto.CalendarResponse{}, err
	}

	now := s.reference(view)
	preference, err := s.preferences.Resolve(ctx, view.UserID)
	if err != nil {
		return dto.CalendarResponse{}, err
	}

	viewName := query.View
	if viewName == "" {
		viewName = ViewCompact
	}
	length := planner.CompactWindow
	if viewName == ViewExpanded {
		length = planner.ExpandedWindow
	}
	step := planner.StepWeeks(length)

	start := planner.WeekStart(now)
	if query.Start != "" {
		parsed, err := planner.ParseDateKey(query.Start, now.Location())
		if err != nil {
			return dto.CalendarResponse{}, fmt.Errorf("%w: %s", ErrInvalidDate, query.Start)
		}
		start = parsed
	}
	start = planner.ShiftWindow(start, query.Shift, step)

	filters := planner.CalendarFilters{
		UnsubmittedOnly: boolOr(query.UnsubmittedOnly, preference.UnsubmittedOnly),
		HideOverdue:     boolOr(query.HideOverdue, preference.HideOverdueCalendar),
	}
	span.SetAttributes(
		attribute.String("calendar.view", viewName),
		attribute.String("calendar.start", planner.DateKey(start)),
	)

	assignments, err := s.load(ctx, span, "calendar", view.UserID)
	if err != nil {
		return dto.CalendarResponse{}, err
	}

	cells := planner.BuildWindow(start, length, assignments, filters, now, now)
	days := make([]dto.CalendarDay, 0, len(cells))
	for _, cell := range cells {
		days = append(days, dto.CalendarDay{
			Date:           cell.DateKey,
			Day:            cell.Date.Day(),
			Weekday:        int(cell.Date.Weekday()),
			IsToday:        cell.IsToday,
			Platforms:      cell.Platforms,
			HasAssignments: cell.HasAssignments,
			Count:          cell.Count,
		})
	}

	end := start
	if len(cells) > 0 {
		end = cells[len(cells)-1].Date
	}

	return dto.CalendarResponse{
		View:          viewName,
		Start:         planner.DateKey(start),
		End:           planner.DateKey(end),
		Today:         planner.DateKey(now),
		PrevStart:     planner.DateKey(planner.ShiftWindow(start, -1, step)),
		NextStart:     planner.DateKey(planner.ShiftWindow(start, 1, step)),
		ReferenceTime: now,
		Days:          days,
	}, nil
}

func (s *viewService) Subjects(ctx context.Context, view ViewContext, query dto.SubjectsQuery) (dto.SubjectsResponse, error) {
	ctx, span := otel.Tracer(viewTracer).Start(ctx, "views.subjects")
	defer span.End()

	if err := s.validator.Struct(query); err != nil {
		return dto.SubjectsResponse{}, err
	}

	now := s.reference(view)
	preference, err := s.preferences.Resolve(ctx, view.UserID)
	if err != nil {
		return dto.SubjectsResponse{}, err
	}
	hideOverdue := boolOr(query.HideOverdue, preference.HideOverdueSubjects)

	perPage := query.PerPage
	if perPage < 1 {
		perPage = s.itemsPerPage
	}

	assignments, err := s.load(ctx, span, "subjects", view.UserID)
	if err != nil {
		return dto.SubjectsResponse{}, err
	}

	ordered := planner.SortByDueIn(assignments, false, now.Location())
	pages := planner.InitSubjectPages(ordered, perPage)
	for subject, index := range query.Pages {
		if _, ok := pages[subject]; ok {
			pages[subject] = planner.PageState{CurrentPage: index, ItemsPerPage: perPage}
		}
	}

	groups := planner.GroupBySubject(ordered)
	span.SetAttributes(attribute.Int("subjects.count", len(groups)))

	cards := make([]dto.SubjectCard, 0, len(groups))
	for _, group := range groups {
		cards = append(cards, s.subjectCard(group, pages.Get(group.Subject, perPage), hideOverdue, now))
	}

	return dto.SubjectsResponse{
		Subjects:      cards,
		ReferenceTime: now,
		HideOverdue:   hideOverdue,
	}, nil
}

func (s *viewService) subjectCard(group planner.SubjectGroup, state planner.PageState, hideOverdue bool, now time.Time) dto.SubjectCard {
	aggregate := planner.AggregateStatus(group.Assignments, hideOverdue, now)

	page := planner.Paginate(group.Assignments, hideOverdue, now, state)
	if clamped := state.Clamp(page.TotalPages); clamped != state {
		state = clamped
		page = planner.Paginate(group.Assignments, hideOverdue, now, state)
	}

	card := dto.SubjectCard{
		Subject:  group.Subject,
		Platform: group.Platform,
		Status: dto.SubjectStatus{
			Category:     string(aggregate.Status.Category),
			AllCompleted: aggregate.AllCompleted(),
		},
		Page: dto.SubjectPage{
			Items:        dto.NewAssignmentViews(planner.Annotate(page.Items, now)),
			CurrentPage:  page.PageIndex,
			ItemsPerPage: page.ItemsPerPage,
			TotalItems:   page.TotalItems,
			TotalPages:   page.TotalPages,
			HasPrev:      state.Prev() != state,
			HasNext:      state.Next(page.TotalPages) != state,
		},
	}
	if remaining := aggregate.Status.Remaining; remaining != nil {
		amount := remaining.Amount
		card.Status.Unit = string(remaining.Unit)
		card.Status.Amount = &amount
	}
	if aggregate.MostUrgent != nil {
		views := dto.NewAssignmentViews(planner.Annotate([]models.Assignment{*aggregate.MostUrgent}, now))
		card.MostUrgent = &views[0]
	}
	return card
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
