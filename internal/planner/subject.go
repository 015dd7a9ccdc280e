package planner

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
)

// DefaultItemsPerPage is the page size of a subject card.
const DefaultItemsPerPage = 3

// SubjectGroup collects every assignment of one course.
type SubjectGroup struct {
	Subject     string
	Platform    string
	Assignments []models.Assignment
}

// GroupBySubject partitions assignments by exact course name. Groups appear
// in the order their course was first seen; no case or whitespace folding
// is applied, so "Math" and "math " are two subjects.
func GroupBySubject(assignments []models.Assignment) []SubjectGroup {
	groups := make([]SubjectGroup, 0)
	index := make(map[string]int)
	for _, a := range assignments {
		pos, ok := index[a.CourseName]
		if !ok {
			pos = len(groups)
			index[a.CourseName] = pos
			groups = append(groups, SubjectGroup{Subject: a.CourseName, Platform: a.Platform})
		}
		groups[pos].Assignments = append(groups[pos].Assignments, a)
	}
	return groups
}

// IndexSubjects maps each subject name to its position in groups.
func IndexSubjects(groups []SubjectGroup) map[string]int {
	index := make(map[string]int, len(groups))
	for i, g := range groups {
		index[g.Subject] = i
	}
	return index
}

// Aggregate is the headline status of a subject: the status of its most
// urgent open assignment, or CategoryAllCompleted when nothing is open.
type Aggregate struct {
	Status     StatusResult
	MostUrgent *models.Assignment
}

// AllCompleted reports whether the subject has no open assignment left.
func (a Aggregate) AllCompleted() bool {
	return a.Status.Category == CategoryAllCompleted
}

// AggregateStatus computes the headline status of one subject's assignments.
// Completed assignments never count; with hideOverdue, overdue ones are
// ignored as well.
func AggregateStatus(assignments []models.Assignment, hideOverdue bool, now time.Time) Aggregate {
	open := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		MustDueInstant(a, now.Location())
		if a.Completed {
			continue
		}
		if hideOverdue && IsOverdue(a, now) {
			continue
		}
		open = append(open, a)
	}

	if len(open) == 0 {
		return Aggregate{Status: StatusResult{Category: CategoryAllCompleted}}
	}

	sorted := SortByDueIn(open, false, now.Location())
	mostUrgent := sorted[0]
	return Aggregate{
		Status:     Classify(mostUrgent, now),
		MostUrgent: &mostUrgent,
	}
}

// PageState is the caller-owned pagination cursor of one subject.
type PageState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

// NewPageState returns a cursor on the first page.
func NewPageState(itemsPerPage int) PageState {
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}
	return PageState{ItemsPerPage: itemsPerPage}
}

// Prev moves one page back; it is a no-op on the first page.
func (p PageState) Prev() PageState {
	if p.CurrentPage > 0 {
		p.CurrentPage--
	}
	return p
}

// Next moves one page forward; it is a no-op on the last page.
func (p PageState) Next(totalPages int) PageState {
	if p.CurrentPage < totalPages-1 {
		p.CurrentPage++
	}
	return p
}

// Clamp pulls the cursor back inside [0, totalPages-1], or to 0 when there are no pages.
func (p PageState) Clamp(totalPages int) PageState {
	switch {
	case totalPages <= 0 || p.CurrentPage < 0:
		p.CurrentPage = 0
	case p.CurrentPage > totalPages-1:
		p.CurrentPage = totalPages - 1
	}
	return p
}

// SubjectPages holds the cursor of every subject on the grouped view.
type SubjectPages map[string]PageState

// InitSubjectPages creates a first-page cursor for every subject in assignments.
func InitSubjectPages(assignments []models.Assignment, itemsPerPage int) SubjectPages {
	pages := make(SubjectPages)
	for _, a := range assignments {
		if _, ok := pages[a.CourseName]; !ok {
			pages[a.CourseName] = NewPageState(itemsPerPage)
		}
	}
	return pages
}

// Get returns the cursor of subject, or a first-page cursor if none is stored.
func (s SubjectPages) Get(subject string, itemsPerPage int) PageState {
	if state, ok := s[subject]; ok {
		if state.ItemsPerPage < 1 {
			state.ItemsPerPage = NewPageState(itemsPerPage).ItemsPerPage
		}
		return state
	}
	return NewPageState(itemsPerPage)
}

// Page is one slice of a subject's browsable history.
type Page struct {
	Items        []models.Assignment
	PageIndex    int
	ItemsPerPage int
	TotalItems   int
	TotalPages   int
}

// TotalPages returns ceil(totalItems / itemsPerPage), 0 for an empty list.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Paginate returns the requested page of a subject's assignments. Completed
// assignments stay listed; with hideOverdue, open overdue ones are dropped.
// The page index is not corrected: a page past the end is empty and
// TotalPages tells the caller where to clamp.
func Paginate(assignments []models.Assignment, hideOverdue bool, now time.Time, state PageState) Page {
	perPage := state.ItemsPerPage
	if perPage < 1 {
		perPage = DefaultItemsPerPage
	}

	visible := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if hideOverdue && IsOverdue(a, now) {
			continue
		}
		visible = append(visible, a)
	}
	sorted := SortByDueIn(visible, false, now.Location())

	page := Page{
		Items:        []models.Assignment{},
		PageIndex:    state.CurrentPage,
		ItemsPerPage: perPage,
		TotalItems:   len(sorted),
		TotalPages:   TotalPages(len(sorted), perPage),
	}

	// Bounds are checked on the index so the offset below cannot overflow.
	if state.CurrentPage < 0 || state.CurrentPage >= page.TotalPages {
		return page
	}
	start := state.CurrentPage * perPage
	end := start + perPage
	if end > len(sorted) {
		end = len(sorted)
	}
	page.Items = append(page.Items, sorted[start:end]...)
	return page
}
