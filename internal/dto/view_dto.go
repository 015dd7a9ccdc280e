package dto

import "time"

// ListQuery narrows the flat assignment list. Nil toggles fall back to the
// user's stored preferences.
type ListQuery struct {
	UnsubmittedOnly *bool
	HideOverdue     *bool
	Start           string `validate:"omitempty,len=10,datetime=2006-01-02"`
	Days            int    `validate:"omitempty,min=1,max=366"`
	CompletedLast   *bool
}

// AssignmentListResponse is the flat list view.
type AssignmentListResponse struct {
	Items         []AssignmentView `json:"items"`
	ReferenceTime time.Time        `json:"reference_time"`
	Filters       ListFilters      `json:"filters"`
}

// ListFilters echoes the filters that produced a list.
type ListFilters struct {
	UnsubmittedOnly bool   `json:"unsubmitted_only"`
	HideOverdue     bool   `json:"hide_overdue"`
	Start           string `json:"start,omitempty"`
	Days            int    `json:"days,omitempty"`
	CompletedLast   bool   `json:"completed_last"`
}

// CalendarQuery selects the calendar window.
type CalendarQuery struct {
	Start           string `validate:"omitempty,len=10,datetime=2006-01-02"`
	View            string `validate:"omitempty,oneof=compact expanded"`
	Shift           int    `validate:"min=-520,max=520"`
	UnsubmittedOnly *bool
	HideOverdue     *bool
}

// CalendarResponse is the calendar grid view.
type CalendarResponse struct {
	View          string        `json:"view"`
	Start         string        `json:"start"`
	End           string        `json:"end"`
	Today         string        `json:"today"`
	PrevStart     string        `json:"prev_start"`
	NextStart     string        `json:"next_start"`
	ReferenceTime time.Time     `json:"reference_time"`
	Days          []CalendarDay `json:"days"`
}

// CalendarDay is one cell of the calendar grid.
type CalendarDay struct {
	Date           string   `json:"date"`
	Day            int      `json:"day"`
	Weekday        int      `json:"weekday"`
	IsToday        bool     `json:"is_today"`
	Platforms      []string `json:"platforms"`
	HasAssignments bool     `json:"has_assignments"`
	Count          int      `json:"count"`
}

// DayAssignmentsResponse lists what is due on a single day.
type DayAssignmentsResponse struct {
	Date  string           `json:"date"`
	Items []AssignmentView `json:"items"`
}

// SubjectsQuery selects the grouped subject view. Pages holds the page
// index of each subject; subjects not present start on the first page.
type SubjectsQuery struct {
	PerPage     int `validate:"omitempty,min=1,max=50"`
	Pages       map[string]int
	HideOverdue *bool
}

// SubjectsResponse is the grouped subject view.
type SubjectsResponse struct {
	Subjects      []SubjectCard `json:"subjects"`
	ReferenceTime time.Time     `json:"reference_time"`
	HideOverdue   bool          `json:"hide_overdue"`
}

// SubjectCard summarises one subject.
type SubjectCard struct {
	Subject    string          `json:"subject"`
	Platform   string          `json:"platform"`
	Status     SubjectStatus   `json:"status"`
	MostUrgent *AssignmentView `json:"most_urgent,omitempty"`
	Page       SubjectPage     `json:"page"`
}

// SubjectStatus is the headline status of a subject.
type SubjectStatus struct {
	Category     string `json:"category"`
	AllCompleted bool   `json:"all_completed"`
	Unit         string `json:"unit,omitempty"`
	Amount       *int64 `json:"amount,omitempty"`
}

// SubjectPage is one page of a subject's assignment history.
type SubjectPage struct {
	Items        []AssignmentView `json:"items"`
	CurrentPage  int              `json:"current_page"`
	ItemsPerPage int              `json:"items_per_page"`
	TotalItems   int              `json:"total_items"`
	TotalPages   int              `json:"total_pages"`
	HasPrev      bool             `json:"has_prev"`
	HasNext      bool             `json:"has_next"`
}
