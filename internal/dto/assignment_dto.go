package dto

import (
	"time"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/planner"
)

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	CourseName string `json:"course_name" validate:"required,max=255"`
	Lesson     string `json:"lesson" validate:"max=64"`
	Title      string `json:"title" validate:"required,max=255"`
	DueDate    string `json:"due_date" validate:"required,len=10,datetime=2006-01-02"`
	DueTime    string `json:"due_time" validate:"required,len=5,datetime=15:04"`
	Platform   string `json:"platform" validate:"required,oneof=teams openlms"`
	Completed  bool   `json:"completed"`
	Link       string `json:"link" validate:"omitempty,url,max=2048"`
	Memo       string `json:"memo" validate:"max=2000"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	CourseName *string `json:"course_name" validate:"omitempty,min=1,max=255"`
	Lesson     *string `json:"lesson" validate:"omitempty,max=64"`
	Title      *string `json:"title" validate:"omitempty,min=1,max=255"`
	DueDate    *string `json:"due_date" validate:"omitempty,len=10,datetime=2006-01-02"`
	DueTime    *string `json:"due_time" validate:"omitempty,len=5,datetime=15:04"`
	Platform   *string `json:"platform" validate:"omitempty,oneof=teams openlms"`
	Completed  *bool   `json:"completed"`
	Link       *string `json:"link" validate:"omitempty,url,max=2048"`
	Memo       *string `json:"memo" validate:"omitempty,max=2000"`
}

// AssignmentCompletionRequest toggles the completion flag only.
type AssignmentCompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID         uint      `json:"id"`
	CourseName string    `json:"course_name"`
	Lesson     string    `json:"lesson"`
	Title      string    `json:"title"`
	DueDate    string    `json:"due_date"`
	DueTime    string    `json:"due_time"`
	Platform   string    `json:"platform"`
	Completed  bool      `json:"completed"`
	Link       string    `json:"link,omitempty"`
	Memo       string    `json:"memo,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         model.ID,
		CourseName: model.CourseName,
		Lesson:     model.Lesson,
		Title:      model.Title,
		DueDate:    model.DueDate,
		DueTime:    model.DueTime,
		Platform:   model.Platform,
		Completed:  model.Completed,
		Link:       model.Link,
		Memo:       model.Memo,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}

// AssignmentView is an assignment annotated with its due instant and status.
type AssignmentView struct {
	AssignmentResponse
	DueAt  time.Time            `json:"due_at"`
	Status planner.StatusResult `json:"status"`
}

// NewAssignmentViews converts planner entries into DTOs.
func NewAssignmentViews(entries []planner.Entry) []AssignmentView {
	views := make([]AssignmentView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, AssignmentView{
			AssignmentResponse: NewAssignmentResponse(entry.Assignment),
			DueAt:              entry.Due,
			Status:             entry.Status,
		})
	}
	return views
}
