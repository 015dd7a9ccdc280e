package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/noah-isme/assignment-calendar-api/internal/dto"
	"github.com/noah-isme/assignment-calendar-api/internal/events"
	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/observability"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
)

var (
	// ErrAssignmentNotFound indicates the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrDemoReadOnly indicates a mutation was attempted on the demo calendar.
	ErrDemoReadOnly = errors.New("demo calendar is read-only")
)

const assignmentTracer = "github.com/noah-isme/assignment-calendar-api/internal/service/assignment"

// AssignmentService exposes assignment domain use cases.
type AssignmentService interface {
	Get(ctx context.Context, userID string, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, userID string, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	Update(ctx context.Context, userID string, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	SetCompletion(ctx context.Context, userID string, id uint, payload dto.AssignmentCompletionRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, userID string, id uint) error
}

type assignmentService struct {
	repo       repository.AssignmentRepository
	snapshots  SnapshotService
	publisher  events.Publisher
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	demoUserID string
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, snapshots SnapshotService, publisher events.Publisher, validate *validator.Validate, demoUserID string, logger zerolog.Logger) AssignmentService {
	if publisher == nil {
		publisher = events.Nop()
	}
	return &assignmentService{
		repo:       repo,
		snapshots:  snapshots,
		publisher:  publisher,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		demoUserID: strings.TrimSpace(demoUserID),
		logger:     logger.With().Str("component", "assignment_service").Logger(),
		now:        time.Now,
	}
}

func (s *assignmentService) Get(ctx context.Context, userID string, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, userID string, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	ctx, span := otel.Tracer(assignmentTracer).Start(ctx, "assignments.create")
	defer span.End()

	if err := s.ensureWritable(userID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	payload.CourseName = s.sanitize(payload.CourseName)
	payload.Lesson = s.sanitize(payload.Lesson)
	payload.Title = s.sanitize(payload.Title)
	payload.Memo = s.sanitize(payload.Memo)
	payload.Link = strings.TrimSpace(payload.Link)

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		UserID:     userID,
		CourseName: payload.CourseName,
		Lesson:     payload.Lesson,
		Title:      payload.Title,
		DueDate:    payload.DueDate,
		DueTime:    payload.DueTime,
		Platform:   payload.Platform,
		Completed:  payload.Completed,
		Link:       payload.Link,
		Memo:       payload.Memo,
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create_failed")
		return dto.AssignmentResponse{}, err
	}

	span.SetAttributes(attribute.Int("assignment.id", int(assignment.ID)))
	s.afterMutation(ctx, events.AssignmentCreated, userID, assignment.ID)
	s.logger.Info().Str("user_id", userID).Uint("assignment_id", assignment.ID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, userID string, id uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	ctx, span := otel.Tracer(assignmentTracer).Start(ctx, "assignments.update")
	span.SetAttributes(attribute.Int("assignment.id", int(id)))
	defer span.End()

	if err := s.ensureWritable(userID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.sanitizeOptional(payload.CourseName)
	s.sanitizeOptional(payload.Lesson)
	s.sanitizeOptional(payload.Title)
	s.sanitizeOptional(payload.Memo)

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	if payload.CourseName != nil {
		assignment.CourseName = *payload.CourseName
	}
	if payload.Lesson != nil {
		assignment.Lesson = *payload.Lesson
	}
	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.DueDate != nil {
		assignment.DueDate = *payload.DueDate
	}
	if payload.DueTime != nil {
		assignment.DueTime = *payload.DueTime
	}
	if payload.Platform != nil {
		assignment.Platform = *payload.Platform
	}
	if payload.Completed != nil {
		assignment.Completed = *payload.Completed
	}
	if payload.Link != nil {
		assignment.Link = strings.TrimSpace(*payload.Link)
	}
	if payload.Memo != nil {
		assignment.Memo = *payload.Memo
	}

	if err := s.repo.Update(ctx, &assignment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update_failed")
		return dto.AssignmentResponse{}, err
	}

	s.afterMutation(ctx, events.AssignmentUpdated, userID, assignment.ID)
	s.logger.Info().Str("user_id", userID).Uint("assignment_id", assignment.ID).Msg("assignment updated")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) SetCompletion(ctx context.Context, userID string, id uint, payload dto.AssignmentCompletionRequest) (dto.AssignmentResponse, error) {
	ctx, span := otel.Tracer(assignmentTracer).Start(ctx, "assignments.completion")
	span.SetAttributes(attribute.Int("assignment.id", int(id)))
	defer span.End()

	if err := s.ensureWritable(userID); err != nil {
		return dto.AssignmentResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.repo.UpdateCompletion(ctx, userID, id, *payload.Completed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion_failed")
		return dto.AssignmentResponse{}, err
	}

	span.SetAttributes(attribute.Bool("assignment.completed", assignment.Completed))
	s.afterMutation(ctx, events.AssignmentCompleted, userID, id)
	s.logger.Info().Str("user_id", userID).Uint("assignment_id", id).Bool("completed", assignment.Completed).Msg("assignment completion changed")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, userID string, id uint) error {
	ctx, span := otel.Tracer(assignmentTracer).Start(ctx, "assignments.delete")
	span.SetAttributes(attribute.Int("assignment.id", int(id)))
	defer span.End()

	if err := s.ensureWritable(userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete_failed")
		return err
	}

	s.afterMutation(ctx, events.AssignmentDeleted, userID, id)
	s.logger.Info().Str("user_id", userID).Uint("assignment_id", id).Msg("assignment deleted")
	return nil
}

func (s *assignmentService) ensureWritable(userID string) error {
	if s.demoUserID != "" && userID == s.demoUserID {
		return ErrDemoReadOnly
	}
	return nil
}

// afterMutation drops the cached snapshot and announces the change. Neither
// step fails the mutation.
func (s *assignmentService) afterMutation(ctx context.Context, eventType events.Type, userID string, id uint) {
	if s.snapshots != nil {
		s.snapshots.Invalidate(ctx, userID)
	}

	event := events.New(ctx, eventType, userID, id, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		observability.EventPublishFailures().Inc()
		s.logger.Warn().Err(err).Str("event_type", string(eventType)).Uint("assignment_id", id).Msg("failed to publish assignment event")
	}
}

func (s *assignmentService) sanitize(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

func (s *assignmentService) sanitizeOptional(value *string) {
	if value != nil {
		*value = s.sanitize(*value)
	}
}
