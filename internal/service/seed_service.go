package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/planner"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
)

// ErrSeedDisabled indicates demo seeding is disabled by configuration.
var ErrSeedDisabled = errors.New("demo seeding is disabled")

// SeedService fills the demo calendar with sample coursework.
type SeedService interface {
	// SeedDemo inserts the sample assignments when the demo user has none
	// and reports how many were created.
	SeedDemo(ctx context.Context) (int, error)
}

type seedService struct {
	repo       repository.AssignmentRepository
	snapshots  SnapshotService
	demoUserID string
	enabled    bool
	logger     zerolog.Logger
	now        func() time.Time
	location   *time.Location
}

// NewSeedService constructs the demo seeder.
func NewSeedService(repo repository.AssignmentRepository, snapshots SnapshotService, demoUserID string, enabled bool, location *time.Location, logger zerolog.Logger) SeedService {
	if location == nil {
		location = time.Local
	}
	return &seedService{
		repo:       repo,
		snapshots:  snapshots,
		demoUserID: demoUserID,
		enabled:    enabled && demoUserID != "",
		logger:     logger.With().Str("component", "seed_service").Logger(),
		now:        time.Now,
		location:   location,
	}
}

type demoCourse struct {
	name     string
	platform string
	topics   []string
}

var demoCourses = []demoCourse{
	{
		name:     "Mobile Programming",
		platform: models.PlatformTeams,
		topics:   []string{"Development environment setup", "Dart language basics", "Using Flutter widgets", "State management with Provider", "Consuming REST APIs", "Firebase integration"},
	},
	{
		name:     "Web Programming",
		platform: models.PlatformOpenLMS,
		topics:   []string{"HTML and CSS fundamentals", "Modern JavaScript", "React components", "Routing and forms", "Server-side rendering"},
	},
	{
		name:     "Database Systems",
		platform: models.PlatformOpenLMS,
		topics:   []string{"ER modelling", "SQL queries", "Normalization", "Transactions"},
	},
}

func (s *seedService) SeedDemo(ctx context.Context) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}

	existing, err := s.repo.List(ctx, s.demoUserID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		s.logger.Debug().Int("existing", len(existing)).Msg("demo calendar already seeded")
		return 0, nil
	}

	items := buildDemoAssignments(s.demoUserID, s.now().In(s.location))
	for i := range items {
		if err := s.repo.Create(ctx, &items[i]); err != nil {
			return i, err
		}
	}

	if s.snapshots != nil {
		s.snapshots.Invalidate(ctx, s.demoUserID)
	}
	s.logger.Info().Int("created", len(items)).Str("user_id", s.demoUserID).Msg("demo calendar seeded")
	return len(items), nil
}

// buildDemoAssignments lays each course out weekly around today: lessons in
// the past are mostly done, one is left open so the overdue state shows up,
// and the rest fall due in the coming weeks.
func buildDemoAssignments(userID string, today time.Time) []models.Assignment {
	items := make([]models.Assignment, 0)
	for offset, course := range demoCourses {
		first := planner.Midnight(today).AddDate(0, 0, offset-14)
		for round, topic := range course.topics {
			due := first.AddDate(0, 0, 7*round)
			past := due.Before(planner.Midnight(today))
			items = append(items, models.Assignment{
				UserID:     userID,
				CourseName: course.name,
				Lesson:     lessonLabel(round + 1),
				Title:      topic,
				DueDate:    planner.DateKey(due),
				DueTime:    "23:59",
				Platform:   course.platform,
				Completed:  past && round != 1,
			})
		}
	}
	return items
}

func lessonLabel(round int) string {
	return fmt.Sprintf("Lesson %d", round)
}
