package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/models"
	"github.com/noah-isme/assignment-calendar-api/internal/observability"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
)

// SnapshotService returns a user's full assignment list, served from Redis
// when a fresh copy is cached.
type SnapshotService interface {
	Load(ctx context.Context, userID string) ([]models.Assignment, error)
	Invalidate(ctx context.Context, userID string)
}

type snapshotService struct {
	repo     repository.AssignmentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewSnapshotService builds the snapshot loader. A nil cache disables caching.
func NewSnapshotService(repo repository.AssignmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) SnapshotService {
	return &snapshotService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "snapshot_service").Logger(),
	}
}

func snapshotGenerationKey(userID string) string {
	return fmt.Sprintf("assignments:snapshot:%s:gen", userID)
}

func snapshotKey(userID string, generation int64) string {
	return fmt.Sprintf("assignments:snapshot:%s:%d", userID, generation)
}

// Load returns the user's assignments. Snapshots are stored under the
// generation current when the load began; Invalidate bumps the generation,
// so a load racing a mutation writes a key no later reader asks for.
func (s *snapshotService) Load(ctx context.Context, userID string) ([]models.Assignment, error) {
	generation, cacheable := s.generation(ctx, userID)

	if cacheable {
		key := snapshotKey(userID, generation)
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var snapshot []models.Assignment
			if unmarshalErr := json.Unmarshal([]byte(cached), &snapshot); unmarshalErr == nil {
				observability.SnapshotLookups().WithLabelValues("hit").Inc()
				s.logger.Debug().Str("user_id", userID).Int64("generation", generation).Msg("snapshot cache hit")
				if snapshot == nil {
					snapshot = []models.Assignment{}
				}
				return snapshot, nil
			}
			s.logger.Warn().Str("user_id", userID).Msg("discarding unreadable snapshot")
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read snapshot cache")
		}
		observability.SnapshotLookups().WithLabelValues("miss").Inc()
	}

	assignments, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		payload, err := json.Marshal(assignments)
		if err == nil {
			if err := s.cache.Set(ctx, snapshotKey(userID, generation), payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store snapshot cache")
			}
		}
	}

	return assignments, nil
}

// generation reads the user's snapshot generation. A missing counter is
// generation 0; an unreachable cache disables caching for this load.
func (s *snapshotService) generation(ctx context.Context, userID string) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.Get(ctx, snapshotGenerationKey(userID)).Int64()
	switch {
	case err == nil:
		return generation, true
	case err == redis.Nil:
		return 0, true
	default:
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to read snapshot generation")
		observability.SnapshotLookups().WithLabelValues("miss").Inc()
		return 0, false
	}
}

// Invalidate retires every snapshot stored for the user so far.
func (s *snapshotService) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	generation, err := s.cache.Incr(ctx, snapshotGenerationKey(userID)).Result()
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate snapshot cache")
		return
	}
	if err := s.cache.Del(ctx, snapshotKey(userID, generation-1)).Err(); err != nil {
		s.logger.Debug().Err(err).Str("user_id", userID).Msg("failed to drop retired snapshot")
	}
}
