package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/legal-request-service/internal/access"
	"github.com/spec-kit/legal-request-service/internal/domain"
	"github.com/spec-kit/legal-request-service/internal/events"
	"github.com/spec-kit/legal-request-service/internal/repository"
	apperrors "github.com/spec-kit/legal-request-service/pkg/util"
)

const statsKeyPrefix = "legal:stats:"

// StatsService computes the dashboard status counters over the actor's
// role-scoped ticket set, with a short-lived Redis cache in front of the
// database. Cache entries are dropped whenever a ticket changes.
type StatsService struct {
	tickets repository.TicketRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewStatsService constructs the service. A nil cache client disables caching.
func NewStatsService(tickets repository.TicketRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{tickets: tickets, cache: cache, ttl: ttl, logger: logger}
}

// CountByStatus returns status→count over the tickets the actor can list.
func (s *StatsService) CountByStatus(ctx context.Context, actor *domain.User) (map[domain.TicketStatus]int64, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}

	var ownerID *string
	cacheKey := statsKeyPrefix + "all"
	if !access.CanListAllTickets(actor) {
		id := actor.ID
		ownerID = &id
		cacheKey = statsKeyPrefix + "owner:" + id
	}

	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	counts, err := s.tickets.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, cacheKey, counts)
	return counts, nil
}

// RegisterInvalidation subscribes cache invalidation to ticket mutations.
func (s *StatsService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	handler := func(ctx context.Context, event events.Event) error {
		s.invalidate(ctx, event.ActorID)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, handler)
	dispatcher.Subscribe(events.EventTicketUpdated, handler)
	dispatcher.Subscribe(events.EventTicketDeleted, handler)
}

func (s *StatsService) readCache(ctx context.Context, key string) (map[domain.TicketStatus]int64, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var counts map[domain.TicketStatus]int64
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, false
	}
	return counts, true
}

func (s *StatsService) writeCache(ctx context.Context, key string, counts map[domain.TicketStatus]int64) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil && s.logger != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *StatsService) invalidate(ctx context.Context, actorID string) {
	if s.cache == nil {
		return
	}
	keys := []string{statsKeyPrefix + "all"}
	if actorID != "" {
		keys = append(keys, statsKeyPrefix+"owner:"+actorID)
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil && s.logger != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}
