package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// ActivityRecorder appends audit entries. A nil repository makes it a no-op,
// and insert failures are logged, never returned.
type ActivityRecorder struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewActivityRecorder(repo ports.ActivityRepository, log zerolog.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, log: log, now: time.Now}
}

// Record stores one entry. from and to are only set for transitions.
func (r *ActivityRecorder) Record(ctx context.Context, actor domain.Principal, entityType, entityID, action, from, to string) {
	if r == nil || r.repo == nil {
		return
	}
	a := &domain.Activity{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		From:       from,
		To:         to,
		ActorID:    actor.UserID,
		At:         r.now().UTC(),
	}
	if err := r.repo.Insert(ctx, a); err != nil {
		r.log.Warn().Err(err).
			Str("entity", entityType).
			Str("entity_id", entityID).
			Str("action", action).
			Msg("failed to record activity")
	}
}

type activityService struct {
	repo ports.ActivityRepository
}

// NewActivityService returns an ActivityService. With no repository every
// listing is empty.
func NewActivityService(repo ports.ActivityRepository) ports.ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) List(ctx context.Context, filter ports.ActivityFilter) (*ports.ListResult[domain.Activity], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	if s.repo == nil {
		return &ports.ListResult[domain.Activity]{
			Items:      []*domain.Activity{},
			Pagination: domain.NewPagination(filter.PageRequest, 0),
		}, nil
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}
