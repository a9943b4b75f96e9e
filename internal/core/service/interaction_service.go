package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type InteractionService struct {
	repo     ports.InteractionRepository
	refs     referenceChecker
	activity *ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewInteractionService(
	repo ports.InteractionRepository,
	customers ports.CustomerRepository,
	activity *ActivityRecorder,
	logger zerolog.Logger,
) *InteractionService {
	return &InteractionService{
		repo:     repo,
		refs:     referenceChecker{customers: customers},
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *InteractionService) List(ctx context.Context, filter ports.InteractionFilter) (*ports.ListResult[domain.Interaction], error) {
	filter.PageRequest = filter.PageRequest.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}

func (s *InteractionService) Get(ctx context.Context, id string) (*domain.Interaction, error) {
	return s.repo.FindByID(ctx, id)
}

// Create attributes the interaction to the calling user.
func (s *InteractionService) Create(ctx context.Context, actor domain.Principal, in ports.InteractionInput) (*domain.Interaction, error) {
	if err := s.refs.customer(ctx, &in.CustomerID); err != nil {
		return nil, err
	}

	i := s.fromInput(in)
	if actor.UserID != "" {
		uid := actor.UserID
		i.UserID = &uid
	}

	created, err := s.repo.Create(ctx, i)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create interaction")
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityInteraction, created.ID, domain.ActionCreated, "", string(created.Type))
	return created, nil
}

// Update replaces type, notes, timestamp and customer. The creator is kept.
func (s *InteractionService) Update(ctx context.Context, actor domain.Principal, id string, in ports.InteractionInput) (*domain.Interaction, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.refs.customer(ctx, &in.CustomerID); err != nil {
		return nil, err
	}

	i := s.fromInput(in)
	i.ID = id
	i.UserID = current.UserID
	if in.Timestamp == nil {
		i.Timestamp = current.Timestamp
	}

	updated, err := s.repo.Update(ctx, i)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityInteraction, id, domain.ActionUpdated, "", "")
	return updated, nil
}

func (s *InteractionService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EntitiesDeletedTotal.WithLabelValues(domain.EntityInteraction).Inc()
	s.activity.Record(ctx, actor, domain.EntityInteraction, id, domain.ActionDeleted, "", "")
	return nil
}

func (s *InteractionService) fromInput(in ports.InteractionInput) *domain.Interaction {
	ts := s.now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}
	return &domain.Interaction{
		Type:       in.Type,
		Notes:      in.Notes,
		Timestamp:  ts,
		CustomerID: in.CustomerID,
	}
}
