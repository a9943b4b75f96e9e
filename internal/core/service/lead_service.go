package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type LeadService struct {
	repo     ports.LeadRepository
	refs     referenceChecker
	activity *ActivityRecorder
	logger   zerolog.Logger
}

func NewLeadService(
	repo ports.LeadRepository,
	customers ports.CustomerRepository,
	users ports.UserRepository,
	activity *ActivityRecorder,
	logger zerolog.Logger,
) *LeadService {
	return &LeadService{
		repo:     repo,
		refs:     referenceChecker{customers: customers, users: users},
		activity: activity,
		logger:   logger,
	}
}

func (s *LeadService) List(ctx context.Context, filter ports.LeadFilter) (*ports.ListResult[domain.Lead], error) {
	filter.PageRequest = filter.PageRequest.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}

func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LeadService) Create(ctx context.Context, actor domain.Principal, in ports.LeadInput) (*domain.Lead, error) {
	lead := leadFromInput(in)
	if err := s.checkRefs(ctx, lead); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create lead")
		return nil, err
	}

	metrics.LeadsCreatedTotal.WithLabelValues(string(created.Stage)).Inc()
	s.activity.Record(ctx, actor, domain.EntityLead, created.ID, domain.ActionCreated, "", string(created.Stage))
	s.logger.Info().Str("lead_id", created.ID).Str("customer_id", created.CustomerID).Msg("lead created")
	return created, nil
}

func (s *LeadService) Update(ctx context.Context, actor domain.Principal, id string, in ports.LeadInput) (*domain.Lead, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lead := leadFromInput(in)
	lead.ID = id
	if err := s.checkRefs(ctx, lead); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, lead)
	if err != nil {
		return nil, err
	}

	if current.Stage != updated.Stage {
		metrics.LeadStageTransitionsTotal.WithLabelValues(string(current.Stage), string(updated.Stage)).Inc()
		s.activity.Record(ctx, actor, domain.EntityLead, id, domain.ActionStageChanged, string(current.Stage), string(updated.Stage))
	}
	s.activity.Record(ctx, actor, domain.EntityLead, id, domain.ActionUpdated, "", "")
	return updated, nil
}

// UpdateStage changes only the stage and reports the previous value.
func (s *LeadService) UpdateStage(ctx context.Context, actor domain.Principal, id string, stage domain.LeadStage) (*ports.StageChange, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStage(ctx, id, stage)
	if err != nil {
		return nil, err
	}

	metrics.LeadStageTransitionsTotal.WithLabelValues(string(current.Stage), string(stage)).Inc()
	s.activity.Record(ctx, actor, domain.EntityLead, id, domain.ActionStageChanged, string(current.Stage), string(stage))
	s.logger.Info().
		Str("lead_id", id).
		Str("from", string(current.Stage)).
		Str("to", string(stage)).
		Msg("lead stage changed")

	return &ports.StageChange{Lead: updated, OldStage: current.Stage, NewStage: updated.Stage}, nil
}

func (s *LeadService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EntitiesDeletedTotal.WithLabelValues(domain.EntityLead).Inc()
	s.activity.Record(ctx, actor, domain.EntityLead, id, domain.ActionDeleted, "", "")
	return nil
}

func (s *LeadService) checkRefs(ctx context.Context, l *domain.Lead) error {
	if err := s.refs.customer(ctx, &l.CustomerID); err != nil {
		return err
	}
	return s.refs.user(ctx, l.AssignedTo)
}

func leadFromInput(in ports.LeadInput) *domain.Lead {
	stage := in.Stage
	if stage == "" {
		stage = domain.StageLead
	}
	return &domain.Lead{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Value:       in.Value,
		Stage:       stage,
		CustomerID:  in.CustomerID,
		AssignedTo:  optional(in.AssignedTo),
	}
}
