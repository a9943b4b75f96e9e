package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type CustomerService struct {
	repo     ports.CustomerRepository
	activity *ActivityRecorder
	logger   zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, activity *ActivityRecorder, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, activity: activity, logger: logger}
}

func (s *CustomerService) List(ctx context.Context, filter ports.CustomerFilter) (*ports.ListResult[domain.Customer], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, actor domain.Principal, in ports.CustomerInput) (*domain.Customer, error) {
	created, err := s.repo.Create(ctx, customerFromInput(in))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityCustomer, created.ID, domain.ActionCreated, "", "")
	s.logger.Info().Str("customer_id", created.ID).Str("user_id", actor.UserID).Msg("customer created")
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, actor domain.Principal, id string, in ports.CustomerInput) (*domain.Customer, error) {
	c := customerFromInput(in)
	c.ID = id

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityCustomer, id, domain.ActionUpdated, "", "")
	return updated, nil
}

func (s *CustomerService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EntitiesDeletedTotal.WithLabelValues(domain.EntityCustomer).Inc()
	s.activity.Record(ctx, actor, domain.EntityCustomer, id, domain.ActionDeleted, "", "")
	s.logger.Info().Str("customer_id", id).Str("user_id", actor.UserID).Msg("customer deleted")
	return nil
}

// customerFromInput keeps tags exactly as sent, duplicates included.
func customerFromInput(in ports.CustomerInput) *domain.Customer {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Customer{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Tags:    tags,
		Notes:   in.Notes,
	}
}
