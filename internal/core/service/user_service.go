package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// UserService implements admin user management. Users are only created
// through registration.
type UserService struct {
	repo     ports.UserRepository
	activity *ActivityRecorder
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, activity *ActivityRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, activity: activity, logger: logger}
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) (*ports.ListResult[domain.User], error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email != current.Email {
		other, err := s.repo.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != id:
			return nil, domain.ErrUserExists
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Email = email
	current.Role = in.Role

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityUser, id, domain.ActionUpdated, "", "")
	s.logger.Info().Str("user_id", id).Str("role", updated.Role).Str("by", actor.UserID).Msg("user updated")
	return updated, nil
}

// Delete removes a user. Leads and tasks assigned to them become unassigned.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if actor.UserID == id {
		return domain.ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EntitiesDeletedTotal.WithLabelValues(domain.EntityUser).Inc()
	s.activity.Record(ctx, actor, domain.EntityUser, id, domain.ActionDeleted, "", "")
	s.logger.Info().Str("user_id", id).Str("by", actor.UserID).Msg("user deleted")
	return nil
}
