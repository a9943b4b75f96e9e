package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

func newListResult[T any](items []*T, page domain.PageRequest, total int64) *ports.ListResult[T] {
	if items == nil {
		items = []*T{}
	}
	return &ports.ListResult[T]{
		Items:      items,
		Pagination: domain.NewPagination(page, total),
	}
}

// referenceChecker verifies foreign keys before a write so callers get a
// FOREIGN_KEY_ERROR instead of a constraint violation.
type referenceChecker struct {
	customers ports.CustomerRepository
	users     ports.UserRepository
}

func (rc referenceChecker) customer(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	ok, err := rc.customers.Exists(ctx, *id)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		return domain.ErrCustomerReference
	}
	return nil
}

func (rc referenceChecker) user(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	if _, err := rc.users.FindByID(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserReference
		}
		return fmt.Errorf("check user: %w", err)
	}
	return nil
}

// optional turns an empty string pointer into nil.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
