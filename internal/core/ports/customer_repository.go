package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// CustomerFilter carries the list query parameters for customers.
type CustomerFilter struct {
	Search string   // case-insensitive substring over name, email, company
	Tags   []string // overlap: any tag matches
	domain.PageRequest
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter CustomerFilter) ([]*domain.Customer, int64, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	// Delete removes the customer; leads, tasks and interactions cascade.
	Delete(ctx context.Context, id string) error
}
