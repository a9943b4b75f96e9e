package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// ActivityFilter narrows the audit trail listing.
type ActivityFilter struct {
	EntityType string
	EntityID   string
	Action     string
	domain.PageRequest
}

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, filter ActivityFilter) ([]*domain.Activity, int64, error)
}
