package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// InteractionFilter carries the list query parameters for interactions.
type InteractionFilter struct {
	CustomerID string
	Type       string
	UserID     string
	domain.PageRequest
}

// InteractionRepository defines persistence operations for interactions.
type InteractionRepository interface {
	Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	FindByID(ctx context.Context, id string) (*domain.Interaction, error)
	List(ctx context.Context, filter InteractionFilter) ([]*domain.Interaction, int64, error)
	Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	Delete(ctx context.Context, id string) error
}
