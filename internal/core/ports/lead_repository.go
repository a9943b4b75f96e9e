package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// LeadFilter carries the list query parameters for leads.
type LeadFilter struct {
	Stage      string
	CustomerID string
	AssignedTo string
	domain.PageRequest
}

// LeadRepository defines persistence operations for leads. Reads return
// the lead with its customer and assigned user attached.
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*domain.Lead, int64, error)
	Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error)
	UpdateStage(ctx context.Context, id string, stage domain.LeadStage) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
}
