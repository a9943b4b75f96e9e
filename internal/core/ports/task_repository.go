package ports

import (
	"context"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// TaskFilter carries the list query parameters for tasks.
type TaskFilter struct {
	Status     string
	Priority   string
	AssignedTo string
	CustomerID string
	domain.PageRequest
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List orders by due date ascending, then priority descending.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
