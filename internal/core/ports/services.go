package ports

import (
	"context"
	"time"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// ListResult is a page of items plus its pagination block.
type ListResult[T any] struct {
	Items      []*T
	Pagination domain.Pagination
}

// UpdateUserInput is the admin-editable part of a user.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// UserService is the admin user-management use case.
type UserService interface {
	List(ctx context.Context, filter UserFilter) (*ListResult[domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// CustomerInput is the full customer body used by create and update.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Tags    []string
	Notes   string
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	List(ctx context.Context, filter CustomerFilter) (*ListResult[domain.Customer], error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, actor domain.Principal, in CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, actor domain.Principal, id string, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// LeadInput is the full lead body used by create and update.
type LeadInput struct {
	Title       string
	Description string
	Value       float64
	Stage       domain.LeadStage
	CustomerID  string
	AssignedTo  *string
}

// StageChange is the result of a stage-only update.
type StageChange struct {
	Lead     *domain.Lead
	OldStage domain.LeadStage
	NewStage domain.LeadStage
}

// LeadService defines use-case operations for leads.
type LeadService interface {
	List(ctx context.Context, filter LeadFilter) (*ListResult[domain.Lead], error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	Create(ctx context.Context, actor domain.Principal, in LeadInput) (*domain.Lead, error)
	Update(ctx context.Context, actor domain.Principal, id string, in LeadInput) (*domain.Lead, error)
	UpdateStage(ctx context.Context, actor domain.Principal, id string, stage domain.LeadStage) (*StageChange, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// TaskInput is the full task body used by create and update.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *domain.Date
	CustomerID  *string
	AssignedTo  *string
}

// StatusChange is the result of a status-only update.
type StatusChange struct {
	Task      *domain.Task
	OldStatus domain.TaskStatus
	NewStatus domain.TaskStatus
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	List(ctx context.Context, filter TaskFilter) (*ListResult[domain.Task], error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, actor domain.Principal, in TaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor domain.Principal, id string, in TaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, actor domain.Principal, id string, status domain.TaskStatus) (*StatusChange, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// InteractionInput is the full interaction body used by create and update.
type InteractionInput struct {
	Type       domain.InteractionType
	Notes      string
	Timestamp  *time.Time
	CustomerID string
}

// InteractionService defines use-case operations for interactions.
type InteractionService interface {
	List(ctx context.Context, filter InteractionFilter) (*ListResult[domain.Interaction], error)
	Get(ctx context.Context, id string) (*domain.Interaction, error)
	Create(ctx context.Context, actor domain.Principal, in InteractionInput) (*domain.Interaction, error)
	Update(ctx context.Context, actor domain.Principal, id string, in InteractionInput) (*domain.Interaction, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// ReportService computes the dashboard aggregates.
type ReportService interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	Conversion(ctx context.Context, period domain.ReportPeriod) (*domain.ConversionReport, error)
}

// ActivityService reads the audit trail.
type ActivityService interface {
	List(ctx context.Context, filter ActivityFilter) (*ListResult[domain.Activity], error)
}
