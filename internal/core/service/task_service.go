package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/api/metrics"
	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

type TaskService struct {
	repo     ports.TaskRepository
	refs     referenceChecker
	activity *ActivityRecorder
	logger   zerolog.Logger
}

func NewTaskService(
	repo ports.TaskRepository,
	customers ports.CustomerRepository,
	users ports.UserRepository,
	activity *ActivityRecorder,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:     repo,
		refs:     referenceChecker{customers: customers, users: users},
		activity: activity,
		logger:   logger,
	}
}

func (s *TaskService) List(ctx context.Context, filter ports.TaskFilter) (*ports.ListResult[domain.Task], error) {
	filter.PageRequest = filter.PageRequest.Normalize()

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newListResult(items, filter.PageRequest, total), nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, actor domain.Principal, in ports.TaskInput) (*domain.Task, error) {
	task := taskFromInput(in)
	if err := s.checkRefs(ctx, task); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.activity.Record(ctx, actor, domain.EntityTask, created.ID, domain.ActionCreated, "", string(created.Status))
	s.logger.Info().Str("task_id", created.ID).Msg("task created")
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, actor domain.Principal, id string, in ports.TaskInput) (*domain.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task := taskFromInput(in)
	task.ID = id
	if err := s.checkRefs(ctx, task); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	if current.Status != updated.Status {
		metrics.TaskStatusTransitionsTotal.WithLabelValues(string(current.Status), string(updated.Status)).Inc()
		s.activity.Record(ctx, actor, domain.EntityTask, id, domain.ActionStatusChanged, string(current.Status), string(updated.Status))
	}
	s.activity.Record(ctx, actor, domain.EntityTask, id, domain.ActionUpdated, "", "")
	return updated, nil
}

// UpdateStatus changes only the status and reports the previous value.
func (s *TaskService) UpdateStatus(ctx context.Context, actor domain.Principal, id string, status domain.TaskStatus) (*ports.StatusChange, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	metrics.TaskStatusTransitionsTotal.WithLabelValues(string(current.Status), string(status)).Inc()
	s.activity.Record(ctx, actor, domain.EntityTask, id, domain.ActionStatusChanged, string(current.Status), string(status))
	s.logger.Info().
		Str("task_id", id).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("task status changed")

	return &ports.StatusChange{Task: updated, OldStatus: current.Status, NewStatus: updated.Status}, nil
}

func (s *TaskService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.EntitiesDeletedTotal.WithLabelValues(domain.EntityTask).Inc()
	s.activity.Record(ctx, actor, domain.EntityTask, id, domain.ActionDeleted, "", "")
	return nil
}

func (s *TaskService) checkRefs(ctx context.Context, t *domain.Task) error {
	if err := s.refs.customer(ctx, t.CustomerID); err != nil {
		return err
	}
	return s.refs.user(ctx, t.AssignedTo)
}

func taskFromInput(in ports.TaskInput) *domain.Task {
	status := in.Status
	if status == "" {
		status = domain.TaskPending
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	return &domain.Task{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		CustomerID:  optional(in.CustomerID),
		AssignedTo:  optional(in.AssignedTo),
	}
}
