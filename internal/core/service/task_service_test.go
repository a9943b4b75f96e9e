package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	f := newFixture()

	task, err := f.tasks.Create(context.Background(), adminActor, ports.TaskInput{Title: "Call back"})
	require.NoError(t, err)
	require.Equal(t, domain.TaskPending, task.Status)
	require.Equal(t, domain.PriorityMedium, task.Priority)
	require.Nil(t, task.CustomerID)
	require.Nil(t, task.DueDate)
}

func TestTaskService_CreateWithReferences(t *testing.T) {
	f := newFixture()
	c := createCustomer(t, f, "acme")
	due := domain.NewDate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	task, err := f.tasks.Create(context.Background(), adminActor, ports.TaskInput{
		Title:      "Send quote",
		Priority:   domain.PriorityHigh,
		DueDate:    &due,
		CustomerID: &c.ID,
	})
	require.NoError(t, err)
	require.Equal(t, c.ID, *task.CustomerID)
	require.Equal(t, "2026-03-01", task.DueDate.String())
	require.Equal(t, c.Name, task.Customer.Name)

	missing := "nope"
	_, err = f.tasks.Create(context.Background(), adminActor, ports.TaskInput{Title: "x", CustomerID: &missing})
	require.ErrorIs(t, err, domain.ErrCustomerReference)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	task, err := f.tasks.Create(ctx, adminActor, ports.TaskInput{Title: "Follow up"})
	require.NoError(t, err)

	change, err := f.tasks.UpdateStatus(ctx, adminActor, task.ID, domain.TaskInProgress)
	require.NoError(t, err)
	require.Equal(t, domain.TaskPending, change.OldStatus)
	require.Equal(t, domain.TaskInProgress, change.NewStatus)

	change, err = f.tasks.UpdateStatus(ctx, adminActor, task.ID, domain.TaskCompleted)
	require.NoError(t, err)
	require.Equal(t, domain.TaskInProgress, change.OldStatus)
	require.Equal(t, domain.TaskCompleted, change.Task.Status)
}

func TestTaskService_UpdateStatusMissing(t *testing.T) {
	f := newFixture()

	_, err := f.tasks.UpdateStatus(context.Background(), adminActor, "missing", domain.TaskCompleted)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskService_DeleteCustomerRemovesTasks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := createCustomer(t, f, "acme")
	task, err := f.tasks.Create(ctx, adminActor, ports.TaskInput{Title: "x", CustomerID: &c.ID})
	require.NoError(t, err)
	loose, err := f.tasks.Create(ctx, adminActor, ports.TaskInput{Title: "y"})
	require.NoError(t, err)

	require.NoError(t, f.customers.Delete(ctx, adminActor, c.ID))

	_, err = f.tasks.Get(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = f.tasks.Get(ctx, loose.ID)
	require.NoError(t, err)
}
