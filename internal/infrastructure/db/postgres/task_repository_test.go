package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

var taskCols = []string{
	"id", "title", "description", "status", "priority", "due_date", "customer_id", "assigned_to",
	"created_at", "updated_at", "c_name", "c_email", "c_company", "u_name", "u_email",
}

func TestTaskRepository_List_Order(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTaskRepository(db)
	now := time.Now().UTC()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM tasks t WHERE t.status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`ORDER BY t.due_date ASC NULLS LAST, t.priority DESC, t.created_at DESC, t.id LIMIT \$2 OFFSET \$3`).
		WithArgs("pending", 10, 0).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t-1", "Call", "", "pending", "high", due, "c-1", nil, now, now, "Acme", "", "", nil, nil).
			AddRow("t-2", "Mail", "", "pending", "low", nil, nil, nil, now, now, nil, nil, nil, nil, nil))

	items, total, err := repo.List(context.Background(), ports.TaskFilter{
		Status:      "pending",
		PageRequest: domain.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	require.Equal(t, "2026-03-01", items[0].DueDate.String())
	require.Equal(t, "Acme", items[0].Customer.Name)
	require.Equal(t, domain.PriorityHigh, items[0].Priority)

	require.Nil(t, items[1].DueDate)
	require.Nil(t, items[1].CustomerID)
	require.Nil(t, items[1].Customer)
}

func TestTaskRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTaskRepository(db)
	now := time.Now().UTC()
	due := domain.NewDate(time.Date(2026, 4, 30, 15, 0, 0, 0, time.UTC))
	customerID := "c-1"

	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs(sqlmock.AnyArg(), "Send quote", "", "pending", "medium", "2026-04-30", "c-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE t.id = \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t-1", "Send quote", "", "pending", "medium", due.Time, "c-1", nil, now, now, "Acme", "", "", nil, nil))

	got, err := repo.Create(context.Background(), &domain.Task{
		Title:      "Send quote",
		Status:     domain.TaskPending,
		Priority:   domain.PriorityMedium,
		DueDate:    &due,
		CustomerID: &customerID,
	})
	require.NoError(t, err)
	require.Equal(t, "t-1", got.ID)
	require.Equal(t, "2026-04-30", got.DueDate.String())
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTaskRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE tasks SET status = \$2, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs("t-1", "completed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`WHERE t.id = \$1`).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t-1", "Call", "", "completed", "medium", nil, nil, nil, now, now, nil, nil, nil, nil, nil))

	got, err := repo.UpdateStatus(context.Background(), "t-1", domain.TaskCompleted)
	require.NoError(t, err)
	require.Equal(t, domain.TaskCompleted, got.Status)
}

func TestDueDateArg(t *testing.T) {
	require.Nil(t, dueDateArg(nil))
	require.Nil(t, dueDateArg(&domain.Date{}))

	d := domain.NewDate(time.Date(2026, 12, 24, 23, 0, 0, 0, time.UTC))
	require.Equal(t, "2026-12-24", dueDateArg(&d))
}
