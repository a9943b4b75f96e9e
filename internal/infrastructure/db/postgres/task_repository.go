package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

const taskSelect = `SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date, t.customer_id, t.assigned_to,
       t.created_at, t.updated_at,
       c.name, c.email, c.company,
       u.name, u.email
FROM tasks t
LEFT JOIN customers c ON c.id = t.customer_id
LEFT JOIN users u ON u.id = t.assigned_to`

// Due date first with undated tasks last, then high priority first. The
// priority enum is declared low, medium, high so DESC puts high on top.
const taskOrder = ` ORDER BY t.due_date ASC NULLS LAST, t.priority DESC, t.created_at DESC, t.id`

// TaskRepository implements ports.TaskRepository on PostgreSQL.
type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func scanTask(row scanner) (*domain.Task, error) {
	t := &domain.Task{}
	var (
		dueDate                              sql.NullTime
		customerID, assignedTo               sql.NullString
		customerName, customerEmail, company sql.NullString
		userName, userEmail                  sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &dueDate, &customerID, &assignedTo,
		&t.CreatedAt, &t.UpdatedAt,
		&customerName, &customerEmail, &company,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := domain.NewDate(dueDate.Time)
		t.DueDate = &d
	}
	t.CustomerID = stringPtr(customerID)
	if t.CustomerID != nil {
		t.Customer = &domain.CustomerRef{ID: *t.CustomerID, Name: customerName.String, Email: customerEmail.String, Company: company.String}
	}
	t.AssignedTo = stringPtr(assignedTo)
	if t.AssignedTo != nil {
		t.AssignedUser = &domain.UserRef{ID: *t.AssignedTo, Name: userName.String, Email: userEmail.String}
	}
	return t, nil
}

func dueDateArg(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}

// Create inserts the task and re-reads it with its associations.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, customer_id, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, t.Title, t.Description, string(t.Status), string(t.Priority), dueDateArg(t.DueDate),
		nullable(t.CustomerID), nullable(t.AssignedTo))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return r.FindByID(ctx, id)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, mapError(err, domain.ErrTaskNotFound)
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, f ports.TaskFilter) ([]*domain.Task, int64, error) {
	w := &where{}
	if f.Status != "" {
		w.add("t.status = $%d", f.Status)
	}
	if f.Priority != "" {
		w.add("t.priority = $%d", f.Priority)
	}
	if f.AssignedTo != "" {
		w.add("t.assigned_to = $%d", f.AssignedTo)
	}
	if f.CustomerID != "" {
		w.add("t.customer_id = $%d", f.CustomerID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks t`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, nil)
	}

	limit, args := w.page(f.PageRequest)
	rows, err := r.db.QueryContext(ctx, taskSelect+w.String()+taskOrder+limit, args...)
	if err != nil {
		return nil, 0, mapError(err, nil)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0, f.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, mapError(err, nil)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, nil)
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $2, description = $3, status = $4, priority = $5, due_date = $6,
		     customer_id = $7, assigned_to = $8, updated_at = NOW()
		 WHERE id = $1`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), dueDateArg(t.DueDate),
		nullable(t.CustomerID), nullable(t.AssignedTo))
	if err != nil {
		return nil, mapError(err, domain.ErrTaskNotFound)
	}
	if err := affected(res, domain.ErrTaskNotFound); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, t.ID)
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return nil, mapError(err, domain.ErrTaskNotFound)
	}
	if err := affected(res, domain.ErrTaskNotFound); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrTaskNotFound)
	}
	return affected(res, domain.ErrTaskNotFound)
}
