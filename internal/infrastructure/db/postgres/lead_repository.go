package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

const leadSelect = `SELECT l.id, l.title, l.description, l.value::float8, l.stage, l.customer_id, l.assigned_to,
       l.created_at, l.updated_at,
       c.name, c.email, c.company,
       u.name, u.email
FROM leads l
JOIN customers c ON c.id = l.customer_id
LEFT JOIN users u ON u.id = l.assigned_to`

// LeadRepository implements ports.LeadRepository on PostgreSQL.
type LeadRepository struct {
	db DBTX
}

func NewLeadRepository(db DBTX) *LeadRepository {
	return &LeadRepository{db: db}
}

var _ ports.LeadRepository = (*LeadRepository)(nil)

func scanLead(row scanner) (*domain.Lead, error) {
	l := &domain.Lead{}
	var (
		assignedTo          sql.NullString
		userName, userEmail sql.NullString
		customer            domain.CustomerRef
	)
	err := row.Scan(
		&l.ID, &l.Title, &l.Description, &l.Value, &l.Stage, &l.CustomerID, &assignedTo,
		&l.CreatedAt, &l.UpdatedAt,
		&customer.Name, &customer.Email, &customer.Company,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}

	customer.ID = l.CustomerID
	l.Customer = &customer
	l.AssignedTo = stringPtr(assignedTo)
	if l.AssignedTo != nil {
		l.AssignedUser = &domain.UserRef{ID: *l.AssignedTo, Name: userName.String, Email: userEmail.String}
	}
	return l, nil
}

// Create inserts the lead and re-reads it with its associations.
func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO leads (id, title, description, value, stage, customer_id, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, l.Title, l.Description, l.Value, string(l.Stage), l.CustomerID, nullable(l.AssignedTo))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return r.FindByID(ctx, id)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	l, err := scanLead(r.db.QueryRowContext(ctx, leadSelect+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, mapError(err, domain.ErrLeadNotFound)
	}
	return l, nil
}

func (r *LeadRepository) List(ctx context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	w := &where{}
	if f.Stage != "" {
		w.add("l.stage = $%d", f.Stage)
	}
	if f.CustomerID != "" {
		w.add("l.customer_id = $%d", f.CustomerID)
	}
	if f.AssignedTo != "" {
		w.add("l.assigned_to = $%d", f.AssignedTo)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads l`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, nil)
	}

	limit, args := w.page(f.PageRequest)
	rows, err := r.db.QueryContext(ctx, leadSelect+w.String()+` ORDER BY l.created_at DESC, l.id`+limit, args...)
	if err != nil {
		return nil, 0, mapError(err, nil)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0, f.Limit)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, mapError(err, nil)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, nil)
	}
	return leads, total, nil
}

func (r *LeadRepository) Update(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads
		 SET title = $2, description = $3, value = $4, stage = $5, customer_id = $6, assigned_to = $7, updated_at = NOW()
		 WHERE id = $1`,
		l.ID, l.Title, l.Description, l.Value, string(l.Stage), l.CustomerID, nullable(l.AssignedTo))
	if err != nil {
		return nil, mapError(err, domain.ErrLeadNotFound)
	}
	if err := affected(res, domain.ErrLeadNotFound); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, l.ID)
}

func (r *LeadRepository) UpdateStage(ctx context.Context, id string, stage domain.LeadStage) (*domain.Lead, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leads SET stage = $2, updated_at = NOW() WHERE id = $1`, id, string(stage))
	if err != nil {
		return nil, mapError(err, domain.ErrLeadNotFound)
	}
	if err := affected(res, domain.ErrLeadNotFound); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrLeadNotFound)
	}
	return affected(res, domain.ErrLeadNotFound)
}
