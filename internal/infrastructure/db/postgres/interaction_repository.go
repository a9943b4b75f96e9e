package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

const interactionSelect = `SELECT i.id, i.type, i.notes, i.occurred_at, i.customer_id, i.user_id,
       i.created_at, i.updated_at,
       c.name, c.email, c.company,
       u.name, u.email
FROM interactions i
JOIN customers c ON c.id = i.customer_id
LEFT JOIN users u ON u.id = i.user_id`

// InteractionRepository implements ports.InteractionRepository on PostgreSQL.
type InteractionRepository struct {
	db DBTX
}

func NewInteractionRepository(db DBTX) *InteractionRepository {
	return &InteractionRepository{db: db}
}

var _ ports.InteractionRepository = (*InteractionRepository)(nil)

func scanInteraction(row scanner) (*domain.Interaction, error) {
	i := &domain.Interaction{}
	var (
		userID              sql.NullString
		userName, userEmail sql.NullString
		customer            domain.CustomerRef
	)
	err := row.Scan(
		&i.ID, &i.Type, &i.Notes, &i.Timestamp, &i.CustomerID, &userID,
		&i.CreatedAt, &i.UpdatedAt,
		&customer.Name, &customer.Email, &customer.Company,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}

	customer.ID = i.CustomerID
	i.Customer = &customer
	i.UserID = stringPtr(userID)
	if i.UserID != nil {
		i.User = &domain.UserRef{ID: *i.UserID, Name: userName.String, Email: userEmail.String}
	}
	return i, nil
}

// Create inserts the interaction and re-reads it with its associations.
func (r *InteractionRepository) Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interactions (id, type, notes, occurred_at, customer_id, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, string(i.Type), i.Notes, i.Timestamp, i.CustomerID, nullable(i.UserID))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return r.FindByID(ctx, id)
}

func (r *InteractionRepository) FindByID(ctx context.Context, id string) (*domain.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, interactionSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, mapError(err, domain.ErrInteractionNotFound)
	}
	return i, nil
}

func (r *InteractionRepository) List(ctx context.Context, f ports.InteractionFilter) ([]*domain.Interaction, int64, error) {
	w := &where{}
	if f.CustomerID != "" {
		w.add("i.customer_id = $%d", f.CustomerID)
	}
	if f.Type != "" {
		w.add("i.type = $%d", f.Type)
	}
	if f.UserID != "" {
		w.add("i.user_id = $%d", f.UserID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions i`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, nil)
	}

	limit, args := w.page(f.PageRequest)
	rows, err := r.db.QueryContext(ctx, interactionSelect+w.String()+` ORDER BY i.occurred_at DESC, i.id`+limit, args...)
	if err != nil {
		return nil, 0, mapError(err, nil)
	}
	defer rows.Close()

	items := make([]*domain.Interaction, 0, f.Limit)
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, 0, mapError(err, nil)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, nil)
	}
	return items, total, nil
}

func (r *InteractionRepository) Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE interactions
		 SET type = $2, notes = $3, occurred_at = $4, customer_id = $5, user_id = $6, updated_at = NOW()
		 WHERE id = $1`,
		i.ID, string(i.Type), i.Notes, i.Timestamp, i.CustomerID, nullable(i.UserID))
	if err != nil {
		return nil, mapError(err, domain.ErrInteractionNotFound)
	}
	if err := affected(res, domain.ErrInteractionNotFound); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, i.ID)
}

func (r *InteractionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrInteractionNotFound)
	}
	return affected(res, domain.ErrInteractionNotFound)
}
