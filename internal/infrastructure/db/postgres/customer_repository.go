package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

const customerColumns = `id, name, email, phone, company, tags, notes, created_at, updated_at`

// CustomerRepository implements ports.CustomerRepository on PostgreSQL.
type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func scanCustomer(row scanner) (*domain.Customer, error) {
	c := &domain.Customer{}
	var tags pq.StringArray
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &tags, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Tags = []string(tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	query :=
		`INSERT INTO customers (id, name, email, phone, company, tags, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING ` + customerColumns

	created, err := scanCustomer(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), c.Name, c.Email, c.Phone, c.Company, pq.Array(c.Tags), c.Notes))
	if err != nil {
		return nil, mapError(err, nil)
	}
	return created, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, domain.ErrCustomerNotFound)
	}
	return c, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		err = mapError(err, domain.ErrCustomerNotFound)
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func (r *CustomerRepository) List(ctx context.Context, f ports.CustomerFilter) ([]*domain.Customer, int64, error) {
	w := &where{}
	if f.Search != "" {
		w.add("(name ILIKE $%[1]d OR email ILIKE $%[1]d OR company ILIKE $%[1]d)", likePattern(f.Search))
	}
	if len(f.Tags) > 0 {
		w.add("tags && $%d", pq.Array(f.Tags))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, nil)
	}

	limit, args := w.page(f.PageRequest)
	query := `SELECT ` + customerColumns + ` FROM customers` + w.String() +
		` ORDER BY created_at DESC, id` + limit

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, nil)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0, f.Limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, mapError(err, nil)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, nil)
	}
	return customers, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	query :=
		`UPDATE customers
		 SET name = $2, email = $3, phone = $4, company = $5, tags = $6, notes = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING ` + customerColumns

	updated, err := scanCustomer(r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, pq.Array(c.Tags), c.Notes))
	if err != nil {
		return nil, mapError(err, domain.ErrCustomerNotFound)
	}
	return updated, nil
}

// Delete removes the customer; leads, tasks and interactions cascade.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrCustomerNotFound)
	}
	return affected(res, domain.ErrCustomerNotFound)
}
