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

var interactionCols = []string{
	"id", "type", "notes", "occurred_at", "customer_id", "user_id",
	"created_at", "updated_at", "c_name", "c_email", "c_company", "u_name", "u_email",
}

func TestInteractionRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInteractionRepository(db)
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	userID := "u-1"

	mock.ExpectExec(`INSERT INTO interactions \(id, type, notes, occurred_at, customer_id, user_id\)`).
		WithArgs(sqlmock.AnyArg(), "call", "intro", ts, "c-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM interactions i\s+JOIN customers c ON c.id = i.customer_id\s+LEFT JOIN users u ON u.id = i.user_id WHERE i.id = \$1`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(interactionCols).
			AddRow("i-1", "call", "intro", ts, "c-1", "u-1", ts, ts, "Acme", "", "", "Rep", "rep@example.com"))

	got, err := repo.Create(context.Background(), &domain.Interaction{
		Type: domain.InteractionCall, Notes: "intro", Timestamp: ts, CustomerID: "c-1", UserID: &userID,
	})
	require.NoError(t, err)
	require.Equal(t, ts, got.Timestamp)
	require.Equal(t, "Rep", got.User.Name)
	require.Equal(t, "Acme", got.Customer.Name)
}

func TestInteractionRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInteractionRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM interactions i WHERE i.customer_id = \$1 AND i.type = \$2`).
		WithArgs("c-1", "email").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`ORDER BY i.occurred_at DESC, i.id LIMIT \$3 OFFSET \$4`).
		WithArgs("c-1", "email", 10, 0).
		WillReturnRows(sqlmock.NewRows(interactionCols))

	_, _, err := repo.List(context.Background(), ports.InteractionFilter{
		CustomerID:  "c-1",
		Type:        "email",
		PageRequest: domain.PageRequest{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
}

func TestInteractionRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInteractionRepository(db)

	mock.ExpectExec(`DELETE FROM interactions WHERE id = \$1`).
		WithArgs("i-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "i-404"), domain.ErrInteractionNotFound)
}
