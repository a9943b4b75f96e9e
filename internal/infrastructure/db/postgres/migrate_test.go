package postgres

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/relaycrm/crm-api/internal/infrastructure/db/postgres/migrations"
)

func TestMigrate(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil))
	require.Equal(t, ".", gotDir)
}

func TestMigrate_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("locked")
	}

	err := Migrate(context.Background(), nil)
	require.ErrorContains(t, err, "migrate: locked")
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)

	schema := string(data)
	require.True(t, strings.HasPrefix(schema, "-- +goose Up"))
	require.Contains(t, schema, "-- +goose Down")
	require.Contains(t, schema, "ON DELETE CASCADE")
	require.Contains(t, schema, "ON DELETE SET NULL")
	require.Contains(t, schema, "CREATE UNIQUE INDEX users_email_key ON users (lower(email))")
}

// tableColumn returns the definition line of column in the CREATE TABLE
// block of table.
func tableColumn(t *testing.T, schema, table, column string) string {
	t.Helper()
	block := regexp.MustCompile(`(?s)CREATE TABLE ` + table + ` \((.*?)\n\);`).FindStringSubmatch(schema)
	require.NotNil(t, block, "table %s not found", table)
	line := regexp.MustCompile(`(?m)^\s*` + column + `\s+.*$`).FindString(block[1])
	require.NotEmpty(t, line, "column %s.%s not found", table, column)
	return strings.TrimSpace(line)
}

func TestMigrationsForeignKeyActions(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)
	schema := string(data)

	tests := []struct {
		table, column, references, action string
		notNull                           bool
	}{
		{"leads", "customer_id", "customers (id)", "ON DELETE CASCADE", true},
		{"leads", "assigned_to", "users (id)", "ON DELETE SET NULL", false},
		{"tasks", "customer_id", "customers (id)", "ON DELETE CASCADE", false},
		{"tasks", "assigned_to", "users (id)", "ON DELETE SET NULL", false},
		{"interactions", "customer_id", "customers (id)", "ON DELETE CASCADE", true},
		{"interactions", "user_id", "users (id)", "ON DELETE SET NULL", false},
	}
	for _, tt := range tests {
		t.Run(tt.table+"."+tt.column, func(t *testing.T) {
			line := tableColumn(t, schema, tt.table, tt.column)
			require.Contains(t, line, "REFERENCES "+tt.references+" "+tt.action)
			require.Equal(t, tt.notNull, strings.Contains(line, "NOT NULL"), line)
		})
	}
}

func TestMigrationsColumnWidths(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_init.sql")
	require.NoError(t, err)
	schema := string(data)

	require.Contains(t, tableColumn(t, schema, "customers", "name"), "VARCHAR(100)")
	require.Contains(t, tableColumn(t, schema, "customers", "company"), "VARCHAR(100)")
	require.Contains(t, tableColumn(t, schema, "customers", "phone"), "VARCHAR(30)")
	require.Contains(t, tableColumn(t, schema, "leads", "title"), "VARCHAR(200)")
	require.Contains(t, tableColumn(t, schema, "leads", "value"), "NUMERIC(12, 2)")
	require.Contains(t, tableColumn(t, schema, "tasks", "title"), "VARCHAR(200)")
}
