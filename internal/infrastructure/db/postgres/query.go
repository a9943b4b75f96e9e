package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/relaycrm/crm-api/internal/core/domain"
)

// where accumulates AND-ed conditions with positional arguments. Each
// clause is a format string whose %d (or %[1]d) verbs receive the index of
// the argument added with it.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT and OFFSET and returns the final argument list.
func (w *where) page(p domain.PageRequest) (string, []any) {
	n := len(w.args)
	args := make([]any, 0, n+2)
	args = append(args, w.args...)
	args = append(args, p.Limit, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring pattern for ILIKE with wildcards escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
