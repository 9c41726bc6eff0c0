package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// where accumulates AND-ed predicates with positional arguments.
type where struct {
	clauses []string
	args    []any
}

// add appends a predicate; clause must contain a single %d for the placeholder index.
func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

func (w *where) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// catalogWhere turns a repository.Query into SQL. Only columns listed in eq/search are
// honoured so callers cannot inject identifiers.
func catalogWhere(q repository.Query, eq, search map[string]bool) *where {
	w := &where{}
	switch q.Scope {
	case repository.ScopeActive:
		w.add("status = $%d", true)
	case repository.ScopeInactive:
		w.add("status = $%d", false)
	}
	for col, v := range q.Eq {
		if eq[col] {
			w.add(col+" = $%d", v)
		}
	}
	for col, s := range q.Search {
		if search[col] {
			w.add(col+` ILIKE '%%' || $%d || '%%' ESCAPE '\'`, likeEscaper.Replace(s))
		}
	}
	return w
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// page returns the LIMIT/OFFSET tail for a query, or nothing when All is set.
func page(q repository.Query) string {
	if q.All {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset())
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s", repository.ErrReference, pgErr.ConstraintName)
		}
	}
	return err
}
