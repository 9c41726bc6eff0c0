package postgres

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func NewAuditLogs(pool *pgxpool.Pool) repository.AuditLogs { return &auditLogsRepo{pool: pool} }

const auditCols = `id, user_id, table_name, record_id, action, data_before, data_after, status,
	coalesce(description, ''), created_at, updated_at`

// auditListCols reads the CTE "l" joined with the acting user.
const auditListCols = `l.id, l.user_id, l.table_name, l.record_id, l.action, l.data_before,
	l.data_after, l.status, coalesce(l.description, ''), l.created_at, l.updated_at,
	u.email, u.role`

type scanner interface{ Scan(...any) error }

func auditDest(l *models.AuditLog) []any {
	return []any{&l.ID, &l.ActorID, &l.EntityName, &l.EntityID, &l.Action, &l.StateBefore,
		&l.StateAfter, &l.Outcome, &l.Note, &l.OccurredAt, &l.UpdatedAt}
}

func scanAudit(row scanner) (models.AuditLog, error) {
	var l models.AuditLog
	err := row.Scan(auditDest(&l)...)
	return l, mapErr(err)
}

// scanAuditWithUser scans a listed row; User stays nil when the account is gone.
func scanAuditWithUser(row scanner) (models.AuditLog, error) {
	var l models.AuditLog
	var email, role *string
	if err := row.Scan(append(auditDest(&l), &email, &role)...); err != nil {
		return l, mapErr(err)
	}
	if l.ActorID != nil && email != nil {
		l.User = &models.Actor{ID: *l.ActorID, Email: *email}
		if role != nil {
			l.User.Role = *role
		}
	}
	return l, nil
}

// jsonb encodes an empty snapshot as SQL NULL rather than the JSON literal null.
func jsonb(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) (models.AuditLog, error) {
	return scanAudit(r.pool.QueryRow(ctx, `
INSERT INTO audit_logs(user_id, table_name, record_id, action, data_before, data_after, status, description)
VALUES($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING `+auditCols,
		l.ActorID, l.EntityName, l.EntityID, l.Action, jsonb(l.StateBefore), jsonb(l.StateAfter),
		l.Outcome, nullable(l.Note),
	))
}

func (r *auditLogsRepo) List(ctx context.Context, f repository.LogFilter) ([]models.AuditLog, int, error) {
	q := repository.Query{Page: f.Page, Limit: f.Limit, All: f.All}.Normalize()
	w := logWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM audit_logs`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
WITH l AS (SELECT * FROM audit_logs`+w.sql()+` ORDER BY created_at DESC, id DESC`+page(q)+`)
SELECT `+auditListCols+`
  FROM l
  LEFT JOIN users u ON u.id = l.user_id
 ORDER BY l.created_at DESC, l.id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.AuditLog{}
	for rows.Next() {
		l, err := scanAuditWithUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func logWhere(f repository.LogFilter) *where {
	w := &where{}
	if f.ActorID != nil {
		w.add("user_id = $%d", *f.ActorID)
	}
	if f.EntityName != "" {
		w.add("table_name = $%d", f.EntityName)
	}
	if f.Action != "" {
		w.add("action = $%d", f.Action)
	}
	if f.From != nil {
		w.add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("created_at <= $%d", *f.To)
	}
	return w
}
