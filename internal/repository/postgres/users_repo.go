// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userCols = `id, email, password_hash, role, status, created_at, updated_at`

var (
	userEq     = map[string]bool{"role": true}
	userSearch = map[string]bool{"email": true}
)

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(email, password_hash, role, status) VALUES($1,$2,$3,$4) RETURNING `+userCols,
		u.Email, u.PasswordHash, u.Role, u.Status,
	))
}

func (r *usersRepo) Get(ctx context.Context, id int64) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email))
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET email=$2, password_hash=$3, role=$4, status=$5, updated_at=now()
		  WHERE id=$1 RETURNING `+userCols,
		u.ID, u.Email, u.PasswordHash, u.Role, u.Status,
	))
}

func (r *usersRepo) List(ctx context.Context, q repository.Query) ([]models.User, int, error) {
	q = q.Normalize()
	w := catalogWhere(q, userEq, userSearch)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users`+w.sql()+` ORDER BY created_at DESC, id DESC`+page(q),
		w.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}
