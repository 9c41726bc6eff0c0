package postgres

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// namedRepo serves the tables that only carry a name next to the shared columns
// (authors, genres, publishers).
type namedRepo[T any] struct {
	pool  *pgxpool.Pool
	table string
	wrap  func(models.Record, string) T
	parts func(T) (models.Record, string)
}

var (
	namedEq     = map[string]bool{"name": true}
	namedSearch = map[string]bool{"name": true}
)

func (r *namedRepo[T]) cols() string { return "id, name, status, created_at, updated_at" }

func (r *namedRepo[T]) scan(row interface{ Scan(...any) error }) (T, error) {
	var rec models.Record
	var name string
	if err := row.Scan(&rec.ID, &name, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		var zero T
		return zero, mapErr(err)
	}
	return r.wrap(rec, name), nil
}

func (r *namedRepo[T]) Create(ctx context.Context, v T) (T, error) {
	rec, name := r.parts(v)
	return r.scan(r.pool.QueryRow(ctx,
		`INSERT INTO `+r.table+`(name, status) VALUES($1,$2) RETURNING `+r.cols(),
		name, rec.Status,
	))
}

func (r *namedRepo[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+r.cols()+` FROM `+r.table+` WHERE id=$1`, id))
}

func (r *namedRepo[T]) Update(ctx context.Context, v T) (T, error) {
	rec, name := r.parts(v)
	return r.scan(r.pool.QueryRow(ctx,
		`UPDATE `+r.table+` SET name=$2, status=$3, updated_at=now() WHERE id=$1 RETURNING `+r.cols(),
		rec.ID, name, rec.Status,
	))
}

func (r *namedRepo[T]) List(ctx context.Context, q repository.Query) ([]T, int, error) {
	q = q.Normalize()
	w := catalogWhere(q, namedEq, namedSearch)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM `+r.table+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+r.cols()+` FROM `+r.table+w.sql()+` ORDER BY created_at DESC, id DESC`+page(q),
		w.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func NewAuthors(pool *pgxpool.Pool) repository.Authors {
	return &namedRepo[models.Author]{
		pool:  pool,
		table: "authors",
		wrap:  func(rec models.Record, name string) models.Author { return models.Author{Record: rec, Name: name} },
		parts: func(a models.Author) (models.Record, string) { return a.Record, a.Name },
	}
}

func NewGenres(pool *pgxpool.Pool) repository.Genres {
	return &namedRepo[models.Genre]{
		pool:  pool,
		table: "genres",
		wrap:  func(rec models.Record, name string) models.Genre { return models.Genre{Record: rec, Name: name} },
		parts: func(g models.Genre) (models.Record, string) { return g.Record, g.Name },
	}
}

func NewPublishers(pool *pgxpool.Pool) repository.Publishers {
	return &namedRepo[models.Publisher]{
		pool:  pool,
		table: "publishers",
		wrap:  func(rec models.Record, name string) models.Publisher { return models.Publisher{Record: rec, Name: name} },
		parts: func(p models.Publisher) (models.Record, string) { return p.Record, p.Name },
	}
}
