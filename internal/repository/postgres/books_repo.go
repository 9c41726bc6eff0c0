package postgres

import (
	"context"
	"time"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type booksRepo struct{ pool *pgxpool.Pool }

func NewBooks(pool *pgxpool.Pool) repository.Books { return &booksRepo{pool: pool} }

// bookCols reads from the CTE "b" joined with its relations (see withRelations).
const bookCols = `b.id, b.title, b.author_id, b.genre_id, b.publisher_id, b.description, b.isbn,
	b.price, b.stock, to_char(b.published_at, 'YYYY-MM-DD'), COALESCE(b.image_url, ''),
	b.created_by, b.updated_by, b.status, b.created_at, b.updated_at,
	a.id, a.name, a.status, a.created_at, a.updated_at,
	g.id, g.name, g.status, g.created_at, g.updated_at,
	p.id, p.name, p.status, p.created_at, p.updated_at`

var (
	bookEq     = map[string]bool{"author_id": true, "genre_id": true, "publisher_id": true, "isbn": true}
	bookSearch = map[string]bool{"title": true}
)

// withRelations wraps a statement producing books rows so every book comes back with its
// author, genre and publisher. src must return full books rows (SELECT * / RETURNING *).
func withRelations(src string) string {
	return `WITH b AS (` + src + `)
SELECT ` + bookCols + `
  FROM b
  LEFT JOIN authors a ON a.id = b.author_id
  LEFT JOIN genres g ON g.id = b.genre_id
  LEFT JOIN publishers p ON p.id = b.publisher_id`
}

// relation scans the nullable columns of a LEFT JOINed name table.
type relation struct {
	id        *int64
	name      *string
	status    *bool
	createdAt *time.Time
	updatedAt *time.Time
}

func (r *relation) dest() []any {
	return []any{&r.id, &r.name, &r.status, &r.createdAt, &r.updatedAt}
}

func (r *relation) record() (models.Record, string, bool) {
	if r.id == nil {
		return models.Record{}, "", false
	}
	rec := models.Record{ID: *r.id}
	if r.status != nil {
		rec.Status = *r.status
	}
	if r.createdAt != nil {
		rec.CreatedAt = *r.createdAt
	}
	if r.updatedAt != nil {
		rec.UpdatedAt = *r.updatedAt
	}
	var name string
	if r.name != nil {
		name = *r.name
	}
	return rec, name, true
}

func scanBook(row interface{ Scan(...any) error }) (models.Book, error) {
	var b models.Book
	var author, genre, publisher relation
	dest := []any{&b.ID, &b.Title, &b.AuthorID, &b.GenreID, &b.PublisherID, &b.Description,
		&b.ISBN, &b.Price, &b.Stock, &b.PublishedAt, &b.ImageURL, &b.CreatedBy, &b.UpdatedBy,
		&b.Status, &b.CreatedAt, &b.UpdatedAt}
	dest = append(dest, author.dest()...)
	dest = append(dest, genre.dest()...)
	dest = append(dest, publisher.dest()...)
	if err := row.Scan(dest...); err != nil {
		return b, mapErr(err)
	}

	if rec, name, ok := author.record(); ok {
		b.Author = &models.Author{Record: rec, Name: name}
	}
	if rec, name, ok := genre.record(); ok {
		b.Genre = &models.Genre{Record: rec, Name: name}
	}
	if rec, name, ok := publisher.record(); ok {
		b.Publisher = &models.Publisher{Record: rec, Name: name}
	}
	return b, nil
}

func (r *booksRepo) Create(ctx context.Context, b models.Book) (models.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, withRelations(`
INSERT INTO books (title, author_id, genre_id, publisher_id, description, isbn, price, stock,
                   published_at, image_url, created_by, updated_by, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9::date,$10,$11,$12,$13)
RETURNING *`),
		b.Title, b.AuthorID, b.GenreID, b.PublisherID, b.Description, b.ISBN, b.Price, b.Stock,
		b.PublishedAt, b.ImageURL, b.CreatedBy, b.UpdatedBy, b.Status,
	))
}

func (r *booksRepo) Get(ctx context.Context, id int64) (models.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, withRelations(`SELECT * FROM books WHERE id=$1`), id))
}

func (r *booksRepo) Update(ctx context.Context, b models.Book) (models.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, withRelations(`
UPDATE books
   SET title=$2, author_id=$3, genre_id=$4, publisher_id=$5, description=$6, isbn=$7,
       price=$8, stock=$9, published_at=$10::date, image_url=$11, updated_by=$12, status=$13,
       updated_at=now()
 WHERE id=$1
RETURNING *`),
		b.ID, b.Title, b.AuthorID, b.GenreID, b.PublisherID, b.Description, b.ISBN, b.Price,
		b.Stock, b.PublishedAt, b.ImageURL, b.UpdatedBy, b.Status,
	))
}

func (r *booksRepo) List(ctx context.Context, q repository.Query) ([]models.Book, int, error) {
	q = q.Normalize()
	w := catalogWhere(q, bookEq, bookSearch)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM books`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		withRelations(`SELECT * FROM books`+w.sql()+` ORDER BY created_at DESC, id DESC`+page(q))+
			` ORDER BY b.created_at DESC, b.id DESC`,
		w.args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}
