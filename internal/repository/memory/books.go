package memory

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
)

// Books stores books without their relations and attaches the current author, genre and
// publisher rows on the way out, inactive ones included.
type Books struct {
	*Catalog[models.Book, *models.Book]
	authors    *Catalog[models.Author, *models.Author]
	genres     *Catalog[models.Genre, *models.Genre]
	publishers *Catalog[models.Publisher, *models.Publisher]
}

func NewBooks(
	authors *Catalog[models.Author, *models.Author],
	genres *Catalog[models.Genre, *models.Genre],
	publishers *Catalog[models.Publisher, *models.Publisher],
) *Books {
	return &Books{
		Catalog: NewCatalog[models.Book, *models.Book](matchBook, func(a, b models.Book) bool {
			return a.ISBN == b.ISBN
		}),
		authors:    authors,
		genres:     genres,
		publishers: publishers,
	}
}

func (s *Books) Create(ctx context.Context, b models.Book) (models.Book, error) {
	b, err := s.Catalog.Create(ctx, b.Detached())
	if err != nil {
		return b, err
	}
	return s.attach(ctx, b), nil
}

func (s *Books) Get(ctx context.Context, id int64) (models.Book, error) {
	b, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return b, err
	}
	return s.attach(ctx, b), nil
}

func (s *Books) Update(ctx context.Context, b models.Book) (models.Book, error) {
	b, err := s.Catalog.Update(ctx, b.Detached())
	if err != nil {
		return b, err
	}
	return s.attach(ctx, b), nil
}

func (s *Books) List(ctx context.Context, q repository.Query) ([]models.Book, int, error) {
	rows, total, err := s.Catalog.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]models.Book, len(rows))
	for i, b := range rows {
		out[i] = s.attach(ctx, b)
	}
	return out, total, nil
}

func (s *Books) attach(ctx context.Context, b models.Book) models.Book {
	b.Author = lookup(ctx, s.authors, b.AuthorID)
	b.Genre = lookup(ctx, s.genres, b.GenreID)
	b.Publisher = lookup(ctx, s.publishers, b.PublisherID)
	return b
}

// lookup returns the row with id, or nil when it is missing or c is unset.
func lookup[T any, P models.Entity[T]](ctx context.Context, c *Catalog[T, P], id int64) *T {
	if c == nil {
		return nil
	}
	v, err := c.Get(ctx, id)
	if err != nil {
		return nil
	}
	return &v
}
