package services

import (
	"context"
	"strings"

	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

type BookInput struct {
	Title       string `json:"title"`
	AuthorID    int64  `json:"authorId"`
	GenreID     int64  `json:"genreId"`
	PublisherID int64  `json:"publisherId"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	PublishedAt string `json:"publishedAt"`
	ImageURL    string `json:"imageUrl"`
}

type BookPatch struct {
	Title       *string `json:"title"`
	AuthorID    *int64  `json:"authorId"`
	GenreID     *int64  `json:"genreId"`
	PublisherID *int64  `json:"publisherId"`
	Description *string `json:"description"`
	ISBN        *string `json:"isbn"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	PublishedAt *string `json:"publishedAt"`
	ImageURL    *string `json:"imageUrl"`
	Status      *bool   `json:"status"`
}

type BookFilter struct {
	ListParams
	AuthorID    *int64 `json:"authorId,omitempty"`
	GenreID     *int64 `json:"genreId,omitempty"`
	PublisherID *int64 `json:"publisherId,omitempty"`
	Title       string `json:"title,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
}

func (f BookFilter) Query() repo.Query {
	q := f.query()
	q.Eq = map[string]any{}
	if f.AuthorID != nil {
		q.Eq["author_id"] = *f.AuthorID
	}
	if f.GenreID != nil {
		q.Eq["genre_id"] = *f.GenreID
	}
	if f.PublisherID != nil {
		q.Eq["publisher_id"] = *f.PublisherID
	}
	if isbn := strings.TrimSpace(f.ISBN); isbn != "" {
		q.Eq["isbn"] = isbn
	}
	if t := strings.TrimSpace(f.Title); t != "" {
		q.Search = map[string]string{"title": t}
	}
	return q
}

type BookService struct {
	*Resource[models.Book, *models.Book]
}

func NewBookService(store repo.Books, rec *audit.Recorder) *BookService {
	return &BookService{NewResource[models.Book, *models.Book](store, rec, Policy{
		Entity:        "books",
		Label:         "book",
		AllowInactive: true,
	})}
}

func (s *BookService) Create(ctx context.Context, in BookInput, actor *int64) (models.Book, error) {
	b := models.Book{
		Title:       strings.TrimSpace(in.Title),
		AuthorID:    in.AuthorID,
		GenreID:     in.GenreID,
		PublisherID: in.PublisherID,
		Description: in.Description,
		ISBN:        strings.TrimSpace(in.ISBN),
		Price:       in.Price,
		Stock:       in.Stock,
		PublishedAt: in.PublishedAt,
		ImageURL:    imageOrDefault(in.ImageURL),
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	return s.Resource.Create(ctx, b, actor)
}

func (s *BookService) Update(ctx context.Context, id int64, p BookPatch, actor *int64) (models.Book, error) {
	return s.Resource.Update(ctx, id, actor, func(b *models.Book) error {
		if p.Title != nil {
			b.Title = strings.TrimSpace(*p.Title)
		}
		if p.AuthorID != nil {
			b.AuthorID = *p.AuthorID
		}
		if p.GenreID != nil {
			b.GenreID = *p.GenreID
		}
		if p.PublisherID != nil {
			b.PublisherID = *p.PublisherID
		}
		if p.Description != nil {
			b.Description = *p.Description
		}
		if p.ISBN != nil {
			b.ISBN = strings.TrimSpace(*p.ISBN)
		}
		if p.Price != nil {
			b.Price = *p.Price
		}
		if p.Stock != nil {
			b.Stock = *p.Stock
		}
		if p.PublishedAt != nil {
			b.PublishedAt = *p.PublishedAt
		}
		if p.ImageURL != nil {
			b.ImageURL = *p.ImageURL
		}
		b.ImageURL = imageOrDefault(b.ImageURL)
		if p.Status != nil {
			b.Status = *p.Status
		}
		b.UpdatedBy = actor
		return nil
	})
}

func (s *BookService) List(ctx context.Context, f BookFilter) (Page[models.Book], error) {
	return s.Resource.List(ctx, f.Query())
}

func imageOrDefault(url string) string {
	if u := strings.TrimSpace(url); u != "" {
		return u
	}
	return models.DefaultBookImage
}
