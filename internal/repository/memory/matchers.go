package memory

import (
	"strings"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
)

func NewAuthors() *Catalog[models.Author, *models.Author] {
	return NewCatalog[models.Author, *models.Author](func(a models.Author, q repository.Query) bool {
		return matchName(a.Name, q)
	}, nil)
}

func NewGenres() *Catalog[models.Genre, *models.Genre] {
	return NewCatalog[models.Genre, *models.Genre](func(g models.Genre, q repository.Query) bool {
		return matchName(g.Name, q)
	}, func(a, b models.Genre) bool { return a.Name == b.Name })
}

func NewPublishers() *Catalog[models.Publisher, *models.Publisher] {
	return NewCatalog[models.Publisher, *models.Publisher](func(p models.Publisher, q repository.Query) bool {
		return matchName(p.Name, q)
	}, func(a, b models.Publisher) bool { return a.Name == b.Name })
}

func matchBook(b models.Book, q repository.Query) bool {
	for col, v := range q.Eq {
		switch col {
		case "author_id":
			if id, ok := v.(int64); ok && b.AuthorID != id {
				return false
			}
		case "genre_id":
			if id, ok := v.(int64); ok && b.GenreID != id {
				return false
			}
		case "publisher_id":
			if id, ok := v.(int64); ok && b.PublisherID != id {
				return false
			}
		case "isbn":
			if s, ok := v.(string); ok && b.ISBN != s {
				return false
			}
		}
	}
	if s, ok := q.Search["title"]; ok && !containsFold(b.Title, s) {
		return false
	}
	return true
}

func matchName(name string, q repository.Query) bool {
	if v, ok := q.Eq["name"].(string); ok && name != v {
		return false
	}
	if s, ok := q.Search["name"]; ok && !containsFold(name, s) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
