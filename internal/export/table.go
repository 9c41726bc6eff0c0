package export

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/services"
)

// Kind names an exportable data set.
type Kind string

const (
	KindBooks      Kind = "books"
	KindLogs       Kind = "logs"
	KindAuthors    Kind = "authors"
	KindGenres     Kind = "genres"
	KindPublishers Kind = "publishers"
	KindUsers      Kind = "users"
)

// QueryFunc lists every row of one data set matching filters.
type QueryFunc func(ctx context.Context, filters map[string]any) ([]any, error)

// Table maps each Kind to its list query. The set of kinds is fixed by NewTable.
type Table map[Kind]QueryFunc

// Sources are the services the export kinds read from.
type Sources struct {
	Books      *services.BookService
	Authors    *services.AuthorService
	Genres     *services.GenreService
	Publishers *services.PublisherService
	Users      *services.UserService
	Logs       *services.LogService
}

func NewTable(src Sources) Table {
	return Table{
		KindBooks: func(ctx context.Context, filters map[string]any) ([]any, error) {
			f, err := services.DecodeFilters[services.BookFilter](filters)
			if err != nil {
				return nil, err
			}
			f.All = true
			p, err := src.Books.List(ctx, f)
			return rows(p.Data), err
		},
		KindAuthors:    named(src.Authors.List),
		KindGenres:     named(src.Genres.List),
		KindPublishers: named(src.Publishers.List),
		KindUsers: func(ctx context.Context, filters map[string]any) ([]any, error) {
			f, err := services.DecodeFilters[services.UserFilter](filters)
			if err != nil {
				return nil, err
			}
			f.All = true
			p, err := src.Users.List(ctx, f)
			return rows(p.Data), err
		},
		KindLogs: func(ctx context.Context, filters map[string]any) ([]any, error) {
			f, err := services.DecodeFilters[services.LogFilter](filters)
			if err != nil {
				return nil, err
			}
			f.All = true
			p, err := src.Logs.List(ctx, f)
			return rows(p.Data), err
		},
	}
}

// Resolve returns the query registered for kind.
func (t Table) Resolve(kind string) (QueryFunc, bool) {
	q, ok := t[Kind(kind)]
	return q, ok
}

func named[T any](list func(context.Context, services.NameFilter) (services.Page[T], error)) QueryFunc {
	return func(ctx context.Context, filters map[string]any) ([]any, error) {
		f, err := services.DecodeFilters[services.NameFilter](filters)
		if err != nil {
			return nil, err
		}
		f.All = true
		p, err := list(ctx, f)
		return rows(p.Data), err
	}
}

func rows[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
