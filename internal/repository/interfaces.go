package repository

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/library-admin/internal/models"
)

// Stores return these (optionally wrapped) so services can translate them.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
	ErrReference = errors.New("referenced row does not exist")
)

// Scope selects rows by their status flag.
type Scope int

const (
	ScopeActive Scope = iota
	ScopeInactive
	ScopeAll
)

// Query is the listing request every catalog store understands. Eq and Search are keyed
// by column name; stores ignore columns they do not know.
type Query struct {
	Page   int
	Limit  int
	All    bool
	Scope  Scope
	Eq     map[string]any
	Search map[string]string
}

func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

func (q Query) Offset() int { return (q.Page - 1) * q.Limit }

// Catalog is the persistence contract shared by every soft-deletable resource.
// Results of List are ordered by creation time, newest first.
type Catalog[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, rec T) (T, error)
	List(ctx context.Context, q Query) ([]T, int, error)
}

type (
	Books      = Catalog[models.Book]
	Authors    = Catalog[models.Author]
	Genres     = Catalog[models.Genre]
	Publishers = Catalog[models.Publisher]
)

type Users interface {
	Catalog[models.User]
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type LogFilter struct {
	ActorID    *int64
	EntityName string
	Action     models.Action
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
	All        bool
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) (models.AuditLog, error)
	List(ctx context.Context, f LogFilter) ([]models.AuditLog, int, error)
}

// Repositories bundles one store per table so drivers can be swapped in main.
type Repositories struct {
	Books      Books
	Authors    Authors
	Genres     Genres
	Publishers Publishers
	Users      Users
	AuditLogs  AuditLogs
}
