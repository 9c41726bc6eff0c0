package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
)

// Matcher reports whether a row satisfies the Eq/Search part of a query.
type Matcher[T any] func(rec T, q repository.Query) bool

// Catalog is an in-process repository.Catalog. It backs the "memory" store driver and
// the service tests.
type Catalog[T any, P models.Entity[T]] struct {
	mu     sync.RWMutex
	seq    int64
	rows   map[int64]T
	match  Matcher[T]
	unique func(a, b T) bool
	now    func() time.Time
}

func NewCatalog[T any, P models.Entity[T]](match Matcher[T], unique func(a, b T) bool) *Catalog[T, P] {
	return &Catalog[T, P]{
		rows:   make(map[int64]T),
		match:  match,
		unique: unique,
		now:    time.Now,
	}
}

func (c *Catalog[T, P]) Create(_ context.Context, rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conflicts(0, rec) {
		var zero T
		return zero, repository.ErrDuplicate
	}
	c.seq++
	now := c.now()
	r := P(&rec).Rec()
	r.ID = c.seq
	r.CreatedAt = now
	r.UpdatedAt = now
	c.rows[r.ID] = rec
	return rec, nil
}

func (c *Catalog[T, P]) Get(_ context.Context, id int64) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.rows[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return rec, nil
}

func (c *Catalog[T, P]) Update(_ context.Context, rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	r := P(&rec).Rec()
	existing, ok := c.rows[r.ID]
	if !ok {
		return zero, repository.ErrNotFound
	}
	if c.conflicts(r.ID, rec) {
		return zero, repository.ErrDuplicate
	}
	r.CreatedAt = P(&existing).Rec().CreatedAt
	r.UpdatedAt = c.now()
	c.rows[r.ID] = rec
	return rec, nil
}

func (c *Catalog[T, P]) List(_ context.Context, q repository.Query) ([]T, int, error) {
	q = q.Normalize()
	c.mu.RLock()
	out := make([]T, 0, len(c.rows))
	for _, rec := range c.rows {
		if !inScope(P(&rec).Rec().Status, q.Scope) {
			continue
		}
		if c.match != nil && !c.match(rec, q) {
			continue
		}
		out = append(out, rec)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := P(&out[i]).Rec(), P(&out[j]).Rec()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return paginate(out, q)
}

func (c *Catalog[T, P]) conflicts(selfID int64, rec T) bool {
	if c.unique == nil {
		return false
	}
	for id, existing := range c.rows {
		if id != selfID && c.unique(existing, rec) {
			return true
		}
	}
	return false
}

func inScope(status bool, s repository.Scope) bool {
	switch s {
	case repository.ScopeInactive:
		return !status
	case repository.ScopeAll:
		return true
	default:
		return status
	}
}

func paginate[T any](rows []T, q repository.Query) ([]T, int, error) {
	total := len(rows)
	if q.All {
		return rows, total, nil
	}
	start := q.Offset()
	if start >= total {
		return []T{}, total, nil
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return rows[start:end], total, nil
}
