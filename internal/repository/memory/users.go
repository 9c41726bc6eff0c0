package memory

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
)

type Users struct {
	*Catalog[models.User, *models.User]
}

func NewUsers() *Users {
	return &Users{NewCatalog[models.User, *models.User](func(u models.User, q repository.Query) bool {
		if v, ok := q.Eq["role"].(string); ok && u.Role != v {
			return false
		}
		if s, ok := q.Search["email"]; ok && !containsFold(u.Email, s) {
			return false
		}
		return true
	}, func(a, b models.User) bool { return a.Email == b.Email })}
}

func (s *Users) GetByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}
