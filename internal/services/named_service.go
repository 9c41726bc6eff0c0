package services

import (
	"context"
	"strings"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

type NameInput struct {
	Name string `json:"name"`
}

type NamePatch struct {
	Name   *string `json:"name"`
	Status *bool   `json:"status"`
}

type NameFilter struct {
	ListParams
	Name string `json:"name,omitempty"`
}

func (f NameFilter) Query() repo.Query {
	q := f.query()
	if n := strings.TrimSpace(f.Name); n != "" {
		q.Search = map[string]string{"name": n}
	}
	return q
}

// NamedService serves authors, genres and publishers.
type NamedService[T any, P models.Named[T]] struct {
	*Resource[T, P]
	store repo.Catalog[T]
	// checkName rejects a name already used by another row before writing.
	checkName bool
}

type (
	AuthorService    = NamedService[models.Author, *models.Author]
	GenreService     = NamedService[models.Genre, *models.Genre]
	PublisherService = NamedService[models.Publisher, *models.Publisher]
)

func NewAuthorService(store repo.Authors, rec *audit.Recorder) *AuthorService {
	return &AuthorService{
		Resource: NewResource[models.Author, *models.Author](store, rec, Policy{Entity: "authors", Label: "author"}),
		store:    store,
	}
}

// Genre names are unique at the store level.
func NewGenreService(store repo.Genres, rec *audit.Recorder) *GenreService {
	return &GenreService{
		Resource: NewResource[models.Genre, *models.Genre](store, rec, Policy{Entity: "genres", Label: "genre"}),
		store:    store,
	}
}

func NewPublisherService(store repo.Publishers, rec *audit.Recorder) *PublisherService {
	return &PublisherService{
		Resource: NewResource[models.Publisher, *models.Publisher](store, rec, Policy{
			Entity:        "publishers",
			Label:         "publisher",
			AllowInactive: true,
		}),
		store:     store,
		checkName: true,
	}
}

func (s *NamedService[T, P]) Create(ctx context.Context, in NameInput, actor *int64) (T, error) {
	var v T
	name := strings.TrimSpace(in.Name)
	*P(&v).NameRef() = name

	if err := s.ensureFree(ctx, name, 0); err != nil {
		s.fail(ctx, models.ActionCreate, actor, nil, err)
		var zero T
		return zero, err
	}
	return s.Resource.Create(ctx, v, actor)
}

func (s *NamedService[T, P]) Update(ctx context.Context, id int64, patch NamePatch, actor *int64) (T, error) {
	return s.Resource.Update(ctx, id, actor, func(v *T) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if err := s.ensureFree(ctx, name, id); err != nil {
				return err
			}
			*P(v).NameRef() = name
		}
		if patch.Status != nil {
			P(v).Rec().Status = *patch.Status
		}
		return nil
	})
}

func (s *NamedService[T, P]) List(ctx context.Context, f NameFilter) (Page[T], error) {
	return s.Resource.List(ctx, f.Query())
}

// ensureFree looks for another row with the same name in any status.
func (s *NamedService[T, P]) ensureFree(ctx context.Context, name string, selfID int64) error {
	if !s.checkName {
		return nil
	}
	rows, _, err := s.store.List(ctx, repo.Query{
		All:   true,
		Scope: repo.ScopeAll,
		Eq:    map[string]any{"name": name},
	})
	if err != nil {
		return apperr.Internal("could not check "+s.policy.Label+" name", err)
	}
	for i := range rows {
		if P(&rows[i]).Rec().ID != selfID {
			return apperr.BadRequest(s.policy.Label + " already exists")
		}
	}
	return nil
}
