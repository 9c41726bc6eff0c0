package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

type UserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserPatch struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *bool   `json:"status"`
}

type UserFilter struct {
	ListParams
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

func (f UserFilter) Query() repo.Query {
	q := f.query()
	if f.Role != "" {
		q.Eq = map[string]any{"role": f.Role}
	}
	if e := strings.TrimSpace(f.Email); e != "" {
		q.Search = map[string]string{"email": e}
	}
	return q
}

type UserService struct {
	*Resource[models.User, *models.User]
	r repo.Users
}

// Deleting a user leaves no stateAfter on the audit entry.
func NewUserService(r repo.Users, rec *audit.Recorder) *UserService {
	return &UserService{
		Resource: NewResource[models.User, *models.User](r, rec, Policy{
			Entity:          "users",
			Label:           "user",
			AllowInactive:   true,
			OmitDeleteState: true,
		}),
		r: r,
	}
}

func (s *UserService) Create(ctx context.Context, in UserInput, actor *int64) (models.User, error) {
	u, err := s.newUser(ctx, in)
	if err != nil {
		s.fail(ctx, models.ActionCreate, actor, nil, err)
		return models.User{}, err
	}
	return s.Resource.Create(ctx, u, actor)
}

func (s *UserService) newUser(ctx context.Context, in UserInput) (models.User, error) {
	u := models.User{Email: models.NormalizeEmail(in.Email), Role: in.Role}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if !models.ValidRole(u.Role) {
		return u, apperr.BadRequest("invalid role")
	}
	if err := s.ensureEmailFree(ctx, u.Email, 0); err != nil {
		return u, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return u, apperr.Internal("could not hash password", err)
	}
	u.PasswordHash = hash
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, p UserPatch, actor *int64) (models.User, error) {
	return s.Resource.Update(ctx, id, actor, func(u *models.User) error {
		if p.Email != nil {
			email := models.NormalizeEmail(*p.Email)
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return err
			}
			u.Email = email
		}
		if p.Role != nil {
			if !models.ValidRole(*p.Role) {
				return apperr.BadRequest("invalid role")
			}
			u.Role = *p.Role
		}
		if p.Password != nil && *p.Password != "" {
			hash, err := auth.HashPassword(*p.Password)
			if err != nil {
				return apperr.Internal("could not hash password", err)
			}
			u.PasswordHash = hash
		}
		if p.Status != nil {
			u.Status = *p.Status
		}
		return nil
	})
}

func (s *UserService) List(ctx context.Context, f UserFilter) (Page[models.User], error) {
	return s.Resource.List(ctx, f.Query())
}

// GetByEmail returns the account in any status, password hash included.
func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.r.GetByEmail(ctx, models.NormalizeEmail(email))
}

// EnsureDefaultAdmin creates the bootstrap admin account when no account uses email.
// Seeding is not audited.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	email = models.NormalizeEmail(email)
	_, err := s.r.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := models.User{Email: email, PasswordHash: hash, Role: models.RoleAdmin}
	u.Status = true
	if _, err := s.r.Create(ctx, u); err != nil {
		return err
	}
	slog.Info("default admin created", "email", email)
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	u, err := s.r.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return apperr.Internal("could not check email", err)
	case u.ID != selfID:
		return apperr.BadRequest("email already registered")
	}
	return nil
}
