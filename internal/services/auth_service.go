package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

const authEntity = "auth"

// ErrInvalidCredentials is returned for every failed login so callers cannot tell an
// unknown email from a wrong password or a disabled account.
var ErrInvalidCredentials = apperr.Unauthorized("invalid credentials")

type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken string     `json:"accessToken"`
	User        PublicUser `json:"user"`
}

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
	audit *audit.Recorder
}

func NewAuthService(users repo.Users, tm *auth.TokenManager, rec *audit.Recorder) *AuthService {
	return &AuthService{users: users, tm: tm, audit: rec}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = models.NormalizeEmail(email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.loginFailed(ctx, nil, fmt.Sprintf("login failed for %s: %v", email, err))
			return LoginResult{}, apperr.Internal("could not log in", err)
		}
		// no actor: the address does not resolve to an account
		s.loginFailed(ctx, nil, fmt.Sprintf("login failed for %s: unknown email", email))
		return LoginResult{}, ErrInvalidCredentials
	}
	if u.PasswordHash == "" || auth.VerifyPassword(password, u.PasswordHash) != nil {
		s.loginFailed(ctx, &u.ID, fmt.Sprintf("login failed for %s: wrong password", email))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !u.Status {
		s.loginFailed(ctx, &u.ID, fmt.Sprintf("login failed for %s: inactive account", email))
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, _, err := s.tm.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		s.loginFailed(ctx, &u.ID, fmt.Sprintf("login failed for %s: %v", email, err))
		return LoginResult{}, apperr.Internal("could not issue token", err)
	}

	s.audit.Record(ctx, models.AuditLog{
		ActorID:    &u.ID,
		EntityName: authEntity,
		Action:     models.ActionLogin,
		Outcome:    models.OutcomeSuccess,
		Note:       "login succeeded",
	})
	return LoginResult{
		AccessToken: tok,
		User:        PublicUser{ID: u.ID, Email: u.Email, Role: u.Role},
	}, nil
}

// Logout only records the event; the token stays valid until it expires.
func (s *AuthService) Logout(ctx context.Context, actor int64) string {
	s.audit.Record(ctx, models.AuditLog{
		ActorID:    &actor,
		EntityName: authEntity,
		Action:     models.ActionLogout,
		Outcome:    models.OutcomeSuccess,
		Note:       "user logged out",
	})
	return "logged out successfully"
}

func (s *AuthService) loginFailed(ctx context.Context, actor *int64, note string) {
	s.audit.Record(ctx, models.AuditLog{
		ActorID:    actor,
		EntityName: authEntity,
		Action:     models.ActionLogin,
		Outcome:    models.OutcomeError,
		Note:       note,
	})
}
