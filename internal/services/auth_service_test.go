package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/audit/mocks"
	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository/memory"
)

type AuthSuite struct {
	suite.Suite
	ctx   context.Context
	logs  *memory.AuditLogs
	users *UserService
	tm    *auth.TokenManager
	svc   *AuthService
	store *memory.Users
	real  models.User
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
	s.ctx = context.Background()
	s.logs = memory.NewAuditLogs()
	rec := audit.NewRecorder(s.logs, audit.WithLogger(quietLogger()))
	s.store = memory.NewUsers()
	s.users = NewUserService(s.store, rec)
	s.tm = auth.NewTokenManager("test-secret", "library-admin", time.Hour)
	s.svc = NewAuthService(s.store, s.tm, rec)

	u, err := s.users.Create(s.ctx, UserInput{Email: "real@x.com", Password: "correct", Role: models.RoleAdmin}, nil)
	s.Require().NoError(err)
	s.real = u
}

func (s *AuthSuite) loginEntries() []models.AuditLog {
	var out []models.AuditLog
	for _, l := range s.logs.All() {
		if l.Action == models.ActionLogin {
			out = append(out, l)
		}
	}
	return out
}

func (s *AuthSuite) TestLoginFailuresLookIdentical() {
	_, errMissing := s.svc.Login(s.ctx, "missing@x.com", "x")
	_, errWrong := s.svc.Login(s.ctx, "real@x.com", "wrong")

	s.Require().Error(errMissing)
	s.Require().Error(errWrong)
	s.Equal(errMissing.Error(), errWrong.Error())
	s.Equal(apperr.KindUnauthorized, apperr.KindOf(errMissing))
	s.Equal(apperr.KindUnauthorized, apperr.KindOf(errWrong))

	entries := s.loginEntries()
	s.Require().Len(entries, 2)
	s.Equal(models.OutcomeError, entries[0].Outcome)
	s.Nil(entries[0].ActorID)
	s.Equal(models.OutcomeError, entries[1].Outcome)
	s.Require().NotNil(entries[1].ActorID)
	s.Equal(s.real.ID, *entries[1].ActorID)
}

func (s *AuthSuite) TestInactiveAccountCannotLogIn() {
	_, err := s.users.SoftDelete(s.ctx, s.real.ID, nil)
	s.Require().NoError(err)

	_, err = s.svc.Login(s.ctx, "real@x.com", "correct")
	s.Equal(ErrInvalidCredentials, err)

	entries := s.loginEntries()
	s.Require().Len(entries, 1)
	s.Equal(models.OutcomeError, entries[0].Outcome)
	s.Equal(s.real.ID, *entries[0].ActorID)
}

func (s *AuthSuite) TestLoginSuccess() {
	res, err := s.svc.Login(s.ctx, "REAL@x.com", "correct")
	s.Require().NoError(err)
	s.Equal(PublicUser{ID: s.real.ID, Email: "real@x.com", Role: models.RoleAdmin}, res.User)

	claims, err := s.tm.Parse(res.AccessToken)
	s.Require().NoError(err)
	s.Equal(s.real.ID, claims.UserID)
	s.Equal("real@x.com", claims.Email)
	s.Equal(models.RoleAdmin, claims.Role)

	entries := s.loginEntries()
	s.Require().Len(entries, 1)
	s.Equal(models.OutcomeSuccess, entries[0].Outcome)
	s.Equal("auth", entries[0].EntityName)
}

func (s *AuthSuite) TestLogoutIsAuditOnly() {
	msg := s.svc.Logout(s.ctx, s.real.ID)
	s.NotEmpty(msg)

	l := s.logs.All()[len(s.logs.All())-1]
	s.Equal(models.ActionLogout, l.Action)
	s.Equal(models.OutcomeSuccess, l.Outcome)
	s.Equal(s.real.ID, *l.ActorID)
}

func (s *AuthSuite) TestLoginIgnoresAuditFailures() {
	ctrl := gomock.NewController(s.T())
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.AuditLog{}, errors.New("audit store down")).
		Times(3)
	svc := NewAuthService(s.store, s.tm, audit.NewRecorder(store, audit.WithLogger(quietLogger())))

	want, err := s.svc.Login(s.ctx, "real@x.com", "correct")
	s.Require().NoError(err)
	got, err := svc.Login(s.ctx, "real@x.com", "correct")
	s.Require().NoError(err)
	s.Equal(want.User, got.User)
	claims, err := s.tm.Parse(got.AccessToken)
	s.Require().NoError(err)
	s.Equal(s.real.ID, claims.UserID)

	_, err = svc.Login(s.ctx, "real@x.com", "wrong")
	s.Equal(ErrInvalidCredentials, err)
	_, err = svc.Login(s.ctx, "missing@x.com", "x")
	s.Equal(ErrInvalidCredentials, err)
}
