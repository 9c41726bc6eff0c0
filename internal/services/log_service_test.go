package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository/memory"
)

func TestLogServiceList(t *testing.T) {
	ctx := context.Background()
	store := memory.NewAuditLogs()
	rec := audit.NewRecorder(store, audit.WithLogger(quietLogger()))
	rec.Record(ctx, models.AuditLog{ActorID: audit.ID(1), EntityName: "books", Action: models.ActionCreate})
	rec.Record(ctx, models.AuditLog{ActorID: audit.ID(2), EntityName: "authors", Action: models.ActionDelete})
	rec.Record(ctx, models.AuditLog{EntityName: "auth", Action: models.ActionLogin, Outcome: models.OutcomeError})

	svc := NewLogService(store)

	page, err := svc.List(ctx, LogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, "auth", page.Data[0].EntityName, "newest first")

	page, err = svc.List(ctx, LogFilter{UserID: audit.ID(2)})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "authors", page.Data[0].EntityName)

	page, err = svc.List(ctx, LogFilter{Action: "create", TableName: "books"})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	page, err = svc.List(ctx, LogFilter{FromDate: "2000-01-01", ToDate: "2999-12-31"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)

	_, err = svc.List(ctx, LogFilter{Action: "DROP"})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	_, err = svc.List(ctx, LogFilter{FromDate: "yesterday"})
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestLogServiceAttachesActor(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsers()
	store := memory.NewAuditLogs().WithUsers(users)
	rec := audit.NewRecorder(store, audit.WithLogger(quietLogger()))

	admin, err := NewUserService(users, rec).Create(ctx, UserInput{Email: "admin@example.com", Password: "secret1", Role: models.RoleAdmin}, nil)
	require.NoError(t, err)
	rec.Record(ctx, models.AuditLog{ActorID: &admin.ID, EntityName: "books", Action: models.ActionCreate})
	rec.Record(ctx, models.AuditLog{ActorID: audit.ID(99), EntityName: "books", Action: models.ActionCreate})

	page, err := NewLogService(store).List(ctx, LogFilter{TableName: "books"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)

	assert.Nil(t, page.Data[0].User, "unknown account")
	require.NotNil(t, page.Data[1].User)
	assert.Equal(t, models.Actor{ID: admin.ID, Email: "admin@example.com", Role: models.RoleAdmin}, *page.Data[1].User)

	b, err := json.Marshal(page.Data[1])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"user":{"id":`)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "$2a$")
}
