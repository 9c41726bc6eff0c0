package audit

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"

	"github.com/baharkarakas/library-admin/internal/models"
)

// Store persists audit entries. repository.AuditLogs satisfies it.
type Store interface {
	Create(ctx context.Context, l models.AuditLog) (models.AuditLog, error)
}
