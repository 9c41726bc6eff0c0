package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/repository"
)

// AuditLogs is an append-only in-process audit trail.
type AuditLogs struct {
	mu    sync.RWMutex
	seq   int64
	logs  []models.AuditLog
	users *Users
}

func NewAuditLogs() *AuditLogs { return &AuditLogs{} }

// WithUsers makes List attach the actor of each entry from u.
func (s *AuditLogs) WithUsers(u *Users) *AuditLogs {
	s.users = u
	return s
}

func (s *AuditLogs) Create(_ context.Context, l models.AuditLog) (models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now()
	l.ID = s.seq
	l.OccurredAt = now
	l.UpdatedAt = now
	s.logs = append(s.logs, l)
	return l, nil
}

func (s *AuditLogs) List(ctx context.Context, f repository.LogFilter) ([]models.AuditLog, int, error) {
	s.mu.RLock()
	out := make([]models.AuditLog, 0, len(s.logs))
	// newest first; logs are appended in creation order
	for i := len(s.logs) - 1; i >= 0; i-- {
		if matchLog(s.logs[i], f) {
			out = append(out, s.logs[i])
		}
	}
	s.mu.RUnlock()

	q := repository.Query{Page: f.Page, Limit: f.Limit, All: f.All}.Normalize()
	rows, total, err := paginate(out, q)
	for i := range rows {
		rows[i].User = s.actor(ctx, rows[i].ActorID)
	}
	return rows, total, err
}

func (s *AuditLogs) actor(ctx context.Context, id *int64) *models.Actor {
	if s.users == nil || id == nil {
		return nil
	}
	u, err := s.users.Get(ctx, *id)
	if err != nil {
		return nil
	}
	return &models.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}

// All returns every entry in insertion order.
func (s *AuditLogs) All() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.logs...)
}

func matchLog(l models.AuditLog, f repository.LogFilter) bool {
	if f.ActorID != nil && (l.ActorID == nil || *l.ActorID != *f.ActorID) {
		return false
	}
	if f.EntityName != "" && l.EntityName != f.EntityName {
		return false
	}
	if f.Action != "" && l.Action != f.Action {
		return false
	}
	if f.From != nil && l.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && l.OccurredAt.After(*f.To) {
		return false
	}
	return true
}
