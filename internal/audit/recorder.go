package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/library-admin/internal/metrics"
	"github.com/baharkarakas/library-admin/internal/models"
)

// Recorder is the only place where audit failures are discarded. Record makes exactly
// one attempt against the store; whatever happens, the caller carries on.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Recorder)

func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{store: store, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Record persists entry. ID and OccurredAt are assigned by the store.
func (r *Recorder) Record(ctx context.Context, entry models.AuditLog) {
	entry.ID = 0
	entry.User = nil
	if entry.Outcome == "" {
		entry.Outcome = models.OutcomeSuccess
	}

	defer func() {
		if p := recover(); p != nil {
			r.failed(entry, fmt.Errorf("panic: %v", p))
		}
	}()

	if _, err := r.store.Create(ctx, entry); err != nil {
		r.failed(entry, err)
		return
	}
	metrics.AuditEntriesTotal.WithLabelValues(entry.EntityName, string(entry.Action), string(entry.Outcome)).Inc()
}

func (r *Recorder) failed(entry models.AuditLog, err error) {
	metrics.AuditWriteFailures.WithLabelValues(entry.EntityName, string(entry.Action)).Inc()
	r.logger.Warn("audit write failed",
		"entity", entry.EntityName,
		"action", entry.Action,
		"outcome", entry.Outcome,
		"err", err,
	)
}

// Stater lets a model choose what its audit snapshot contains.
type Stater interface {
	AuditState() any
}

// Snapshot turns a model into the plain field map stored in stateBefore/stateAfter.
// Fields hidden from JSON (password hashes) never reach the audit trail.
func Snapshot(v any) map[string]any {
	if s, ok := v.(Stater); ok {
		v = s.AuditState()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// ID returns a pointer to id, for the optional ActorID/EntityID fields.
func ID(id int64) *int64 { return &id }
