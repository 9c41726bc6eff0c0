package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/models"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

// Page is the list envelope every resource returns.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// Policy describes how one resource plugs into Resource.
type Policy struct {
	// Entity is the table name written to the audit trail ("books").
	Entity string
	// Label names a single row in caller-facing messages ("book").
	Label string
	// AllowInactive lets update and delete target rows that are already soft deleted.
	AllowInactive bool
	// OmitDeleteState leaves stateAfter empty on DELETE entries.
	OmitDeleteState bool
}

// Resource implements the audited CRUD cycle shared by every catalog resource.
// Each mutation attempt produces exactly one audit entry, success or error.
type Resource[T any, P models.Entity[T]] struct {
	store  repo.Catalog[T]
	audit  *audit.Recorder
	policy Policy
}

func NewResource[T any, P models.Entity[T]](store repo.Catalog[T], rec *audit.Recorder, p Policy) *Resource[T, P] {
	return &Resource[T, P]{store: store, audit: rec, policy: p}
}

func (r *Resource[T, P]) Create(ctx context.Context, v T, actor *int64) (T, error) {
	P(&v).Rec().Status = true

	created, err := r.store.Create(ctx, v)
	if err != nil {
		r.fail(ctx, models.ActionCreate, actor, nil, err)
		var zero T
		return zero, r.translate("create", err)
	}

	r.audit.Record(ctx, models.AuditLog{
		ActorID:    actor,
		EntityName: r.policy.Entity,
		EntityID:   audit.ID(P(&created).Rec().ID),
		Action:     models.ActionCreate,
		StateAfter: audit.Snapshot(created),
		Outcome:    models.OutcomeSuccess,
	})
	return created, nil
}

// Update loads the row, applies mutate to a copy and stores the result. An error from
// mutate aborts the update and is returned as is.
func (r *Resource[T, P]) Update(ctx context.Context, id int64, actor *int64, mutate func(*T) error) (T, error) {
	var zero T
	cur, err := r.load(ctx, id)
	if err != nil {
		r.fail(ctx, models.ActionUpdate, actor, &id, err)
		return zero, err
	}
	before := audit.Snapshot(cur)

	next := cur
	if err := mutate(&next); err != nil {
		r.fail(ctx, models.ActionUpdate, actor, &id, err)
		return zero, err
	}
	P(&next).Rec().ID = id

	updated, err := r.store.Update(ctx, next)
	if err != nil {
		r.fail(ctx, models.ActionUpdate, actor, &id, err)
		return zero, r.translate("update", err)
	}

	r.audit.Record(ctx, models.AuditLog{
		ActorID:     actor,
		EntityName:  r.policy.Entity,
		EntityID:    &id,
		Action:      models.ActionUpdate,
		StateBefore: before,
		StateAfter:  audit.Snapshot(updated),
		Outcome:     models.OutcomeSuccess,
	})
	return updated, nil
}

// SoftDelete flips the status flag off and returns a confirmation message.
func (r *Resource[T, P]) SoftDelete(ctx context.Context, id int64, actor *int64) (string, error) {
	cur, err := r.load(ctx, id)
	if err != nil {
		r.fail(ctx, models.ActionDelete, actor, &id, err)
		return "", err
	}
	before := audit.Snapshot(cur)

	next := cur
	P(&next).Rec().Status = false
	deleted, err := r.store.Update(ctx, next)
	if err != nil {
		r.fail(ctx, models.ActionDelete, actor, &id, err)
		return "", r.translate("delete", err)
	}

	entry := models.AuditLog{
		ActorID:     actor,
		EntityName:  r.policy.Entity,
		EntityID:    &id,
		Action:      models.ActionDelete,
		StateBefore: before,
		Outcome:     models.OutcomeSuccess,
	}
	if !r.policy.OmitDeleteState {
		entry.StateAfter = audit.Snapshot(deleted)
	}
	r.audit.Record(ctx, entry)
	return r.policy.Label + " deleted successfully", nil
}

func (r *Resource[T, P]) List(ctx context.Context, q repo.Query) (Page[T], error) {
	rows, total, err := r.store.List(ctx, q)
	if err != nil {
		return Page[T]{}, apperr.Internal("could not list "+r.policy.Entity, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Data: rows, Total: total}, nil
}

// FindOne returns an active row; inactive rows are reported as missing.
func (r *Resource[T, P]) FindOne(ctx context.Context, id int64) (T, error) {
	var zero T
	v, err := r.store.Get(ctx, id)
	if err != nil {
		return zero, r.translate("get", err)
	}
	if !P(&v).Rec().Status {
		return zero, r.notFound(id)
	}
	return v, nil
}

// load fetches the target of a mutation, honouring AllowInactive.
func (r *Resource[T, P]) load(ctx context.Context, id int64) (T, error) {
	var zero T
	v, err := r.store.Get(ctx, id)
	if err != nil {
		return zero, r.translate("get", err)
	}
	if !r.policy.AllowInactive && !P(&v).Rec().Status {
		return zero, r.notFound(id)
	}
	return v, nil
}

func (r *Resource[T, P]) fail(ctx context.Context, action models.Action, actor, entityID *int64, err error) {
	r.audit.Record(ctx, models.AuditLog{
		ActorID:    actor,
		EntityName: r.policy.Entity,
		EntityID:   entityID,
		Action:     action,
		Outcome:    models.OutcomeError,
		Note:       fmt.Sprintf("%s %s failed: %v", action, r.policy.Label, err),
	})
}

func (r *Resource[T, P]) notFound(id int64) error {
	return apperr.NotFound(fmt.Sprintf("%s with id %d not found", r.policy.Label, id))
}

// translate maps store errors onto the caller-facing taxonomy. Errors that already
// carry a kind pass through untouched.
func (r *Resource[T, P]) translate(op string, err error) error {
	var ae *apperr.Error
	switch {
	case errors.As(err, &ae):
		return err
	case errors.Is(err, repo.ErrNotFound):
		return apperr.New(apperr.KindNotFound, r.policy.Label+" not found", err)
	case errors.Is(err, repo.ErrDuplicate):
		return apperr.New(apperr.KindBadRequest, r.policy.Label+" already exists", err)
	case errors.Is(err, repo.ErrReference):
		return apperr.New(apperr.KindBadRequest, r.policy.Label+" references a missing record", err)
	default:
		return apperr.Internal(fmt.Sprintf("could not %s %s", op, r.policy.Label), err)
	}
}
