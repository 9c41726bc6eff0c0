package services

import (
	"encoding/json"

	"github.com/baharkarakas/library-admin/internal/apperr"
	repo "github.com/baharkarakas/library-admin/internal/repository"
)

// ListParams are the paging and status options every list endpoint accepts.
// A nil Status lists active rows only.
type ListParams struct {
	Page   int   `json:"page,omitempty"`
	Limit  int   `json:"limit,omitempty"`
	All    bool  `json:"all,omitempty"`
	Status *bool `json:"status,omitempty"`
}

func (p ListParams) query() repo.Query {
	q := repo.Query{Page: p.Page, Limit: p.Limit, All: p.All}
	if p.Status != nil && !*p.Status {
		q.Scope = repo.ScopeInactive
	}
	return q
}

// DecodeFilters converts a loosely typed filter object (an export request body) into
// one of the typed filter structs.
func DecodeFilters[F any](filters map[string]any) (F, error) {
	var f F
	if len(filters) == 0 {
		return f, nil
	}
	b, err := json.Marshal(filters)
	if err != nil {
		return f, apperr.BadRequest("invalid filters")
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, apperr.New(apperr.KindBadRequest, "invalid filters", err)
	}
	return f, nil
}
