package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/services"
)

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.BadRequest("invalid id")
	}
	return id, nil
}

// listParams reads page, limit, all and status from the query string.
func listParams(r *http.Request) (services.ListParams, error) {
	q := r.URL.Query()
	var p services.ListParams
	var err error
	if p.Page, err = intQuery(q.Get("page"), "page"); err != nil {
		return p, err
	}
	if p.Limit, err = intQuery(q.Get("limit"), "limit"); err != nil {
		return p, err
	}
	if v := q.Get("all"); v != "" {
		if p.All, err = strconv.ParseBool(v); err != nil {
			return p, apperr.BadRequest("all must be a boolean")
		}
	}
	if v := q.Get("status"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, apperr.BadRequest("status must be a boolean")
		}
		p.Status = &b
	}
	return p, nil
}

func intQuery(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, apperr.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}

func idQuery(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return nil, apperr.BadRequest(name + " must be a positive integer")
	}
	return &n, nil
}

// decode reads the body and runs checks against it; field errors go back as details.
func decode(w http.ResponseWriter, r *http.Request, v interface{}, checks func() validate.Errs) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteAppError(w, err)
		return false
	}
	if checks == nil {
		return true
	}
	if errs := checks(); len(errs) > 0 {
		httpx.WriteError(w, http.StatusBadRequest, string(apperr.KindBadRequest), "validation failed", errs)
		return false
	}
	return true
}

func deleted(w http.ResponseWriter, msg string) {
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: msg})
}
