package handlers

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/middleware"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/services"
)

// NamedHandler serves /authors, /genres and /publishers.
type NamedHandler[T any, P models.Named[T]] struct {
	Svc    *services.NamedService[T, P]
	MaxLen int
}

func NewNamedHandler[T any, P models.Named[T]](svc *services.NamedService[T, P], maxLen int) *NamedHandler[T, P] {
	return &NamedHandler[T, P]{Svc: svc, MaxLen: maxLen}
}

func (h *NamedHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	lp, err := listParams(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	page, err := h.Svc.List(r.Context(), services.NameFilter{ListParams: lp, Name: r.URL.Query().Get("name")})
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *NamedHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	v, err := h.Svc.FindOne(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, v)
}

func (h *NamedHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	var in services.NameInput
	if !decode(w, r, &in, func() validate.Errs {
		return validate.Collect(validate.Required("name", in.Name), validate.MaxLen("name", in.Name, h.MaxLen))
	}) {
		return
	}
	v, err := h.Svc.Create(r.Context(), in, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, v)
}

func (h *NamedHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	var p services.NamePatch
	if !decode(w, r, &p, func() validate.Errs {
		if p.Name == nil {
			return nil
		}
		return validate.Collect(validate.Required("name", *p.Name), validate.MaxLen("name", *p.Name, h.MaxLen))
	}) {
		return
	}
	v, err := h.Svc.Update(r.Context(), id, p, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, v)
}

func (h *NamedHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	msg, err := h.Svc.SoftDelete(r.Context(), id, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	deleted(w, msg)
}
