package handlers

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/middleware"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/services"
)

const minPasswordLen = 6

var roles = []string{models.RoleUser, models.RoleAdmin, models.RoleSuperadmin}

type UserHandler struct {
	Svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{Svc: svc} }

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	lp, err := listParams(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	f := services.UserFilter{ListParams: lp, Role: r.URL.Query().Get("role"), Email: r.URL.Query().Get("email")}
	page, err := h.Svc.List(r.Context(), f)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	u, err := h.Svc.FindOne(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.UserInput
	if !decode(w, r, &in, func() validate.Errs {
		checks := []*validate.ErrField{
			validate.Email("email", in.Email),
			validate.MinLen("password", in.Password, minPasswordLen),
		}
		if in.Role != "" {
			checks = append(checks, validate.OneOf("role", in.Role, roles...))
		}
		return validate.Collect(checks...)
	}) {
		return
	}
	u, err := h.Svc.Create(r.Context(), in, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	var p services.UserPatch
	if !decode(w, r, &p, func() validate.Errs {
		var checks []*validate.ErrField
		if p.Email != nil {
			checks = append(checks, validate.Email("email", *p.Email))
		}
		if p.Password != nil {
			checks = append(checks, validate.MinLen("password", *p.Password, minPasswordLen))
		}
		if p.Role != nil {
			checks = append(checks, validate.OneOf("role", *p.Role, roles...))
		}
		return validate.Collect(checks...)
	}) {
		return
	}
	u, err := h.Svc.Update(r.Context(), id, p, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
