package handlers

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/apperr"
	"github.com/baharkarakas/library-admin/internal/middleware"
	"github.com/baharkarakas/library-admin/internal/services"
)

type AuthHandler struct {
	Svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decode(w, r, &req, func() validate.Errs {
		return validate.Collect(validate.Email("email", req.Email), validate.Required("password", req.Password))
	}) {
		return
	}
	res, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.FromCtx(r.Context())
	if !ok {
		httpx.WriteAppError(w, apperr.Unauthorized("authentication required"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Message{Message: h.Svc.Logout(r.Context(), u.UserID)})
}
