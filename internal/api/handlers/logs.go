package handlers

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/services"
)

type LogHandler struct {
	Svc *services.LogService
}

func NewLogHandler(svc *services.LogService) *LogHandler { return &LogHandler{Svc: svc} }

func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	lp, err := listParams(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	q := r.URL.Query()
	f := services.LogFilter{
		TableName: q.Get("tableName"),
		Action:    q.Get("action"),
		FromDate:  q.Get("fromDate"),
		ToDate:    q.Get("toDate"),
		Page:      lp.Page,
		Limit:     lp.Limit,
		All:       lp.All,
	}
	if f.UserID, err = idQuery(r, "userId"); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	page, err := h.Svc.List(r.Context(), f)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}
