package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/export"
	"github.com/baharkarakas/library-admin/internal/middleware"
)

type ExportHandler struct {
	Svc *export.Service
}

func NewExportHandler(svc *export.Service) *ExportHandler { return &ExportHandler{Svc: svc} }

// Export streams the CSV as an attachment.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req export.Request
	if !decode(w, r, &req, func() validate.Errs {
		return validate.Collect(validate.Required("type", req.Type))
	}) {
		return
	}
	req.Type = strings.TrimSpace(req.Type)

	res, err := h.Svc.Export(r.Context(), req, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
