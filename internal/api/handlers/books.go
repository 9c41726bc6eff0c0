package handlers

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/api/validate"
	"github.com/baharkarakas/library-admin/internal/middleware"
	"github.com/baharkarakas/library-admin/internal/services"
)

type BookHandler struct {
	Svc *services.BookService
}

func NewBookHandler(svc *services.BookService) *BookHandler { return &BookHandler{Svc: svc} }

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	lp, err := listParams(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	f := services.BookFilter{
		ListParams: lp,
		Title:      r.URL.Query().Get("title"),
		ISBN:       r.URL.Query().Get("isbn"),
	}
	if f.AuthorID, err = idQuery(r, "authorId"); err == nil {
		if f.GenreID, err = idQuery(r, "genreId"); err == nil {
			f.PublisherID, err = idQuery(r, "publisherId")
		}
	}
	if err != nil {
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

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	b, err := h.Svc.FindOne(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.BookInput
	ok := decode(w, r, &in, func() validate.Errs {
		return validate.Collect(
			validate.Required("title", in.Title),
			validate.MaxLen("title", in.Title, 255),
			validate.MinInt("authorId", in.AuthorID, 1),
			validate.MinInt("genreId", in.GenreID, 1),
			validate.MinInt("publisherId", in.PublisherID, 1),
			validate.Required("description", in.Description),
			validate.MaxLen("description", in.Description, 1000),
			validate.Required("isbn", in.ISBN),
			validate.MaxLen("isbn", in.ISBN, 13),
			validate.MinInt("price", in.Price, 0),
			validate.MinInt("stock", in.Stock, 0),
			validate.Date("publishedAt", in.PublishedAt),
			validate.MaxLen("imageUrl", in.ImageURL, 500),
		)
	})
	if !ok {
		return
	}
	b, err := h.Svc.Create(r.Context(), in, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	var p services.BookPatch
	ok := decode(w, r, &p, func() validate.Errs {
		var checks []*validate.ErrField
		if p.Title != nil {
			checks = append(checks, validate.Required("title", *p.Title), validate.MaxLen("title", *p.Title, 255))
		}
		if p.ISBN != nil {
			checks = append(checks, validate.Required("isbn", *p.ISBN), validate.MaxLen("isbn", *p.ISBN, 13))
		}
		if p.Price != nil {
			checks = append(checks, validate.MinInt("price", *p.Price, 0))
		}
		if p.Stock != nil {
			checks = append(checks, validate.MinInt("stock", *p.Stock, 0))
		}
		if p.PublishedAt != nil {
			checks = append(checks, validate.Date("publishedAt", *p.PublishedAt))
		}
		return validate.Collect(checks...)
	})
	if !ok {
		return
	}
	b, err := h.Svc.Update(r.Context(), id, p, middleware.ActorID(r.Context()))
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
