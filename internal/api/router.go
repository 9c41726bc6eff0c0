package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/library-admin/internal/api/handlers"
	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/config"
	"github.com/baharkarakas/library-admin/internal/export"
	"github.com/baharkarakas/library-admin/internal/metrics"
	"github.com/baharkarakas/library-admin/internal/middleware"
	"github.com/baharkarakas/library-admin/internal/models"
	"github.com/baharkarakas/library-admin/internal/services"
)

type RouterDeps struct {
	Cfg    config.Config
	Policy config.Policy
	TM     *auth.TokenManager

	Auth       *services.AuthService
	Books      *services.BookService
	Authors    *services.AuthorService
	Genres     *services.GenreService
	Publishers *services.PublisherService
	Users      *services.UserService
	Logs       *services.LogService
	Export     *export.Service
}

// crud is the handler set mounted for every catalog resource.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(d.TM)
	rbac := middleware.NewRBAC(d.Policy)
	authH := handlers.NewAuthHandler(d.Auth)

	r.Post("/auth/login", authH.Login)

	r.Group(func(r chi.Router) {
		r.Use(am.Auth)

		r.With(middleware.RequireRole(models.RoleUser, models.RoleAdmin, models.RoleSuperadmin)).
			Post("/auth/logout", authH.Logout)

		mount(r, rbac, "books", handlers.NewBookHandler(d.Books))
		mount(r, rbac, "authors", handlers.NewNamedHandler(d.Authors, 255))
		mount(r, rbac, "genres", handlers.NewNamedHandler(d.Genres, 100))
		mount(r, rbac, "publishers", handlers.NewNamedHandler(d.Publishers, 255))
		mount(r, rbac, "users", handlers.NewUserHandler(d.Users))

		r.With(rbac.Require("logs", config.OpList)).Get("/logs", handlers.NewLogHandler(d.Logs).List)
		r.With(rbac.Require("export", config.OpExport)).Post("/export", handlers.NewExportHandler(d.Export).Export)
	})

	return r
}

// mount registers the CRUD routes of one resource; updates answer to PUT and PATCH.
func mount(r chi.Router, rbac *middleware.RBAC, resource string, h crud) {
	r.Route("/"+resource, func(r chi.Router) {
		r.With(rbac.Require(resource, config.OpList)).Get("/", h.List)
		r.With(rbac.Require(resource, config.OpCreate)).Post("/", h.Create)
		r.With(rbac.Require(resource, config.OpGet)).Get("/{id}", h.Get)
		r.With(rbac.Require(resource, config.OpUpdate)).Put("/{id}", h.Update)
		r.With(rbac.Require(resource, config.OpUpdate)).Patch("/{id}", h.Update)
		r.With(rbac.Require(resource, config.OpDelete)).Delete("/{id}", h.Delete)
	})
}
