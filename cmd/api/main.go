package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/library-admin/internal/api"
	"github.com/baharkarakas/library-admin/internal/audit"
	"github.com/baharkarakas/library-admin/internal/auth"
	"github.com/baharkarakas/library-admin/internal/config"
	"github.com/baharkarakas/library-admin/internal/db"
	"github.com/baharkarakas/library-admin/internal/export"
	"github.com/baharkarakas/library-admin/internal/logger"
	"github.com/baharkarakas/library-admin/internal/metrics"
	"github.com/baharkarakas/library-admin/internal/repository"
	"github.com/baharkarakas/library-admin/internal/repository/memory"
	"github.com/baharkarakas/library-admin/internal/repository/postgres"
	"github.com/baharkarakas/library-admin/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	policy, err := config.LoadPolicy(cfg.RolesFile)
	if err != nil {
		return err
	}

	rec := audit.NewRecorder(repos.AuditLogs, audit.WithLogger(log))
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	books := services.NewBookService(repos.Books, rec)
	authors := services.NewAuthorService(repos.Authors, rec)
	genres := services.NewGenreService(repos.Genres, rec)
	publishers := services.NewPublisherService(repos.Publishers, rec)
	users := services.NewUserService(repos.Users, rec)
	logs := services.NewLogService(repos.AuditLogs)

	if err := users.EnsureDefaultAdmin(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword); err != nil {
		return err
	}

	exports := export.NewService(export.NewTable(export.Sources{
		Books:      books,
		Authors:    authors,
		Genres:     genres,
		Publishers: publishers,
		Users:      users,
		Logs:       logs,
	}), rec)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		Policy:     policy,
		TM:         tm,
		Auth:       services.NewAuthService(repos.Users, tm, rec),
		Books:      books,
		Authors:    authors,
		Genres:     genres,
		Publishers: publishers,
		Users:      users,
		Logs:       logs,
		Export:     exports,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore selects the repositories for cfg.StoreDriver.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (repository.Repositories, func(), error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn("using in-memory store; data is lost on exit")
		return memory.NewRepositories(), func() {}, nil
	case "postgres", "":
	default:
		return repository.Repositories{}, nil, errors.New("unknown STORE_DRIVER " + cfg.StoreDriver)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repository.Repositories{}, nil, err
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
