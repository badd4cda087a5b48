package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/moby/locker"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/config"
	"github.com/Dosada05/pairs-tournament/db"
	"github.com/Dosada05/pairs-tournament/handlers"
	"github.com/Dosada05/pairs-tournament/repositories"
	"github.com/Dosada05/pairs-tournament/routes"
	"github.com/Dosada05/pairs-tournament/services"
	"github.com/Dosada05/pairs-tournament/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("application exited")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.Bool("postgres", cfg.DatabaseURL != ""))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo repositories.TournamentRepository
	if cfg.DatabaseURL != "" {
		if err := db.MigrateUp(cfg.DatabaseURL); err != nil {
			return err
		}
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}()
		repo = repositories.NewPostgresTournamentRepository(dbConn)
		logger.Info("database connection established")
	} else {
		repo = repositories.NewMemoryTournamentRepository()
		logger.Warn("DATABASE_URL not set, tournaments are kept in memory")
	}

	clock := clockwork.NewRealClock()

	var archiver services.Archiver
	if cfg.ArchiveEnabled() {
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initialize R2 archive: %w", err)
		}
		archiver = storage.NewTournamentArchiver(store, clock)
		logger.Info("finished categories will be archived to R2", slog.String("bucket", cfg.R2BucketName))
	}

	hub := brackets.NewHub(logger)

	deps := services.Dependencies{
		Repo:     repo,
		Notifier: hub,
		Archiver: archiver,
		Clock:    clock,
		Logger:   logger,
		Locks:    locker.New(),
	}
	tournamentService := services.NewTournamentService(deps)
	categoryService := services.NewCategoryService(deps)

	router := routes.Setup(
		routes.Options{AllowedOrigins: cfg.CORSAllowedOrigins},
		handlers.NewTournamentHandler(tournamentService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewWebSocketHandler(hub, tournamentService, cfg.CORSAllowedOrigins, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
