// main is the entry point of the student roster service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the configured storage backend
//  4. Populate the roster from the CSV file (before serving anything)
//  5. Register all HTTP routes behind the middleware chain
//  6. Serve until an OS signal arrives, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-roster --config=config/local.yaml
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

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/csvsource"
	"github.com/aanand-mishra/student-roster/internal/http/handlers/reports"
	"github.com/aanand-mishra/student-roster/internal/http/handlers/student"
	"github.com/aanand-mishra/student-roster/internal/http/middleware"
	"github.com/aanand-mishra/student-roster/internal/report"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-roster",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	// ── 3–4. Open storage and populate the roster ──────────────────────
	// The roster is rebuilt from CSV on every start; edits are never
	// written back.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := bootstrap(loadCtx, cfg, log, openStorage)
	cancelLoad()
	if err != nil {
		log.Error("failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.backend.Close()

	store, engine, src := a.store, a.engine, a.src

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	//
	// Route table:
	//   POST   /api/students                 → add a student
	//   GET    /api/students                 → list all students
	//   GET    /api/students/{id}            → get one student by ID
	//   PUT    /api/students/{id}            → update a student
	//   DELETE /api/students/{id}            → delete a student
	//   POST   /api/students/reload          → rebuild the roster from CSV
	//   GET    /api/reports/class-averages   → per-class averages
	//   GET    /api/reports/tallest-girl     → tallest girl
	//   GET    /api/reports/heaviest-boy     → heaviest boy
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(store))
	router.HandleFunc("GET /api/students", student.GetList(store))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(store))
	router.HandleFunc("PUT /api/students/{id}", student.Update(store))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(store))
	router.HandleFunc("POST /api/students/reload", student.Reload(store, src))

	router.HandleFunc("GET /api/reports/class-averages", reports.ClassAverages(engine))
	router.HandleFunc("GET /api/reports/tallest-girl", reports.TallestGirl(engine))
	router.HandleFunc("GET /api/reports/heaviest-boy", reports.HeaviestBoy(engine))

	handler := middleware.Chain(router,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recoverer(log),
	)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Serve and wait for a shutdown signal ──────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", slog.String("error", err.Error()))
			a.backend.Close()
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", slog.String("error", err.Error()))
		a.backend.Close()
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// app is everything main needs once startup has succeeded.
type app struct {
	backend storage.Storage
	store   *roster.Store
	engine  *report.Engine
	src     *csvsource.File
}

type storageOpener func(cfg config.Storage) (storage.Storage, error)

// bootstrap opens the backend and loads the roster from CSV. os.Exit
// skips deferred calls, so on failure the backend is closed here before
// the error is returned.
func bootstrap(ctx context.Context, cfg *config.Config, log *slog.Logger, open storageOpener) (*app, error) {
	backend, err := open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("initialise storage: %w", err)
	}

	src, err := csvsource.New(cfg.CSV.Path, cfg.CSV.Separator, cfg.CSV.HasHeader)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("csv settings: %w", err)
	}

	store := roster.New(backend, log)

	res, err := store.LoadFromSource(ctx, src)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("load roster from %s: %w", cfg.CSV.Path, err)
	}

	log.Info("roster ready",
		slog.String("path", cfg.CSV.Path),
		slog.Int("loaded", res.Loaded),
		slog.Int("skipped", res.Skipped))

	return &app{
		backend: backend,
		store:   store,
		engine:  report.New(store),
		src:     src,
	}, nil
}

func openStorage(cfg config.Storage) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return memory.New(), nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
