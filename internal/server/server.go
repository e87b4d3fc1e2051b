// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go loads config and creates the logger; Server.New assembles the rest:
//
//	store.DB → repository (local.DB) → services → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/hirepro/internal/auth"
	"github.com/sakif/hirepro/internal/config"
	"github.com/sakif/hirepro/internal/feed"
	"github.com/sakif/hirepro/internal/handler"
	"github.com/sakif/hirepro/internal/middleware"
	"github.com/sakif/hirepro/internal/model"
	"github.com/sakif/hirepro/internal/repository"
	"github.com/sakif/hirepro/internal/repository/local"
	"github.com/sakif/hirepro/internal/service"
	"github.com/sakif/hirepro/internal/store"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store connection (db). When the server shuts down,
// it must close it to flush pending writes and release the file lock.
// This happens in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *store.DB
}

// New creates a Server from the loaded configuration. It opens the store,
// wires the whole dependency chain, and seeds the job catalog if it is
// empty and seeding is enabled.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := store.New(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/hr/register                              → create HR account
//	POST   /api/hr/login                                 → HR login
//	POST   /api/hr/logout                                → HR logout
//	GET    /api/hr/profile                               → own HR profile
//	PUT    /api/hr/profile                               → edit HR profile
//	POST   /api/hr/jobs                                  → post a job
//	GET    /api/hr/jobs                                  → own postings
//	GET    /api/hr/jobs/{id}                             → one posting
//	DELETE /api/hr/jobs/{id}                             → remove posting
//	GET    /api/hr/jobs/{id}/applicants                  → review applicants
//	PATCH  /api/hr/jobs/{id}/applicants/{userID}/status  → set decision
//	PATCH  /api/hr/jobs/{id}/applicants/{userID}/ranking → set 0–5 rating
//	GET    /api/hr/user-profile/{id}                     → applicant's profile
//
//	POST   /api/user/register                            → create seeker account
//	POST   /api/user/login                               → seeker login
//	POST   /api/user/logout                              → seeker logout
//	GET    /api/user/profile                             → own profile
//	PUT    /api/user/profile                             → edit profile
//	GET    /api/user/jobs                                → browse catalog
//	GET    /api/user/jobs/{id}                           → one job
//	POST   /api/user/jobs/{id}/apply                     → apply
//	GET    /api/user/applications                        → own applications
//	GET    /api/user/applications/{jobID}                → one application
//
//	GET    /healthz                                      → liveness probe
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
// Auth middleware runs per route group, not globally — register/login
// must stay reachable without a token.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// The single repository value implements every repository interface.
	repo := local.New(s.db)

	if s.config.Feed.Seed {
		s.seedCatalog(repo)
	}

	authService := service.NewAuthService(repo, repo, repo, tokens, passwords, s.logger)
	jobService := service.NewJobService(repo, repo, repo, s.logger)
	appService := service.NewApplicationService(repo, repo, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	profileHandler := handler.NewProfileHandler(authService, s.logger)
	jobHandler := handler.NewJobHandler(jobService, s.logger)
	appHandler := handler.NewApplicationHandler(appService, s.logger)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/hr", func(r chi.Router) {
		r.Post("/register", authHandler.HandleHRRegister)
		r.Post("/login", authHandler.HandleHRLogin)

		// Everything below requires a valid HR token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(tokens, model.RoleHR))

			r.Post("/logout", authHandler.HandleHRLogout)
			r.Get("/profile", profileHandler.HandleHRProfile)
			r.Put("/profile", profileHandler.HandleHRProfileUpdate)

			r.Post("/jobs", jobHandler.HandleCreate)
			r.Get("/jobs", jobHandler.HandleListOwn)
			r.Get("/jobs/{id}", jobHandler.HandleGet)
			r.Delete("/jobs/{id}", jobHandler.HandleDelete)

			r.Get("/jobs/{id}/applicants", appHandler.HandleListApplicants)
			r.Patch("/jobs/{id}/applicants/{userID}/status", appHandler.HandleUpdateStatus)
			r.Patch("/jobs/{id}/applicants/{userID}/ranking", appHandler.HandleUpdateRanking)

			r.Get("/user-profile/{id}", profileHandler.HandleApplicantProfile)
		})
	})

	s.router.Route("/api/user", func(r chi.Router) {
		r.Post("/register", authHandler.HandleUserRegister)
		r.Post("/login", authHandler.HandleUserLogin)

		// Everything below requires a valid job-seeker token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(tokens, model.RoleUser))

			r.Post("/logout", authHandler.HandleUserLogout)
			r.Get("/profile", profileHandler.HandleUserProfile)
			r.Put("/profile", profileHandler.HandleUserProfileUpdate)

			r.Get("/jobs", jobHandler.HandleBrowse)
			r.Get("/jobs/{id}", jobHandler.HandleGet)
			r.Post("/jobs/{id}/apply", appHandler.HandleApply)

			r.Get("/applications", appHandler.HandleListOwn)
			r.Get("/applications/{jobID}", appHandler.HandleGetOwn)
		})
	})

	return nil
}

// seedCatalog fills an empty job catalog from the configured feed (or the
// built-in fallback postings). Seed jobs carry no HR owner, so they are
// browsable and applicable but not managed by any account. Failures only
// log — an empty catalog is a cosmetic problem, not a fatal one.
func (s *Server) seedCatalog(jobs repository.JobRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	existing, err := jobs.List(ctx, repository.JobFilter{})
	if err != nil {
		s.logger.Warn("seed: listing catalog failed", slog.String("error", err.Error()))
		return
	}
	if len(existing) > 0 {
		return
	}

	client := feed.New(s.config.Feed.URL, s.logger)
	seeded := 0
	for _, job := range client.Fetch(ctx) {
		job := job
		if err := jobs.Create(ctx, &job); err != nil {
			s.logger.Warn("seed: creating job failed",
				slog.String("title", job.Title),
				slog.String("error", err.Error()),
			)
			continue
		}
		seeded++
	}
	s.logger.Info("job catalog seeded", slog.Int("jobs", seeded))
}

// handleHealth is the liveness probe. It answers 200 as long as the
// process is up and the store responds.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// Handler exposes the composed router, mainly so tests can mount it on
// an httptest.Server without going through Start's signal handling.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store without going through Start's shutdown path.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store (flushes the WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("store", s.config.Store.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
