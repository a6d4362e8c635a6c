// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: every dependency is constructed in New and
// handed down, so no other package reads configuration or creates a
// database handle.
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → Server.New:
//	  sqlite.DB (every repository interface)
//	  groq.Client (assistant.Completer)
//	  auth.TokenService (optional) + auth.PasswordService
//	  → services → handlers → routes
package server

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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/wellness-tracker/internal/assistant"
	"github.com/sakif/wellness-tracker/internal/assistant/groq"
	"github.com/sakif/wellness-tracker/internal/auth"
	"github.com/sakif/wellness-tracker/internal/config"
	"github.com/sakif/wellness-tracker/internal/handler"
	"github.com/sakif/wellness-tracker/internal/middleware"
	sqliteRepo "github.com/sakif/wellness-tracker/internal/repository/sqlite"
	"github.com/sakif/wellness-tracker/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection and closes it in Start once the
// HTTP server has drained.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and wires every layer.
//
// completer may be nil, in which case a Groq client is built from cfg.
// Tests pass a fake.
func New(cfg config.Config, logger *slog.Logger, completer assistant.Completer) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if completer == nil {
		completer = groq.New(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.GroqModel,
			Timeout: cfg.ChatTimeout,
		}, logger)
	}

	if err := s.setupRoutes(completer); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                         → liveness
//	GET    /readyz                   → database ping
//	GET    /metrics                  → Prometheus
//	POST   /api/register | /api/login | /api/logout
//	GET    /api/profile/{user_id}    PUT /api/profile
//	POST   /api/{moods,activity,exercises,sleep,meditations,journals,feedback}
//	GET    /api/{...}/{user_id}
//	DELETE /api/journals/{id}
//	GET    /api/feedback/all
//	GET    /api/stats/{user_id}
//	POST   /api/chat
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID: tags the request for the logs
//  2. RealIP: client IP from proxy headers
//  3. Logger, Metrics: observe the final status
//  4. Recoverer: turns panics into 500s (inside Logger so they get logged)
//  5. CORS: answers preflights before routing, so OPTIONS never hits a 405
//  6. OptionalAuth: attaches the token's user id, never rejects
func (s *Server) setupRoutes(completer assistant.Completer) error {
	var tokens *auth.TokenService
	if s.config.JWTSecret != "" {
		var err error
		tokens, err = auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
	} else {
		s.logger.Warn("JWT_SECRET not set, login tokens are disabled")
	}

	loc, err := s.config.Location()
	if err != nil {
		return err
	}

	authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
	trackerService := service.NewTrackerService(s.db, s.logger)
	statsService := service.NewStatsService(s.db, loc, s.logger)
	chatService := service.NewChatService(completer, s.config.ChatTimeout, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	trackerHandler := handler.NewTrackerHandler(trackerService, loc, s.logger)
	statsHandler := handler.NewStatsHandler(statsService, s.logger)
	chatHandler := handler.NewChatHandler(chatService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // auth cookie
		MaxAge:           300,
	}))
	s.router.Use(auth.OptionalAuth(tokens))

	s.router.Get("/", healthHandler.HandleHome)
	s.router.Get("/readyz", healthHandler.HandleReady)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/profile/{user_id}", authHandler.HandleGetProfile)
		r.Put("/profile", authHandler.HandleUpdateProfile)

		r.Post("/moods", trackerHandler.HandleAddMood)
		r.Get("/moods/{user_id}", trackerHandler.HandleListMoods)
		r.Post("/activity", trackerHandler.HandleAddActivity)
		r.Get("/activity/{user_id}", trackerHandler.HandleListActivities)

		r.Post("/exercises", trackerHandler.HandleAddExercise)
		r.Get("/exercises/{user_id}", trackerHandler.HandleListExercises)
		r.Post("/sleep", trackerHandler.HandleAddSleep)
		r.Get("/sleep/{user_id}", trackerHandler.HandleListSleep)
		r.Post("/meditations", trackerHandler.HandleAddMeditation)
		r.Get("/meditations/{user_id}", trackerHandler.HandleListMeditations)

		r.Post("/journals", trackerHandler.HandleAddJournal)
		r.Get("/journals/{user_id}", trackerHandler.HandleListJournals)
		r.Delete("/journals/{id}", trackerHandler.HandleDeleteJournal)

		// Static segment wins over {user_id} in chi's tree.
		r.Post("/feedback", trackerHandler.HandleAddFeedback)
		r.Get("/feedback/all", trackerHandler.HandleListAllFeedback)
		r.Get("/feedback/{user_id}", trackerHandler.HandleListFeedback)

		r.Get("/stats/{user_id}", statsHandler.HandleWeekly)
		r.Post("/chat", chatHandler.HandleChat)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully:
//  1. stop accepting connections
//  2. wait up to shutdownTimeout for in-flight requests
//  3. close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.config.ChatTimeout + 15*time.Second, // chat calls run up to ChatTimeout
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
