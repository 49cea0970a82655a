package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/payethio/payethio-dashboard-go/internal/application/usecase"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
)

// WebAPI é o servidor HTTP do painel: login, datasets, exportação e o relay de email.
type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Auth      *usecase.AuthUseCase
	Dashboard *usecase.DashboardUseCase
	Exporter  *usecase.ExportUseCase
	Mailer    repository.MailSender
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	authHandler := NewAuthHandler(deps.Auth)
	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Exporter)
	mailHandler := NewMailHandler(deps.Mailer)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Post("/send-email", mailHandler.SendEmail)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(RequireSession(deps.Auth))
			r.Get("/overview", dashboardHandler.Overview)
			r.Get("/{dataset}", dashboardHandler.Dataset)
			r.Get("/{dataset}/export", dashboardHandler.Export)
			r.Post("/{dataset}/email", dashboardHandler.Email)
		})
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler exposes the router, mainly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("context cancelled, shutting down")
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	err := w.server.Shutdown(shutdownCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		err = w.server.Close()
	}
	return err
}
