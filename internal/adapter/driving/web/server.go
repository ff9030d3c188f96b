package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	bridgemiddleware "github.com/diillson/op-bridge-go/internal/adapter/driving/web/middleware"
	"github.com/diillson/op-bridge-go/internal/domain/entity"
)

const defaultShutdownTimeout = 10 * time.Second

// ReportBuilder is what the HTTP handlers need from the application layer.
type ReportBuilder interface {
	BuildReport(input entity.BridgeInput) (entity.BridgeReport, error)
	RenderSVG(w io.Writer, report entity.BridgeReport) error
	RenderHTML(w io.Writer, report entity.BridgeReport) error
}

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Reports         ReportBuilder
}

// ConfigureRouter monta as rotas sem iniciar o servidor.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	h := NewHandler(config.Reports)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(bridgemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)
	router.Post("/report", h.Report)

	router.Route("/api/v1/bridge", func(r chi.Router) {
		r.Post("/", h.Bridge)
		r.Get("/chart.svg", h.Chart)
		r.Post("/chart.svg", h.Chart)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

// Start serve até o contexto ser cancelado ou chegar SIGINT/SIGTERM.
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
	case <-shutdown:
	case <-ctx.Done():
	}

	w.logger.Info().Msg("shutdown initiated")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.logger.Error().Err(err).Msg("graceful shutdown failed")
		return w.server.Close()
	}
	return nil
}
