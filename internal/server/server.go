package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sjounng/team-draft-lol/internal/app/draft"
	"github.com/sjounng/team-draft-lol/internal/app/matches"
	"github.com/sjounng/team-draft-lol/internal/app/players"
	"github.com/sjounng/team-draft-lol/internal/app/pools"
	"github.com/sjounng/team-draft-lol/internal/app/profiles"
	"github.com/sjounng/team-draft-lol/internal/app/rating"
	"github.com/sjounng/team-draft-lol/internal/auth"
	"github.com/sjounng/team-draft-lol/internal/config"
	httpapi "github.com/sjounng/team-draft-lol/internal/http"
	"github.com/sjounng/team-draft-lol/internal/metrics"
	"github.com/sjounng/team-draft-lol/internal/store/memory"
	"github.com/sjounng/team-draft-lol/internal/store/postgres"
)

var metricsSetup = metrics.Setup

// dataStore is the union of every service's persistence contract.
// Both the memory and postgres stores satisfy it.
type dataStore interface {
	profiles.Store
	players.Store
	pools.Store
	matches.Store
	draft.PlayerStore
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         dataStore
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a fully wired server. With a DATABASE_URL the state
// lives in PostgreSQL; without one it lives in memory.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	httpSrv := buildHTTPServer(cfg, store, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         store,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (dataStore, error) {
	if cfg.Database.URL == "" {
		if logger != nil {
			logger.Warn("no DATABASE_URL set, state is in-memory and not durable")
		}
		return memory.New(), nil
	}
	return postgres.New(ctx, cfg.Database.URL)
}

func buildHTTPServer(cfg config.Config, store dataStore, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	engine := rating.NewEngine(cfg.Scoring)

	handler := httpapi.NewHandler(
		profiles.NewService(store, tokens, logger),
		players.NewService(store),
		pools.NewService(store),
		draft.NewService(store, draft.NewCache(cfg.Draft.CacheTTL), logger, recorder),
		matches.NewService(store, engine, logger, recorder),
		logger,
	)
	router := httpapi.NewRouter(handler, tokens)
	wrapped := httpapi.LoggingMiddleware(logger, httpapi.MetricsMiddleware(recorder, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}
	return rec, metricsSrv, shutdown
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}
	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
