// Package api implements app.Runner for the console server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/wallet-console/pkg/app/http"
	"github.com/chainsafe/wallet-console/pkg/auth"
	"github.com/chainsafe/wallet-console/pkg/config"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/notify"
	"github.com/chainsafe/wallet-console/pkg/reconciler"
)

// Server holds cfg to init the console server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new console server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("console config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wallet console",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("chain", cfg.Chain.Kind),
		zap.String("network", cfg.Chain.DefaultNetwork),
	)

	jwtManager, err := s.jwtManager()
	if err != nil {
		return err
	}

	hub := notify.NewHub(notify.HubConfig{
		ReadBufferSize:  cfg.Notify.ReadBufferSize,
		WriteBufferSize: cfg.Notify.WriteBufferSize,
		ClientBuffer:    cfg.Notify.ClientBuffer,
		History:         cfg.Notify.History,
	}, logger.Named("hub"))
	defer hub.Close()

	sinks := []notify.Sink{notify.NewLog(logger.Named("notify")), hub}
	if cfg.Notify.Terminal {
		sinks = append(sinks, notify.NewTerminal(os.Stdout))
	}

	session, closeSession, err := OpenSession(ctx, cfg, logger, sinks...)
	if err != nil {
		return err
	}
	defer closeSession()

	if cfg.Wallet.AutoConnect {
		if _, err := session.Connect(ctx); err != nil {
			logger.Warn("Auto-connect failed", zap.Error(err))
		}
	}

	stopReconcile := s.startPeriodicReconcile(reconciler.New(session, logger.Named("reconciler")), logger)
	// Stopped before the deferred session close.
	defer stopReconcile()

	router := s.setupRouter(console.NewLog(session, logger), hub, jwtManager, logger)
	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) startPeriodicReconcile(r *reconciler.Reconciler, logger *zap.Logger) func() {
	interval := s.cfg.Chain.BalanceRefresh
	if interval <= 0 {
		logger.Info("Balance reconciliation disabled")
		return func() {}
	}
	r.StartPeriodicReconciliation(interval)
	return r.Stop
}

// jwtManager returns nil when API authentication is disabled.
func (s *Server) jwtManager() (*auth.JWTManager, error) {
	envName := s.cfg.Auth.JWTSecretEnv
	if envName == "" {
		return nil, nil
	}
	secret := strings.TrimSpace(os.Getenv(envName))
	if secret == "" {
		return nil, fmt.Errorf("jwt secret not set: env=%s (hint: openssl rand -base64 32)", envName)
	}
	m, err := auth.NewJWTManager([]byte(secret), s.cfg.Auth.Issuer, s.cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid jwt settings: %w", err)
	}
	return m, nil
}

func (s *Server) setupRouter(
	service console.Service,
	hub http.Handler,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle(s.cfg.Monitoring.Path, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if jwtManager != nil {
			r.Use(auth.Middleware(jwtManager, logger))
		} else {
			logger.Warn("API authentication disabled")
		}

		// The notification stream is long-lived and stays outside the request timeout.
		r.Handle("/notifications", hub)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
			console.RegisterRoutes(r, service, logger)
		})
	})

	return r
}
