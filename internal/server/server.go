package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"educonnect/internal/alerting"
	"educonnect/internal/common/config"
	apperrors "educonnect/internal/common/errors"
	"educonnect/internal/common/logger"
	"educonnect/internal/subscription"
)

// Server is the admin HTTP surface: operator test endpoints for the alerting
// and reminder pipelines plus metrics and liveness. Everything under
// /api/admin requires a SiteAdmin bearer token.
type Server struct {
	cfg       config.HTTPConfig
	log       logger.Logger
	errors    *apperrors.ErrorHandler
	alerts    *alerting.Router
	scheduler *subscription.Scheduler
	renewals  *subscription.RenewalProcessor

	httpServer *http.Server
}

func New(cfg config.HTTPConfig, alerts *alerting.Router, scheduler *subscription.Scheduler, renewals *subscription.RenewalProcessor, log logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log,
		errors:    apperrors.NewErrorHandler(log),
		alerts:    alerts,
		scheduler: scheduler,
		renewals:  renewals,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress,
		Handler:      s.Router(),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

// Router builds the route table. Exposed separately so tests can drive it
// through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(s.requireSiteAdmin)
	admin.HandleFunc("/alerts/test", s.handleTestAlert).Methods(http.MethodPost)
	admin.HandleFunc("/alerts/test-commercial", s.handleTestCommercialAlert).Methods(http.MethodPost)
	admin.HandleFunc("/alerts/health", s.handleAlertingHealth).Methods(http.MethodGet)
	admin.HandleFunc("/subscriptions/test-reminder", s.handleTestReminder).Methods(http.MethodPost)
	admin.HandleFunc("/subscriptions/run-scan", s.handleRunScan).Methods(http.MethodPost)
	admin.HandleFunc("/subscriptions/renew", s.handleRenew).Methods(http.MethodPost)
	return r
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("Admin HTTP server listening", map[string]interface{}{
		"address": s.cfg.ListenAddress,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
