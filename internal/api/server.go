package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/khairallah17/anomaly-tracker/internal/api/handler"
	mw "github.com/khairallah17/anomaly-tracker/internal/api/middleware"
	"github.com/khairallah17/anomaly-tracker/internal/config"
	"github.com/khairallah17/anomaly-tracker/internal/core"
)

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	pool        *pgxpool.Pool
	cfg         *config.Config
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	services := core.NewServices(pool)
	auditLogger := mw.NewAuditLogger(pool, logger)

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		pool:        pool,
		cfg:         cfg,
		auditLogger: auditLogger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Close flushes the audit log writer.
func (s *Server) Close() {
	s.auditLogger.Close()
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))
		r.Use(s.auditLogger.Middleware)

		// Dashboard
		dashboard := handler.NewDashboard(s.services.Dashboard)
		r.Get("/dashboard/stats", dashboard.Stats)

		// Audit logs
		audit := handler.NewAudit(s.pool)
		r.Get("/audit-logs", audit.List)

		// Anomalies
		anomaly := handler.NewAnomaly(s.services.Anomaly)
		r.Get("/anomalies", anomaly.List)
		r.Post("/anomalies", anomaly.Create)
		r.Get("/anomalies/{id}", anomaly.Get)
		r.Patch("/anomalies/{id}", anomaly.Update)
		r.Post("/anomalies/{id}/close", anomaly.Close)

		// Action plans
		r.Get("/anomalies/{id}/action-plan", anomaly.ListActionPlan)
		r.Post("/anomalies/{id}/action-plan", anomaly.AddActionPlanItem)
		r.Patch("/anomalies/{id}/action-plan/{itemID}", anomaly.UpdateActionPlanItem)
		r.Delete("/anomalies/{id}/action-plan/{itemID}", anomaly.DeleteActionPlanItem)

		// Anomaly comments
		comment := handler.NewComment(s.services.Comment)
		r.Get("/anomalies/{id}/comments", comment.ListByAnomaly)
		r.Post("/anomalies/{id}/comments", comment.Create)
		r.Post("/comments", comment.CreateFlat)
		r.Get("/comments/{id}", comment.Get)
		r.Patch("/comments/{id}", comment.Update)
		r.Delete("/comments/{id}", comment.Delete)

		// Maintenance windows
		window := handler.NewMaintenanceWindow(s.services.MaintenanceWindow)
		r.Get("/maintenance-windows", window.List)
		r.Post("/maintenance-windows", window.Create)
		r.Get("/maintenance-windows/{id}", window.Get)
		r.Patch("/maintenance-windows/{id}", window.Update)
		r.Delete("/maintenance-windows/{id}", window.Delete)

		// Window scheduling
		r.Get("/maintenance-windows/{id}/anomalies", window.ListAnomalies)
		r.Post("/maintenance-windows/{id}/anomalies", window.Assign)
		r.Delete("/maintenance-windows/{id}/anomalies", window.Unassign)
		r.Post("/maintenance-windows/{id}/anomalies/{anomalyID}/move", window.Move)

		// API keys
		apiKey := handler.NewAPIKey(s.services.APIKey)
		r.Get("/api-keys", apiKey.List)
		r.Post("/api-keys", apiKey.Create)
		r.Get("/api-keys/{id}", apiKey.Get)
		r.Delete("/api-keys/{id}", apiKey.Revoke)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
