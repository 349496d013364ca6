// Package server implements the FleetGate HTTP API: the session endpoints
// and the authenticated proxy surface over the rental platform API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/me/fleetgate/internal/config"
	"github.com/me/fleetgate/internal/metrics"
	"github.com/me/fleetgate/internal/session"
	"github.com/me/fleetgate/pkg/rentapi"
)

// Server is the FleetGate REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	sessions  *session.Manager
	api       *rentapi.Client
	cookies   *session.CookieCodec
	metrics   *metrics.Collector // optional; nil disables recording
	registry  *prometheus.Registry
	limiter   *ipLimiter
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithMetrics attaches a Prometheus registry and exposes /metrics.
func WithMetrics(reg *prometheus.Registry, collector *metrics.Collector) Option {
	return func(s *Server) {
		s.registry = reg
		s.metrics = collector
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, sessions *session.Manager, api *rentapi.Client, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		sessions:  sessions,
		api:       api,
		cookies:   session.NewCookieCodec(cfg.SessionSecret, cfg.SecureCookies),
		limiter:   newIPLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	if s.metrics != nil {
		r.Use(metricsMiddleware(s.metrics))
	}

	if s.registry != nil {
		r.Handle("/metrics", metrics.Handler(s.registry))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", s.handleHealth)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.With(s.limiter.middleware).Post("/login", s.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireSession)
				r.Post("/logout", s.handleLogout)
				r.Get("/me", s.handleMe)
				r.Put("/profile", s.handleUpdateProfile)
			})
		})

		// Authenticated proxy over the rental platform admin API.
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetUser)
					r.Patch("/role", s.handleUpdateUserRole)
					r.Delete("/", s.handleDeleteUser)
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", s.handleListVehicles)
				r.Post("/", s.handleCreateVehicle)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetVehicle)
					r.Put("/", s.handleUpdateVehicle)
					r.Delete("/", s.handleDeleteVehicle)
					r.Route("/images", func(r chi.Router) {
						r.Post("/", s.handleUploadVehicleImages)
						r.Delete("/{imageID}", s.handleDeleteVehicleImage)
					})
				})
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", s.handleListBookings)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetBooking)
					r.Patch("/status", s.handleUpdateBookingStatus)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", s.handleListNotifications)
				r.Post("/broadcast", s.handleBroadcastNotification)
				r.Patch("/{id}/read", s.handleMarkNotificationRead)
			})

			r.Get("/stats", s.handleStats)
		})
	})
}
