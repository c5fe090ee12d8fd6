package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/SlotGuard_Go/docs"
	"github.com/osse101/SlotGuard_Go/internal/auth"
	"github.com/osse101/SlotGuard_Go/internal/database"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/handler"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
	"github.com/osse101/SlotGuard_Go/internal/purchase"
	"github.com/osse101/SlotGuard_Go/internal/slots"
	"github.com/osse101/SlotGuard_Go/internal/spin"
)

// Config holds the HTTP server settings
type Config struct {
	Port             int
	APIKey           string
	TrustedProxies   []string
	MaxBodyBytes     int64
	MaxRequestsPerIP int
	SignatureMode    string
}

// Services are the dependencies the routes serve
type Services struct {
	Spin     spin.Service
	Purchase purchase.Service
	Fraud    fraud.Service
	Catalog  *slots.Catalog
	Identity auth.IdentityProvider
	DB       database.Pool // nil when running without a database
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(cfg Config, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree and middleware stack
func NewRouter(cfg Config, svc Services) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(cfg.MaxRequestsPerIP)

	r.Use(SecurityHeadersMiddleware())
	r.Use(FloodGuardMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(auth.Middleware(svc.Identity))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	var readiness []handler.ReadinessCheck
	if svc.DB != nil {
		readiness = append(readiness, handler.DatabaseCheck(svc.DB))
	}
	r.Get("/readyz", handler.HandleReadyz(readiness...))
	r.Get("/version", handler.HandleVersion(cfg.SignatureMode))
	r.Handle("/metrics", promhttp.Handler())

	validationHandler := handler.NewValidationHandler(svc.Spin, svc.Purchase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/machines", handler.HandleMachines(svc.Catalog))
		r.Post("/spin/validate", validationHandler.HandleValidateSpin)
		r.Post("/purchase/verify", validationHandler.HandleVerifyPurchase)

		if cfg.APIKey == "" {
			slog.Default().Warn(LogMsgAdminDisabled)
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
			r.Get("/fraud-events", handler.HandleListFraudEvents(svc.Fraud))
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr,
			LogFieldContentLength, r.ContentLength,
			LogFieldUserAgent, r.UserAgent())

		log.Debug(LogMsgRequestHeaders, LogFieldHeaders, logger.RedactHeaders(r.Header))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldStatus, statusOrOK(ww.Status()),
			LogFieldDurationMS, time.Since(start).Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func statusOrOK(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
