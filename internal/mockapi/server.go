// Package mockapi is an in-memory GasTrack API server for development and
// testing. It speaks the same wire contract as the production backend but
// keeps everything in RAM.
package mockapi

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Server represents the HTTP server
type Server struct {
	router    *gin.Engine
	store     *Store
	logger    zerolog.Logger
	validator *validator.Validate
	metrics   *Collector
	registry  *prometheus.Registry
	jwtSecret []byte
	addr      string
}

// Options configure the server.
type Options struct {
	Addr      string // defaults to :8000
	SeedPath  string // optional YAML fixture file
	JWTSecret []byte // generated when empty
}

// New creates a new server instance
func New(opts Options, zlog zerolog.Logger) (*Server, error) {
	addr := opts.Addr
	if addr == "" {
		addr = ":8000"
	}

	secret := opts.JWTSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
	}

	store := NewStore()
	if opts.SeedPath != "" {
		if err := Seed(store, opts.SeedPath); err != nil {
			return nil, err
		}
		zlog.Info().Str("path", opts.SeedPath).Msg("Loaded seed fixtures")
	}

	registry := prometheus.NewRegistry()
	server := &Server{
		store:     store,
		logger:    zlog,
		validator: validator.New(),
		metrics:   NewCollector(registry),
		registry:  registry,
		jwtSecret: secret,
		addr:      addr,
	}

	server.setupRouter()

	return server, nil
}

// Store exposes the backing store, mainly for seeding in tests.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the HTTP handler, for tests driving the server through
// httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	// CORS middleware
	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check and metrics (no auth required)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(MetricsHandler(s.registry)))

	api := s.router.Group("/api/v1")

	// Public auth endpoints
	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)

	// Authenticated routes (JWT required)
	authed := api.Group("")
	authed.Use(s.jwtAuthMiddleware())
	{
		authed.GET("/users/me", s.getCurrentUser)

		authed.GET("/cylinders", s.listCylinders)
		authed.POST("/cylinders", s.createCylinder)
		authed.GET("/cylinders/search/:identifier", s.searchCylinder)
		authed.GET("/cylinders/:id", s.getCylinder)
		authed.PUT("/cylinders/:id", s.updateCylinder)
		authed.DELETE("/cylinders/:id", s.deleteCylinder)
		authed.GET("/cylinders/:id/qr-code", s.getCylinderQRCode)

		authed.GET("/customers", s.listCustomers)
		authed.POST("/customers", s.createCustomer)
		authed.GET("/customers/:id", s.getCustomer)
		authed.PUT("/customers/:id", s.updateCustomer)
		authed.DELETE("/customers/:id", s.deleteCustomer)
		authed.GET("/customers/:id/locations", s.listLocations)
		authed.POST("/customers/:id/locations", s.createLocation)
		authed.DELETE("/customers/:id/locations/:locationID", s.deleteLocation)

		authed.GET("/movements/cylinder", s.listMovements)
		authed.POST("/movements/cylinder", s.createMovement)
		authed.GET("/movements/cylinder/:id", s.getMovement)
		authed.GET("/movements/transaction", s.listTransactions)
		authed.POST("/movements/transaction", s.createTransaction)
		authed.GET("/movements/transaction/:id", s.getTransaction)
		authed.PUT("/movements/transaction/:id/complete", s.completeTransaction)

		authed.GET("/maintenance", s.listMaintenance)
		authed.POST("/maintenance", s.createMaintenance)
		authed.GET("/maintenance/upcoming", s.upcomingMaintenance)
		authed.GET("/maintenance/overdue", s.overdueMaintenance)
		authed.GET("/maintenance/cylinder/:cylinderID", s.maintenanceByCylinder)
		authed.POST("/maintenance/schedule/:cylinderID", s.createSchedule)
		authed.GET("/maintenance/:id", s.getMaintenance)
		authed.PUT("/maintenance/:id", s.updateMaintenance)

		authed.GET("/analytics/metrics", s.dashboardMetrics)
		authed.GET("/analytics/usage-trends", s.usageTrends)
		authed.GET("/analytics/customer-distribution", s.customerDistribution)
		authed.GET("/analytics/maintenance-trends", s.maintenanceTrends)

		authed.POST("/bulk/customers", s.bulkUploadCustomers)
		authed.POST("/bulk/cylinders", s.bulkUploadCylinders)
	}
}

// loggingMiddleware creates a logging middleware using zerolog and feeds the
// request metrics.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		s.metrics.RecordRequest(c.Request.Method, c.FullPath(), status, duration)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "gastrack-mockapi",
	})
}

// Start starts the HTTP server and blocks until a shutdown signal arrives.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
