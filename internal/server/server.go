package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/DesignOS/backend/internal/api/http"
	"github.com/GriffinCanCode/DesignOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/DesignOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/DesignOS/backend/internal/config"
	"github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	brandProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/brand"
	dnaProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/dna"
	knowledgeProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/knowledge"
	screensProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/screens"
	tokensProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/tokens"
	workflowProvider "github.com/GriffinCanCode/DesignOS/backend/internal/providers/workflow"
	"github.com/GriffinCanCode/DesignOS/backend/internal/sandbox"
	"github.com/GriffinCanCode/DesignOS/backend/internal/service"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	sessions *session.Manager
	hub      *ws.Hub
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	cfg      *config.Config
}

// NewServer creates a new server instance. The vision backend is
// injected so tests can run against a fake.
func NewServer(cfg *config.Config, backend vision.Backend, logger *logging.Logger) (*Server, error) {
	if backend == nil {
		return nil, fmt.Errorf("vision backend required")
	}
	if logger == nil {
		if cfg.Logging.Development {
			logger = logging.NewDevelopment()
		} else {
			logger = logging.NewDefault()
		}
	}

	logger.Info("Initializing design backend",
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model),
		zap.String("sandbox", cfg.Sandbox.BaseURL),
	)

	metrics := monitoring.NewMetrics()
	sessions := session.NewManager()
	hub := ws.NewHub(logger)

	store := sandbox.New(sandbox.Config{
		BaseURL: cfg.Sandbox.BaseURL,
		Timeout: cfg.Sandbox.Timeout,
	})

	extractor := dna.NewExtractor(backend, cfg.Gemini.Model, logger)

	registry := service.NewRegistry()
	registerProviders(registry, sessions, backend, extractor, store, cfg, logger)

	if cfg.Logging.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := apihttp.NewHandlers(registry, sessions, hub, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", withTimeout(cfg.Gemini.ExtractionTimeout), handlers.ExecuteService)

	// Session endpoints
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/images", handlers.AttachImages)
	router.DELETE("/sessions/:id/images", handlers.ClearImages)

	// WebSocket
	router.GET("/stream", hub.HandleConnection)

	return &Server{
		router:   router,
		registry: registry,
		sessions: sessions,
		hub:      hub,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}, nil
}

// Router exposes the gin engine, mostly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("Starting design backend", zap.String("addr", addr))

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func registerProviders(
	registry *service.Registry,
	sessions *session.Manager,
	backend vision.Backend,
	extractor *dna.Extractor,
	store *sandbox.Client,
	cfg *config.Config,
	logger *logging.Logger,
) {
	providers := []service.Provider{
		tokensProvider.NewProvider(sessions),
		dnaProvider.NewProvider(sessions, extractor, logger),
		screensProvider.NewProvider(sessions, backend, cfg.Gemini.Model, store, logger),
		workflowProvider.NewProvider(sessions, store, logger),
		knowledgeProvider.NewProvider(nil),
		brandProvider.NewProvider(logger),
	}

	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			logger.Warn("failed to register provider",
				zap.String("service", p.Definition().ID),
				zap.Error(err),
			)
		}
	}

	stats := registry.Stats()
	logger.Info("Registered service providers",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)
}

// withTimeout bounds slow model calls so a hung extraction cannot pin
// a connection forever.
func withTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
