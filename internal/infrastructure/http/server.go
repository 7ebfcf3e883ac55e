package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/pkg/logger"
)

// Config is the HTTP listener configuration.
type Config struct {
	Port        string
	Timeout     time.Duration
	Debug       bool
	CORSOrigins []string
	BodyLimit   string
	Service     string
	Version     string
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type Server struct {
	cfg    Config
	logger *zap.Logger
	echo   *echo.Echo
}

// NewServer builds the echo instance with the shared middleware chain.
// register mounts the application routes.
func NewServer(cfg Config, log *zap.Logger, store sessions.Store, health map[string]HealthCheck, register func(e *echo.Echo)) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug
	e.IPExtractor = echo.ExtractIPFromXFFHeader()
	logger.WithEchoLogger(e, log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			id, err := gonanoid.New()
			if err != nil {
				return ""
			}
			return id
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "qms",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if store != nil {
		e.Use(session.Middleware(store))
	}

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", healthHandler(cfg, health))

	register(e)

	return &Server{cfg: cfg, logger: log, echo: e}
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start blocks until the listener stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.Timeout,
		WriteTimeout:      s.cfg.Timeout,
	}
	s.logger.Info("Starting HTTP server", zap.String("address", srv.Addr))

	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthHandler(cfg Config, checks map[string]HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "unhealthy"
		}
		return c.JSON(status, map[string]interface{}{
			"status":       state,
			"service":      cfg.Service,
			"version":      cfg.Version,
			"dependencies": deps,
		})
	}
}
