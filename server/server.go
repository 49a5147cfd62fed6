// Package server wires the HTTP surface: middleware, API routes, and the
// metrics endpoint.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/hrygo/guppshupp/ai/core/llm"
	"github.com/hrygo/guppshupp/ai/metrics"
	"github.com/hrygo/guppshupp/internal/profile"
	apiv1 "github.com/hrygo/guppshupp/server/router/api/v1"
	"github.com/hrygo/guppshupp/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiV1      *apiv1.APIV1Service
	exporter   *metrics.PrometheusExporter
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store, gateway llm.Service) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	exporter := metrics.NewPrometheusExporter(metrics.DefaultConfig())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
		exporter:   exporter,
	}

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(requestMiddleware(exporter))

	if gateway != nil {
		gateway = metrics.InstrumentGateway(gateway, exporter, profile.LLMModel, profile.LLMProvider)
	}
	s.apiV1 = apiv1.NewAPIV1Service(profile, store, gateway, exporter)
	s.apiV1.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(exporter.GetHandler()))

	return s, nil
}

// APIV1 exposes the service layer, mainly for tests.
func (s *Server) APIV1() *apiv1.APIV1Service {
	return s.apiV1
}

func (s *Server) Start(ctx context.Context) error {
	if s.Profile.UNIXSock != "" {
		listener, err := net.Listen("unix", s.Profile.UNIXSock)
		if err != nil {
			return errors.Wrapf(err, "failed to listen on unix socket: %s", s.Profile.UNIXSock)
		}
		s.echoServer.Listener = listener
		go func() {
			if err := s.echoServer.Start(""); err != nil {
				slog.Info("http server stopped", "error", err)
			}
		}()
		return nil
	}

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.echoServer.Start(address); err != nil {
			slog.Info("http server stopped", "error", err)
		}
	}()
	return nil
}

func (s *Server) StartBackgroundRunners(ctx context.Context) {
	go newRetentionRunner(s.Store).Run(ctx)
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown complete")
}

// requestMiddleware tags each request with an id, logs it, and records the
// request counter and latency histogram.
func requestMiddleware(exporter *metrics.PrometheusExporter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			exporter.RecordHTTPRequest(path, c.Request().Method, status, latency)
			slog.Info("request completed",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
			return nil
		}
	}
}
