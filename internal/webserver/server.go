package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	elog "github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/talkincode/productcatalog/config"
)

const apiPrefix = "/api"

// WebServer is the echo binding of the catalog HTTP API.
type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	cfg  *config.AppConfig
}

// NewWebServer creates the echo instance with the shared middleware stack.
func NewWebServer(cfg *config.AppConfig) *WebServer {
	s := &WebServer{cfg: cfg}
	s.root = echo.New()
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.JSONSerializer = &JSONSerializer{}
	if cfg.System.Debug {
		s.root.Logger.SetLevel(elog.DEBUG)
	} else {
		s.root.Logger.SetLevel(elog.INFO)
	}
	s.root.HTTPErrorHandler = s.errorHandler

	s.root.Use(middleware.Recover())
	s.root.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(cfg.Web.AllowOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("echo request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	s.api = s.root.Group(apiPrefix)
	return s
}

// Echo returns the underlying echo instance
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// ApiGET registers a GET route under /api
func (s *WebServer) ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.GET(path, h, m...)
}

// ApiPOST registers a POST route under /api
func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.api.POST(path, h, m...)
}

// GET registers a GET route outside the api group
func (s *WebServer) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	s.root.GET(path, h, m...)
}

// Addr returns the configured listen address
func (s *WebServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
}

// Start listens until Shutdown is called. A clean shutdown returns nil.
func (s *WebServer) Start() error {
	server := &http.Server{
		Addr:         s.Addr(),
		ReadTimeout:  time.Duration(s.cfg.Web.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Web.WriteTimeout) * time.Second,
	}
	zap.L().Info("echo server listening", zap.String("addr", server.Addr))
	if err := s.root.StartServer(server); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// errorHandler keeps every error response in the {"error": message} shape.
func (s *WebServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("echo request failed", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, echo.Map{"error": msg})
	}
	if err != nil {
		zap.L().Error("write error response", zap.Error(err))
	}
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
