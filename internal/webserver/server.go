package webserver

import (
	"fmt"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nexcommerce/catalogd/config"
	"go.uber.org/zap"
)

// WebServer hosts the public API group and the JWT-protected group under
// the same /api/v1 prefix.
type WebServer struct {
	cfg    *config.AppConfig
	root   *echo.Echo
	api    *echo.Group
	secure *echo.Group
}

func New(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	s := &WebServer{
		cfg:  cfg,
		root: e,
		api:  e.Group("/api/v1"),
	}
	s.secure = e.Group("/api/v1")
	s.secure.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
	}))
	return s
}

// Use installs middleware for every route
func (s *WebServer) Use(m echo.MiddlewareFunc) {
	s.root.Use(m)
}

func (s *WebServer) ApiGET(path string, h echo.HandlerFunc) {
	s.api.GET(path, h)
}

func (s *WebServer) ApiPOST(path string, h echo.HandlerFunc) {
	s.api.POST(path, h)
}

func (s *WebServer) ApiPUT(path string, h echo.HandlerFunc) {
	s.api.PUT(path, h)
}

func (s *WebServer) ApiDELETE(path string, h echo.HandlerFunc) {
	s.api.DELETE(path, h)
}

func (s *WebServer) SecureGET(path string, h echo.HandlerFunc) {
	s.secure.GET(path, h)
}

func (s *WebServer) SecurePOST(path string, h echo.HandlerFunc) {
	s.secure.POST(path, h)
}

// Echo exposes the underlying router (used in tests)
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown() error {
	return s.root.Close()
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
