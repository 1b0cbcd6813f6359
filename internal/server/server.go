package server

import (
	"context"
	"net/http"

	"marketplace/internal/config"
	"marketplace/internal/logger"
	mw "marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Serverはechoと依存を束ねる
type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

// Newはミドルウェアを積んだechoを組み立てる。ルートはRegisterRoutesで載せる。
func New(cfg config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(mw.RequestID)
	e.Use(logger.Middleware(logger.GetLogger()))
	e.Use(mw.Metrics)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e, cfg: cfg}
}

// APIGroupは /api 配下のグループを返す
func (s *Server) APIGroup() *echo.Group {
	return s.echo.Group("/api")
}

func (s *Server) Start() error {
	addr := s.cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
