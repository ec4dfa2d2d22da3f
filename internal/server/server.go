package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lonestarcare/carewatch/internal/config"
	notificationdomain "github.com/lonestarcare/carewatch/internal/notification/domain"
	"github.com/lonestarcare/carewatch/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server exposes the thin operator API: the manual alert trigger,
// notification reads, health, and metrics.
type Server struct {
	cfg           config.Config
	log           *zap.Logger
	engine        *gin.Engine
	sched         *scheduler.Scheduler
	notifications notificationdomain.Repository
}

type Params struct {
	fx.In

	Config        config.Config
	Log           *zap.Logger
	Engine        *gin.Engine
	Scheduler     *scheduler.Scheduler
	Notifications notificationdomain.Repository
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:           p.Config,
		log:           p.Log.Named("server"),
		engine:        p.Engine,
		sched:         p.Scheduler,
		notifications: p.Notifications,
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1")
	v1.POST("/alerts/check", s.RunAlertCheck)
	v1.GET("/subscribers/:id/notifications", s.ListNotifications)
	v1.POST("/notifications/:id/read", s.MarkNotificationRead)
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server failed", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
