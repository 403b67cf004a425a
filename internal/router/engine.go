package router

import (
	"fmt"

	"delipucash/internal/config"
	"delipucash/internal/handlers"
	"delipucash/internal/middleware"
	"delipucash/internal/services"
	"delipucash/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New 组装服务、处理器和中间件，返回配置好的 gin 引擎
func New(cfg *config.Config, s store.Store, log *logrus.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.Metrics())
	if !cfg.IsProduction() {
		r.Use(middleware.RequestLogger(log))
	}
	if cfg.RateLimit.RPS > 0 {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		r.Use(limiter.Handler())
	}
	r.Use(middleware.MaxBodySize(cfg.Server.MaxBodyBytes))

	responseHandler := handlers.NewResponseHandler(
		services.NewReactionService(s, log),
		services.NewReplyService(s, log),
		services.NewAggregateService(s),
		handlers.NewErrorWriter(log, cfg.IsProduction()),
	)
	healthHandler := handlers.NewHealthHandler(s, cfg)

	RegisterRoutes(r, responseHandler, healthHandler)
	return r, nil
}
