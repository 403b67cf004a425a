package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"delipucash/internal/config"
	"delipucash/internal/store"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查与服务信息
type HealthHandler struct {
	store     store.Store
	cfg       *config.Config
	startedAt time.Time
}

func NewHealthHandler(s store.Store, cfg *config.Config) *HealthHandler {
	return &HealthHandler{store: s, cfg: cfg, startedAt: time.Now()}
}

// Health GET /health，数据库不可用时返回 503
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	now := time.Now().UTC().Format(time.RFC3339)
	database := gin.H{"status": "healthy", "timestamp": now}
	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		database = gin.H{"status": "unhealthy", "error": err.Error(), "timestamp": now}
		status = http.StatusServiceUnavailable
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(status, gin.H{
		"status":      "OK",
		"timestamp":   now,
		"environment": h.cfg.Server.Env,
		"version":     h.cfg.Server.Version,
		"uptime":      time.Since(h.startedAt).Seconds(),
		"memory": gin.H{
			"alloc":      mem.Alloc,
			"heapInuse":  mem.HeapInuse,
			"sys":        mem.Sys,
			"goroutines": runtime.NumGoroutine(),
		},
		"database": database,
		"services": gin.H{
			"api":      "healthy",
			"database": database["status"],
		},
	})
}

// Ping GET /ping
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// APIHealth GET /api/health，不查数据库
func (h *HealthHandler) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Server.Env,
	})
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":          "DelipuCash Mobile API Server",
		"status":           "Running",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"version":          h.cfg.Server.Version,
		"mobile_optimized": true,
		"endpoints": gin.H{
			"health":    "/health",
			"ping":      "/ping",
			"metrics":   "/metrics",
			"responses": "/api/responses/*",
		},
	})
}

// NotFound 未匹配路由
func (h *HealthHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success":         false,
		"message":         "Route " + c.Request.URL.Path + " not found",
		"availableRoutes": []string{"/", "/health", "/ping", "/api/*"},
	})
}
