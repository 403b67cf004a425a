package router

import (
	"delipucash/internal/handlers"
	"delipucash/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, responses *handlers.ResponseHandler, health *handlers.HealthHandler) {
	// 健康检查 (Health)
	r.GET("/", health.Root)                // 服务信息
	r.GET("/health", health.Health)        // 含数据库检查
	r.GET("/ping", health.Ping)            // 存活探针
	r.GET("/api/health", health.APIHealth) // 轻量检查
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 回答互动 (Response interactions)
	rg := r.Group("/api/responses")
	{
		rg.POST("/:responseId/like", responses.Like)           // 点赞/取消点赞
		rg.POST("/:responseId/dislike", responses.Dislike)     // 点踩/取消点踩
		rg.POST("/:responseId/replies", responses.CreateReply) // 发表回复
		rg.GET("/:responseId/replies", responses.ListReplies)  // 回复列表（按时间升序）
		rg.GET("/:responseId", responses.Detail)               // 回答详情及计数
	}

	r.NoRoute(health.NotFound)
}
