package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"
	"niddo-http-service/internal/infrastructure/database"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	pool *database.ConnectionPool
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(pool *database.ConnectionPool) *HealthCheckController {
	return &HealthCheckController{pool: pool}
}

// Ping 存活检查端点
// @Summary 存活检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ping [get]
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health 数据库连通性和连接池状态
// @Summary 健康检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /health [get]
func (h *HealthCheckController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.pool.HealthCheck(ctx); err != nil {
		response.Error(c, code.Wrap(code.ErrDatabase, err))
		return
	}

	stats, err := h.pool.Stats()
	if err != nil {
		response.Error(c, code.Wrap(code.ErrDatabase, err))
		return
	}

	response.Success(c, gin.H{
		"status":   "healthy",
		"driver":   h.pool.Driver,
		"database": stats,
	})
}
