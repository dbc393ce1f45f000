/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康状态检查
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/api_conventions.md
 * @stateFlow HTTP请求处理流程
 * @rules 就绪检查要求数据根目录存在且为目录
 * @dependencies net/http
 * @refs service/catalog_store/store.go
 */

package controllers

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/render"
)

const serviceName = "datastandard-service"

// HealthController 健康检查控制器
type HealthController struct {
	dataDir string
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(dataDir string) *HealthController {
	return &HealthController{dataDir: dataDir}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
	Service   string    `json:"service" example:"datastandard-service"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   serviceName,
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查
// @Summary 就绪检查
// @Description 检查数据目录是否可用
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   serviceName,
	}

	if info, err := os.Stat(c.dataDir); err != nil || !info.IsDir() {
		slog.Warn("数据目录不可用", "data_dir", c.dataDir, "error", err)
		response.Status = "unavailable"
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}
