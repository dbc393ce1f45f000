package main

import (
	"datastandard-service/api"
	_ "datastandard-service/docs"
	"datastandard-service/logger"
	"datastandard-service/service"
	"datastandard-service/service/config"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	daprd "github.com/dapr/go-sdk/service/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title 数据标准目录服务 API
// @version 1.0
// @description 标准单词、域、术语与数据库设计目录的管理、校验与对齐服务
// @BasePath /swagger/datastandard-service
func main() {
	cfg := config.Load()
	logger.InitLogger(cfg.LogLevel)

	svc, err := service.InitServices(cfg)
	if err != nil {
		slog.Error("服务初始化失败", "error", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.Scheduler.Start(); err != nil {
		slog.Error("对齐调度器启动失败", "error", err)
		os.Exit(1)
	}

	mux := chi.NewRouter()

	// 如果有BASE_CONTEXT，则在该路径下挂载所有路由
	if cfg.BaseContext != "" {
		mux.Route(cfg.BaseContext, func(r chi.Router) {
			// 创建子路由器并初始化路由
			subMux := r.(*chi.Mux)
			api.InitRoute(subMux, svc)
			r.Handle("/metrics", promhttp.Handler())
			r.Handle("/swagger*", httpSwagger.WrapHandler)
		})
	} else {
		api.InitRoute(mux, svc)
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	slog.Info("服务启动", "port", cfg.Port, "base_context", cfg.BaseContext)
	s := daprd.NewServiceWithMux(":"+strconv.Itoa(cfg.Port), mux)
	if err := s.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("服务运行失败", "error", err)
		os.Exit(1)
	}
}
