/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/api_conventions.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 每个目录类型挂载在 /api/<type> 下；专用路由先于通用条目路由注册
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs service/init.go
 */

package api

import (
	"datastandard-service/api/controllers"
	"datastandard-service/service"
	"datastandard-service/service/catalog"
	"datastandard-service/service/history"
	"datastandard-service/service/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux, svc *service.Services) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(svc.Config.DataDir)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	fileController := controllers.NewFileController(svc.Store)
	syncController := controllers.NewSyncController(svc.CatalogSync, svc.Relation)
	termController := controllers.NewTermController(svc.Catalogs.Term, svc.TermValidation, svc.CatalogSync)
	alignmentController := controllers.NewAlignmentController(svc.Orchestrator, svc.ReportBuilder, svc.Scheduler)
	cats := svc.Catalogs

	r.Route("/api", func(r chi.Router) {
		// 元数据
		r.Route("/meta", func(r chi.Router) {
			metaController := controllers.NewMetaController()
			r.Get("/catalog-types", metaController.GetCatalogTypes)
			r.Get("/term-rules", metaController.GetTermRules)
			r.Get("/report-levels", metaController.GetReportLevels)
			r.Get("/sheets/{catalog}", metaController.GetSheetSpec)
		})

		// 标准单词
		mountCatalog(r, cats.Vocabulary, svc.History, fileController, func(r chi.Router) {
			r.Post("/sync-domain", syncController.SyncVocabularyDomain)
		})
		// 域
		mountCatalog(r, cats.Domain, svc.History, fileController, nil)
		// 术语
		mountCatalog(r, cats.Term, svc.History, fileController, termController.Routes)

		// 设计套件
		mountCatalog(r, cats.Database, svc.History, fileController, nil)
		mountCatalog(r, cats.Entity, svc.History, fileController, nil)
		mountCatalog(r, cats.Attribute, svc.History, fileController, nil)
		mountCatalog(r, cats.Table, svc.History, fileController, nil)
		mountCatalog(r, cats.Column, svc.History, fileController, func(r chi.Router) {
			r.Get("/sync-term", syncController.ColumnSyncStatus)
			r.Post("/sync-term", syncController.SyncColumnTerm)
		})

		// 实体关系
		r.Route("/erd/relations", func(r chi.Router) {
			r.Get("/validate", syncController.ValidateRelations)
			r.Post("/sync", syncController.SyncRelations)
		})

		// 统一校验报告与对齐
		r.Get("/validation/report", alignmentController.Report)
		r.Route("/alignment", func(r chi.Router) {
			r.Post("/sync", alignmentController.Sync)
			r.Get("/schedule", alignmentController.Schedule)
		})
	})
}

// mountCatalog 挂载 /<type> 下的专用路由、文件管理路由与通用条目路由
func mountCatalog[T models.Fielder, P models.Record[T]](r chi.Router, svc *catalog.Service[T, P], hist *history.Service, files *controllers.FileController, extra func(chi.Router)) {
	catalogType := svc.CatalogType()
	r.Route("/"+catalogType, func(r chi.Router) {
		if extra != nil {
			extra(r)
		}
		r.Route("/files", files.Routes(catalogType))
		controllers.NewCatalogController(svc, hist).Routes(r)
	})
}
