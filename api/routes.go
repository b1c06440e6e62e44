/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"enhancement-service/api/controllers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
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
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// SSE事件订阅
	eventController := controllers.NewEventController()
	r.Get("/sse/{user_name}", eventController.HandleSSE)
	r.Get("/events/connections", eventController.GetConnectionCount)

	// 增强分析
	r.Route("/enhancements", func(r chi.Router) {
		enhancementController := controllers.NewEnhancementController()

		r.Post("/analyze", enhancementController.Analyze)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", enhancementController.GetReports)
			r.Get("/{id}", enhancementController.GetReport)
		})
	})

	// 控制桥
	r.Route("/bridge", func(r chi.Router) {
		bridgeController := controllers.NewBridgeController()

		r.Get("/state", bridgeController.GetState)
		r.Post("/input", bridgeController.SetInput)
		r.Post("/trigger", bridgeController.Trigger)
	})

	// 审计日志
	r.Route("/audit", func(r chi.Router) {
		auditController := controllers.NewAuditController()

		r.Get("/recent", auditController.GetRecent)
		r.Get("/columns", auditController.GetColumns)
		r.Get("/stats", auditController.GetStats)
	})

	// 系统配置
	r.Route("/config", func(r chi.Router) {
		configController := controllers.NewConfigController()

		r.Get("/", configController.GetAllConfigs)
		r.Get("/{key}", configController.GetConfig)
		r.Put("/{key}", configController.UpdateConfig)
	})
}
