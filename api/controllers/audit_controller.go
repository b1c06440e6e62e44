/*
 * @module api/controllers/audit_controller
 * @description 审计日志控制器，提供最近日志查询和列契约查询接口
 * @architecture RESTful API架构 - 控制器层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow HTTP请求 -> 审计服务 -> 响应返回
 * @rules 查询行数钳制在1到200之间，日志只读不可修改
 * @dependencies enhancement-service/service, github.com/go-chi/render
 * @refs service/audit
 */

package controllers

import (
	"net/http"
	"strconv"

	"enhancement-service/service"
	"enhancement-service/service/models"

	"github.com/go-chi/render"
)

// AuditController 审计日志控制器
type AuditController struct{}

// NewAuditController 创建审计日志控制器实例
func NewAuditController() *AuditController {
	return &AuditController{}
}

// GetRecent 获取最近的审计日志
// @Summary 获取最近审计日志
// @Description 获取最近N条审计日志，新日志在前，limit钳制在1到200之间
// @Tags 审计日志
// @Produce json
// @Param limit query int false "查询行数" default(50)
// @Success 200 {object} APIResponse{data=[]models.AuditEntry}
// @Router /audit/recent [get]
func (c *AuditController) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = l
	}

	entries, err := service.GlobalAuditService.Recent(limit)
	if err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "获取审计日志失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取审计日志成功", entries))
}

// GetColumns 获取审计日志列契约
// @Summary 获取审计日志列顺序
// @Description 返回审计日志的固定13列顺序
// @Tags 审计日志
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Router /audit/columns [get]
func (c *AuditController) GetColumns(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, SuccessResponse("获取审计列成功", models.AuditColumns()))
}

// GetStats 获取审计日志统计
// @Summary 获取审计日志统计
// @Description 返回当前审计日志总行数和行数上限
// @Tags 审计日志
// @Produce json
// @Success 200 {object} APIResponse
// @Router /audit/stats [get]
func (c *AuditController) GetStats(w http.ResponseWriter, r *http.Request) {
	count, err := service.GlobalAuditService.Count()
	if err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "统计审计日志失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取审计统计成功", map[string]interface{}{
		"total_rows": count,
		"max_rows":   service.GlobalConfigService.GetAuditMaxRows(),
	}))
}
