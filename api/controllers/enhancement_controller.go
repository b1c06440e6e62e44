/*
 * @module api/controllers/enhancement_controller
 * @description 增强分析控制器，提供工作产出分析、报告查询的HTTP接口
 * @architecture RESTful API架构 - 控制器层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow HTTP请求 -> 文本归一化 -> 增强引擎 -> 可选端点调用 -> 可选报告落库 -> 响应返回
 * @rules 空文本请求返回400并记录失败审计；分析本身无副作用，落库仅在显式要求时发生
 * @dependencies enhancement-service/service, github.com/go-chi/chi/v5, github.com/go-chi/render
 * @refs service/enhancement, service/report
 */

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"enhancement-service/service"
	"enhancement-service/service/ai"
	"enhancement-service/service/audit"
	"enhancement-service/service/enhancement"
	"enhancement-service/service/metrics"
	"enhancement-service/service/models"
	"enhancement-service/service/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// EnhancementController 增强分析控制器
type EnhancementController struct{}

// NewEnhancementController 创建增强分析控制器实例
func NewEnhancementController() *EnhancementController {
	return &EnhancementController{}
}

// AnalyzeRequest 增强分析请求
type AnalyzeRequest struct {
	Text       string `json:"text"`
	Title      string `json:"title" example:"Q3 Rollout Plan"`
	Source     string `json:"source" example:"UI"`
	Mode       string `json:"mode" example:"ui"`
	CreatedBy  string `json:"created_by" example:"admin"`
	InvokeAI   bool   `json:"invoke_ai"`
	SaveReport bool   `json:"save_report"`
}

// AnalyzeResponse 增强分析响应
type AnalyzeResponse struct {
	Package  *models.EnhancementPackage `json:"package"`
	ReportID string                     `json:"report_id,omitempty"`
	AIStatus string                     `json:"ai_status,omitempty"`
}

// Analyze 对工作产出文本执行完整增强分析
// @Summary 增强分析
// @Description 提取文本信号，生成八维透镜分析、分级提案和完整提示文档，可选调用外部生成端点并落库报告
// @Tags 增强分析
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "增强分析请求"
// @Success 200 {object} APIResponse{data=AnalyzeResponse}
// @Failure 400 {object} APIResponse "文本为空"
// @Router /enhancements/analyze [post]
func (c *EnhancementController) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "请求参数解析失败", err))
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeUI
	}

	startTime := time.Now()
	pkg, err := service.GlobalEngine.Generate(enhancement.GenerateInput{
		Text:      utils.NormalizeToUTF8(req.Text),
		Title:     req.Title,
		Source:    req.Source,
		Mode:      mode,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		metrics.EnhancementRunsTotal.WithLabelValues(mode, "failure").Inc()
		service.GlobalAuditService.AppendFailure(models.EventTypeEnhancement, "analyze_work_product", req.CreatedBy, err)
		if errors.Is(err, enhancement.ErrEmptyInput) {
			render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "工作产出文本为空", nil))
			return
		}
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "增强分析失败", err))
		return
	}

	response := AnalyzeResponse{Package: pkg}

	if req.InvokeAI {
		result := service.GlobalInvoker.Invoke(r.Context(), ai.InvokeInput{
			Title:  pkg.Title,
			Prompt: pkg.Prompt,
			User:   pkg.CreatedBy,
		})
		response.AIStatus = result.Status
		if result.Status == ai.InvokeStatusSuccess {
			pkg.AIResponse = result.ResponseText
		}
	}

	if req.SaveReport {
		record, err := service.GlobalReportService.SaveReport(pkg)
		if err != nil {
			render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "保存增强报告失败", err))
			return
		}
		response.ReportID = record.ID

		if err := service.GlobalKafkaPublisher.PublishPackageCreated(r.Context(), record); err != nil {
			// 事件发布失败不影响响应
			service.GlobalAuditService.AppendFailure(models.EventTypeSystem, "publish_package_created", pkg.CreatedBy, err)
		}
	}

	metrics.EnhancementRunsTotal.WithLabelValues(pkg.Mode, "success").Inc()
	metrics.EnhancementDurationSeconds.Observe(time.Since(startTime).Seconds())

	service.GlobalAuditService.Append(audit.Event{
		EventType:  models.EventTypeEnhancement,
		Action:     "analyze_work_product",
		User:       pkg.CreatedBy,
		Status:     models.StatusSuccess,
		DurationMs: time.Since(startTime).Milliseconds(),
		Meta: models.JSONB{
			"title":      pkg.Title,
			"mode":       pkg.Mode,
			"word_count": pkg.WordCount,
		},
	})

	render.JSON(w, r, SuccessResponse("增强分析成功", response))
}

// GetReports 分页查询增强报告
// @Summary 获取增强报告列表
// @Description 分页获取已保存的增强报告，新报告在前
// @Tags 增强分析
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页大小" default(20)
// @Success 200 {object} PaginatedResponse
// @Router /enhancements/reports [get]
func (c *EnhancementController) GetReports(w http.ResponseWriter, r *http.Request) {
	page := 1
	size := 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 && s <= 100 {
		size = s
	}

	reports, total, err := service.GlobalReportService.ListReports(page, size)
	if err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "获取增强报告列表失败", err))
		return
	}

	render.JSON(w, r, PaginatedResponse{
		Status: 0,
		Msg:    "获取增强报告列表成功",
		Data:   reports,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetReport 获取单个增强报告
// @Summary 获取增强报告
// @Description 根据ID获取增强报告详情
// @Tags 增强分析
// @Produce json
// @Param id path string true "报告ID"
// @Success 200 {object} APIResponse{data=models.EnhancementReport}
// @Failure 404 {object} APIResponse "报告不存在"
// @Router /enhancements/reports/{id} [get]
func (c *EnhancementController) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "报告ID不能为空", nil))
		return
	}

	record, err := service.GlobalReportService.GetReport(id)
	if err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusNotFound, "增强报告不存在", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取增强报告成功", record))
}
