/*
 * @module service/ai/invoker
 * @description 外部生成端点调用器，带未配置降级、超时控制和全量审计记录的HTTP调用
 * @architecture 分层架构 - 外部集成层
 * @documentReference ai_docs/external_invoker_design.md
 * @stateFlow 读取配置 -> 未配置降级 -> 组装请求 -> 调用端点 -> 结果分类 -> 审计记录
 * @rules 未配置时不发起任何网络调用；传输失败只记录错误消息不中断上层流程
 * @dependencies enhancement-service/service/audit, enhancement-service/service/config, enhancement-service/service/utils
 * @refs service/bridge/dispatcher.go, api/controllers/enhancement_controller.go
 */

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"enhancement-service/service/audit"
	"enhancement-service/service/config"
	"enhancement-service/service/metrics"
	"enhancement-service/service/models"
	"enhancement-service/service/utils"

	"github.com/spf13/cast"
)

// 审计动作名
const actionCallEndpoint = "call_ai_http_endpoint"

// 响应体读取上限，防止异常端点拖垮内存
const maxResponseBytes = 4 << 20

// 调用结果状态
const (
	InvokeStatusSuccess = "success"
	InvokeStatusWarning = "warning"
	InvokeStatusFailure = "failure"
	InvokeStatusSkipped = "skipped"
)

// NotConfiguredMessage 未配置端点时返回的固定提示
const NotConfiguredMessage = "AI endpoint not configured (set ai.http_endpoint to enable generation)."

// InvokeInput 端点调用输入
type InvokeInput struct {
	Title  string
	Prompt string
	User   string
}

// InvokeResult 端点调用结果
// Status 为 success 时 ResponseText 是生成文本；warning/failure 时 Message 说明原因
type InvokeResult struct {
	Status       string `json:"status"`
	HTTPStatus   int    `json:"http_status,omitempty"`
	ResponseText string `json:"response_text"`
	Message      string `json:"message,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
}

// Invoker 外部生成端点调用器
type Invoker struct {
	configService *config.ConfigService
	auditService  *audit.AuditService
	httpClient    *http.Client
}

// NewInvoker 创建端点调用器实例
func NewInvoker(configService *config.ConfigService, auditService *audit.AuditService) *Invoker {
	return &Invoker{
		configService: configService,
		auditService:  auditService,
		httpClient:    &http.Client{},
	}
}

// IsConfigured 端点地址是否已配置
func (i *Invoker) IsConfigured() bool {
	return i.configService.GetAIEndpointConfig().Endpoint != ""
}

// Invoke 调用外部生成端点
// 端点未配置时直接降级返回 skipped 结果，不发起网络调用；
// 任何结果（含降级与失败）都会写入一条 ai 类审计日志
func (i *Invoker) Invoke(ctx context.Context, input InvokeInput) *InvokeResult {
	cfg := i.configService.GetAIEndpointConfig()
	startTime := time.Now()

	if cfg.Endpoint == "" {
		result := &InvokeResult{
			Status:  InvokeStatusSkipped,
			Message: NotConfiguredMessage,
		}
		i.recordResult(input, cfg, result)
		return result
	}

	result := i.call(ctx, cfg, input)
	result.DurationMs = time.Since(startTime).Milliseconds()
	i.recordResult(input, cfg, result)
	return result
}

func (i *Invoker) call(ctx context.Context, cfg config.AIEndpointConfig, input InvokeInput) *InvokeResult {
	payload, err := json.Marshal(map[string]string{
		"model":  cfg.Model,
		"title":  input.Title,
		"prompt": input.Prompt,
	})
	if err != nil {
		return &InvokeResult{
			Status:  InvokeStatusFailure,
			Message: fmt.Sprintf("序列化请求体失败: %v", err),
		}
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(callCtx, http.MethodPost, cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return &InvokeResult{
			Status:  InvokeStatusFailure,
			Message: fmt.Sprintf("构建请求失败: %v", err),
		}
	}

	request.Header.Set("Content-Type", "application/json")
	if cfg.BearerToken != "" {
		request.Header.Set("Authorization", "Bearer "+cfg.BearerToken)
	}
	for name, value := range parseExtraHeaders(cfg.ExtraHeadersJSON) {
		request.Header.Set(name, value)
	}

	response, err := i.httpClient.Do(request)
	if err != nil {
		// 传输层失败只保留错误消息，调用方决定是否降级继续
		return &InvokeResult{
			Status:  InvokeStatusFailure,
			Message: err.Error(),
		}
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &InvokeResult{
			Status:     InvokeStatusFailure,
			HTTPStatus: response.StatusCode,
			Message:    fmt.Sprintf("读取响应体失败: %v", err),
		}
	}

	body := string(bodyBytes)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &InvokeResult{
			Status:       InvokeStatusWarning,
			HTTPStatus:   response.StatusCode,
			ResponseText: utils.DecodeResponseText(body),
			Message:      fmt.Sprintf("AI endpoint returned HTTP %d", response.StatusCode),
		}
	}

	return &InvokeResult{
		Status:       InvokeStatusSuccess,
		HTTPStatus:   response.StatusCode,
		ResponseText: utils.DecodeResponseText(body),
	}
}

// recordResult 记录调用指标和审计日志
func (i *Invoker) recordResult(input InvokeInput, cfg config.AIEndpointConfig, result *InvokeResult) {
	metrics.AIInvocationsTotal.WithLabelValues(result.Status).Inc()

	auditStatus := models.StatusSuccess
	switch result.Status {
	case InvokeStatusFailure:
		auditStatus = models.StatusFailure
	case InvokeStatusWarning, InvokeStatusSkipped:
		auditStatus = models.StatusWarning
	}

	err := i.auditService.Append(audit.Event{
		EventType:    models.EventTypeAI,
		Action:       actionCallEndpoint,
		User:         input.User,
		Status:       auditStatus,
		DurationMs:   result.DurationMs,
		ErrorMessage: result.Message,
		Meta: models.JSONB{
			"endpoint":    cfg.Endpoint,
			"model":       cfg.Model,
			"http_status": result.HTTPStatus,
			"status":      result.Status,
		},
	})
	if err != nil {
		slog.Error("记录端点调用审计日志失败", "error", err)
	}
}

// parseExtraHeaders 宽容解析附加请求头JSON
// 非法JSON返回空集合，非字符串值逐项转换失败时跳过该项
func parseExtraHeaders(extraJSON string) map[string]string {
	headers := make(map[string]string)
	if extraJSON == "" {
		return headers
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(extraJSON), &parsed); err != nil {
		slog.Warn("附加请求头JSON解析失败，忽略全部附加头", "error", err)
		return headers
	}

	for name, raw := range parsed {
		value, err := cast.ToStringE(raw)
		if err != nil {
			continue
		}
		headers[name] = value
	}
	return headers
}
