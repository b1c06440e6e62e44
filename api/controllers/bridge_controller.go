/*
 * @module api/controllers/bridge_controller
 * @description 控制桥控制器，提供状态查询、输入区更新和动作触发的HTTP接口
 * @architecture RESTful API架构 - 控制器层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow HTTP请求 -> 调度器 -> 异步执行 -> 状态查询/SSE推送
 * @rules 触发接口只负责入队立即返回，执行结果通过状态接口或SSE获取
 * @dependencies enhancement-service/service, github.com/go-chi/render
 * @refs service/bridge/dispatcher.go
 */

package controllers

import (
	"errors"
	"net/http"

	"enhancement-service/service"
	"enhancement-service/service/bridge"
	"enhancement-service/service/models"

	"github.com/go-chi/render"
)

// BridgeController 控制桥控制器
type BridgeController struct{}

// NewBridgeController 创建控制桥控制器实例
func NewBridgeController() *BridgeController {
	return &BridgeController{}
}

// GetState 获取控制桥状态
// @Summary 获取控制桥状态
// @Description 返回调度器当前状态、最近动作、输入区和最近一次输出
// @Tags 控制桥
// @Produce json
// @Success 200 {object} APIResponse{data=models.BridgeState}
// @Router /bridge/state [get]
func (c *BridgeController) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := service.GlobalDispatcher.State()
	if err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "获取控制桥状态失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("获取控制桥状态成功", state))
}

// SetInputRequest 更新输入区请求
type SetInputRequest struct {
	Title  string `json:"title" example:"Q3 Rollout Plan"`
	Source string `json:"source" example:"Control Bridge"`
	Text   string `json:"text"`
}

// SetInput 更新控制桥输入区
// @Summary 更新控制桥输入区
// @Description 写入后续 runEnhancement 动作使用的标题、来源和文本
// @Tags 控制桥
// @Accept json
// @Produce json
// @Param request body SetInputRequest true "输入区内容"
// @Success 200 {object} APIResponse
// @Router /bridge/input [post]
func (c *BridgeController) SetInput(w http.ResponseWriter, r *http.Request) {
	var req SetInputRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "请求参数解析失败", err))
		return
	}

	if err := service.GlobalDispatcher.SetInput(req.Title, req.Source, req.Text); err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "更新输入区失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("输入区更新成功", nil))
}

// Trigger 触发控制桥动作
// @Summary 触发控制桥动作
// @Description 提交一个动作触发事件，已知槽位：runEnhancement/createFolder/syncConfig/copyOutput/saveToReports
// @Tags 控制桥
// @Accept json
// @Produce json
// @Param request body models.TriggerEvent true "触发事件"
// @Success 200 {object} APIResponse "已入队"
// @Failure 400 {object} APIResponse "未知槽位"
// @Failure 429 {object} APIResponse "队列已满"
// @Router /bridge/trigger [post]
func (c *BridgeController) Trigger(w http.ResponseWriter, r *http.Request) {
	var req models.TriggerEvent
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "请求参数解析失败", err))
		return
	}
	if req.Actor == "" {
		req.Actor = "api"
	}

	err := service.GlobalDispatcher.Trigger(req)
	switch {
	case errors.Is(err, bridge.ErrUnknownSlot):
		render.JSON(w, r, ErrorResponse(http.StatusBadRequest, "未知动作槽位: "+req.Slot, nil))
	case errors.Is(err, bridge.ErrQueueFull):
		render.JSON(w, r, ErrorResponse(http.StatusTooManyRequests, "触发队列已满，请稍后重试", nil))
	case err != nil:
		render.JSON(w, r, ErrorResponse(http.StatusInternalServerError, "触发失败", err))
	default:
		render.JSON(w, r, SuccessResponse("触发已入队", map[string]interface{}{
			"slot": req.Slot,
		}))
	}
}
