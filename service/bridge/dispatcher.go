/*
 * @module service/bridge/dispatcher
 * @description 控制桥调度器，将外部触发事件排队串行执行并维护 Idle/Working/Ready/Error 状态机
 * @architecture 事件驱动架构 - 单消费者串行调度
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow Idle -> 触发入队 -> Working -> 执行动作 -> Ready 或 Error: <消息> -> 下一事件
 * @rules 仅已知槽位的置位事件驱动调度；队列满时立即拒绝；动作失败不终止消费循环
 * @dependencies enhancement-service/service/ai, enhancement-service/service/audit, enhancement-service/service/enhancement, enhancement-service/service/report
 * @refs api/controllers/bridge_controller.go, service/bridge/mqtt_trigger.go
 */

package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"enhancement-service/service/ai"
	"enhancement-service/service/audit"
	"enhancement-service/service/config"
	"enhancement-service/service/enhancement"
	"enhancement-service/service/event"
	"enhancement-service/service/metrics"
	"enhancement-service/service/models"
	"enhancement-service/service/report"

	"gorm.io/gorm"
)

// 触发队列容量，满载时新触发被拒绝而不是阻塞
const triggerQueueSize = 16

var (
	// ErrQueueFull 触发队列已满
	ErrQueueFull = errors.New("触发队列已满")
	// ErrUnknownSlot 未知动作槽位
	ErrUnknownSlot = errors.New("未知动作槽位")
	// ErrNotStarted 调度器未启动
	ErrNotStarted = errors.New("调度器未启动")
	// ErrNoOutput 当前没有可用输出
	ErrNoOutput = errors.New("当前没有可用输出")
	// ErrNoPackage 当前没有可保存的增强结果
	ErrNoPackage = errors.New("当前没有可保存的增强结果")
)

// 已知动作槽位集合
var knownSlots = map[string]bool{
	models.SlotRunEnhancement: true,
	models.SlotCreateFolder:   true,
	models.SlotSyncConfig:     true,
	models.SlotCopyOutput:     true,
	models.SlotSaveToReports:  true,
}

// 可同步的配置项及描述，syncConfig 动作为缺失项补种默认行
var seedConfigs = []struct {
	key         string
	value       string
	description string
}{
	{models.ConfigKeyAIEndpoint, "", "外部生成端点地址，为空表示未配置"},
	{models.ConfigKeyAIBearerToken, "", "外部生成端点Bearer令牌"},
	{models.ConfigKeyAITimeoutMs, "30000", "外部生成端点超时毫秒数"},
	{models.ConfigKeyAIModel, "default", "外部生成端点模型名"},
	{models.ConfigKeyAIExtraHeaders, "", "附加请求头JSON"},
	{models.ConfigKeyAIEnabled, "false", "是否在增强运行后自动调用外部端点"},
	{models.ConfigKeyAuditMaxRows, "20000", "审计日志行数上限"},
	{models.ConfigKeyReportRetention, "90", "增强报告保留天数"},
}

// Dispatcher 控制桥调度器
type Dispatcher struct {
	db            *gorm.DB
	engine        *enhancement.Engine
	invoker       *ai.Invoker
	reportService *report.ReportService
	configService *config.ConfigService
	auditService  *audit.AuditService
	eventService  *event.EventService
	publisher     *event.KafkaPublisher
	folderService *FolderService

	queue   chan models.TriggerEvent
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool

	packageMutex sync.Mutex
	lastPackage  *models.EnhancementPackage
}

// NewDispatcher 创建控制桥调度器实例
func NewDispatcher(
	db *gorm.DB,
	engine *enhancement.Engine,
	invoker *ai.Invoker,
	reportService *report.ReportService,
	configService *config.ConfigService,
	auditService *audit.AuditService,
	eventService *event.EventService,
	publisher *event.KafkaPublisher,
	folderService *FolderService,
) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		db:            db,
		engine:        engine,
		invoker:       invoker,
		reportService: reportService,
		configService: configService,
		auditService:  auditService,
		eventService:  eventService,
		publisher:     publisher,
		folderService: folderService,
		queue:         make(chan models.TriggerEvent, triggerQueueSize),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start 启动调度器消费循环
// 启动时确保状态行存在并复位为 Idle
func (d *Dispatcher) Start() error {
	if d.started.Load() {
		return nil
	}

	state, err := d.loadState()
	if err != nil {
		return err
	}
	if err := d.updateState(state.ID, map[string]interface{}{
		"status": models.BridgeStatusIdle,
	}); err != nil {
		return err
	}

	d.started.Store(true)
	d.wg.Add(1)
	go d.consumeLoop()

	slog.Info("控制桥调度器已启动", "queue_size", triggerQueueSize)
	return nil
}

// Stop 停止调度器，等待当前动作执行完毕
func (d *Dispatcher) Stop() {
	if !d.started.Load() {
		return
	}
	d.cancel()
	d.wg.Wait()
	d.started.Store(false)
	slog.Info("控制桥调度器已停止")
}

// Trigger 提交一个触发事件
// 未知槽位返回 ErrUnknownSlot；复位事件（Value=false）直接忽略；
// 队列满时返回 ErrQueueFull，不阻塞调用方
func (d *Dispatcher) Trigger(trigger models.TriggerEvent) error {
	if !d.started.Load() {
		return ErrNotStarted
	}
	if !knownSlots[trigger.Slot] {
		return ErrUnknownSlot
	}
	if !trigger.Value {
		return nil
	}

	select {
	case d.queue <- trigger:
		return nil
	default:
		metrics.BridgeTriggersTotal.WithLabelValues(trigger.Slot, "rejected").Inc()
		return ErrQueueFull
	}
}

// State 返回当前控制桥持久化状态
func (d *Dispatcher) State() (*models.BridgeState, error) {
	return d.loadState()
}

// SetInput 更新控制桥输入区
// 只写输入列，消费协程拥有的状态列和输出列不被触碰
func (d *Dispatcher) SetInput(title, source, text string) error {
	state, err := d.loadState()
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"input_title": title,
		"input_text":  text,
	}
	if source != "" {
		updates["input_source"] = source
	}
	return d.updateState(state.ID, updates)
}

// consumeLoop 单消费者循环，事件严格按入队顺序串行执行
func (d *Dispatcher) consumeLoop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case trigger := <-d.queue:
			d.handle(trigger)
		}
	}
}

func (d *Dispatcher) handle(trigger models.TriggerEvent) {
	startTime := time.Now()

	if err := d.transition(models.BridgeStatusWorking, trigger.Slot); err != nil {
		slog.Error("更新调度器状态失败", "error", err)
	}

	err := d.execute(trigger)
	durationMs := time.Since(startTime).Milliseconds()

	auditStatus := models.StatusSuccess
	metricStatus := "success"
	errorMessage := ""
	nextStatus := models.BridgeStatusReady
	if err != nil {
		auditStatus = models.StatusFailure
		metricStatus = "failure"
		errorMessage = err.Error()
		nextStatus = fmt.Sprintf("Error: %s", err.Error())
		slog.Error("控制桥动作执行失败", "slot", trigger.Slot, "actor", trigger.Actor, "error", err)
	}

	metrics.BridgeTriggersTotal.WithLabelValues(trigger.Slot, metricStatus).Inc()

	if appendErr := d.auditService.Append(audit.Event{
		EventType:    models.EventTypeUI,
		Action:       fmt.Sprintf("trigger_%s", trigger.Slot),
		User:         trigger.Actor,
		Status:       auditStatus,
		DurationMs:   durationMs,
		ErrorMessage: errorMessage,
		Meta:         models.JSONB{"slot": trigger.Slot},
	}); appendErr != nil {
		slog.Error("记录触发审计日志失败", "error", appendErr)
	}

	if err := d.transition(nextStatus, trigger.Slot); err != nil {
		slog.Error("更新调度器状态失败", "error", err)
	}
}

func (d *Dispatcher) execute(trigger models.TriggerEvent) error {
	switch trigger.Slot {
	case models.SlotRunEnhancement:
		return d.runEnhancement(trigger.Actor)
	case models.SlotCreateFolder:
		return d.createFolder(trigger.Actor)
	case models.SlotSyncConfig:
		return d.syncConfig(trigger.Actor)
	case models.SlotCopyOutput:
		return d.copyOutput(trigger.Actor)
	case models.SlotSaveToReports:
		return d.saveToReports(trigger.Actor)
	default:
		return ErrUnknownSlot
	}
}

// runEnhancement 对输入区文本执行完整增强分析，可选调用外部端点
func (d *Dispatcher) runEnhancement(actor string) error {
	state, err := d.loadState()
	if err != nil {
		return err
	}

	startTime := time.Now()
	pkg, err := d.engine.Generate(enhancement.GenerateInput{
		Text:      state.InputText,
		Title:     state.InputTitle,
		Source:    state.InputSource,
		Mode:      models.ModeControlBridge,
		CreatedBy: actor,
	})
	if err != nil {
		metrics.EnhancementRunsTotal.WithLabelValues(models.ModeControlBridge, "failure").Inc()
		d.auditService.AppendFailure(models.EventTypeEnhancement, "run_enhancement", actor, err)
		d.eventService.BroadcastEvent(event.EventEnhancementFailure, map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	aiNote := ""
	cfg := d.configService.GetAIEndpointConfig()
	if cfg.Enabled {
		result := d.invoker.Invoke(d.ctx, ai.InvokeInput{
			Title:  pkg.Title,
			Prompt: pkg.Prompt,
			User:   actor,
		})
		switch result.Status {
		case ai.InvokeStatusSuccess:
			pkg.AIResponse = result.ResponseText
		default:
			aiNote = result.Message
		}
	}

	durationMs := time.Since(startTime).Milliseconds()
	metrics.EnhancementRunsTotal.WithLabelValues(models.ModeControlBridge, "success").Inc()
	metrics.EnhancementDurationSeconds.Observe(time.Since(startTime).Seconds())

	d.auditService.Append(audit.Event{
		EventType:  models.EventTypeEnhancement,
		Action:     "run_enhancement",
		User:       actor,
		Status:     models.StatusSuccess,
		DurationMs: durationMs,
		Meta: models.JSONB{
			"title":      pkg.Title,
			"word_count": pkg.WordCount,
			"mode":       pkg.Mode,
		},
	})

	// 动作期间输入区可能被再次写入，只回写输出列
	if err := d.updateState(state.ID, map[string]interface{}{
		"output": composeOutput(pkg, aiNote),
	}); err != nil {
		return err
	}

	d.packageMutex.Lock()
	d.lastPackage = pkg
	d.packageMutex.Unlock()

	d.eventService.BroadcastEvent(event.EventEnhancementDone, map[string]interface{}{
		"title":      pkg.Title,
		"word_count": pkg.WordCount,
	})

	return nil
}

// createFolder 创建项目资产目录，目录名取输入标题，缺省为引擎名
func (d *Dispatcher) createFolder(actor string) error {
	state, err := d.loadState()
	if err != nil {
		return err
	}

	_, err = d.folderService.CreateProjectFolder(state.InputTitle, actor)
	return err
}

// syncConfig 清除配置缓存并为缺失的配置项补种默认行
func (d *Dispatcher) syncConfig(actor string) error {
	d.configService.ClearCache()

	seeded := 0
	for _, seed := range seedConfigs {
		if _, err := d.configService.GetConfig(seed.key); err == nil {
			continue
		} else if !errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		if err := d.configService.SetConfig(seed.key, seed.value, seed.description); err != nil {
			return err
		}
		seeded++
	}

	d.auditService.Append(audit.Event{
		EventType: models.EventTypeConfig,
		Action:    "sync_config",
		User:      actor,
		Status:    models.StatusSuccess,
		Meta:      models.JSONB{"seeded_keys": seeded},
	})

	return nil
}

// copyOutput 将当前输出导出为带时间戳的文件
func (d *Dispatcher) copyOutput(actor string) error {
	state, err := d.loadState()
	if err != nil {
		return err
	}
	if state.Output == "" {
		return ErrNoOutput
	}

	filename := fmt.Sprintf("output-%s.md", time.Now().Format("20060102-150405"))
	_, err = d.folderService.WriteExport(filename, state.Output, actor)
	return err
}

// saveToReports 将最近一次增强包保存为报告并发布创建事件
func (d *Dispatcher) saveToReports(actor string) error {
	d.packageMutex.Lock()
	pkg := d.lastPackage
	d.packageMutex.Unlock()

	if pkg == nil {
		return ErrNoPackage
	}

	record, err := d.reportService.SaveReport(pkg)
	if err != nil {
		d.auditService.AppendFailure(models.EventTypeEdit, "save_to_reports", actor, err)
		return err
	}

	d.auditService.Append(audit.Event{
		EventType: models.EventTypeEdit,
		Action:    "save_to_reports",
		User:      actor,
		Status:    models.StatusSuccess,
		Meta:      models.JSONB{"report_id": record.ID},
	})

	if err := d.publisher.PublishPackageCreated(d.ctx, record); err != nil {
		slog.Error("发布报告创建事件失败", "error", err)
	}

	return nil
}

// transition 更新并持久化调度器状态，同时向SSE客户端广播
func (d *Dispatcher) transition(status, action string) error {
	state, err := d.loadState()
	if err != nil {
		return err
	}

	now := time.Now()
	if err := d.updateState(state.ID, map[string]interface{}{
		"status":         status,
		"last_action":    action,
		"last_action_at": &now,
	}); err != nil {
		return err
	}

	d.eventService.BroadcastEvent(event.EventBridgeStatus, map[string]interface{}{
		"status":      status,
		"last_action": action,
	})

	return nil
}

// loadState 加载单行控制桥状态，不存在时创建
func (d *Dispatcher) loadState() (*models.BridgeState, error) {
	var state models.BridgeState
	err := d.db.First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("加载控制桥状态失败: %w", err)
	}

	state = models.BridgeState{
		Status:      models.BridgeStatusIdle,
		InputSource: "Control Bridge",
	}
	if err := d.db.Create(&state).Error; err != nil {
		return nil, fmt.Errorf("创建控制桥状态失败: %w", err)
	}
	return &state, nil
}

// updateState 按列更新状态行
// 每个写入方只更新自己拥有的列，输入区写入与消费协程的状态回写互不覆盖
func (d *Dispatcher) updateState(id string, updates map[string]interface{}) error {
	if err := d.db.Model(&models.BridgeState{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("保存控制桥状态失败: %w", err)
	}
	return nil
}

// composeOutput 将增强包组装为输出文档
func composeOutput(pkg *models.EnhancementPackage, aiNote string) string {
	sections := []string{
		pkg.Analysis,
		pkg.Proposals,
		"## 🤖 AI Prompt",
		pkg.Prompt,
	}

	if pkg.AIResponse != "" {
		sections = append(sections, "## ✨ AI Response", pkg.AIResponse)
	} else if aiNote != "" {
		sections = append(sections, "## ✨ AI Response", fmt.Sprintf("_%s_", aiNote))
	}

	output := ""
	for i, section := range sections {
		if i > 0 {
			output += "\n\n"
		}
		output += section
	}
	return output
}
