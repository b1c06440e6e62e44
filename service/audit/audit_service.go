/*
 * @module service/audit/audit_service
 * @description 审计日志服务，提供仅追加写入、行数上限裁剪、最近N条查询和幂等初始化
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow 事件 -> 组装13列 -> 追加写入 -> 超限裁剪 -> 查询
 * @rules 追加串行化保证顺序，裁剪只删最旧行，初始化成功后才置位完成标志
 * @dependencies enhancement-service/service/config, enhancement-service/service/models, gorm.io/gorm
 * @refs service/ai/invoker.go, service/bridge/dispatcher.go
 */

package audit

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"enhancement-service/service/config"
	"enhancement-service/service/models"

	"gorm.io/gorm"
)

// Recent 查询的行数限制
const (
	MinRecentLimit     = 1
	MaxRecentLimit     = 200
	DefaultRecentLimit = 50
)

// 初始化完成标志的配置值
const initDoneValue = "INIT_DONE"

// Event 审计事件输入，未填字段按契约取默认值
type Event struct {
	EventType    string
	Action       string
	User         string
	Status       string
	DurationMs   int64
	ErrorMessage string
	StackTrace   string
	Meta         models.JSONB
}

// AuditService 审计日志服务
type AuditService struct {
	db            *gorm.DB
	configService *config.ConfigService
	startedAt     time.Time
	appendMutex   sync.Mutex
	initialized   atomic.Bool
}

// NewAuditService 创建审计日志服务实例
func NewAuditService(db *gorm.DB, configService *config.ConfigService) *AuditService {
	return &AuditService{
		db:            db,
		configService: configService,
		startedAt:     time.Now(),
	}
}

// EnsureStore 幂等初始化审计存储
// 首次调用完成全部初始化步骤并记录 system/initialize_framework 事件，
// 之后的调用（包括并发调用）直接返回；任一步骤失败时不置位完成标志
func (s *AuditService) EnsureStore() error {
	if s.initialized.Load() {
		return nil
	}

	s.appendMutex.Lock()
	defer s.appendMutex.Unlock()

	if s.initialized.Load() {
		return nil
	}

	value, err := s.configService.GetConfig(models.ConfigKeyInitDone)
	if err == nil && value == initDoneValue {
		s.initialized.Store(true)
		return nil
	}
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return fmt.Errorf("读取初始化标志失败: %w", err)
	}

	if err := s.appendLocked(Event{
		EventType: models.EventTypeSystem,
		Action:    "initialize_framework",
		User:      "system",
		Status:    models.StatusSuccess,
	}); err != nil {
		return fmt.Errorf("写入初始化事件失败: %w", err)
	}

	if err := s.configService.SetConfig(models.ConfigKeyInitDone, initDoneValue, "审计框架初始化完成标志"); err != nil {
		return fmt.Errorf("写入初始化标志失败: %w", err)
	}

	s.initialized.Store(true)
	slog.Info("审计框架初始化完成")
	return nil
}

// Append 追加一条审计日志并按行数上限裁剪
// 写入在互斥锁下串行化，保证 Seq 顺序与调用顺序一致
func (s *AuditService) Append(event Event) error {
	s.appendMutex.Lock()
	defer s.appendMutex.Unlock()
	return s.appendLocked(event)
}

func (s *AuditService) appendLocked(event Event) error {
	now := time.Now()

	metaJSON := "{}"
	if len(event.Meta) > 0 {
		if value, err := event.Meta.Value(); err == nil {
			if bytes, ok := value.([]byte); ok {
				metaJSON = string(bytes)
			}
		}
	}

	entry := models.AuditEntry{
		TimestampISOMs:     now.UTC().Format("2006-01-02T15:04:05.000Z"),
		DateLocal:          now.Format("2006-01-02"),
		TimeLocal:          now.Format("15:04:05"),
		EpochMs:            now.UnixMilli(),
		EventType:          event.EventType,
		Action:             event.Action,
		User:               event.User,
		Status:             event.Status,
		DurationMs:         event.DurationMs,
		RemainingQuotaHint: s.quotaHint(),
		ErrorMessage:       event.ErrorMessage,
		StackTrace:         event.StackTrace,
		MetaJSON:           metaJSON,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("追加审计日志失败: %w", err)
	}

	if err := s.trimLocked(); err != nil {
		slog.Error("裁剪审计日志失败", "error", err)
	}

	return nil
}

// AppendFailure 追加一条失败事件，自动附带当前调用栈
func (s *AuditService) AppendFailure(eventType, action, user string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return s.Append(Event{
		EventType:    eventType,
		Action:       action,
		User:         user,
		Status:       models.StatusFailure,
		ErrorMessage: message,
		StackTrace:   string(debug.Stack()),
	})
}

// Recent 查询最近N条审计日志，新行在前
// limit 被钳制到 [1, 200]，非法值回退到默认50条
func (s *AuditService) Recent(limit int) ([]models.AuditEntry, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < MinRecentLimit {
		limit = MinRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var entries []models.AuditEntry
	err := s.db.Order("seq DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询审计日志失败: %w", err)
	}
	return entries, nil
}

// Count 返回当前审计日志总行数
func (s *AuditService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.AuditEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计审计日志失败: %w", err)
	}
	return count, nil
}

// Trim 按配置的行数上限裁剪最旧日志行，返回删除行数
func (s *AuditService) Trim() (int64, error) {
	s.appendMutex.Lock()
	defer s.appendMutex.Unlock()

	before, err := s.Count()
	if err != nil {
		return 0, err
	}
	if err := s.trimLocked(); err != nil {
		return 0, err
	}
	after, err := s.Count()
	if err != nil {
		return 0, err
	}
	return before - after, nil
}

func (s *AuditService) trimLocked() error {
	maxRows := int64(s.configService.GetAuditMaxRows())

	var count int64
	if err := s.db.Model(&models.AuditEntry{}).Count(&count).Error; err != nil {
		return fmt.Errorf("统计审计日志失败: %w", err)
	}
	if count <= maxRows {
		return nil
	}

	// 一次性删除超出部分，最旧的行先被删除
	excess := count - maxRows
	var boundary models.AuditEntry
	err := s.db.Order("seq ASC").Offset(int(excess - 1)).Limit(1).First(&boundary).Error
	if err != nil {
		return fmt.Errorf("定位裁剪边界失败: %w", err)
	}

	result := s.db.Where("seq <= ?", boundary.Seq).Delete(&models.AuditEntry{})
	if result.Error != nil {
		return fmt.Errorf("删除过旧审计日志失败: %w", result.Error)
	}

	slog.Info("审计日志裁剪完成", "deleted_count", result.RowsAffected, "max_rows", maxRows)
	return nil
}

// quotaHint 尽力而为的配额提示，以进程运行时长近似
func (s *AuditService) quotaHint() string {
	return fmt.Sprintf("uptime=%ds", int64(time.Since(s.startedAt).Seconds()))
}
