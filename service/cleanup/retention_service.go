/*
 * @module service/cleanup/retention_service
 * @description 保留期清理服务，定期裁剪审计日志并删除过期增强报告
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow 定时触发 -> 获取分布式锁 -> 审计裁剪 -> 报告清理 -> 记录结果
 * @rules 多实例环境下同一时刻只有一个实例执行清理；清理失败不影响服务运行
 * @dependencies enhancement-service/service/audit, enhancement-service/service/report, github.com/robfig/cron/v3
 * @refs service/init.go
 */

package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"enhancement-service/service/audit"
	"enhancement-service/service/config"
	"enhancement-service/service/distributed_lock"
	"enhancement-service/service/report"

	"github.com/robfig/cron/v3"
)

// 清理任务的分布式锁键和持有时长
const (
	cleanupLockKey = "retention_cleanup"
	cleanupLockTTL = 10 * time.Minute
)

// RetentionService 保留期清理服务
type RetentionService struct {
	auditService  *audit.AuditService
	reportService *report.ReportService
	configService *config.ConfigService
	lockExecutor  *distributed_lock.LockExecutor
	cron          *cron.Cron
	ctx           context.Context
	cancel        context.CancelFunc
	started       bool
}

// NewRetentionService 创建保留期清理服务实例
// lockExecutor 为nil时清理在本实例直接执行（单实例部署）
func NewRetentionService(
	auditService *audit.AuditService,
	reportService *report.ReportService,
	configService *config.ConfigService,
	lockExecutor *distributed_lock.LockExecutor,
) *RetentionService {
	ctx, cancel := context.WithCancel(context.Background())

	return &RetentionService{
		auditService:  auditService,
		reportService: reportService,
		configService: configService,
		lockExecutor:  lockExecutor,
		cron:          cron.New(cron.WithSeconds()),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// RunCleanup 执行一轮完整清理
func (s *RetentionService) RunCleanup(ctx context.Context) error {
	slog.Info("开始执行保留期清理")
	startTime := time.Now()

	auditDeleted, err := s.auditService.Trim()
	if err != nil {
		slog.Error("裁剪审计日志失败", "error", err)
	} else {
		slog.Info("审计日志裁剪完成", "deleted_count", auditDeleted)
	}

	retentionDays := s.configService.GetReportRetentionDays()
	reportDeleted, err := s.reportService.CleanupExpiredReports(retentionDays)
	if err != nil {
		slog.Error("清理过期增强报告失败", "error", err)
	} else {
		slog.Info("过期增强报告清理完成", "deleted_count", reportDeleted, "retention_days", retentionDays)
	}

	slog.Info("保留期清理完成",
		"audit_deleted", auditDeleted,
		"report_deleted", reportDeleted,
		"duration_ms", time.Since(startTime).Milliseconds())

	return nil
}

// runWithLock 在分布式锁保护下执行清理
func (s *RetentionService) runWithLock() {
	if s.lockExecutor == nil {
		if err := s.RunCleanup(s.ctx); err != nil {
			slog.Error("保留期清理失败", "error", err)
		}
		return
	}

	err := s.lockExecutor.ExecuteWithLock(s.ctx, cleanupLockKey, cleanupLockTTL, func() error {
		return s.RunCleanup(s.ctx)
	})
	if err != nil {
		slog.Error("保留期清理失败", "error", err)
	}
}

// StartScheduledCleanup 启动定时清理任务
func (s *RetentionService) StartScheduledCleanup() error {
	if s.started {
		return fmt.Errorf("保留期清理调度器已经启动")
	}

	// 每天凌晨2点执行清理任务
	// Cron表达式：秒 分 时 日 月 周
	_, err := s.cron.AddFunc("0 0 2 * * *", func() {
		slog.Info("开始执行定时保留期清理任务")
		s.runWithLock()
	})
	if err != nil {
		return fmt.Errorf("添加定时任务失败: %w", err)
	}

	s.cron.Start()
	s.started = true

	slog.Info("保留期清理调度器启动成功，将于每天凌晨2点执行清理任务")
	return nil
}

// StopScheduledCleanup 停止定时清理任务
func (s *RetentionService) StopScheduledCleanup() {
	if !s.started {
		return
	}

	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.started = false

	slog.Info("保留期清理调度器已停止")
}
