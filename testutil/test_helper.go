/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"enhancement-service/service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.SystemConfig{},
		&models.AuditEntry{},
		&models.EnhancementReport{},
		&models.BridgeState{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"system_configs",
		"audit_entries",
		"enhancement_reports",
		"bridge_states",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// SystemConfigOption 系统配置选项函数类型
type SystemConfigOption func(*models.SystemConfig)

// CreateSystemConfig 创建测试系统配置
func (f *TestDataFactory) CreateSystemConfig(key, value string, opts ...SystemConfigOption) *models.SystemConfig {
	record := &models.SystemConfig{
		Key:         key,
		Value:       value,
		Description: "测试配置项",
	}

	// 应用选项
	for _, opt := range opts {
		opt(record)
	}

	err := f.DB.Create(record).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test system config: %v", err))
	}

	return record
}

// AuditEntryOption 审计日志选项函数类型
type AuditEntryOption func(*models.AuditEntry)

// CreateAuditEntry 创建测试审计日志行
func (f *TestDataFactory) CreateAuditEntry(opts ...AuditEntryOption) *models.AuditEntry {
	now := time.Now()
	entry := &models.AuditEntry{
		TimestampISOMs: now.UTC().Format("2006-01-02T15:04:05.000Z"),
		DateLocal:      now.Format("2006-01-02"),
		TimeLocal:      now.Format("15:04:05"),
		EpochMs:        now.UnixMilli(),
		EventType:      models.EventTypeSystem,
		Action:         "test_action",
		User:           "test",
		Status:         models.StatusSuccess,
		MetaJSON:       "{}",
	}

	// 应用选项
	for _, opt := range opts {
		opt(entry)
	}

	err := f.DB.Create(entry).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test audit entry: %v", err))
	}

	return entry
}

// EnhancementReportOption 增强报告选项函数类型
type EnhancementReportOption func(*models.EnhancementReport)

// CreateEnhancementReport 创建测试增强报告
func (f *TestDataFactory) CreateEnhancementReport(opts ...EnhancementReportOption) *models.EnhancementReport {
	record := &models.EnhancementReport{
		CreatedAt: time.Now(),
		CreatedBy: "test",
		Title:     "测试增强报告",
		Source:    "UI",
		Mode:      models.ModeUI,
		WordCount: 100,
		Signals:   models.JSONB{"wordCount": 100},
		Analysis:  "analysis",
		Proposals: "proposals",
		Prompt:    "prompt",
	}

	// 应用选项
	for _, opt := range opts {
		opt(record)
	}

	err := f.DB.Create(record).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test enhancement report: %v", err))
	}

	return record
}
