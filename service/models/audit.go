/*
 * @module service/models/audit
 * @description 审计日志模型定义，固定13列结构，仅追加写入并按行数上限裁剪
 * @architecture 数据模型层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow 事件发生 -> 追加日志行 -> 超限裁剪最旧行
 * @rules 日志行一经写入不可修改，顺序即追加顺序
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/audit
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 审计事件类型常量
const (
	EventTypeSystem      = "system"
	EventTypeNavigation  = "navigation"
	EventTypeUI          = "ui"
	EventTypeConfig      = "config"
	EventTypeDrive       = "drive"
	EventTypeEnhancement = "enhancement"
	EventTypeAI          = "ai"
	EventTypeEdit        = "edit"
)

// 审计状态常量
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusFailure = "failure"
)

// AuditEntry 审计日志行，列顺序与对外查询契约一致
type AuditEntry struct {
	ID                 string    `gorm:"type:uuid;primary_key" json:"-"`
	Seq                int64     `gorm:"not null;uniqueIndex" json:"-"`
	TimestampISOMs     string    `gorm:"column:timestamp_iso_ms;type:varchar(32);not null" json:"timestamp_iso_ms"`
	DateLocal          string    `gorm:"column:date_local;type:varchar(10);not null" json:"date_local"`
	TimeLocal          string    `gorm:"column:time_local;type:varchar(8);not null" json:"time_local"`
	EpochMs            int64     `gorm:"column:epoch_ms;not null;index" json:"epoch_ms"`
	EventType          string    `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	Action             string    `gorm:"column:action;type:varchar(120);not null" json:"action"`
	User               string    `gorm:"column:user;type:varchar(120);not null;default:'unknown'" json:"user"`
	Status             string    `gorm:"column:status;type:varchar(10);not null;default:'success'" json:"status"`
	DurationMs         int64     `gorm:"column:duration_ms;not null;default:0" json:"duration_ms"`
	RemainingQuotaHint string    `gorm:"column:remaining_quota_hint;type:varchar(64)" json:"remaining_quota_hint"`
	ErrorMessage       string    `gorm:"column:error_message;type:text" json:"error_message"`
	StackTrace         string    `gorm:"column:stack_trace;type:text" json:"stack_trace"`
	MetaJSON           string    `gorm:"column:meta_json;type:text;not null;default:'{}'" json:"meta_json"`
	CreatedAt          time.Time `json:"-"`
}

// TableName 指定表名
func (AuditEntry) TableName() string {
	return "audit_entries"
}

// BeforeCreate 创建前钩子
// Seq 在追加互斥锁下按当前最大值递增，顺序即追加顺序
func (e *AuditEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Seq == 0 {
		var maxSeq int64
		if err := tx.Model(&AuditEntry{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		e.Seq = maxSeq + 1
	}
	if e.User == "" {
		e.User = "unknown"
	}
	if e.Status == "" {
		e.Status = StatusSuccess
	}
	if e.MetaJSON == "" {
		e.MetaJSON = "{}"
	}
	return nil
}

// AuditColumns 固定13列顺序，查询接口按此顺序返回
func AuditColumns() []string {
	return []string{
		"timestamp_iso_ms",
		"date_local",
		"time_local",
		"epoch_ms",
		"event_type",
		"action",
		"user",
		"status",
		"duration_ms",
		"remaining_quota_hint",
		"error_message",
		"stack_trace",
		"meta_json",
	}
}
