/*
 * @module service/models/enhancement
 * @description 增强分析相关模型定义，包括文本信号向量、增强包和增强报告持久化模型
 * @architecture 数据模型层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 文本输入 -> 信号提取 -> 八维透镜分析 -> 增强包生成 -> 报告持久化
 * @rules 信号向量为纯派生数据，增强包一经生成不可变更，重新分析产生新的报告行
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/enhancement
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 增强模式常量
const (
	ModeSelection     = "selection"      // 来自选区分析
	ModeUI            = "ui"             // 来自界面调用
	ModeControlBridge = "control_bridge" // 来自控制桥触发
	ModeUnknown       = "unknown"        // 未知来源
)

// Signals 文本信号向量，由信号提取器从原始文本派生
// 所有计数均 >= 0，bulletDensity 保留3位小数
type Signals struct {
	WordCount     int     `json:"wordCount"`
	LineCount     int     `json:"lineCount"`
	HeadingCount  int     `json:"headingCount"`
	BulletCount   int     `json:"bulletCount"`
	BulletDensity float64 `json:"bulletDensity"`

	HasObjective      bool `json:"hasObjective"`
	HasScope          bool `json:"hasScope"`
	HasAssumptions    bool `json:"hasAssumptions"`
	HasRisks          bool `json:"hasRisks"`
	HasMetrics        bool `json:"hasMetrics"`
	HasTimeline       bool `json:"hasTimeline"`
	HasExamples       bool `json:"hasExamples"`
	HasIntegration    bool `json:"hasIntegration"`
	HasTesting        bool `json:"hasTesting"`
	HasUserExperience bool `json:"hasUserExperience"`
}

// EnhancementPackage 一次增强分析的完整产出
// 由增强引擎构建后不再修改，aiResponse 仅在外部调用发生后填充
type EnhancementPackage struct {
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	Mode       string    `json:"mode"`
	WordCount  int       `json:"word_count"`
	Signals    Signals   `json:"signals"`
	Analysis   string    `json:"analysis"`
	Proposals  string    `json:"proposals"`
	Prompt     string    `json:"prompt"`
	AIResponse string    `json:"ai_response"`
}

// EnhancementReport 增强报告持久化模型，对应一次增强分析的落库记录
type EnhancementReport struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time `gorm:"not null;index" json:"created_at"`
	CreatedBy  string    `gorm:"not null;default:'unknown'" json:"created_by"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Source     string    `gorm:"type:varchar(200);not null;default:'Unknown'" json:"source"`
	Mode       string    `gorm:"type:varchar(20);not null;default:'unknown'" json:"mode"`
	WordCount  int       `gorm:"not null" json:"word_count"`
	Signals    JSONB     `gorm:"type:jsonb" json:"signals"`
	Analysis   string    `gorm:"type:text" json:"analysis"`
	Proposals  string    `gorm:"type:text" json:"proposals"`
	Prompt     string    `gorm:"type:text" json:"prompt"`
	AIResponse string    `gorm:"type:text" json:"ai_response"`
}

// BeforeCreate 创建前钩子
func (r *EnhancementReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedBy == "" {
		r.CreatedBy = "unknown"
	}
	return nil
}
