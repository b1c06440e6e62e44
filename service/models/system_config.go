/*
 * @module service/models/system_config
 * @description 系统配置模型，用于存储运行期可调的配置项（外部端点、审计上限等）
 * @architecture 数据模型层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 配置存储 -> 配置读取 -> 配置更新
 * @rules 配置键唯一，初始化标志位仅允许在全部初始化步骤成功后置位
 * @dependencies gorm.io/gorm
 * @refs service/config
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 预定义配置键
const (
	ConfigKeyInitDone          = "system.init_done"
	ConfigKeyAIEndpoint        = "ai.http_endpoint"
	ConfigKeyAIBearerToken     = "ai.http_bearer_token"
	ConfigKeyAITimeoutMs       = "ai.http_timeout_ms"
	ConfigKeyAIModel           = "ai.http_model"
	ConfigKeyAIExtraHeaders    = "ai.http_extra_headers_json"
	ConfigKeyAIEnabled         = "ai.enabled"
	ConfigKeyAuditMaxRows      = "audit.max_rows"
	ConfigKeyReportRetention   = "report.retention_days"
	ConfigKeyExportRoot        = "export.root_dir"
	ConfigKeyProjectFolderPath = "export.project_folder_path"
)

// SystemConfig 系统配置模型
type SystemConfig struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (SystemConfig) TableName() string {
	return "system_configs"
}

// BeforeCreate 创建前钩子
func (c *SystemConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
