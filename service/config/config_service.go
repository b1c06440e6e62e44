/*
 * @module service/config/config_service
 * @description 配置服务，提供数据库系统配置的读写、环境变量回退和类型化访问
 * @architecture 分层架构 - 业务服务层
 * @dependencies enhancement-service/service/models, github.com/spf13/cast, gorm.io/gorm
 * @refs service/ai/invoker.go, service/audit/audit_service.go, service/cleanup
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"enhancement-service/service/models"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// 配置默认值
const (
	DefaultAIHTTPTimeoutMs     = 30000
	DefaultAIHTTPModel         = "default"
	DefaultAuditMaxRows        = 20000
	DefaultReportRetentionDays = 90
	DefaultExportRootDir       = "/data/exports"
)

// ErrConfigNotFound 配置项不存在
var ErrConfigNotFound = errors.New("配置项不存在")

// ConfigService 配置服务
// 读取顺序：数据库 system_configs -> 环境变量 -> 调用方默认值
type ConfigService struct {
	db    *gorm.DB
	cache map[string]string
	mutex sync.RWMutex
}

// NewConfigService 创建配置服务实例
func NewConfigService(db *gorm.DB) *ConfigService {
	return &ConfigService{
		db:    db,
		cache: make(map[string]string),
	}
}

// GetConfig 获取配置值，数据库不存在时回退到环境变量
func (s *ConfigService) GetConfig(key string) (string, error) {
	s.mutex.RLock()
	if value, ok := s.cache[key]; ok {
		s.mutex.RUnlock()
		return value, nil
	}
	s.mutex.RUnlock()

	var record models.SystemConfig
	err := s.db.Where("key = ?", key).First(&record).Error
	if err == nil {
		s.mutex.Lock()
		s.cache[key] = record.Value
		s.mutex.Unlock()
		return record.Value, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("查询配置失败: %w", err)
	}

	if value, ok := os.LookupEnv(envNameForKey(key)); ok {
		return value, nil
	}

	return "", ErrConfigNotFound
}

// GetConfigOrDefault 获取配置值，不存在时返回默认值
func (s *ConfigService) GetConfigOrDefault(key, defaultValue string) string {
	value, err := s.GetConfig(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetIntConfig 获取整型配置值，不存在或解析失败时返回默认值
func (s *ConfigService) GetIntConfig(key string, defaultValue int) int {
	value, err := s.GetConfig(key)
	if err != nil {
		return defaultValue
	}
	parsed, err := cast.ToIntE(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// GetBoolConfig 获取布尔配置值，不存在或解析失败时返回默认值
func (s *ConfigService) GetBoolConfig(key string, defaultValue bool) bool {
	value, err := s.GetConfig(key)
	if err != nil {
		return defaultValue
	}
	parsed, err := cast.ToBoolE(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// SetConfig 写入配置值，已存在时更新并刷新缓存
func (s *ConfigService) SetConfig(key, value, description string) error {
	var record models.SystemConfig
	err := s.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询配置失败: %w", err)
		}
		record = models.SystemConfig{
			Key:         key,
			Value:       value,
			Description: description,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("创建配置失败: %w", err)
		}
	} else {
		record.Value = value
		if description != "" {
			record.Description = description
		}
		if err := s.db.Save(&record).Error; err != nil {
			return fmt.Errorf("更新配置失败: %w", err)
		}
	}

	s.mutex.Lock()
	s.cache[key] = value
	s.mutex.Unlock()

	return nil
}

// GetAllConfigs 获取所有系统配置
func (s *ConfigService) GetAllConfigs() ([]models.SystemConfig, error) {
	var configs []models.SystemConfig
	if err := s.db.Order("key").Find(&configs).Error; err != nil {
		return nil, fmt.Errorf("查询配置列表失败: %w", err)
	}
	return configs, nil
}

// ClearCache 清除配置缓存
func (s *ConfigService) ClearCache() {
	s.mutex.Lock()
	s.cache = make(map[string]string)
	s.mutex.Unlock()
}

// GetAuditMaxRows 获取审计日志行数上限
func (s *ConfigService) GetAuditMaxRows() int {
	return s.GetIntConfig(models.ConfigKeyAuditMaxRows, DefaultAuditMaxRows)
}

// GetReportRetentionDays 获取增强报告保留天数
func (s *ConfigService) GetReportRetentionDays() int {
	return s.GetIntConfig(models.ConfigKeyReportRetention, DefaultReportRetentionDays)
}

// GetExportRootDir 获取导出根目录
func (s *ConfigService) GetExportRootDir() string {
	return s.GetConfigOrDefault(models.ConfigKeyExportRoot, DefaultExportRootDir)
}

// AIEndpointConfig 外部生成端点配置
type AIEndpointConfig struct {
	Endpoint         string
	BearerToken      string
	TimeoutMs        int
	Model            string
	ExtraHeadersJSON string
	Enabled          bool
}

// GetAIEndpointConfig 获取外部生成端点的完整配置
// 端点地址为空表示未配置，调用方据此走未配置降级路径
func (s *ConfigService) GetAIEndpointConfig() AIEndpointConfig {
	return AIEndpointConfig{
		Endpoint:         strings.TrimSpace(s.GetConfigOrDefault(models.ConfigKeyAIEndpoint, "")),
		BearerToken:      s.GetConfigOrDefault(models.ConfigKeyAIBearerToken, ""),
		TimeoutMs:        s.GetIntConfig(models.ConfigKeyAITimeoutMs, DefaultAIHTTPTimeoutMs),
		Model:            s.GetConfigOrDefault(models.ConfigKeyAIModel, DefaultAIHTTPModel),
		ExtraHeadersJSON: s.GetConfigOrDefault(models.ConfigKeyAIExtraHeaders, ""),
		Enabled:          s.GetBoolConfig(models.ConfigKeyAIEnabled, false),
	}
}

// envNameForKey 配置键到环境变量名的映射（ai.http_endpoint -> AI_HTTP_ENDPOINT）
func envNameForKey(key string) string {
	name := strings.NewReplacer(".", "_", "-", "_").Replace(key)
	return strings.ToUpper(name)
}
