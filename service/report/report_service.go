/*
 * @module service/report/report_service
 * @description 增强报告服务，负责增强包的落库、查询和按保留天数清理
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 增强包 -> 报告落库 -> 查询/清理
 * @rules 每次保存产生新报告行，不覆盖历史记录
 * @dependencies enhancement-service/service/models, gorm.io/gorm
 * @refs service/bridge/dispatcher.go, service/cleanup
 */

package report

import (
	"encoding/json"
	"fmt"
	"time"

	"enhancement-service/service/models"

	"gorm.io/gorm"
)

// ReportService 增强报告服务
type ReportService struct {
	db *gorm.DB
}

// NewReportService 创建增强报告服务实例
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// SaveReport 将增强包保存为新的报告行
func (s *ReportService) SaveReport(pkg *models.EnhancementPackage) (*models.EnhancementReport, error) {
	if pkg == nil {
		return nil, fmt.Errorf("增强包为空")
	}

	signals, err := signalsToJSONB(pkg.Signals)
	if err != nil {
		return nil, fmt.Errorf("序列化信号向量失败: %w", err)
	}

	record := models.EnhancementReport{
		CreatedAt:  pkg.CreatedAt,
		CreatedBy:  pkg.CreatedBy,
		Title:      pkg.Title,
		Source:     pkg.Source,
		Mode:       pkg.Mode,
		WordCount:  pkg.WordCount,
		Signals:    signals,
		Analysis:   pkg.Analysis,
		Proposals:  pkg.Proposals,
		Prompt:     pkg.Prompt,
		AIResponse: pkg.AIResponse,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("保存增强报告失败: %w", err)
	}
	return &record, nil
}

// GetReport 按ID获取报告
func (s *ReportService) GetReport(id string) (*models.EnhancementReport, error) {
	var record models.EnhancementReport
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, fmt.Errorf("查询增强报告失败: %w", err)
	}
	return &record, nil
}

// ListReports 分页查询报告，新报告在前
func (s *ReportService) ListReports(page, pageSize int) ([]models.EnhancementReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.Model(&models.EnhancementReport{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计增强报告失败: %w", err)
	}

	var records []models.EnhancementReport
	err := s.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询增强报告失败: %w", err)
	}

	return records, total, nil
}

// CleanupExpiredReports 删除超过保留天数的报告，返回删除行数
func (s *ReportService) CleanupExpiredReports(retentionDays int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -retentionDays)

	result := s.db.Where("created_at < ?", cutoffDate).Delete(&models.EnhancementReport{})
	if result.Error != nil {
		return 0, fmt.Errorf("删除过期增强报告失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func signalsToJSONB(signals models.Signals) (models.JSONB, error) {
	data, err := json.Marshal(signals)
	if err != nil {
		return nil, err
	}
	var result models.JSONB
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
