/*
 * @module service/bridge/folder_service
 * @description 项目目录服务，负责项目资产目录的创建、路径记忆和输出文件导出
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 创建请求 -> 目录就绪 -> 路径落库 -> 文件导出
 * @rules 目录创建幂等，已存在时复用并刷新路径配置
 * @dependencies enhancement-service/service/audit, enhancement-service/service/config
 * @refs service/bridge/dispatcher.go
 */

package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"enhancement-service/service/audit"
	"enhancement-service/service/config"
	"enhancement-service/service/models"
)

// DefaultProjectName 未指定项目名时的缺省名
const DefaultProjectName = "Enhancement Engine"

// 项目目录固定子目录
var projectSubDirs = []string{"Exports", "Logs", "Archive"}

// FolderService 项目目录服务
type FolderService struct {
	configService *config.ConfigService
	auditService  *audit.AuditService
}

// NewFolderService 创建项目目录服务实例
func NewFolderService(configService *config.ConfigService, auditService *audit.AuditService) *FolderService {
	return &FolderService{
		configService: configService,
		auditService:  auditService,
	}
}

// CreateProjectFolder 创建项目资产目录及固定子目录，返回目录路径
// 目录名为 "<项目名> — Project Assets"，已存在时直接复用
func (s *FolderService) CreateProjectFolder(name, actor string) (string, error) {
	if name == "" {
		name = DefaultProjectName
	}

	root := s.configService.GetExportRootDir()
	folderPath := filepath.Join(root, fmt.Sprintf("%s — Project Assets", name))

	startTime := time.Now()
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		s.auditService.AppendFailure(models.EventTypeDrive, "create_folder", actor, err)
		return "", fmt.Errorf("创建项目目录失败: %w", err)
	}
	for _, sub := range projectSubDirs {
		if err := os.MkdirAll(filepath.Join(folderPath, sub), 0o755); err != nil {
			s.auditService.AppendFailure(models.EventTypeDrive, "create_folder", actor, err)
			return "", fmt.Errorf("创建子目录 %s 失败: %w", sub, err)
		}
	}

	if err := s.configService.SetConfig(models.ConfigKeyProjectFolderPath, folderPath, "项目资产目录路径"); err != nil {
		return "", fmt.Errorf("记录项目目录路径失败: %w", err)
	}

	s.auditService.Append(audit.Event{
		EventType:  models.EventTypeDrive,
		Action:     "create_folder",
		User:       actor,
		Status:     models.StatusSuccess,
		DurationMs: time.Since(startTime).Milliseconds(),
		Meta:       models.JSONB{"path": folderPath},
	})

	return folderPath, nil
}

// ProjectFolderPath 返回已记忆的项目目录路径，未创建时为空串
func (s *FolderService) ProjectFolderPath() string {
	return s.configService.GetConfigOrDefault(models.ConfigKeyProjectFolderPath, "")
}

// WriteExport 将内容写入项目目录的 Exports 子目录，返回文件路径
// 项目目录不存在时先行创建
func (s *FolderService) WriteExport(filename, content, actor string) (string, error) {
	folderPath := s.ProjectFolderPath()
	if folderPath == "" {
		created, err := s.CreateProjectFolder("", actor)
		if err != nil {
			return "", err
		}
		folderPath = created
	}

	exportPath := filepath.Join(folderPath, "Exports", filename)
	if err := os.WriteFile(exportPath, []byte(content), 0o644); err != nil {
		s.auditService.AppendFailure(models.EventTypeDrive, "write_export", actor, err)
		return "", fmt.Errorf("写入导出文件失败: %w", err)
	}

	s.auditService.Append(audit.Event{
		EventType: models.EventTypeDrive,
		Action:    "write_export",
		User:      actor,
		Status:    models.StatusSuccess,
		Meta:      models.JSONB{"path": exportPath, "bytes": len(content)},
	})

	return exportPath, nil
}
