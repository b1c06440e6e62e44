/*
 * @module service/bridge/folder_service_test
 * @description 项目目录服务单元测试，覆盖目录创建、路径记忆和导出写入
 * @architecture 测试层
 * @documentReference ai_docs/control_bridge_design.md
 * @stateFlow 配置临时导出根目录 -> 创建目录 -> 断言目录结构与审计行
 * @rules 目录创建幂等，导出文件落在Exports子目录
 * @dependencies enhancement-service/testutil, github.com/stretchr/testify/require
 * @refs service/bridge/folder_service.go
 */

package bridge

import (
	"os"
	"path/filepath"
	"testing"

	"enhancement-service/service/audit"
	"enhancement-service/service/config"
	"enhancement-service/service/models"
	"enhancement-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFolderTest(t *testing.T) (*FolderService, *testutil.TestDB, string) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	exportRoot := t.TempDir()
	configService := config.NewConfigService(tdb.DB)
	require.NoError(t, configService.SetConfig(models.ConfigKeyExportRoot, exportRoot, ""))
	auditService := audit.NewAuditService(tdb.DB, configService)

	return NewFolderService(configService, auditService), tdb, exportRoot
}

func TestFolderService_CreateProjectFolder(t *testing.T) {
	service, tdb, exportRoot := setupFolderTest(t)

	path, err := service.CreateProjectFolder("My Project", "alice")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(exportRoot, "My Project — Project Assets"), path)
	for _, sub := range []string{"Exports", "Logs", "Archive"} {
		info, err := os.Stat(filepath.Join(path, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// 路径被记忆到配置
	assert.Equal(t, path, service.ProjectFolderPath())

	var count int64
	tdb.DB.Model(&models.AuditEntry{}).
		Where("action = ? AND status = ?", "create_folder", models.StatusSuccess).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFolderService_CreateProjectFolder_DefaultName(t *testing.T) {
	service, _, exportRoot := setupFolderTest(t)

	path, err := service.CreateProjectFolder("", "alice")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(exportRoot, "Enhancement Engine — Project Assets"), path)
}

func TestFolderService_CreateProjectFolder_Idempotent(t *testing.T) {
	service, _, _ := setupFolderTest(t)

	first, err := service.CreateProjectFolder("Same", "alice")
	require.NoError(t, err)
	second, err := service.CreateProjectFolder("Same", "alice")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFolderService_ProjectFolderPath_EmptyBeforeCreate(t *testing.T) {
	service, _, _ := setupFolderTest(t)

	assert.Empty(t, service.ProjectFolderPath())
}

func TestFolderService_WriteExport(t *testing.T) {
	service, _, _ := setupFolderTest(t)

	// 项目目录不存在时先行创建
	path, err := service.WriteExport("output-test.md", "exported content", "alice")
	require.NoError(t, err)

	assert.Equal(t, "Exports", filepath.Base(filepath.Dir(path)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "exported content", string(content))
}
