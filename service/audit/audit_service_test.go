/*
 * @module service/audit/audit_service_test
 * @description 审计日志服务单元测试，覆盖追加写入、行数裁剪、最近查询和幂等初始化
 * @architecture 测试层
 * @documentReference ai_docs/audit_log_design.md
 * @stateFlow 初始化内存数据库 -> 追加事件 -> 断言行内容与裁剪结果
 * @rules 日志行仅追加，裁剪只删最旧行，初始化标志置位后重复初始化必须无副作用
 * @dependencies enhancement-service/testutil, github.com/stretchr/testify/assert
 * @refs service/audit/audit_service.go
 */

package audit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"enhancement-service/service/config"
	"enhancement-service/service/models"
	"enhancement-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuditTest(t *testing.T) (*AuditService, *config.ConfigService, *testutil.TestDB) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	configService := config.NewConfigService(tdb.DB)
	return NewAuditService(tdb.DB, configService), configService, tdb
}

func TestAuditService_Append_ThirteenColumnRow(t *testing.T) {
	service, _, tdb := setupAuditTest(t)

	err := service.Append(Event{
		EventType:  models.EventTypeEnhancement,
		Action:     "run_enhancement",
		User:       "alice",
		Status:     models.StatusSuccess,
		DurationMs: 120,
		Meta:       models.JSONB{"mode": "CONTROL_BRIDGE"},
	})
	require.NoError(t, err)

	var entry models.AuditEntry
	require.NoError(t, tdb.DB.First(&entry).Error)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, int64(1), entry.Seq)
	// 时间戳为毫秒精度的UTC ISO格式
	assert.Len(t, entry.TimestampISOMs, 24)
	assert.True(t, strings.HasSuffix(entry.TimestampISOMs, "Z"))
	assert.Len(t, entry.DateLocal, 10)
	assert.Len(t, entry.TimeLocal, 8)
	assert.Greater(t, entry.EpochMs, int64(0))
	assert.Equal(t, models.EventTypeEnhancement, entry.EventType)
	assert.Equal(t, "run_enhancement", entry.Action)
	assert.Equal(t, "alice", entry.User)
	assert.Equal(t, models.StatusSuccess, entry.Status)
	assert.Equal(t, int64(120), entry.DurationMs)
	assert.True(t, strings.HasPrefix(entry.RemainingQuotaHint, "uptime="))
	assert.Empty(t, entry.ErrorMessage)
	assert.Contains(t, entry.MetaJSON, `"mode":"CONTROL_BRIDGE"`)
}

func TestAuditService_Append_Defaults(t *testing.T) {
	service, _, tdb := setupAuditTest(t)

	require.NoError(t, service.Append(Event{
		EventType: models.EventTypeUI,
		Action:    "trigger_run",
	}))

	var entry models.AuditEntry
	require.NoError(t, tdb.DB.First(&entry).Error)

	assert.Equal(t, "unknown", entry.User)
	assert.Equal(t, models.StatusSuccess, entry.Status)
	assert.Equal(t, "{}", entry.MetaJSON)
}

func TestAuditService_Append_SequentialSeq(t *testing.T) {
	service, _, _ := setupAuditTest(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, service.Append(Event{
			EventType: models.EventTypeSystem,
			Action:    fmt.Sprintf("action_%d", i),
		}))
	}

	entries, err := service.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// 新行在前，Seq严格递减
	assert.Equal(t, "action_2", entries[0].Action)
	assert.Equal(t, "action_0", entries[2].Action)
	assert.Greater(t, entries[0].Seq, entries[1].Seq)
	assert.Greater(t, entries[1].Seq, entries[2].Seq)
}

func TestAuditService_AppendFailure(t *testing.T) {
	service, _, tdb := setupAuditTest(t)

	require.NoError(t, service.AppendFailure(
		models.EventTypeAI, "call_ai_http_endpoint", "bob", errors.New("连接被拒绝")))

	var entry models.AuditEntry
	require.NoError(t, tdb.DB.First(&entry).Error)

	assert.Equal(t, models.StatusFailure, entry.Status)
	assert.Equal(t, "连接被拒绝", entry.ErrorMessage)
	assert.NotEmpty(t, entry.StackTrace)
}

func TestAuditService_Recent_LimitClamping(t *testing.T) {
	service, _, tdb := setupAuditTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	for i := 0; i < 60; i++ {
		factory.CreateAuditEntry()
	}

	// 0 回退到默认50条
	entries, err := service.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultRecentLimit)

	// 负数钳到下限1条
	entries, err = service.Recent(-7)
	require.NoError(t, err)
	assert.Len(t, entries, MinRecentLimit)

	// 超大值钳到上限200条，但只有60行
	entries, err = service.Recent(9999)
	require.NoError(t, err)
	assert.Len(t, entries, 60)
}

func TestAuditService_AppendTrimsOverLimit(t *testing.T) {
	service, configService, _ := setupAuditTest(t)
	require.NoError(t, configService.SetConfig(models.ConfigKeyAuditMaxRows, "10", ""))

	for i := 0; i < 15; i++ {
		require.NoError(t, service.Append(Event{
			EventType: models.EventTypeSystem,
			Action:    fmt.Sprintf("action_%d", i),
		}))
	}

	count, err := service.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)

	// 最旧的行被裁掉，最新的行保留
	entries, err := service.Recent(200)
	require.NoError(t, err)
	assert.Equal(t, "action_14", entries[0].Action)
	assert.Equal(t, "action_5", entries[len(entries)-1].Action)
}

func TestAuditService_Trim(t *testing.T) {
	service, configService, tdb := setupAuditTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)
	require.NoError(t, configService.SetConfig(models.ConfigKeyAuditMaxRows, "10", ""))

	// 直接建行绕过追加裁剪
	for i := 0; i < 15; i++ {
		factory.CreateAuditEntry()
	}

	deleted, err := service.Trim()
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)

	count, err := service.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestAuditService_Trim_NoopUnderLimit(t *testing.T) {
	service, _, tdb := setupAuditTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	for i := 0; i < 5; i++ {
		factory.CreateAuditEntry()
	}

	deleted, err := service.Trim()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestAuditService_EnsureStore_Idempotent(t *testing.T) {
	service, configService, tdb := setupAuditTest(t)

	require.NoError(t, service.EnsureStore())

	value, err := configService.GetConfig(models.ConfigKeyInitDone)
	require.NoError(t, err)
	assert.Equal(t, "INIT_DONE", value)

	var count int64
	tdb.DB.Model(&models.AuditEntry{}).Where("action = ?", "initialize_framework").Count(&count)
	assert.Equal(t, int64(1), count)

	// 重复调用不产生新的初始化事件
	require.NoError(t, service.EnsureStore())

	tdb.DB.Model(&models.AuditEntry{}).Where("action = ?", "initialize_framework").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAuditService_EnsureStore_SkipsAfterRestart(t *testing.T) {
	service, _, tdb := setupAuditTest(t)
	require.NoError(t, service.EnsureStore())

	// 模拟进程重启：同一数据库上新建服务实例
	restarted := NewAuditService(tdb.DB, config.NewConfigService(tdb.DB))
	require.NoError(t, restarted.EnsureStore())

	var count int64
	tdb.DB.Model(&models.AuditEntry{}).Where("action = ?", "initialize_framework").Count(&count)
	assert.Equal(t, int64(1), count)
}
