/*
 * @module service/report/report_service_test
 * @description 增强报告服务单元测试，覆盖落库、查询、分页和保留期清理
 * @architecture 测试层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 初始化内存数据库 -> 保存报告 -> 断言查询与清理结果
 * @rules 每次保存产生新行，清理只删超过保留天数的报告
 * @dependencies enhancement-service/testutil, github.com/stretchr/testify/assert
 * @refs service/report/report_service.go
 */

package report

import (
	"fmt"
	"testing"
	"time"

	"enhancement-service/service/enhancement"
	"enhancement-service/service/models"
	"enhancement-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReportTest(t *testing.T) (*ReportService, *testutil.TestDB) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return NewReportService(tdb.DB), tdb
}

func TestReportService_SaveReport(t *testing.T) {
	service, _ := setupReportTest(t)

	engine := enhancement.NewEngine()
	pkg, err := engine.Generate(enhancement.GenerateInput{
		Text:      "Our objective is to ship.\n- step one\n- step two",
		Title:     "Launch Plan",
		Source:    "Docs",
		Mode:      models.ModeUI,
		CreatedBy: "alice",
	})
	require.NoError(t, err)

	record, err := service.SaveReport(pkg)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Launch Plan", record.Title)
	assert.Equal(t, "Docs", record.Source)
	assert.Equal(t, models.ModeUI, record.Mode)
	assert.Equal(t, "alice", record.CreatedBy)
	assert.Equal(t, pkg.WordCount, record.WordCount)
	assert.Equal(t, pkg.Analysis, record.Analysis)
	assert.Equal(t, pkg.Prompt, record.Prompt)

	// 信号向量以JSONB形式落库
	assert.Equal(t, true, record.Signals["hasObjective"])
	assert.EqualValues(t, pkg.WordCount, record.Signals["wordCount"])
}

func TestReportService_SaveReport_NilPackage(t *testing.T) {
	service, _ := setupReportTest(t)

	_, err := service.SaveReport(nil)

	assert.Error(t, err)
}

func TestReportService_SaveReport_EachSaveCreatesNewRow(t *testing.T) {
	service, _ := setupReportTest(t)
	pkg, err := enhancement.NewEngine().Generate(enhancement.GenerateInput{Text: "same body"})
	require.NoError(t, err)

	first, err := service.SaveReport(pkg)
	require.NoError(t, err)
	second, err := service.SaveReport(pkg)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	_, total, err := service.ListReports(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestReportService_GetReport(t *testing.T) {
	service, tdb := setupReportTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)
	created := factory.CreateEnhancementReport()

	record, err := service.GetReport(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, record.ID)

	_, err = service.GetReport("missing-id")
	assert.Error(t, err)
}

func TestReportService_ListReports_PaginationAndOrder(t *testing.T) {
	service, tdb := setupReportTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		createdAt := base.Add(time.Duration(i) * time.Minute)
		title := fmt.Sprintf("report_%d", i)
		factory.CreateEnhancementReport(func(r *models.EnhancementReport) {
			r.CreatedAt = createdAt
			r.Title = title
		})
	}

	records, total, err := service.ListReports(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, records, 2)
	// 新报告在前
	assert.Equal(t, "report_4", records[0].Title)
	assert.Equal(t, "report_3", records[1].Title)

	records, _, err = service.ListReports(3, 2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "report_0", records[0].Title)

	// 非法分页参数回退到默认值
	records, _, err = service.ListReports(-1, 0)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestReportService_CleanupExpiredReports(t *testing.T) {
	service, tdb := setupReportTest(t)
	factory := testutil.NewTestDataFactory(tdb.DB)

	factory.CreateEnhancementReport(func(r *models.EnhancementReport) {
		r.Title = "expired"
		r.CreatedAt = time.Now().AddDate(0, 0, -10)
	})
	factory.CreateEnhancementReport(func(r *models.EnhancementReport) {
		r.Title = "fresh"
		r.CreatedAt = time.Now().AddDate(0, 0, -1)
	})

	deleted, err := service.CleanupExpiredReports(7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	records, total, err := service.ListReports(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "fresh", records[0].Title)
}
