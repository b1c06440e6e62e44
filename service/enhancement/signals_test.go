/*
 * @module service/enhancement/signals_test
 * @description 信号提取器单元测试，覆盖结构计数、主题标志和行尾归一化
 * @architecture 测试层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 构造文本 -> 提取信号 -> 断言向量字段
 * @rules 测试不依赖外部资源，纯内存执行
 * @dependencies github.com/stretchr/testify/assert
 * @refs service/enhancement/signals.go
 */

package enhancement

import (
	"strings"
	"testing"

	"enhancement-service/service/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignals_EmptyText(t *testing.T) {
	s := ExtractSignals("")

	assert.Equal(t, 0, s.WordCount)
	assert.Equal(t, 1, s.LineCount)
	assert.Equal(t, 0, s.HeadingCount)
	assert.Equal(t, 0, s.BulletCount)
	assert.Equal(t, 0.0, s.BulletDensity)
	assert.False(t, s.HasObjective)
	assert.False(t, s.HasTesting)
}

func TestExtractSignals_Counts(t *testing.T) {
	text := "alpha beta\ngamma"

	s := ExtractSignals(text)

	assert.Equal(t, 3, s.WordCount)
	assert.Equal(t, 2, s.LineCount)
	assert.Equal(t, 0.0, s.BulletDensity)
}

func TestExtractSignals_CRLFNormalization(t *testing.T) {
	// CRLF与LF文本必须产生相同的信号向量
	crlf := ExtractSignals("alpha\r\nbeta\r\ngamma")
	lf := ExtractSignals("alpha\nbeta\ngamma")

	assert.Equal(t, lf, crlf)
	assert.Equal(t, 3, crlf.LineCount)
}

func TestExtractSignals_Headings(t *testing.T) {
	text := strings.Join([]string{
		"# Main Title",
		"## Sub Section",
		"OVERVIEW SECTION",
		"normal prose line",
	}, "\n")

	s := ExtractSignals(text)

	// 2个markdown标题 + 1个全大写短行
	assert.Equal(t, 3, s.HeadingCount)
}

func TestExtractSignals_BulletsAndDensity(t *testing.T) {
	text := strings.Join([]string{
		"- first item",
		"* second item",
		"• third item",
		"plain line",
	}, "\n")

	s := ExtractSignals(text)

	assert.Equal(t, 3, s.BulletCount)
	assert.Equal(t, 4, s.LineCount)
	// 3/4 = 0.75，保留3位小数
	assert.Equal(t, 0.75, s.BulletDensity)
}

func TestExtractSignals_TopicFlags(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		checker func(models.Signals) bool
	}{
		{"objective关键词", "Our objective is clear.", func(s models.Signals) bool { return s.HasObjective }},
		{"scope关键词", "This is out of scope.", func(s models.Signals) bool { return s.HasScope }},
		{"assumption关键词", "We assume nothing.", func(s models.Signals) bool { return s.HasAssumptions }},
		{"risk关键词", "There is a trade-off here.", func(s models.Signals) bool { return s.HasRisks }},
		{"metric关键词", "Track the KPI weekly.", func(s models.Signals) bool { return s.HasMetrics }},
		{"timeline关键词", "Each milestone matters.", func(s models.Signals) bool { return s.HasTimeline }},
		{"example关键词", "Some values, e.g. one.", func(s models.Signals) bool { return s.HasExamples }},
		{"integration关键词", "It must interoperate.", func(s models.Signals) bool { return s.HasIntegration }},
		{"testing关键词", "Run QA before release.", func(s models.Signals) bool { return s.HasTesting }},
		{"ux关键词", "Improve usability first.", func(s models.Signals) bool { return s.HasUserExperience }},
		{"大小写不敏感", "OBJECTIVE AND MISSION", func(s models.Signals) bool { return s.HasObjective }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(ExtractSignals(tt.text)))
		})
	}
}

func TestExtractSignals_NoFalsePositives(t *testing.T) {
	s := ExtractSignals("a short note about nothing in particular")

	assert.False(t, s.HasObjective)
	assert.False(t, s.HasScope)
	assert.False(t, s.HasAssumptions)
	assert.False(t, s.HasRisks)
	assert.False(t, s.HasMetrics)
	assert.False(t, s.HasExamples)
	assert.False(t, s.HasIntegration)
	assert.False(t, s.HasTesting)
	assert.False(t, s.HasUserExperience)
}

func TestExtractSignals_Deterministic(t *testing.T) {
	text := "# Plan\n- objective: ship\n- test: later"

	first := ExtractSignals(text)
	second := ExtractSignals(text)

	assert.Equal(t, first, second)
}
