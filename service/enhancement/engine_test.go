/*
 * @module service/enhancement/engine_test
 * @description 增强引擎单元测试，覆盖输入校验、缺省推断、标题猜测和增强包组装
 * @architecture 测试层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 构造输入 -> 生成增强包 -> 断言各字段
 * @rules 空文本必须返回ErrEmptyInput，引擎纯计算无I/O
 * @dependencies github.com/stretchr/testify/assert
 * @refs service/enhancement/engine.go
 */

package enhancement

import (
	"strings"
	"testing"

	"enhancement-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Generate_EmptyInput(t *testing.T) {
	engine := NewEngine()

	for _, text := range []string{"", "   ", "\n\t\n"} {
		pkg, err := engine.Generate(GenerateInput{Text: text})
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, pkg)
	}
}

func TestEngine_Generate_Defaults(t *testing.T) {
	engine := NewEngine()

	pkg, err := engine.Generate(GenerateInput{Text: "Release Notes\n\nshipped the thing"})
	require.NoError(t, err)

	assert.Equal(t, "Release Notes", pkg.Title)
	assert.Equal(t, "Unknown", pkg.Source)
	assert.Equal(t, models.ModeUnknown, pkg.Mode)
	assert.Equal(t, "unknown", pkg.CreatedBy)
	assert.Empty(t, pkg.AIResponse)
	assert.False(t, pkg.CreatedAt.IsZero())
}

func TestEngine_Generate_ExplicitFields(t *testing.T) {
	engine := NewEngine()

	pkg, err := engine.Generate(GenerateInput{
		Text:      "some work product body",
		Title:     "Quarterly Plan",
		Source:    "Docs",
		Mode:      models.ModeControlBridge,
		CreatedBy: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "Quarterly Plan", pkg.Title)
	assert.Equal(t, "Docs", pkg.Source)
	assert.Equal(t, models.ModeControlBridge, pkg.Mode)
	assert.Equal(t, "alice", pkg.CreatedBy)
	assert.Equal(t, 4, pkg.WordCount)
}

func TestEngine_Generate_InvalidModeFallsBack(t *testing.T) {
	engine := NewEngine()

	pkg, err := engine.Generate(GenerateInput{Text: "body", Mode: "BATCH"})
	require.NoError(t, err)

	assert.Equal(t, models.ModeUnknown, pkg.Mode)
}

func TestEngine_Generate_PackageSections(t *testing.T) {
	engine := NewEngine()
	text := "# Proposal\n\nOur objective is to improve QA testing.\n- step one\n- step two"

	pkg, err := engine.Generate(GenerateInput{Text: text, Title: "Proposal", Mode: models.ModeUI})
	require.NoError(t, err)

	assert.Equal(t, ExtractSignals(text), pkg.Signals)
	assert.Contains(t, pkg.Analysis, "## 🧠 Enhancement Analysis: Proposal")
	assert.Contains(t, pkg.Proposals, "## 📌 Prioritized Enhancement Proposals: Proposal")
	assert.Contains(t, pkg.Prompt, "### Work Product (to analyze)")
}

func TestGuessTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"首行即标题", "My Title\nbody text", "My Title"},
		{"跳过空行", "\n\n  \nActual Title\nbody", "Actual Title"},
		{"去除首尾空白", "  Padded Title  \nbody", "Padded Title"},
		{"全空白文本用缺省标题", "   \n\t\n", DefaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GuessTitle(tt.text))
		})
	}
}

func TestGuessTitle_LongLineTruncated(t *testing.T) {
	long := strings.Repeat("标题", 100)

	title := GuessTitle(long)

	runes := []rune(title)
	assert.Equal(t, "…", string(runes[len(runes)-1]))
	// 120字符截断 + 1个省略号
	assert.Len(t, runes, 121)
}

func TestBuildPrompt_Structure(t *testing.T) {
	text := "  Our objective is clear.  "
	s := ExtractSignals(strings.TrimSpace(text))

	prompt := BuildPrompt(text, s, "Demo Title")

	assert.True(t, strings.HasPrefix(prompt, "## Strategic Work Product Enhancement"))
	assert.Contains(t, prompt, "### Context Signals (auto-extracted)")
	assert.Contains(t, prompt, "- Title: Demo Title")
	assert.Contains(t, prompt, "- wordCount: 4")
	assert.Contains(t, prompt, "- hasObjective: true")
	assert.Contains(t, prompt, "- hasTesting: false")
	// 工作产出原文去除首尾空白后以代码块围栏嵌入
	assert.Contains(t, prompt, "```\nOur objective is clear.\n```")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	text := "same input every time"
	s := ExtractSignals(text)

	assert.Equal(t, BuildPrompt(text, s, "T"), BuildPrompt(text, s, "T"))
}
