/*
 * @module service/enhancement/engine
 * @description 增强引擎，编排信号提取、透镜评分、提案合成和提示组装，产出完整增强包
 * @architecture 分层架构 - 业务服务层（纯计算编排）
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 输入校验 -> 信号提取 -> 分析渲染 -> 提案渲染 -> 提示组装 -> 增强包
 * @rules 引擎无任何I/O副作用，空文本在进入引擎前被拒绝，增强包生成后不可变更
 * @dependencies enhancement-service/service/models
 * @refs service/bridge/dispatcher.go, api/controllers/enhancement_controller.go
 */

package enhancement

import (
	"errors"
	"strings"
	"time"

	"enhancement-service/service/models"
)

// ErrEmptyInput 工作产出文本为空
var ErrEmptyInput = errors.New("工作产出文本为空")

// DefaultTitle 无法从文本推断标题时的缺省标题
const DefaultTitle = "Untitled Work Product"

// 标题截断长度（按rune计）
const maxTitleLen = 120

// GenerateInput 增强引擎输入
type GenerateInput struct {
	Text      string
	Title     string
	Source    string
	Mode      string
	CreatedBy string
}

// Engine 增强引擎
type Engine struct{}

// NewEngine 创建增强引擎实例
func NewEngine() *Engine {
	return &Engine{}
}

// Generate 生成完整增强包
// 标题缺省时取首个非空行（超过120字符截断并附省略号），来源缺省为Unknown
func (e *Engine) Generate(input GenerateInput) (*models.EnhancementPackage, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = GuessTitle(text)
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = "Unknown"
	}

	mode := input.Mode
	switch mode {
	case models.ModeSelection, models.ModeUI, models.ModeControlBridge:
	default:
		mode = models.ModeUnknown
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = "unknown"
	}

	signals := ExtractSignals(text)

	return &models.EnhancementPackage{
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  createdBy,
		Title:      title,
		Source:     source,
		Mode:       mode,
		WordCount:  signals.WordCount,
		Signals:    signals,
		Analysis:   BuildAnalysis(signals, title),
		Proposals:  BuildProposals(signals, title),
		Prompt:     BuildPrompt(text, signals, title),
		AIResponse: "",
	}, nil
}

// GuessTitle 从首个非空行推断标题
func GuessTitle(text string) string {
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		first := strings.TrimSpace(line)
		if first == "" {
			continue
		}
		runes := []rune(first)
		if len(runes) <= maxTitleLen {
			return first
		}
		return strings.TrimSpace(string(runes[:maxTitleLen])) + "…"
	}
	return DefaultTitle
}
