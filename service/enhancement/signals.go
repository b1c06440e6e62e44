/*
 * @module service/enhancement/signals
 * @description 文本信号提取器，基于关键词正则和结构计数从工作产出文本派生信号向量
 * @architecture 分层架构 - 纯计算层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 原始文本 -> 行尾归一化 -> 计数与主题标志提取 -> 信号向量
 * @rules 纯函数，无副作用，相同输入必须产生逐位相同的输出；空文本产生全零向量
 * @dependencies enhancement-service/service/models
 * @refs service/enhancement/lenses.go, service/enhancement/proposals.go
 */

package enhancement

import (
	"math"
	"regexp"
	"strings"

	"enhancement-service/service/models"
)

// 主题标志正则，大小写不敏感，作用于整篇归一化文本
var (
	reObjective      = regexp.MustCompile(`(?i)objective|goal|purpose|mission`)
	reScope          = regexp.MustCompile(`(?i)scope|in scope|out of scope|boundar`)
	reAssumptions    = regexp.MustCompile(`(?i)assumption|assume|constraint`)
	reRisks          = regexp.MustCompile(`(?i)risk|mitigation|trade-?off`)
	reMetrics        = regexp.MustCompile(`(?i)metric|measure|kpi|success criteria|acceptance`)
	reTimeline       = regexp.MustCompile(`(?i)timeline|when|phase|milestone|roadmap`)
	reExamples       = regexp.MustCompile(`(?i)example|e\.g\.|for instance|sample`)
	reIntegration    = regexp.MustCompile(`(?i)integration|api|connect|compatib|interoper`)
	reTesting        = regexp.MustCompile(`(?i)test|validation|verify|qa`)
	reUserExperience = regexp.MustCompile(`(?i)ux|user experience|workflow|friction|usability`)
)

// 结构计数正则
var (
	reMarkdownHeading = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+\S+`)
	reCapsHeading     = regexp.MustCompile(`(?m)^\s*[A-Z][A-Z0-9 \-]{4,}\s*$`)
	reBullet          = regexp.MustCompile(`(?m)^\s*[-*•]\s+\S+`)
)

// ExtractSignals 从工作产出文本提取信号向量
// 行尾统一为\n后做整文匹配，标题计数为markdown标题与全大写短行之和
func ExtractSignals(text string) models.Signals {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	wordCount := len(strings.Fields(normalized))
	lineCount := strings.Count(normalized, "\n") + 1
	headingCount := len(reMarkdownHeading.FindAllString(normalized, -1)) +
		len(reCapsHeading.FindAllString(normalized, -1))
	bulletCount := len(reBullet.FindAllString(normalized, -1))

	// 每行要点密度，保留3位小数；无正文时恒为0
	density := 0.0
	if wordCount > 0 {
		density = math.Round(float64(bulletCount)/float64(max(1, lineCount))*1000) / 1000
	}

	return models.Signals{
		WordCount:     wordCount,
		LineCount:     lineCount,
		HeadingCount:  headingCount,
		BulletCount:   bulletCount,
		BulletDensity: density,

		HasObjective:      reObjective.MatchString(normalized),
		HasScope:          reScope.MatchString(normalized),
		HasAssumptions:    reAssumptions.MatchString(normalized),
		HasRisks:          reRisks.MatchString(normalized),
		HasMetrics:        reMetrics.MatchString(normalized),
		HasTimeline:       reTimeline.MatchString(normalized),
		HasExamples:       reExamples.MatchString(normalized),
		HasIntegration:    reIntegration.MatchString(normalized),
		HasTesting:        reTesting.MatchString(normalized),
		HasUserExperience: reUserExperience.MatchString(normalized),
	}
}
