/*
 * @module service/enhancement/prompt
 * @description 提示文档组装器，生成发送给外部生成端点的固定结构指令文档
 * @architecture 分层架构 - 纯计算层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 文本+信号+标题 -> 固定模板填充 -> 指令文档
 * @rules 文档结构与字段顺序是下游消费方的兼容性契约，不得改动
 * @dependencies enhancement-service/service/models
 * @refs service/ai/invoker.go
 */

package enhancement

import (
	"fmt"
	"strconv"
	"strings"

	"enhancement-service/service/models"
)

// BuildPrompt 组装完整的增强框架指令文档
// 上下文信号块按信号向量声明顺序逐项渲染，工作产出原文以代码块围栏嵌入
func BuildPrompt(text string, s models.Signals, title string) string {
	lines := []string{
		"## Strategic Work Product Enhancement & Autonomous Improvement Framework — AI Prompt Engineering System v1.0",
		"",
		"### Objective",
		"You are an elite AI consultant specializing in work product optimization. Your mission is to thoroughly examine completed deliverables, autonomously identify enhancement opportunities, and propose intelligent capability improvements that elevate quality, effectiveness, and value.",
		"",
		"### Core Philosophy",
		"- Proactive Discovery: Actively seek opportunities rather than waiting for explicit gaps",
		"- Reasoned Innovation: Every suggestion must be grounded in clear rationale and best practices",
		"- Value Multiplication: Focus on enhancements that create compounding improvements",
		"",
		"### Multi-Dimensional Enhancement Analysis (8 Lenses)",
		"1. Functional Completeness",
		"2. Structural Integrity",
		"3. Clarity & Accessibility",
		"4. Scalability Potential",
		"5. Integration Readiness",
		"6. User Experience",
		"7. Future-Proofing",
		"8. Value Density",
		"",
		"### Required Output Format",
		"Provide your response in four phases:",
		"1) Deep Examination (map components, objectives, dependencies; no judgment)",
		"2) Opportunity Discovery (systematically apply 8 lenses)",
		"3) Proposal Formulation (What/Why/How/When/Measure + risk/trade-offs)",
		"4) Validation & Refinement (logic soundness, alignment, feasibility, downside mitigation)",
		"",
		"### Quality Standards",
		"- Specificity: implementable without clarification",
		"- Justification: clear rationale",
		"- Groundedness: best practices / evidence",
		"- Practicality: feasible within constraints",
		"- Value-Add: meaningful improvement",
		"- Alignment: supports objectives",
		"- Balance: acknowledges drawbacks",
		"",
		"### Context Signals (auto-extracted)",
		fmt.Sprintf("- Title: %s", title),
		fmt.Sprintf("- wordCount: %d", s.WordCount),
		fmt.Sprintf("- lineCount: %d", s.LineCount),
		fmt.Sprintf("- headingCount: %d", s.HeadingCount),
		fmt.Sprintf("- bulletCount: %d", s.BulletCount),
		fmt.Sprintf("- bulletDensity: %s", strconv.FormatFloat(s.BulletDensity, 'f', -1, 64)),
		fmt.Sprintf("- hasObjective: %t", s.HasObjective),
		fmt.Sprintf("- hasScope: %t", s.HasScope),
		fmt.Sprintf("- hasAssumptions: %t", s.HasAssumptions),
		fmt.Sprintf("- hasRisks: %t", s.HasRisks),
		fmt.Sprintf("- hasMetrics: %t", s.HasMetrics),
		fmt.Sprintf("- hasTimeline: %t", s.HasTimeline),
		fmt.Sprintf("- hasExamples: %t", s.HasExamples),
		fmt.Sprintf("- hasIntegration: %t", s.HasIntegration),
		fmt.Sprintf("- hasTesting: %t", s.HasTesting),
		fmt.Sprintf("- hasUserExperience: %t", s.HasUserExperience),
		"",
		"### Work Product (to analyze)",
		"```",
		strings.TrimSpace(text),
		"```",
	}

	return strings.Join(lines, "\n")
}
