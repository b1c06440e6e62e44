/*
 * @module service/enhancement/proposals
 * @description 增强提案合成器，按固定规则序列检测信号缺口并生成分级提案
 * @architecture 分层架构 - 纯计算层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 信号向量 -> 顺序规则检查 -> 缺口触发提案 -> 提案报告渲染
 * @rules 规则顺序即输出顺序，优先级层级不做二次排序；无缺口时返回固定提示文案而非空列表
 * @dependencies enhancement-service/service/models
 * @refs service/enhancement/signals.go
 */

package enhancement

import (
	"fmt"
	"strings"

	"enhancement-service/service/models"
)

// Proposal 单条增强提案
type Proposal struct {
	Priority string `json:"priority"`
	What     string `json:"what"`
	Why      string `json:"why"`
	How      string `json:"how"`
	When     string `json:"when"`
	Measure  string `json:"measure"`
	Risks    string `json:"risks"`
}

// NoProposalsMessage 无缺口时的固定提示文案
const NoProposalsMessage = "No proposals generated (content already signals strong completeness)."

// SynthesizeProposals 按固定顺序应用缺口规则生成提案列表
// 规则顺序是对外契约：P1（目标/指标/测试）-> P2（结构/示例/集成）-> P3（风险/假设）
func SynthesizeProposals(s models.Signals) []Proposal {
	var proposals []Proposal

	// 核心基础缺口
	if !s.HasObjective {
		proposals = append(proposals, Proposal{
			Priority: "P1 (High Impact / Low Effort)",
			What:     "Add a crisp Objective + Non-Goals section",
			Why:      "A clear objective reduces ambiguity, prevents scope creep, and makes evaluation measurable.",
			How:      "Create a 5–7 line Objective, 3–5 Non-Goals, and a one-paragraph Context. Place at the top.",
			When:     "Immediately (next edit)",
			Measure:  "Readers can summarize purpose in 1 sentence; fewer clarifying questions from users/stakeholders.",
			Risks:    "Non-goals might feel restrictive; mitigate by adding a 'Future Considerations' section.",
		})
	}

	if !s.HasMetrics {
		proposals = append(proposals, Proposal{
			Priority: "P1 (High Impact / Low Effort)",
			What:     "Define success criteria and measurable acceptance tests",
			Why:      "Without success criteria, quality is subjective and delivery readiness is unclear.",
			How:      "Add 5–10 acceptance criteria (Given/When/Then or checklist). Include performance or quality thresholds if applicable.",
			When:     "Immediately after Objective",
			Measure:  "Pass/fail checks exist for release readiness; reduced rework.",
			Risks:    "Over-specifying can slow iteration; mitigate by splitting v1 vs v2 criteria.",
		})
	}

	if !s.HasTesting {
		proposals = append(proposals, Proposal{
			Priority: "P1 (High Impact / Low Effort)",
			What:     "Add a testing + validation protocol (happy path + edge cases)",
			Why:      "Testing prevents regressions and makes the deliverable runnable by others without guesswork.",
			How:      "Include: setup steps, test data, expected outputs, failure modes, and troubleshooting guidance.",
			When:     "Before sharing broadly",
			Measure:  "A new user can run tests and reproduce expected outputs in <10 minutes.",
			Risks:    "Test coverage adds time; mitigate with a minimal 'smoke test' first.",
		})
	}

	// 结构与体验升级
	if s.HeadingCount < 4 {
		proposals = append(proposals, Proposal{
			Priority: "P2 (Medium Impact / Low Effort)",
			What:     "Add a consistent section architecture (Overview → Inputs → Process → Outputs → Ops)",
			Why:      "Consistent structure increases scannability and accelerates adoption.",
			How:      "Introduce H2 sections and a short table of contents; ensure each section ends with a 'So what / Next' line.",
			When:     "Next refinement pass",
			Measure:  "Readers can locate any key info in under 30 seconds.",
			Risks:    "More headings can feel heavy; mitigate by keeping sections short and using collapsible details where possible.",
		})
	}

	if !s.HasExamples {
		proposals = append(proposals, Proposal{
			Priority: "P2 (Medium Impact / Low Effort)",
			What:     "Add examples (before/after, sample data, worked walkthrough)",
			Why:      "Examples de-risk interpretation and reduce onboarding friction dramatically.",
			How:      "Add at least: one minimal example, one realistic example, and one edge-case example.",
			When:     "After structure pass",
			Measure:  "Fewer user questions; fewer incorrect uses.",
			Risks:    "Examples can become outdated; mitigate by labeling and versioning them.",
		})
	}

	if !s.HasIntegration {
		proposals = append(proposals, Proposal{
			Priority: "P2 (Medium Impact / Medium Effort)",
			What:     "Add integration surfaces (interfaces, data contracts, connectors)",
			Why:      "Integration readiness multiplies value by reducing manual handoffs.",
			How:      "Define input/output schemas, file formats, and any API boundaries; document auth/permissions.",
			When:     "When preparing for productionization",
			Measure:  "Reduction in manual steps; fewer copy/paste operations; successful cross-tool flow.",
			Risks:    "Integrations can add complexity; mitigate by making them optional modules.",
		})
	}

	// 可扩展性与前瞻性
	if !s.HasRisks {
		proposals = append(proposals, Proposal{
			Priority: "P3 (Medium Impact / Low Effort)",
			What:     "Add risks, trade-offs, and mitigations section",
			Why:      "Acknowledging risks improves decision quality and avoids hidden failure modes.",
			How:      "List top 5 risks, triggers, mitigations, and 'owner' for each.",
			When:     "Before final sign-off",
			Measure:  "Risks are explicit, tracked, and reviewed at milestones.",
			Risks:    "May surface uncomfortable constraints; mitigate by framing as proactive resilience.",
		})
	}

	if !s.HasAssumptions {
		proposals = append(proposals, Proposal{
			Priority: "P3 (Medium Impact / Low Effort)",
			What:     "Add assumptions and constraints (permissions, scale limits, dependencies)",
			Why:      "Assumptions define operating boundaries and prevent misapplication.",
			How:      "Document environment assumptions, required permissions, data size limits, and dependencies.",
			When:     "Before deployment or sharing",
			Measure:  "Fewer failures from incorrect environment; faster debugging.",
			Risks:    "Too many constraints can discourage users; mitigate with recommended defaults.",
		})
	}

	return proposals
}

// BuildProposals 渲染分级提案报告
func BuildProposals(s models.Signals, title string) string {
	proposals := SynthesizeProposals(s)

	header := strings.Join([]string{
		fmt.Sprintf("## 📌 Prioritized Enhancement Proposals: %s", EscapeMarkdown(title)),
		fmt.Sprintf("**Built from signals:** objective=%t, metrics=%t, testing=%t, examples=%t, integration=%t",
			s.HasObjective, s.HasMetrics, s.HasTesting, s.HasExamples, s.HasIntegration),
		"---",
	}, "\n")

	if len(proposals) == 0 {
		return header + "\n\n" + NoProposalsMessage
	}

	blocks := make([]string, 0, len(proposals))
	for _, p := range proposals {
		blocks = append(blocks, renderProposal(p))
	}

	return header + "\n\n" + strings.Join(blocks, "\n\n")
}

func renderProposal(p Proposal) string {
	return strings.Join([]string{
		fmt.Sprintf("### %s — %s", p.Priority, p.What),
		fmt.Sprintf("**Why:** %s", p.Why),
		fmt.Sprintf("**How:** %s", p.How),
		fmt.Sprintf("**When:** %s", p.When),
		fmt.Sprintf("**Measure:** %s", p.Measure),
		fmt.Sprintf("**Risks / Trade-offs:** %s", p.Risks),
	}, "\n")
}
