/*
 * @module service/enhancement/lenses
 * @description 八维透镜评分器，按固定增量表对信号向量打分并渲染分析报告
 * @architecture 分层架构 - 纯计算层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 信号向量 -> 逐透镜评分 -> 观察与追问生成 -> 分析报告渲染
 * @rules 分数区间[1,5]，满足条件越多分数单调不减，上限用min(5,score)封顶
 * @dependencies enhancement-service/service/models
 * @refs service/enhancement/signals.go
 */

package enhancement

import (
	"fmt"
	"strings"

	"enhancement-service/service/models"
)

// LensScore 单个透镜的评分结果
type LensScore struct {
	Name         string   `json:"name"`
	Score        int      `json:"score"`
	Observations []string `json:"observations"`
	Questions    []string `json:"questions"`
}

// 评分函数，基准分1分（价值密度2分），按条件递增，封顶5分

func scoreCompleteness(s models.Signals) int {
	score := 1
	if s.HasObjective {
		score++
	}
	if s.HasScope {
		score++
	}
	if s.HasMetrics {
		score++
	}
	if s.HasTesting {
		score++
	}
	return min(5, score)
}

func scoreStructure(s models.Signals) int {
	score := 1
	if s.HeadingCount >= 4 {
		score++
	}
	if s.BulletCount >= 8 {
		score++
	}
	if s.WordCount >= 200 {
		score++
	}
	if s.WordCount >= 800 {
		score++
	}
	return min(5, score)
}

func scoreClarity(s models.Signals) int {
	score := 1
	if s.HasExamples {
		score++
	}
	if s.HasTesting {
		score++
	}
	if s.HeadingCount >= 4 {
		score++
	}
	if s.BulletCount >= 8 {
		score++
	}
	return min(5, score)
}

func scoreScalability(s models.Signals) int {
	score := 1
	if s.HasTimeline {
		score++
	}
	if s.HasAssumptions {
		score++
	}
	if s.HasRisks {
		score++
	}
	if s.HasIntegration {
		score++
	}
	return min(5, score)
}

func scoreIntegration(s models.Signals) int {
	score := 1
	if s.HasIntegration {
		score += 2
	}
	if s.HasScope {
		score++
	}
	if s.HasAssumptions {
		score++
	}
	return min(5, score)
}

func scoreUserExperience(s models.Signals) int {
	score := 1
	if s.HasUserExperience {
		score += 2
	}
	if s.HasExamples {
		score++
	}
	if s.HasTesting {
		score++
	}
	return min(5, score)
}

func scoreFutureProof(s models.Signals) int {
	score := 1
	if s.HasAssumptions {
		score++
	}
	if s.HasRisks {
		score += 2
	}
	if s.HasTimeline {
		score++
	}
	return min(5, score)
}

func scoreValueDensity(s models.Signals) int {
	score := 2
	if s.HeadingCount >= 4 {
		score++
	}
	if s.BulletCount >= 8 {
		score++
	}
	if s.WordCount >= 400 {
		score++
	}
	return min(5, score)
}

// ScoreLenses 对信号向量执行全部八个透镜的评分
// 透镜顺序固定，观察内容依赖信号，追问为透镜固有问题
func ScoreLenses(s models.Signals) []LensScore {
	return []LensScore{
		{
			Name:  "1) Functional Completeness",
			Score: scoreCompleteness(s),
			Observations: []string{
				pick(s.HasObjective,
					"Objective/purpose language present.",
					"Objective/purpose language is not explicit; consider a clear Objective section."),
				pick(s.HasScope,
					"Scope boundaries appear defined.",
					"Scope boundaries are unclear; add in-scope / out-of-scope."),
				pick(s.HasMetrics,
					"Success/metrics language detected.",
					"Success criteria/metrics not obvious; add measurable acceptance criteria."),
			},
			Questions: []string{
				"Does it achieve all stated objectives end-to-end with no dependency gaps?",
				"What adjacent capabilities would extend reach without bloating scope?",
				"What is the minimum success criteria for v1, and what is v2?",
			},
		},
		{
			Name:  "2) Structural Integrity",
			Score: scoreStructure(s),
			Observations: []string{
				pick(s.HeadingCount > 3,
					fmt.Sprintf("Multiple headings detected (%d).", s.HeadingCount),
					"Low visible structure; add headings for scannability."),
				pick(s.BulletCount > 5,
					fmt.Sprintf("Bullet structure present (%d bullets).", s.BulletCount),
					"Few bullets; add lists for steps, requirements, and decisions."),
				"Consider modular decomposition: inputs → processing → outputs → validation.",
			},
			Questions: []string{
				"Which parts could be separated into reusable modules/components?",
				"Is there a clear information flow from intent to execution?",
				"Where are the brittle sections that need guardrails?",
			},
		},
		{
			Name:  "3) Clarity & Accessibility",
			Score: scoreClarity(s),
			Observations: []string{
				pick(s.HasExamples,
					"Examples language detected.",
					"Examples are scarce; add sample inputs/outputs."),
				pick(s.HasTesting,
					"Testing/validation language detected.",
					"Testing/validation steps not obvious; add explicit test checklist."),
				"Reduce cognitive load by adding a short 'Getting Started' section.",
			},
			Questions: []string{
				"Can a new user run this with zero back-and-forth?",
				"Where would readers get stuck or misinterpret intent?",
				"What minimal diagrams/tables would make this instantly clearer?",
			},
		},
		{
			Name:  "4) Scalability Potential",
			Score: scoreScalability(s),
			Observations: []string{
				pick(s.HasTimeline,
					"Phasing/timeline language detected.",
					"No timeline/phasing detected; add a staged roadmap for growth."),
				"Define constraints: performance, volume, concurrency, permissions.",
				"Add explicit limits and scaling strategies.",
			},
			Questions: []string{
				"What breaks first when usage doubles or complexity increases?",
				"What abstractions enable broader application?",
				"How will you handle multi-user concurrency and versioning?",
			},
		},
		{
			Name:  "5) Integration Readiness",
			Score: scoreIntegration(s),
			Observations: []string{
				pick(s.HasIntegration,
					"Integration language detected.",
					"Integration surfaces not obvious; add 'Integrations' section and interfaces."),
				"Document assumptions about external systems, formats, and auth.",
				"Add a clear API/contract boundary (inputs/outputs).",
			},
			Questions: []string{
				"How does this connect to existing tools and workflows?",
				"What data formats and schemas are expected?",
				"What adapters/bridges would reduce manual work?",
			},
		},
		{
			Name:  "6) User Experience",
			Score: scoreUserExperience(s),
			Observations: []string{
				pick(s.HasUserExperience,
					"UX/workflow language detected.",
					"UX friction points not explicitly addressed; add 'User Flow' and friction fixes."),
				"Add feedback loops: progress, errors, and next actions.",
				"Improve discoverability via quick-start controls and clear defaults.",
			},
			Questions: []string{
				"Where does the user experience friction or uncertainty?",
				"What would make this feel 'instant' and satisfying?",
				"What are the top 3 user journeys and their failure states?",
			},
		},
		{
			Name:  "7) Future-Proofing",
			Score: scoreFutureProof(s),
			Observations: []string{
				pick(s.HasAssumptions,
					"Assumptions/constraints detected.",
					"Assumptions/constraints not obvious; make them explicit for resilience."),
				pick(s.HasRisks,
					"Risk/trade-off language detected.",
					"Risks/trade-offs not explicit; add mitigations."),
				"Add versioning and change-log discipline.",
			},
			Questions: []string{
				"What changes in the environment could invalidate this?",
				"How will maintenance and evolution be handled?",
				"What trends should be anticipated (AI, automation, governance)?",
			},
		},
		{
			Name:  "8) Value Density",
			Score: scoreValueDensity(s),
			Observations: []string{
				"Check for redundancy: can sections be merged without losing meaning?",
				"Add high-leverage artifacts: checklists, templates, and decision tables.",
				"Ensure every component 'earns its place' with clear user value.",
			},
			Questions: []string{
				"What can be removed while improving usefulness?",
				"Which additions create compounding benefits?",
				"Where can a single table replace paragraphs?",
			},
		},
	}
}

// BuildAnalysis 渲染八维透镜分析报告
func BuildAnalysis(s models.Signals, title string) string {
	lenses := ScoreLenses(s)

	findings := make([]string, 0, len(lenses))
	for _, lens := range lenses {
		findings = append(findings, renderLens(lens))
	}

	header := strings.Join([]string{
		fmt.Sprintf("## 🧠 Enhancement Analysis: %s", EscapeMarkdown(title)),
		fmt.Sprintf("**Signals:** wordCount=%d, headings=%d, bullets=%d", s.WordCount, s.HeadingCount, s.BulletCount),
		"",
		"---",
	}, "\n")

	return header + "\n\n" + strings.Join(findings, "\n\n")
}

func renderLens(lens LensScore) string {
	return strings.Join([]string{
		fmt.Sprintf("### %s", lens.Name),
		fmt.Sprintf("**Signal Score:** %d/5", lens.Score),
		"**Observations:**",
		bulletList(lens.Observations),
		"**Key Questions to Push Further:**",
		bulletList(lens.Questions),
	}, "\n")
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// EscapeMarkdown 对标题做最小限度的markdown转义
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
	)
	return r.Replace(s)
}
