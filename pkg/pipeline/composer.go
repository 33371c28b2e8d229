package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/market_radar/pkg/model"
)

// 研究摘要的约束：每个查询取前 2 条结果，摘要截到 150 rune，
// 摘要整体最多占提示词预算的 40%
const (
	digestResultsPerQuery = 2
	digestSnippetRunes    = 150
	digestBudgetPercent   = 40
)

// ComposePrompt 组装某一阶段的完整提示词
// 组成：请求参数、压缩后的调研摘要、此前成功阶段的上下文、本阶段指令与输出结构
// 总长度硬性受 maxChars 约束：先压缩调研摘要，再从最早的阶段开始丢弃上下文
func ComposePrompt(req model.AnalysisRequest, bundle model.ResearchBundle, prior []PhaseResult, spec PhaseSpec, maxChars int) string {
	if maxChars <= 0 {
		maxChars = 16000
	}

	header := requestBlock(req)
	instructions := fmt.Sprintf(
		"\nPHASE %d — %s\nReturn ONLY a valid JSON object with exactly this structure:\n%s\n",
		spec.Index, spec.Title, spec.Shape,
	)

	// 指令与请求块始终完整保留
	budget := maxChars - utf8.RuneCountInString(header) - utf8.RuneCountInString(instructions)
	if budget < 0 {
		budget = 0
	}

	digest := researchDigest(bundle, min(budget, maxChars*digestBudgetPercent/100))
	budget -= utf8.RuneCountInString(digest)

	context := priorContext(prior, budget)

	return header + digest + context + instructions
}

func requestBlock(req model.AnalysisRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a senior market research consultant specialized in avatar archeology and market analysis.\n\n")
	sb.WriteString("PRODUCT CONTEXT:\n")
	fmt.Fprintf(&sb, "- Segment: %s\n", req.Segment)
	fmt.Fprintf(&sb, "- Product: %s\n", req.Product)
	fmt.Fprintf(&sb, "- Price: %.2f\n", req.Price)
	fmt.Fprintf(&sb, "- Audience: %s\n", req.Audience)
	fmt.Fprintf(&sb, "- Revenue goal: %.2f\n", req.RevenueGoal)
	fmt.Fprintf(&sb, "- Marketing budget: %.2f\n", req.MarketingBudget)
	return sb.String()
}

// researchDigest 将调研包压缩成提示词中的摘要段
// 键排序保证同一输入产出同一摘要
func researchDigest(bundle model.ResearchBundle, maxRunes int) string {
	if len(bundle) == 0 || maxRunes <= 0 {
		return ""
	}

	queries := make([]string, 0, len(bundle))
	for q := range bundle {
		queries = append(queries, q)
	}
	sort.Strings(queries)

	var sb strings.Builder
	sb.WriteString("\nMARKET RESEARCH DIGEST:\n")
	wrote := false
	for _, q := range queries {
		results := bundle[q]
		if len(results) == 0 {
			continue
		}
		wrote = true
		fmt.Fprintf(&sb, "\n**%s**\n", q)
		for i, r := range results {
			if i >= digestResultsPerQuery {
				break
			}
			fmt.Fprintf(&sb, "- %s: %s\n", r.Title, truncateRunes(r.Snippet, digestSnippetRunes))
		}
	}
	if !wrote {
		return ""
	}

	return truncateRunes(sb.String(), maxRunes)
}

// priorContext 序列化此前成功阶段的负载
// 超出预算时先丢弃最早的阶段，后段上下文对当前阶段更有价值
func priorContext(prior []PhaseResult, budget int) string {
	const header = "\nCONTEXT FROM PREVIOUS PHASES:\n"

	var entries []string
	for _, r := range prior {
		if r.Outcome != Succeeded {
			continue
		}
		data, err := json.Marshal(r.Payload)
		if err != nil {
			continue
		}
		entries = append(entries, fmt.Sprintf("\n[%s]\n%s\n", r.Key, data))
	}
	if len(entries) == 0 {
		return ""
	}

	total := utf8.RuneCountInString(header)
	for _, e := range entries {
		total += utf8.RuneCountInString(e)
	}

	start := 0
	for total > budget && start < len(entries) {
		total -= utf8.RuneCountInString(entries[start])
		start++
	}
	if start == len(entries) {
		return ""
	}

	return header + strings.Join(entries[start:], "")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
