package research

import (
	"fmt"
	"strings"
)

// queryTemplates 固定的调研查询模板，顺序即输出顺序
var queryTemplates = []string{
	"%s market size and growth trends",
	"%s main competitors and alternatives",
	"%s typical pricing and offers",
	"%s target audience demographics",
	"%s customer pain points and complaints",
	"%s digital marketing acquisition channels",
}

// PlanQueries 由细分市场派生固定的调研查询列表
// 纯函数：同一 segment 总是返回相同内容与顺序
func PlanQueries(segment string) []string {
	segment = strings.TrimSpace(segment)
	queries := make([]string, 0, len(queryTemplates))
	for _, tpl := range queryTemplates {
		queries = append(queries, fmt.Sprintf(tpl, segment))
	}
	return queries
}
