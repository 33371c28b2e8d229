package pipeline

import (
	"encoding/json"

	"github.com/iWorld-y/market_radar/pkg/model"
)

// SectionKey 最终文档中的命名空间键
type SectionKey string

const (
	KeyScope       SectionKey = "scope"
	KeyAvatar      SectionKey = "avatar"
	KeyPainMap     SectionKey = "pain_map"
	KeyCompetition SectionKey = "competition"
	KeyAcquisition SectionKey = "acquisition"
	KeyProjections SectionKey = "projections"
)

// PhaseSpec 单个生成阶段的定义：阶段序号、命名空间键、提示词要求的输出结构
type PhaseSpec struct {
	Index  int
	Key    SectionKey
	Title  string
	Shape  string
	decode func(data []byte) (any, error)
}

// Decode 将清洗后的 JSON 解析为本阶段的结构化负载
func (p PhaseSpec) Decode(data []byte) (any, error) {
	return p.decode(data)
}

func decodeInto[T any](data []byte) (any, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Phases 固定的阶段表，顺序即执行顺序
var Phases = []PhaseSpec{
	{
		Index: 1,
		Key:   KeyScope,
		Title: "Market scope and opportunity",
		Shape: `{
  "primary_segment": "main segment name",
  "subsegments": ["subsegment 1", "subsegment 2", "subsegment 3"],
  "ideal_product": "ideal product name",
  "value_proposition": "unique value proposition",
  "market_size": {"tam": 0, "sam": 0, "som": 0}
}`,
		decode: decodeInto[model.ScopeSection],
	},
	{
		Index: 2,
		Key:   KeyAvatar,
		Title: "Ultra-detailed avatar",
		Shape: `{
  "persona": {"name": "fictional name", "age": "specific age", "occupation": "specific occupation", "monthly_income": "income range", "location": "city/region", "marital_status": "marital status", "education": "education level"},
  "demographics": {"primary_age_range": "main range with %", "gender_split": "gender distribution", "regions": "geographic distribution", "social_classes": "class distribution", "education_levels": "education distribution"},
  "psychographics": {"core_values": ["value 1", "value 2"], "lifestyle": "day-to-day description", "personality": "dominant traits", "aspirations": ["aspiration 1"], "fears": ["fear 1", "fear 2"], "motivators": ["motivator 1"]}
}`,
		decode: decodeInto[model.AvatarSection],
	},
	{
		Index: 3,
		Key:   KeyPainMap,
		Title: "Pain mapping",
		Shape: `{
  "critical": [{"description": "specific pain", "intensity": "high/medium/low", "frequency": "daily/weekly/monthly", "life_impact": "how it impacts", "awareness": "conscious/semi-conscious"}],
  "secondary": [{"description": "secondary pain", "intensity": "high/medium/low", "frequency": "frequency", "life_impact": "impact", "awareness": "level"}]
}`,
		decode: decodeInto[model.PainMapSection],
	},
	{
		Index: 4,
		Key:   KeyCompetition,
		Title: "Competitive landscape",
		Shape: `{
  "direct_competitors": [{"name": "competitor name", "price_range": "price range", "value_proposition": "proposition", "strengths": ["strength 1"], "weaknesses": ["weakness 1"], "positioning": "how it positions itself"}],
  "gaps": ["gap 1", "gap 2", "gap 3"]
}`,
		decode: decodeInto[model.CompetitionSection],
	},
	{
		Index: 5,
		Key:   KeyAcquisition,
		Title: "Keyword and acquisition strategy",
		Shape: `{
  "primary_keywords": [{"term": "keyword", "monthly_volume": "volume", "difficulty": "high/medium/low", "estimated_cpc": 0.0, "opportunity": "high/medium/low"}],
  "google_ads": {"avg_cpc": 0.0, "expected_ctr": "x%", "estimated_cpa": 0.0},
  "facebook_ads": {"avg_cpc": 0.0, "expected_ctr": "x%", "estimated_cpa": 0.0}
}`,
		decode: decodeInto[model.AcquisitionSection],
	},
	{
		Index: 6,
		Key:   KeyProjections,
		Title: "Projections and action plan",
		Shape: `{
  "benchmarks": {"avg_cac": 0.0, "avg_ltv": 0.0, "churn_rate": "x%", "avg_ticket": 0.0},
  "conservative": {"conversion_rate": 0.0, "avg_ticket": 0.0, "cac": 0.0, "roi": 0.0},
  "realistic": {"conversion_rate": 0.0, "avg_ticket": 0.0, "cac": 0.0, "roi": 0.0},
  "optimistic": {"conversion_rate": 0.0, "avg_ticket": 0.0, "cac": 0.0, "roi": 0.0},
  "action_plan": [{"name": "Phase 1: name", "duration": "x weeks", "actions": [{"action": "specific action", "owner": "who executes", "deadline": "x days"}]}],
  "insights": ["insight 1", "insight 2", "insight 3"]
}`,
		decode: decodeInto[model.ProjectionsSection],
	},
}
