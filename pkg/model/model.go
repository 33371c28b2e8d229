package model

import "time"

// ResearchResult 单条压缩后的检索结果，Snippet 可能为空
type ResearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// ResearchBundle 调研查询到结果列表的映射
// 值内顺序代表检索排名，键的顺序无意义
type ResearchBundle map[string][]ResearchResult

// 文档来源标记
const (
	OriginGenerated = "generated"
	OriginPartial   = "partially-generated"
	OriginFallback  = "fallback"
)

// Provenance 文档来源信息
type Provenance struct {
	GeneratedAt time.Time `json:"generated_at"`
	Origin      string    `json:"origin"`
}

// AnalysisDocument 最终分析文档
// 六个命名空间分区总是全部存在，与实际成功的阶段数无关
type AnalysisDocument struct {
	Request     AnalysisRequest    `json:"request"`
	Scope       ScopeSection       `json:"scope"`
	Avatar      AvatarSection      `json:"avatar"`
	PainMap     PainMapSection     `json:"pain_map"`
	Competition CompetitionSection `json:"competition"`
	Acquisition AcquisitionSection `json:"acquisition"`
	Projections ProjectionsSection `json:"projections"`
	Research    ResearchBundle     `json:"research"`
	Provenance  Provenance         `json:"provenance"`
}
