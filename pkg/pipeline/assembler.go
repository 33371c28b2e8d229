package pipeline

import (
	"time"

	"github.com/iWorld-y/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/pkg/model"
)

// Assemble 合成最终文档
// 以回退文档为底，把成功阶段的负载按命名空间覆盖上去，
// 再附加调研包与来源信息。输出总是包含全部命名空间分区
func Assemble(req model.AnalysisRequest, bundle model.ResearchBundle, results []PhaseResult, now time.Time) model.AnalysisDocument {
	doc := SynthesizeFallback(req)
	if bundle != nil {
		doc.Research = bundle
	}

	succeeded := 0
	for _, r := range results {
		if r.Outcome != Succeeded {
			continue
		}
		if applyPayload(&doc, r) {
			succeeded++
		} else {
			// 负载类型与命名空间不符属于 schema 缺口：降级记录，保留回退内容
			logger.Log.Warnf("阶段 %d (%s) 负载类型异常，保留回退内容", r.Index, r.Key)
		}
	}

	var origin string
	switch {
	case succeeded == 0:
		origin = model.OriginFallback
	case succeeded == len(Phases):
		origin = model.OriginGenerated
	default:
		origin = model.OriginPartial
	}

	doc.Provenance = model.Provenance{
		GeneratedAt: now,
		Origin:      origin,
	}
	return doc
}

// applyPayload 将单个阶段负载写入对应分区，类型不符时返回 false
func applyPayload(doc *model.AnalysisDocument, r PhaseResult) bool {
	switch r.Key {
	case KeyScope:
		if v, ok := r.Payload.(model.ScopeSection); ok {
			doc.Scope = v
			return true
		}
	case KeyAvatar:
		if v, ok := r.Payload.(model.AvatarSection); ok {
			doc.Avatar = v
			return true
		}
	case KeyPainMap:
		if v, ok := r.Payload.(model.PainMapSection); ok {
			doc.PainMap = v
			return true
		}
	case KeyCompetition:
		if v, ok := r.Payload.(model.CompetitionSection); ok {
			doc.Competition = v
			return true
		}
	case KeyAcquisition:
		if v, ok := r.Payload.(model.AcquisitionSection); ok {
			doc.Acquisition = v
			return true
		}
	case KeyProjections:
		if v, ok := r.Payload.(model.ProjectionsSection); ok {
			doc.Projections = v
			return true
		}
	}
	return false
}
