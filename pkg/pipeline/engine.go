package pipeline

import (
	"context"
	"time"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/genai"
	"github.com/iWorld-y/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/pkg/research"
)

// Store 持久化协作方；保存失败不影响文档返回
type Store interface {
	SaveAnalysis(ctx context.Context, doc *model.AnalysisDocument) error
}

// Engine 分析流水线
// 依赖全部显式注入，不持有任何全局客户端：
// generator 为 nil 表示生成后端未配置，整次运行走回退分析；
// aggregator 为 nil 表示搜索后端未配置，调研包为空结果；
// store 为 nil 表示不持久化
type Engine struct {
	cfg        *config.Config
	generator  genai.Generator
	aggregator *research.Aggregator
	store      Store
}

// NewEngine 创建流水线实例
func NewEngine(cfg *config.Config, generator genai.Generator, aggregator *research.Aggregator, store Store) *Engine {
	return &Engine{
		cfg:        cfg,
		generator:  generator,
		aggregator: aggregator,
		store:      store,
	}
}

// Analyze 执行一次完整分析
// 对外契约：只要请求合法（segment 非空），总是返回 schema 完整的文档；
// 内部任何网络、生成、解析失败都被就地恢复，降级只体现在 provenance.origin
func (e *Engine) Analyze(ctx context.Context, in model.AnalysisInput) (*model.AnalysisDocument, error) {
	req, err := model.NewAnalysisRequest(in)
	if err != nil {
		return nil, err
	}

	timeout := 5 * time.Minute
	if e.cfg != nil && e.cfg.Pipeline.OverallTimeout > 0 {
		timeout = time.Duration(e.cfg.Pipeline.OverallTimeout) * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Log.Infof("开始分析细分市场: %s", req.Segment)

	// 1. 规划并执行调研
	queries := research.PlanQueries(req.Segment)
	var bundle model.ResearchBundle
	if e.aggregator != nil {
		bundle = e.aggregator.Gather(runCtx, queries)
	} else {
		bundle = make(model.ResearchBundle, len(queries))
		for _, q := range queries {
			bundle[q] = []model.ResearchResult{}
		}
	}

	// 2. 生成 + 合成
	var doc model.AnalysisDocument
	if e.generator == nil {
		logger.Log.Warnf("生成后端未配置，整份文档使用回退分析: %v", ErrGeneratorUnconfigured)
		doc = Assemble(req, bundle, nil, time.Now())
	} else {
		var pipelineCfg config.PipelineConfig
		if e.cfg != nil {
			pipelineCfg = e.cfg.Pipeline
		}
		orch := NewOrchestrator(e.generator, pipelineCfg)
		results := orch.Run(runCtx, req, bundle)
		doc = Assemble(req, bundle, results, time.Now())
	}

	// 3. 持久化（失败不影响返回，用调用方的原始上下文以免受总超时牵连）
	if e.store != nil {
		if err := e.store.SaveAnalysis(ctx, &doc); err != nil {
			logger.Log.Errorf("保存分析失败，文档仍将返回: %v", err)
		}
	}

	logger.Log.Infof("分析完成 [%s] origin=%s", req.Segment, doc.Provenance.Origin)
	return &doc, nil
}
