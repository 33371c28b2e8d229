package pipeline

import (
	"context"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/genai"
	"github.com/iWorld-y/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/pkg/model"
)

// Outcome 阶段结果标记
type Outcome int

const (
	Succeeded Outcome = iota
	Failed
)

// PhaseResult 单个阶段的执行结果
// 成功时 Payload 携带该阶段的结构化负载；失败时 RawText 保留原始输出用于诊断
type PhaseResult struct {
	Index   int
	Key     SectionKey
	Outcome Outcome
	Payload any
	RawText string
	Err     error
}

// Orchestrator 顺序驱动各生成阶段
// 阶段之间存在因果依赖（后段提示词引用前段输出），因此严格串行
// 单个阶段失败只影响自身：记录后继续下一阶段，绝不中断整次运行
type Orchestrator struct {
	generator genai.Generator
	retries   int
	maxPrompt int
}

// NewOrchestrator 创建编排器；retries 是每阶段额外的重试次数（统一为 1）
func NewOrchestrator(generator genai.Generator, cfg config.PipelineConfig) *Orchestrator {
	retries := cfg.PhaseRetries
	if retries <= 0 {
		retries = 1
	}
	maxPrompt := cfg.MaxPromptChars
	if maxPrompt <= 0 {
		maxPrompt = 16000
	}
	return &Orchestrator{
		generator: generator,
		retries:   retries,
		maxPrompt: maxPrompt,
	}
}

// Run 依次执行全部阶段并返回每个阶段的结果
// 上下文超时后不再发起新阶段，剩余阶段直接标记失败；已有结果全部保留
func (o *Orchestrator) Run(ctx context.Context, req model.AnalysisRequest, bundle model.ResearchBundle) []PhaseResult {
	results := make([]PhaseResult, 0, len(Phases))

	for _, spec := range Phases {
		if err := ctx.Err(); err != nil {
			logger.Log.Warnf("整体超时，阶段 %d (%s) 不再执行: %v", spec.Index, spec.Key, err)
			results = append(results, PhaseResult{
				Index:   spec.Index,
				Key:     spec.Key,
				Outcome: Failed,
				Err:     err,
			})
			continue
		}

		results = append(results, o.runPhase(ctx, req, bundle, results, spec))
	}

	return results
}

// runPhase 执行单个阶段：组装提示词、调用生成后端、解析输出
// 生成失败与解析失败同等对待，最多重试 o.retries 次
func (o *Orchestrator) runPhase(ctx context.Context, req model.AnalysisRequest, bundle model.ResearchBundle, prior []PhaseResult, spec PhaseSpec) PhaseResult {
	// 仅以成功阶段作为上下文，ComposePrompt 内部会过滤
	prompt := ComposePrompt(req, bundle, prior, spec, o.maxPrompt)

	var lastErr error
	var lastRaw string

	for attempt := 0; attempt <= o.retries; attempt++ {
		raw, err := o.generator.Generate(ctx, prompt)
		if err != nil {
			lastErr = &GenerationError{Phase: spec.Index, Err: err}
			logger.Log.Warnf("阶段 %d 生成调用失败 (尝试 %d/%d): %v", spec.Index, attempt+1, o.retries+1, err)
			continue
		}
		lastRaw = raw

		data, err := ExtractJSON(raw)
		if err != nil {
			lastErr = err
			logger.Log.Warnf("阶段 %d 输出无法解析 (尝试 %d/%d): %v", spec.Index, attempt+1, o.retries+1, err)
			continue
		}

		payload, err := spec.Decode(data)
		if err != nil {
			lastErr = &ParseError{Raw: raw, Err: err}
			logger.Log.Warnf("阶段 %d 负载解码失败 (尝试 %d/%d): %v", spec.Index, attempt+1, o.retries+1, err)
			continue
		}

		logger.Log.Infof("阶段 %d (%s) 完成", spec.Index, spec.Key)
		return PhaseResult{
			Index:   spec.Index,
			Key:     spec.Key,
			Outcome: Succeeded,
			Payload: payload,
		}
	}

	logger.Log.Errorf("阶段 %d (%s) 最终失败，该分区将使用回退内容: %v", spec.Index, spec.Key, lastErr)
	return PhaseResult{
		Index:   spec.Index,
		Key:     spec.Key,
		Outcome: Failed,
		RawText: lastRaw,
		Err:     lastErr,
	}
}
