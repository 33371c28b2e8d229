package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/model"
)

// mockGenerator 模拟生成后端，按阶段标记决定返回内容
type mockGenerator struct {
	calls   int
	respond func(prompt string, call int) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	return m.respond(prompt, m.calls)
}

// phaseOf 从提示词中的阶段标记反推阶段序号
func phaseOf(prompt string) int {
	for _, spec := range Phases {
		if strings.Contains(prompt, fmt.Sprintf("PHASE %d —", spec.Index)) {
			return spec.Index
		}
	}
	return 0
}

func TestOrchestrator_AllPhasesSucceed(t *testing.T) {
	gen := &mockGenerator{respond: func(prompt string, call int) (string, error) {
		return "{}", nil
	}}

	orch := NewOrchestrator(gen, config.PipelineConfig{})
	results := orch.Run(context.Background(), testRequest(), model.ResearchBundle{})

	if len(results) != len(Phases) {
		t.Fatalf("results = %d, want %d", len(results), len(Phases))
	}
	for _, r := range results {
		if r.Outcome != Succeeded {
			t.Errorf("phase %d outcome = %v, want Succeeded: %v", r.Index, r.Outcome, r.Err)
		}
		if r.Payload == nil {
			t.Errorf("phase %d payload is nil", r.Index)
		}
	}
}

func TestOrchestrator_SinglePhaseFailureIsolated(t *testing.T) {
	gen := &mockGenerator{respond: func(prompt string, call int) (string, error) {
		if phaseOf(prompt) == 3 {
			return "sorry, no structured output today", nil
		}
		return "{}", nil
	}}

	orch := NewOrchestrator(gen, config.PipelineConfig{PhaseRetries: 1})
	results := orch.Run(context.Background(), testRequest(), model.ResearchBundle{})

	for _, r := range results {
		if r.Index == 3 {
			if r.Outcome != Failed {
				t.Errorf("phase 3 outcome = %v, want Failed", r.Outcome)
			}
			if r.RawText == "" {
				t.Errorf("phase 3 RawText empty, want raw output preserved")
			}
			var pe *ParseError
			if !errors.As(r.Err, &pe) {
				t.Errorf("phase 3 error = %v, want *ParseError", r.Err)
			}
			continue
		}
		if r.Outcome != Succeeded {
			t.Errorf("phase %d outcome = %v, want Succeeded", r.Index, r.Outcome)
		}
	}
}

func TestOrchestrator_RetrySucceedsOnSecondAttempt(t *testing.T) {
	failed := map[int]bool{}
	gen := &mockGenerator{respond: func(prompt string, call int) (string, error) {
		phase := phaseOf(prompt)
		if !failed[phase] {
			failed[phase] = true
			return "", errors.New("transient backend error")
		}
		return "{}", nil
	}}

	orch := NewOrchestrator(gen, config.PipelineConfig{PhaseRetries: 1})
	results := orch.Run(context.Background(), testRequest(), model.ResearchBundle{})

	for _, r := range results {
		if r.Outcome != Succeeded {
			t.Errorf("phase %d outcome = %v, want Succeeded after retry", r.Index, r.Outcome)
		}
	}
	// 每阶段恰好 2 次调用：1 次失败 + 1 次重试
	if gen.calls != len(Phases)*2 {
		t.Errorf("generator calls = %d, want %d", gen.calls, len(Phases)*2)
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	gen := &mockGenerator{respond: func(prompt string, call int) (string, error) {
		return "{}", nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewOrchestrator(gen, config.PipelineConfig{})
	results := orch.Run(ctx, testRequest(), model.ResearchBundle{})

	if len(results) != len(Phases) {
		t.Fatalf("results = %d, want %d", len(results), len(Phases))
	}
	for _, r := range results {
		if r.Outcome != Failed {
			t.Errorf("phase %d outcome = %v, want Failed on cancelled context", r.Index, r.Outcome)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator calls = %d, want 0", gen.calls)
	}
}
