package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/iWorld-y/market_radar/pkg/model"
)

// mockStore 模拟持久化层
type mockStore struct {
	saved []*model.AnalysisDocument
	err   error
}

func (m *mockStore) SaveAnalysis(ctx context.Context, doc *model.AnalysisDocument) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, doc)
	return nil
}

func TestEngine_FallbackOnlyRun(t *testing.T) {
	engine := NewEngine(nil, nil, nil, nil)

	doc, err := engine.Analyze(context.Background(), model.AnalysisInput{
		Segment: "online yoga courses",
		Price:   497.0,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if doc.Provenance.Origin != model.OriginFallback {
		t.Errorf("Origin = %q, want %q", doc.Provenance.Origin, model.OriginFallback)
	}
	if doc.Projections.Benchmarks.AvgTicket != 497 {
		t.Errorf("AvgTicket = %v, want 497", doc.Projections.Benchmarks.AvgTicket)
	}
	// 未配置搜索后端时调研包仍然覆盖全部查询键
	if len(doc.Research) != 6 {
		t.Errorf("Research keys = %d, want 6", len(doc.Research))
	}
	if doc.Provenance.GeneratedAt.IsZero() {
		t.Errorf("GeneratedAt not stamped")
	}
}

func TestEngine_InvalidRequest(t *testing.T) {
	engine := NewEngine(nil, nil, nil, nil)

	_, err := engine.Analyze(context.Background(), model.AnalysisInput{Segment: ""})
	if !errors.Is(err, model.ErrEmptySegment) {
		t.Errorf("Analyze() error = %v, want ErrEmptySegment", err)
	}
}

func TestEngine_PartialGeneration(t *testing.T) {
	gen := &mockGenerator{respond: func(prompt string, call int) (string, error) {
		if phaseOf(prompt) == 3 {
			return "not json", nil
		}
		return "{}", nil
	}}

	engine := NewEngine(nil, gen, nil, nil)
	doc, err := engine.Analyze(context.Background(), model.AnalysisInput{Segment: "online yoga courses"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if doc.Provenance.Origin != model.OriginPartial {
		t.Errorf("Origin = %q, want %q", doc.Provenance.Origin, model.OriginPartial)
	}
	// 失败的痛点分区由回退内容补齐，文档仍然 schema 完整
	if len(doc.PainMap.Critical) == 0 {
		t.Errorf("PainMap not filled from fallback")
	}
}

func TestEngine_SavesDocument(t *testing.T) {
	store := &mockStore{}
	engine := NewEngine(nil, nil, nil, store)

	doc, err := engine.Analyze(context.Background(), model.AnalysisInput{Segment: "online yoga courses"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(store.saved))
	}
	if store.saved[0].Provenance.Origin != doc.Provenance.Origin {
		t.Errorf("saved origin = %q, want %q", store.saved[0].Provenance.Origin, doc.Provenance.Origin)
	}
}

func TestEngine_StoreFailureDoesNotFailAnalysis(t *testing.T) {
	store := &mockStore{err: errors.New("connection refused")}
	engine := NewEngine(nil, nil, nil, store)

	doc, err := engine.Analyze(context.Background(), model.AnalysisInput{Segment: "online yoga courses"})
	if err != nil {
		t.Fatalf("Analyze() error = %v, want nil despite store failure", err)
	}
	if doc == nil {
		t.Fatalf("Analyze() doc = nil, want document")
	}
}
