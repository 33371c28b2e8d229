package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/search"
)

// mockSearcher 模拟搜索后端，按查询名决定成败
type mockSearcher struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	fail    map[string]bool
	results map[string][]search.Result
	delay   time.Duration
}

func (m *mockSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	m.mu.Lock()
	m.active++
	if m.active > m.maxSeen {
		m.maxSeen = m.active
	}
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	defer func() {
		m.mu.Lock()
		m.active--
		m.mu.Unlock()
	}()

	if m.fail[req.Query] {
		return nil, errors.New("provider unavailable")
	}
	results := m.results[req.Query]
	if results == nil {
		results = []search.Result{{Title: "t", URL: "https://example.com", Content: strings.Repeat("long provider content ", 20)}}
	}
	return &search.Response{Results: results}, nil
}

func noFetch(url string, timeout time.Duration) (string, error) {
	return "", errors.New("fetch disabled")
}

func TestGather_PartialFailures(t *testing.T) {
	queries := make([]string, 8)
	fail := map[string]bool{}
	for i := range queries {
		queries[i] = fmt.Sprintf("query %d", i)
	}
	fail["query 1"] = true
	fail["query 4"] = true
	fail["query 7"] = true

	ms := &mockSearcher{fail: fail}
	agg := NewAggregator(ms, noFetch, config.ResearchConfig{PoolSize: 3})

	bundle := agg.Gather(context.Background(), queries)

	if len(bundle) != 8 {
		t.Fatalf("Gather() keys = %d, want 8", len(bundle))
	}
	for _, q := range queries {
		results, ok := bundle[q]
		if !ok {
			t.Errorf("missing key %q", q)
			continue
		}
		if fail[q] && len(results) != 0 {
			t.Errorf("failed query %q has %d results, want 0", q, len(results))
		}
		if !fail[q] && len(results) == 0 {
			t.Errorf("successful query %q has no results", q)
		}
	}
}

func TestGather_PoolBound(t *testing.T) {
	queries := make([]string, 12)
	for i := range queries {
		queries[i] = fmt.Sprintf("query %d", i)
	}

	ms := &mockSearcher{delay: 10 * time.Millisecond}
	agg := NewAggregator(ms, noFetch, config.ResearchConfig{PoolSize: 2})

	agg.Gather(context.Background(), queries)

	if ms.maxSeen > 2 {
		t.Errorf("max concurrent searches = %d, want <= 2", ms.maxSeen)
	}
}

func TestGatherOne_SnippetFetchAndTruncation(t *testing.T) {
	ms := &mockSearcher{
		results: map[string][]search.Result{
			"short": {{Title: "t", URL: "https://example.com/a", Content: "tiny"}},
		},
	}

	fetched := strings.Repeat("fetched body text ", 100)
	fetch := func(url string, timeout time.Duration) (string, error) {
		return fetched, nil
	}

	agg := NewAggregator(ms, fetch, config.ResearchConfig{SnippetMaxRunes: 50})
	bundle := agg.Gather(context.Background(), []string{"short"})

	results := bundle["short"]
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	snippet := results[0].Snippet
	if !strings.HasPrefix(snippet, "fetched body") {
		t.Errorf("snippet = %q, want fetched content", snippet)
	}
	if got := len([]rune(snippet)); got > 50 {
		t.Errorf("snippet runes = %d, want <= 50", got)
	}
}

func TestGatherOne_FetchFailureKeepsProviderSnippet(t *testing.T) {
	ms := &mockSearcher{
		results: map[string][]search.Result{
			"short": {{Title: "t", URL: "https://example.com/a", Content: "tiny"}},
		},
	}

	agg := NewAggregator(ms, noFetch, config.ResearchConfig{})
	bundle := agg.Gather(context.Background(), []string{"short"})

	results := bundle["short"]
	if len(results) != 1 || results[0].Snippet != "tiny" {
		t.Errorf("results = %+v, want provider snippet kept", results)
	}
}
