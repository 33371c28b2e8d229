package research

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/pkg/search"
)

// 搜索结果自带摘要低于该长度时才发起二次正文抓取
const minProviderContent = 200

// FetchFunc 抓取 URL 并提取页面正文
type FetchFunc func(url string, timeout time.Duration) (string, error)

// Aggregator 并发执行调研查询并压缩结果
// 并发度由固定大小的 worker 池约束，结果槽位每键只写一次
type Aggregator struct {
	searcher       search.Searcher
	fetch          FetchFunc
	poolSize       int
	queryTimeout   time.Duration
	snippetTimeout time.Duration
	maxResults     int
	snippetMax     int
}

// NewAggregator 创建聚合器；fetch 为 nil 时使用 readability 抓取
func NewAggregator(searcher search.Searcher, fetch FetchFunc, cfg config.ResearchConfig) *Aggregator {
	if fetch == nil {
		fetch = fetchAndCleanContent
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	snippetMax := cfg.SnippetMaxRunes
	if snippetMax <= 0 {
		snippetMax = 500
	}
	queryTimeout := time.Duration(cfg.QueryTimeout) * time.Second
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	snippetTimeout := time.Duration(cfg.SnippetTimeout) * time.Second
	if snippetTimeout <= 0 {
		snippetTimeout = 5 * time.Second
	}

	return &Aggregator{
		searcher:       searcher,
		fetch:          fetch,
		poolSize:       poolSize,
		queryTimeout:   queryTimeout,
		snippetTimeout: snippetTimeout,
		maxResults:     maxResults,
		snippetMax:     snippetMax,
	}
}

// Gather 执行全部查询并返回覆盖所有键的调研包
// 单个查询或抓取失败只影响自身条目，绝不中断整批；本层不重试
func (a *Aggregator) Gather(ctx context.Context, queries []string) model.ResearchBundle {
	bundle := make(model.ResearchBundle, len(queries))
	for _, q := range queries {
		bundle[q] = []model.ResearchResult{} // 先占位，保证键齐全
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, a.poolSize)

	for _, q := range queries {
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results := a.gatherOne(ctx, query)

			mu.Lock()
			bundle[query] = results
			mu.Unlock()
		}(q)
	}
	wg.Wait()

	return bundle
}

// gatherOne 执行单个查询，任何失败都归一为空结果
func (a *Aggregator) gatherOne(ctx context.Context, query string) []model.ResearchResult {
	qctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	resp, err := a.searcher.Search(qctx, &search.Request{
		Query:      query,
		Topic:      "general",
		MaxResults: a.maxResults,
	})
	if err != nil {
		logger.Log.Warnf("调研查询失败 [%s]: %v", query, err)
		return []model.ResearchResult{}
	}

	results := make([]model.ResearchResult, 0, a.maxResults)
	for _, item := range resp.Results {
		if len(results) >= a.maxResults {
			break
		}

		snippet := item.Content
		// 搜索结果摘要太短时二次抓取正文；抓取失败只留空摘要
		if utf8.RuneCountInString(snippet) < minProviderContent {
			if fetched, err := a.fetch(item.URL, a.snippetTimeout); err == nil && len(fetched) > len(snippet) {
				snippet = fetched
			} else if err != nil {
				logger.Log.Debugf("正文抓取失败 [%s]: %v", item.URL, err)
			}
		}

		results = append(results, model.ResearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: condense(snippet, a.snippetMax),
		})
	}

	logger.Log.Debugf("调研查询完成 [%s]: %d 条结果", query, len(results))
	return results
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// condense 折叠空白并按 rune 截断
func condense(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
