package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/genai"
	"github.com/iWorld-y/market_radar/pkg/logger"
	"github.com/iWorld-y/market_radar/pkg/model"
	"github.com/iWorld-y/market_radar/pkg/pipeline"
	"github.com/iWorld-y/market_radar/pkg/render"
	"github.com/iWorld-y/market_radar/pkg/research"
	"github.com/iWorld-y/market_radar/pkg/search/factory"
	"github.com/iWorld-y/market_radar/pkg/storage"
)

func main() {
	confPath := flag.String("conf", "config.yaml", "配置文件路径")
	segment := flag.String("segment", "", "待分析的细分市场（必填）")
	product := flag.String("product", "", "产品名称")
	audience := flag.String("audience", "", "目标受众")
	price := flag.String("price", "", "产品价格（支持 997 / 997.00 / 1.299,90 等写法）")
	revenueGoal := flag.String("revenue-goal", "", "月营收目标")
	budget := flag.String("budget", "", "营销预算")
	out := flag.String("out", "analysis.html", "HTML 报告输出路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*confPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动市场雷达...")

	ctx := context.Background()

	// 3. 初始化搜索后端；未配置时跳过调研，不中断分析
	var aggregator *research.Aggregator
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Warnf("搜索后端不可用，调研阶段将跳过: %v", err)
	} else {
		aggregator = research.NewAggregator(searcher, nil, cfg.Research)
	}

	// 4. 初始化生成后端；未配置时整份文档走回退分析
	var generator genai.Generator
	if cfg.LLM.APIKey == "" {
		logger.Log.Warn("未设置 llm.api_key，本次运行使用回退分析")
	} else {
		// Limit 设置为 RPM/60，Burst 设置为 QPS
		limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
		limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)
		logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", limit, cfg.Concurrency.QPS)

		client, err := genai.NewClient(ctx, cfg.LLM, limiter)
		if err != nil {
			logger.Log.Fatalf("LLM 初始化失败: %v", err)
		}
		generator = client
	}

	// 5. 初始化持久化；未配置 db.host 时不保存
	var store pipeline.Store
	if cfg.DB.Host != "" {
		st, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Fatalf("数据库初始化失败: %v", err)
		}
		defer st.Close()
		store = st
	}

	// 6. 执行分析
	engine := pipeline.NewEngine(cfg, generator, aggregator, store)
	doc, err := engine.Analyze(ctx, model.AnalysisInput{
		Segment:         *segment,
		Product:         *product,
		Audience:        *audience,
		Price:           emptyToNil(*price),
		RevenueGoal:     emptyToNil(*revenueGoal),
		MarketingBudget: emptyToNil(*budget),
	})
	if err != nil {
		logger.Log.Fatalf("分析失败: %v", err)
	}

	// 7. 渲染报告
	if err := render.WriteHTMLFile(*out, doc); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}

	logger.Log.Infof("✅ 分析报告生成完毕: %s (origin=%s)", *out, doc.Provenance.Origin)
}

// emptyToNil 未传入的数值参数交给请求构造层取默认值
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
