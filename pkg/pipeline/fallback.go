package pipeline

import (
	"fmt"
	"math"

	"github.com/iWorld-y/market_radar/pkg/model"
)

// 回退文档使用的比例系数，全部由请求输入确定性推导
const (
	fallbackCACRatio            = 0.42
	fallbackConservativeCAC     = 0.45
	fallbackOptimisticCAC       = 0.38
	fallbackLTVMultiple         = 4.0
	fallbackOptimisticTicketMul = 1.2
	fallbackTAMMultiple         = 400.0
	fallbackSAMMultiple         = 60.0
	fallbackSOMMultiple         = 3.0
)

// SynthesizeFallback 由请求确定性地合成一份完整的分析文档
// 纯函数：任何合法请求都返回 schema 完整的文档，绝不失败
// 货币字段全部按输入价格/收入目标线性推导，不含随机值
func SynthesizeFallback(req model.AnalysisRequest) model.AnalysisDocument {
	price := req.Price
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = model.DefaultPrice
	}
	goal := req.RevenueGoal
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		goal = model.DefaultRevenueGoal
	}

	segment := req.Segment
	cac := round2(price * fallbackCACRatio)

	return model.AnalysisDocument{
		Request: req,
		Scope: model.ScopeSection{
			PrimarySegment: segment,
			Subsegments: []string{
				segment + " for beginners",
				"advanced " + segment,
				segment + " for teams and businesses",
			},
			IdealProduct:     req.Product,
			ValueProposition: fmt.Sprintf("The most complete and practical methodology to master %s", segment),
			MarketSize: model.MarketSize{
				TAM: round2(goal * fallbackTAMMultiple),
				SAM: round2(goal * fallbackSAMMultiple),
				SOM: round2(goal * fallbackSOMMultiple),
			},
		},
		Avatar: model.AvatarSection{
			Persona: model.Persona{
				Name:          "Carlos Eduardo Silva",
				Age:           "38",
				Occupation:    fmt.Sprintf("%s specialist", segment),
				MonthlyIncome: fmt.Sprintf("%.0f - %.0f", price*15, price*35),
				Location:      "Large metropolitan area",
				MaritalStatus: "Married, two children",
				Education:     "College degree with postgraduate studies",
			},
			Demographics: model.Demographics{
				PrimaryAgeRange: "32-45 (65%)",
				GenderSplit:     "65% women, 35% men",
				Regions:         "Southeast (45%), South (25%), Northeast (20%)",
				SocialClasses:   "Upper (30%), middle-upper (60%), middle (10%)",
				EducationLevels: "College degree (80%), postgraduate (45%)",
			},
			Psychographics: model.Psychographics{
				CoreValues:  []string{"Personal growth", "Financial independence", "Professional recognition"},
				Lifestyle:   "Fast-paced routine focused on productivity and continuous learning",
				Personality: "Ambitious, determined, analytical, results-oriented",
				Aspirations: []string{"Become a recognized authority", "Build a scalable business"},
				Fears:       []string{"Becoming obsolete", "Missing opportunities", "Financial failure"},
				Motivators:  []string{"Professional recognition", "Financial security"},
			},
		},
		PainMap: model.PainMapSection{
			Critical: []model.Pain{
				{
					Description: fmt.Sprintf("Difficulty positioning as an authority in %s", segment),
					Intensity:   "high",
					Frequency:   "daily",
					LifeImpact:  "Low professional recognition and difficulty charging premium prices",
					Awareness:   "conscious",
				},
			},
			Secondary: []model.Pain{
				{
					Description: "Lack of a structured, proven methodology",
					Intensity:   "high",
					Frequency:   "weekly",
					LifeImpact:  "Inconsistent results",
					Awareness:   "conscious",
				},
			},
		},
		Competition: model.CompetitionSection{
			DirectCompetitors: []model.Competitor{
				{
					Name:             fmt.Sprintf("Premium %s Academy", segment),
					PriceRange:       fmt.Sprintf("%.0f - %.0f", price*1.5, price*2.5),
					ValueProposition: "Exclusive methodology with certification",
					Strengths:        []string{"Established brand", "Active community"},
					Weaknesses:       []string{"High price", "Limited support"},
					Positioning:      "Premium and exclusive",
				},
			},
			Gaps: []string{
				"No practical methodology with assisted implementation",
				"No continued post-purchase support",
				"Prices out of reach for early-career professionals",
			},
		},
		Acquisition: model.AcquisitionSection{
			PrimaryKeywords: []model.Keyword{
				{
					Term:          fmt.Sprintf("%s course", segment),
					MonthlyVolume: "12100",
					Difficulty:    "medium",
					EstimatedCPC:  round2(price * 0.0042),
					Opportunity:   "high",
				},
			},
			GoogleAds: model.ChannelCost{
				AvgCPC:       round2(price * 0.0032),
				ExpectedCTR:  "3.5%",
				EstimatedCPA: cac,
			},
			FacebookAds: model.ChannelCost{
				AvgCPC:       round2(price * 0.0015),
				ExpectedCTR:  "2.8%",
				EstimatedCPA: round2(price * fallbackOptimisticCAC),
			},
		},
		Projections: model.ProjectionsSection{
			Benchmarks: model.Benchmarks{
				AvgCAC:    cac,
				AvgLTV:    round2(cac * fallbackLTVMultiple),
				ChurnRate: "15%",
				AvgTicket: price,
			},
			Conservative: model.Scenario{
				ConversionRate: 2.0,
				AvgTicket:      price,
				CAC:            round2(price * fallbackConservativeCAC),
				ROI:            240,
			},
			Realistic: model.Scenario{
				ConversionRate: 3.2,
				AvgTicket:      price,
				CAC:            cac,
				ROI:            380,
			},
			Optimistic: model.Scenario{
				ConversionRate: 5.0,
				AvgTicket:      round2(price * fallbackOptimisticTicketMul),
				CAC:            round2(price * fallbackOptimisticCAC),
				ROI:            580,
			},
			ActionPlan: []model.ActionPhase{
				{
					Name:     "Phase 1: Validation and research",
					Duration: "2 weeks",
					Actions: []model.ActionItem{
						{
							Action:   "Validate the value proposition with qualitative research",
							Owner:    "Research team",
							Deadline: "10 days",
						},
					},
				},
				{
					Name:     "Phase 2: Development and preparation",
					Duration: "3 weeks",
					Actions: []model.ActionItem{
						{
							Action:   "Build an optimized landing page",
							Owner:    "Marketing team",
							Deadline: "7 days",
						},
					},
				},
			},
			Insights: []string{
				fmt.Sprintf("The %s segment is going through an accelerated digital transformation", segment),
				"There is a wide gap between premium and entry-level offers in this market",
				"The audience values practical implementation over extensive theory",
				"Personalized support is an underexplored differentiator",
			},
		},
		Research: model.ResearchBundle{},
		Provenance: model.Provenance{
			Origin: model.OriginFallback,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
