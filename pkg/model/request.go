package model

import (
	"errors"
	"strconv"
	"strings"
)

// 数值字段缺失或无法解析时使用的默认值
const (
	DefaultProduct         = "Digital Product"
	DefaultAudience        = "Entrepreneurs and independent professionals"
	DefaultPrice           = 997.0
	DefaultRevenueGoal     = 100000.0
	DefaultMarketingBudget = 10000.0
)

// ErrEmptySegment 请求缺少必填的细分市场
var ErrEmptySegment = errors.New("segment is required")

// AnalysisInput 上游传入的松散类型请求记录
// 数值字段可能是数字、字符串或缺失，统一在构造请求时转换
type AnalysisInput struct {
	Segment         string `json:"segment"`
	Product         string `json:"product"`
	Audience        string `json:"audience"`
	Price           any    `json:"price"`
	RevenueGoal     any    `json:"revenue_goal"`
	MarketingBudget any    `json:"marketing_budget"`
}

// AnalysisRequest 校验并完成数值转换后的请求，构造后只读
type AnalysisRequest struct {
	Segment         string  `json:"segment"`
	Product         string  `json:"product"`
	Audience        string  `json:"audience"`
	Price           float64 `json:"price"`
	RevenueGoal     float64 `json:"revenue_goal"`
	MarketingBudget float64 `json:"marketing_budget"`
}

// NewAnalysisRequest 构造请求；仅在 segment 为空时返回错误
func NewAnalysisRequest(in AnalysisInput) (AnalysisRequest, error) {
	segment := strings.TrimSpace(in.Segment)
	if segment == "" {
		return AnalysisRequest{}, ErrEmptySegment
	}

	product := strings.TrimSpace(in.Product)
	if product == "" {
		product = DefaultProduct
	}
	audience := strings.TrimSpace(in.Audience)
	if audience == "" {
		audience = DefaultAudience
	}

	return AnalysisRequest{
		Segment:         segment,
		Product:         product,
		Audience:        audience,
		Price:           CoerceFloat(in.Price, DefaultPrice),
		RevenueGoal:     CoerceFloat(in.RevenueGoal, DefaultRevenueGoal),
		MarketingBudget: CoerceFloat(in.MarketingBudget, DefaultMarketingBudget),
	}, nil
}

// CoerceFloat 将任意类型的数值输入转换为 float64
// 无法解析、非正数时返回默认值，绝不 panic
func CoerceFloat(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// 兼容 "1.299,90" 之类的本地化写法
			s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
			parsed, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return def
			}
		}
		f = parsed
	default:
		return def
	}
	if f <= 0 {
		return def
	}
	return f
}
