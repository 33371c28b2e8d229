package model

import (
	"errors"
	"testing"
)

func TestNewAnalysisRequest_EmptySegment(t *testing.T) {
	_, err := NewAnalysisRequest(AnalysisInput{Segment: "   "})
	if !errors.Is(err, ErrEmptySegment) {
		t.Errorf("NewAnalysisRequest() error = %v, want ErrEmptySegment", err)
	}
}

func TestNewAnalysisRequest_Defaults(t *testing.T) {
	req, err := NewAnalysisRequest(AnalysisInput{Segment: "yoga instructors"})
	if err != nil {
		t.Fatalf("NewAnalysisRequest() error = %v", err)
	}
	if req.Product != DefaultProduct {
		t.Errorf("Product = %q, want %q", req.Product, DefaultProduct)
	}
	if req.Audience != DefaultAudience {
		t.Errorf("Audience = %q, want %q", req.Audience, DefaultAudience)
	}
	if req.Price != DefaultPrice {
		t.Errorf("Price = %v, want %v", req.Price, DefaultPrice)
	}
	if req.RevenueGoal != DefaultRevenueGoal {
		t.Errorf("RevenueGoal = %v, want %v", req.RevenueGoal, DefaultRevenueGoal)
	}
	if req.MarketingBudget != DefaultMarketingBudget {
		t.Errorf("MarketingBudget = %v, want %v", req.MarketingBudget, DefaultMarketingBudget)
	}
}

func TestCoerceFloat(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 997},
		{"float64", 497.0, 497},
		{"int", 1200, 1200},
		{"plain string", "497", 497},
		{"decimal string", "497.50", 497.5},
		{"localized string", "1.299,90", 1299.9},
		{"garbage string", "abc", 997},
		{"zero", 0.0, 997},
		{"negative", -15.0, 997},
		{"bool", true, 997},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CoerceFloat(c.in, 997); got != c.want {
				t.Errorf("CoerceFloat(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}
