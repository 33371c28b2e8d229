package pipeline

import (
	"testing"
	"time"

	"github.com/iWorld-y/market_radar/pkg/model"
)

func TestAssemble_AllFallback(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	doc := Assemble(testRequest(), nil, nil, now)

	if doc.Provenance.Origin != model.OriginFallback {
		t.Errorf("Origin = %q, want %q", doc.Provenance.Origin, model.OriginFallback)
	}
	if !doc.Provenance.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", doc.Provenance.GeneratedAt, now)
	}
}

func TestAssemble_AllGenerated(t *testing.T) {
	results := []PhaseResult{
		{Index: 1, Key: KeyScope, Outcome: Succeeded, Payload: model.ScopeSection{PrimarySegment: "generated"}},
		{Index: 2, Key: KeyAvatar, Outcome: Succeeded, Payload: model.AvatarSection{Persona: model.Persona{Name: "Ana"}}},
		{Index: 3, Key: KeyPainMap, Outcome: Succeeded, Payload: model.PainMapSection{}},
		{Index: 4, Key: KeyCompetition, Outcome: Succeeded, Payload: model.CompetitionSection{}},
		{Index: 5, Key: KeyAcquisition, Outcome: Succeeded, Payload: model.AcquisitionSection{}},
		{Index: 6, Key: KeyProjections, Outcome: Succeeded, Payload: model.ProjectionsSection{}},
	}

	doc := Assemble(testRequest(), nil, results, time.Now())

	if doc.Provenance.Origin != model.OriginGenerated {
		t.Errorf("Origin = %q, want %q", doc.Provenance.Origin, model.OriginGenerated)
	}
	if doc.Scope.PrimarySegment != "generated" {
		t.Errorf("Scope not overlaid: %q", doc.Scope.PrimarySegment)
	}
	if doc.Avatar.Persona.Name != "Ana" {
		t.Errorf("Avatar not overlaid: %q", doc.Avatar.Persona.Name)
	}
}

func TestAssemble_PartialFillsFailedPhaseFromFallback(t *testing.T) {
	results := []PhaseResult{
		{Index: 1, Key: KeyScope, Outcome: Succeeded, Payload: model.ScopeSection{PrimarySegment: "generated"}},
		{Index: 3, Key: KeyPainMap, Outcome: Failed, RawText: "garbage"},
	}

	doc := Assemble(testRequest(), nil, results, time.Now())

	if doc.Provenance.Origin != model.OriginPartial {
		t.Errorf("Origin = %q, want %q", doc.Provenance.Origin, model.OriginPartial)
	}
	// 失败分区由回退内容补齐
	if len(doc.PainMap.Critical) == 0 {
		t.Errorf("failed phase section not filled from fallback")
	}
}

func TestAssemble_PayloadTypeMismatchKeepsFallback(t *testing.T) {
	results := []PhaseResult{
		{Index: 1, Key: KeyScope, Outcome: Succeeded, Payload: model.AvatarSection{}},
	}

	doc := Assemble(testRequest(), nil, results, time.Now())

	if doc.Provenance.Origin != model.OriginFallback {
		t.Errorf("Origin = %q, want %q on type mismatch", doc.Provenance.Origin, model.OriginFallback)
	}
	if doc.Scope.PrimarySegment != "online yoga courses" {
		t.Errorf("Scope = %q, want fallback content", doc.Scope.PrimarySegment)
	}
}

func TestAssemble_AttachesResearch(t *testing.T) {
	bundle := model.ResearchBundle{
		"q1": {{Title: "t", URL: "https://example.com", Snippet: "s"}},
	}
	doc := Assemble(testRequest(), bundle, nil, time.Now())

	if len(doc.Research["q1"]) != 1 {
		t.Errorf("Research not attached: %+v", doc.Research)
	}
}
