// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

func successResult() types.RunResult {
	return types.RunResult{
		Status: types.StatusSuccess,
		Topic:  "quantum error correction",
		Plan: &types.SearchPlan{Searches: []types.SearchItem{
			{Reason: "establish baseline", Query: "quantum error correction overview"},
			{Reason: "recent results", Query: "surface code threshold 2026"},
		}},
		Report: &types.ResearchReport{
			Title:      "Quantum Error Correction: State of the Field",
			Summary:    "Error rates have crossed the threshold for practical codes.",
			Findings:   []string{"Surface codes dominate", "Logical qubits demonstrated"},
			Detailed:   "## Background\n\nSome *markdown* body.",
			Confidence: "High confidence based on converging sources",
		},
		Summaries:       []string{"s1", "s2"},
		Costs:           types.CostSnapshot{APICalls: 3, CostUSD: 0.009},
		DurationSeconds: 12.5,
	}
}

func TestPageSuccess(t *testing.T) {
	out, err := Page(successResult())
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"Quantum Error Correction: State of the Field",
		"surface code threshold 2026",
		"establish baseline",
		"Surface codes dominate",
		"confidence-high",
		"$0.009",
		"12.5s",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// Markdown body is converted, not escaped wholesale.
	if !strings.Contains(page, "<em>markdown</em>") {
		t.Errorf("detailed analysis not rendered as markdown:\n%s", page)
	}
	if strings.Contains(page, "Research Failed") {
		t.Error("success page contains error card")
	}
}

func TestPageError(t *testing.T) {
	res := types.RunResult{
		Status:          types.StatusError,
		Topic:           "broken",
		Error:           "planning failed: boom",
		Costs:           types.CostSnapshot{APICalls: 1, CostUSD: 0.002},
		DurationSeconds: 0.3,
	}
	out, err := Page(res)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "Research Failed") {
		t.Error("error page missing failure card")
	}
	if !strings.Contains(page, "planning failed: boom") {
		t.Error("error page missing error message")
	}
	if strings.Contains(page, "Key Findings") {
		t.Error("error page renders report sections")
	}
}

func TestPageEscapesModelOutput(t *testing.T) {
	res := successResult()
	res.Report.Title = `<script>alert("x")</script>`
	out, err := Page(res)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if strings.Contains(string(out), `<script>alert`) {
		t.Error("title not escaped")
	}
}

func TestConfidenceClass(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"High confidence", "confidence-high"},
		{"medium", "confidence-medium"},
		{"Low - sparse sources", "confidence-low"},
		{"", "confidence-medium"},
		{"unclear", "confidence-medium"},
	}
	for _, tt := range tests {
		if got := confidenceClass(tt.in); got != tt.want {
			t.Errorf("confidenceClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexHasForm(t *testing.T) {
	page := string(Index())
	if !strings.Contains(page, `action="/research"`) {
		t.Error("index missing form action")
	}
	if !strings.Contains(page, `name="topic"`) {
		t.Error("index missing topic field")
	}
}
