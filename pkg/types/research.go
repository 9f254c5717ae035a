// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model shared between the pipeline core,
// the CLI, and any presentation layer.
package types

// SearchItem is one planned web search: the query to run and the planner's
// stated reason for running it. Plan order is preserved end to end; it
// determines summary order and display order.
type SearchItem struct {
	Reason string `json:"reason" yaml:"reason"`
	Query  string `json:"query" yaml:"query"`
}

// SearchPlan is the ordered list of searches produced once per research run.
// It is never mutated after the planner returns it.
type SearchPlan struct {
	Searches []SearchItem `json:"searches" yaml:"searches"`
}

// ResearchReport is the structured report produced by the synthesis stage.
// The Detailed field is Markdown.
type ResearchReport struct {
	Title      string   `json:"title" yaml:"title"`
	Summary    string   `json:"summary" yaml:"summary"`
	Findings   []string `json:"findings" yaml:"findings"`
	Detailed   string   `json:"detailed" yaml:"detailed"`
	Confidence string   `json:"confidence" yaml:"confidence"`
}

// CostSnapshot reports the model/provider call count and the estimated spend
// accumulated during one pipeline run. CostUSD is rounded to 4 decimals.
type CostSnapshot struct {
	APICalls int     `json:"api_calls" yaml:"api_calls"`
	CostUSD  float64 `json:"cost_usd" yaml:"cost_usd"`
}

// RunStatus is the terminal state of a pipeline run.
type RunStatus string

const (
	StatusSuccess RunStatus = "success"
	StatusError   RunStatus = "error"
)

// RunResult is the envelope returned by Pipeline.Run for every invocation,
// success or failure. On failure Plan, Report, and Summaries may be nil and
// Error carries a human-readable message; Costs and DurationSeconds reflect
// whatever had accumulated before the failure.
type RunResult struct {
	Status          RunStatus       `json:"status" yaml:"status"`
	Topic           string          `json:"topic" yaml:"topic"`
	Plan            *SearchPlan     `json:"plan,omitempty" yaml:"plan,omitempty"`
	Report          *ResearchReport `json:"report,omitempty" yaml:"report,omitempty"`
	Summaries       []string        `json:"summaries,omitempty" yaml:"summaries,omitempty"`
	Costs           CostSnapshot    `json:"costs" yaml:"costs"`
	DurationSeconds float64         `json:"duration_seconds" yaml:"duration_seconds"`
	Error           string          `json:"error,omitempty" yaml:"error,omitempty"`
}
