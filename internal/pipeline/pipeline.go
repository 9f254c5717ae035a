// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a research run: plan the searches, execute
// and summarize them under concurrency and retry policy, then synthesize a
// structured report. The orchestrator converts every failure into a uniform
// result envelope; callers never see a raw error from Run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pdiddy/deep-research/internal/agent"
	"github.com/pdiddy/deep-research/internal/cache"
	"github.com/pdiddy/deep-research/internal/costs"
	"github.com/pdiddy/deep-research/internal/websearch"
	"github.com/pdiddy/deep-research/pkg/types"
)

// ErrInsufficientMaterial reports that too few searches produced usable
// summaries to synthesize a meaningful report.
var ErrInsufficientMaterial = errors.New("insufficient research material")

// ProgressFunc receives human-readable status messages during a run. It is
// advisory only: it never affects control flow and may be nil.
type ProgressFunc func(msg string)

// backoffBase is the base delay for the per-item retry backoff. Tests
// override this to avoid real sleeps.
var backoffBase = 2 * time.Second

// jitterMax bounds the random jitter added to backoff and pacing delays.
// Tests set it to 0 for determinism.
var jitterMax = 500 * time.Millisecond

func jitter() time.Duration {
	if jitterMax <= 0 {
		return 0
	}
	return rand.N(jitterMax)
}

// Pipeline owns one research workflow's collaborators. The cache and cost
// tracker are injected so independent pipelines can run concurrently with
// independent state; a single Pipeline must not run two topics at once
// because Run resets the shared tracker.
type Pipeline struct {
	llm    agent.Client
	search *websearch.Client
	cache  *cache.Cache
	costs  *costs.Tracker
	cfg    types.PipelineConfig
	log    io.Writer
}

// New builds a pipeline. Zero-valued cfg fields get defaults; log receives
// diagnostic lines (os.Stderr if nil).
func New(llm agent.Client, search *websearch.Client, c *cache.Cache, tracker *costs.Tracker, cfg types.PipelineConfig, log io.Writer) *Pipeline {
	if log == nil {
		log = os.Stderr
	}
	return &Pipeline{
		llm:    llm,
		search: search,
		cache:  c,
		costs:  tracker,
		cfg:    withDefaults(cfg),
		log:    log,
	}
}

func withDefaults(cfg types.PipelineConfig) types.PipelineConfig {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxConcurrentSearches <= 0 {
		cfg.MaxConcurrentSearches = 2
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = 2500 * time.Millisecond
	}
	if cfg.TextChunkSize <= 0 {
		cfg.TextChunkSize = 4000
	}
	if cfg.ReportChunkSize <= 0 {
		cfg.ReportChunkSize = 20000
	}
	if cfg.MinUsableSummaries <= 0 {
		cfg.MinUsableSummaries = 3
	}
	if cfg.PlanCost <= 0 {
		cfg.PlanCost = 0.002
	}
	if cfg.SummaryCost <= 0 {
		cfg.SummaryCost = 0.002
	}
	if cfg.SynthesisCost <= 0 {
		cfg.SynthesisCost = 0.005
	}
	return cfg
}

// Run executes the full research pipeline for topic and always returns a
// well-formed envelope: on any stage failure the envelope carries the error
// message plus whatever cost and duration telemetry had accumulated. The
// caller validates the topic; Run assumes it is non-empty.
func (p *Pipeline) Run(ctx context.Context, topic string, progress ProgressFunc) types.RunResult {
	start := time.Now()
	p.costs.Reset()

	emit(progress, "Planning research strategy...")
	plan, err := p.plan(ctx, topic)
	if err != nil {
		return p.fail(topic, start, fmt.Errorf("planning: %w", err))
	}

	emit(progress, fmt.Sprintf("Executing %d searches...", len(plan.Searches)))
	summaries, err := p.processAll(ctx, topic, plan, progress)
	if err != nil {
		return p.fail(topic, start, fmt.Errorf("search stage: %w", err))
	}

	if usable := countUsable(summaries); usable < p.cfg.MinUsableSummaries {
		return p.fail(topic, start, fmt.Errorf("%w: %d usable of %d summaries, need at least %d",
			ErrInsufficientMaterial, usable, len(summaries), p.cfg.MinUsableSummaries))
	}

	emit(progress, "Synthesizing report...")
	report, err := p.synthesize(ctx, topic, summaries)
	if err != nil {
		return p.fail(topic, start, fmt.Errorf("synthesis: %w", err))
	}

	emit(progress, "Research complete.")
	return types.RunResult{
		Status:          types.StatusSuccess,
		Topic:           topic,
		Plan:            &plan,
		Report:          &report,
		Summaries:       summaries,
		Costs:           p.costs.Snapshot(),
		DurationSeconds: roundSeconds(time.Since(start)),
	}
}

func (p *Pipeline) fail(topic string, start time.Time, err error) types.RunResult {
	fmt.Fprintf(p.log, "research failed for %q: %v\n", topic, err)
	return types.RunResult{
		Status:          types.StatusError,
		Topic:           topic,
		Costs:           p.costs.Snapshot(),
		DurationSeconds: roundSeconds(time.Since(start)),
		Error:           err.Error(),
	}
}

func emit(progress ProgressFunc, msg string) {
	if progress != nil {
		progress(msg)
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
