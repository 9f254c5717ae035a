// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/deep-research/internal/agent"
	"github.com/pdiddy/deep-research/internal/cache"
	"github.com/pdiddy/deep-research/pkg/types"
)

// errNoResults marks a successful search that returned zero snippets.
// Retrying cannot fix an empty result set, only a failed call.
var errNoResults = errors.New("no results")

const (
	noResultsPrefix = "No results found for: "
	failedPrefix    = "Search failed after "
)

// IsSentinel reports whether a summary is an in-band placeholder for a
// failed or empty search rather than real material.
func IsSentinel(summary string) bool {
	return strings.HasPrefix(summary, noResultsPrefix) || strings.HasPrefix(summary, failedPrefix)
}

func noResultsSentinel(query string) string {
	return noResultsPrefix + query
}

func failureSentinel(query string, attempts int) string {
	return fmt.Sprintf("%s%d attempts: %s", failedPrefix, attempts, query)
}

func countUsable(summaries []string) int {
	n := 0
	for _, s := range summaries {
		if !IsSentinel(s) {
			n++
		}
	}
	return n
}

// processAll runs every planned search under the concurrency bound and
// returns one summary per item in plan order, regardless of completion
// order. Per-item failures degrade to sentinel strings; only a failure of
// the concurrency machinery itself (context cancellation during slot
// acquisition) propagates.
func (p *Pipeline) processAll(ctx context.Context, topic string, plan types.SearchPlan, progress ProgressFunc) ([]string, error) {
	batchSize := p.cfg.MaxConcurrentSearches
	sem := semaphore.NewWeighted(int64(batchSize))
	summaries := make([]string, len(plan.Searches))

	g := new(errgroup.Group)
	for i, item := range plan.Searches {
		g.Go(func() error {
			// Pace every item after the first batch to stay under
			// provider rate limits.
			if i/batchSize > 0 {
				select {
				case <-time.After(p.cfg.BatchDelay + jitter()):
				case <-ctx.Done():
					return fmt.Errorf("pacing wait: %w", ctx.Err())
				}
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				return fmt.Errorf("acquiring search slot: %w", err)
			}
			defer sem.Release(1)

			summaries[i] = p.processItem(ctx, topic, item, progress)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// processItem produces the summary for one planned search. It never fails:
// a cache hit returns immediately, an empty result set returns a "no
// results" sentinel without retrying, and exhausted retries return a
// failure sentinel naming the query and the attempt count.
func (p *Pipeline) processItem(ctx context.Context, topic string, item types.SearchItem, progress ProgressFunc) string {
	key := cache.Key(topic, item.Query)
	if v, ok := p.cache.Get(key); ok {
		fmt.Fprintf(p.log, "cache hit for %q\n", item.Query)
		emit(progress, "Using cached summary for: "+item.Query)
		return v
	}

	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		emit(progress, fmt.Sprintf("Searching: %s (attempt %d)", item.Query, attempt))

		summary, err := p.searchAndSummarize(ctx, item.Query, progress)
		if err == nil {
			p.cache.Set(key, summary)
			emit(progress, "Completed: "+item.Query)
			return summary
		}
		if errors.Is(err, errNoResults) {
			fmt.Fprintf(p.log, "no results for %q\n", item.Query)
			return noResultsSentinel(item.Query)
		}

		fmt.Fprintf(p.log, "attempt %d/%d failed for %q: %v\n", attempt, p.cfg.MaxRetries, item.Query, err)
		if attempt == p.cfg.MaxRetries {
			break
		}

		wait := time.Duration(attempt)*backoffBase + jitter()
		emit(progress, fmt.Sprintf("Retrying %s in %.1fs...", item.Query, wait.Seconds()))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return failureSentinel(item.Query, attempt)
		}
	}

	return failureSentinel(item.Query, p.cfg.MaxRetries)
}

// searchAndSummarize performs one search-then-summarize attempt.
func (p *Pipeline) searchAndSummarize(ctx context.Context, query string, progress ProgressFunc) (string, error) {
	results, err := p.search.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errNoResults
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Text())
	}
	combined := truncate(strings.Join(parts, "\n"), p.cfg.TextChunkSize)

	emit(progress, "Summarizing results for: "+query)
	summary, err := p.llm.Complete(ctx, agent.SummarizerInstructions, combined)
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}

	p.costs.Add(p.cfg.SummaryCost)
	return strings.TrimSpace(summary), nil
}
