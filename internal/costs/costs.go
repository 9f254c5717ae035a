// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package costs tracks model and provider call counts and estimated spend
// for a single pipeline run.
package costs

import (
	"math"
	"sync"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Tracker accumulates the call count and estimated spend of one run. It is
// run-scoped: Reset is called at the start of every run and increments from
// concurrent search tasks are serialized, so a snapshot never observes a
// count without its matching estimate.
type Tracker struct {
	mu        sync.Mutex
	calls     int
	estimated float64
}

// NewTracker returns a zeroed tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Reset zeroes the call count and the spend estimate.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = 0
	t.estimated = 0
}

// Add records one call with the given spend estimate in USD.
func (t *Tracker) Add(unitCost float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	t.estimated += unitCost
}

// Snapshot returns the current totals with the estimate rounded to 4 decimals.
func (t *Tracker) Snapshot() types.CostSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return types.CostSnapshot{
		APICalls: t.calls,
		CostUSD:  math.Round(t.estimated*10000) / 10000,
	}
}
