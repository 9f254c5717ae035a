// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/deep-research/internal/agent"
	"github.com/pdiddy/deep-research/pkg/types"
)

// plan asks the planner for the search plan. Errors propagate to Run
// unretried: retry policy lives in the search stage only.
func (p *Pipeline) plan(ctx context.Context, topic string) (types.SearchPlan, error) {
	var plan types.SearchPlan
	err := p.llm.CompleteJSON(ctx, agent.PlannerInstructions, "Research topic: "+topic, "search_plan", &plan)
	if err != nil {
		return types.SearchPlan{}, err
	}
	if len(plan.Searches) == 0 {
		return types.SearchPlan{}, fmt.Errorf("planner returned an empty search plan")
	}
	p.costs.Add(p.cfg.PlanCost)
	fmt.Fprintf(p.log, "planned %d searches\n", len(plan.Searches))
	return plan, nil
}
