// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/deep-research/internal/agent"
	"github.com/pdiddy/deep-research/pkg/types"
)

// synthesize turns the accumulated summaries into the structured report.
// There is no local fallback: a model failure here fails the run, since the
// report is the pipeline's entire purpose.
func (p *Pipeline) synthesize(ctx context.Context, topic string, summaries []string) (types.ResearchReport, error) {
	combined := truncate(strings.Join(summaries, "\n\n"), p.cfg.ReportChunkSize)
	input := fmt.Sprintf("Research topic: %s\n\nResearch summaries:\n\n%s", topic, combined)

	var report types.ResearchReport
	if err := p.llm.CompleteJSON(ctx, agent.WriterInstructions, input, "research_report", &report); err != nil {
		return types.ResearchReport{}, err
	}
	p.costs.Add(p.cfg.SynthesisCost)
	return report, nil
}
