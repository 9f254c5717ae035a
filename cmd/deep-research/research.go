// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/pipeline"
	"github.com/pdiddy/deep-research/internal/render"
	"github.com/pdiddy/deep-research/pkg/types"
)

// minTopicLength is the minimum length for a research topic. Shorter inputs
// are rejected before any API call is made.
const minTopicLength = 10

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Run a full research pipeline for a topic",
	Long: `Research plans a set of web searches for the topic, executes and
summarizes each search, and synthesizes the summaries into a structured
report. Successful runs are archived for later retrieval with history.

Provide the topic as arguments, or use --file to run a batch of topics
from a YAML file with a top-level "topics" list.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	var topics []string
	switch {
	case file != "":
		var err error
		topics, err = pipeline.ReadTopicsFile(file)
		if err != nil {
			return err
		}
	case len(args) > 0:
		topics = []string{strings.Join(args, " ")}
	default:
		return fmt.Errorf("topic required: pass it as arguments or use --file")
	}

	for _, topic := range topics {
		if len(strings.TrimSpace(topic)) < minTopicLength {
			return fmt.Errorf("topic %q too short: provide at least %d characters", topic, minTopicLength)
		}
	}

	cfg := loadConfig()
	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.Search.Provider = types.SearchProvider(provider)
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.AI.Model = model
	}
	p, err := buildPipeline(cfg, os.Stderr)
	if err != nil {
		return err
	}

	var failed int
	for i, topic := range topics {
		if len(topics) > 1 {
			fmt.Fprintf(os.Stderr, "\n[%d/%d] %s\n", i+1, len(topics), topic)
		}

		res := p.Run(cmd.Context(), topic, func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		})

		if res.Status == types.StatusSuccess {
			archiveRun(cmd.Context(), cfg, res)
		} else {
			failed++
		}

		if err := writeResult(cmd, res); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d topic(s) failed", failed, len(topics))
	}
	return nil
}

// archiveRun saves a successful run. Archive failures are reported but do
// not fail the research run itself.
func archiveRun(ctx context.Context, cfg types.Config, res types.RunResult) {
	store, err := archive.Open(cfg.Archive.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: archive unavailable: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.Save(ctx, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run not archived: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Archived as run %d\n", id)
}

func writeResult(cmd *cobra.Command, res types.RunResult) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	htmlOutput, _ := cmd.Flags().GetString("html")

	if htmlOutput != "" {
		page, err := render.Page(res)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlOutput, page, 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", htmlOutput)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printResult(res)
	return nil
}

func printResult(res types.RunResult) {
	if res.Status != types.StatusSuccess {
		fmt.Printf("Research failed: %s\n", res.Error)
		fmt.Printf("  API calls: %d  Cost: $%.4f  Duration: %.2fs\n",
			res.Costs.APICalls, res.Costs.CostUSD, res.DurationSeconds)
		return
	}

	r := res.Report
	fmt.Printf("\n%s\n%s\n\n", r.Title, strings.Repeat("=", len(r.Title)))
	fmt.Println(r.Summary)

	fmt.Println("\nKey findings:")
	for _, f := range r.Findings {
		fmt.Printf("  - %s\n", f)
	}

	fmt.Printf("\n%s\n\n", r.Detailed)
	fmt.Printf("Confidence: %s\n", r.Confidence)
	fmt.Printf("Searches: %d  API calls: %d  Cost: $%.4f  Duration: %.2fs\n",
		len(res.Plan.Searches), res.Costs.APICalls, res.Costs.CostUSD, res.DurationSeconds)
}

func init() {
	researchCmd.Flags().String("file", "", "YAML file with a list of topics to research in sequence")
	researchCmd.Flags().Bool("json", false, "output the full result envelope as JSON")
	researchCmd.Flags().String("html", "", "also write an HTML report to the given path")
	researchCmd.Flags().String("provider", "", "search provider: duckduckgo or tavily")
	researchCmd.Flags().String("model", "", "chat model identifier")

	rootCmd.AddCommand(researchCmd)
}
