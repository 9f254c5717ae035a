// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/archive"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived research runs (list, show, export)",
	Long: `History manages the archive of completed research runs. Use subcommands
to list past runs, show a full report, or export a run as YAML.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-40s  %-8s  %-5s  %-8s  %s\n",
		"ID", "Topic", "Searches", "Calls", "Cost", "Date")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 84))

	for _, r := range records {
		topic := r.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-40s  %-8d  %-5d  $%-7.4f  %s\n",
			r.ID, topic, r.Searches, r.APICalls, r.CostUSD, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d run(s)\n", len(records))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the full report of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	r := rec.Report
	fmt.Printf("Run %d: %s (%s)\n\n", rec.ID, rec.Topic, rec.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("%s\n%s\n\n%s\n", r.Title, strings.Repeat("=", len(r.Title)), r.Summary)

	fmt.Println("\nKey findings:")
	for _, f := range r.Findings {
		fmt.Printf("  - %s\n", f)
	}

	fmt.Printf("\n%s\n\n", r.Detailed)
	fmt.Printf("Confidence: %s\n", r.Confidence)
	fmt.Printf("Searches: %d  API calls: %d  Cost: $%.4f  Duration: %.2fs\n",
		rec.Searches, rec.APICalls, rec.CostUSD, rec.DurationSeconds)
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export an archived run as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return store.ExportYAML(cmd.Context(), id, out)
}

// --- shared helpers ---

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	dir, _ := cmd.Flags().GetString("archive-dir")
	if dir == "" {
		dir = loadConfig().Archive.Dir
	}
	return archive.Open(dir)
}

func init() {
	historyCmd.PersistentFlags().String("archive-dir", "", "archive directory (default from config)")

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyListCmd.Flags().Bool("json", false, "output as JSON")

	historyShowCmd.Flags().Bool("json", false, "output as JSON")

	historyExportCmd.Flags().String("output", "", "write YAML to a file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
