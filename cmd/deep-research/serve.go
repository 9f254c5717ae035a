// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/pipeline"
	"github.com/pdiddy/deep-research/internal/render"
	"github.com/pdiddy/deep-research/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the research form over HTTP",
	Long: `Serve starts a local HTTP server with a topic submission form. Each
submitted topic runs the full research pipeline and renders the report as
an HTML page. Successful runs are archived.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Serve.Addr = addr
	}

	p, err := buildPipeline(cfg, os.Stderr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(render.Index())
	})
	mux.HandleFunc("/research", handleResearch(p, cfg))

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Serve.Addr)
	return srv.ListenAndServe()
}

func handleResearch(p *pipeline.Pipeline, cfg types.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		topic := strings.TrimSpace(r.FormValue("topic"))
		if len(topic) < minTopicLength {
			http.Error(w, fmt.Sprintf("topic too short: provide at least %d characters", minTopicLength), http.StatusBadRequest)
			return
		}

		res := p.Run(r.Context(), topic, func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		})
		if res.Status == types.StatusSuccess {
			archiveRun(r.Context(), cfg, res)
		}

		page, err := render.Page(res)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	}
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :7860)")

	rootCmd.AddCommand(serveCmd)
}
