// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/deep-research/internal/agent"
	"github.com/pdiddy/deep-research/internal/cache"
	"github.com/pdiddy/deep-research/internal/costs"
	"github.com/pdiddy/deep-research/internal/pipeline"
	"github.com/pdiddy/deep-research/internal/secrets"
	"github.com/pdiddy/deep-research/internal/websearch"
	"github.com/pdiddy/deep-research/pkg/types"
)

func init() {
	viper.SetDefault("search.provider", string(types.ProviderDuckDuckGo))
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "deep-research/"+version)
	viper.SetDefault("search.tavily_depth", "basic")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("pipeline.max_retries", 3)
	viper.SetDefault("pipeline.max_concurrent_searches", 2)
	viper.SetDefault("pipeline.batch_delay", 2500*time.Millisecond)
	viper.SetDefault("pipeline.text_chunk_size", 4000)
	viper.SetDefault("pipeline.report_chunk_size", 20000)
	viper.SetDefault("pipeline.min_usable_summaries", 3)
	viper.SetDefault("pipeline.plan_cost", 0.002)
	viper.SetDefault("pipeline.summary_cost", 0.002)
	viper.SetDefault("pipeline.synthesis_cost", 0.005)
	viper.SetDefault("cache.path", "research-cache.json")
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("serve.addr", ":7860")
}

// loadConfig assembles the full configuration from config file, environment,
// and .secrets/. API keys resolve secrets first, then environment overrides.
func loadConfig() types.Config {
	return types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			Provider:     types.SearchProvider(viper.GetString("search.provider")),
			MaxResults:   viper.GetInt("search.max_results"),
			TavilyAPIKey: secrets.Resolve(loadedSecrets, "tavily-api-key", "TAVILY_API_KEY"),
			TavilyDepth:  viper.GetString("search.tavily_depth"),
		},
		AI: types.AIConfig{
			Model:   viper.GetString("ai.model"),
			APIKey:  secrets.Resolve(loadedSecrets, "openai-api-key", "OPENAI_API_KEY"),
			BaseURL: viper.GetString("ai.base_url"),
		},
		Pipeline: types.PipelineConfig{
			MaxRetries:            viper.GetInt("pipeline.max_retries"),
			MaxConcurrentSearches: viper.GetInt("pipeline.max_concurrent_searches"),
			BatchDelay:            viper.GetDuration("pipeline.batch_delay"),
			TextChunkSize:         viper.GetInt("pipeline.text_chunk_size"),
			ReportChunkSize:       viper.GetInt("pipeline.report_chunk_size"),
			MinUsableSummaries:    viper.GetInt("pipeline.min_usable_summaries"),
			PlanCost:              viper.GetFloat64("pipeline.plan_cost"),
			SummaryCost:           viper.GetFloat64("pipeline.summary_cost"),
			SynthesisCost:         viper.GetFloat64("pipeline.synthesis_cost"),
		},
		Cache:   types.CacheConfig{Path: viper.GetString("cache.path")},
		Archive: types.ArchiveConfig{Dir: viper.GetString("archive.dir")},
		Serve:   types.ServeConfig{Addr: viper.GetString("serve.addr")},
	}
}

// buildPipeline wires a ready-to-run pipeline from configuration. Progress
// and warnings go to log.
func buildPipeline(cfg types.Config, log io.Writer) (*pipeline.Pipeline, error) {
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("no OpenAI API key: add .secrets/openai-api-key or set OPENAI_API_KEY")
	}

	provider, err := websearch.NewProvider(cfg.Search)
	if err != nil {
		return nil, err
	}
	search := websearch.NewClient(provider, cfg.Search.MaxResults, log)

	llm := agent.NewOpenAI(cfg.AI)
	c := cache.Open(cfg.Cache.Path, log)
	tracker := costs.NewTracker()

	return pipeline.New(llm, search, c, tracker, cfg.Pipeline, log), nil
}
