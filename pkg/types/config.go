package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "deep-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchProvider identifies a web search binding.
type SearchProvider string

const (
	// ProviderDuckDuckGo is the keyless binding that scrapes the
	// DuckDuckGo lite HTML interface.
	ProviderDuckDuckGo SearchProvider = "duckduckgo"

	// ProviderTavily is the API-key binding for the Tavily search API.
	ProviderTavily SearchProvider = "tavily"
)

// SearchConfig holds settings for the web search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Provider selects the search binding: duckduckgo or tavily.
	Provider SearchProvider `json:"provider" yaml:"provider"`

	// MaxResults is the maximum number of snippets fetched per query (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// TavilyAPIKey authenticates the Tavily binding. Ignored by DuckDuckGo.
	TavilyAPIKey string `json:"tavily_api_key,omitempty" yaml:"tavily_api_key,omitempty"`

	// TavilyDepth is Tavily's search depth parameter: basic or advanced.
	TavilyDepth string `json:"tavily_depth,omitempty" yaml:"tavily_depth,omitempty"`
}

// AIConfig holds settings for the language-model client.
type AIConfig struct {
	// Model is the chat model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint. Empty means the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// PipelineConfig holds the orchestration policy for a research run.
type PipelineConfig struct {
	// MaxRetries is the number of attempts per search item (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxConcurrentSearches bounds how many search items are in flight
	// at once (default 2, kept low to stay under provider rate limits).
	MaxConcurrentSearches int `json:"max_concurrent_searches" yaml:"max_concurrent_searches"`

	// BatchDelay is the pacing delay applied to every item after the
	// first concurrency batch (default 2.5s).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// TextChunkSize caps the snippet text handed to the summarizer (default 4000).
	TextChunkSize int `json:"text_chunk_size" yaml:"text_chunk_size"`

	// ReportChunkSize caps the combined summaries handed to the report
	// writer (default 20000).
	ReportChunkSize int `json:"report_chunk_size" yaml:"report_chunk_size"`

	// MinUsableSummaries is the floor of non-sentinel summaries required
	// before synthesis runs (default 3).
	MinUsableSummaries int `json:"min_usable_summaries" yaml:"min_usable_summaries"`

	// PlanCost, SummaryCost, and SynthesisCost are the per-call spend
	// estimates fed to the cost tracker (defaults 0.002, 0.002, 0.005 USD).
	PlanCost      float64 `json:"plan_cost" yaml:"plan_cost"`
	SummaryCost   float64 `json:"summary_cost" yaml:"summary_cost"`
	SynthesisCost float64 `json:"synthesis_cost" yaml:"synthesis_cost"`
}

// CacheConfig holds settings for the persistent summary cache.
type CacheConfig struct {
	// Path is the cache document location (default "research-cache.json").
	Path string `json:"path" yaml:"path"`
}

// ArchiveConfig holds settings for the run archive.
type ArchiveConfig struct {
	// Dir is the directory holding the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`
}

// ServeConfig holds settings for the HTTP presentation layer.
type ServeConfig struct {
	// Addr is the listen address (default ":7860").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all component configurations.
type Config struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Serve    ServeConfig    `json:"serve" yaml:"serve"`
}
