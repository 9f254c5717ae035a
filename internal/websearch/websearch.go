// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package websearch queries web search providers and returns text snippets.
// Two interchangeable bindings implement the Provider interface per the
// Strategy pattern: a keyless DuckDuckGo scraper and the Tavily API.
package websearch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Text returns the snippet body used as summarizer input, falling back to
// the title when the provider returned no snippet.
func (r Result) Text() string {
	if strings.TrimSpace(r.Snippet) != "" {
		return r.Snippet
	}
	return r.Title
}

// Provider executes one query against a single search engine.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Client wraps a Provider and isolates it from the pipeline: results are
// truncated to the configured bound and provider-specific error types never
// cross this boundary (errors are flattened into plain messages). An empty
// result slice with a nil error is a valid answer, not a failure.
type Client struct {
	provider   Provider
	maxResults int
	warnings   io.Writer
}

// NewClient builds a Client around p. maxResults <= 0 defaults to 5.
// Warnings go to w (os.Stderr if nil).
func NewClient(p Provider, maxResults int, w io.Writer) *Client {
	if maxResults <= 0 {
		maxResults = 5
	}
	if w == nil {
		w = os.Stderr
	}
	return &Client{provider: p, maxResults: maxResults, warnings: w}
}

// ProviderName reports which binding the client is using.
func (c *Client) ProviderName() string {
	return c.provider.Name()
}

// Search runs one query. Transport errors, rate-limit responses, and
// malformed payloads surface as a generic error the caller may retry;
// results beyond the configured bound are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	results, err := c.provider.Search(ctx, query, c.maxResults)
	if err != nil {
		fmt.Fprintf(c.warnings, "warning: %s search failed for %q: %v\n", c.provider.Name(), query, err)
		return nil, fmt.Errorf("%s search: %v", c.provider.Name(), err)
	}
	if len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	return results, nil
}

// NewProvider builds the binding selected by cfg.Provider. An empty provider
// name defaults to DuckDuckGo, the keyless binding.
func NewProvider(cfg types.SearchConfig) (Provider, error) {
	switch cfg.Provider {
	case types.ProviderDuckDuckGo, "":
		return NewDuckDuckGo(cfg.HTTPConfig), nil
	case types.ProviderTavily:
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily provider selected but no API key configured")
		}
		return NewTavily(cfg.TavilyAPIKey, cfg.TavilyDepth, cfg.HTTPConfig), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q: use duckduckgo or tavily", cfg.Provider)
	}
}
