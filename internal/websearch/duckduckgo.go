// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/deep-research/pkg/types"
)

// ddgEndpoint is the DuckDuckGo lite interface, which has a stable enough
// HTML structure to parse. Package-level var for test substitution.
var ddgEndpoint = "https://lite.duckduckgo.com/lite/"

// ddgMinInterval is the minimum spacing between DuckDuckGo requests across
// all instances in the process. DuckDuckGo throttles aggressively.
var ddgMinInterval = time.Second

// ddgThrottle serializes request timing across goroutines.
var ddgThrottle struct {
	mu   sync.Mutex
	last time.Time
}

// DuckDuckGo is the keyless search binding. It scrapes the lite HTML
// interface, so it needs no configuration beyond HTTP settings.
type DuckDuckGo struct {
	client    *http.Client
	userAgent string
}

// NewDuckDuckGo builds the binding with cfg's timeout and user agent.
func NewDuckDuckGo(cfg types.HTTPConfig) *DuckDuckGo {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	return &DuckDuckGo{
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
	}
}

// Name implements Provider.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search posts the query to the lite interface and parses the result rows.
// A 429 response is returned as an error so the pipeline's retry policy can
// back off; this binding does not sleep on its own beyond the global pacing.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if err := d.pace(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ddgEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading duckduckgo response: %w", err)
	}

	return parseLiteHTML(string(body), maxResults), nil
}

// pace enforces the global minimum spacing between requests.
func (d *DuckDuckGo) pace(ctx context.Context) error {
	ddgThrottle.mu.Lock()
	wait := time.Until(ddgThrottle.last.Add(ddgMinInterval))
	if wait > 0 {
		ddgThrottle.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		ddgThrottle.mu.Lock()
	}
	ddgThrottle.last = time.Now()
	ddgThrottle.mu.Unlock()
	return nil
}

var (
	ddgLinkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>(.*?)</a>`)
	ddgLinkPatternAlt = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>(.*?)</a>`)
	ddgSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>(.*?)</td>`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// parseLiteHTML extracts result rows from the lite page. Link and snippet
// cells appear in document order, one snippet per link.
func parseLiteHTML(page string, maxResults int) []Result {
	links := ddgLinkPattern.FindAllStringSubmatch(page, -1)
	if len(links) == 0 {
		links = ddgLinkPatternAlt.FindAllStringSubmatch(page, -1)
	}
	snippets := ddgSnippetPattern.FindAllStringSubmatch(page, -1)

	var results []Result
	for i, m := range links {
		if len(m) < 3 {
			continue
		}
		link := strings.TrimSpace(m[1])
		title := stripHTML(m[2])
		if link == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) && len(snippets[i]) > 1 {
			snippet = stripHTML(snippets[i][1])
		}

		results = append(results, Result{Title: title, URL: link, Snippet: snippet})
		if maxResults > 0 && len(results) >= maxResults {
			break
		}
	}
	return results
}

// stripHTML removes tags and decodes the entities the lite page emits.
func stripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return strings.TrimSpace(replacer.Replace(s))
}
