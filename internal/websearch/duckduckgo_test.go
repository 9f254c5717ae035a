package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

func init() {
	// Disable pacing between requests for tests.
	ddgMinInterval = 0
}

const litePage = `<html><body><table>
<tr><td><a rel="nofollow" class='result-link' href='https://example.com/one'>First &amp; Best Result</a></td></tr>
<tr><td class='result-snippet'>Snippet one with <b>markup</b> inside.</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://example.com/two'>Second Result</a></td></tr>
<tr><td class='result-snippet'>Snippet two.</td></tr>
<tr><td><a rel="nofollow" class='result-link' href='https://example.com/three'>Third Result</a></td></tr>
<tr><td class='result-snippet'>Snippet three.</td></tr>
</table></body></html>`

func TestParseLiteHTML(t *testing.T) {
	results := parseLiteHTML(litePage, 5)
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}
	if results[0].Title != "First & Best Result" {
		t.Errorf("title = %q, want entity decoded", results[0].Title)
	}
	if results[0].URL != "https://example.com/one" {
		t.Errorf("url = %q", results[0].URL)
	}
	if results[0].Snippet != "Snippet one with markup inside." {
		t.Errorf("snippet = %q, want tags stripped", results[0].Snippet)
	}
}

func TestParseLiteHTMLRespectsMaxResults(t *testing.T) {
	results := parseLiteHTML(litePage, 2)
	if len(results) != 2 {
		t.Errorf("len = %d, want 2", len(results))
	}
}

func TestParseLiteHTMLNoResults(t *testing.T) {
	results := parseLiteHTML("<html><body>No results.</body></html>", 5)
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}

func TestDuckDuckGoSearch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotQuery = r.FormValue("q")
		fmt.Fprint(w, litePage)
	}))
	defer ts.Close()

	old := ddgEndpoint
	ddgEndpoint = ts.URL
	defer func() { ddgEndpoint = old }()

	d := NewDuckDuckGo(types.HTTPConfig{})
	results, err := d.Search(context.Background(), "printing press history", 5)
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "printing press history" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(results) != 3 {
		t.Errorf("len = %d, want 3", len(results))
	}
}

func TestDuckDuckGoSearchRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := ddgEndpoint
	ddgEndpoint = ts.URL
	defer func() { ddgEndpoint = old }()

	d := NewDuckDuckGo(types.HTTPConfig{})
	_, err := d.Search(context.Background(), "q", 5)
	if err == nil {
		t.Fatal("expected an error on HTTP 429")
	}
}
