package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/deep-research/internal/httputil"
	"github.com/pdiddy/deep-research/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func tavilyServer(t *testing.T, handler http.HandlerFunc) func() {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := tavilyEndpoint
	tavilyEndpoint = ts.URL
	return func() {
		tavilyEndpoint = old
		ts.Close()
	}
}

func TestTavilySearch(t *testing.T) {
	var gotReq tavilyRequest
	cleanup := tavilyServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{
				{"title": "A", "url": "https://a.example", "content": "alpha"},
				{"title": "B", "url": "https://b.example", "content": "beta"},
			},
		})
	})
	defer cleanup()

	tv := NewTavily("tvly-key", "", types.HTTPConfig{})
	results, err := tv.Search(context.Background(), "golang generics", 5)
	if err != nil {
		t.Fatal(err)
	}

	if gotReq.Query != "golang generics" {
		t.Errorf("query = %q", gotReq.Query)
	}
	if gotReq.APIKey != "tvly-key" {
		t.Errorf("api_key = %q", gotReq.APIKey)
	}
	if gotReq.SearchDepth != "basic" {
		t.Errorf("search_depth = %q, want basic default", gotReq.SearchDepth)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].Snippet != "alpha" {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
}

func TestTavilySearchRetriesOn429(t *testing.T) {
	var calls int32
	cleanup := tavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]string{{"title": "A", "url": "u", "content": "c"}},
		})
	})
	defer cleanup()

	tv := NewTavily("tvly-key", "basic", types.HTTPConfig{})
	results, err := tv.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls)
	}
	if len(results) != 1 {
		t.Errorf("len = %d, want 1", len(results))
	}
}

func TestTavilySearchServerError(t *testing.T) {
	cleanup := tavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "key invalid", http.StatusUnauthorized)
	})
	defer cleanup()

	tv := NewTavily("bad-key", "basic", types.HTTPConfig{})
	if _, err := tv.Search(context.Background(), "q", 5); err == nil {
		t.Fatal("expected an error on HTTP 401")
	}
}
