// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists search summaries across runs in a single JSON
// document. Caching is best-effort: a missing or corrupt document loads as
// an empty cache, and failed writes are logged and swallowed so persistence
// problems never fail a pipeline run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Entry is one cached summary with the time it was stored. Entries never
// expire; the document grows until cleared externally.
type Entry struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Cache is a write-through key/value store backed by one JSON file. A single
// process is assumed to own the file; mutations from concurrent search tasks
// within that process are serialized by an internal mutex.
type Cache struct {
	mu       sync.Mutex
	path     string
	data     map[string]Entry
	warnings io.Writer
}

// Key derives the cache key for a (topic, query) pair. Keys are scoped by
// topic so identical queries under different topics never share an entry.
func Key(topic, query string) string {
	h := sha256.Sum256([]byte(topic + "\x00" + query))
	return hex.EncodeToString(h[:])
}

// Open loads the cache document at path. A missing or unparseable document
// is treated as an empty cache, never an error. Warnings about unusable
// documents and failed saves go to w (os.Stderr if nil).
func Open(path string, w io.Writer) *Cache {
	if w == nil {
		w = os.Stderr
	}
	c := &Cache{path: path, data: map[string]Entry{}, warnings: w}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: could not read cache %s: %v\n", path, err)
		}
		return c
	}
	if err := json.Unmarshal(raw, &c.data); err != nil {
		fmt.Fprintf(w, "warning: cache %s is corrupt, starting empty: %v\n", path, err)
		c.data = map[string]Entry{}
	}
	return c
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	return e.Value, ok
}

// Set stores value under key and immediately rewrites the whole document.
// A failed write is logged and swallowed.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = Entry{
		Value:     value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	c.save()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Clear drops all entries and removes the backing document.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string]Entry{}
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache %s: %w", c.path, err)
	}
	return nil
}

// save must be called with the mutex held.
func (c *Cache) save() {
	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		fmt.Fprintf(c.warnings, "warning: could not encode cache: %v\n", err)
		return
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		fmt.Fprintf(c.warnings, "warning: could not save cache %s: %v\n", c.path, err)
	}
}
