package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTopics(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTopicsFile(t *testing.T) {
	path := writeTopics(t, "topics:\n  - History of the printing press\n  - \"  \"\n  - Rise of container shipping\n")

	topics, err := ReadTopicsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"History of the printing press", "Rise of container shipping"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v", topics)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i], want[i])
		}
	}
}

func TestReadTopicsFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), ""},
		{"invalid yaml", "", "topics: [unclosed"},
		{"no topics", "", "topics: []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = writeTopics(t, tt.content)
			}
			if _, err := ReadTopicsFile(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
