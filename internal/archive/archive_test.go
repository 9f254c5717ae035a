package archive

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deep-research/pkg/types"
)

func successResult(topic string) types.RunResult {
	return types.RunResult{
		Status: types.StatusSuccess,
		Topic:  topic,
		Plan: &types.SearchPlan{Searches: []types.SearchItem{
			{Reason: "background", Query: "q1"},
			{Reason: "mechanism", Query: "q2"},
		}},
		Report: &types.ResearchReport{
			Title:      "Report on " + topic,
			Summary:    "Summary.",
			Findings:   []string{"a", "b"},
			Detailed:   "### Body",
			Confidence: "Medium",
		},
		Summaries:       []string{"s1", "s2"},
		Costs:           types.CostSnapshot{APICalls: 4, CostUSD: 0.011},
		DurationSeconds: 12.34,
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, successResult("printing press"))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "printing press", got.Topic)
	assert.Equal(t, "Report on printing press", got.Title)
	assert.Equal(t, "Medium", got.Confidence)
	assert.Equal(t, 2, got.Searches)
	assert.Equal(t, 4, got.APICalls)
	require.NotNil(t, got.Report)
	assert.Equal(t, []string{"a", "b"}, got.Report.Findings)
	require.NotNil(t, got.Plan)
	assert.Equal(t, "q1", got.Plan.Searches[0].Query)
}

func TestSaveRejectsFailedRuns(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save(context.Background(), types.RunResult{
		Status: types.StatusError,
		Topic:  "t",
		Error:  "planning: boom",
	})
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, topic := range []string{"first", "second", "third"} {
		_, err := s.Save(ctx, successResult(topic))
		require.NoError(t, err)
	}

	records, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "third", records[0].Topic)
	assert.Equal(t, "second", records[1].Topic)
	assert.Nil(t, records[0].Report, "List must not hydrate report bodies")
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), 999)
	assert.ErrorContains(t, err, "not found")
}

func TestExportYAML(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, successResult("container shipping"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, id, &buf))

	out := buf.String()
	assert.Contains(t, out, "topic: container shipping")
	assert.Contains(t, out, "title: Report on container shipping")
	assert.Contains(t, out, "confidence: Medium")
}
