// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{DBPath: filepath.Join(t.TempDir(), "data", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRuns() []types.Run {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []types.Run{
		{
			ID: "run-1", SourceName: "a.pdf", OutputName: "tailored_a.pdf",
			Strategy: types.StrategyParagraphFlow, Provider: types.ProviderGemini,
			Status: types.RunSucceeded, StartedAt: base, FinishedAt: base.Add(3 * time.Second),
		},
		{
			ID: "run-2", SourceName: "b.pdf",
			Strategy: types.StrategyLineDraw, Provider: types.ProviderOpenAI,
			Status: types.RunFailed, ErrorKind: types.KindTransform, Error: "transform: rewriting resume: 429",
			StartedAt: base.Add(time.Minute), FinishedAt: base.Add(time.Minute + time.Second),
		},
		{
			ID: "run-3", SourceName: "c.pdf", OutputName: "tailored_c.pdf",
			Strategy: types.StrategyParagraphFlow, Provider: types.ProviderClaude,
			Status: types.RunSucceeded, StartedAt: base.Add(2 * time.Minute), FinishedAt: base.Add(2*time.Minute + 2*time.Second),
		},
	}
}

func TestNewStoreRequiresPath(t *testing.T) {
	_, err := NewStore(types.HistoryConfig{})
	assert.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, r := range sampleRuns() {
		require.NoError(t, s.Record(ctx, r))
	}

	runs, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
	assert.Equal(t, "run-1", runs[2].ID)

	failed := runs[1]
	assert.Equal(t, types.RunFailed, failed.Status)
	assert.Equal(t, types.KindTransform, failed.ErrorKind)
	assert.Equal(t, types.StrategyLineDraw, failed.Strategy)
	assert.Equal(t, types.ProviderOpenAI, failed.Provider)
	assert.Empty(t, failed.OutputName)
	assert.True(t, sampleRuns()[1].StartedAt.Equal(failed.StartedAt))
}

func TestListFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, r := range sampleRuns() {
		require.NoError(t, s.Record(ctx, r))
	}

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"limit", Filter{Limit: 2}, []string{"run-3", "run-2"}},
		{"succeeded", Filter{Status: types.RunSucceeded}, []string{"run-3", "run-1"}},
		{"failed", Filter{Status: types.RunFailed}, []string{"run-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := s.List(ctx, tt.f)
			require.NoError(t, err)
			var ids []string
			for _, r := range runs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRecordReplacesSameID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	r := sampleRuns()[0]
	require.NoError(t, s.Record(ctx, r))

	r.Status = types.RunFailed
	r.ErrorKind = types.KindRender
	require.NoError(t, s.Record(ctx, r))

	runs, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, types.RunFailed, runs[0].Status)
}

func TestRecordRejectsEmptyID(t *testing.T) {
	s := testStore(t)
	assert.Error(t, s.Record(context.Background(), types.Run{SourceName: "x.pdf"}))
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(types.HistoryConfig{DBPath: path})
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), sampleRuns()[0]))
	require.NoError(t, s.Close())

	s, err = NewStore(types.HistoryConfig{DBPath: path})
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for _, r := range sampleRuns() {
		require.NoError(t, s.Record(ctx, r))
	}

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &buf, Filter{Status: types.RunSucceeded}))

	var got []types.Run
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "run-3", got[0].ID)
	assert.Equal(t, "tailored_c.pdf", got[0].OutputName)
	assert.Contains(t, buf.String(), "source_name: c.pdf")
}

func TestExportJSONEmpty(t *testing.T) {
	s := testStore(t)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), &buf, Filter{}))

	var got []types.Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Empty(t, got)
	assert.Equal(t, "[]\n", buf.String())
}
