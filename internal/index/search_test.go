// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-engine/pkg/types"
)

func TestPrepareMatchQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantMatch string
		wantTerms []string
	}{
		{"single term", "network", `"network"*`, []string{"network"}},
		{"multiple terms", "neural network", `"neural"* OR "network"*`, []string{"neural", "network"}},
		{"punctuation stripped", `"neural-network!"`, `"neural"* OR "network"*`, []string{"neural", "network"}},
		{"lowercased", "NETWORK", `"network"*`, []string{"network"}},
		{"empty", "   ", "", nil},
		{"only punctuation", "!!!", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, terms := prepareMatchQuery(tt.query)
			assert.Equal(t, tt.wantMatch, match)
			assert.Equal(t, tt.wantTerms, terms)
		})
	}
}

func TestSearchRanksByFieldWeight(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Categories are pinned to a non-boosted label so only field weights
	// separate the two records: three title occurrences score 9.0, one
	// abstract occurrence scores 2.0.
	records := []types.PatentRecord{
		{
			ID:       "TITLE-HIT",
			Title:    "Conveyor to conveyor transfer for conveyor lines",
			Abstract: "A drive assembly for industrial belts.",
			Category: "other",
		},
		{
			ID:       "ABSTRACT-HIT",
			Title:    "Industrial belt assembly",
			Abstract: "A conveyor for moving goods between stations.",
			Category: "other",
		},
	}
	require.NoError(t, s.Rebuild(ctx, records))

	results, err := s.Search(ctx, "conveyor", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "TITLE-HIT", results[0].ID)
	assert.Equal(t, 9.0, results[0].Score)
	assert.Equal(t, "ABSTRACT-HIT", results[1].ID)
	assert.Equal(t, 2.0, results[1].Score)
}

func TestSearchCategoryBoost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Equal term frequency everywhere; only the category differs.
	records := []types.PatentRecord{
		{
			ID:       "PLAIN",
			Title:    "Distributed inference scheduler",
			Abstract: "Schedules workloads across machines.",
			Category: "other",
		},
		{
			ID:       "BOOSTED",
			Title:    "Distributed inference pipeline",
			Abstract: "Pipelines workloads across machines.",
			Category: "artificial_intelligence",
		},
	}
	require.NoError(t, s.Rebuild(ctx, records))

	results, err := s.Search(ctx, "inference", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "BOOSTED", results[0].ID)
	assert.InDelta(t, 3.6, results[0].Score, 1e-9)
	assert.InDelta(t, 3.0, results[1].Score, 1e-9)
}

func TestSearchPrefixMatching(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx, sampleRecords()))

	results, err := s.Search(ctx, "photovolt", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "US003", results[0].ID)
}

func TestSearchEmptyQuery(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Rebuild(context.Background(), sampleRecords()))

	results, err := s.Search(context.Background(), "  !! ", SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx, sampleRecords()))

	t.Run("category", func(t *testing.T) {
		results, err := s.Search(ctx, "array", SearchOptions{Category: "telecommunications"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "US002", results[0].ID)
	})

	t.Run("assignee substring", func(t *testing.T) {
		results, err := s.Search(ctx, "coating", SearchOptions{Assignee: "Helios"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "US003", results[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		results, err := s.Search(ctx, "accelerator antenna coating",
			SearchOptions{DateFrom: "2023-01-01", DateTo: "2023-12-31", Limit: 10})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Contains(t, r.PublicationDate, "2023")
		}
	})

	t.Run("date bound ignored when half open", func(t *testing.T) {
		results, err := s.Search(ctx, "accelerator antenna coating",
			SearchOptions{DateFrom: "2023-01-01", Limit: 10})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}

func TestSearchLimits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var records []types.PatentRecord
	for i := 0; i < 15; i++ {
		records = append(records, types.PatentRecord{
			ID:       string(rune('A' + i)),
			Title:    "Turbine blade cooling channel",
			Abstract: "Cooling passages inside a turbine blade.",
			Category: "other",
		})
	}
	require.NoError(t, s.Rebuild(ctx, records))

	results, err := s.Search(ctx, "turbine", SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, defaultLimit)

	results, err = s.Search(ctx, "turbine", SearchOptions{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = s.Search(ctx, "turbine", SearchOptions{Limit: 3, CandidateLimit: 15})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchRoundTripsListFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx, sampleRecords()))

	results, err := s.Search(ctx, "systolic", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"Grace Hopper", "Alan Turing"}, results[0].Inventors)
	assert.Equal(t, []string{"G06N3/08"}, results[0].IPCClasses)
}

func TestSearchByField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx, sampleRecords()))

	results, err := s.SearchByField(ctx, "assignee", "Acme", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.SearchByField(ctx, "inventors", "Lamarr", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "US002", results[0].ID)

	results, err = s.SearchByField(ctx, "category", "energy", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchByFieldRejectsUnknownField(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SearchByField(context.Background(), "country", "US", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidField)
}
