// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/patent-engine/pkg/types"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		rec   types.PatentRecord
		terms []string
		want  float64
	}{
		{
			name:  "title weighted highest",
			rec:   types.PatentRecord{Title: "laser diode", Category: "other"},
			terms: []string{"laser"},
			want:  3.0,
		},
		{
			name:  "abstract weight",
			rec:   types.PatentRecord{Abstract: "a laser source", Category: "other"},
			terms: []string{"laser"},
			want:  2.0,
		},
		{
			name:  "claims weight",
			rec:   types.PatentRecord{Claims: "1. A laser emitter.", Category: "other"},
			terms: []string{"laser"},
			want:  1.5,
		},
		{
			name:  "description weight",
			rec:   types.PatentRecord{Description: "the laser housing", Category: "other"},
			terms: []string{"laser"},
			want:  1.0,
		},
		{
			name: "frequencies accumulate across fields",
			rec: types.PatentRecord{
				Title:    "laser laser",
				Abstract: "laser",
				Category: "other",
			},
			terms: []string{"laser"},
			want:  2*3.0 + 2.0,
		},
		{
			name:  "matching is case insensitive",
			rec:   types.PatentRecord{Title: "LASER Diode", Category: "other"},
			terms: []string{"laser"},
			want:  3.0,
		},
		{
			name:  "boosted category multiplies",
			rec:   types.PatentRecord{Title: "laser diode", Category: "telecommunications"},
			terms: []string{"laser"},
			want:  3.0 * 1.2,
		},
		{
			name:  "boost does not rescue zero",
			rec:   types.PatentRecord{Title: "laser diode", Category: "artificial_intelligence"},
			terms: []string{"turbine"},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(&tt.rec, tt.terms), 1e-9)
		})
	}
}

func TestRescoreStableOnTies(t *testing.T) {
	candidates := []types.ScoredRecord{
		{PatentRecord: types.PatentRecord{ID: "first", Title: "pump", Category: "other"}},
		{PatentRecord: types.PatentRecord{ID: "second", Title: "pump", Category: "other"}},
		{PatentRecord: types.PatentRecord{ID: "third", Title: "pump pump", Category: "other"}},
	}
	rescore(candidates, []string{"pump"})

	assert.Equal(t, "third", candidates[0].ID)
	assert.Equal(t, "first", candidates[1].ID)
	assert.Equal(t, "second", candidates[2].ID)
}

func TestRescoreKeepsZeroScores(t *testing.T) {
	candidates := []types.ScoredRecord{
		{PatentRecord: types.PatentRecord{ID: "miss", Title: "valve", Category: "other"}},
	}
	rescore(candidates, []string{"pump"})

	assert.Len(t, candidates, 1)
	assert.Zero(t, candidates[0].Score)
}

func TestFeatureVector(t *testing.T) {
	rec := types.PatentRecord{
		Title:    "Network system",
		Abstract: "A method for devices.",
	}
	// 6 words, 37 chars including the empty-claims joiner, tech terms:
	// network, system, method, device.
	assert.Equal(t, "[6,37,4]", featureVector(rec))
}
