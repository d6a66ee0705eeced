// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// fieldWeights scales the term frequency of each query term inside a
// record field during re-ranking.
var fieldWeights = []struct {
	field  func(*types.PatentRecord) string
	weight float64
}{
	{func(r *types.PatentRecord) string { return r.Title }, 3.0},
	{func(r *types.PatentRecord) string { return r.Abstract }, 2.0},
	{func(r *types.PatentRecord) string { return r.Claims }, 1.5},
	{func(r *types.PatentRecord) string { return r.Description }, 1.0},
}

// boostedCategories receive a fixed multiplicative score bonus.
var boostedCategories = map[string]bool{
	"artificial_intelligence": true,
	"telecommunications":      true,
}

const categoryBoost = 1.2

// Score computes the custom relevance of a record for the given lower-cased
// query terms: the weighted sum of per-field term frequencies, boosted when
// the record's category is privileged.
func Score(rec *types.PatentRecord, queryTerms []string) float64 {
	var score float64
	for _, fw := range fieldWeights {
		text := strings.ToLower(fw.field(rec))
		if text == "" {
			continue
		}
		for _, term := range queryTerms {
			if tf := strings.Count(text, term); tf > 0 {
				score += float64(tf) * fw.weight
			}
		}
	}

	if boostedCategories[rec.Category] {
		score *= categoryBoost
	}
	return score
}

// rescore re-ranks retrieval candidates by the custom score, keeping
// retrieval order on ties. Zero-score candidates stay: disjunctive
// retrieval can surface matches whose exact-term frequency is zero under
// this scorer, and no floor excludes them.
func rescore(candidates []types.ScoredRecord, queryTerms []string) {
	for i := range candidates {
		candidates[i].Score = Score(&candidates[i].PatentRecord, queryTerms)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// techTerms is the fixed vocabulary counted into each record's feature
// vector.
var techTerms = []string{
	"system", "method", "apparatus", "device", "process",
	"invention", "embodiment", "implementation", "technology",
	"algorithm", "network", "computer", "software", "hardware",
}

// featureVector serializes the lightweight per-record signal stored next
// to the index: word count, character count, and technical-term
// occurrences over title, abstract, and claims. Auxiliary only, never the
// primary rank.
func featureVector(rec types.PatentRecord) string {
	text := rec.Title + " " + rec.Abstract + " " + rec.Claims
	lower := strings.ToLower(text)

	terms := 0
	for _, t := range techTerms {
		terms += strings.Count(lower, t)
	}

	vec, _ := json.Marshal([]int{len(strings.Fields(text)), len(text), terms})
	return string(vec)
}
