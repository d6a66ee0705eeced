// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/patent-engine/internal/parser"
	"github.com/pdiddy/patent-engine/pkg/types"
)

func pipelineDoc(docNumber, title, abstract, ipc string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE us-patent-application SYSTEM "us-patent-application-v44.dtd">
<us-patent-application>
<us-bibliographic-data-application>
<publication-reference>
<document-id>
<doc-number>%s</doc-number>
</document-id>
</publication-reference>
<classification-ipc>
<main-classification>%s</main-classification>
</classification-ipc>
<invention-title>%s</invention-title>
</us-bibliographic-data-application>
<abstract>
<p>%s</p>
</abstract>
</us-patent-application>`, docNumber, ipc, title, abstract)
}

// TestIngestAndSearchEndToEnd drives the full pipeline: raw XML through
// the parser into a rebuilt index, then a ranked query. One candidate
// fails validation, and of the two surviving records with equal query-term
// frequency the privileged-category one ranks first.
func TestIngestAndSearchEndToEnd(t *testing.T) {
	stream := strings.Join([]string{
		pipelineDoc("900", "Bad", "This candidate has a title that is too short.", "G06F17/00"),
		pipelineDoc("901", "Machine intelligence accelerator",
			"A processor layout for model training workloads.", "G06N3/08"),
		pipelineDoc("902", "Intelligence report indexing",
			"A filing system for analyst reports.", "G06F17/00"),
	}, "\n")

	var buf bytes.Buffer
	records, summary := parser.ParseStream(strings.NewReader(stream), types.ParserConfig{}, &buf)
	require.Equal(t, 3, summary.Units)
	require.Equal(t, 1, summary.Rejected)
	require.Len(t, records, 2)
	assert.Equal(t, "artificial_intelligence", records[0].Category)
	assert.Equal(t, "physics", records[1].Category)

	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx, records))

	results, err := s.Search(ctx, "intelligence", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "901", results[0].ID)
	assert.InDelta(t, 3.6, results[0].Score, 1e-9)
	assert.Equal(t, "902", results[1].ID)
	assert.InDelta(t, 3.0, results[1].Score, 1e-9)
}
