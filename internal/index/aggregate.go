// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/patent-engine/pkg/types"
)

// Aggregate computes a point-in-time snapshot of grouped counts over the
// stored record table. Pure read; it never mutates index state.
func (s *Store) Aggregate(ctx context.Context) (types.Aggregations, error) {
	var aggs types.Aggregations

	var err error
	if aggs.TopAssignees, err = s.groupCounts(ctx,
		`SELECT assignee, COUNT(*) AS count
		FROM patents
		WHERE assignee != ''
		GROUP BY assignee
		ORDER BY count DESC
		LIMIT 10`); err != nil {
		return aggs, fmt.Errorf("aggregating assignees: %w", err)
	}

	if aggs.Categories, err = s.groupCounts(ctx,
		`SELECT category, COUNT(*) AS count
		FROM patents
		GROUP BY category
		ORDER BY count DESC`); err != nil {
		return aggs, fmt.Errorf("aggregating categories: %w", err)
	}

	if aggs.IPCClasses, err = s.groupCounts(ctx,
		`SELECT ipc_class, COUNT(*) AS count
		FROM patents
		WHERE ipc_class != ''
		GROUP BY ipc_class
		ORDER BY count DESC
		LIMIT 10`); err != nil {
		return aggs, fmt.Errorf("aggregating IPC classes: %w", err)
	}

	if aggs.ByYear, err = s.groupCounts(ctx,
		`SELECT substr(publication_date, 1, 4) AS year, COUNT(*) AS count
		FROM patents
		WHERE length(publication_date) >= 4
		GROUP BY year
		ORDER BY year DESC`); err != nil {
		return aggs, fmt.Errorf("aggregating years: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM patents`,
	).Scan(&aggs.TotalPatents); err != nil {
		return aggs, wrapBusy(fmt.Errorf("counting patents: %w", err))
	}

	return aggs, nil
}

func (s *Store) groupCounts(ctx context.Context, query string) ([]types.FieldCount, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapBusy(err)
	}
	defer rows.Close()

	var counts []types.FieldCount
	for rows.Next() {
		var fc types.FieldCount
		if err := rows.Scan(&fc.Value, &fc.Count); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts = append(counts, fc)
	}
	return counts, rows.Err()
}

// ExportStats writes the current aggregations to path as YAML.
func (s *Store) ExportStats(ctx context.Context, path string) error {
	aggs, err := s.Aggregate(ctx)
	if err != nil {
		return fmt.Errorf("aggregating for export: %w", err)
	}

	data, err := yaml.Marshal(aggs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
