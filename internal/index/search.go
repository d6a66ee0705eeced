// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/patent-engine/pkg/types"
)

const defaultLimit = 10

// SearchOptions holds the result bound and the conjunctive filters applied
// to a free-text search.
type SearchOptions struct {
	// Limit bounds the result count (default 10).
	Limit int

	// CandidateLimit caps the index scan before re-ranking. Zero falls
	// back to Limit, which then bounds candidate count as well as output
	// count: with more matches than Limit, the truly most relevant
	// record can be cut before the re-ranker ever sees it. Raise
	// CandidateLimit to decouple the two.
	CandidateLimit int

	// Category filters by exact category label.
	Category string

	// Assignee filters by assignee substring.
	Assignee string

	// DateFrom and DateTo bound the publication date as a closed
	// interval; both must be set for the filter to apply.
	DateFrom string
	DateTo   string
}

var queryPunctuation = regexp.MustCompile(`[^\w\s]`)

// prepareMatchQuery turns free text into an FTS5 match expression: a
// prefix match for a single term, a disjunction of prefix matches for
// several. Retrieval is recall-oriented; precision comes from re-ranking.
func prepareMatchQuery(query string) (match string, terms []string) {
	cleaned := queryPunctuation.ReplaceAllString(query, " ")
	terms = strings.Fields(strings.ToLower(cleaned))
	if len(terms) == 0 {
		return "", nil
	}

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = `"` + t + `"*`
	}
	return strings.Join(quoted, " OR "), terms
}

// Search answers a free-text query with optional filters, returning at
// most opts.Limit records ordered by the custom relevance score.
func (s *Store) Search(ctx context.Context, query string, opts SearchOptions) ([]types.ScoredRecord, error) {
	match, terms := prepareMatchQuery(query)
	if match == "" {
		return nil, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	candidates := opts.CandidateLimit
	if candidates <= 0 {
		candidates = limit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT ` + recordColumns + `
		FROM patents_fts
		JOIN patents p ON p.rowid = patents_fts.rowid
		WHERE patents_fts MATCH ?`)
	args = append(args, match)

	if opts.Category != "" {
		qb.WriteString(` AND p.category = ?`)
		args = append(args, opts.Category)
	}
	if opts.Assignee != "" {
		qb.WriteString(` AND p.assignee LIKE ?`)
		args = append(args, "%"+opts.Assignee+"%")
	}
	if opts.DateFrom != "" && opts.DateTo != "" {
		qb.WriteString(` AND p.publication_date BETWEEN ? AND ?`)
		args = append(args, opts.DateFrom, opts.DateTo)
	}

	qb.WriteString(` ORDER BY patents_fts.rank LIMIT ?`)
	args = append(args, candidates)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, wrapBusy(fmt.Errorf("querying index: %w", err))
	}
	defer rows.Close()

	var results []types.ScoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, types.ScoredRecord{PatentRecord: rec})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapBusy(err)
	}

	rescore(results, terms)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchableFields is the allow-list for field-restricted search.
var SearchableFields = []string{"assignee", "category", "ipc_class", "inventors"}

// SearchByField returns records whose named field contains value. A field
// outside the allow-list reports ErrInvalidField.
func (s *Store) SearchByField(ctx context.Context, field, value string, limit int) ([]types.PatentRecord, error) {
	valid := false
	for _, f := range SearchableFields {
		if field == f {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: %q (must be one of %s)",
			ErrInvalidField, field, strings.Join(SearchableFields, ", "))
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT ` + recordColumns + ` FROM patents p WHERE p.` + field + ` LIKE ? LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, "%"+value+"%", limit)
	if err != nil {
		return nil, wrapBusy(fmt.Errorf("querying field %s: %w", field, err))
	}
	defer rows.Close()

	var results []types.PatentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

// recordColumns lists the stored columns in scanRecord order.
const recordColumns = `p.id, p.title, p.abstract, p.description, p.claims,
	p.assignee, p.inventors, p.application_date, p.publication_date,
	p.ipc_class, p.ipc_classes, p.category`

func scanRecord(rows *sql.Rows) (types.PatentRecord, error) {
	var (
		rec            types.PatentRecord
		inventorsJSON  sql.NullString
		ipcClassesJSON sql.NullString
	)
	if err := rows.Scan(
		&rec.ID, &rec.Title, &rec.Abstract, &rec.Description, &rec.Claims,
		&rec.Assignee, &inventorsJSON, &rec.ApplicationDate, &rec.PublicationDate,
		&rec.IPCClass, &ipcClassesJSON, &rec.Category,
	); err != nil {
		return types.PatentRecord{}, fmt.Errorf("scanning record: %w", err)
	}

	if inventorsJSON.Valid {
		if err := json.Unmarshal([]byte(inventorsJSON.String), &rec.Inventors); err != nil {
			return types.PatentRecord{}, fmt.Errorf("decoding inventors for %s: %w", rec.ID, err)
		}
	}
	if ipcClassesJSON.Valid {
		if err := json.Unmarshal([]byte(ipcClassesJSON.String), &rec.IPCClasses); err != nil {
			return types.PatentRecord{}, fmt.Errorf("decoding IPC classes for %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}
