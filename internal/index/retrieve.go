// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/outline-engine/pkg/types"
)

// QueryOptions holds parameters for section queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over heading and body.
	Query string

	// Level filters by heading level.
	Level types.HeadingLevel

	// DocumentID filters by document.
	DocumentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Level == "" && q.DocumentID == ""
}

// QueryResult is a section with its document title and, for full-text
// queries, the bm25-derived relevance (higher is more relevant).
type QueryResult struct {
	types.Section
	DocumentTitle string  `json:"document_title" yaml:"document_title"`
	Relevance     float64 `json:"relevance" yaml:"relevance"`
}

// Query searches the section index. Full-text queries are ranked by bm25;
// structured-only queries are ordered by (document, page, heading) for
// deterministic output.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT sec.doc_id, sec.level, sec.heading, sec.page, sec.body,
				d.title, d.path, -sections_fts.rank
			FROM sections_fts
			JOIN sections sec ON sec.rowid = sections_fts.rowid
			LEFT JOIN documents d ON sec.doc_id = d.id
			WHERE sections_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT sec.doc_id, sec.level, sec.heading, sec.page, sec.body,
				d.title, d.path, 0
			FROM sections sec
			LEFT JOIN documents d ON sec.doc_id = d.id
			WHERE 1=1`)
	}

	if opts.Level != "" {
		qb.WriteString(` AND sec.level = ?`)
		args = append(args, string(opts.Level))
	}
	if opts.DocumentID != "" {
		qb.WriteString(` AND sec.doc_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY sections_fts.rank, sec.doc_id, sec.page, sec.heading`)
	} else {
		qb.WriteString(` ORDER BY sec.doc_id, sec.page, sec.heading`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying section index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr    QueryResult
			level string
			body  sql.NullString
			title sql.NullString
			path  sql.NullString
		)
		if err := rows.Scan(&qr.DocumentID, &level, &qr.Heading, &qr.Page,
			&body, &title, &path, &qr.Relevance); err != nil {
			return nil, fmt.Errorf("scanning query result: %w", err)
		}
		qr.Level = types.HeadingLevel(level)
		qr.Body = body.String
		qr.DocumentTitle = title.String
		if path.Valid {
			qr.Document = baseName(path.String)
		}
		results = append(results, qr)
	}
	return results, rows.Err()
}

// baseName returns the final path element without touching the separator
// conventions of the ingesting platform.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
