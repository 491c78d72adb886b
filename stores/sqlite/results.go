// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdhender/htmldom/model"
)

// InsertParseResult stores the parse outcome for a document, replacing
// any earlier result for the same document.
func (s *SQLiteStore) InsertParseResult(ctx context.Context, rx *model.ParseResult) (int64, error) {
	createdAt := rx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO parse_results (document_id, nodes, elements, text_nodes, normalized, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (document_id) DO UPDATE SET
			nodes = excluded.nodes,
			elements = excluded.elements,
			text_nodes = excluded.text_nodes,
			normalized = excluded.normalized,
			created_at = excluded.created_at`,
		rx.DocumentID, rx.Nodes, rx.Elements, rx.TextNodes, rx.Normalized, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert parse result: %w", err)
	}
	return result.LastInsertId()
}

// GetParseResultByDocumentID returns the stored parse result for a
// document, or nil if the document has not been parsed.
func (s *SQLiteStore) GetParseResultByDocumentID(ctx context.Context, documentID int64) (*model.ParseResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, nodes, elements, text_nodes, normalized, created_at
		FROM parse_results
		WHERE document_id = ?`, documentID)

	var rx model.ParseResult
	err := row.Scan(&rx.ID, &rx.DocumentID, &rx.Nodes, &rx.Elements, &rx.TextNodes, &rx.Normalized, &rx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan parse result: %w", err)
	}
	return &rx, nil
}
