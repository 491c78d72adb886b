// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdhender/htmldom/model"
)

// InsertDocument stores a new document row and returns its id.
func (s *SQLiteStore) InsertDocument(ctx context.Context, doc *model.Document) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (name, sha256, fs_path, size, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		doc.Name, doc.SHA256, doc.FsPath, doc.Size, doc.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	return result.LastInsertId()
}

// GetDocumentByID returns the document with the given id, or nil if it
// does not exist.
func (s *SQLiteStore) GetDocumentByID(ctx context.Context, id int64) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sha256, fs_path, size, created_at
		FROM documents
		WHERE id = ?`, id)
	return scanDocument(row)
}

// GetDocumentBySHA256 returns the document with the given content
// hash, or nil if it does not exist.
func (s *SQLiteStore) GetDocumentBySHA256(ctx context.Context, sha256 string) (*model.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sha256, fs_path, size, created_at
		FROM documents
		WHERE sha256 = ?`, sha256)
	return scanDocument(row)
}

// ListDocuments returns every stored document, oldest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sha256, fs_path, size, created_at
		FROM documents
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*model.Document
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.SHA256, &doc.FsPath, &doc.Size, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var doc model.Document
	err := row.Scan(&doc.ID, &doc.Name, &doc.SHA256, &doc.FsPath, &doc.Size, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &doc, nil
}
