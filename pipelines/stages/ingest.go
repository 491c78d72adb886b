// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package stages implements the ingest and parse stages of the
// document pipeline.
package stages

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mdhender/htmldom/model"
	"github.com/spf13/afero"
)

// IngestService handles file ingestion into the pipeline.
type IngestService struct {
	store   IngestStore
	dataDir string
	fs      afero.Fs
}

// IngestStore defines the store operations needed by IngestService.
type IngestStore interface {
	GetDocumentBySHA256(ctx context.Context, sha256 string) (*model.Document, error)
	InsertDocument(ctx context.Context, doc *model.Document) (int64, error)
	InsertWork(ctx context.Context, work *model.Work) (int64, error)
}

// NewIngestService creates a new IngestService.
func NewIngestService(store IngestStore, dataDir string) *IngestService {
	return &IngestService{
		store:   store,
		dataDir: dataDir,
		fs:      afero.NewOsFs(),
	}
}

// SetFS sets the filesystem for testing.
func (s *IngestService) SetFS(fs afero.Fs) {
	s.fs = fs
}

// IngestResult contains the result of an ingest operation.
type IngestResult struct {
	DocumentID int64
	WorkID     int64
	Duplicate  bool // true if the document was already ingested (idempotent no-op)
}

// IngestFile ingests a single document into the pipeline. The content
// is hashed, written under the data directory, recorded in the store,
// and a parse job is queued for it.
// Returns IngestResult with Duplicate=true if the content already
// exists (idempotent no-op).
func (s *IngestService) IngestFile(ctx context.Context, name string, data []byte) (*IngestResult, error) {
	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	existing, err := s.store.GetDocumentBySHA256(ctx, hashStr)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if existing != nil {
		return &IngestResult{
			DocumentID: existing.ID,
			Duplicate:  true,
		}, nil
	}

	// Store under the content hash so renames of the source file never
	// collide or duplicate on disk.
	fsPath := filepath.Join("documents", hashStr[:2], hashStr)
	fullPath := filepath.Join(s.dataDir, fsPath)

	if err := s.fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, &ErrWriteFile{Op: "mkdir", Path: filepath.Dir(fullPath), Err: err}
	}
	if err := afero.WriteFile(s.fs, fullPath, data, 0644); err != nil {
		return nil, &ErrWriteFile{Op: "write", Path: fullPath, Err: err}
	}

	doc := &model.Document{
		Name:      filepath.Base(name),
		SHA256:    hashStr,
		FsPath:    fsPath,
		Size:      int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}
	docID, err := s.store.InsertDocument(ctx, doc)
	if err != nil {
		return nil, &ErrDatabase{Op: "insert document", Err: err}
	}

	work := &model.Work{
		DocumentID:  docID,
		Stage:       model.WorkStageParse,
		Status:      model.WorkStatusQueued,
		Attempt:     0,
		AvailableAt: time.Now().UTC(),
	}
	workID, err := s.store.InsertWork(ctx, work)
	if err != nil {
		return nil, &ErrDatabase{Op: "insert work", Err: err}
	}

	return &IngestResult{
		DocumentID: docID,
		WorkID:     workID,
		Duplicate:  false,
	}, nil
}

// IngestPath reads a file from the service's filesystem and ingests it.
func (s *IngestService) IngestPath(ctx context.Context, path string) (*IngestResult, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &ErrWriteFile{Op: "read", Path: path, Err: err}
	}
	return s.IngestFile(ctx, path, data)
}
