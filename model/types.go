// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package model defines the shared types for stored documents and the
// batch-processing work queue.
package model

import "time"

// Document is one ingested markup source.
type Document struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SHA256    string    `json:"sha256" db:"sha256"`
	FsPath    string    `json:"fs_path" db:"fs_path"`
	Size      int64     `json:"size" db:"size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Work is one queued unit of pipeline work for a document.
type Work struct {
	ID           int64      `json:"id" db:"id"`
	DocumentID   int64      `json:"document_id" db:"document_id"`
	Stage        string     `json:"stage" db:"stage"`
	Status       string     `json:"status" db:"status"`
	Attempt      int        `json:"attempt" db:"attempt"`
	AvailableAt  time.Time  `json:"available_at" db:"available_at"`
	WorkerID     string     `json:"worker_id" db:"worker_id"`
	ErrorCode    string     `json:"error_code" db:"error_code"`
	ErrorMessage string     `json:"error_message" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	FinishedAt   *time.Time `json:"finished_at" db:"finished_at"`
}

// Work stages.
const (
	WorkStageParse = "parse"
)

// Work statuses.
const (
	WorkStatusQueued  = "queued"
	WorkStatusRunning = "running"
	WorkStatusOk      = "ok"
	WorkStatusFailed  = "failed"
)

// ParseResult is the stored outcome of parsing one document: node
// counts for querying, plus the normalized serialization of the tree.
type ParseResult struct {
	ID         int64     `json:"id" db:"id"`
	DocumentID int64     `json:"document_id" db:"document_id"`
	Nodes      int       `json:"nodes" db:"nodes"`
	Elements   int       `json:"elements" db:"elements"`
	TextNodes  int       `json:"text_nodes" db:"text_nodes"`
	Normalized string    `json:"normalized" db:"normalized"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
