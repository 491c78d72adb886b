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

// InsertWork queues a new unit of work and returns its id.
func (s *SQLiteStore) InsertWork(ctx context.Context, work *model.Work) (int64, error) {
	createdAt := work.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO work (document_id, stage, status, attempt, available_at, worker_id, created_at)
		VALUES (?, ?, ?, ?, ?, '', ?)`,
		work.DocumentID, work.Stage, work.Status, work.Attempt, work.AvailableAt, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert work: %w", err)
	}
	return result.LastInsertId()
}

// ClaimWork atomically claims the oldest available queued job for the
// given stage, marking it running for the worker. Returns nil if no
// work is available.
func (s *SQLiteStore) ClaimWork(ctx context.Context, stage, workerID string) (*model.Work, error) {
	// The sub-select plus the status guard in the UPDATE make the claim
	// atomic: concurrent workers race on the same row but only one
	// UPDATE flips it from 'queued' to 'running'.
	row := s.db.QueryRowContext(ctx, `
		UPDATE work
		SET status = ?, worker_id = ?, attempt = attempt + 1
		WHERE id = (
			SELECT id FROM work
			WHERE stage = ? AND status = ? AND available_at <= ?
			ORDER BY id
			LIMIT 1
		) AND status = ?
		RETURNING id, document_id, stage, status, attempt, available_at, worker_id, error_code, error_message, created_at, finished_at`,
		model.WorkStatusRunning, workerID,
		stage, model.WorkStatusQueued, time.Now().UTC(),
		model.WorkStatusQueued)

	work, err := scanWork(row)
	if err != nil {
		return nil, fmt.Errorf("claim work: %w", err)
	}
	return work, nil
}

// FinishWork marks a running job as ok or failed.
func (s *SQLiteStore) FinishWork(ctx context.Context, id int64, status, errorCode, errorMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE work
		SET status = ?, error_code = ?, error_message = ?, finished_at = ?
		WHERE id = ?`,
		status, errorCode, errorMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finish work: %w", err)
	}
	return nil
}

// GetWorkByID returns the work row with the given id, or nil.
func (s *SQLiteStore) GetWorkByID(ctx context.Context, id int64) (*model.Work, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, stage, status, attempt, available_at, worker_id, error_code, error_message, created_at, finished_at
		FROM work
		WHERE id = ?`, id)
	work, err := scanWork(row)
	if err != nil {
		return nil, fmt.Errorf("get work: %w", err)
	}
	return work, nil
}

func scanWork(row *sql.Row) (*model.Work, error) {
	var work model.Work
	err := row.Scan(&work.ID, &work.DocumentID, &work.Stage, &work.Status, &work.Attempt,
		&work.AvailableAt, &work.WorkerID, &work.ErrorCode, &work.ErrorMessage,
		&work.CreatedAt, &work.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &work, nil
}
