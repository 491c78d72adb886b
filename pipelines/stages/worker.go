// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mdhender/htmldom"
	"github.com/mdhender/htmldom/model"
	"github.com/spf13/afero"
)

// WorkerService claims and executes pipeline jobs.
type WorkerService struct {
	store    WorkerStore
	dataDir  string
	workerID string
	fs       afero.Fs
}

// WorkerStore defines the store operations needed by WorkerService.
type WorkerStore interface {
	ClaimWork(ctx context.Context, stage, workerID string) (*model.Work, error)
	FinishWork(ctx context.Context, id int64, status, errorCode, errorMsg string) error
	GetDocumentByID(ctx context.Context, id int64) (*model.Document, error)
	InsertParseResult(ctx context.Context, rx *model.ParseResult) (int64, error)
}

// NewWorkerService creates a new WorkerService.
func NewWorkerService(store WorkerStore, dataDir, workerID string) *WorkerService {
	if workerID == "" {
		hostname, _ := os.Hostname()
		workerID = fmt.Sprintf("%s:%d", hostname, os.Getpid())
	}
	return &WorkerService{
		store:    store,
		dataDir:  dataDir,
		workerID: workerID,
		fs:       afero.NewOsFs(),
	}
}

// SetFS sets the filesystem for testing.
func (w *WorkerService) SetFS(fs afero.Fs) {
	w.fs = fs
}

// WorkResult represents the outcome of executing a job.
type WorkResult struct {
	Success      bool
	ErrorCode    string
	ErrorMessage string
}

// ClaimJob atomically claims a queued job for the given stage.
// Returns nil if no work is available.
func (w *WorkerService) ClaimJob(ctx context.Context, stage string) (*model.Work, error) {
	return w.store.ClaimWork(ctx, stage, w.workerID)
}

// ExecuteParse reads the document's markup, loads it into a node tree,
// and persists the summary and normalized serialization.
func (w *WorkerService) ExecuteParse(ctx context.Context, job *model.Work, doc *model.Document) error {
	fullPath := filepath.Join(w.dataDir, doc.FsPath)

	data, err := afero.ReadFile(w.fs, fullPath)
	if err != nil {
		return &ErrWriteFile{Op: "read", Path: fullPath, Err: err}
	}

	settings := htmldom.NewLoadSettings().AllTextSeparately(false)
	root, err := htmldom.FromHTML(ctx, string(data), settings)
	if err != nil {
		return &ErrMarkup{Path: fullPath, Err: err}
	}

	rx := &model.ParseResult{
		DocumentID: doc.ID,
		CreatedAt:  time.Now().UTC(),
	}
	if root != nil {
		for n := range root.Descendants() {
			rx.Nodes++
			switch n.Kind() {
			case htmldom.ElementNode:
				rx.Elements++
			case htmldom.TextNode:
				rx.TextNodes++
			}
		}
		// The synthetic root is not part of the document.
		rx.Nodes--
		rx.Elements--
		rx.Normalized = root.HTML()
	}

	if _, err := w.store.InsertParseResult(ctx, rx); err != nil {
		return &ErrDatabase{Op: "insert parse result", Err: err}
	}

	return nil
}

// FinishJob marks a job as completed (ok or failed) based on the result.
func (w *WorkerService) FinishJob(ctx context.Context, job *model.Work, result WorkResult) error {
	status := model.WorkStatusOk
	errorCode := ""
	errorMsg := ""

	if !result.Success {
		status = model.WorkStatusFailed
		errorCode = result.ErrorCode
		errorMsg = result.ErrorMessage
	}

	return w.store.FinishWork(ctx, job.ID, status, errorCode, errorMsg)
}

// GetDocument retrieves the document associated with a job.
func (w *WorkerService) GetDocument(ctx context.Context, job *model.Work) (*model.Document, error) {
	return w.store.GetDocumentByID(ctx, job.DocumentID)
}

// ProcessJob claims, executes, and finishes a single job for the given stage.
// Returns (jobProcessed, error). jobProcessed is true if a job was claimed.
func (w *WorkerService) ProcessJob(ctx context.Context, stage string) (bool, error) {
	job, err := w.ClaimJob(ctx, stage)
	if err != nil {
		return false, fmt.Errorf("claim job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	doc, err := w.GetDocument(ctx, job)
	if err != nil {
		w.FinishJob(ctx, job, WorkResult{
			Success:      false,
			ErrorCode:    ErrCodeDatabase,
			ErrorMessage: fmt.Sprintf("get document: %v", err),
		})
		return true, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		w.FinishJob(ctx, job, WorkResult{
			Success:      false,
			ErrorCode:    ErrCodeDatabase,
			ErrorMessage: "document not found",
		})
		return true, fmt.Errorf("document %d not found", job.DocumentID)
	}

	var execErr error
	switch stage {
	case model.WorkStageParse:
		execErr = w.ExecuteParse(ctx, job, doc)
	default:
		execErr = fmt.Errorf("unknown stage: %s", stage)
	}

	if execErr != nil {
		w.FinishJob(ctx, job, WorkResult{
			Success:      false,
			ErrorCode:    ErrorCode(execErr),
			ErrorMessage: execErr.Error(),
		})
		return true, execErr
	}

	if err := w.FinishJob(ctx, job, WorkResult{Success: true}); err != nil {
		return true, fmt.Errorf("finish job: %w", err)
	}

	return true, nil
}
