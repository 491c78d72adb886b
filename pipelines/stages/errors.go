// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package stages

import (
	"fmt"

	"github.com/mdhender/htmldom"
)

// ErrWriteFile is returned when file I/O operations fail.
type ErrWriteFile struct {
	Op   string // mkdir, write, read
	Path string
	Err  error
}

func (e *ErrWriteFile) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrWriteFile) Unwrap() error {
	return e.Err
}

// ErrDatabase is returned when database operations fail.
type ErrDatabase struct {
	Op  string
	Err error
}

func (e *ErrDatabase) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

func (e *ErrDatabase) Unwrap() error {
	return e.Err
}

// ErrMarkup is returned when loading a document's markup fails.
type ErrMarkup struct {
	Path string
	Err  error
}

func (e *ErrMarkup) Error() string {
	return fmt.Sprintf("markup %s: %v", e.Path, e.Err)
}

func (e *ErrMarkup) Unwrap() error {
	return e.Err
}

// Error code constants for database storage.
const (
	ErrCodeWriteFile = "WRITE_FILE"
	ErrCodeDatabase  = "DATABASE"
	ErrCodeUnknown   = "UNKNOWN"
)

// ErrorCode returns the error code string for a given error. Markup
// errors report the loader's own code so failed work rows record which
// construct was unterminated.
func ErrorCode(err error) string {
	switch e := err.(type) {
	case *ErrWriteFile:
		return ErrCodeWriteFile
	case *ErrDatabase:
		return ErrCodeDatabase
	case *ErrMarkup:
		return htmldom.ErrorCode(e.Err)
	default:
		return ErrCodeUnknown
	}
}
