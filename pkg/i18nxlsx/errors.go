package i18nxlsx

import (
	"errors"
	"fmt"
)

// ErrMissingSource indicates a required input directory does not exist.
var ErrMissingSource = errors.New("missing source directory")

// ErrNoLanguages indicates a source directory holds no loadable language.
var ErrNoLanguages = errors.New("no language directories found")

// FileError represents a failure to process one workbook of a batch.
type FileError struct {
	File  string
	Stage string // "read", "write"
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(file, stage string, err error) *FileError {
	return &FileError{
		File:  file,
		Stage: stage,
		Err:   err,
	}
}
