// Package parsererror defines the error types reported by the ingestion
// pipeline. Per-file failures are wrapped in these types so callers can
// report which file and which stage failed without aborting a whole batch.
package parsererror

import "fmt"

// UnsupportedFormatError is returned when a file's extension maps to no
// known extractor.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format '%s' for file '%s' (supported: .xlsx, .xls, .pdf, .csv)",
		e.Extension, e.FilePath)
}

// ExtractionError is returned when a supported file cannot be turned into a
// raw grid: unreadable spreadsheet, empty PDF, no rows on any page.
type ExtractionError struct {
	FilePath string
	Stage    string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed for '%s' at stage %s: %v", e.FilePath, e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction failed for '%s' at stage %s", e.FilePath, e.Stage)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure to interpret a specific field value.
// The normalizers themselves are total functions and never return this;
// it is used by strict callers (e.g. the preview CSV reader).
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ClassificationError is surfaced when the external classification service
// fails. The batch handed to the classifier is returned unmodified alongside
// this error.
type ClassificationError struct {
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification via %s failed: %v", e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// CommitError is returned when a reviewed batch cannot be written to the
// ledger store.
type CommitError struct {
	Destination string
	Err         error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit batch to ledger '%s': %v", e.Destination, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
