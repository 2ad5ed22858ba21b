// Package common provides the shared CSV read/write layer used by the
// preview workflow and the ledger store.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"mribeiro/extrato-csv/internal/logging"
)

var log = logging.GetLogger()

// Delimiter is the global CSV delimiter for both input and output files.
var Delimiter rune = ','

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetDelimiter configures the delimiter used by all CSV reads and writes.
func SetDelimiter(delim rune) {
	Delimiter = delim

	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = Delimiter
		return gocsv.NewSafeCSVWriter(w)
	})
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		r.LazyQuotes = true
		return r
	})
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[T any](filePath string) ([]T, error) {
	log.Debug("Reading CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	var rows []T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

// WriteCSVFile writes a slice of structs to a CSV file, creating the parent
// directory when needed. The whole file is rewritten; callers that append
// must load, extend and write back.
func WriteCSVFile[T any](rows []T, filePath string) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	log.Debug("Wrote CSV file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
