// Package tabular turns uploaded spreadsheet, PDF and CSV files into raw
// rectangular grids of string cells. It makes no attempt to interpret the
// cells; semantic meaning is assigned downstream by the role inferencer.
package tabular

import (
	"path/filepath"
	"strings"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Extract reads the file at path and produces a raw grid with a header row.
// The extractor is chosen by file extension. Extraction is deterministic:
// the same unchanged file always yields an identical grid.
func Extract(path string) (models.RawGrid, error) {
	ext := strings.ToLower(filepath.Ext(path))

	log.Info("Extracting tabular data",
		logging.Field{Key: logging.FieldFile, Value: path})

	var (
		grid models.RawGrid
		err  error
	)

	switch ext {
	case ".xlsx", ".xls":
		grid, err = extractExcel(path)
	case ".pdf":
		grid, err = extractPDF(path)
	case ".csv":
		grid, err = extractCSV(path)
	default:
		return models.RawGrid{}, &parsererror.UnsupportedFormatError{
			FilePath:  path,
			Extension: ext,
		}
	}
	if err != nil {
		return models.RawGrid{}, err
	}

	grid = Clean(grid)
	if grid.IsEmpty() {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "cleanup",
			Err:      errNoRows,
		}
	}

	log.Info("Extraction complete",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(grid.Rows)})
	return grid, nil
}

// Clean applies post-extraction cleanup: header labels have embedded
// newlines and surrounding whitespace collapsed, columns that are empty
// across every data row are dropped, and all rows are padded to the header
// width so the grid is rectangular.
func Clean(grid models.RawGrid) models.RawGrid {
	if len(grid.Header) == 0 && len(grid.Rows) == 0 {
		return grid
	}

	width := len(grid.Header)
	for _, row := range grid.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, width)
	for i := range header {
		if i < len(grid.Header) {
			header[i] = collapseWhitespace(grid.Header[i])
		}
	}

	rows := make([][]string, len(grid.Rows))
	for r, row := range grid.Rows {
		padded := make([]string, width)
		copy(padded, row)
		rows[r] = padded
	}

	// Drop columns that carry no data in any row.
	keep := make([]int, 0, width)
	for c := 0; c < width; c++ {
		empty := true
		for _, row := range rows {
			if strings.TrimSpace(row[c]) != "" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, c)
		}
	}

	if len(keep) == width {
		return models.RawGrid{Header: header, Rows: rows}
	}

	outHeader := make([]string, len(keep))
	for i, c := range keep {
		outHeader[i] = header[c]
	}
	outRows := make([][]string, len(rows))
	for r, row := range rows {
		out := make([]string, len(keep))
		for i, c := range keep {
			out[i] = row[c]
		}
		outRows[r] = out
	}
	return models.RawGrid{Header: outHeader, Rows: outRows}
}

// collapseWhitespace folds embedded newlines and whitespace runs into single
// spaces and trims the result.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
