package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	enc "mribeiro/extrato-csv/internal/encoding"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

// extractCSV loads a delimited text file as a grid with the first row as
// header. The character encoding is detected (bank exports are often
// Windows-1252) and the delimiter is sniffed from the header line.
func extractCSV(path string) (models.RawGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "csv open",
			Err:      err,
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close file",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	utf8Reader, err := enc.NewUTF8Reader(f)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "encoding detection",
			Err:      err,
		}
	}

	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "csv read",
			Err:      err,
		}
	}

	delimiter := sniffDelimiter(string(data))
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "csv parse",
			Err:      err,
		}
	}
	if len(records) < 2 {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "csv parse",
			Err:      errNoRows,
		}
	}

	log.Debug("CSV loaded",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)},
		logging.Field{Key: logging.FieldCount, Value: len(records) - 1})

	return models.RawGrid{Header: records[0], Rows: records[1:]}, nil
}

// sniffDelimiter picks the delimiter that occurs most often in the first
// line. Brazilian exports favour ';' because ',' is the decimal separator.
func sniffDelimiter(data string) rune {
	firstLine := data
	if idx := strings.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}

	best := ','
	bestCount := strings.Count(firstLine, ",")
	for _, cand := range []string{";", "\t"} {
		if c := strings.Count(firstLine, cand); c > bestCount {
			best = rune(cand[0])
			bestCount = c
		}
	}
	return best
}
