package tabular

import (
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

var errNoRows = errors.New("no data rows found")

// preferredSheetNames lists sheet names that typically hold statement data,
// checked case-insensitively before falling back to the first sheet.
var preferredSheetNames = []string{
	"movimentos", "extrato", "lancamentos", "lançamentos",
	"transactions", "dados", "sheet1",
}

// extractExcel loads a spreadsheet as a grid with the first row as header.
// A workbook that cannot be opened is an explicit failure, never silently
// empty.
func extractExcel(path string) (models.RawGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "spreadsheet open",
			Err:      err,
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close workbook",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	sheet := findDataSheet(f)
	if sheet == "" {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "sheet selection",
			Err:      errors.New("workbook has no sheets"),
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "sheet read",
			Err:      err,
		}
	}
	if len(rows) < 2 {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "sheet read",
			Err:      errNoRows,
		}
	}

	log.Debug("Spreadsheet loaded",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "sheet", Value: sheet},
		logging.Field{Key: logging.FieldCount, Value: len(rows) - 1})

	return models.RawGrid{Header: rows[0], Rows: rows[1:]}, nil
}

// findDataSheet picks the sheet most likely to hold transaction rows.
func findDataSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, preferred := range preferredSheetNames {
		for _, sheet := range sheets {
			if strings.EqualFold(sheet, preferred) {
				return sheet
			}
		}
	}
	return sheets[0]
}
