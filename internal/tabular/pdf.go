package tabular

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

// cellGapFactor scales the font size into the minimum horizontal gap that
// separates two cells on the same text row.
const cellGapFactor = 1.5

var (
	pdfDatePattern   = regexp.MustCompile(`\d{2}/\d{2}/(?:\d{4}|\d{2})`)
	pdfAmountPattern = regexp.MustCompile(`\(?-?\d{1,3}(?:\.\d{3})*,\d{2}\)?-?(?:\s?[DCdc]\b)?`)
)

// extractPDF produces a grid from a PDF statement. Pages are first run
// through coordinate-based table reconstruction; when no page yields a
// usable table (borderless, free-flowing statements), the plain text of
// every page is re-scanned line by line. All pages are concatenated into a
// single grid whose header is the first row of the first page.
func extractPDF(path string) (models.RawGrid, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return models.RawGrid{}, &parsererror.ExtractionError{
			FilePath: path,
			Stage:    "pdf open",
			Err:      err,
		}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close PDF",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	if grid, ok := gridFromTextRows(reader); ok {
		log.Debug("PDF extracted via table reconstruction",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(grid.Rows)})
		return grid, nil
	}

	if grid, ok := gridFromPlainText(reader); ok {
		log.Debug("PDF extracted via plain-text fallback",
			logging.Field{Key: logging.FieldFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(grid.Rows)})
		return grid, nil
	}

	return models.RawGrid{}, &parsererror.ExtractionError{
		FilePath: path,
		Stage:    "pdf text",
		Err:      errNoRows,
	}
}

// gridFromTextRows reconstructs a table from the positioned text of every
// page: tokens sharing a baseline form a row, and tokens separated by a
// horizontal gap larger than the font size form distinct cells. Rows with a
// single cell (titles, footers) are discarded.
func gridFromTextRows(r *pdf.Reader) (models.RawGrid, bool) {
	var all [][]string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			log.WithError(err).Debug("Positioned text unavailable for page",
				logging.Field{Key: "page", Value: i})
			continue
		}
		for _, row := range rows {
			cells := clusterCells(row.Content)
			if len(cells) >= 2 {
				all = append(all, cells)
			}
		}
	}
	if len(all) < 2 {
		return models.RawGrid{}, false
	}
	return models.RawGrid{Header: all[0], Rows: all[1:]}, true
}

// clusterCells merges positioned tokens into cells by X-coordinate
// proximity.
func clusterCells(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		cells   []string
		current strings.Builder
		lastEnd float64
	)
	for i, t := range sorted {
		gap := t.FontSize * cellGapFactor
		if gap < 4 {
			gap = 4
		}
		if i > 0 && t.X-lastEnd > gap {
			cells = append(cells, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(t.S)
		end := t.X + t.W
		if end > lastEnd {
			lastEnd = end
		}
	}
	cells = append(cells, strings.TrimSpace(current.String()))
	return cells
}

// gridFromPlainText is the fallback for statements without positional
// structure. Every line carrying both a date pattern and a monetary token
// becomes a row of a synthetic three-column grid. When a line holds several
// monetary tokens (amount plus running balance) the last one is taken,
// matching the positional fallback of the role inferencer.
func gridFromPlainText(r *pdf.Reader) (models.RawGrid, bool) {
	var rows [][]string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			if row, ok := rowFromLine(line); ok {
				rows = append(rows, row)
			}
		}
	}
	if len(rows) == 0 {
		return models.RawGrid{}, false
	}
	return models.RawGrid{
		Header: []string{"Data", "Descricao", "Valor"},
		Rows:   rows,
	}, true
}

// rowFromLine splits one statement line into [date, description, amount].
func rowFromLine(line string) ([]string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	date := pdfDatePattern.FindString(line)
	if date == "" {
		return nil, false
	}

	amounts := pdfAmountPattern.FindAllString(line, -1)
	if len(amounts) == 0 {
		return nil, false
	}
	amount := strings.TrimSpace(amounts[len(amounts)-1])

	desc := line
	desc = strings.Replace(desc, date, " ", 1)
	for _, a := range amounts {
		desc = strings.Replace(desc, a, " ", 1)
	}
	desc = strings.Join(strings.Fields(desc), " ")

	return []string{date, desc, amount}, true
}
