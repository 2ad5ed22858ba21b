// Package normalizer materializes canonical records from a raw grid and its
// inferred role map. All defaulting rules for unresolved roles live here,
// in one place, rather than scattered across call sites.
package normalizer

import (
	"strings"
	"time"

	"mribeiro/extrato-csv/internal/currencyutils"
	"mribeiro/extrato-csv/internal/dateutils"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// missingMarkers are literal artifacts of absent values as exported by
// spreadsheet tools. They are normalized to empty string before the
// defaulting rules apply.
var missingMarkers = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
	"n/a":  true,
	"-":    true,
}

// Normalize turns every grid row into a TransactionRecord and drops the
// rows whose amount normalizes to exactly zero. The drop is intentional and
// logged: zero-amount rows in statements are headers repeated mid-page,
// balance lines and other noise. Row order is preserved.
//
// Sign convention: amounts keep whatever sign they parsed with. Forcing
// non-negative values for expense ledgers is caller policy, not decided
// here.
func Normalize(grid models.RawGrid, roleMap models.RoleMap, now time.Time) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0, len(grid.Rows))
	dropped := 0

	for _, row := range grid.Rows {
		amount := currencyutils.NormalizeAmount(cleanCell(roleMap.Cell(row, models.RoleAmount)))
		if amount.IsZero() {
			dropped++
			continue
		}

		date := dateutils.NormalizeDate(cleanCell(roleMap.Cell(row, models.RoleDate)), now)

		description := cleanCell(roleMap.Cell(row, models.RoleDescription))
		if description == "" {
			description = models.DefaultDescription
		}

		counterparty := cleanCell(roleMap.Cell(row, models.RoleCounterparty))
		if counterparty == "" {
			counterparty = description
		}

		category := cleanCell(roleMap.Cell(row, models.RoleCategory))
		if category == "" {
			category = models.DefaultCategory
		}

		account := cleanCell(roleMap.Cell(row, models.RoleAccount))
		if account == "" {
			account = models.DefaultAccount
		}

		records = append(records, models.TransactionRecord{
			Account:      account,
			Category:     category,
			Counterparty: counterparty,
			Description:  description,
			Date:         dateutils.ToISODate(date),
			Amount:       amount,
		})
	}

	if dropped > 0 {
		log.Debug("Dropped zero-amount rows",
			logging.Field{Key: logging.FieldCount, Value: dropped})
	}
	return records
}

// NormalizeContacts materializes ContactRecords from a contacts grid. Rows
// without a name are dropped; the registration date defaults to the
// reference date when the grid carries none.
func NormalizeContacts(grid models.RawGrid, roleMap models.RoleMap, now time.Time) []models.ContactRecord {
	records := make([]models.ContactRecord, 0, len(grid.Rows))

	for _, row := range grid.Rows {
		name := cleanCell(roleMap.Cell(row, models.RoleName))
		if name == "" {
			continue
		}

		registration := dateutils.NormalizeDate(cleanCell(roleMap.Cell(row, models.RoleDate)), now)

		records = append(records, models.ContactRecord{
			Name:             name,
			DocumentID:       cleanCell(roleMap.Cell(row, models.RoleDocument)),
			Email:            cleanCell(roleMap.Cell(row, models.RoleEmail)),
			Phone:            cleanCell(roleMap.Cell(row, models.RolePhone)),
			Notes:            cleanCell(roleMap.Cell(row, models.RoleNotes)),
			RegistrationDate: dateutils.ToISODate(registration),
		})
	}
	return records
}

// cleanCell collapses embedded newlines and whitespace and maps
// missing-value artifacts to empty string.
func cleanCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if missingMarkers[strings.ToLower(s)] {
		return ""
	}
	return s
}
