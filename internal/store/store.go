// Package store persists reviewed import batches into per-destination CSV
// ledgers. It mirrors the whole-table persistence of the dashboards this
// tool feeds: a commit loads the existing ledger, appends the batch and
// rewrites the file.
package store

import (
	"errors"
	"os"
	"path/filepath"

	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger allows setting a custom logger
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// LedgerStore writes batches into CSV ledger files under a data directory,
// one file per destination ("receitas.csv", "despesas.csv", "contatos.csv").
type LedgerStore struct {
	Dir string
}

// NewLedgerStore creates a store rooted at the given directory.
func NewLedgerStore(dir string) *LedgerStore {
	return &LedgerStore{Dir: dir}
}

func (s *LedgerStore) ledgerFile(destination string) string {
	return filepath.Join(s.Dir, destination+".csv")
}

// Commit appends the batch to the destination ledger. Failures to read the
// existing ledger or to rewrite it are reported as CommitError; rollback of
// a partially written file is not guaranteed here.
func (s *LedgerStore) Commit(batch *models.ImportBatch, destination string) error {
	if batch == nil || batch.Len() == 0 {
		return &parsererror.CommitError{
			Destination: destination,
			Err:         errors.New("empty batch"),
		}
	}

	path := s.ledgerFile(destination)

	existing, err := s.loadLedger(path)
	if err != nil {
		return &parsererror.CommitError{Destination: destination, Err: err}
	}

	merged := append(existing, batch.Records...)
	if err := common.WriteCSVFile(merged, path); err != nil {
		return &parsererror.CommitError{Destination: destination, Err: err}
	}

	log.Info("Batch committed",
		logging.Field{Key: logging.FieldDestination, Value: destination},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()},
		logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}

// CommitContacts appends a contact batch to the contacts ledger.
func (s *LedgerStore) CommitContacts(batch *models.ContactBatch, destination string) error {
	if batch == nil || len(batch.Records) == 0 {
		return &parsererror.CommitError{
			Destination: destination,
			Err:         errors.New("empty batch"),
		}
	}

	path := s.ledgerFile(destination)

	var existing []models.ContactRecord
	if _, statErr := os.Stat(path); statErr == nil {
		loaded, err := common.ReadCSVFile[models.ContactRecord](path)
		if err != nil {
			return &parsererror.CommitError{Destination: destination, Err: err}
		}
		existing = loaded
	}

	merged := append(existing, batch.Records...)
	if err := common.WriteCSVFile(merged, path); err != nil {
		return &parsererror.CommitError{Destination: destination, Err: err}
	}
	return nil
}

// Load reads the current contents of a destination ledger. A missing file
// is an empty ledger, not an error.
func (s *LedgerStore) Load(destination string) ([]models.TransactionRecord, error) {
	return s.loadLedger(s.ledgerFile(destination))
}

func (s *LedgerStore) loadLedger(path string) ([]models.TransactionRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return common.ReadCSVFile[models.TransactionRecord](path)
}
