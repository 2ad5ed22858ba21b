// Package ingest orchestrates the import pipeline: extraction, role
// inference and record normalization across one or more uploaded files,
// producing a reviewable batch. The orchestrator performs no persistence;
// committing a reviewed batch belongs to the ledger store.
package ingest

import (
	"time"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/normalizer"
	"mribeiro/extrato-csv/internal/roles"
	"mribeiro/extrato-csv/internal/tabular"
)

// roleSampleRows caps how many data rows feed the statistical fallbacks of
// the role inferencer.
const roleSampleRows = 20

// Destination identifies the ledger an import batch is bound for.
type Destination string

const (
	DestinationReceipts Destination = "receitas"
	DestinationExpenses Destination = "despesas"
	DestinationContacts Destination = "contatos"
)

// FileError pairs a file that failed outright with the reason.
type FileError struct {
	File string
	Err  error
}

// Orchestrator runs ingestion synchronously, one user action at a time.
// Results are cached by file-name set; the cache is owned by the caller
// through Cache and only explicit invalidation discards it.
type Orchestrator struct {
	cache *Cache
	log   logging.Logger
	now   func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger overrides the orchestrator's logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock overrides the reference clock used for date defaulting. Tests
// use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New creates an Orchestrator over the given cache. A nil cache gets a
// fresh private one.
func New(cache *Cache, opts ...Option) *Orchestrator {
	if cache == nil {
		cache = NewCache()
	}
	o := &Orchestrator{
		cache: cache,
		log:   logging.GetLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// IngestLedger processes each file independently through extraction, role
// inference and normalization, concatenating results in file order then row
// order. Files that fail outright are collected as FileErrors without
// aborting the batch. For the expenses destination all amounts are forced
// to their absolute value (destination policy, applied here and not in the
// normalizer).
//
// Repeated calls with the same file-name set return the cached batch
// without re-extracting, until the caller invalidates the cache.
func (o *Orchestrator) IngestLedger(files []string, dest Destination) (*models.ImportBatch, []FileError) {
	key := string(dest) + "\x00" + SourceKey(files)
	if batch, ok := o.cache.getLedger(key); ok {
		o.log.Debug("Returning cached batch",
			logging.Field{Key: logging.FieldDestination, Value: string(dest)},
			logging.Field{Key: logging.FieldCount, Value: batch.Len()})
		return batch, nil
	}

	var (
		records  []models.TransactionRecord
		failures []FileError
	)
	for _, file := range files {
		recs, err := o.ingestLedgerFile(file)
		if err != nil {
			o.log.WithError(err).Warn("File failed to ingest",
				logging.Field{Key: logging.FieldFile, Value: file})
			failures = append(failures, FileError{File: file, Err: err})
			continue
		}
		records = append(records, recs...)
	}

	if dest == DestinationExpenses {
		for i := range records {
			records[i].Amount = records[i].Amount.Abs()
		}
	}

	batch := &models.ImportBatch{
		Records:   records,
		SourceSet: SourceSet(files),
	}
	o.cache.putLedger(key, batch)

	o.log.Info("Ingestion complete",
		logging.Field{Key: logging.FieldDestination, Value: string(dest)},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()},
		logging.Field{Key: "failed_files", Value: len(failures)})
	return batch, failures
}

// IngestContacts is the contacts-import variant, with its simpler role set.
func (o *Orchestrator) IngestContacts(files []string) (*models.ContactBatch, []FileError) {
	key := SourceKey(files)
	if batch, ok := o.cache.getContacts(key); ok {
		return batch, nil
	}

	var (
		records  []models.ContactRecord
		failures []FileError
	)
	for _, file := range files {
		grid, err := tabular.Extract(file)
		if err != nil {
			o.log.WithError(err).Warn("File failed to ingest",
				logging.Field{Key: logging.FieldFile, Value: file})
			failures = append(failures, FileError{File: file, Err: err})
			continue
		}
		roleMap := roles.InferContactRoles(grid.Header)
		records = append(records, normalizer.NormalizeContacts(grid, roleMap, o.now())...)
	}

	batch := &models.ContactBatch{
		Records:   records,
		SourceSet: SourceSet(files),
	}
	o.cache.putContacts(key, batch)
	return batch, failures
}

// Invalidate discards any cached batch for the given file set.
func (o *Orchestrator) Invalidate(files []string) {
	o.cache.Invalidate(files)
}

func (o *Orchestrator) ingestLedgerFile(file string) ([]models.TransactionRecord, error) {
	grid, err := tabular.Extract(file)
	if err != nil {
		return nil, err
	}

	sample := grid.Rows
	if len(sample) > roleSampleRows {
		sample = sample[:roleSampleRows]
	}
	roleMap := roles.InferRoles(grid.Header, sample)

	o.log.Debug("Roles inferred",
		logging.Field{Key: logging.FieldFile, Value: file},
		logging.Field{Key: "roles", Value: roleMap})

	return normalizer.Normalize(grid, roleMap, o.now()), nil
}
