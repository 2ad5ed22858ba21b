// Package importer is the public entry point for embedding the statement
// import pipeline: files in, normalized transaction CSV out.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/ingest"
	"mribeiro/extrato-csv/internal/models"
)

// Destination aliases the ledger destinations for external callers.
type Destination = ingest.Destination

const (
	DestinationReceipts = ingest.DestinationReceipts
	DestinationExpenses = ingest.DestinationExpenses
)

// supportedExtensions lists the file types the pipeline accepts.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".pdf":  true,
	".csv":  true,
}

// ImportFiles runs the pipeline over the given statement files and returns
// the reviewable batch plus per-file failures. Each call uses a fresh cache;
// callers that want cross-call memoization should hold an
// ingest.Orchestrator themselves.
func ImportFiles(files []string, dest Destination) (*models.ImportBatch, []ingest.FileError) {
	return ingest.New(nil).IngestLedger(files, dest)
}

// ImportToCSV imports the given files and writes the normalized batch to a
// CSV file. Per-file failures do not abort the import; an error is returned
// only when nothing could be extracted or the output cannot be written.
func ImportToCSV(files []string, dest Destination, outputPath string) ([]ingest.FileError, error) {
	batch, failures := ImportFiles(files, dest)
	if batch.Len() == 0 {
		return failures, fmt.Errorf("no transactions extracted from %d file(s)", len(files))
	}
	if err := common.WriteCSVFile(batch.Records, outputPath); err != nil {
		return failures, err
	}
	return failures, nil
}

// BatchImport imports every supported file in inputDir into a single CSV at
// outputPath and returns the number of files that contributed.
func BatchImport(inputDir string, dest Destination, outputPath string) (int, []ingest.FileError, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, filepath.Join(inputDir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return 0, nil, fmt.Errorf("no supported files in %s", inputDir)
	}

	failures, err := ImportToCSV(files, dest, outputPath)
	return len(files) - len(failures), failures, err
}

// IsSupported reports whether the pipeline can extract the given file, by
// extension.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
