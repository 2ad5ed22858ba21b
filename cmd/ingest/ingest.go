// Package ingest implements the ledger import command.
package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"mribeiro/extrato-csv/cmd/root"
	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/ingest"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/store"
)

var destination string

// Cmd is the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Extract transactions from statement files into a reviewable batch",
	Long: `Ingest reads one or more XLSX, PDF or CSV statement files, infers which
column holds the date, amount and description, and normalizes every row
into a transaction record. The batch is written to a preview CSV for
review; with --commit it is appended to the destination ledger instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := parseDestination(destination)
		if err != nil {
			return err
		}

		orchestrator := ingest.New(nil, ingest.WithLogger(logging.GetLogger()))
		batch, failures := orchestrator.IngestLedger(args, dest)
		for _, f := range failures {
			root.Log.WithError(f.Err).Warnf("Skipped file %s", f.File)
		}
		if batch.Len() == 0 {
			return fmt.Errorf("no transactions extracted from %d file(s)", len(args))
		}

		if root.SharedFlags.Commit {
			ledger := store.NewLedgerStore(root.Cfg.Data.Directory)
			return ledger.Commit(batch, string(dest))
		}

		output := root.SharedFlags.Output
		if output == "" {
			output = "preview.csv"
		}
		if err := common.WriteCSVFile(batch.Records, output); err != nil {
			return err
		}
		root.Log.Infof("Wrote %d transaction(s) to %s", batch.Len(), output)
		return nil
	},
}

func parseDestination(s string) (ingest.Destination, error) {
	switch ingest.Destination(s) {
	case ingest.DestinationReceipts, ingest.DestinationExpenses:
		return ingest.Destination(s), nil
	default:
		return "", fmt.Errorf("invalid destination %q (must be %q or %q)",
			s, ingest.DestinationReceipts, ingest.DestinationExpenses)
	}
}

func init() {
	Cmd.Flags().StringVarP(&destination, "dest", "d", string(ingest.DestinationExpenses),
		"Destination ledger: receitas or despesas")
}
