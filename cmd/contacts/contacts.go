// Package contacts implements the contacts import command.
package contacts

import (
	"fmt"

	"github.com/spf13/cobra"

	"mribeiro/extrato-csv/cmd/root"
	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/ingest"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/store"
)

// Cmd is the contacts command
var Cmd = &cobra.Command{
	Use:   "contacts [files...]",
	Short: "Extract contact records from spreadsheet files",
	Long: `Contacts reads one or more XLSX or CSV files holding client or supplier
lists, infers which column holds the name, document, email and phone, and
normalizes every row into a contact record. Rows without a name are
dropped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator := ingest.New(nil, ingest.WithLogger(logging.GetLogger()))
		batch, failures := orchestrator.IngestContacts(args)
		for _, f := range failures {
			root.Log.WithError(f.Err).Warnf("Skipped file %s", f.File)
		}
		if len(batch.Records) == 0 {
			return fmt.Errorf("no contacts extracted from %d file(s)", len(args))
		}

		if root.SharedFlags.Commit {
			ledger := store.NewLedgerStore(root.Cfg.Data.Directory)
			return ledger.CommitContacts(batch, string(ingest.DestinationContacts))
		}

		output := root.SharedFlags.Output
		if output == "" {
			output = "contatos-preview.csv"
		}
		if err := common.WriteCSVFile(batch.Records, output); err != nil {
			return err
		}
		root.Log.Infof("Wrote %d contact(s) to %s", len(batch.Records), output)
		return nil
	},
}
