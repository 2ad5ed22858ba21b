// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mribeiro/extrato-csv/internal/classifier"
	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/config"
	"mribeiro/extrato-csv/internal/currencyutils"
	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/normalizer"
	"mribeiro/extrato-csv/internal/store"
	"mribeiro/extrato-csv/internal/tabular"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output string
	Commit bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration after PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato-csv",
		Short: "A CLI tool to import bank statements and spreadsheets into CSV ledgers.",
		Long: `extrato-csv extracts transactions from XLSX, PDF and CSV exports of
Brazilian bank statements, normalizes amounts and dates, and writes them
into per-destination CSV ledgers. It can also suggest categories for the
imported transactions.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to extrato-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Cfg = config.GetGlobalConfig()
			Log = config.Logger

			appLog := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(appLog)

			// Propagate the configured logger to all pipeline packages.
			tabular.SetLogger(appLog)
			normalizer.SetLogger(appLog)
			classifier.SetLogger(appLog)
			common.SetLogger(appLog)
			store.SetLogger(appLog)
			currencyutils.SetLogger(Log)

			if Cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file for the batch preview")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Commit, "commit", "c", false, "Commit the batch to the destination ledger")
}
