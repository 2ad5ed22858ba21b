// Package classify implements the batch classification command.
package classify

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mribeiro/extrato-csv/cmd/root"
	"mribeiro/extrato-csv/internal/classifier"
	"mribeiro/extrato-csv/internal/common"
	"mribeiro/extrato-csv/internal/models"
)

var rulesFile string

// Cmd is the classify command
var Cmd = &cobra.Command{
	Use:   "classify [preview.csv]",
	Short: "Suggest categories and counterparties for a previewed batch",
	Long: `Classify reads a preview CSV produced by the ingest command and fills in
categories. Local keyword rules run first; when AI classification is
enabled, the remaining descriptions are sent to Gemini in a single batch.
The file is rewritten in place with the suggestions applied.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		records, err := common.ReadCSVFile[models.TransactionRecord](path)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no transactions found in %s", path)
		}
		batch := &models.ImportBatch{Records: records}

		if rulesFile == "" {
			rulesFile = root.Cfg.Rules.KeywordFile
		}
		if rulesFile != "" {
			rules, err := classifier.LoadKeywordRules(rulesFile)
			if err != nil {
				return err
			}
			applied := classifier.ApplyKeywordRules(batch, rules)
			root.Log.Infof("Keyword rules categorized %d transaction(s)", applied)
		}

		if root.Cfg.AI.Enabled {
			if err := classifyWithGemini(cmd.Context(), batch); err != nil {
				return err
			}
		}

		output := root.SharedFlags.Output
		if output == "" {
			output = path
		}
		if err := common.WriteCSVFile(batch.Records, output); err != nil {
			return err
		}
		root.Log.Infof("Wrote %d classified transaction(s) to %s", batch.Len(), output)
		return nil
	},
}

func classifyWithGemini(ctx context.Context, batch *models.ImportBatch) error {
	timeout := time.Duration(root.Cfg.AI.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completer, err := classifier.NewGeminiCompleter(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := completer.Close(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close Gemini client")
		}
	}()

	return classifier.New(completer, "gemini").Classify(ctx, batch)
}

func init() {
	Cmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML file with local keyword categorization rules")
}
