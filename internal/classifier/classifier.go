// Package classifier backfills category and counterparty on an import batch
// from its free-text descriptions. Classification is best-effort and opt-in:
// it costs external quota, so it only runs on explicit request, and any
// service failure leaves the batch exactly as it was.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

// MaxDescriptionsPerBatch caps how many distinct descriptions are sent in a
// single classification request.
const MaxDescriptionsPerBatch = 40

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Suggestion is one classified description.
type Suggestion struct {
	Category     string
	Counterparty string
}

// Classifier maps transaction descriptions to (category, counterparty)
// pairs through an injected Completer.
type Classifier struct {
	completer Completer
	provider  string
}

// New creates a Classifier over the given completer. The provider name is
// only used in error and log messages.
func New(completer Completer, provider string) *Classifier {
	return &Classifier{completer: completer, provider: provider}
}

// Classify requests a classification of the batch's distinct descriptions
// and applies the results in place. Rules:
//
//   - category is always overwritten when a mapping exists;
//   - counterparty is overwritten only when it is empty or still equal to
//     the description, never when it was resolved from real column data.
//
// On any failure of the external call the batch is returned untouched and a
// ClassificationError is surfaced. This path never panics into the caller.
func (c *Classifier) Classify(ctx context.Context, batch *models.ImportBatch) error {
	if batch == nil || batch.Len() == 0 {
		return nil
	}
	if c.completer == nil {
		return &parsererror.ClassificationError{
			Provider: c.provider,
			Err:      fmt.Errorf("no completer configured"),
		}
	}

	descriptions := batch.Descriptions()
	if len(descriptions) > MaxDescriptionsPerBatch {
		descriptions = descriptions[:MaxDescriptionsPerBatch]
	}
	if len(descriptions) == 0 {
		return nil
	}

	prompt := BuildPrompt(descriptions)

	response, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		log.WithError(err).Warn("Batch classification failed, batch left unmodified",
			logging.Field{Key: logging.FieldProvider, Value: c.provider})
		return &parsererror.ClassificationError{Provider: c.provider, Err: err}
	}

	suggestions := ParseResponse(response)
	if len(suggestions) == 0 {
		log.Warn("Classification response contained no parseable lines",
			logging.Field{Key: logging.FieldProvider, Value: c.provider})
		return nil
	}

	applied := Apply(batch, suggestions)
	log.Info("Batch classification applied",
		logging.Field{Key: logging.FieldProvider, Value: c.provider},
		logging.Field{Key: logging.FieldCount, Value: applied})
	return nil
}

// BuildPrompt assembles the instruction text plus the description list in
// the fixed line-oriented response grammar the service is asked to follow.
func BuildPrompt(descriptions []string) string {
	var b strings.Builder
	b.WriteString("Você é um assistente financeiro. Para cada lançamento bancário abaixo, ")
	b.WriteString("sugira uma categoria e a contraparte (favorecido ou pagador).\n")
	b.WriteString("Responda uma linha por lançamento, exatamente neste formato:\n")
	b.WriteString("descrição -> categoria | contraparte\n\n")
	b.WriteString("Lançamentos:\n")
	for _, d := range descriptions {
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}

// ParseResponse parses the line-oriented response grammar permissively:
// lines without the "->" separator, or with an empty description or
// category, are skipped rather than failing the batch.
func ParseResponse(response string) map[string]Suggestion {
	suggestions := make(map[string]Suggestion)

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			continue
		}
		description := strings.TrimSpace(parts[0])
		if description == "" {
			continue
		}

		category := strings.TrimSpace(parts[1])
		counterparty := ""
		if idx := strings.Index(parts[1], "|"); idx >= 0 {
			category = strings.TrimSpace(parts[1][:idx])
			counterparty = strings.TrimSpace(parts[1][idx+1:])
		}
		if category == "" {
			continue
		}

		suggestions[description] = Suggestion{
			Category:     category,
			Counterparty: counterparty,
		}
	}
	return suggestions
}

// Apply mutates the batch in place per the overwrite rules and returns the
// number of records touched.
func Apply(batch *models.ImportBatch, suggestions map[string]Suggestion) int {
	applied := 0
	for i := range batch.Records {
		rec := &batch.Records[i]
		s, ok := suggestions[strings.TrimSpace(rec.Description)]
		if !ok {
			continue
		}

		rec.Category = s.Category
		if s.Counterparty != "" && (rec.Counterparty == "" || rec.Counterparty == rec.Description) {
			rec.Counterparty = s.Counterparty
		}
		applied++
	}
	return applied
}
