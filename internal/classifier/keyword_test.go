package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mribeiro/extrato-csv/internal/models"
)

func TestLoadKeywordRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `categories:
  - name: Alimentação
    keywords: [ifood, restaurante, padaria]
  - name: Transporte
    keywords: [uber, "99app", combustivel]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadKeywordRules(path)
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, "Alimentação", rules[0].Name)
	assert.Equal(t, []string{"ifood", "restaurante", "padaria"}, rules[0].Keywords)
}

func TestLoadKeywordRulesMissingFile(t *testing.T) {
	_, err := LoadKeywordRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyKeywordRules(t *testing.T) {
	rules := []KeywordRule{
		{Name: "Alimentação", Keywords: []string{"ifood", "padaria"}},
		{Name: "Transporte", Keywords: []string{"uber"}},
	}
	batch := &models.ImportBatch{
		Records: []models.TransactionRecord{
			{Description: "IFOOD *PEDIDO", Category: models.DefaultCategory},
			{Description: "UBER TRIP", Category: ""},
			{Description: "PADARIA DO ZE", Category: "Lazer"},
			{Description: "ALUGUEL", Category: models.DefaultCategory},
		},
	}

	applied := ApplyKeywordRules(batch, rules)

	assert.Equal(t, 2, applied)
	assert.Equal(t, "Alimentação", batch.Records[0].Category)
	assert.Equal(t, "Transporte", batch.Records[1].Category)
	assert.Equal(t, "Lazer", batch.Records[2].Category, "explicit categories are never overridden")
	assert.Equal(t, models.DefaultCategory, batch.Records[3].Category, "unmatched records keep the default")
}

func TestApplyKeywordRulesMatchesCounterparty(t *testing.T) {
	rules := []KeywordRule{{Name: "Transporte", Keywords: []string{"uber"}}}
	batch := &models.ImportBatch{
		Records: []models.TransactionRecord{
			{Description: "DEBITO CARTAO", Counterparty: "Uber do Brasil", Category: models.DefaultCategory},
		},
	}

	assert.Equal(t, 1, ApplyKeywordRules(batch, rules))
	assert.Equal(t, "Transporte", batch.Records[0].Category)
}

func TestApplyKeywordRulesNoRules(t *testing.T) {
	batch := &models.ImportBatch{
		Records: []models.TransactionRecord{{Description: "X", Category: models.DefaultCategory}},
	}
	assert.Equal(t, 0, ApplyKeywordRules(batch, nil))
	assert.Equal(t, 0, ApplyKeywordRules(nil, []KeywordRule{{Name: "A", Keywords: []string{"a"}}}))
}
