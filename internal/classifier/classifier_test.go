package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mribeiro/extrato-csv/internal/models"
	"mribeiro/extrato-csv/internal/parsererror"
)

func sampleBatch() *models.ImportBatch {
	return &models.ImportBatch{
		Records: []models.TransactionRecord{
			{
				Description:  "IFOOD *RESTAURANTE",
				Counterparty: "IFOOD *RESTAURANTE",
				Category:     models.DefaultCategory,
				Amount:       decimal.NewFromFloat(-54.90),
			},
			{
				Description:  "TED RECEBIDA ACME LTDA",
				Counterparty: "ACME LTDA",
				Category:     models.DefaultCategory,
				Amount:       decimal.NewFromInt(1000),
			},
		},
	}
}

func TestClassifyAppliesSuggestions(t *testing.T) {
	batch := sampleBatch()
	mock := &MockCompleter{
		Response: "IFOOD *RESTAURANTE -> Alimentação | iFood\n" +
			"TED RECEBIDA ACME LTDA -> Vendas | Outra Empresa\n",
	}

	err := New(mock, "mock").Classify(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, "Alimentação", batch.Records[0].Category)
	assert.Equal(t, "iFood", batch.Records[0].Counterparty,
		"counterparty equal to description may be replaced")

	assert.Equal(t, "Vendas", batch.Records[1].Category)
	assert.Equal(t, "ACME LTDA", batch.Records[1].Counterparty,
		"counterparty resolved from column data must be preserved")
}

func TestClassifyFailureLeavesBatchUntouched(t *testing.T) {
	batch := sampleBatch()
	before := make([]models.TransactionRecord, len(batch.Records))
	copy(before, batch.Records)

	mock := &MockCompleter{Err: errors.New("quota exceeded")}
	err := New(mock, "mock").Classify(context.Background(), batch)

	var ce *parsererror.ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "mock", ce.Provider)
	assert.Equal(t, before, batch.Records)
}

func TestClassifyNilCompleter(t *testing.T) {
	err := New(nil, "none").Classify(context.Background(), sampleBatch())

	var ce *parsererror.ClassificationError
	assert.True(t, errors.As(err, &ce))
}

func TestClassifyEmptyBatch(t *testing.T) {
	mock := &MockCompleter{Response: "irrelevant"}

	assert.NoError(t, New(mock, "mock").Classify(context.Background(), nil))
	assert.NoError(t, New(mock, "mock").Classify(context.Background(), &models.ImportBatch{}))
	assert.Empty(t, mock.Prompts, "empty batches must not spend quota")
}

func TestClassifyCapsDescriptions(t *testing.T) {
	batch := &models.ImportBatch{}
	for i := 0; i < MaxDescriptionsPerBatch+10; i++ {
		batch.Records = append(batch.Records, models.TransactionRecord{
			Description: fmt.Sprintf("LANCAMENTO %03d", i),
			Amount:      decimal.NewFromInt(1),
		})
	}

	mock := &MockCompleter{Response: "LANCAMENTO 000 -> Geral\n"}
	require.NoError(t, New(mock, "mock").Classify(context.Background(), batch))

	require.Len(t, mock.Prompts, 1)
	lines := 0
	for i := 0; i < MaxDescriptionsPerBatch+10; i++ {
		if strings.Contains(mock.Prompts[0], fmt.Sprintf("LANCAMENTO %03d", i)) {
			lines++
		}
	}
	assert.Equal(t, MaxDescriptionsPerBatch, lines)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected map[string]Suggestion
	}{
		{
			name:     "Category and counterparty",
			response: "PIX MERCADO -> Alimentação | Mercado Bom Preço",
			expected: map[string]Suggestion{
				"PIX MERCADO": {Category: "Alimentação", Counterparty: "Mercado Bom Preço"},
			},
		},
		{
			name:     "Category only",
			response: "TARIFA BANCARIA -> Taxas",
			expected: map[string]Suggestion{
				"TARIFA BANCARIA": {Category: "Taxas"},
			},
		},
		{
			name:     "Extra whitespace tolerated",
			response: "  CONTA DE LUZ   ->   Moradia  |  Enel  ",
			expected: map[string]Suggestion{
				"CONTA DE LUZ": {Category: "Moradia", Counterparty: "Enel"},
			},
		},
		{
			name: "Chatter and malformed lines skipped",
			response: "Claro, aqui estão as classificações:\n" +
				"\n" +
				"-> Sem Descrição | X\n" +
				"SEM CATEGORIA -> \n" +
				"VALIDA -> Serviços | Prestador",
			expected: map[string]Suggestion{
				"VALIDA": {Category: "Serviços", Counterparty: "Prestador"},
			},
		},
		{
			name:     "Empty response",
			response: "",
			expected: map[string]Suggestion{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseResponse(tc.response))
		})
	}
}

func TestApplyOverwriteRules(t *testing.T) {
	batch := &models.ImportBatch{
		Records: []models.TransactionRecord{
			{Description: "A", Counterparty: ""},
			{Description: "B", Counterparty: "B"},
			{Description: "C", Counterparty: "Fornecedor Real"},
			{Description: "D", Counterparty: "D"},
		},
	}
	suggestions := map[string]Suggestion{
		"A": {Category: "Cat1", Counterparty: "Nova A"},
		"B": {Category: "Cat2", Counterparty: "Nova B"},
		"C": {Category: "Cat3", Counterparty: "Nova C"},
		"D": {Category: "Cat4"},
	}

	applied := Apply(batch, suggestions)
	assert.Equal(t, 4, applied)

	assert.Equal(t, "Nova A", batch.Records[0].Counterparty, "empty counterparty is filled")
	assert.Equal(t, "Nova B", batch.Records[1].Counterparty, "placeholder counterparty is replaced")
	assert.Equal(t, "Fornecedor Real", batch.Records[2].Counterparty, "real counterparty is kept")
	assert.Equal(t, "D", batch.Records[3].Counterparty, "no counterparty suggested leaves it alone")

	for i, want := range []string{"Cat1", "Cat2", "Cat3", "Cat4"} {
		assert.Equal(t, want, batch.Records[i].Category, "category is always overwritten")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt([]string{"PIX MERCADO", "TARIFA"})

	assert.Contains(t, prompt, "descrição -> categoria | contraparte")
	assert.Contains(t, prompt, "PIX MERCADO\n")
	assert.Contains(t, prompt, "TARIFA\n")
}
