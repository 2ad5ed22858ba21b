package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Empty string", "", decimal.Zero, false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"Comma decimal separator", "123,45", decimal.NewFromFloat(123.45), false},
		{"Dot decimal separator", "123.45", decimal.NewFromFloat(123.45), false},
		{"Brazilian thousands and decimal", "1.234,56", decimal.NewFromFloat(1234.56), false},
		{"Multiple thousands groups", "1.234.567,89", decimal.NewFromFloat(1234567.89), false},
		{"Currency prefix", "R$ 1.234,56", decimal.NewFromFloat(1234.56), false},
		{"Minus sign", "-123,45", decimal.NewFromFloat(-123.45), false},
		{"Minus sign after currency", "R$ -123,45", decimal.NewFromFloat(-123.45), false},
		{"Parenthetical negative", "(1.234,56)", decimal.NewFromFloat(-1234.56), false},
		{"Trailing debit marker", "123,45 D", decimal.NewFromFloat(-123.45), false},
		{"Trailing credit marker", "123,45 C", decimal.NewFromFloat(123.45), false},
		{"Leading debit marker", "D 123,45", decimal.NewFromFloat(-123.45), false},
		{"With surrounding spaces", "  123,45  ", decimal.NewFromFloat(123.45), false},
		{"Trailing zeros", "123,00", decimal.NewFromInt(123), false},
		{"Non-numeric", "abc", decimal.Zero, true},
		{"Symbols only", "R$ --", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
	}{
		{"Valid amount passes through", "1.234,56", decimal.NewFromFloat(1234.56)},
		{"Parse failure degrades to zero", "não informado", decimal.Zero},
		{"Empty string is zero", "", decimal.Zero},
		{"Negative survives", "(50,00)", decimal.NewFromInt(-50)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeAmount(tc.input)
			assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
		})
	}
}

// Normalizing an already-formatted amount must be stable: formatting a parsed
// value and parsing it again yields the same number.
func TestNormalizeAmountRoundTrip(t *testing.T) {
	inputs := []string{"1.234,56", "(789,10)", "0,99", "R$ 15,00"}

	for _, input := range inputs {
		first := NormalizeAmount(input)
		second := NormalizeAmount(FormatAmount(first))
		assert.True(t, first.Equal(second), "round trip changed %s: %s != %s", input, first, second)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 1234,56", FormatAmount(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "R$ -50,00", FormatAmount(decimal.NewFromInt(-50)))
	assert.Equal(t, "R$ 0,00", FormatAmount(decimal.Zero))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(decimal.Zero))
	assert.True(t, IsZero(decimal.NewFromFloat(0.00)))
	assert.False(t, IsZero(decimal.NewFromFloat(0.01)))
}
