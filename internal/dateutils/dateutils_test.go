package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var reference = time.Date(2025, 3, 15, 10, 30, 0, 0, time.Local)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "Bare Brazilian date",
			input:    "05/01/2024",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Date embedded in text",
			input:    "Pagamento efetuado 05/01/2024 ref. fatura",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Two digit year",
			input:    "31/12/23",
			expected: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Two digit year in previous century",
			input:    "01/06/99",
			expected: time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "First of several dates wins",
			input:    "02/02/2024 a 10/02/2024",
			expected: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "No date falls back to reference day",
			input:    "saldo anterior",
			expected: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Empty string falls back",
			input:    "",
			expected: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Invalid calendar date falls back",
			input:    "32/13/2024",
			expected: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeDate(tc.input, reference)
			assert.True(t, tc.expected.Equal(got), "Expected %s but got %s", tc.expected, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	in := time.Date(2024, 7, 9, 23, 59, 58, 123, time.Local)
	got := Truncate(in)

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 9, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2024-01-05", ToISODate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestToBrazilianFormat(t *testing.T) {
	assert.Equal(t, "05/01/2024", ToBrazilianFormat(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", ToBrazilianFormat(time.Time{}))
}
