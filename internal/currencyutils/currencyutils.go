// Package currencyutils provides monetary string normalization for the
// ingestion pipeline. Input values come from bank statements and ledgers
// with unknown formatting, so parsing follows the Brazilian convention:
// '.' as thousands separator and ',' as decimal separator whenever both
// are present.
package currencyutils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// NormalizeAmount parses a free-form monetary string into a signed decimal.
// It is a total function: empty input, stray symbols or unparseable text all
// degrade to zero, never to an error. The sign is taken from a minus sign,
// enclosing parentheses, or a leading/trailing debit marker letter ('D').
func NormalizeAmount(raw string) decimal.Decimal {
	amount, err := ParseAmount(raw)
	if err != nil {
		log.WithField("value", raw).Debug("Amount did not parse, normalizing to zero")
		return decimal.Zero
	}
	return amount
}

// ParseAmount is the error-returning variant of NormalizeAmount for callers
// that must distinguish a genuine zero from a parse failure.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false

	// Parenthetical negatives: (1.234,56)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if strings.Contains(s, "-") {
		negative = true
	}

	// Letter-coded direction markers used by Brazilian statements:
	// "123,45 D" (débito) or "D 123,45". A credit marker is a no-op.
	if marker, ok := directionMarker(s); ok && marker == 'D' {
		negative = true
	}

	standardized := standardizeSeparators(stripNonNumeric(s))
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("no digits in amount '%s'", raw)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", raw, err)
	}

	if negative && amount.IsPositive() {
		amount = amount.Neg()
	}
	return amount, nil
}

// directionMarker returns the leading or trailing debit/credit marker letter
// ('D' or 'C'), if the string carries one next to its numeric body.
func directionMarker(s string) (rune, bool) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) < 2 {
		return 0, false
	}
	first := unicode.ToUpper(runes[0])
	last := unicode.ToUpper(runes[len(runes)-1])
	if last == 'D' || last == 'C' {
		return last, true
	}
	if (first == 'D' || first == 'C') && !unicode.IsLetter(runes[1]) {
		return first, true
	}
	return 0, false
}

// stripNonNumeric removes every character that is not a digit, comma or
// period. Currency symbols, spaces and marker letters all fall away here.
func stripNonNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// standardizeSeparators rewrites the separator convention into the one
// decimal.NewFromString expects. With both separators present the Brazilian
// convention applies: '.' thousands, ',' decimal. A lone ',' is a decimal
// separator; a lone '.' is kept as already-decimal.
func standardizeSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return s
}

// FormatAmount formats a decimal amount for display in the Brazilian
// convention, e.g. "R$ 1234,56". No thousands separators are inserted.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	return "R$ " + strings.ReplaceAll(fixed, ".", ",")
}

// IsZero reports whether an amount is exactly zero.
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}
