// Package amount normalizes locale-ambiguous bank amount strings.
//
// Spanish exports write "1.234,56", English ones "1,234.56", and plenty of
// banks drop the thousands separator entirely. The rules here disambiguate
// by separator position and decimal-digit count rather than by a declared
// locale, because statement files never declare one.
package amount

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Normalize converts an amount string into a decimal value.
//
// Currency symbols and whitespace are stripped first. When both "," and "."
// appear, the rightmost one is the decimal separator. When only one appears,
// it is a decimal separator only if it occurs once with at most two digits
// after it; otherwise it is a thousands separator and is removed.
//
// Unparseable input yields zero, never an error. Statement rows routinely
// carry junk in the amount column and a zero row is dropped downstream.
func Normalize(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r == '€' || r == '$' || r == '£' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// European: dots group thousands, comma is decimal.
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			// American: commas group thousands.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		if isDecimalSeparator(cleaned, ",") {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasDot:
		if !isDecimalSeparator(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// isDecimalSeparator reports whether sep occurs exactly once with at most
// two digits after it, the shape of a decimal separator in either locale.
func isDecimalSeparator(s, sep string) bool {
	parts := strings.Split(s, sep)
	return len(parts) == 2 && len(parts[1]) <= 2
}
