package model

import "github.com/shopspring/decimal"

// Transaction represents one parsed bank statement row.
type Transaction struct {
	ID          int             // 0-based position in the parsed statement
	Date        string          // raw date string as it appeared, display-only
	Description string          //nolint:revive // plain field name is clearest
	Amount      decimal.Decimal // positive = inflow, negative = outflow
	Category    Category
	Inferred    bool // true while the category came from the classifier
}

// Categorized reports whether the transaction counts toward validation.
func (t Transaction) Categorized() bool {
	return t.Category != CategoryUnset
}
