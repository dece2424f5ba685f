package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement row.
type Transaction struct {
	Date         time.Time           // calendar date, midnight UTC
	Description  string
	Amount       decimal.Decimal     // magnitude, never negative
	IsIncome     bool                // sign of the row; Amount carries none
	BalanceAfter decimal.NullDecimal // invalid for reserved rows and formats without a balance
	Type         string              // bank transaction type (Kortköp, Insättning, ...), empty if the format has none
}

// SignedAmount returns Amount negated for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
