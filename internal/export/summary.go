package export

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/privatekonomi/statements/internal/model"
)

// Summary totals a batch of transactions.
type Summary struct {
	Count   int
	Income  decimal.Decimal
	Expense decimal.Decimal
	From    time.Time
	To      time.Time
}

// Net is income minus expense.
func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Summarize adds up income and expense and finds the covered date range.
func Summarize(txns []model.Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for i, t := range txns {
		if t.IsIncome {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
		if i == 0 || t.Date.Before(s.From) {
			s.From = t.Date
		}
		if i == 0 || t.Date.After(s.To) {
			s.To = t.Date
		}
	}
	s.Count = len(txns)
	return s
}
