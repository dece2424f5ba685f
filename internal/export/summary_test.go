package export

import (
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTxns())
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "8800.00", s.Income.StringFixed(2))
	assert.Equal(t, "256.70", s.Expense.StringFixed(2))
	assert.Equal(t, "8543.30", s.Net().StringFixed(2))
	assert.Equal(t, time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC), s.From)
	assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), s.To)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Net().IsZero())
	assert.True(t, s.From.IsZero())
}

func TestMinorUnits(t *testing.T) {
	sek := money.GetCurrency(money.SEK)
	jpy := money.GetCurrency(money.JPY)

	tests := []struct {
		in   string
		cur  *money.Currency
		want int64
	}{
		{"8800.00", sek, 880000},
		{"-256.70", sek, -25670},
		{"0.005", sek, 1},
		{"-0.005", sek, -1},
		{"1500", jpy, 1500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinorUnits(decimal.RequireFromString(tt.in), tt.cur), tt.in)
	}
}

func TestDisplay(t *testing.T) {
	sek := money.GetCurrency(money.SEK)
	got := Display(decimal.RequireFromString("8800.00"), sek)
	assert.Equal(t, money.New(880000, money.SEK).Display(), got)
	assert.Contains(t, got, "800")
}
