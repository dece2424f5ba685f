package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSignedAmount(t *testing.T) {
	tests := []struct {
		txn  Transaction
		want string
	}{
		{Transaction{Amount: decimal.RequireFromString("8800.00"), IsIncome: true}, "8800.00"},
		{Transaction{Amount: decimal.RequireFromString("256.70")}, "-256.70"},
		{Transaction{Amount: decimal.Zero}, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.txn.SignedAmount().StringFixed(2))
	}
}
