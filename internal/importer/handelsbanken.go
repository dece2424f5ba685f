package importer

import (
	"context"
	"io"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// HandelsbankenParser parses Handelsbanken account exports. The row date is the
// transaction date; Reskontradatum is the ledger date and is ignored.
type HandelsbankenParser struct{}

const (
	shbColTransactionDate = 1
	shbColText            = 2
	shbColAmount          = 3
	shbColBalance         = 4
)

var handelsbankenLayout = layout{
	bank:      banks.Handelsbanken,
	delimiter: ';',
	header:    []string{"Reskontradatum", "Transaktionsdatum", "Text", "Belopp", "Saldo"},
	minFields: shbColAmount + 1,
}

// Bank returns the registry name.
func (p *HandelsbankenParser) Bank() string { return banks.Handelsbanken }

// CanParse matches the Reskontradatum;Transaktionsdatum header.
func (p *HandelsbankenParser) CanParse(sample string) bool {
	return handelsbankenLayout.matches(sample)
}

// Parse reads a Handelsbanken CSV and returns its transactions in file order.
func (p *HandelsbankenParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := handelsbankenLayout.read(ctx, r, func(rec []string) error {
		date, err := dateField(rec, shbColTransactionDate, "Transaktionsdatum", normalize.ISODate)
		if err != nil {
			return err
		}
		amount, income, err := amountField(rec, shbColAmount, "Belopp")
		if err != nil {
			return err
		}
		balance, err := balanceField(rec, shbColBalance, "Saldo")
		if err != nil {
			return err
		}
		txns = append(txns, model.Transaction{
			Date:         date,
			Description:  field(rec, shbColText),
			Amount:       amount,
			IsIncome:     income,
			BalanceAfter: balance,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}
