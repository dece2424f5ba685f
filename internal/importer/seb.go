package importer

import (
	"context"
	"io"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// SEBParser parses SEB account exports (semicolon-separated, decimal comma, no
// currency suffix). The sign of Belopp decides income.
type SEBParser struct{}

const (
	sebColBookingDate = 0
	sebColText        = 3
	sebColAmount      = 4
	sebColBalance     = 5
)

var sebLayout = layout{
	bank:      banks.SEB,
	delimiter: ';',
	header:    []string{"Bokföringsdatum", "Valutadatum", "Verifikationsnummer", "Text/mottagare", "Belopp", "Saldo"},
	minFields: sebColAmount + 1,
}

// Bank returns the registry name.
func (p *SEBParser) Bank() string { return banks.SEB }

// CanParse matches the Bokföringsdatum;Valutadatum;Verifikationsnummer header.
func (p *SEBParser) CanParse(sample string) bool { return sebLayout.matches(sample) }

// Parse reads an SEB CSV and returns its transactions in file order.
func (p *SEBParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := sebLayout.read(ctx, r, func(rec []string) error {
		date, err := dateField(rec, sebColBookingDate, "Bokföringsdatum", normalize.ISODate)
		if err != nil {
			return err
		}
		amount, income, err := amountField(rec, sebColAmount, "Belopp")
		if err != nil {
			return err
		}
		balance, err := balanceField(rec, sebColBalance, "Saldo")
		if err != nil {
			return err
		}
		txns = append(txns, model.Transaction{
			Date:         date,
			Description:  field(rec, sebColText),
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
