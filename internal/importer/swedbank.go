package importer

import (
	"context"
	"io"
	"strings"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// SwedbankParser parses Swedbank transaction exports. The file opens with one or more
// metadata lines starting with "*", followed by a comma-separated header. Amounts use a
// decimal point and a leading minus for withdrawals.
type SwedbankParser struct{}

const (
	swedbankColTransactionDate = 6
	swedbankColReference       = 8
	swedbankColDescription     = 9
	swedbankColAmount          = 10
	swedbankColBalance         = 11
)

var swedbankLayout = layout{
	bank:      banks.Swedbank,
	delimiter: ',',
	header: []string{
		"Radnummer", "Clearingnummer", "Kontonummer", "Produkt", "Valuta",
		"Bokföringsdag", "Transaktionsdag", "Valutadag", "Referens", "Beskrivning",
		"Belopp", "Bokfört saldo",
	},
	minFields: swedbankColAmount + 1,
	preamble: func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), "*")
	},
}

// Bank returns the registry name.
func (p *SwedbankParser) Bank() string { return banks.Swedbank }

// CanParse skips the "* Transaktioner" preamble and matches the column header.
func (p *SwedbankParser) CanParse(sample string) bool { return swedbankLayout.matches(sample) }

// Parse reads a Swedbank CSV and returns its transactions in file order.
func (p *SwedbankParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := swedbankLayout.read(ctx, r, func(rec []string) error {
		txn, err := parseSwedbankRow(rec)
		if err != nil {
			return err
		}
		txns = append(txns, txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func parseSwedbankRow(rec []string) (model.Transaction, error) {
	date, err := dateField(rec, swedbankColTransactionDate, "Transaktionsdag", normalize.ISODate)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, income, err := amountField(rec, swedbankColAmount, "Belopp")
	if err != nil {
		return model.Transaction{}, err
	}

	balance, err := balanceField(rec, swedbankColBalance, "Bokfört saldo")
	if err != nil {
		return model.Transaction{}, err
	}

	desc := field(rec, swedbankColDescription)
	if desc == "" {
		desc = field(rec, swedbankColReference)
	}

	return model.Transaction{
		Date:         date,
		Description:  desc,
		Amount:       amount,
		IsIncome:     income,
		BalanceAfter: balance,
	}, nil
}
