package importer

import (
	"context"
	"io"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// NordeaParser parses Nordea Netbank exports. Dates use slashes (2025/12/29) and
// pending card purchases are exported with an empty Saldo.
type NordeaParser struct{}

const (
	nordeaColBookingDate = 0
	nordeaColAmount      = 1
	nordeaColName        = 4
	nordeaColTitle       = 5
	nordeaColBalance     = 6
)

var nordeaLayout = layout{
	bank:      banks.Nordea,
	delimiter: ';',
	header:    []string{"Bokföringsdag", "Belopp", "Avsändare", "Mottagare", "Namn", "Rubrik", "Saldo", "Valuta"},
	minFields: nordeaColTitle + 1,
}

// Bank returns the registry name.
func (p *NordeaParser) Bank() string { return banks.Nordea }

// CanParse matches the Bokföringsdag;Belopp;Avsändare header.
func (p *NordeaParser) CanParse(sample string) bool { return nordeaLayout.matches(sample) }

// Parse reads a Nordea CSV and returns its transactions in file order.
func (p *NordeaParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := nordeaLayout.read(ctx, r, func(rec []string) error {
		txn, err := parseNordeaRow(rec)
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

func parseNordeaRow(rec []string) (model.Transaction, error) {
	date, err := dateField(rec, nordeaColBookingDate, "Bokföringsdag", normalize.SlashDate)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, income, err := amountField(rec, nordeaColAmount, "Belopp")
	if err != nil {
		return model.Transaction{}, err
	}

	balance, err := balanceField(rec, nordeaColBalance, "Saldo")
	if err != nil {
		return model.Transaction{}, err
	}

	desc := field(rec, nordeaColTitle)
	if desc == "" {
		desc = field(rec, nordeaColName)
	}

	return model.Transaction{
		Date:         date,
		Description:  desc,
		Amount:       amount,
		IsIncome:     income,
		BalanceAfter: balance,
	}, nil
}
