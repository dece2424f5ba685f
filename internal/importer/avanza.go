package importer

import (
	"context"
	"io"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// AvanzaParser parses Avanza account transaction exports. Avanza writes "-" for
// empty cells and has no running balance column, so BalanceAfter is never set.
type AvanzaParser struct{}

const (
	avanzaColDate        = 0
	avanzaColType        = 2
	avanzaColDescription = 3
	avanzaColAmount      = 6
)

var avanzaLayout = layout{
	bank:      banks.Avanza,
	delimiter: ';',
	header: []string{
		"Datum", "Konto", "Typ av transaktion", "Värdepapper/beskrivning",
		"Antal", "Kurs", "Belopp", "Courtage", "Valuta", "ISIN",
	},
	minFields: avanzaColAmount + 1,
}

var avanzaTypes = typeRules{
	income:  []string{"Insättning", "Sälj", "Utdelning"},
	expense: []string{"Uttag", "Köp", "Preliminärskatt", "Utländsk källskatt"},
}

// Bank returns the registry name.
func (p *AvanzaParser) Bank() string { return banks.Avanza }

// CanParse matches the Datum;Konto;Typ av transaktion header.
func (p *AvanzaParser) CanParse(sample string) bool { return avanzaLayout.matches(sample) }

// Parse reads an Avanza CSV and returns its transactions in file order.
func (p *AvanzaParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := avanzaLayout.read(ctx, r, func(rec []string) error {
		date, err := dateField(rec, avanzaColDate, "Datum", normalize.ISODate)
		if err != nil {
			return err
		}
		amount, signIncome, err := amountField(rec, avanzaColAmount, "Belopp")
		if err != nil {
			return err
		}
		typ := field(rec, avanzaColType)
		txns = append(txns, model.Transaction{
			Date:        date,
			Description: field(rec, avanzaColDescription),
			Amount:      amount,
			IsIncome:    avanzaTypes.isIncome(typ, signIncome),
			Type:        typ,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txns, nil
}
