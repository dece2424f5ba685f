package importer

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
	"github.com/privatekonomi/statements/internal/normalize"
)

// ICABankenParser parses ICA Banken account exports:
//
//	Datum;Text;Typ;Belopp;Saldo
//	2025-12-24;Lön;Insättning;8 800,00 kr;587,48 kr
//	2025-12-23;ICA Nära;Reserverat;-256,70 kr;
//
// Amounts carry a "kr" suffix and space-grouped thousands. Reserved rows have no
// balance yet.
type ICABankenParser struct{}

const (
	icaColDate    = 0
	icaColText    = 1
	icaColType    = 2
	icaColAmount  = 3
	icaColBalance = 4

	icaTypeReserved = "Reserverat"
)

var icaLayout = layout{
	bank:      banks.ICABanken,
	delimiter: ';',
	header:    []string{"Datum", "Text", "Typ", "Belopp", "Saldo"},
	minFields: icaColAmount + 1,
}

var icaTypes = typeRules{
	income:  []string{"Insättning"},
	expense: []string{"Uttag", "Kortköp", icaTypeReserved, "E-faktura", "Autogiro", "Betalning"},
}

// Bank returns the registry name.
func (p *ICABankenParser) Bank() string { return banks.ICABanken }

// CanParse matches the semicolon-separated Datum;Text;Typ;Belopp;Saldo header.
func (p *ICABankenParser) CanParse(sample string) bool { return icaLayout.matches(sample) }

// Parse reads an ICA Banken CSV and returns its transactions in file order.
func (p *ICABankenParser) Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error) {
	txns := []model.Transaction{}
	err := icaLayout.read(ctx, r, func(rec []string) error {
		txn, err := parseICARow(rec)
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

func parseICARow(rec []string) (model.Transaction, error) {
	date, err := dateField(rec, icaColDate, "Datum", normalize.ISODate)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, signIncome, err := amountField(rec, icaColAmount, "Belopp")
	if err != nil {
		return model.Transaction{}, err
	}

	typ := field(rec, icaColType)
	var balance decimal.NullDecimal
	if !strings.EqualFold(typ, icaTypeReserved) {
		balance, err = balanceField(rec, icaColBalance, "Saldo")
		if err != nil {
			return model.Transaction{}, err
		}
	}

	return model.Transaction{
		Date:         date,
		Description:  field(rec, icaColText),
		Amount:       amount,
		IsIncome:     icaTypes.isIncome(typ, signIncome),
		BalanceAfter: balance,
		Type:         typ,
	}, nil
}
