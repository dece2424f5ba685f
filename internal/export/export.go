// Package export writes parsed transactions as a terminal table, CSV, JSON, YAML or an
// Excel workbook.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/privatekonomi/statements/internal/model"
)

// Format names an output encoding.
type Format string

const (
	Table Format = "table"
	CSV   Format = "csv"
	JSON  Format = "json"
	YAML  Format = "yaml"
	XLSX  Format = "xlsx"
)

var formats = []Format{Table, CSV, JSON, YAML, XLSX}

// Formats lists the supported output formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unknown output format %q", s)
	}
	return f, nil
}

// Record is the flat, serializable form of a transaction. Amount is signed: negative for
// expenses.
type Record struct {
	Date        string `csv:"date" json:"date" yaml:"date"`
	Description string `csv:"description" json:"description" yaml:"description"`
	Amount      string `csv:"amount" json:"amount" yaml:"amount"`
	Direction   string `csv:"direction" json:"direction" yaml:"direction"`
	Balance     string `csv:"balance" json:"balance,omitempty" yaml:"balance,omitempty"`
	Type        string `csv:"type" json:"type,omitempty" yaml:"type,omitempty"`
}

const dateLayout = "2006-01-02"

// Records flattens txns, keeping their order.
func Records(txns []model.Transaction) []Record {
	out := make([]Record, 0, len(txns))
	for _, t := range txns {
		r := Record{
			Date:        t.Date.Format(dateLayout),
			Description: t.Description,
			Amount:      t.SignedAmount().StringFixed(2),
			Direction:   direction(t),
			Type:        t.Type,
		}
		if t.BalanceAfter.Valid {
			r.Balance = t.BalanceAfter.Decimal.StringFixed(2)
		}
		out = append(out, r)
	}
	return out
}

func direction(t model.Transaction) string {
	if t.IsIncome {
		return "income"
	}
	return "expense"
}

// Write encodes txns to w. currency is the ISO 4217 code used by the table format.
func Write(w io.Writer, format Format, txns []model.Transaction, currency string) error {
	switch format {
	case Table:
		return writeTable(w, txns, currency)
	case CSV:
		if err := gocsv.Marshal(Records(txns), w); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
		return nil
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Records(txns)); err != nil {
			return fmt.Errorf("writing json: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Records(txns)); err != nil {
			return fmt.Errorf("writing yaml: %w", err)
		}
		return enc.Close()
	case XLSX:
		return writeXLSX(w, txns)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
