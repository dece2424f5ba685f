package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/privatekonomi/statements/internal/normalize"
)

const (
	bom = "\uFEFF"

	// maxDetectLines bounds how far detection looks for a header past preamble lines.
	maxDetectLines = 10
)

// layout describes the delimited text export of one bank.
type layout struct {
	bank      string
	delimiter rune
	header    []string
	minFields int

	// preamble reports whether a line before the header is export metadata.
	preamble func(line string) bool
}

// matches reports whether sample begins with the layout's header row.
func (l layout) matches(sample string) bool {
	sample = strings.TrimPrefix(sample, bom)
	lines := strings.SplitN(sample, "\n", maxDetectLines+1)
	for i, line := range lines {
		if i == maxDetectLines {
			break
		}
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" || l.isPreamble(line) {
			continue
		}
		return l.isHeader(line)
	}
	return false
}

func (l layout) isPreamble(line string) bool {
	return l.preamble != nil && l.preamble(line)
}

func (l layout) isHeader(line string) bool {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = l.delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	cells, err := cr.Read()
	if err != nil {
		return false
	}
	return l.headerCells(cells)
}

// headerCells compares a parsed row with the header, ignoring case, padding, Unicode
// normalization form and trailing empty cells.
func (l layout) headerCells(cells []string) bool {
	for len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells) != len(l.header) {
		return false
	}
	for i, cell := range cells {
		cell = norm.NFC.String(strings.TrimSpace(cell))
		if !strings.EqualFold(cell, norm.NFC.String(l.header[i])) {
			return false
		}
	}
	return true
}

// read walks the data rows of a statement, calling fn for each non-blank row after the
// header. The first error stops the walk.
func (l layout) read(ctx context.Context, r io.Reader, fn func(rec []string) error) error {
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.Comma = l.delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headerSeen := false
	row := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if !errors.As(err, &csvErr) {
				return fmt.Errorf("reading %s statement: %w", l.bank, err)
			}
			pe := structureError("%v", csvErr.Err)
			pe.Bank, pe.Line = l.bank, csvErr.Line
			return pe
		}
		if blank(rec) {
			continue
		}
		if !headerSeen {
			if l.isPreamble(strings.Join(rec, string(l.delimiter))) {
				continue
			}
			if !l.headerCells(rec) {
				line, _ := cr.FieldPos(0)
				pe := structureError("unexpected header %q", strings.Join(rec, string(l.delimiter)))
				pe.Bank, pe.Line = l.bank, line
				return pe
			}
			headerSeen = true
			continue
		}

		row++
		line, _ := cr.FieldPos(0)
		if len(rec) < l.minFields {
			pe := structureError("expected at least %d fields, got %d", l.minFields, len(rec))
			pe.Bank, pe.Row, pe.Line = l.bank, row, line
			return pe
		}
		if err := fn(rec); err != nil {
			var pe *ParseError
			if !errors.As(err, &pe) {
				pe = &ParseError{Err: err}
			}
			pe.Bank, pe.Row, pe.Line = l.bank, row, line
			return pe
		}
	}

	if !headerSeen {
		pe := structureError("no header row")
		pe.Bank = l.bank
		return pe
	}
	return nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// field returns the trimmed cell at i, or "" for optional trailing cells that are absent.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func dateField(rec []string, i int, column string, dl normalize.DateLayout) (time.Time, error) {
	t, err := normalize.ParseDate(field(rec, i), dl)
	if err != nil {
		return time.Time{}, columnError(column, err)
	}
	return t, nil
}

func amountField(rec []string, i int, column string) (decimal.Decimal, bool, error) {
	d, income, err := normalize.ParseAmount(field(rec, i))
	if err != nil {
		return decimal.Zero, false, columnError(column, err)
	}
	return d, income, nil
}

func balanceField(rec []string, i int, column string) (decimal.NullDecimal, error) {
	d, err := normalize.ParseOptionalAmount(field(rec, i))
	if err != nil {
		return decimal.NullDecimal{}, columnError(column, err)
	}
	return d, nil
}

// typeRules classifies rows of banks that label deposits and withdrawals in a text
// column. Types in neither list fall back to the amount's sign.
type typeRules struct {
	income  []string
	expense []string
}

func (tr typeRules) isIncome(typ string, signIncome bool) bool {
	for _, t := range tr.income {
		if strings.EqualFold(typ, t) {
			return true
		}
	}
	for _, t := range tr.expense {
		if strings.EqualFold(typ, t) {
			return false
		}
	}
	return signIncome
}
