package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/privatekonomi/statements/internal/model"
)

// SheetName is the worksheet transactions are written to.
const SheetName = "Transactions"

var xlsxHeader = []any{"Date", "Description", "Amount", "Balance", "Type"}

func writeXLSX(w io.Writer, txns []model.Transaction) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	// #,##0.00
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		row := i + 2
		if err := writeXLSXRow(f, row, t); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}

	if last := len(txns) + 1; last > 1 {
		if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("A%d", last), dateStyle); err != nil {
			return fmt.Errorf("styling dates: %w", err)
		}
		if err := f.SetCellStyle(SheetName, "C2", fmt.Sprintf("D%d", last), amountStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

// writeXLSXRow stores amounts as untyped numeric cells holding the exact decimal text,
// so no binary float is involved.
func writeXLSXRow(f *excelize.File, row int, t model.Transaction) error {
	cell := func(col string) string { return fmt.Sprintf("%s%d", col, row) }

	if err := f.SetCellValue(SheetName, cell("A"), t.Date); err != nil {
		return err
	}
	if err := f.SetCellStr(SheetName, cell("B"), t.Description); err != nil {
		return err
	}
	if err := f.SetCellDefault(SheetName, cell("C"), t.SignedAmount().StringFixed(2)); err != nil {
		return err
	}
	if t.BalanceAfter.Valid {
		if err := f.SetCellDefault(SheetName, cell("D"), t.BalanceAfter.Decimal.StringFixed(2)); err != nil {
			return err
		}
	}
	return f.SetCellStr(SheetName, cell("E"), t.Type)
}
