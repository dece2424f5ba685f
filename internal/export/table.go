package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/privatekonomi/statements/internal/model"
)

func writeTable(w io.Writer, txns []model.Transaction, currency string) error {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Errorf("unknown currency %q", currency)
	}

	s := Summarize(txns)
	amounts := make([]string, 0, len(txns)+3)
	balances := make([]string, 0, len(txns))
	for _, t := range txns {
		amounts = append(amounts, Display(t.SignedAmount(), cur))
		balance := ""
		if t.BalanceAfter.Valid {
			balance = Display(t.BalanceAfter.Decimal, cur)
		}
		balances = append(balances, balance)
	}
	amounts = append(amounts, Display(s.Income, cur), Display(s.Expense.Neg(), cur), Display(s.Net(), cur))
	padLeft(amounts)
	padLeft(balances)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tAMOUNT\tBALANCE\tTYPE")
	for i, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format(dateLayout), t.Description, amounts[i], balances[i], t.Type)
	}

	n := len(txns)
	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintf(tw, "\t%d transactions\t\t\t\n", s.Count)
	fmt.Fprintf(tw, "\tIncome\t%s\t\t\n", amounts[n])
	fmt.Fprintf(tw, "\tExpense\t%s\t\t\n", amounts[n+1])
	fmt.Fprintf(tw, "\tNet\t%s\t\t\n", amounts[n+2])
	return tw.Flush()
}

// padLeft right-aligns the money column in place.
func padLeft(col []string) {
	width := 0
	for _, v := range col {
		width = max(width, utf8.RuneCountInString(v))
	}
	for i, v := range col {
		col[i] = strings.Repeat(" ", width-utf8.RuneCountInString(v)) + v
	}
}

// Display formats d in cur's conventions, e.g. "8 800,00 kr" for SEK. Values are rounded
// half away from zero to the currency's minor unit.
func Display(d decimal.Decimal, cur *money.Currency) string {
	return money.New(MinorUnits(d, cur), cur.Code).Display()
}

// MinorUnits converts d to cur's smallest unit (öre for SEK).
func MinorUnits(d decimal.Decimal, cur *money.Currency) int64 {
	return d.Shift(int32(cur.Fraction)).Round(0).IntPart()
}
