package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeaderOnlyIsEmptySuccess(t *testing.T) {
	for _, p := range DefaultRegistry().Parsers() {
		header := headerLine(p)
		txns, err := p.Parse(context.Background(), strings.NewReader(header))
		require.NoError(t, err, p.Bank())
		assert.NotNil(t, txns, p.Bank())
		assert.Empty(t, txns, p.Bank())
	}
}

func TestParse_EmptyFileIsStructureError(t *testing.T) {
	for _, input := range []string{"", "\n\n", "\uFEFF", " ; ; \n"} {
		txns, err := (&SEBParser{}).Parse(context.Background(), strings.NewReader(input))
		require.Error(t, err, "input %q", input)
		assert.Nil(t, txns)
		assert.ErrorIs(t, err, ErrMalformedStructure)

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 0, pe.Row)
		assert.Equal(t, "SEB", pe.Bank)
	}
}

func TestParse_WrongHeader(t *testing.T) {
	csv := "Datum;Text;Belopp\n2025-12-24;Lön;1,00 kr\n"
	txns, err := (&ICABankenParser{}).Parse(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, txns)
	assert.ErrorIs(t, err, ErrMalformedStructure)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 0, pe.Row)
	assert.Equal(t, 1, pe.Line)
	assert.Contains(t, err.Error(), "unexpected header")
}

func TestParse_TooFewFields(t *testing.T) {
	csv := icaHeader +
		"2025-12-24;Lön;Insättning;8 800,00 kr;587,48 kr\n" +
		"2025-12-23;ICA Nära;Reserverat\n"
	txns, err := (&ICABankenParser{}).Parse(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, txns)
	assert.ErrorIs(t, err, ErrMalformedStructure)
	assert.NotErrorIs(t, err, ErrMalformedValue)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Contains(t, err.Error(), "expected at least 4 fields, got 3")
}

func TestParse_SkipsBlankRows(t *testing.T) {
	csv := icaHeader +
		"\n" +
		"2025-12-24;Lön;Insättning;8 800,00 kr;587,48 kr\n" +
		";;;;\n" +
		"   \n" +
		"2025-12-23;ICA Nära;Reserverat;-256,70 kr;\n" +
		"2025-12-22;Pressbyrån;Kortköp;oj;-6 762,52 kr\n"
	_, err := (&ICABankenParser{}).Parse(context.Background(), strings.NewReader(csv))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Row, "blank rows are not counted")
	assert.Equal(t, 7, pe.Line)
}

func TestParse_QuotedFields(t *testing.T) {
	csv := icaHeader + `2025-12-24;"Swish; Anna ""Annie"" Svensson";Insättning;"1 500,00 kr";"2 087,48 kr"` + "\n"
	txns, err := (&ICABankenParser{}).Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, `Swish; Anna "Annie" Svensson`, txns[0].Description)
	assert.Equal(t, "1500.00", txns[0].Amount.StringFixed(2))
}

func TestParse_TrimsDescription(t *testing.T) {
	csv := icaHeader + "2025-12-24;   Lön December  ;Insättning;1,00 kr;1,00 kr\n"
	txns, err := (&ICABankenParser{}).Parse(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "Lön December", txns[0].Description)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	txns, err := (&ICABankenParser{}).Parse(ctx, strings.NewReader(string(readFixture(t, "icabanken.csv"))))
	require.Error(t, err)
	assert.Nil(t, txns)
	assert.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParse_ReaderError(t *testing.T) {
	_, err := (&ICABankenParser{}).Parse(context.Background(), failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.NotErrorIs(t, err, ErrMalformedStructure)
}

func TestLayoutMatches(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   bool
	}{
		{"exact", "Datum;Text;Typ;Belopp;Saldo\n", true},
		{"no newline", "Datum;Text;Typ;Belopp;Saldo", true},
		{"lower case", "datum;text;typ;belopp;saldo\n", true},
		{"quoted cells", `"Datum";"Text";"Typ";"Belopp";"Saldo"` + "\n", true},
		{"padded cells", " Datum ; Text ;Typ;Belopp;Saldo \n", true},
		{"trailing delimiter", "Datum;Text;Typ;Belopp;Saldo;\n", true},
		{"bom", "\uFEFFDatum;Text;Typ;Belopp;Saldo\r\n", true},
		{"leading blank lines", "\n\r\nDatum;Text;Typ;Belopp;Saldo\n", true},
		{"comma delimited", "Datum,Text,Typ,Belopp,Saldo\n", false},
		{"missing column", "Datum;Text;Belopp;Saldo\n", false},
		{"extra column", "Datum;Text;Typ;Belopp;Saldo;Valuta\n", false},
		{"reordered", "Text;Datum;Typ;Belopp;Saldo\n", false},
		{"empty", "", false},
		{"garbage", "\x00\x01\x02\xff", false},
		{"unterminated quote", `"Datum;Text;Typ`, false},
		{"header not first", "2025-12-24;Lön;Insättning;1,00 kr;1,00 kr\nDatum;Text;Typ;Belopp;Saldo\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, icaLayout.matches(tt.sample))
		})
	}
}

func TestLayoutMatches_DecomposedUnicode(t *testing.T) {
	// "ä" written as "a" + combining diaeresis.
	sample := "Datum;Konto;Typ av transaktion;Va\u0308rdepapper/beskrivning;Antal;Kurs;Belopp;Courtage;Valuta;ISIN\n"
	assert.True(t, avanzaLayout.matches(sample))
}

func TestLayoutMatches_Preamble(t *testing.T) {
	sample := "* Transaktioner Period 2025-12-01 – 2025-12-31\n" +
		"* Konto 8327-9 123456789\n" +
		strings.Join(swedbankLayout.header, ",") + "\n"
	assert.True(t, swedbankLayout.matches(sample))
	assert.False(t, icaLayout.matches(sample))
}

func TestLayoutMatches_GiveUpAfterMaxLines(t *testing.T) {
	sample := strings.Repeat("* metadata\n", maxDetectLines) + strings.Join(swedbankLayout.header, ",") + "\n"
	assert.False(t, swedbankLayout.matches(sample))
}

func headerLine(p Parser) string {
	for _, l := range []layout{icaLayout, swedbankLayout, sebLayout, nordeaLayout, handelsbankenLayout, avanzaLayout} {
		if l.bank == p.Bank() {
			return strings.Join(l.header, string(l.delimiter)) + "\n"
		}
	}
	panic("no layout for " + p.Bank())
}
