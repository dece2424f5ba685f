package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/privatekonomi/statements/internal/normalize"
)

var (
	// ErrUnrecognizedFormat is returned when no parser accepts an unlabelled file.
	ErrUnrecognizedFormat = errors.New("unrecognized statement format")
	// ErrUnsupportedBank is returned when a declared bank has no registered parser.
	ErrUnsupportedBank = errors.New("unsupported bank")
	// ErrMalformedValue marks a row whose amount or date could not be normalized.
	ErrMalformedValue = normalize.ErrMalformedValue
	// ErrMalformedStructure marks a file without a header or a row with too few fields.
	ErrMalformedStructure = errors.New("malformed statement structure")
)

// ParseError locates a failure inside a statement file. Any ParseError aborts the
// whole file.
type ParseError struct {
	Bank   string
	Row    int // 1-based data row, header excluded; 0 for file-level problems
	Line   int // line in the file, 0 when unknown
	Column string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Bank)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
		if e.Line > 0 {
			fmt.Fprintf(&b, " (line %d)", e.Line)
		}
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %s", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// columnError attributes a normalization failure to a named column.
func columnError(column string, err error) error {
	pe := &ParseError{Column: column, Err: err}
	var ve *normalize.ValueError
	if errors.As(err, &ve) {
		pe.Raw = ve.Raw
	}
	return pe
}

func structureError(format string, args ...any) *ParseError {
	return &ParseError{Err: fmt.Errorf("%w: %s", ErrMalformedStructure, fmt.Sprintf(format, args...))}
}
