// Package importer turns bank statement exports into canonical transactions. Each
// supported bank has a Parser; an Importer picks one by declared bank name or by
// detecting the file's header.
package importer

import (
	"context"
	"io"
	"strings"

	"github.com/privatekonomi/statements/internal/banks"
	"github.com/privatekonomi/statements/internal/model"
)

// Parser converts one bank's statement export into Transactions.
type Parser interface {
	// Bank returns the registry name of the bank, e.g. "ICA Banken".
	Bank() string
	// CanParse reports whether sample, the start of a file, looks like this bank's
	// export. It never fails; garbage yields false.
	CanParse(sample string) bool
	// Parse reads a whole statement. Rows keep file order. Any bad row fails the file.
	Parse(ctx context.Context, r io.Reader) ([]model.Transaction, error)
}

var (
	_ Parser = (*ICABankenParser)(nil)
	_ Parser = (*SwedbankParser)(nil)
	_ Parser = (*SEBParser)(nil)
	_ Parser = (*NordeaParser)(nil)
	_ Parser = (*HandelsbankenParser)(nil)
	_ Parser = (*AvanzaParser)(nil)
)

// Registry holds parsers in registration order, which is also detection order.
type Registry struct {
	parsers map[string]Parser
	order   []Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate bank.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Bank())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser bank: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, p)
}

// Get returns the parser for bank, or nil.
func (r *Registry) Get(bank string) Parser {
	return r.parsers[strings.ToLower(bank)]
}

// Parsers returns the registered parsers in detection order.
func (r *Registry) Parsers() []Parser {
	out := make([]Parser, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns a registry with one parser per supported bank, in the bank
// table's order. Panics if the two disagree.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ICABankenParser{})
	r.Register(&SwedbankParser{})
	r.Register(&SEBParser{})
	r.Register(&NordeaParser{})
	r.Register(&HandelsbankenParser{})
	r.Register(&AvanzaParser{})

	supported := banks.Supported()
	if len(supported) != len(r.order) {
		panic("parser registry does not cover the supported banks")
	}
	for i, d := range supported {
		if !strings.EqualFold(r.order[i].Bank(), d.Name) {
			panic("no parser registered for bank: " + d.Name)
		}
	}
	return r
}
