package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/privatekonomi/statements/internal/model"
)

// DefaultSampleSize is how many leading bytes detection looks at.
const DefaultSampleSize = 4096

// Importer selects a parser for a statement and runs it. It holds no mutable state and
// is safe for concurrent use.
type Importer struct {
	registry   *Registry
	logger     *slog.Logger
	sampleSize int
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used for detection and parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) {
		if logger != nil {
			im.logger = logger
		}
	}
}

// WithSampleSize bounds the prefix passed to CanParse. Non-positive values are ignored.
func WithSampleSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.sampleSize = n
		}
	}
}

// New creates an Importer over reg.
func New(reg *Registry, opts ...Option) *Importer {
	im := &Importer{
		registry:   reg,
		logger:     slog.New(slog.DiscardHandler),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import parses one statement. With a declared bank the matching parser is used
// directly and detection is skipped; otherwise the first parser whose CanParse accepts
// the file's prefix wins. The result is the whole file or an error, never a partial batch.
func (im *Importer) Import(ctx context.Context, r io.Reader, declaredBank string) ([]model.Transaction, error) {
	declaredBank = strings.TrimSpace(declaredBank)
	if declaredBank != "" {
		p := im.registry.Get(declaredBank)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedBank, declaredBank)
		}
		return im.parse(ctx, p, r, false)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	p, err := im.Detect(data)
	if err != nil {
		return nil, err
	}
	return im.parse(ctx, p, bytes.NewReader(data), true)
}

// Detect returns the first registered parser that accepts the start of data.
func (im *Importer) Detect(data []byte) (Parser, error) {
	sample := data
	if len(sample) > im.sampleSize {
		sample = sample[:im.sampleSize]
	}
	s := string(sample)

	for _, p := range im.registry.Parsers() {
		ok := im.canParse(p, s)
		im.logger.Debug("format detection", "bank", p.Bank(), "match", ok)
		if ok {
			return p, nil
		}
	}
	return nil, ErrUnrecognizedFormat
}

// canParse shields detection from a misbehaving parser; a panic counts as no match.
func (im *Importer) canParse(p Parser, sample string) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			im.logger.Warn("format detection panicked", "bank", p.Bank(), "panic", rec)
			ok = false
		}
	}()
	return p.CanParse(sample)
}

func (im *Importer) parse(ctx context.Context, p Parser, r io.Reader, detected bool) ([]model.Transaction, error) {
	txns, err := p.Parse(ctx, r)
	if err != nil {
		im.logger.Debug("statement rejected", "bank", p.Bank(), "detected", detected, "error", err)
		return nil, err
	}
	im.logger.Info("statement parsed", "bank", p.Bank(), "detected", detected, "transactions", len(txns))
	return txns, nil
}

var defaultImporter = sync.OnceValue(func() *Importer {
	return New(DefaultRegistry())
})

// SelectAndParse imports a statement with the built-in parsers. declaredBank may be
// empty to detect the bank from the file.
func SelectAndParse(ctx context.Context, r io.Reader, declaredBank string) ([]model.Transaction, error) {
	return defaultImporter().Import(ctx, r, declaredBank)
}
