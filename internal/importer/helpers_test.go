package importer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/privatekonomi/statements/internal/model"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func parseFixture(t *testing.T, p Parser, name string) []model.Transaction {
	t.Helper()
	txns, err := p.Parse(context.Background(), bytes.NewReader(readFixture(t, name)))
	require.NoError(t, err)
	return txns
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// fakeParser is a Parser with scripted detection and output.
type fakeParser struct {
	bank   string
	accept bool
	panics bool
	txns   []model.Transaction
}

func (f *fakeParser) Bank() string { return f.bank }

func (f *fakeParser) CanParse(string) bool {
	if f.panics {
		panic("detector bug")
	}
	return f.accept
}

func (f *fakeParser) Parse(_ context.Context, r io.Reader) ([]model.Transaction, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return f.txns, nil
}
