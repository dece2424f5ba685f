package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privatekonomi/statements/internal/banks"
)

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&SEBParser{})
	p := r.Get("SEB")
	require.NotNil(t, p)
	assert.Equal(t, "SEB", p.Bank())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ICABankenParser{})
	assert.NotNil(t, r.Get("ica banken"))
	assert.NotNil(t, r.Get("ICA BANKEN"))
	assert.Nil(t, r.Get("ICA"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&NordeaParser{})
	assert.Panics(t, func() { r.Register(&fakeParser{bank: "nordea"}) })
}

func TestRegistry_ParsersIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(&SEBParser{})
	ps := r.Parsers()
	ps[0] = nil
	assert.NotNil(t, r.Parsers()[0])
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	var got []string
	for _, p := range r.Parsers() {
		got = append(got, p.Bank())
		_, ok := banks.ByName(p.Bank())
		assert.True(t, ok, "parser bank %q missing from bank table", p.Bank())
	}
	assert.Equal(t, banks.Names(), got)
	for _, name := range banks.Names() {
		assert.NotNil(t, r.Get(name), name)
	}
}
