package banks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ica", ICABanken},
		{"swed", Swedbank},
		{"handels", Handelsbanken},
		{"Nordae", Nordea},
		{"avanz", Avanza},
	}
	for _, tt := range tests {
		got := Suggest(tt.input)
		assert.Contains(t, got, tt.want, "Suggest(%q)", tt.input)
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	assert.Empty(t, Suggest(""))
	assert.Empty(t, Suggest("   "))
	assert.Empty(t, Suggest("Deutsche Bundesbank Frankfurt"))
}
