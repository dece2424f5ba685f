// Package banks holds the fixed table of banks whose statement exports can be imported.
package banks

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Definition identifies a supported bank and its brand color.
type Definition struct {
	Name  string `validate:"required"`
	Color string `validate:"required,len=7,startswith=#,hexcolor"`
}

// Bank names as they appear in the registry and in user-supplied hints.
const (
	ICABanken     = "ICA Banken"
	Swedbank      = "Swedbank"
	SEB           = "SEB"
	Nordea        = "Nordea"
	Handelsbanken = "Handelsbanken"
	Avanza        = "Avanza"
)

var supported = []Definition{
	{Name: ICABanken, Color: "#E3000B"},
	{Name: Swedbank, Color: "#FF5F00"},
	{Name: SEB, Color: "#60CD18"},
	{Name: Nordea, Color: "#0000A0"},
	{Name: Handelsbanken, Color: "#005EA5"},
	{Name: Avanza, Color: "#00C281"},
}

var byName map[string]Definition

func init() {
	idx, err := index(supported)
	if err != nil {
		panic(err)
	}
	byName = idx
}

// index validates defs and keys them by lower-cased name.
func index(defs []Definition) (map[string]Definition, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	idx := make(map[string]Definition, len(defs))
	for i, d := range defs {
		if err := v.Struct(d); err != nil {
			return nil, fmt.Errorf("bank %d (%q): %w", i, d.Name, err)
		}
		key := strings.ToLower(d.Name)
		if _, ok := idx[key]; ok {
			return nil, fmt.Errorf("duplicate bank name: %q", d.Name)
		}
		idx[key] = d
	}
	return idx, nil
}

// Supported returns every supported bank in registry order.
func Supported() []Definition {
	out := make([]Definition, len(supported))
	copy(out, supported)
	return out
}

// Names returns the bank names in registry order.
func Names() []string {
	names := make([]string, len(supported))
	for i, d := range supported {
		names[i] = d.Name
	}
	return names
}

// ByName looks a bank up by its full name, ignoring case.
func ByName(name string) (Definition, bool) {
	d, ok := byName[strings.ToLower(name)]
	return d, ok
}

// Color returns the brand color of the named bank. Empty and unknown names report false.
func Color(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	d, ok := ByName(name)
	if !ok {
		return "", false
	}
	return d.Color, true
}
