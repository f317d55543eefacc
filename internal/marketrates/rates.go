// Package marketrates holds the external reference table of government
// market prices, keyed by state, category and product name. The table is
// read-only: it is loaded once at startup and handed to consumers as an
// explicit dependency.
package marketrates

import (
	"encoding/json"
	"fmt"
	"os"
)

// Table maps state -> category -> product name -> unit rate.
type Table struct {
	states map[string]stateRates
}

type stateRates struct {
	Products map[string]map[string]float64 `json:"products"`
}

// Load reads the rate table from a JSON document on disk.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("marketrates: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a rate table from raw JSON.
func Parse(raw []byte) (*Table, error) {
	states := map[string]stateRates{}
	if err := json.Unmarshal(raw, &states); err != nil {
		return nil, fmt.Errorf("marketrates: decode: %w", err)
	}
	return &Table{states: states}, nil
}

// Empty returns a table with no entries. Every lookup misses.
func Empty() *Table {
	return &Table{states: map[string]stateRates{}}
}

// Lookup returns the unit rate for (state, category, product). Absence of a
// key is a normal condition reported through ok, not an error.
func (t *Table) Lookup(state, category, product string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	s, ok := t.states[state]
	if !ok {
		return 0, false
	}
	cat, ok := s.Products[category]
	if !ok {
		return 0, false
	}
	rate, ok := cat[product]
	return rate, ok
}
