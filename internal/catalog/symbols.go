package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownSymbol is returned for symbols outside the tradable set.
var ErrUnknownSymbol = errors.New("unknown symbol")

// DefaultSymbols is used when the configuration names none.
var DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA"}

// Symbols is an immutable set of tradable symbols. Matching is case-sensitive.
type Symbols struct {
	list []string
	set  map[string]struct{}
}

// NewSymbols builds the set, dropping blanks and repeats but keeping order.
func NewSymbols(list []string) Symbols {
	s := Symbols{set: make(map[string]struct{}, len(list))}
	for _, sym := range list {
		if sym == "" {
			continue
		}
		if _, ok := s.set[sym]; ok {
			continue
		}
		s.set[sym] = struct{}{}
		s.list = append(s.list, sym)
	}
	return s
}

// List returns the symbols in configured order.
func (s Symbols) List() []string {
	return slices.Clone(s.list)
}

func (s Symbols) Contains(sym string) bool {
	_, ok := s.set[sym]
	return ok
}

// Check returns ErrUnknownSymbol when sym is not tradable.
func (s Symbols) Check(sym string) error {
	if !s.Contains(sym) {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return nil
}
