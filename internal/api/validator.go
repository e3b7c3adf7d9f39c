package api

import (
	"fmt"
	"regexp"
	"sync"

	"MarketAdvisor/internal/advisor"
	"MarketAdvisor/internal/calculator"
	"MarketAdvisor/internal/catalog"
)

// Validator checks the shape of path and query parameters before they reach the service.
// Membership checks (known symbol, supported marker) stay in the service.
type Validator struct {
	symbolRegex *regexp.Regexp
	markerRegex *regexp.Regexp
	dateRegex   *regexp.Regexp
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			symbolRegex: regexp.MustCompile(`^[A-Za-z0-9.\-]{1,12}$`),
			markerRegex: regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`),
			dateRegex:   regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		}
	})
	return validatorInstance
}

// ValidateSymbol checks the shape of a symbol. The value is matched as given:
// no trimming, no case folding. A malformed symbol can never be tradable so it
// reports ErrUnknownSymbol.
func (v *Validator) ValidateSymbol(symbol string) (string, error) {
	if !v.symbolRegex.MatchString(symbol) {
		return "", fmt.Errorf("%w: %q", catalog.ErrUnknownSymbol, symbol)
	}
	return symbol, nil
}

// ValidateMarker checks the shape of a marker id.
func (v *Validator) ValidateMarker(markerID string) (string, error) {
	if !v.markerRegex.MatchString(markerID) {
		return "", fmt.Errorf("%w: %q", calculator.ErrUnsupportedMarker, markerID)
	}
	return markerID, nil
}

// ValidateTicksQuery checks the optional date's shape; the window is passed through
// because unknown windows fall back to a day.
func (v *Validator) ValidateTicksQuery(window, date string) (string, string, error) {
	if date != "" && !v.dateRegex.MatchString(date) {
		return "", "", fmt.Errorf("%w: %q", advisor.ErrInvalidDate, date)
	}
	return window, date, nil
}
