package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData  = errors.New("insufficient data")
	ErrUnsupportedMarker = errors.New("unsupported marker")
	ErrInvalidInput      = errors.New("invalid input")
)

// InsufficientDataError reports how many samples a marker needed.
type InsufficientDataError struct {
	Marker   string
	Required int
	Got      int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data for %s: need %d samples, got %d", e.Marker, e.Required, e.Got)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

func requireSamples(marker string, got, required int) error {
	if got < required {
		return &InsufficientDataError{Marker: marker, Required: required, Got: got}
	}
	return nil
}

func requirePeriod(marker string, period int) error {
	if period <= 0 {
		return fmt.Errorf("%w: %s period must be positive, got %d", ErrInvalidInput, marker, period)
	}
	return nil
}
