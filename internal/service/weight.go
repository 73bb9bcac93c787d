package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Caller-input errors. They are reported back in the reply and never logged.
var (
	ErrInvalidFormat = errors.New("invalid weight format")
	ErrOutOfRange    = errors.New("weight out of range")
)

// Accepted weight range in kilograms, bounds included.
var (
	minWeightKg = decimal.NewFromInt(20)
	maxWeightKg = decimal.NewFromInt(300)
)

// ParseWeight parses user-submitted weight text. A comma is accepted as the
// decimal separator ("75,5" and "75.5" are the same value).
func ParseWeight(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}
	if value.LessThan(minWeightKg) || value.GreaterThan(maxWeightKg) {
		return 0, fmt.Errorf("%w: %s kg", ErrOutOfRange, value)
	}
	return value.InexactFloat64(), nil
}
