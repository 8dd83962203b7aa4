// Package amount converts user-entered token amounts to and from chain base units.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotPositive is returned for zero or negative amounts.
	ErrNotPositive = errors.New("amount must be positive")
	// ErrTooPrecise is returned when an amount is smaller than one base unit.
	ErrTooPrecise = errors.New("amount is below the smallest unit")
)

// Parse parses a decimal amount entered by a user and requires it to be positive.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse amount: empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount: %w", err)
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// ToBaseUnits scales d by 10^decimals. Digits below one base unit are truncated.
func ToBaseUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if !d.IsPositive() {
		return nil, ErrNotPositive
	}
	units := d.Shift(decimals).Truncate(0)
	if units.IsZero() {
		return nil, ErrTooPrecise
	}
	return units.BigInt(), nil
}

// FromBaseUnits converts base units back to a decimal amount.
func FromBaseUnits(units *big.Int, decimals int32) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -decimals)
}

// ParseBaseUnits parses s and converts it in one step.
func ParseBaseUnits(s string, decimals int32) (*big.Int, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return ToBaseUnits(d, decimals)
}

// Format renders a decimal amount without trailing zeros.
func Format(d decimal.Decimal) string {
	return d.String()
}
