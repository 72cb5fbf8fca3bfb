// Package money converts between the int64 cent amounts stored by the service
// and the decimal representations used on the wire and in the terminal UI.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// Amount is an amount in cents that encodes as a JSON decimal number.
type Amount int64

// Cents returns the amount as a plain int64.
func (a Amount) Cents() int64 { return int64(a) }

// Decimal returns the amount in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(a)).Div(hundred)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts both JSON numbers (12.5) and numeric strings ("12.50").
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*a = 0
		return nil
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, raw)
	}

	cents, err := ToCents(d)
	if err != nil {
		return err
	}

	*a = Amount(cents)

	return nil
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// ToCents rounds a currency-unit decimal half-up to whole cents. Values that
// do not fit in int64 cents are rejected.
func ToCents(d decimal.Decimal) (int64, error) {
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, d.String())
	}

	return cents.IntPart(), nil
}

// Parse reads a decimal amount written with either a dot or a comma as
// decimal separator ("12.50", "12,5"). Thousands separators are not accepted.
func Parse(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if clean == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return ToCents(d)
}

// ParseEuropean reads amounts formatted as "1.234,56" where the dot groups
// thousands and the comma separates decimals.
func ParseEuropean(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return ToCents(d)
}

// Format renders cents as "12.50 €".
func Format(cents int64) string {
	return Amount(cents).Decimal().StringFixed(2) + " €"
}
