// Package xdecimal provides the fixed-precision, truncating decimal
// arithmetic the matching engine uses for every price, quantity, fee, and
// trade value. No float64 is permitted on these paths: construction is
// string-only, and every operation that could produce more digits than the
// configured scale rounds toward zero.
package xdecimal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of digits kept after the decimal point. spec.md calls
// for "18 significant digits, truncating"; shopspring/decimal tracks an
// arbitrary-precision coefficient with a decimal exponent rather than a
// significant-digit count, so we pin the exponent instead — 18 fractional
// digits, rounded down on every op that could overflow it. See DESIGN.md
// OQ-1.
const Scale = 18

// ErrInvalidDecimal is returned when a string cannot be parsed as an exact
// decimal.
var ErrInvalidDecimal = errors.New("xdecimal: invalid decimal string")

// D is an immutable fixed-precision decimal value.
type D struct {
	v decimal.Decimal
}

// Zero is the additive identity.
var Zero = D{v: decimal.Zero}

// Parse converts a decimal string to D; no float64 is ever consulted. The
// value is exact up to Scale fractional digits; any digits beyond Scale are
// truncated, not rejected. Returns ErrInvalidDecimal if s is not a valid
// decimal literal.
func Parse(s string) (D, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return D{}, fmt.Errorf("%w: %q: %v", ErrInvalidDecimal, s, err)
	}
	return D{v: v.Truncate(Scale)}, nil
}

// MustParse is Parse, panicking on error. Reserved for constants known at
// compile time (fee rates, test fixtures) — never for request input.
func MustParse(s string) D {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d D) Add(o D) D { return D{v: d.v.Add(o.v).Truncate(Scale)} }
func (d D) Sub(o D) D { return D{v: d.v.Sub(o.v).Truncate(Scale)} }
func (d D) Mul(o D) D { return D{v: d.v.Mul(o.v).Truncate(Scale)} }
func (d D) Neg() D    { return D{v: d.v.Neg()} }

// Div truncates (rounds toward zero) on division, per spec.md §9.
func (d D) Div(o D) D {
	q, _ := d.v.QuoRem(o.v, Scale)
	return D{v: q}
}

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than o.
func (d D) Cmp(o D) int { return d.v.Cmp(o.v) }

func (d D) LessThan(o D) bool     { return d.Cmp(o) < 0 }
func (d D) LessOrEqual(o D) bool  { return d.Cmp(o) <= 0 }
func (d D) GreaterThan(o D) bool  { return d.Cmp(o) > 0 }
func (d D) GreaterEqual(o D) bool { return d.Cmp(o) >= 0 }
func (d D) Equal(o D) bool        { return d.Cmp(o) == 0 }

func (d D) IsZero() bool     { return d.v.IsZero() }
func (d D) IsPositive() bool { return d.v.IsPositive() }
func (d D) IsNegative() bool { return d.v.IsNegative() }

// Min returns the lesser of d and o.
func Min(d, o D) D {
	if d.LessOrEqual(o) {
		return d
	}
	return o
}

// String renders d with no scientific notation and no trailing float
// artifacts, suitable for the wire (spec.md §6: "serialized back as
// decimal strings").
func (d D) String() string { return d.v.String() }

// MarshalJSON emits the decimal as a JSON string, never a bare number —
// bare JSON numbers round-trip through float64 in most consumers.
func (d D) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.v.String() + `"`), nil
}

// UnmarshalJSON accepts only a JSON string; a bare numeric literal is
// rejected to keep floats off the wire entirely.
func (d *D) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%w: expected a JSON string, got %s", ErrInvalidDecimal, s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
