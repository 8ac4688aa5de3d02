package sexp

import (
	"fmt"
	"math"
	"strings"
)

// Decimal is an exact fixed-point value used for all geometry fields.
// It stores integer nanometers (1 nm = 1e-6 mm), the resolution KiCad
// uses internally, so every coordinate a KiCad file can contain is
// represented without binary floating-point drift.
type Decimal struct {
	nm int64
}

const decimalScale = 1_000_000 // nm per mm; also 1e-6 degree steps for angles

// ParseDecimal parses a plain decimal literal such as "1.5" or "-0.25".
// Exponent notation is rejected; fractional digits beyond the nanometer
// resolution round half away from zero.
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, fmt.Errorf("empty number")
	}

	neg := false
	rest := s
	if rest[0] == '-' || rest[0] == '+' {
		neg = rest[0] == '-'
		rest = rest[1:]
	}

	intPart, fracPart, hasDot := strings.Cut(rest, ".")
	if intPart == "" && fracPart == "" {
		return Decimal{}, fmt.Errorf("invalid number %q", s)
	}

	var nm int64
	for i := 0; i < len(intPart); i++ {
		ch := intPart[i]
		if ch < '0' || ch > '9' {
			return Decimal{}, fmt.Errorf("invalid number %q", s)
		}
		nm = nm*10 + int64(ch-'0')
		if nm > math.MaxInt64/decimalScale {
			return Decimal{}, fmt.Errorf("number %q out of range", s)
		}
	}
	nm *= decimalScale

	if hasDot {
		scale := int64(decimalScale / 10)
		for i := 0; i < len(fracPart); i++ {
			ch := fracPart[i]
			if ch < '0' || ch > '9' {
				return Decimal{}, fmt.Errorf("invalid number %q", s)
			}
			if scale > 0 {
				nm += int64(ch-'0') * scale
				scale /= 10
			} else if i == 6 && ch >= '5' {
				nm++ // round half away from zero on the 7th digit
			}
		}
	}

	if neg {
		nm = -nm
	}
	return Decimal{nm: nm}, nil
}

// FromFloat builds a Decimal from a float64 in mm, rounding to the
// nearest nanometer
func FromFloat(f float64) Decimal {
	return Decimal{nm: int64(math.Round(f * decimalScale))}
}

// FromInt builds a Decimal from a whole number of mm
func FromInt(n int) Decimal {
	return Decimal{nm: int64(n) * decimalScale}
}

// Float returns the value in mm as a float64
func (d Decimal) Float() float64 { return float64(d.nm) / decimalScale }

// IsZero reports whether the value is exactly zero
func (d Decimal) IsZero() bool { return d.nm == 0 }

// Add returns d + o
func (d Decimal) Add(o Decimal) Decimal { return Decimal{nm: d.nm + o.nm} }

// Sub returns d - o
func (d Decimal) Sub(o Decimal) Decimal { return Decimal{nm: d.nm - o.nm} }

// Neg returns -d
func (d Decimal) Neg() Decimal { return Decimal{nm: -d.nm} }

// Half returns d / 2, rounding toward zero
func (d Decimal) Half() Decimal { return Decimal{nm: d.nm / 2} }

// Cmp returns -1, 0, or 1 comparing d against o
func (d Decimal) Cmp(o Decimal) int {
	switch {
	case d.nm < o.nm:
		return -1
	case d.nm > o.nm:
		return 1
	}
	return 0
}

// String formats the value in its minimal decimal form: no exponent, no
// trailing zeros, and negative zero normalized to "0"
func (d Decimal) String() string {
	nm := d.nm
	sign := ""
	if nm < 0 {
		sign = "-"
		nm = -nm
	}

	whole := nm / decimalScale
	frac := nm % decimalScale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}

	fracStr := fmt.Sprintf("%06d", frac)
	fracStr = strings.TrimRight(fracStr, "0")
	return fmt.Sprintf("%s%d.%s", sign, whole, fracStr)
}
