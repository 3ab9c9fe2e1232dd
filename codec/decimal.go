package codec

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Decimal is an arbitrary-precision decimal: unscaled × 10^-scale.
// The zero Decimal is 0 with scale 0.
type Decimal struct {
	unscaled *big.Int
	scale    int32
}

// NewDecimal returns unscaled × 10^-scale. A nil unscaled is zero. The
// unscaled value is copied.
func NewDecimal(unscaled *big.Int, scale int32) Decimal {
	u := new(big.Int)
	if unscaled != nil {
		u.Set(unscaled)
	}
	return Decimal{unscaled: u, scale: scale}
}

// Unscaled returns a copy of the unscaled value.
func (d Decimal) Unscaled() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.unscaled)
}

func (d Decimal) Scale() int32 { return d.scale }

func (d Decimal) Sign() int {
	if d.unscaled == nil {
		return 0
	}
	return d.unscaled.Sign()
}

// Equal reports whether d and o have the same unscaled value and scale, so
// 1.0 and 1.00 are not Equal. Use Cmp for numeric comparison.
func (d Decimal) Equal(o Decimal) bool {
	return d.scale == o.scale && d.Unscaled().Cmp(o.Unscaled()) == 0
}

// Cmp compares d and o numerically.
func (d Decimal) Cmp(o Decimal) int {
	return d.Rat().Cmp(o.Rat())
}

// Rat returns the exact rational value of d.
func (d Decimal) Rat() *big.Rat {
	r := new(big.Rat).SetInt(d.Unscaled())
	if d.scale == 0 {
		return r
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(d.scale))), nil)
	if d.scale > 0 {
		return r.Quo(r, new(big.Rat).SetInt(pow))
	}
	return r.Mul(r, new(big.Rat).SetInt(pow))
}

// String renders d in plain notation when scale >= 0 ("12.34", "0.005") and
// as unscaled digits with a positive exponent otherwise ("12E+3"), so that
// ParseDecimal restores both value and scale. A positive scale whose adjusted
// exponent is below -6 uses scientific notation ("1E-7", "1.23E-50000000")
// so the text stays proportional to the digits rather than the scale.
func (d Decimal) String() string {
	u := d.Unscaled()
	neg := u.Sign() < 0
	digits := u.Abs(u).String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	adjusted := int64(len(digits)) - 1 - int64(d.scale)
	switch {
	case d.scale == 0:
		b.WriteString(digits)
	case d.scale < 0:
		b.WriteString(digits)
		b.WriteString("E+")
		b.WriteString(strconv.FormatInt(-int64(d.scale), 10))
	case adjusted < -6:
		b.WriteString(digits[:1])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('E')
		b.WriteString(strconv.FormatInt(adjusted, 10))
	default:
		scale := int(d.scale)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		point := len(digits) - scale
		b.WriteString(digits[:point])
		b.WriteByte('.')
		b.WriteString(digits[point:])
	}
	return b.String()
}

// ParseDecimal parses plain ("-12.340") or exponent ("1.2E+3", "5e-2")
// notation. The scale is the number of fraction digits minus the exponent.
func ParseDecimal(s string) (Decimal, error) {
	orig := s
	if s == "" {
		return Decimal{}, fmt.Errorf("%w: empty decimal", ErrMalformed)
	}

	exp := int64(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return Decimal{}, fmt.Errorf("%w: decimal exponent %q", ErrMalformed, orig)
		}
		exp = e
		s = s[:i]
	}

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	digits := intPart + frac
	if digits == "" {
		return Decimal{}, fmt.Errorf("%w: decimal %q", ErrMalformed, orig)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Decimal{}, fmt.Errorf("%w: decimal %q", ErrMalformed, orig)
		}
	}

	scale := int64(len(frac)) - exp
	if scale > math.MaxInt32 || scale < math.MinInt32 {
		return Decimal{}, fmt.Errorf("%w: decimal scale out of range in %q", ErrMalformed, orig)
	}

	u, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("%w: decimal %q", ErrMalformed, orig)
	}
	if neg {
		u.Neg(u)
	}
	return Decimal{unscaled: u, scale: int32(scale)}, nil
}

// MustParseDecimal is ParseDecimal for literals known to be valid.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}
