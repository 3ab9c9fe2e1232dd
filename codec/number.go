// Package codec converts numbers to and from the byte sequences persisted by
// the field stores. No type tag is written alongside the bytes: the generic
// Decode recovers a kind from the sequence length alone, while the typed
// decoders interpret the bytes as the kind the caller asks for.
package codec

import (
	"math/big"
	"strconv"
)

// Kind identifies the source type of a Number.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindBigInt
	KindDecimal
)

func (k Kind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBigInt:
		return "bigint"
	case KindDecimal:
		return "decimal"
	default:
		return "invalid"
	}
}

// Number is a tagged numeric value. The zero Number has KindInvalid and is
// rejected by Encode.
type Number struct {
	kind Kind
	i    int64
	f    float64
	d    Decimal
}

func Int16(v int16) Number { return Number{kind: KindInt16, i: int64(v)} }
func Int32(v int32) Number { return Number{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Number { return Number{kind: KindInt64, i: v} }

func Float64(v float64) Number { return Number{kind: KindFloat64, f: v} }

// BigInt wraps an arbitrary-precision integer. A nil v is treated as zero.
// The value is copied.
func BigInt(v *big.Int) Number {
	return Number{kind: KindBigInt, d: NewDecimal(v, 0)}
}

// DecimalOf wraps an arbitrary-precision decimal.
func DecimalOf(d Decimal) Number {
	return Number{kind: KindDecimal, d: NewDecimal(d.unscaled, d.scale)}
}

func (n Number) Kind() Kind { return n.kind }

// Int64 returns the value of a fixed-width integer Number. Other kinds
// return 0.
func (n Number) Int64() int64 {
	switch n.kind {
	case KindInt16, KindInt32, KindInt64:
		return n.i
	}
	return 0
}

// Float64 returns the value of a KindFloat64 Number, 0 otherwise.
func (n Number) Float64() float64 {
	if n.kind == KindFloat64 {
		return n.f
	}
	return 0
}

// BigInt returns the integer value of a KindBigInt or fixed-width integer
// Number. A KindDecimal Number yields its unscaled value.
func (n Number) BigInt() *big.Int {
	switch n.kind {
	case KindInt16, KindInt32, KindInt64:
		return big.NewInt(n.i)
	case KindBigInt, KindDecimal:
		return n.d.Unscaled()
	}
	return new(big.Int)
}

// Decimal returns the Number as a Decimal. Fixed-width integers and big
// integers have scale 0.
func (n Number) Decimal() Decimal {
	switch n.kind {
	case KindInt16, KindInt32, KindInt64:
		return NewDecimal(big.NewInt(n.i), 0)
	case KindBigInt, KindDecimal:
		return n.d
	}
	return Decimal{}
}

// String renders the decimal text form stored in documents.
func (n Number) String() string {
	switch n.kind {
	case KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(n.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	case KindBigInt, KindDecimal:
		return n.d.String()
	}
	return ""
}
