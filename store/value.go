package store

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/pwrlabs/dbm/codec"
)

// ValueKind enumerates what a Value carries.
type ValueKind uint8

const (
	ValueNull ValueKind = iota
	ValueBytes
	ValueString
	ValueNumber
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueBytes:
		return "bytes"
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is the field payload passed to Store. The zero Value is null and is
// never written.
type Value struct {
	kind ValueKind
	b    []byte
	s    string
	n    codec.Number
	t    bool
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bytes wraps raw bytes. A nil slice is null.
func Bytes(b []byte) Value {
	if b == nil {
		return Value{}
	}
	return Value{kind: ValueBytes, b: b}
}

func String(s string) Value { return Value{kind: ValueString, s: s} }

func Bool(v bool) Value { return Value{kind: ValueBool, t: v} }

// Number wraps a codec.Number.
func Number(n codec.Number) Value { return Value{kind: ValueNumber, n: n} }

func Int16(v int16) Value     { return Number(codec.Int16(v)) }
func Int32(v int32) Value     { return Number(codec.Int32(v)) }
func Int64(v int64) Value     { return Number(codec.Int64(v)) }
func Float64(v float64) Value { return Number(codec.Float64(v)) }

// BigInt wraps an arbitrary-precision integer. A nil v is null.
func BigInt(v *big.Int) Value {
	if v == nil {
		return Value{}
	}
	return Number(codec.BigInt(v))
}

func Decimal(d codec.Decimal) Value { return Number(codec.DecimalOf(d)) }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == ValueNull }

// Encode returns the byte form written by FileStore.
func (v Value) Encode() ([]byte, error) {
	switch v.kind {
	case ValueBytes:
		return v.b, nil
	case ValueString:
		return []byte(v.s), nil
	case ValueNumber:
		return codec.Encode(v.n)
	case ValueBool:
		return codec.EncodeBool(v.t), nil
	default:
		return nil, nil
	}
}

// Text returns the string form written into documents: lowercase hex for
// bytes, decimal text for numbers, "true"/"false" for booleans.
func (v Value) Text() (string, error) {
	switch v.kind {
	case ValueBytes:
		return hex.EncodeToString(v.b), nil
	case ValueString:
		return v.s, nil
	case ValueNumber:
		if v.n.Kind() == codec.KindInvalid {
			return "", fmt.Errorf("%w: %s", codec.ErrUnsupportedKind, v.n.Kind())
		}
		return v.n.String(), nil
	case ValueBool:
		return strconv.FormatBool(v.t), nil
	default:
		return "", nil
	}
}

// Field is a named Value.
type Field struct {
	Name  string
	Value Value
}
