package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
)

// byteOrder combines ByteOrder and AppendByteOrder so fixed-width fields can
// be both appended and read through one value.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// All fixed-width fields are little-endian.
var order byteOrder = binary.LittleEndian

// scaleSize is the width of the little-endian scale prefix that precedes the
// magnitude of arbitrary-precision values.
const scaleSize = 4

// Encode converts n to its persisted byte form:
//
//	int16    2 bytes LE
//	int32    4 bytes LE
//	int64    8 bytes LE
//	float64  8 bytes LE IEEE-754
//	bigint   4-byte LE scale 0, then big-endian magnitude
//	decimal  4-byte LE scale, then big-endian magnitude of the unscaled value
//
// The magnitude is unsigned and at least one byte long, so negative
// arbitrary-precision values are rejected with ErrUnsupportedKind. The
// byte-level store therefore cannot hold a negative big int or decimal; the
// document store can, since it keeps their decimal text.
func Encode(n Number) ([]byte, error) {
	return Append(nil, n)
}

// Append appends the encoded form of n to dst.
func Append(dst []byte, n Number) ([]byte, error) {
	switch n.kind {
	case KindInt16:
		return order.AppendUint16(dst, uint16(int16(n.i))), nil
	case KindInt32:
		return order.AppendUint32(dst, uint32(int32(n.i))), nil
	case KindInt64:
		return order.AppendUint64(dst, uint64(n.i)), nil
	case KindFloat64:
		return order.AppendUint64(dst, math.Float64bits(n.f)), nil
	case KindBigInt, KindDecimal:
		if n.d.Sign() < 0 {
			return nil, fmt.Errorf("%w: negative %s has no unsigned magnitude", ErrUnsupportedKind, n.kind)
		}
		dst = order.AppendUint32(dst, uint32(n.d.scale))
		mag := n.d.Unscaled().Bytes()
		if len(mag) == 0 {
			mag = []byte{0}
		}
		return append(dst, mag...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, n.kind)
	}
}

// Decode recovers a Number from b using its length only:
//
//	len 4  -> int32
//	len 2  -> int16
//	len 8  -> int64
//	len >4 -> decimal (LE scale + big-endian magnitude)
//
// Decode never yields KindFloat64: eight bytes written from a float64 come
// back as an int64 holding the IEEE bits. Use DecodeFloat64 for those.
func Decode(b []byte) (Number, error) {
	switch n := len(b); {
	case n == 4:
		return Int32(int32(order.Uint32(b))), nil
	case n == 2:
		return Int16(int16(order.Uint16(b))), nil
	case n == 8:
		return Int64(int64(order.Uint64(b))), nil
	case n > scaleSize:
		return Number{kind: KindDecimal, d: decodeDecimal(b)}, nil
	default:
		return Number{}, fmt.Errorf("%w: %d bytes", ErrInvalidLength, n)
	}
}

func decodeDecimal(b []byte) Decimal {
	scale := int32(order.Uint32(b[:scaleSize]))
	return Decimal{unscaled: new(big.Int).SetBytes(b[scaleSize:]), scale: scale}
}

func decodeKind(b []byte, want Kind) (Number, error) {
	n, err := Decode(b)
	if err != nil {
		return Number{}, err
	}
	if n.kind != want {
		return Number{}, fmt.Errorf("%w: %d bytes decode as %s, want %s", ErrKindMismatch, len(b), n.kind, want)
	}
	return n, nil
}

// DecodeInt16 decodes b through Decode and requires an int16 result.
func DecodeInt16(b []byte) (int16, error) {
	n, err := decodeKind(b, KindInt16)
	return int16(n.i), err
}

// DecodeInt32 decodes b through Decode and requires an int32 result.
func DecodeInt32(b []byte) (int32, error) {
	n, err := decodeKind(b, KindInt32)
	return int32(n.i), err
}

// DecodeInt64 decodes b through Decode and requires an int64 result.
func DecodeInt64(b []byte) (int64, error) {
	n, err := decodeKind(b, KindInt64)
	return n.i, err
}

// DecodeFloat64 reads b as an 8-byte little-endian IEEE-754 double without
// consulting the length table.
func DecodeFloat64(b []byte) (float64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: float64 needs 8 bytes, got %d", ErrInvalidLength, len(b))
	}
	return math.Float64frombits(order.Uint64(b)), nil
}

// DecodeBigInt reads all of b as an unsigned big-endian integer. The zero
// scale prefix written by Encode contributes only leading zero bytes.
func DecodeBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// DecodeDecimal reads b as a scale prefix followed by a magnitude, without
// consulting the length table, so values whose encoding happens to be 8
// bytes long still decode as decimals.
func DecodeDecimal(b []byte) (Decimal, error) {
	if len(b) <= scaleSize {
		return Decimal{}, fmt.Errorf("%w: decimal needs more than %d bytes, got %d", ErrInvalidLength, scaleSize, len(b))
	}
	return decodeDecimal(b), nil
}

// EncodeBool returns the single-byte form of v.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool reports whether the first byte of b is non-zero.
func DecodeBool(b []byte) (bool, error) {
	if len(b) == 0 {
		return false, fmt.Errorf("%w: bool needs at least 1 byte", ErrInvalidLength)
	}
	return b[0] != 0, nil
}
