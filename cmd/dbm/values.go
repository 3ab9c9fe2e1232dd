package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/pwrlabs/dbm/codec"
	"github.com/pwrlabs/dbm/store"
)

// valueTypes lists the --as choices accepted by get and set.
var valueTypes = []string{"string", "bool", "int16", "int32", "int64", "float64", "bigint", "decimal", "hex"}

func parseValue(as, text string) (store.Value, error) {
	switch as {
	case "string":
		return store.String(text), nil
	case "bool":
		v, err := strconv.ParseBool(text)
		return store.Bool(v), err
	case "int16":
		v, err := strconv.ParseInt(text, 10, 16)
		return store.Int16(int16(v)), err
	case "int32":
		v, err := strconv.ParseInt(text, 10, 32)
		return store.Int32(int32(v)), err
	case "int64":
		v, err := strconv.ParseInt(text, 10, 64)
		return store.Int64(v), err
	case "float64":
		v, err := strconv.ParseFloat(text, 64)
		return store.Float64(v), err
	case "bigint":
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return store.Value{}, fmt.Errorf("%q is not an integer", text)
		}
		return store.BigInt(v), nil
	case "decimal":
		v, err := codec.ParseDecimal(text)
		return store.Decimal(v), err
	case "hex":
		v, err := hex.DecodeString(text)
		if err != nil {
			return store.Value{}, err
		}
		return store.Bytes(v), nil
	default:
		return store.Value{}, fmt.Errorf("unknown value type %q (want one of %v)", as, valueTypes)
	}
}

func loadText(ctx context.Context, s store.Store, as, name string) (string, error) {
	switch as {
	case "string":
		return s.LoadString(ctx, name)
	case "bool":
		v, err := s.LoadBool(ctx, name)
		return strconv.FormatBool(v), err
	case "int16":
		v, err := s.LoadInt16(ctx, name)
		return strconv.FormatInt(int64(v), 10), err
	case "int32":
		v, err := s.LoadInt32(ctx, name)
		return strconv.FormatInt(int64(v), 10), err
	case "int64":
		v, err := s.LoadInt64(ctx, name)
		return strconv.FormatInt(v, 10), err
	case "float64":
		v, err := s.LoadFloat64(ctx, name)
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case "bigint":
		v, err := s.LoadBigInt(ctx, name)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	case "decimal":
		v, err := s.LoadDecimal(ctx, name)
		return v.String(), err
	case "hex":
		v, _, err := s.Load(ctx, name)
		return hex.EncodeToString(v), err
	default:
		return "", fmt.Errorf("unknown value type %q (want one of %v)", as, valueTypes)
	}
}
