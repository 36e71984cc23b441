package plutusdata

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/fxamacker/cbor/v2"
)

var (
	ErrEmptyData       = errors.New("empty plutus data")
	ErrUnsupportedType = errors.New("unsupported plutus data type")
	ErrInvalidData     = errors.New("invalid plutus data")
)

// DecodeHex decodes hex encoded cbor into a Plutus data tree.
func DecodeHex(raw string) (Data, error) {
	bytes, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return Decode(bytes)
}

// Decode decodes cbor into a Plutus data tree. The whole input must be a single data item.
func Decode(raw []byte) (Data, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyData
	}

	if err := cbor.Wellformed(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	pd, err := data.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return FromPlutigo(pd)
}

// EncodeHex encodes Plutus data into hex encoded cbor.
func EncodeHex(d Data) (string, error) {
	raw, err := Encode(d)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}

// Encode encodes Plutus data into cbor.
func Encode(d Data) ([]byte, error) {
	pd, err := ToPlutigo(d)
	if err != nil {
		return nil, err
	}

	raw, err := data.Encode(pd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	return raw, nil
}

// ToPlutigo converts the tree into the plutigo representation used by the script evaluator and flat codec.
func ToPlutigo(d Data) (data.PlutusData, error) {
	switch v := d.(type) {
	case *Integer:
		if v.Value == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrInvalidData)
		}

		return data.NewInteger(new(big.Int).Set(v.Value)), nil

	case *ByteString:
		// a nil slice would be written as cbor null
		value := make([]byte, len(v.Value))
		copy(value, v.Value)

		return data.NewByteString(value), nil

	case *List:
		items, err := toPlutigoSlice(v.Items)
		if err != nil {
			return nil, err
		}

		return &data.List{Items: items}, nil

	case *Map:
		pairs := make([][2]data.PlutusData, len(v.Pairs))

		for i, pair := range v.Pairs {
			key, err := ToPlutigo(pair.Key)
			if err != nil {
				return nil, err
			}

			value, err := ToPlutigo(pair.Value)
			if err != nil {
				return nil, err
			}

			pairs[i] = [2]data.PlutusData{key, value}
		}

		return &data.Map{Pairs: pairs}, nil

	case *Constr:
		fields, err := toPlutigoSlice(v.Fields)
		if err != nil {
			return nil, err
		}

		return data.NewConstr(uint(v.Tag), fields...), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, d)
	}
}

// FromPlutigo converts a plutigo data value back into the tree used by the matcher.
func FromPlutigo(pd data.PlutusData) (Data, error) {
	switch v := pd.(type) {
	case *data.Integer:
		if v.Inner == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrInvalidData)
		}

		return NewInteger(v.Inner), nil

	case *data.ByteString:
		return NewByteString(v.Inner), nil

	case *data.List:
		items, err := fromPlutigoSlice(v.Items)
		if err != nil {
			return nil, err
		}

		return NewList(items...), nil

	case *data.Map:
		pairs := make([]Pair, len(v.Pairs))

		for i, pair := range v.Pairs {
			key, err := FromPlutigo(pair[0])
			if err != nil {
				return nil, err
			}

			value, err := FromPlutigo(pair[1])
			if err != nil {
				return nil, err
			}

			pairs[i] = Pair{Key: key, Value: value}
		}

		return NewMap(pairs...), nil

	case *data.Constr:
		fields, err := fromPlutigoSlice(v.Fields)
		if err != nil {
			return nil, err
		}

		return NewConstr(uint64(v.Tag), fields...), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, pd)
	}
}

func toPlutigoSlice(items []Data) ([]data.PlutusData, error) {
	result := make([]data.PlutusData, len(items))

	for i, item := range items {
		converted, err := ToPlutigo(item)
		if err != nil {
			return nil, err
		}

		result[i] = converted
	}

	return result, nil
}

func fromPlutigoSlice(items []data.PlutusData) ([]Data, error) {
	result := make([]Data, len(items))

	for i, item := range items {
		converted, err := FromPlutigo(item)
		if err != nil {
			return nil, err
		}

		result[i] = converted
	}

	return result, nil
}
