package plutusdata

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	twoPow64 := new(big.Int).Lsh(big.NewInt(1), 64)

	cases := []struct {
		name     string
		cborHex  string
		expected Data
	}{
		{"unsigned", "1903e8", NewInt64(1000)},
		{"negative", "20", NewInt64(-1)},
			{"positive bignum", "c249010000000000000000", NewInteger(twoPow64)},
		{"negative bignum", "c349010000000000000000",
			NewInteger(new(big.Int).Sub(new(big.Int).Neg(twoPow64), big.NewInt(1)))},
		{"bytes", "43010203", NewByteString([]byte{1, 2, 3})},
		{"chunked bytes", "5f4201024103ff", NewByteString([]byte{1, 2, 3})},
		{"empty constr", "d87980", NewConstr(0)},
		{"constr definite", "d87a820141ab", NewConstr(1, NewInt64(1), NewByteString([]byte{0xab}))},
		{"constr indefinite", "d8799f0141abff", NewConstr(0, NewInt64(1), NewByteString([]byte{0xab}))},
		{"large constr", "d9050080", NewConstr(7)},
		{"general constr", "d8668218c880", NewConstr(200)},
		{"list", "9f0102ff", NewList(NewInt64(1), NewInt64(2))},
		{"map", "a1410102", NewMap(Pair{Key: NewByteString([]byte{1}), Value: NewInt64(2)})},
		{"indefinite map", "bf4101020320ff", NewMap(
			Pair{Key: NewByteString([]byte{1}), Value: NewInt64(2)}, Pair{Key: NewInt64(3), Value: NewInt64(-1)})},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			result, err := DecodeHex(c.cborHex)
			require.NoError(t, err)
			require.True(t, Equal(c.expected, result), "expected %s got %s", c.expected, result)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrEmptyData)

	for _, raw := range []string{
		"zz",       // not hex
		"d8799f01", // truncated array
		"6161",     // text strings are not plutus data
		"d8c880",   // unknown tag
		"0101",     // trailing bytes
	} {
		_, err = DecodeHex(raw)
		require.ErrorIs(t, err, ErrInvalidData, raw)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		data     Data
		expected string
	}{
		{"empty constr", NewConstr(0), "d87980"},
		{"large constr", NewConstr(7), "d9050080"},
		{"negative", NewInt64(-500), "3901f3"},
		{"bytes", NewByteString([]byte{1, 2, 3}), "43010203"},
		{"empty bytes", NewByteString([]byte{}), "40"},
		{"nil bytes", NewByteString(nil), "40"},
		{"empty list", NewList(), "80"},
		{"map", NewMap(Pair{Key: NewInt64(1), Value: NewByteString(nil)}), "a10140"},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			result, err := EncodeHex(c.data)
			require.NoError(t, err)
			require.Equal(t, c.expected, result)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	_, err := Encode(&Integer{})
	require.ErrorIs(t, err, ErrInvalidData)

	_, err = Encode(nil)
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Encode(NewList(NewInt64(1), nil))
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestEncode_NilByteStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, tree := range []Data{
		NewByteString(nil),
		&ByteString{},
		NewConstr(0, NewInt64(1), NewByteString(nil), NewList(&ByteString{})),
	} {
		raw, err := Encode(tree)
		require.NoError(t, err)
		require.NotContains(t, raw, byte(0xf6), tree.String())

		decoded, err := Decode(raw)
		require.NoError(t, err)
		require.True(t, Equal(tree, decoded), "expected %s got %s", tree, decoded)
	}
}

func TestEncode_LongByteString(t *testing.T) {
	t.Parallel()

	value := make([]byte, 100)
	for i := range value {
		value[i] = byte(i)
	}

	raw, err := Encode(NewByteString(value))
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	require.True(t, Equal(NewByteString(value), decoded))
}

func TestEncodeDecode_Nested(t *testing.T) {
	t.Parallel()

	tree := NewConstr(0,
		NewInt64(500000),
		NewByteString([]byte("bc1qexample")),
		NewConstr(0,
			NewConstr(0, NewByteString(make([]byte, 28))),
			NewConstr(0, NewConstr(0, NewConstr(0, NewByteString(make([]byte, 28))))),
		),
		NewList(NewMap(Pair{Key: NewInt64(-7), Value: NewList()})),
	)

	raw, err := Encode(tree)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	require.True(t, Equal(tree, decoded))
	require.Equal(t, tree.String(), decoded.String())
}

func TestDataString(t *testing.T) {
	t.Parallel()

	d := NewConstr(1, NewInt64(5), NewByteString([]byte{0xca, 0xfe}), NewList(),
		NewMap(Pair{Key: NewInt64(1), Value: NewInt64(2)}))

	require.Equal(t, "Constr 1 [I 5, B #cafe, List [], Map [(I 1, I 2)]]", d.String())
}
