package plutusdata

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	pattern := ConstrOf(0,
		IntegerAs("amount"),
		BytesAs("name"),
		ConstrOf(AnyTag, ConstrOf(1, BytesAs("inner"))),
	)

	t.Run("full match", func(t *testing.T) {
		t.Parallel()

		tree := NewConstr(0,
			NewInt64(42),
			NewByteString([]byte("abc")),
			NewConstr(5, NewConstr(1, NewByteString([]byte{7}))),
			NewInt64(1), // trailing fields are ignored
		)

		bindings, ok := Match(tree, pattern)
		require.True(t, ok)
		require.Equal(t, big.NewInt(42), bindings.Integer("amount"))
		require.Equal(t, []byte("abc"), bindings.Bytes("name"))
		require.Equal(t, []byte{7}, bindings.Bytes("inner"))
		require.Nil(t, bindings.Bytes("amount"))
		require.Nil(t, bindings.Integer("unknown"))
	})

	t.Run("wrong tag", func(t *testing.T) {
		t.Parallel()

		tree := NewConstr(0,
			NewInt64(42),
			NewByteString([]byte("abc")),
			NewConstr(0, NewConstr(0, NewByteString([]byte{7}))),
		)

		bindings, ok := Match(tree, pattern)
		require.False(t, ok)
		require.Nil(t, bindings)
	})

	t.Run("too few fields", func(t *testing.T) {
		t.Parallel()

		_, ok := Match(NewConstr(0, NewInt64(42)), pattern)
		require.False(t, ok)
	})

	t.Run("wrong leaf type", func(t *testing.T) {
		t.Parallel()

		tree := NewConstr(0,
			NewByteString([]byte{1}),
			NewByteString([]byte("abc")),
			NewConstr(0, NewConstr(1, NewByteString([]byte{7}))),
		)

		_, ok := Match(tree, pattern)
		require.False(t, ok)
	})

	t.Run("nil and any", func(t *testing.T) {
		t.Parallel()

		_, ok := Match(nil, Any())
		require.False(t, ok)

		_, ok = Match(NewList(), Any())
		require.True(t, ok)

		_, ok = Match(NewList(), ConstrOf(AnyTag))
		require.False(t, ok)
	})
}
