package plutusdata

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Data is a node of a Plutus data tree. The concrete types are
// Constr, Integer, ByteString, List and Map.
type Data interface {
	fmt.Stringer
	isData()
}

type Constr struct {
	Tag    uint64
	Fields []Data
}

type Integer struct {
	Value *big.Int
}

type ByteString struct {
	Value []byte
}

type List struct {
	Items []Data
}

type Pair struct {
	Key   Data
	Value Data
}

type Map struct {
	Pairs []Pair
}

var (
	_ Data = (*Constr)(nil)
	_ Data = (*Integer)(nil)
	_ Data = (*ByteString)(nil)
	_ Data = (*List)(nil)
	_ Data = (*Map)(nil)
)

func NewConstr(tag uint64, fields ...Data) *Constr {
	if fields == nil {
		fields = []Data{}
	}

	return &Constr{Tag: tag, Fields: fields}
}

func NewInteger(value *big.Int) *Integer {
	return &Integer{Value: new(big.Int).Set(value)}
}

func NewInt64(value int64) *Integer {
	return &Integer{Value: big.NewInt(value)}
}

func NewUint64(value uint64) *Integer {
	return &Integer{Value: new(big.Int).SetUint64(value)}
}

func NewByteString(value []byte) *ByteString {
	return &ByteString{Value: bytes.Clone(value)}
}

func NewList(items ...Data) *List {
	if items == nil {
		items = []Data{}
	}

	return &List{Items: items}
}

func NewMap(pairs ...Pair) *Map {
	if pairs == nil {
		pairs = []Pair{}
	}

	return &Map{Pairs: pairs}
}

func (*Constr) isData()     {}
func (*Integer) isData()    {}
func (*ByteString) isData() {}
func (*List) isData()       {}
func (*Map) isData()        {}

func (c *Constr) String() string {
	return fmt.Sprintf("Constr %d %s", c.Tag, joinData(c.Fields))
}

func (i *Integer) String() string {
	return "I " + i.Value.String()
}

func (b *ByteString) String() string {
	return "B #" + hex.EncodeToString(b.Value)
}

func (l *List) String() string {
	return "List " + joinData(l.Items)
}

func (m *Map) String() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = fmt.Sprintf("(%s, %s)", p.Key, p.Value)
	}

	return "Map [" + strings.Join(parts, ", ") + "]"
}

func joinData(items []Data) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Data) bool {
	switch av := a.(type) {
	case *Constr:
		bv, ok := b.(*Constr)

		return ok && av.Tag == bv.Tag && equalSlices(av.Fields, bv.Fields)
	case *Integer:
		bv, ok := b.(*Integer)

		return ok && av.Value.Cmp(bv.Value) == 0
	case *ByteString:
		bv, ok := b.(*ByteString)

		return ok && bytes.Equal(av.Value, bv.Value)
	case *List:
		bv, ok := b.(*List)

		return ok && equalSlices(av.Items, bv.Items)
	case *Map:
		bv, ok := b.(*Map)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}

		for i := range av.Pairs {
			if !Equal(av.Pairs[i].Key, bv.Pairs[i].Key) || !Equal(av.Pairs[i].Value, bv.Pairs[i].Value) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func equalSlices(a, b []Data) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
