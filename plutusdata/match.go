package plutusdata

import "math/big"

// AnyTag matches a constructor regardless of its tag.
const AnyTag = -1

// Bindings holds the nodes captured by named patterns.
type Bindings map[string]Data

// Pattern describes an accepted shape of a Plutus data tree.
type Pattern interface {
	match(d Data, bindings Bindings) bool
}

type patternFunc func(d Data, bindings Bindings) bool

func (f patternFunc) match(d Data, bindings Bindings) bool {
	return f(d, bindings)
}

// Match checks the tree against the pattern and returns the captured nodes.
// Nothing is captured unless the whole pattern matches.
func Match(d Data, p Pattern) (Bindings, bool) {
	bindings := Bindings{}
	if d == nil || !p.match(d, bindings) {
		return nil, false
	}

	return bindings, true
}

// ConstrOf matches a constructor with the given tag (or AnyTag) whose leading fields match
// the field patterns. Trailing fields not covered by a pattern are ignored.
func ConstrOf(tag int, fields ...Pattern) Pattern {
	return patternFunc(func(d Data, bindings Bindings) bool {
		c, ok := d.(*Constr)
		if !ok || (tag != AnyTag && c.Tag != uint64(tag)) || len(c.Fields) < len(fields) { //nolint:gosec
			return false
		}

		for i, fieldPattern := range fields {
			if !fieldPattern.match(c.Fields[i], bindings) {
				return false
			}
		}

		return true
	})
}

// Any matches every node.
func Any() Pattern {
	return patternFunc(func(Data, Bindings) bool {
		return true
	})
}

// IntegerAs matches an integer and captures it under name.
func IntegerAs(name string) Pattern {
	return patternFunc(func(d Data, bindings Bindings) bool {
		if _, ok := d.(*Integer); !ok {
			return false
		}

		bindings[name] = d

		return true
	})
}

// BytesAs matches a byte string and captures it under name.
func BytesAs(name string) Pattern {
	return patternFunc(func(d Data, bindings Bindings) bool {
		if _, ok := d.(*ByteString); !ok {
			return false
		}

		bindings[name] = d

		return true
	})
}

// Integer returns the captured integer or nil.
func (b Bindings) Integer(name string) *big.Int {
	if v, ok := b[name].(*Integer); ok {
		return v.Value
	}

	return nil
}

// Bytes returns the captured byte string or nil.
func (b Bindings) Bytes(name string) []byte {
	if v, ok := b[name].(*ByteString); ok {
		return v.Value
	}

	return nil
}
