package seqnode

import "math/big"

// Concatenated is the disjoint-union sequence over an ordered list of
// children — the node kind built for regex alternation (a|b|c). Its
// cardinality is the sum of the children's cardinalities, and indexing
// scans the children in declared order, subtracting lengths until the
// remainder falls within the current child.
type Concatenated struct {
	children []Node
	lengths  []*big.Int // captured once at construction, never recomputed
	total    *big.Int
}

// NewConcatenated builds a Concatenated node over children in declared
// (parser) order. Child lengths are snapshotted immediately.
func NewConcatenated(children []Node) *Concatenated {
	lengths := make([]*big.Int, len(children))
	total := new(big.Int)
	for i, c := range children {
		lengths[i] = new(big.Int).Set(c.Len())
		total.Add(total, lengths[i])
	}
	return &Concatenated{children: children, lengths: lengths, total: total}
}

func (c *Concatenated) Len() *big.Int {
	return new(big.Int).Set(c.total)
}

func (c *Concatenated) Item(i *big.Int, env Env) (string, error) {
	idx, err := normalizeIndex(i, c.total)
	if err != nil {
		return "", err
	}
	rem := new(big.Int).Set(idx)
	for n, child := range c.children {
		length := c.lengths[n]
		if rem.Cmp(length) < 0 {
			return child.Item(rem, env)
		}
		rem.Sub(rem, length)
	}
	// Unreachable: normalizeIndex already bounded idx < total.
	return "", &IndexError{Index: i, Length: c.total}
}

// Contains reports true if any child that implements Container contains s.
// Children without a cheap membership check are skipped rather than
// forcing a linear enumeration; this is a best-effort optimization, not
// the authority on membership (top-level membership always defers to the
// compiled matcher).
func (c *Concatenated) Contains(s string) bool {
	for _, child := range c.children {
		if cc, ok := child.(Container); ok && cc.Contains(s) {
			return true
		}
	}
	return false
}
