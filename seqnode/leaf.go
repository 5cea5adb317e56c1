package seqnode

import "math/big"

// Leaf is a finite ordered list of strings: single characters resolved
// from a literal, a character range, a negated class against the
// configured charset, or (for anchors and similar zero-width matchers) the
// single empty string. Cardinality is the list length.
type Leaf struct {
	items []string
}

// NewLeaf builds a Leaf over items in the given order. The slice is
// copied so the caller may reuse its backing array.
func NewLeaf(items []string) *Leaf {
	cp := make([]string, len(items))
	copy(cp, items)
	return &Leaf{items: cp}
}

// Empty is the leaf used for zero-width constructs (anchors, empty
// assertions in relaxed mode): a single element, the empty string.
func Empty() *Leaf {
	return NewLeaf([]string{""})
}

func (l *Leaf) Len() *big.Int {
	return big.NewInt(int64(len(l.items)))
}

func (l *Leaf) Item(i *big.Int, _ Env) (string, error) {
	idx, err := normalizeIndex(i, l.Len())
	if err != nil {
		return "", err
	}
	return l.items[idx.Int64()], nil
}

// Contains reports whether s is one of this leaf's items.
func (l *Leaf) Contains(s string) bool {
	for _, item := range l.items {
		if item == s {
			return true
		}
	}
	return false
}
