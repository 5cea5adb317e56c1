package seqnode

import (
	"math/big"
	"strings"
)

// Combinatorics is the Cartesian-product sequence over an ordered list of
// children — the node kind built for regex concatenation (ab, a(b|c)d).
// Cardinality is the product of the children's cardinalities. Indexing
// decomposes i in mixed radix with the *first* child as the
// least-significant digit: incrementing the overall index first increments
// the leftmost (first-declared) character, matching the pattern's
// left-to-right reading order.
type Combinatorics struct {
	children []Node
	lengths  []*big.Int
	total    *big.Int
}

// NewCombinatorics builds a Combinatorics node over children in declared
// order.
func NewCombinatorics(children []Node) *Combinatorics {
	lengths := make([]*big.Int, len(children))
	total := big.NewInt(1)
	for i, c := range children {
		lengths[i] = new(big.Int).Set(c.Len())
		total.Mul(total, lengths[i])
	}
	return &Combinatorics{children: children, lengths: lengths, total: total}
}

func (c *Combinatorics) Len() *big.Int {
	return new(big.Int).Set(c.total)
}

func (c *Combinatorics) Item(i *big.Int, env Env) (string, error) {
	idx, err := normalizeIndex(i, c.total)
	if err != nil {
		return "", err
	}

	if len(c.children) == 1 {
		// Single-child fast path: bypass the join entirely.
		return c.children[0].Item(idx, env)
	}

	rem := new(big.Int).Set(idx)
	parts := make([]string, len(c.children))
	quo := new(big.Int)
	mod := new(big.Int)
	for n, child := range c.children {
		length := c.lengths[n]
		quo.QuoRem(rem, length, mod)
		s, err := child.Item(mod, env)
		if err != nil {
			return "", err
		}
		parts[n] = s
		rem, quo = quo, rem
	}

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p)
	}
	return sb.String(), nil
}
