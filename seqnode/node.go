// Package seqnode implements the combinatorial sequence engine: a small,
// closed set of tagged node kinds (leaf, concatenation, combinatorics,
// repetition, slice, capture save/read) that together represent the
// language of a regular expression as an immutable, lazily-indexable tree.
// Every cardinality and index is a *big.Int because the languages denoted
// by patterns like `.*` or `\d+` routinely exceed machine-word range.
package seqnode

import (
	"fmt"
	"math/big"
)

// Env is the per-lookup binding environment: a mapping from capture-group
// id to the last string that group produced during the current top-level
// Item call. A nil Env is valid and behaves as if no group had ever been
// captured — Read nodes fall back to the "fail" sentinel in that case.
type Env map[int]string

// Node is the uniform contract every sequence node satisfies: a
// non-negative cardinality, and an indexing operation that may mutate the
// caller-supplied environment (by recording a capture) but never the node
// itself. Nodes are immutable once constructed.
type Node interface {
	// Len returns the node's cardinality.
	Len() *big.Int

	// Item returns the i-th string in the node's canonical order.
	// Negative i counts from the end. env may be nil when the tree
	// contains no Read node (see HasGroupref).
	Item(i *big.Int, env Env) (string, error)
}

// Container is implemented by node kinds for which membership can be
// decided without invoking the external matcher. Top-level membership
// testing does not use this interface — it always defers to the compiled
// matcher — but it is exposed here for nodes whose shape makes cheap
// membership checking natural.
type Container interface {
	Contains(s string) bool
}

// IndexError reports an index outside [-|N|, |N|).
type IndexError struct {
	Index, Length *big.Int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("seqnode: index %s out of range for length %s", e.Index, e.Length)
}

// ValueError reports a malformed construction argument: a zero slice step.
type ValueError struct {
	Detail string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("seqnode: invalid value: %s", e.Detail)
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// normalizeIndex adds length to a negative index (Python-style wraparound)
// and returns an *IndexError if the result still falls outside [0, length).
func normalizeIndex(i, length *big.Int) (*big.Int, error) {
	idx := new(big.Int).Set(i)
	if idx.Sign() < 0 {
		idx.Add(idx, length)
	}
	if idx.Sign() < 0 || idx.Cmp(length) >= 0 {
		return nil, &IndexError{Index: new(big.Int).Set(i), Length: new(big.Int).Set(length)}
	}
	return idx, nil
}
