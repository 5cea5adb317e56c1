package rxseq

import (
	"math/big"

	"github.com/coregx/rxseq/nfa"
	"github.com/coregx/rxseq/seqnode"
)

var bigOne = big.NewInt(1)

// engine is the shared compiled state behind Sequence and MatchSequence:
// the adapted seqnode tree plus the compiled matcher used for membership
// and for capture-group names. Both top-level types embed a *engine rather
// than duplicating Compile/build bookkeeping.
type engine struct {
	pattern     string
	tree        seqnode.Node
	hasGroupref bool
	matcher     *nfa.PikeVM
	names       []string
}

func newEngine(pattern string, cfg Config) (*engine, error) {
	tree, hasGroupref, matcher, names, err := build(pattern, cfg)
	if err != nil {
		return nil, err
	}
	return &engine{pattern: pattern, tree: tree, hasGroupref: hasGroupref, matcher: matcher, names: names}, nil
}

// env returns the environment to thread through a plain string-mode Item
// call: an empty map when the tree contains a Read node (so its Save
// counterpart has somewhere to record its capture), nil otherwise.
// Omitting the map when no backreference node is present keeps the common
// path allocation-free.
func (e *engine) env() seqnode.Env {
	if e.hasGroupref {
		return seqnode.Env{}
	}
	return nil
}

func (e *engine) item(i *big.Int, env seqnode.Env) (string, error) {
	s, err := e.tree.Item(i, env)
	if err != nil {
		return "", wrapIndexError(err)
	}
	return s, nil
}

func (e *engine) contains(s string) bool {
	ok, _ := fullMatch(e.matcher, s)
	return ok
}

// Sequence is the i-th-string view over a pattern's language: an
// immutable, lazily-computed, indexable sequence of strings in canonical
// order. Construct one with Compile, CompileWithConfig or MustCompile.
//
// A Sequence is not safe for concurrent use: lookups fill lazily built,
// unsynchronized caches inside repetition nodes, so callers sharing one
// Sequence across goroutines must synchronize access themselves.
type Sequence struct {
	e *engine
}

// Compile parses pattern with the default Config and returns the
// resulting string-mode Sequence.
//
// Example:
//
//	s, err := rxseq.Compile(`[abc]`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.Len()) // 3
func Compile(pattern string) (*Sequence, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if pattern cannot be compiled.
// Intended for patterns known to be valid at init time.
func MustCompile(pattern string) *Sequence {
	s, err := Compile(pattern)
	if err != nil {
		panic("rxseq: Compile(" + pattern + "): " + err.Error())
	}
	return s
}

// CompileWithConfig is like Compile but accepts an explicit Config,
// e.g. to set a charset, enable Dotall, or raise/lower MaxCount.
func CompileWithConfig(pattern string, cfg Config) (*Sequence, error) {
	e, err := newEngine(pattern, cfg)
	if err != nil {
		return nil, err
	}
	return &Sequence{e: e}, nil
}

// Len reports the cardinality of the sequence's language as an
// arbitrary-precision integer: languages denoted by patterns like `.*`
// routinely exceed any machine word.
func (s *Sequence) Len() *big.Int {
	return s.e.tree.Len()
}

// BigLen is an alias for Len, named for callers migrating from an API
// that distinguishes a native-int length from a big-integer one.
func (s *Sequence) BigLen() *big.Int {
	return s.Len()
}

// At returns the i-th string in the sequence's canonical order. Negative
// i counts from the end. Returns an *IndexError if i falls outside
// [-Len(), Len()).
func (s *Sequence) At(i *big.Int) (string, error) {
	return s.e.item(i, s.e.env())
}

// AtInt is a convenience wrapper over At for indices that fit in a native
// int; most callers never need an index wider than this.
func (s *Sequence) AtInt(i int) (string, error) {
	return s.At(big.NewInt(int64(i)))
}

// Contains reports whether s matches the compiled pattern in full.
// Membership always defers to the compiled matcher rather than scanning
// the sequence tree.
func (s *Sequence) Contains(str string) bool {
	return s.e.contains(str)
}

// Slice returns the view over [start:stop:step], honoring negative and
// reverse strides exactly as seqnode.Sliced does. A nil start/stop means
// "omitted" (Python slice semantics); a nil step defaults to 1. A slice
// whose length is smaller than 16 is eagerly materialized into a plain
// Leaf-backed Sequence instead of staying a lazy view over the parent
// tree.
func (s *Sequence) Slice(start, stop, step *big.Int) (*Sequence, error) {
	tree, err := s.sliceTree(start, stop, step)
	if err != nil {
		return nil, err
	}
	return &Sequence{e: &engine{pattern: s.e.pattern, tree: tree, hasGroupref: s.e.hasGroupref, matcher: s.e.matcher, names: s.e.names}}, nil
}

func (s *Sequence) sliceTree(start, stop, step *big.Int) (seqnode.Node, error) {
	sliced, err := seqnode.NewSliced(s.e.tree, start, stop, step)
	if err != nil {
		return nil, wrapIndexError(err)
	}
	return materializeIfSmall(sliced, s.e.hasGroupref)
}

// materializeSliceThreshold bounds how large a slice gets eagerly
// collected into a Leaf.
const materializeSliceThreshold = 16

// materializeIfSmall eagerly collects a small Sliced view into a Leaf, so
// that repeatedly indexing a short slice doesn't repeatedly walk the
// parent tree through the slice's start/step arithmetic. Each element
// gets its own fresh binding environment when needed, exactly as a
// top-level lookup would — reusing one map across every index would leak
// one position's captures into the next.
func materializeIfSmall(sliced *seqnode.Sliced, hasGroupref bool) (seqnode.Node, error) {
	n := sliced.Len()
	if !n.IsInt64() || n.Int64() >= materializeSliceThreshold {
		return sliced, nil
	}
	count := int(n.Int64())
	items := make([]string, count)
	for idx := 0; idx < count; idx++ {
		var env seqnode.Env
		if hasGroupref {
			env = seqnode.Env{}
		}
		v, err := sliced.Item(big.NewInt(int64(idx)), env)
		if err != nil {
			return nil, wrapIndexError(err)
		}
		items[idx] = v
	}
	return seqnode.NewLeaf(items), nil
}

// Values returns an iterator over every string in the sequence, in index
// order from 0 to Len(). Iteration is bounded only by what the caller
// actually consumes: return false from yield to stop early, since
// Len() itself may be astronomically large.
func (s *Sequence) Values() func(yield func(string) bool) {
	return func(yield func(string) bool) {
		n := s.Len()
		for i := new(big.Int); i.Cmp(n) < 0; i.Add(i, bigOne) {
			v, err := s.e.item(i, s.e.env())
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// All is like Values but also yields each element's index, for callers
// that want both without maintaining their own counter.
func (s *Sequence) All() func(yield func(*big.Int, string) bool) {
	return func(yield func(*big.Int, string) bool) {
		n := s.Len()
		for i := new(big.Int); i.Cmp(n) < 0; i.Add(i, bigOne) {
			v, err := s.e.item(i, s.e.env())
			if err != nil {
				return
			}
			if !yield(new(big.Int).Set(i), v) {
				return
			}
		}
	}
}
