package rxseq

import (
	"math/big"

	"github.com/coregx/rxseq/seqnode"
)

// Match is the match-mode element type: the whole matched string plus
// every capture group's last-bound value for the lookup that produced it.
// Obtain one from MatchSequence.At or MatchSequence.Values.
type Match struct {
	whole string
	env   seqnode.Env
	names []string
}

// failGroup is the literal string returned for a group id that never
// fired during this particular lookup. Matches seqnode's Read-node
// sentinel; not an error.
const failGroup = "fail"

// Group returns group n's captured string: Group(0) is always the whole
// match; Group(n) for n >= 1 returns capture group n's last-bound value,
// or the literal string "fail" if group n never fired for this lookup.
func (m *Match) Group(n int) string {
	if n == 0 {
		return m.whole
	}
	if v, ok := m.env[n]; ok {
		return v
	}
	return failGroup
}

// GroupByName returns the value of the named capture group, looked up
// through the name-to-id map derived from the compiled matcher's
// SubexpNames. Returns "fail" for an unknown or never-fired name.
func (m *Match) GroupByName(name string) string {
	for id, n := range m.names {
		if id > 0 && n == name {
			return m.Group(id)
		}
	}
	return failGroup
}

// Groups returns every capture group's value, 1..k, in group-id order.
func (m *Match) Groups() []string {
	if len(m.names) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.names)-1)
	for id := 1; id < len(m.names); id++ {
		out = append(out, m.Group(id))
	}
	return out
}

// GroupDict returns every named capture group's value, keyed by name.
// Unnamed groups are omitted (SubexpNames reports them as "").
func (m *Match) GroupDict() map[string]string {
	out := make(map[string]string)
	for id, n := range m.names {
		if id == 0 || n == "" {
			continue
		}
		out[n] = m.Group(id)
	}
	return out
}

// Span is deliberately unsupported: this package answers "what is the
// i-th match" rather than "where in some haystack did it occur", so there
// is no byte-offset pair to report.
func (m *Match) Span() (int, int, error) {
	return 0, 0, &NotImplementedError{Detail: "Match.Span"}
}

// String returns Group(0), the whole matched string, so a *Match prints
// usefully with %v/%s.
func (m *Match) String() string {
	return m.whole
}

// MatchSequence is the match-mode counterpart to Sequence: indexing
// yields a *Match carrying the whole string and its capture bindings
// instead of a bare string. Construct one with CompileMatch or
// CompileMatchWithConfig.
type MatchSequence struct {
	e *engine
}

// CompileMatch parses pattern with the default Config and returns the
// resulting match-mode MatchSequence.
func CompileMatch(pattern string) (*MatchSequence, error) {
	return CompileMatchWithConfig(pattern, DefaultConfig())
}

// MustCompileMatch is like CompileMatch but panics if pattern cannot be
// compiled.
func MustCompileMatch(pattern string) *MatchSequence {
	s, err := CompileMatch(pattern)
	if err != nil {
		panic("rxseq: CompileMatch(" + pattern + "): " + err.Error())
	}
	return s
}

// CompileMatchWithConfig is like CompileMatch but accepts an explicit
// Config.
func CompileMatchWithConfig(pattern string, cfg Config) (*MatchSequence, error) {
	e, err := newEngine(pattern, cfg)
	if err != nil {
		return nil, err
	}
	return &MatchSequence{e: e}, nil
}

// Len reports the cardinality of the sequence's language.
func (s *MatchSequence) Len() *big.Int {
	return s.e.tree.Len()
}

// BigLen is an alias for Len; see Sequence.BigLen.
func (s *MatchSequence) BigLen() *big.Int {
	return s.Len()
}

// At returns the i-th Match. Match mode always threads a binding
// environment through the lookup, regardless of whether the tree contains
// a Read node, since Save nodes need somewhere to record their captures
// for Match.Group to read back.
func (s *MatchSequence) At(i *big.Int) (*Match, error) {
	env := seqnode.Env{}
	whole, err := s.e.item(i, env)
	if err != nil {
		return nil, err
	}
	return &Match{whole: whole, env: env, names: s.e.names}, nil
}

// AtInt is a convenience wrapper over At for indices that fit in a
// native int.
func (s *MatchSequence) AtInt(i int) (*Match, error) {
	return s.At(big.NewInt(int64(i)))
}

// Contains reports whether str matches the compiled pattern in full.
func (s *MatchSequence) Contains(str string) bool {
	return s.e.contains(str)
}

// Slice is the match-mode counterpart to Sequence.Slice. Unlike Sequence,
// a small slice is never eagerly materialized into a Leaf: doing so would
// bake in whichever single binding environment happened to build it,
// silently losing the per-index capture bindings every other Match needs.
func (s *MatchSequence) Slice(start, stop, step *big.Int) (*MatchSequence, error) {
	sliced, err := seqnode.NewSliced(s.e.tree, start, stop, step)
	if err != nil {
		return nil, wrapIndexError(err)
	}
	return &MatchSequence{e: &engine{pattern: s.e.pattern, tree: sliced, hasGroupref: s.e.hasGroupref, matcher: s.e.matcher, names: s.e.names}}, nil
}

// Values returns an iterator over every Match in the sequence, in index
// order from 0 to Len().
func (s *MatchSequence) Values() func(yield func(*Match) bool) {
	return func(yield func(*Match) bool) {
		n := s.Len()
		for i := new(big.Int); i.Cmp(n) < 0; i.Add(i, bigOne) {
			m, err := s.At(i)
			if err != nil {
				return
			}
			if !yield(m) {
				return
			}
		}
	}
}
