// Package nfa provides a Thompson NFA compiled from regexp/syntax.Regexp
// patterns, executed by a PikeVM. The automaton is byte-oriented: every
// transition consumes exactly one byte, and character classes are clamped
// to the single-byte range. It exists to answer one question — does a
// whole string match the pattern — with capture-group offsets on the side.
package nfa

import "github.com/coregx/rxseq/internal/conv"

// StateID identifies a state within an NFA's state array.
type StateID uint32

// InvalidState is the sentinel for an unpatched or absent transition.
const InvalidState = StateID(^uint32(0))

type stateKind uint8

const (
	// kindByteRange consumes one byte in [lo, hi] and moves to next.
	kindByteRange stateKind = iota

	// kindSplit forks into next (preferred) and alt, consuming nothing.
	kindSplit

	// kindEpsilon moves to next unconditionally, consuming nothing. Used
	// as the patchable tail of every compiled fragment.
	kindEpsilon

	// kindSave records the current input position into a capture slot,
	// then moves to next.
	kindSave

	// kindAssert checks a zero-width condition at the current position,
	// then moves to next.
	kindAssert

	// kindMatch accepts.
	kindMatch
)

// assertKind enumerates the zero-width conditions a kindAssert state can
// check.
type assertKind uint8

const (
	assertBeginText assertKind = iota
	assertEndText
	assertBeginLine
	assertEndLine
	assertWordBoundary
	assertNoWordBoundary
)

type state struct {
	kind   stateKind
	lo, hi byte
	slot   int
	assert assertKind
	next   StateID
	alt    StateID
}

// NFA is a compiled automaton: an immutable state array, a start state,
// and the capture-group metadata needed to interpret save slots.
type NFA struct {
	states  []state
	start   StateID
	numCaps int
	names   []string
}

// Start returns the automaton's start state.
func (n *NFA) Start() StateID {
	return n.start
}

// Len returns the number of states.
func (n *NFA) Len() int {
	return len(n.states)
}

// CaptureCount returns the number of capturing groups, excluding the
// implicit whole-match group 0.
func (n *NFA) CaptureCount() int {
	return n.numCaps
}

// SubexpNames returns the names of the capturing groups, indexed by group
// number. Entry 0 is always the empty string, as is any unnamed group.
func (n *NFA) SubexpNames() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// isWordByte reports whether b belongs to the \w class used by word
// boundary assertions.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// stateID narrows an array index to a StateID, panicking on overflow (a
// pattern large enough to overflow uint32 states is rejected long before
// this by the compiler's state budget).
func stateID(i int) StateID {
	return StateID(conv.IntToUint32(i))
}
