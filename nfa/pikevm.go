package nfa

import (
	"github.com/coregx/rxseq/internal/conv"
	"github.com/coregx/rxseq/internal/sparse"
)

// MatchWithCaptures is a whole-string match including capture-group byte
// offsets. Captures[i] is the [start, end] pair for group i (group 0 is
// the whole match); a group that never fired reports [-1, -1].
type MatchWithCaptures struct {
	Start    int
	End      int
	Captures [][]int
}

// PikeVM executes a compiled NFA over a haystack, breadth-first with one
// thread list per input position, so runtime is bounded by states × input
// length regardless of pattern nesting. Threads carry their own capture
// slots, copied on write.
type PikeVM struct {
	nfa      *NFA
	numSlots int
}

// NewPikeVM creates a PikeVM for the given NFA.
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{nfa: n, numSlots: 2 * (n.CaptureCount() + 1)}
}

// thread is one NFA state plus the capture slots accumulated on the way
// to it. Slots hold byte positions, -1 when unset.
type thread struct {
	id    StateID
	slots []int
}

// threadList is a priority-ordered list of threads, deduplicated by state
// id: the first thread to reach a state wins, preserving the compiler's
// preference order (greedy vs non-greedy splits).
type threadList struct {
	seen    *sparse.SparseSet
	threads []thread
}

func newThreadList(numStates int) *threadList {
	return &threadList{seen: sparse.NewSparseSet(stateCapacity(numStates))}
}

func stateCapacity(numStates int) uint32 {
	if numStates == 0 {
		return 1
	}
	return conv.IntToUint32(numStates)
}

func (l *threadList) clear() {
	l.seen.Clear()
	l.threads = l.threads[:0]
}

// IsMatch reports whether the entire haystack matches.
func (p *PikeVM) IsMatch(haystack []byte) bool {
	return p.SearchWithCaptures(haystack) != nil
}

// SearchWithCaptures runs the automaton over the whole haystack, anchored
// at both ends, and returns the highest-priority match with its capture
// offsets, or nil if the haystack does not match.
func (p *PikeVM) SearchWithCaptures(haystack []byte) *MatchWithCaptures {
	if p.nfa.Len() == 0 {
		return nil
	}

	curr := newThreadList(p.nfa.Len())
	next := newThreadList(p.nfa.Len())

	slots := make([]int, p.numSlots)
	for i := range slots {
		slots[i] = -1
	}
	p.addThread(curr, p.nfa.start, 0, haystack, slots)

	for pos := 0; pos < len(haystack); pos++ {
		b := haystack[pos]
		next.clear()
		for _, t := range curr.threads {
			s := p.nfa.states[t.id]
			if s.kind == kindByteRange && s.lo <= b && b <= s.hi {
				p.addThread(next, s.next, pos+1, haystack, t.slots)
			}
		}
		curr, next = next, curr
		if len(curr.threads) == 0 {
			return nil
		}
	}

	for _, t := range curr.threads {
		if p.nfa.states[t.id].kind == kindMatch {
			return p.buildMatch(len(haystack), t.slots)
		}
	}
	return nil
}

// addThread follows the epsilon closure from id at pos, appending every
// reachable byte-consuming or match state to list in preference order.
// Save states clone the slot array before writing, so sibling threads
// never observe each other's captures.
func (p *PikeVM) addThread(list *threadList, id StateID, pos int, haystack []byte, slots []int) {
	if id == InvalidState || list.seen.Contains(uint32(id)) {
		return
	}
	list.seen.Insert(uint32(id))

	s := p.nfa.states[id]
	switch s.kind {
	case kindByteRange, kindMatch:
		list.threads = append(list.threads, thread{id: id, slots: slots})

	case kindEpsilon:
		p.addThread(list, s.next, pos, haystack, slots)

	case kindSplit:
		p.addThread(list, s.next, pos, haystack, slots)
		p.addThread(list, s.alt, pos, haystack, slots)

	case kindSave:
		cloned := make([]int, len(slots))
		copy(cloned, slots)
		if s.slot < len(cloned) {
			cloned[s.slot] = pos
		}
		p.addThread(list, s.next, pos, haystack, cloned)

	case kindAssert:
		if p.assertHolds(s.assert, pos, haystack) {
			p.addThread(list, s.next, pos, haystack, slots)
		}
	}
}

func (p *PikeVM) assertHolds(kind assertKind, pos int, haystack []byte) bool {
	switch kind {
	case assertBeginText:
		return pos == 0
	case assertEndText:
		return pos == len(haystack)
	case assertBeginLine:
		return pos == 0 || haystack[pos-1] == '\n'
	case assertEndLine:
		return pos == len(haystack) || haystack[pos] == '\n'
	case assertWordBoundary:
		return wordBoundaryAt(pos, haystack)
	case assertNoWordBoundary:
		return !wordBoundaryAt(pos, haystack)
	}
	return false
}

func wordBoundaryAt(pos int, haystack []byte) bool {
	before := pos > 0 && isWordByte(haystack[pos-1])
	after := pos < len(haystack) && isWordByte(haystack[pos])
	return before != after
}

func (p *PikeVM) buildMatch(length int, slots []int) *MatchWithCaptures {
	caps := make([][]int, p.nfa.CaptureCount()+1)
	caps[0] = []int{0, length}
	for g := 1; g <= p.nfa.CaptureCount(); g++ {
		start, end := slots[2*g], slots[2*g+1]
		if start < 0 || end < 0 {
			caps[g] = []int{-1, -1}
			continue
		}
		caps[g] = []int{start, end}
	}
	return &MatchWithCaptures{Start: 0, End: length, Captures: caps}
}
