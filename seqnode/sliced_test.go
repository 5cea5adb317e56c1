package seqnode

import (
	"math/big"
	"testing"
)

func abcdef() Node {
	return NewLeaf([]string{"a", "b", "c", "d", "e", "f"})
}

func collectSlice(t *testing.T, s *Sliced) []string {
	t.Helper()
	n := s.Len()
	out := make([]string, 0)
	for i := new(big.Int); i.Cmp(n) < 0; i.Add(i, bigOne) {
		v, err := s.Item(i, nil)
		if err != nil {
			t.Fatalf("Item(%s): %v", i, err)
		}
		out = append(out, v)
	}
	return out
}

func mustSlice(t *testing.T, raw Node, start, stop, step *big.Int) *Sliced {
	t.Helper()
	s, err := NewSliced(raw, start, stop, step)
	if err != nil {
		t.Fatalf("NewSliced: %v", err)
	}
	return s
}

func TestSlicedStep2(t *testing.T) {
	s := mustSlice(t, abcdef(), nil, nil, big.NewInt(2))
	got := collectSlice(t, s)
	want := []string{"a", "c", "e"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSlicedReverse(t *testing.T) {
	s := mustSlice(t, abcdef(), nil, nil, big.NewInt(-1))
	got := collectSlice(t, s)
	want := []string{"f", "e", "d", "c", "b", "a"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSlicedZeroStepIsValueError(t *testing.T) {
	_, err := NewSliced(abcdef(), nil, nil, big.NewInt(0))
	if err == nil {
		t.Fatal("expected a ValueError for a zero step")
	}
	if _, ok := err.(*ValueError); !ok {
		t.Fatalf("expected *ValueError, got %T", err)
	}
}

func TestSlicedEmptyRegardlessOfStepSign(t *testing.T) {
	for _, step := range []int64{1, -1, 3, -3} {
		s := mustSlice(t, abcdef(), big.NewInt(2), big.NewInt(2), big.NewInt(step))
		if s.Len().Sign() != 0 {
			t.Errorf("step=%d: Len() = %s, want 0", step, s.Len())
		}
	}
}

func TestSlicedNegativeBounds(t *testing.T) {
	// [-2:] over abcdef -> e, f
	s := mustSlice(t, abcdef(), big.NewInt(-2), nil, nil)
	got := collectSlice(t, s)
	want := []string{"e", "f"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSlicedComposition(t *testing.T) {
	// S[a:b:c][d:e:f] should match direct combined-index application.
	// outer = raw[::2] = [a, c, e]; inner = outer[1::-1] walks outer
	// from index 1 down to (not including) index -1, i.e. [c, a].
	raw := abcdef()
	outer := mustSlice(t, raw, nil, nil, big.NewInt(2))
	inner := mustSlice(t, outer, big.NewInt(1), nil, big.NewInt(-1))
	got := collectSlice(t, inner)
	want := []string{"c", "a"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSlicedOutOfRangeClampsRatherThanErrors(t *testing.T) {
	// Bounds beyond the raw sequence's length clamp instead of raising
	// (unlike direct indexing, which raises IndexError).
	s := mustSlice(t, abcdef(), big.NewInt(-100), big.NewInt(100), nil)
	got := collectSlice(t, s)
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
