package adapt

import (
	"math/big"
	"regexp/syntax"
	"testing"
)

const parseFlags = syntax.Perl &^ syntax.UnicodeGroups

func mustParse(t *testing.T, pattern string) *syntax.Regexp {
	t.Helper()
	re, err := syntax.Parse(pattern, parseFlags)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	return re
}

func collectAll(t *testing.T, pattern string, cfg Config) []string {
	t.Helper()
	re := mustParse(t, pattern)
	a := New(pattern, cfg)
	tree, err := a.Adapt(re)
	if err != nil {
		t.Fatalf("Adapt(%q): %v", pattern, err)
	}
	n := tree.Len()
	var out []string
	for i := new(big.Int); i.Cmp(n) < 0; i.Add(i, big.NewInt(1)) {
		var env map[int]string
		if a.HasGroupref() {
			env = map[int]string{}
		}
		s, err := tree.Item(i, env)
		if err != nil {
			t.Fatalf("Item(%s): %v", i, err)
		}
		out = append(out, s)
	}
	return out
}

func TestAdaptNestedAlternation(t *testing.T) {
	// 1(234?|49?) -> ["123","1234","14","149"]
	got := collectAll(t, `1(234?|49?)`, DefaultConfig())
	want := []string{"123", "1234", "14", "149"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAdaptCharClass(t *testing.T) {
	got := collectAll(t, `[abcdef]`, DefaultConfig())
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAdaptAlternationWithRepeat(t *testing.T) {
	// x|[a-z]{1,5}: the bare branch enumerates before the repeat.
	cfg := DefaultConfig()
	re := mustParse(t, `x|[a-z]{1,5}`)
	a := New(`x|[a-z]{1,5}`, cfg)
	tree, err := a.Adapt(re)
	if err != nil {
		t.Fatalf("Adapt: %v", err)
	}
	first, _ := tree.Item(big.NewInt(0), nil)
	if first != "x" {
		t.Errorf("Item(0) = %q, want %q", first, "x")
	}
	second, _ := tree.Item(big.NewInt(1), nil)
	if second != "a" {
		t.Errorf("Item(1) = %q, want %q", second, "a")
	}
	last, _ := tree.Item(big.NewInt(-1), nil)
	if last != "zzzzz" {
		t.Errorf("Item(-1) = %q, want %q", last, "zzzzz")
	}
}

func TestAdaptCaptureGroup(t *testing.T) {
	got := collectAll(t, `(a)(b)`, DefaultConfig())
	want := []string{"ab"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAdaptMaxCountClampsUnbounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCount = 3
	re := mustParse(t, `a*`)
	a := New(`a*`, cfg)
	tree, err := a.Adapt(re)
	if err != nil {
		t.Fatalf("Adapt: %v", err)
	}
	// powersum(1, 0, 3) = 4 (each power of 1 contributes exactly 1)
	if tree.Len().Cmp(big.NewInt(4)) != 0 {
		t.Errorf("Len() = %s, want 4", tree.Len())
	}
}

func TestAdaptDotallIncludesNewline(t *testing.T) {
	cfg := Config{Charset: []byte{'a', '\n', 'b'}, Dotall: true, MaxCount: DefaultMaxCount, MaxRecursionDepth: DefaultMaxRecursionDepth}
	got := collectAll(t, `.`, cfg)
	if len(got) != 3 {
		t.Fatalf("dotall charset len = %d, want 3 (got %v)", len(got), got)
	}
}

func TestAdaptDotExcludesNewlineByDefault(t *testing.T) {
	cfg := Config{Charset: []byte{'a', '\n', 'b'}, MaxCount: DefaultMaxCount, MaxRecursionDepth: DefaultMaxRecursionDepth}
	got := collectAll(t, `.`, cfg)
	want := []string{"a", "b"}
	if !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAdaptUnicodeGroupsRejected(t *testing.T) {
	// regexp/syntax rejects \p{L} outright once UnicodeGroups is
	// disabled in parseFlags, satisfying the "unicode flags are a parse
	// error" requirement at the syntax.Parse layer rather than adapt's.
	if _, err := syntax.Parse(`\p{L}`, parseFlags); err == nil {
		t.Error(`syntax.Parse("\\p{L}") with UnicodeGroups disabled: expected an error`)
	}
}

func TestAdaptRecursionDepthExceededIsParseError(t *testing.T) {
	// Every op regexp/syntax emits is handled, so the unsupported-construct
	// branch is unreachable from a parsed pattern; this checks the other
	// adapter failure, a deliberately pathological recursion-depth cap.
	cfg := DefaultConfig()
	cfg.MaxRecursionDepth = 1
	re := mustParse(t, `(a(b(c)))`)
	a := New(`(a(b(c)))`, cfg)
	_, err := a.Adapt(re)
	if err == nil {
		t.Fatal("expected a ParseError when recursion depth is exceeded")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestAdaptBackreferenceHelper(t *testing.T) {
	// Checks the non-regexp/syntax entry point documented on Backreference
	// yields a node of positive length; the full `([abc])-\1`-shaped tree
	// is exercised in the root package's TestCaptureGroupBackreference.
	node := Backreference(1)
	if node.Len().Sign() != 1 {
		t.Fatalf("Backreference(1).Len() = %s, want a positive length", node.Len())
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
