package nfa

import "testing"

func TestIsMatchWholeString(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		haystack string
		want     bool
	}{
		{"literal match", `abc`, "abc", true},
		{"literal prefix only", `abc`, "abcd", false},
		{"literal suffix only", `abc`, "xabc", false},
		{"empty pattern empty input", ``, "", true},
		{"empty pattern nonempty input", ``, "a", false},
		{"star empty", `a*`, "", true},
		{"star many", `a*`, "aaaa", true},
		{"star wrong byte", `a*`, "aab", false},
		{"plus empty", `a+`, "", false},
		{"plus one", `a+`, "a", true},
		{"quest zero", `ab?c`, "ac", true},
		{"quest one", `ab?c`, "abc", true},
		{"quest two", `ab?c`, "abbc", false},
		{"class in", `[a-c]`, "b", true},
		{"class out", `[a-c]`, "d", false},
		{"negated class", `[^a]`, "b", true},
		{"negated class rejects", `[^a]`, "a", false},
		{"alternation first", `cat|dog`, "cat", true},
		{"alternation second", `cat|dog`, "dog", true},
		{"alternation neither", `cat|dog`, "cow", false},
		{"bounded repeat low", `a{2,4}`, "aa", true},
		{"bounded repeat high", `a{2,4}`, "aaaa", true},
		{"bounded repeat under", `a{2,4}`, "a", false},
		{"bounded repeat over", `a{2,4}`, "aaaaa", false},
		{"dot star", `a.*c`, "aXXXc", true},
		{"dot excludes newline", `a.c`, "a\nc", false},
		{"anchors match whole", `^abc$`, "abc", true},
		{"word boundary inner", `\ba\b`, "a", true},
		{"nested groups", `(a(b|c))+`, "abac", true},
		{"high byte class", `[\x80-\xff]`, "\xff", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewPikeVM(mustCompile(t, tt.pattern))
			if got := vm.IsMatch([]byte(tt.haystack)); got != tt.want {
				t.Errorf("IsMatch(%q) = %v, want %v", tt.haystack, got, tt.want)
			}
		})
	}
}

func TestDotNewlineConfig(t *testing.T) {
	cfg := DefaultCompilerConfig()
	cfg.DotNewline = true
	n, err := NewCompiler(cfg).Compile(`a.c`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !NewPikeVM(n).IsMatch([]byte("a\nc")) {
		t.Error("IsMatch(a\\nc) with DotNewline = true: got false, want true")
	}
}

func TestSearchWithCapturesOffsets(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		haystack string
		want     [][]int
	}{
		{
			"two groups",
			`(a+)(b+)`,
			"aabbb",
			[][]int{{0, 5}, {0, 2}, {2, 5}},
		},
		{
			"unfired alternation branch",
			`(a)|(b)`,
			"b",
			[][]int{{0, 1}, {-1, -1}, {0, 1}},
		},
		{
			"greedy split",
			`(a*)(a*)`,
			"aa",
			[][]int{{0, 2}, {0, 2}, {2, 2}},
		},
		{
			"non-greedy split",
			`(a*?)(a*)`,
			"aa",
			[][]int{{0, 2}, {0, 0}, {0, 2}},
		},
		{
			"repeated group keeps last",
			`(ab)+`,
			"abab",
			[][]int{{0, 4}, {2, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := NewPikeVM(mustCompile(t, tt.pattern))
			m := vm.SearchWithCaptures([]byte(tt.haystack))
			if m == nil {
				t.Fatalf("SearchWithCaptures(%q) = nil, want match", tt.haystack)
			}
			if m.Start != 0 || m.End != len(tt.haystack) {
				t.Errorf("match span = [%d, %d], want [0, %d]", m.Start, m.End, len(tt.haystack))
			}
			if len(m.Captures) != len(tt.want) {
				t.Fatalf("Captures = %v, want %v", m.Captures, tt.want)
			}
			for g, w := range tt.want {
				if m.Captures[g][0] != w[0] || m.Captures[g][1] != w[1] {
					t.Errorf("Captures[%d] = %v, want %v", g, m.Captures[g], w)
				}
			}
		})
	}
}

func TestSearchWithCapturesNoMatch(t *testing.T) {
	vm := NewPikeVM(mustCompile(t, `(a)(b)`))
	if m := vm.SearchWithCaptures([]byte("ax")); m != nil {
		t.Errorf("SearchWithCaptures(\"ax\") = %v, want nil", m)
	}
}

func TestEmptyClassNeverMatches(t *testing.T) {
	vm := NewPikeVM(mustCompile(t, `[^\x00-\xff]`))
	for _, h := range []string{"", "a", "\x00", "\xff"} {
		if vm.IsMatch([]byte(h)) {
			t.Errorf("IsMatch(%q) = true for the empty class, want false", h)
		}
	}
}

func TestEpsilonLoopTerminates(t *testing.T) {
	// (a*)* can loop through empty iterations; the per-position dedup must
	// cut the cycle instead of spinning.
	vm := NewPikeVM(mustCompile(t, `(a*)*`))
	if !vm.IsMatch([]byte("")) {
		t.Error("IsMatch(\"\") = false, want true")
	}
	if !vm.IsMatch([]byte("aaa")) {
		t.Error("IsMatch(\"aaa\") = false, want true")
	}
	if vm.IsMatch([]byte("b")) {
		t.Error("IsMatch(\"b\") = true, want false")
	}
}

func TestWordBoundaryPositions(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     bool
	}{
		{`\bab\b`, "ab", true},
		{`a\bb`, "ab", false},
		{`a\Bb`, "ab", true},
		{`\Ba`, "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			vm := NewPikeVM(mustCompile(t, tt.pattern))
			if got := vm.IsMatch([]byte(tt.haystack)); got != tt.want {
				t.Errorf("IsMatch(%q) = %v, want %v", tt.haystack, got, tt.want)
			}
		})
	}
}
