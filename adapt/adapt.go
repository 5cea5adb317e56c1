package adapt

import (
	"regexp/syntax"

	"github.com/coregx/rxseq/seqnode"
)

// Adapter walks a regexp/syntax.Regexp AST and builds the equivalent
// seqnode tree. One Adapter is used per top-level Adapt call; it is not
// safe for concurrent use.
type Adapter struct {
	cfg     Config
	pattern string

	state anchorState

	// hasGroupref is set the first time a backreference-equivalent Read
	// node is built. Exposed via HasGroupref so the caller (the root
	// package) knows whether to thread a binding environment through
	// Item calls.
	hasGroupref bool

	charset []byte // cfg.Charset with '\n' removed unless cfg.Dotall
	depth   int
}

// New builds an Adapter for pattern (used only for error messages) with
// the given configuration.
func New(pattern string, cfg Config) *Adapter {
	if cfg.Charset == nil {
		cfg.Charset = defaultCharset()
	}
	if cfg.MaxCount == 0 {
		cfg.MaxCount = DefaultMaxCount
	}
	if cfg.MaxRecursionDepth == 0 {
		cfg.MaxRecursionDepth = DefaultMaxRecursionDepth
	}
	return &Adapter{
		cfg:     cfg,
		pattern: pattern,
		charset: activeCharset(cfg.Charset, cfg.Dotall),
	}
}

func activeCharset(charset []byte, dotall bool) []byte {
	if dotall {
		cs := make([]byte, len(charset))
		copy(cs, charset)
		return cs
	}
	cs := make([]byte, 0, len(charset))
	for _, b := range charset {
		if b != '\n' {
			cs = append(cs, b)
		}
	}
	return cs
}

// HasGroupref reports whether the most recent Adapt call built any Read
// node, i.e. whether indexing the resulting tree needs a binding
// environment threaded through.
func (a *Adapter) HasGroupref() bool {
	return a.hasGroupref
}

// Adapt builds the sequence tree for re's top-level node.
func (a *Adapter) Adapt(re *syntax.Regexp) (seqnode.Node, error) {
	a.state = stateStart
	a.hasGroupref = false
	a.depth = 0
	return a.adaptNode(re)
}

func (a *Adapter) adaptNode(re *syntax.Regexp) (seqnode.Node, error) {
	a.depth++
	defer func() { a.depth-- }()
	if a.depth > a.cfg.MaxRecursionDepth {
		return nil, &ParseError{Pattern: a.pattern, Detail: "pattern nesting exceeds maximum recursion depth"}
	}
	if re == nil {
		return seqnode.Empty(), nil
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return seqnode.NewLeaf(nil), nil

	case syntax.OpEmptyMatch:
		// Contributes no observable content; does not move the anchor
		// state machine.
		return seqnode.Empty(), nil

	case syntax.OpLiteral:
		if err := a.applyMatcher(); err != nil {
			return nil, err
		}
		return a.adaptLiteral(re)

	case syntax.OpCharClass:
		if err := a.applyMatcher(); err != nil {
			return nil, err
		}
		return a.adaptCharClass(re)

	case syntax.OpAnyCharNotNL:
		if err := a.applyMatcher(); err != nil {
			return nil, err
		}
		// a.charset already reflects cfg.Dotall, so an explicit (?s)-free
		// dot still picks up '\n' when the caller's Config asked for it,
		// not only when the pattern text itself spells (?s).
		return seqnode.NewLeaf(byteStrings(a.charset)), nil

	case syntax.OpAnyChar:
		if err := a.applyMatcher(); err != nil {
			return nil, err
		}
		// An inline (?s) in the pattern text always matches '\n', regardless
		// of the ambient Config.Dotall setting.
		return seqnode.NewLeaf(byteStrings(a.cfg.Charset)), nil

	case syntax.OpBeginText, syntax.OpBeginLine:
		if err := a.applyAnchor(anchorStart); err != nil {
			return nil, err
		}
		return seqnode.Empty(), nil

	case syntax.OpEndText, syntax.OpEndLine:
		if err := a.applyAnchor(anchorEnd); err != nil {
			return nil, err
		}
		return seqnode.Empty(), nil

	case syntax.OpWordBoundary:
		if err := a.applyAnchor(anchorBoundary); err != nil {
			return nil, err
		}
		return seqnode.Empty(), nil

	case syntax.OpNoWordBoundary:
		if err := a.applyAnchor(anchorNonBoundary); err != nil {
			return nil, err
		}
		return seqnode.Empty(), nil

	case syntax.OpCapture:
		child, err := a.adaptNode(re.Sub0[0])
		if err != nil {
			return nil, err
		}
		if re.Cap <= 0 {
			return child, nil
		}
		return seqnode.NewSave(child, re.Cap), nil

	case syntax.OpConcat:
		children, err := a.adaptChildren(re.Sub)
		if err != nil {
			return nil, err
		}
		return seqnode.NewCombinatorics(children), nil

	case syntax.OpAlternate:
		return a.adaptAlternate(re)

	case syntax.OpStar:
		return a.adaptRepeat(re, 0, -1)

	case syntax.OpPlus:
		return a.adaptRepeat(re, 1, -1)

	case syntax.OpQuest:
		return a.adaptRepeat(re, 0, 1)

	case syntax.OpRepeat:
		return a.adaptRepeat(re, re.Min, re.Max)

	default:
		return nil, &ParseError{Pattern: a.pattern, Detail: "unsupported regular expression construct"}
	}
}

func (a *Adapter) adaptChildren(subs []*syntax.Regexp) ([]seqnode.Node, error) {
	children := make([]seqnode.Node, len(subs))
	for i, s := range subs {
		c, err := a.adaptNode(s)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return children, nil
}

// adaptAlternate adapts each branch independently from the anchor state
// observed just before the alternation; the state left after adapting the
// final branch becomes the adapter's running state. Branches that disagree
// on their resulting anchor state (one ending in $, another not) are not
// tracked per-branch; see DESIGN.md.
func (a *Adapter) adaptAlternate(re *syntax.Regexp) (seqnode.Node, error) {
	saved := a.state
	children := make([]seqnode.Node, len(re.Sub))
	for i, s := range re.Sub {
		a.state = saved
		c, err := a.adaptNode(s)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}
	return seqnode.NewConcatenated(children), nil
}

func (a *Adapter) adaptRepeat(re *syntax.Regexp, lo, hi int) (seqnode.Node, error) {
	if err := a.applyMatcher(); err != nil {
		return nil, err
	}
	if hi < 0 || hi > a.cfg.MaxCount {
		hi = a.cfg.MaxCount
	}
	if hi < lo {
		hi = lo
	}
	child, err := a.adaptNode(re.Sub0[0])
	if err != nil {
		return nil, err
	}
	return seqnode.NewRepetitive(child, lo, hi), nil
}

func (a *Adapter) adaptLiteral(re *syntax.Regexp) (seqnode.Node, error) {
	// regexp/syntax merges consecutive literal characters into one
	// OpLiteral node, so its runes spell a single string, not alternatives.
	buf := make([]byte, 0, len(re.Rune))
	for _, r := range re.Rune {
		if r < 0 || r > 255 {
			// outside the configured single-byte charset: nothing matches
			return seqnode.NewLeaf(nil), nil
		}
		buf = append(buf, byte(r))
	}
	return seqnode.NewLeaf([]string{string(buf)}), nil
}

func (a *Adapter) adaptCharClass(re *syntax.Regexp) (seqnode.Node, error) {
	inClass := make(map[byte]bool)
	for i := 0; i+1 < len(re.Rune); i += 2 {
		lo, hi := re.Rune[i], re.Rune[i+1]
		if lo < 0 {
			lo = 0
		}
		if hi > 255 {
			hi = 255
		}
		for r := lo; r <= hi; r++ {
			inClass[byte(r)] = true
		}
	}
	items := make([]string, 0, len(inClass))
	for _, b := range a.cfg.Charset {
		if inClass[b] {
			items = append(items, string([]byte{b}))
		}
	}
	return seqnode.NewLeaf(items), nil
}

func byteStrings(bs []byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string([]byte{b})
	}
	return out
}

// Backreference builds a bare Read node for capture-group id. Go's
// regexp/syntax parser never emits a backreference operator (RE2-derived
// parsers reject \1 syntax outright), so this is not reachable from
// Adapt. It exists so callers and tests can exercise the Save/Read
// machinery end to end by constructing a `([abc])-\1`-shaped tree
// directly instead of parsing it.
func Backreference(id int) seqnode.Node {
	return seqnode.NewRead(id)
}
