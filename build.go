package rxseq

import (
	"regexp/syntax"

	"github.com/coregx/rxseq/adapt"
	"github.com/coregx/rxseq/nfa"
	"github.com/coregx/rxseq/seqnode"
)

// parseFlags omits UnicodeGroups: Go's regexp/syntax otherwise accepts
// \p{L}-style Unicode property classes, which have no meaning against this
// module's single-byte charset. Disabling the flag makes such patterns
// fail to parse at all, satisfying the "unicode flags are a parse error"
// requirement without any extra bookkeeping.
const parseFlags = syntax.Perl &^ syntax.UnicodeGroups

// build parses pattern, adapts it into a sequence tree, and compiles a
// fully-anchored matcher for membership, returning the matcher's
// capture-group names alongside it. It is the
// shared core behind Compile/CompileMatch and their *WithConfig variants.
func build(pattern string, cfg Config) (tree seqnode.Node, hasGroupref bool, matcher *nfa.PikeVM, names []string, err error) {
	re, perr := syntax.Parse(pattern, parseFlags)
	if perr != nil {
		return nil, false, nil, nil, wrapParseError(pattern, perr)
	}
	if hasFoldCase(re) {
		return nil, false, nil, nil, &ParseError{Pattern: pattern, Detail: "case-insensitive matching is not supported"}
	}

	adapterCfg := adapt.Config{
		Charset:           cfg.Charset,
		Dotall:            cfg.Dotall,
		MaxCount:          cfg.MaxCount,
		Relaxed:           cfg.Relaxed,
		MaxRecursionDepth: cfg.MaxRecursionDepth,
	}
	a := adapt.New(pattern, adapterCfg)
	tree, aerr := a.Adapt(re)
	if aerr != nil {
		return nil, false, nil, nil, wrapParseError(pattern, aerr)
	}

	m, names, cerr := compileMatcher(re, cfg)
	if cerr != nil {
		return nil, false, nil, nil, wrapParseError(pattern, cerr)
	}

	return tree, a.HasGroupref(), m, names, nil
}

// hasFoldCase reports whether any node in the AST carries the
// case-insensitive flag, i.e. the pattern used (?i) somewhere.
func hasFoldCase(re *syntax.Regexp) bool {
	if re == nil {
		return false
	}
	if re.Flags&syntax.FoldCase != 0 {
		return true
	}
	for _, sub := range re.Sub {
		if hasFoldCase(sub) {
			return true
		}
	}
	return false
}

// compileMatcher builds a fully-anchored PikeVM over pattern's already
// parsed AST, wrapping it in an explicit start/end anchor pair so that
// Search results are always whole-string matches. This is the matcher
// membership tests and match mode defer to.
func compileMatcher(re *syntax.Regexp, cfg Config) (*nfa.PikeVM, []string, error) {
	wrapped := &syntax.Regexp{
		Op:  syntax.OpConcat,
		Sub: []*syntax.Regexp{{Op: syntax.OpBeginText}, re, {Op: syntax.OpEndText}},
	}

	compilerCfg := nfa.DefaultCompilerConfig()
	compilerCfg.DotNewline = cfg.Dotall
	if cfg.MaxRecursionDepth > 0 {
		compilerCfg.MaxRecursionDepth = cfg.MaxRecursionDepth
	}

	compiler := nfa.NewCompiler(compilerCfg)
	compiled, err := compiler.CompileRegexp(wrapped)
	if err != nil {
		return nil, nil, err
	}
	return nfa.NewPikeVM(compiled), compiled.SubexpNames(), nil
}

// fullMatch reports whether s is matched end to end by matcher, and if so
// returns the per-group [start,end] byte-offset pairs (group 0 first).
func fullMatch(matcher *nfa.PikeVM, s string) (bool, [][]int) {
	res := matcher.SearchWithCaptures([]byte(s))
	if res == nil || res.Start != 0 || res.End != len(s) {
		return false, nil
	}
	return true, res.Captures
}
