package nfa

import "regexp/syntax"

// CompilerConfig controls NFA compilation.
type CompilerConfig struct {
	// DotNewline determines whether '.' matches '\n'.
	DotNewline bool

	// MaxRecursionDepth bounds AST recursion during compilation.
	MaxRecursionDepth int

	// MaxStates bounds the size of the compiled state array; repeat
	// expansion can otherwise blow up quadratically on adversarial
	// patterns.
	MaxStates int
}

// DefaultCompilerConfig returns the default compilation configuration.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		DotNewline:        false,
		MaxRecursionDepth: 100,
		MaxStates:         1 << 20,
	}
}

// Compiler turns a parsed regexp/syntax.Regexp into an NFA: one case per
// syntax.Op, dispatched through a single recursive switch. Each fragment
// is returned as a (start, end) state pair whose end is an epsilon state
// patched into whatever follows.
type Compiler struct {
	config CompilerConfig

	states  []state
	depth   int
	numCaps int
	names   map[int]string
}

// NewCompiler creates a compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	if config.MaxStates == 0 {
		config.MaxStates = DefaultCompilerConfig().MaxStates
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a compiler with DefaultCompilerConfig.
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern with Perl syntax and compiles it.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	n, err := c.CompileRegexp(re)
	if err != nil {
		if ce, ok := err.(*CompileError); ok && ce.Pattern == "" {
			ce.Pattern = pattern
		}
		return nil, err
	}
	return n, nil
}

// CompileRegexp compiles an already-parsed AST.
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	c.states = c.states[:0]
	c.depth = 0
	c.numCaps = 0
	c.names = make(map[int]string)

	start, end, err := c.compileNode(re)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	match := c.addState(state{kind: kindMatch})
	c.patch(end, match)

	names := make([]string, c.numCaps+1)
	for id, name := range c.names {
		if id >= 1 && id <= c.numCaps {
			names[id] = name
		}
	}

	states := make([]state, len(c.states))
	copy(states, c.states)
	return &NFA{states: states, start: start, numCaps: c.numCaps, names: names}, nil
}

func (c *Compiler) addState(s state) StateID {
	c.states = append(c.states, s)
	return stateID(len(c.states) - 1)
}

// newEpsilon allocates the patchable tail of a fragment.
func (c *Compiler) newEpsilon() StateID {
	return c.addState(state{kind: kindEpsilon, next: InvalidState})
}

// patch points the fragment tail at end to target.
func (c *Compiler) patch(end, target StateID) {
	c.states[end].next = target
}

func (c *Compiler) compileNode(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return 0, 0, ErrTooComplex
	}
	if len(c.states) > c.config.MaxStates {
		return 0, 0, ErrTooComplex
	}

	switch re.Op {
	case syntax.OpEmptyMatch:
		return c.compileEmpty()

	case syntax.OpNoMatch:
		return c.compileNoMatch()

	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune)

	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)

	case syntax.OpAnyChar:
		return c.compileAny(true)

	case syntax.OpAnyCharNotNL:
		return c.compileAny(c.config.DotNewline)

	case syntax.OpBeginText:
		return c.compileAssert(assertBeginText)

	case syntax.OpEndText:
		return c.compileAssert(assertEndText)

	case syntax.OpBeginLine:
		return c.compileAssert(assertBeginLine)

	case syntax.OpEndLine:
		return c.compileAssert(assertEndLine)

	case syntax.OpWordBoundary:
		return c.compileAssert(assertWordBoundary)

	case syntax.OpNoWordBoundary:
		return c.compileAssert(assertNoWordBoundary)

	case syntax.OpCapture:
		return c.compileCapture(re)

	case syntax.OpConcat:
		return c.compileConcat(re.Sub)

	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)

	case syntax.OpStar:
		return c.compileStar(re.Sub0[0], re.Flags&syntax.NonGreedy != 0)

	case syntax.OpPlus:
		return c.compilePlus(re.Sub0[0], re.Flags&syntax.NonGreedy != 0)

	case syntax.OpQuest:
		return c.compileQuest(re.Sub0[0], re.Flags&syntax.NonGreedy != 0)

	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub0[0], re.Min, re.Max, re.Flags&syntax.NonGreedy != 0)

	default:
		return 0, 0, ErrUnsupported
	}
}

func (c *Compiler) compileEmpty() (StateID, StateID, error) {
	e := c.newEpsilon()
	return e, e, nil
}

// compileNoMatch builds a byte range that no byte satisfies.
func (c *Compiler) compileNoMatch() (StateID, StateID, error) {
	end := c.newEpsilon()
	s := c.addState(state{kind: kindByteRange, lo: 1, hi: 0, next: end})
	return s, end, nil
}

func (c *Compiler) compileLiteral(runes []rune) (StateID, StateID, error) {
	if len(runes) == 0 {
		return c.compileEmpty()
	}
	end := c.newEpsilon()
	var first, prev StateID
	for i, r := range runes {
		if r < 0 || r > 0xFF {
			return 0, 0, ErrUnsupported
		}
		b := byte(r)
		s := c.addState(state{kind: kindByteRange, lo: b, hi: b, next: InvalidState})
		if i == 0 {
			first = s
		} else {
			c.states[prev].next = s
		}
		prev = s
	}
	c.states[prev].next = end
	return first, end, nil
}

// compileCharClass builds a split chain over the class's byte ranges.
// Ranges are clamped to the single-byte window; a class left empty after
// clamping matches nothing.
func (c *Compiler) compileCharClass(ranges []rune) (StateID, StateID, error) {
	type byteRange struct{ lo, hi byte }
	var brs []byteRange
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if hi < 0 || lo > 0xFF {
			continue
		}
		if lo < 0 {
			lo = 0
		}
		if hi > 0xFF {
			hi = 0xFF
		}
		brs = append(brs, byteRange{lo: byte(lo), hi: byte(hi)})
	}
	if len(brs) == 0 {
		return c.compileNoMatch()
	}

	end := c.newEpsilon()
	states := make([]StateID, len(brs))
	for i, br := range brs {
		states[i] = c.addState(state{kind: kindByteRange, lo: br.lo, hi: br.hi, next: end})
	}
	start := states[len(states)-1]
	for i := len(states) - 2; i >= 0; i-- {
		start = c.addState(state{kind: kindSplit, next: states[i], alt: start})
	}
	return start, end, nil
}

func (c *Compiler) compileAny(includeNL bool) (StateID, StateID, error) {
	if includeNL {
		return c.compileCharClass([]rune{0, 0xFF})
	}
	return c.compileCharClass([]rune{0, '\n' - 1, '\n' + 1, 0xFF})
}

func (c *Compiler) compileAssert(kind assertKind) (StateID, StateID, error) {
	end := c.newEpsilon()
	s := c.addState(state{kind: kindAssert, assert: kind, next: end})
	return s, end, nil
}

func (c *Compiler) compileCapture(re *syntax.Regexp) (StateID, StateID, error) {
	if re.Cap <= 0 {
		return c.compileNode(re.Sub0[0])
	}
	if re.Cap > c.numCaps {
		c.numCaps = re.Cap
	}
	if re.Name != "" {
		c.names[re.Cap] = re.Name
	}

	start, end, err := c.compileNode(re.Sub0[0])
	if err != nil {
		return 0, 0, err
	}
	open := c.addState(state{kind: kindSave, slot: 2 * re.Cap, next: start})
	tail := c.newEpsilon()
	closeSave := c.addState(state{kind: kindSave, slot: 2*re.Cap + 1, next: tail})
	c.patch(end, closeSave)
	return open, tail, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (StateID, StateID, error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	var start, end StateID
	for i, sub := range subs {
		s, e, err := c.compileNode(sub)
		if err != nil {
			return 0, 0, err
		}
		if i == 0 {
			start = s
		} else {
			c.patch(end, s)
		}
		end = e
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (StateID, StateID, error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	end := c.newEpsilon()
	starts := make([]StateID, len(subs))
	for i, sub := range subs {
		s, e, err := c.compileNode(sub)
		if err != nil {
			return 0, 0, err
		}
		c.patch(e, end)
		starts[i] = s
	}
	start := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		start = c.addState(state{kind: kindSplit, next: starts[i], alt: start})
	}
	return start, end, nil
}

func (c *Compiler) compileStar(sub *syntax.Regexp, nonGreedy bool) (StateID, StateID, error) {
	start, end, err := c.compileNode(sub)
	if err != nil {
		return 0, 0, err
	}
	tail := c.newEpsilon()
	var split StateID
	if nonGreedy {
		split = c.addState(state{kind: kindSplit, next: tail, alt: start})
	} else {
		split = c.addState(state{kind: kindSplit, next: start, alt: tail})
	}
	c.patch(end, split)
	return split, tail, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp, nonGreedy bool) (StateID, StateID, error) {
	start, end, err := c.compileNode(sub)
	if err != nil {
		return 0, 0, err
	}
	tail := c.newEpsilon()
	var split StateID
	if nonGreedy {
		split = c.addState(state{kind: kindSplit, next: tail, alt: start})
	} else {
		split = c.addState(state{kind: kindSplit, next: start, alt: tail})
	}
	c.patch(end, split)
	return start, tail, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp, nonGreedy bool) (StateID, StateID, error) {
	start, end, err := c.compileNode(sub)
	if err != nil {
		return 0, 0, err
	}
	tail := c.newEpsilon()
	c.patch(end, tail)
	var split StateID
	if nonGreedy {
		split = c.addState(state{kind: kindSplit, next: tail, alt: start})
	} else {
		split = c.addState(state{kind: kindSplit, next: start, alt: tail})
	}
	return split, tail, nil
}

// compileRepeat expands {min,max} into min mandatory copies followed by
// either a star (max < 0) or max-min optional copies. Copies are compiled
// fresh each time: fragments cannot be shared, since their tails are
// patched in place.
func (c *Compiler) compileRepeat(sub *syntax.Regexp, minCount, maxCount int, nonGreedy bool) (StateID, StateID, error) {
	if maxCount >= 0 && maxCount < minCount {
		return 0, 0, ErrUnsupported
	}

	var start, end StateID
	have := false
	link := func(s, e StateID) {
		if !have {
			start, end, have = s, e, true
			return
		}
		c.patch(end, s)
		end = e
	}

	for i := 0; i < minCount; i++ {
		s, e, err := c.compileNode(sub)
		if err != nil {
			return 0, 0, err
		}
		link(s, e)
	}

	if maxCount < 0 {
		s, e, err := c.compileStar(sub, nonGreedy)
		if err != nil {
			return 0, 0, err
		}
		link(s, e)
	} else {
		for i := minCount; i < maxCount; i++ {
			s, e, err := c.compileQuest(sub, nonGreedy)
			if err != nil {
				return 0, 0, err
			}
			link(s, e)
		}
	}

	if !have {
		return c.compileEmpty()
	}
	return start, end, nil
}
