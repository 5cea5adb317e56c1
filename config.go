// Package rxseq turns the language of a parsed regular expression into an
// immutable, lazily-computed, indexable sequence of strings: S[i], len(S),
// S[a:b:c], iteration, and membership, all backed by arbitrary-precision
// arithmetic so that patterns like `.*` or `a{1,65535}` are representable
// without ever enumerating their language.
package rxseq

// DefaultMaxCount clamps unbounded repetitions (a*, a+, a{2,}); see
// adapt.DefaultMaxCount.
const DefaultMaxCount = 65535

// Config controls how a pattern is turned into a Sequence.
type Config struct {
	// Charset is the ordered candidate byte list for `.` and character
	// classes. Defaults to all 256 byte values.
	Charset []byte

	// Dotall keeps '\n' in the active charset for the unqualified any-char
	// operator.
	Dotall bool

	// MaxCount clamps unbounded repetition upper bounds. Defaults to
	// DefaultMaxCount.
	MaxCount int

	// Relaxed promotes lookaround constructs from a parse error to an
	// empty production. regexp/syntax never parses lookaround at all, so
	// this has no observable effect today; carried for interface parity
	// with the adapter it configures.
	Relaxed bool

	// MaxRecursionDepth bounds AST recursion depth during adaptation.
	MaxRecursionDepth int
}

// DefaultConfig returns the default construction configuration: full
// 256-byte charset, dotall off, MaxCount = DefaultMaxCount.
func DefaultConfig() Config {
	return Config{
		MaxCount:          DefaultMaxCount,
		MaxRecursionDepth: 100,
	}
}
