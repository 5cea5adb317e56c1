package rxseq

import (
	"fmt"
	"math/big"

	"github.com/coregx/rxseq/adapt"
	"github.com/coregx/rxseq/seqnode"
)

// ParseError reports a pattern the adapter cannot express as a sequence:
// an unsupported flag, a misplaced anchor, an unsupported construct, or a
// regexp/syntax parse failure. Wraps the underlying adapt/syntax error.
type ParseError struct {
	Pattern string
	Detail  string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("rxseq: cannot compile pattern %q: %s", e.Pattern, e.Detail)
	}
	return fmt.Sprintf("rxseq: %s", e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IndexError reports an index outside [-|S|, |S|), or a zero slice step
// (a zero step describes an invalid position, not an invalid magnitude,
// so it is classified here rather than as a ValueError).
type IndexError struct {
	Index, Length *big.Int
	Detail        string
	Err           error
}

func (e *IndexError) Error() string {
	if e.Index != nil && e.Length != nil {
		return fmt.Sprintf("rxseq: index %s out of range for length %s", e.Index, e.Length)
	}
	return fmt.Sprintf("rxseq: invalid index: %s", e.Detail)
}

func (e *IndexError) Unwrap() error { return e.Err }

// TypeError reports a digit-stream argument of the wrong shape. Largely
// unreachable given Go's static typing; retained for kind parity with
// bigint.TypeError.
type TypeError struct {
	Detail string
	Err    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("rxseq: type error: %s", e.Detail)
}

func (e *TypeError) Unwrap() error { return e.Err }

// ValueError is the invalid-value error kind. No operation of this package
// returns it: the digit stream lives in package bigint, which reports a
// rejected chunk as bigint.ValueError and, for base 1, yields no digits
// rather than failing when x is nonzero.
type ValueError struct {
	Detail string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("rxseq: invalid value: %s", e.Detail)
}

func (e *ValueError) Unwrap() error { return e.Err }

// NotImplementedError reports a deliberately unsupported operation —
// today, only Match.Span().
type NotImplementedError struct {
	Detail string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("rxseq: not implemented: %s", e.Detail)
}

// wrapParseError converts an *adapt.ParseError (or a plain regexp/syntax
// error) into the package's ParseError kind, preserving pattern/detail.
func wrapParseError(pattern string, err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*adapt.ParseError); ok {
		return &ParseError{Pattern: pattern, Detail: pe.Detail, Err: pe}
	}
	return &ParseError{Pattern: pattern, Detail: err.Error(), Err: err}
}

// wrapIndexError converts a seqnode-level index or value error (the
// latter only ever raised for a zero slice step within this module) into
// the package's IndexError kind.
func wrapIndexError(err error) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *seqnode.IndexError:
		return &IndexError{Index: e.Index, Length: e.Length, Err: e}
	case *seqnode.ValueError:
		return &IndexError{Detail: e.Detail, Err: e}
	default:
		return err
	}
}
