// Package bigint wraps math/big with the small set of arbitrary-precision
// helpers the sequence engine needs: a mixed-radix digit stream, a closed
// form for a geometric power sum, and a "largest power below N" search.
// Every cardinality, offset and index in this module flows through
// *big.Int because the languages produced by even simple patterns (e.g.
// `.*`) routinely exceed machine-word range.
package bigint

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for digit-stream argument validation.
var (
	// ErrInvalidChunk indicates a caller-supplied chunk is not an exact
	// power of the base.
	ErrInvalidChunk = errors.New("chunk is not an exact power of base")

	// ErrZeroBase indicates base <= 0, which has no digit expansion.
	ErrZeroBase = errors.New("base must be positive")
)

// ValueError reports an invalid numeric value passed to a bigint operation.
type ValueError struct {
	Detail string
	Err    error
}

func (e *ValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bigint: invalid value: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("bigint: invalid value: %s", e.Detail)
}

func (e *ValueError) Unwrap() error { return e.Err }

// TypeError reports a digit-stream argument of the wrong shape. Every
// digit-stream parameter is statically typed *big.Int, so no function in
// this package returns it; a rejected chunk is reported as a ValueError.
type TypeError struct {
	Detail string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("bigint: type error: %s", e.Detail)
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// digitsPerChunk batches this many digits worth of division into one big
// power before falling back to per-digit division. Keeps the number of
// expensive big.Int divisions small for very wide values.
const digitsPerChunk = 1024

// Digits returns the digits of x in the given base, least-significant digit
// first, as a range-over-func iterator. x must be non-negative; base must
// be >= 1. Base 1 arises for single-element content (a sequence of length
// 1 has only the zero digit at every position), so Digits yields nothing
// there and callers pad with the zeroth element to the width they need.
// For base 1 it yields nothing whatever x is; a nonzero x is not reported
// as an error.
//
// Chooses between a direct (naive) expansion and a chunked expansion: once
// the ratio of x's bit length to base's bit length crosses a threshold,
// digits are pulled out digitsPerChunk at a time via one division by a
// large precomputed power of base, which is cheaper than one division per
// digit for very large x.
func Digits(x, base *big.Int) func(yield func(*big.Int) bool) {
	return func(yield func(*big.Int) bool) {
		if base.Sign() <= 0 {
			return
		}
		if base.Cmp(bigOne) == 0 {
			return
		}
		if x.Sign() == 0 {
			return
		}

		if useChunking(x, base) {
			digitsChunked(x, base, yield)
			return
		}
		digitsBasic(x, base, yield)
	}
}

// useChunking applies a bit-length heuristic: chunk only once the naive
// approach would require proportionally many more divisions than the
// base's own bit width can amortize.
func useChunking(x, base *big.Int) bool {
	bx := x.BitLen()
	bb := base.BitLen()
	if bb == 0 {
		return false
	}
	return bx/bb >= digitsPerChunk
}

func digitsBasic(x, base *big.Int, yield func(*big.Int) bool) {
	rem := new(big.Int).Set(x)
	quo := new(big.Int)
	mod := new(big.Int)
	for rem.Sign() != 0 {
		quo.QuoRem(rem, base, mod)
		if !yield(new(big.Int).Set(mod)) {
			return
		}
		rem, quo = quo, rem
	}
}

// digitsChunked peels off digitsPerChunk digits at a time by dividing by
// base^digitsPerChunk, then re-expands each chunk remainder into individual
// digits with the naive loop.
func digitsChunked(x, base *big.Int, yield func(*big.Int) bool) {
	chunk := new(big.Int).Exp(base, big.NewInt(digitsPerChunk), nil)

	rem := new(big.Int).Set(x)
	quo := new(big.Int)
	mod := new(big.Int)
	for rem.Sign() != 0 {
		if rem.Cmp(chunk) < 0 {
			digitsBasic(rem, base, yield)
			return
		}
		quo.QuoRem(rem, chunk, mod)
		chunkDigits := make([]*big.Int, 0, digitsPerChunk)
		digitsBasic(mod, base, func(d *big.Int) bool {
			chunkDigits = append(chunkDigits, d)
			return true
		})
		for len(chunkDigits) < digitsPerChunk {
			chunkDigits = append(chunkDigits, new(big.Int))
		}
		for _, d := range chunkDigits {
			if !yield(d) {
				return
			}
		}
		rem, quo = quo, rem
	}
}

// DigitsFromChunk is like Digits but lets the caller supply a precomputed
// chunk (must be an exact power of base); returns ValueError if it is not.
// Exposed for tests exercising the chunking strategy directly without
// relying on the automatic size heuristic.
func DigitsFromChunk(x, base, chunk *big.Int) (func(yield func(*big.Int) bool), error) {
	if base.Sign() <= 0 {
		return nil, &ValueError{Detail: "base must be positive", Err: ErrZeroBase}
	}
	if !isExactPower(chunk, base) {
		return nil, &ValueError{Detail: fmt.Sprintf("chunk %s is not an exact power of base %s", chunk, base), Err: ErrInvalidChunk}
	}
	perChunk := 0
	for p := big.NewInt(1); p.Cmp(chunk) < 0; p.Mul(p, base) {
		perChunk++
	}
	return func(yield func(*big.Int) bool) {
		if x.Sign() == 0 {
			return
		}
		rem := new(big.Int).Set(x)
		quo := new(big.Int)
		mod := new(big.Int)
		for rem.Sign() != 0 {
			if rem.Cmp(chunk) < 0 {
				digitsBasic(rem, base, yield)
				return
			}
			quo.QuoRem(rem, chunk, mod)
			// Every chunk below the most significant one holds exactly
			// perChunk digits; pad the zeros digitsBasic leaves off.
			n, stopped := 0, false
			digitsBasic(mod, base, func(d *big.Int) bool {
				n++
				stopped = !yield(d)
				return !stopped
			})
			for ; !stopped && n < perChunk; n++ {
				stopped = !yield(new(big.Int))
			}
			if stopped {
				return
			}
			rem, quo = quo, rem
		}
	}, nil
}

func isExactPower(chunk, base *big.Int) bool {
	if chunk.Sign() <= 0 || base.Cmp(bigOne) <= 0 {
		return false
	}
	n := new(big.Int).Set(chunk)
	for n.Cmp(bigOne) > 0 {
		_, mod := new(big.Int), new(big.Int)
		q := new(big.Int)
		q.QuoRem(n, base, mod)
		if mod.Sign() != 0 {
			return false
		}
		n = q
	}
	return n.Cmp(bigOne) == 0
}

// LargestPower returns the largest k such that base^k < lessThan (k >= 0).
// Used to bound how many digits a value needs in a given base.
func LargestPower(lessThan, base *big.Int) int {
	if lessThan.Sign() <= 0 || base.Cmp(bigOne) <= 0 {
		return 0
	}
	k := 0
	acc := big.NewInt(1)
	for {
		next := new(big.Int).Mul(acc, base)
		if next.Cmp(lessThan) >= 0 {
			return k
		}
		acc = next
		k++
	}
}

// PowerSum returns sum_{i=low}^{high} base^i using the closed form for a
// geometric series: (base^(high+1) - base^low) / (base - 1). Falls back to
// (high - low + 1) when base == 1, where every term equals 1.
func PowerSum(base *big.Int, low, high int) *big.Int {
	if high < low {
		return new(big.Int)
	}
	if base.Cmp(bigOne) == 0 {
		return big.NewInt(int64(high - low + 1))
	}
	baseM1 := new(big.Int).Sub(base, bigOne)
	hi := new(big.Int).Exp(base, big.NewInt(int64(high+1)), nil)
	lo := new(big.Int).Exp(base, big.NewInt(int64(low)), nil)
	num := new(big.Int).Sub(hi, lo)
	return num.Quo(num, baseM1)
}

// Zero returns a newly allocated *big.Int holding 0.
func Zero() *big.Int { return new(big.Int) }
