package seqnode

import (
	"math"
	"math/big"
	"strings"

	"github.com/coregx/rxseq/bigint"
	"github.com/coregx/rxseq/internal/cache"
)

// offsetBreakThreshold bounds the "small" region of an offset table:
// offsets at or below this value can be compared using a machine word
// instead of full big.Int arithmetic.
var offsetBreakThreshold = big.NewInt(math.MaxInt64)

// offsetEntry is one row of a Repetitive node's offset table: the starting
// index at which strings of length count first appear.
type offsetEntry struct {
	offset *big.Int
	count  int
}

// Repetitive represents the disjoint union of content^lo, content^(lo+1),
// …, content^hi — the node kind built for bounded and unbounded regex
// repetition (a*, a+, a{2,5}). Cardinality is powersum(|content|, lo, hi).
// Within a fixed repetition count, strings enumerate as a base-|content|
// counter with the most significant digit leftmost; across counts, shorter
// strings precede longer ones.
type Repetitive struct {
	content Node
	lo, hi  int

	total *big.Int

	table *cache.FuncSequence[offsetEntry]

	// offsetBreak and indexOfOffset partition the offset table into a
	// "small enough for fast-int comparison" prefix and a big-int tail,
	// so a bisect for a common (small) index never touches wide offsets.
	offsetBreak   *big.Int
	indexOfOffset int

	// materialized caches content as a concrete slice once a lookup hits
	// count > 100 with |content| < 1000, giving O(1) digit expansion.
	materialized []string
}

// NewRepetitive builds a Repetitive node over content, repeated between lo
// and hi times inclusive (hi may equal lo for an exact count).
func NewRepetitive(content Node, lo, hi int) *Repetitive {
	contentLen := content.Len()
	total := bigint.PowerSum(contentLen, lo, hi)

	r := &Repetitive{
		content: content,
		lo:      lo,
		hi:      hi,
		total:   total,
	}

	tableLen := hi - lo + 1
	r.table = cache.New(tableLen,
		func(i int) offsetEntry {
			k := i + lo
			return offsetEntry{offset: bigint.PowerSum(contentLen, lo, k-1), count: k}
		},
		func(i int, prev offsetEntry) offsetEntry {
			kPrev := prev.count
			cPow := new(big.Int).Exp(contentLen, big.NewInt(int64(kPrev)), nil)
			return offsetEntry{offset: new(big.Int).Add(prev.offset, cPow), count: kPrev + 1}
		},
	)

	r.computeOffsetBreak()
	return r
}

// computeOffsetBreak eagerly fills the table's fast-int prefix, bounded by
// the number of offsets below offsetBreakThreshold (typically at most a
// few dozen entries).
func (r *Repetitive) computeOffsetBreak() {
	if r.total.Cmp(offsetBreakThreshold) < 0 {
		r.offsetBreak = new(big.Int).Add(r.total, bigOne)
		r.indexOfOffset = r.table.Len()
		return
	}
	for i := 0; i < r.table.Len(); i++ {
		entry, _ := r.table.Get(i)
		if entry.offset.Cmp(offsetBreakThreshold) > 0 {
			r.offsetBreak = new(big.Int).Set(entry.offset)
			r.indexOfOffset = i
			return
		}
	}
	// Every offset fits below the threshold.
	r.offsetBreak = new(big.Int).Add(r.total, bigOne)
	r.indexOfOffset = r.table.Len()
}

func (r *Repetitive) Len() *big.Int {
	return new(big.Int).Set(r.total)
}

// bisectOffset finds the leftmost table index in [lo, hi) whose offset is
// >= target. The count component never matters for the tie-break, since
// offsets are strictly increasing.
func (r *Repetitive) bisectOffset(target *big.Int, lo, hi int) int {
	for lo < hi {
		mid := (lo + hi) / 2
		entry, _ := r.table.Get(mid)
		if entry.offset.Cmp(target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (r *Repetitive) Item(i *big.Int, env Env) (string, error) {
	idx, err := normalizeIndex(i, r.total)
	if err != nil {
		return "", err
	}

	var bisectIdx int
	if idx.Cmp(r.offsetBreak) < 0 {
		bisectIdx = r.bisectOffset(idx, 0, r.indexOfOffset)
	} else {
		bisectIdx = r.bisectOffset(idx, r.indexOfOffset, r.table.Len())
	}

	// Step back to the entry whose block actually contains idx.
	if bisectIdx == r.table.Len() {
		bisectIdx--
	} else if entry, _ := r.table.Get(bisectIdx); entry.offset.Cmp(idx) > 0 {
		bisectIdx--
	}

	entry, _ := r.table.Get(bisectIdx)
	baseOffset, count := entry.offset, entry.count

	num := new(big.Int).Sub(idx, baseOffset)

	if count == 0 {
		return "", nil
	}

	contentLen := r.content.Len()
	// Only consult (or build) the materialized cache when no binding
	// environment is in play: a materialized entry skips content.Item
	// entirely, which would silently drop a Save node's side effect on
	// every digit but the one that originally populated the cache.
	if env == nil && count > 100 && contentLen.IsInt64() && contentLen.Int64() < 1000 {
		r.ensureMaterialized()
	}

	itemAt := func(d *big.Int) (string, error) {
		if env == nil && r.materialized != nil {
			return r.materialized[d.Int64()], nil
		}
		return r.content.Item(d, env)
	}

	digits := make([]string, 0, count)
	var iterErr error
	bigint.Digits(num, contentLen)(func(d *big.Int) bool {
		s, err := itemAt(d)
		if err != nil {
			iterErr = err
			return false
		}
		digits = append(digits, s)
		return true
	})
	if iterErr != nil {
		return "", iterErr
	}

	if len(digits) < count {
		pad, err := itemAt(new(big.Int))
		if err != nil {
			return "", err
		}
		for len(digits) < count {
			digits = append(digits, pad)
		}
	}

	// Reverse so the most-significant digit appears leftmost.
	for l, rt := 0, len(digits)-1; l < rt; l, rt = l+1, rt-1 {
		digits[l], digits[rt] = digits[rt], digits[l]
	}

	var sb strings.Builder
	for _, s := range digits {
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (r *Repetitive) ensureMaterialized() {
	if r.materialized != nil {
		return
	}
	n := r.content.Len()
	if !n.IsInt64() {
		return
	}
	count := int(n.Int64())
	list := make([]string, count)
	for i := 0; i < count; i++ {
		s, err := r.content.Item(big.NewInt(int64(i)), nil)
		if err != nil {
			return
		}
		list[i] = s
	}
	r.materialized = list
}
