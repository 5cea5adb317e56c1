package seqnode

import "math/big"

// Sliced is a view over start/stop/step into a raw node — the node kind
// built for S[a:b:c] slicing, including negative and reverse strides.
// Parameters are stored already normalized (see NewSliced): step != 0,
// given start/stop clamped into [0, rawLen]; an omitted stop with a
// reverse step is stored as -1.
type Sliced struct {
	raw               Node
	start, stop, step *big.Int
	length            *big.Int
}

// NewSliced builds a Sliced view over raw using Python-style slice
// parameters. start and stop may be nil to mean "omitted"; step may be nil
// to mean the default of 1. Returns a *ValueError if step is zero.
func NewSliced(raw Node, start, stop, step *big.Int) (*Sliced, error) {
	size := raw.Len()

	normStep := big.NewInt(1)
	if step != nil {
		normStep = new(big.Int).Set(step)
	}
	if normStep.Sign() == 0 {
		return nil, &ValueError{Detail: "slice step cannot be zero"}
	}

	normStart := sliceDefaultStart(size, normStep)
	if start != nil {
		normStart = clampIndex(start, size)
	}

	normStop := sliceDefaultStop(size, normStep)
	if stop != nil {
		normStop = clampIndex(stop, size)
	}

	length := sliceLength(normStart, normStop, normStep)

	return &Sliced{raw: raw, start: normStart, stop: normStop, step: normStep, length: length}, nil
}

// sliceDefaultStart supplies the bound for an omitted start: 0 for a
// forward step, size-1 for a reverse step.
func sliceDefaultStart(size, step *big.Int) *big.Int {
	if step.Sign() > 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(size, bigOne)
}

// sliceDefaultStop supplies the bound for an omitted stop: size for a
// forward step, -1 for a reverse step.
func sliceDefaultStop(size, step *big.Int) *big.Int {
	if step.Sign() > 0 {
		return new(big.Int).Set(size)
	}
	return big.NewInt(-1)
}

// clampIndex adjusts a possibly-negative raw slice bound into [0, size]:
// negative values add size; results below 0 clamp to 0; results above
// size clamp to size.
func clampIndex(i, size *big.Int) *big.Int {
	adj := new(big.Int).Set(i)
	if adj.Sign() < 0 {
		adj.Add(adj, size)
	}
	if adj.Sign() < 0 {
		return new(big.Int)
	}
	if adj.Cmp(size) > 0 {
		return new(big.Int).Set(size)
	}
	return adj
}

// sliceLength computes ceil((stop-start)/step) with sign-aware rounding:
// (stop - start + step - sign(step)) / step, truncated toward zero.
func sliceLength(start, stop, step *big.Int) *big.Int {
	diff := new(big.Int).Sub(stop, start)
	sign := big.NewInt(int64(step.Sign()))
	numer := new(big.Int).Add(diff, step)
	numer.Sub(numer, sign)
	length := new(big.Int).Quo(numer, step)
	if length.Sign() < 0 {
		return new(big.Int)
	}
	return length
}

func (s *Sliced) Len() *big.Int {
	return new(big.Int).Set(s.length)
}

func (s *Sliced) Item(i *big.Int, env Env) (string, error) {
	idx, err := normalizeIndex(i, s.length)
	if err != nil {
		return "", err
	}
	rawIdx := new(big.Int).Mul(idx, s.step)
	rawIdx.Add(rawIdx, s.start)
	return s.raw.Item(rawIdx, env)
}
