package engine

import (
	"math"
)

type Options struct {
	Hash             int
	Threads          int
	ProgressMinNodes int
	EvalBuilder      func() interface{}

	NullMovePruning      bool
	NullMoveMinDepth     int
	NullMoveReduction    int
	NullMoveDepthDivisor int

	// QuiescenceMaxDepth limits plies below the horizon.
	QuiescenceMaxDepth int
	// QuiescenceChecks adds quiet checking moves on the first quiescence ply.
	QuiescenceChecks bool
	QuiescenceSEE    bool

	CheckExtension    bool
	Lmr               bool
	AspirationWindows bool

	// StopCheckInterval is the number of nodes between stop flag polls. Power of two.
	StopCheckInterval int

	reductions [64][64]int
}

func NewOptions() Options {
	var result = Options{
		Hash:                 16,
		Threads:              1,
		ProgressMinNodes:     1_000_000,
		NullMovePruning:      true,
		NullMoveMinDepth:     2,
		NullMoveReduction:    3,
		NullMoveDepthDivisor: 6,
		QuiescenceMaxDepth:   32,
		QuiescenceChecks:     false,
		QuiescenceSEE:        true,
		CheckExtension:       true,
		Lmr:                  true,
		AspirationWindows:    true,
		StopCheckInterval:    256,
	}
	result.InitLmr(LmrMult)
	return result
}

func NewMainOptions(evalBuilder func() interface{}) Options {
	var result = NewOptions()
	result.EvalBuilder = evalBuilder
	return result
}

func (o *Options) lmr(d, m int) int {
	return o.reductions[min(d, 63)][min(m, 63)]
}

func (o *Options) InitLmr(f func(d, m float64) float64) {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			o.reductions[d][m] = int(f(float64(d), float64(m)))
		}
	}
}

func LmrMult(d, m float64) float64 {
	return lirp(math.Log(d)*math.Log(m), math.Log(5)*math.Log(22), math.Log(63)*math.Log(63), 3, 8)
}

func lirp(x, x1, x2, y1, y2 float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}

// stopCheckMask returns interval-1 with the interval rounded down to a power of two.
func (o *Options) stopCheckMask() int64 {
	if o.StopCheckInterval <= 1 {
		return 0
	}
	return int64(roundPowerOfTwo(o.StopCheckInterval) - 1)
}
