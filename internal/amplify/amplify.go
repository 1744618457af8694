// internal/amplify/amplify.go
package amplify

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"rapsim/internal/pool"
)

var (
	// ErrEfficiency reports a growth factor outside [1,2] or a bias vector
	// whose length does not match the pool.
	ErrEfficiency = errors.New("invalid efficiency")
	// ErrCycles reports a negative cycle count.
	ErrCycles = errors.New("invalid cycle count")
	// ErrOverflow reports a copy number past the exactly representable
	// integer range; exponential growth must fail fast, never truncate.
	ErrOverflow = errors.New("copy number overflow")
)

// MaxCount is the copy-number ceiling: 2^53, the last float64 above which
// consecutive integers stop being representable.
const MaxCount = float64(1 << 53)

// Engine advances a pool through amplification cycles. Implementations
// return a fresh pool and never mutate the input.
type Engine interface {
	Amplify(p pool.Pool, eff Efficiency, cycles int) (pool.Pool, error)
}

// Deterministic grows every oligo exactly: out[i] = p[i] * eff(i)^cycles.
type Deterministic struct{}

func (Deterministic) Amplify(p pool.Pool, eff Efficiency, cycles int) (pool.Pool, error) {
	if cycles < 0 {
		return nil, fmt.Errorf("%w: %d", ErrCycles, cycles)
	}
	if err := eff.check(len(p)); err != nil {
		return nil, err
	}
	out := make(pool.Pool, len(p))
	for i, v := range p {
		g := v * math.Pow(eff.At(i), float64(cycles))
		if g > MaxCount || math.IsInf(g, 1) {
			return nil, fmt.Errorf("%w: oligo %d reaches %v after %d cycles", ErrOverflow, i, g, cycles)
		}
		out[i] = g
	}
	return out, nil
}

// Stochastic grows each oligo as a discrete-time Galton-Watson branching
// process: every molecule present this round independently produces zero or
// one duplicate with probability eff(i)-1. Rounds apply sequentially on the
// current count, so variance compounds across cycles. A zero count is
// absorbing; extinction is permanent.
type Stochastic struct {
	Src rand.Source
}

func (s Stochastic) Amplify(p pool.Pool, eff Efficiency, cycles int) (pool.Pool, error) {
	if cycles < 0 {
		return nil, fmt.Errorf("%w: %d", ErrCycles, cycles)
	}
	if err := eff.check(len(p)); err != nil {
		return nil, err
	}
	if s.Src == nil {
		return nil, errors.New("stochastic engine needs an explicit random source")
	}
	out := p.Clone()
	for i := range out {
		prob := eff.At(i) - 1
		for c := 0; c < cycles; c++ {
			n := out[i]
			if n < 1 || prob == 0 {
				break
			}
			// Binomial trials are whole molecules; drop any fractional tail
			// carried in from a deterministic stage.
			dup := distuv.Binomial{N: math.Floor(n), P: prob, Src: s.Src}.Rand()
			n += dup
			if n > MaxCount {
				return nil, fmt.Errorf("%w: oligo %d reaches %v in cycle %d", ErrOverflow, i, n, c+1)
			}
			out[i] = n
		}
	}
	return out, nil
}
