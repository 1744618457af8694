// internal/pool/pool.go
package pool

import (
	"errors"
	"fmt"
	"math"
)

// ErrPartition reports a target percent that would leave either side of a
// split empty.
var ErrPartition = errors.New("invalid partition")

// Pool holds one copy number per distinct oligo species. Order is positional:
// a partition takes a contiguous prefix as the target segment. Values stay
// non-negative throughout a simulation.
type Pool []float64

// New seeds n oligos at a constant redundancy r copies each.
func New(n int, r float64) Pool {
	p := make(Pool, n)
	for i := range p {
		p[i] = r
	}
	return p
}

// Clone returns an independent copy of p.
func (p Pool) Clone() Pool {
	out := make(Pool, len(p))
	copy(out, p)
	return out
}

// Mean returns the arithmetic mean copy number, 0 for an empty pool.
func (p Pool) Mean() float64 {
	if len(p) == 0 {
		return 0
	}
	return p.Total() / float64(len(p))
}

// Total returns the summed copy number over all species.
func (p Pool) Total() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v
	}
	return sum
}

// Partition splits p at index floor(len(p)*targetPercent) into a target
// prefix and a non-target suffix. Both halves are fresh copies; the split is
// positional, never value-based. A percent that empties either side fails
// with ErrPartition.
func (p Pool) Partition(targetPercent float64) (target, nontarget Pool, err error) {
	if targetPercent <= 0 || targetPercent >= 1 {
		return nil, nil, fmt.Errorf("%w: target percent %v outside (0,1)", ErrPartition, targetPercent)
	}
	cut := int(math.Floor(float64(len(p)) * targetPercent))
	if cut == 0 || cut == len(p) {
		return nil, nil, fmt.Errorf("%w: target percent %v leaves an empty segment for %d oligos", ErrPartition, targetPercent, len(p))
	}
	return p[:cut].Clone(), p[cut:].Clone(), nil
}

// Concat joins pools into one freshly allocated pool, preserving order.
func Concat(pools ...Pool) Pool {
	n := 0
	for _, p := range pools {
		n += len(p)
	}
	out := make(Pool, 0, n)
	for _, p := range pools {
		out = append(out, p...)
	}
	return out
}
