// internal/amplify/efficiency.go
package amplify

import "fmt"

// Efficiency is a per-cycle growth factor: either one scalar broadcast to the
// whole pool or one value per oligo (sequence-specific bias).
type Efficiency struct {
	per    []float64
	scalar float64
}

// Uniform returns a scalar efficiency applied to every oligo.
func Uniform(e float64) Efficiency { return Efficiency{scalar: e} }

// PerOligo returns an efficiency vector; its length must match the pool it is
// applied to.
func PerOligo(es []float64) Efficiency { return Efficiency{per: es} }

// PerOligoLen reports the vector length, or -1 for a scalar.
func (e Efficiency) PerOligoLen() int {
	if e.per == nil {
		return -1
	}
	return len(e.per)
}

// At returns the factor for oligo i.
func (e Efficiency) At(i int) float64 {
	if e.per != nil {
		return e.per[i]
	}
	return e.scalar
}

// Split slices a per-oligo efficiency at cut, mirroring a pool partition.
// Scalars broadcast to both sides unchanged.
func (e Efficiency) Split(cut int) (lo, hi Efficiency) {
	if e.per == nil {
		return e, e
	}
	return PerOligo(e.per[:cut]), PerOligo(e.per[cut:])
}

// check validates the efficiency against a pool of length n. Factors live in
// [1,2]: every molecule yields one copy of itself plus at most one duplicate
// per cycle, so the stochastic per-trial probability eff-1 stays within [0,1].
func (e Efficiency) check(n int) error {
	if e.per != nil && len(e.per) != n {
		return fmt.Errorf("%w: %d efficiencies for %d oligos", ErrEfficiency, len(e.per), n)
	}
	for i := 0; i < n; i++ {
		v := e.At(i)
		if v < 1 || v > 2 {
			return fmt.Errorf("%w: efficiency %v at oligo %d outside [1,2]", ErrEfficiency, v, i)
		}
	}
	return nil
}
