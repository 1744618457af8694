// internal/bias/bias.go
package bias

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrConfig reports unusable distribution parameters.
var ErrConfig = errors.New("invalid bias config")

// rejection draws per sample before giving up; only reachable when the
// [Low,High] band carries essentially no mass under Normal(Mean,SD).
const maxDraws = 1 << 20

// Sampler draws per-oligo amplification efficiencies from a normal
// distribution truncated to [Low, High]. The zero value is not usable; fill
// all four fields.
type Sampler struct {
	Mean float64
	SD   float64
	Low  float64
	High float64
}

// Validate checks the distribution parameters.
func (s Sampler) Validate() error {
	if s.Low >= s.High {
		return fmt.Errorf("%w: low %v >= high %v", ErrConfig, s.Low, s.High)
	}
	if s.SD < 0 {
		return fmt.Errorf("%w: sd %v < 0", ErrConfig, s.SD)
	}
	if s.SD == 0 && (s.Mean < s.Low || s.Mean > s.High) {
		return fmt.Errorf("%w: sd 0 with mean %v outside [%v,%v]", ErrConfig, s.Mean, s.Low, s.High)
	}
	return nil
}

// Sample returns n independent truncated-normal draws. The random source is
// explicit so seeded runs reproduce exactly; no package-level RNG state.
func (s Sampler) Sample(n int, src rand.Source) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrConfig, n)
	}
	out := make([]float64, n)
	if s.SD == 0 {
		for i := range out {
			out[i] = s.Mean
		}
		return out, nil
	}
	dist := distuv.Normal{Mu: s.Mean, Sigma: s.SD, Src: src}
	for i := range out {
		ok := false
		for d := 0; d < maxDraws; d++ {
			if v := dist.Rand(); v >= s.Low && v <= s.High {
				out[i] = v
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("%w: no mass in [%v,%v] under normal(%v,%v)", ErrConfig, s.Low, s.High, s.Mean, s.SD)
		}
	}
	return out, nil
}
