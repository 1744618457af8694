// internal/stats/stats.go
package stats

import (
	"errors"
	"fmt"

	"rapsim/internal/pool"
)

// ErrRatio reports a detection threshold ratio outside (0,1).
var ErrRatio = errors.New("invalid threshold ratio")

// Summary describes detection statistics for one amplified pool.
type Summary struct {
	Mean             float64
	Threshold        float64
	FalseNegatives   int
	FalseNegativePct float64
}

// AccessSummary extends Summary with off-target detections. The threshold is
// computed from the desired pool alone.
type AccessSummary struct {
	Summary
	FalsePositives   int
	FalsePositivePct float64
}

// Summarize computes the detection threshold mean(p)*ratio and counts oligos
// strictly below it as false negatives, as a percent of the pool size.
func Summarize(p pool.Pool, ratio float64) (Summary, error) {
	if ratio <= 0 || ratio >= 1 {
		return Summary{}, fmt.Errorf("%w: %v outside (0,1)", ErrRatio, ratio)
	}
	s := Summary{Mean: p.Mean()}
	s.Threshold = s.Mean * ratio
	for _, v := range p {
		if v < s.Threshold {
			s.FalseNegatives++
		}
	}
	if len(p) > 0 {
		s.FalseNegativePct = float64(s.FalseNegatives) / float64(len(p)) * 100
	}
	return s, nil
}

// RandomAccess summarizes a desired/spurious pool pair. False positives are
// spurious entries strictly above the desired-pool threshold. Both percent
// figures use len(desired) as denominator: errors are reported per
// target-sized unit, not per spurious-population size.
func RandomAccess(desired, spurious pool.Pool, ratio float64) (AccessSummary, error) {
	base, err := Summarize(desired, ratio)
	if err != nil {
		return AccessSummary{}, err
	}
	out := AccessSummary{Summary: base}
	for _, v := range spurious {
		if v > out.Threshold {
			out.FalsePositives++
		}
	}
	if len(desired) > 0 {
		out.FalsePositivePct = float64(out.FalsePositives) / float64(len(desired)) * 100
	}
	return out, nil
}
