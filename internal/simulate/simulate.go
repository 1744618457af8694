// internal/simulate/simulate.go
package simulate

import (
	"errors"
	"fmt"

	"rapsim/internal/amplify"
	"rapsim/internal/pool"
	"rapsim/internal/stats"
)

// ErrNoCarryover reports a nested stage invoked without usable prior-stage
// pools to partition.
var ErrNoCarryover = errors.New("invalid stage: no prior carryover")

// Config bundles everything a stage needs. Efficiencies are explicit here
// rather than ambient state so independent runs can share nothing.
type Config struct {
	Engine         amplify.Engine
	PCREff         amplify.Efficiency // on-target reaction efficiency
	SpuriousEff    amplify.Efficiency // background/off-target efficiency
	ThresholdRatio float64
}

// Stage selects one random-access reaction: which prefix of the current pool
// is targeted and how many amplification cycles it runs.
type Stage struct {
	TargetPercent float64
	Cycles        int
}

// StageOutcome reports one stage of a run: the amplified on-target lineage,
// the concatenated off-target amplicons, and the detection error metrics
// computed against the desired pool's threshold.
type StageOutcome struct {
	Stage         int
	TargetPercent float64

	Desired  pool.Pool
	Spurious pool.Pool

	Mean             float64
	Threshold        float64
	FalseNegatives   int
	FalsePositives   int
	FalseNegativePct float64
	FalsePositivePct float64
}

// Simulator drives a storage pool through one or more random-access stages.
type Simulator struct {
	cfg Config
}

func New(cfg Config) *Simulator { return &Simulator{cfg: cfg} }

// carryover is the state threaded between stages. Stage 1 sees the storage
// pool as desired with no spurious side.
type carryover struct {
	desired  pool.Pool
	spurious pool.Pool
}

// Run executes stages in order and returns the terminal stage's outcome.
func (s *Simulator) Run(storage pool.Pool, stages []Stage) (StageOutcome, error) {
	all, err := s.RunAll(storage, stages)
	if err != nil {
		return StageOutcome{}, err
	}
	return all[len(all)-1], nil
}

// RunAll executes stages in order and returns every stage's outcome. The
// storage pool is never mutated; each stage summarizes its own desired and
// spurious pools so sweep drivers can report per-stage error rates.
func (s *Simulator) RunAll(storage pool.Pool, stages []Stage) ([]StageOutcome, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages requested", ErrNoCarryover)
	}
	if perOligo := s.cfg.PCREff.PerOligoLen() >= 0 || s.cfg.SpuriousEff.PerOligoLen() >= 0; perOligo && len(stages) > 1 {
		return nil, fmt.Errorf("%w: per-oligo efficiencies only align with a single stage", amplify.ErrEfficiency)
	}

	carry := carryover{desired: storage}
	outs := make([]StageOutcome, 0, len(stages))
	for i, st := range stages {
		next, err := s.runStage(carry, st, i == 0)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		carry = next

		sum, err := stats.RandomAccess(carry.desired, carry.spurious, s.cfg.ThresholdRatio)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		outs = append(outs, StageOutcome{
			Stage:            i + 1,
			TargetPercent:    st.TargetPercent,
			Desired:          carry.desired,
			Spurious:         carry.spurious,
			Mean:             sum.Mean,
			Threshold:        sum.Threshold,
			FalseNegatives:   sum.FalseNegatives,
			FalsePositives:   sum.FalsePositives,
			FalseNegativePct: sum.FalseNegativePct,
			FalsePositivePct: sum.FalsePositivePct,
		})
	}
	return outs, nil
}

// runStage is the single stage routine for both the initial and nested
// cases: the nested case differs only in having a spurious carryover to
// partition as well. Population is conserved: the four amplified segments
// repartition exactly the species present before the stage.
func (s *Simulator) runStage(carry carryover, st Stage, first bool) (carryover, error) {
	if !first && (len(carry.desired) == 0 || len(carry.spurious) == 0) {
		return carryover{}, ErrNoCarryover
	}

	target, nontarget, err := carry.desired.Partition(st.TargetPercent)
	if err != nil {
		return carryover{}, err
	}

	// A stage-1 bias vector spans the whole storage pool; slice it alongside
	// the partition so each segment keeps its own per-oligo factors.
	pcrEff, spurEff := s.cfg.PCREff, s.cfg.SpuriousEff
	if first {
		pcrEff, _ = pcrEff.Split(len(target))
		_, spurEff = spurEff.Split(len(target))
	}

	desired, err := s.cfg.Engine.Amplify(target, pcrEff, st.Cycles)
	if err != nil {
		return carryover{}, err
	}
	offTarget, err := s.cfg.Engine.Amplify(nontarget, spurEff, st.Cycles)
	if err != nil {
		return carryover{}, err
	}

	if first {
		return carryover{desired: desired, spurious: offTarget}, nil
	}

	// Nested: prior spurious molecules split the same way. The ones landing
	// in the target partition carry this stage's primer site, so they
	// amplify at the on-target efficiency and seed new spurious signal.
	spurTarget, spurNontarget, err := carry.spurious.Partition(st.TargetPercent)
	if err != nil {
		return carryover{}, err
	}
	hot, err := s.cfg.Engine.Amplify(spurTarget, pcrEff, st.Cycles)
	if err != nil {
		return carryover{}, err
	}
	cold, err := s.cfg.Engine.Amplify(spurNontarget, spurEff, st.Cycles)
	if err != nil {
		return carryover{}, err
	}

	return carryover{
		desired:  desired,
		spurious: pool.Concat(offTarget, hot, cold),
	}, nil
}
