// Package config holds app-wide settings unmarshalled from Viper
// (see: /internal/cmd). Flags, an optional rapsim.yaml, and RAPSIM_*
// environment variables all land here.
package config

import (
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// Defaults mirror the manuscript's reference scenario; override any of them
// per run.
const (
	DefaultPoolSize       = 10000
	DefaultRedundancy     = 10
	DefaultPCREff         = 1.85
	DefaultSpuriousEff    = 1.1
	DefaultCycles         = 10
	DefaultThresholdRatio = 0.1
)

// Config is the root-level settings struct, a mix of settings available in
// rapsim.yaml and those available from the command line.
type Config struct {
	// Pool seeding
	PoolSize   int     `mapstructure:"pool-size"`
	Redundancy float64 `mapstructure:"redundancy"`

	// Reaction efficiencies
	PCREff      float64 `mapstructure:"pcr-eff"`
	SpuriousEff float64 `mapstructure:"spurious-eff"`

	// Per-stage settings
	Cycles         int     `mapstructure:"cycles"`
	ThresholdRatio float64 `mapstructure:"threshold-ratio"`
	TargetPercent  float64 `mapstructure:"target-percent"`
	Depth          int     `mapstructure:"depth"`

	// Sweep grid over target percents
	GridStart float64 `mapstructure:"grid-start"`
	GridStop  float64 `mapstructure:"grid-stop"`
	GridStep  float64 `mapstructure:"grid-step"`

	// Sequence-specific bias: sd 0 disables sampling and uses pcr-eff as a
	// uniform factor. Draws are truncated to [1,2].
	BiasSD float64 `mapstructure:"bias-sd"`

	// Execution
	Deterministic bool   `mapstructure:"deterministic"`
	Seed          uint64 `mapstructure:"seed"`
	Threads       int    `mapstructure:"threads"`

	// Output
	Output   string `mapstructure:"output"`
	Pools    bool   `mapstructure:"pools"`
	NoHeader bool   `mapstructure:"no-header"`
	Quiet    bool   `mapstructure:"quiet"`
}

// New returns a Config populated from Viper.
func New() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode settings: %w", err)
	}
	return c, nil
}

// Validate rejects settings the engine would fail on anyway, with friendlier
// messages than mid-run errors.
func (c Config) Validate() error {
	if c.PoolSize < 2 {
		return fmt.Errorf("pool-size must be >= 2, got %d", c.PoolSize)
	}
	if c.Redundancy <= 0 {
		return fmt.Errorf("redundancy must be > 0, got %v", c.Redundancy)
	}
	if c.Cycles < 0 {
		return fmt.Errorf("cycles must be >= 0, got %d", c.Cycles)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be >= 1, got %d", c.Depth)
	}
	if c.ThresholdRatio <= 0 || c.ThresholdRatio >= 1 {
		return fmt.Errorf("threshold-ratio must be in (0,1), got %v", c.ThresholdRatio)
	}
	for _, e := range []struct {
		name string
		v    float64
	}{{"pcr-eff", c.PCREff}, {"spurious-eff", c.SpuriousEff}} {
		if e.v < 1 || e.v > 2 {
			return fmt.Errorf("%s must be in [1,2], got %v", e.name, e.v)
		}
	}
	if c.BiasSD < 0 {
		return fmt.Errorf("bias-sd must be >= 0, got %v", c.BiasSD)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	return nil
}

// Grid expands [GridStart, GridStop] by GridStep into the sweep's target
// percents, e.g. 0.1..0.9 step 0.1. Endpoints snap away from floating-point
// drift so 0.9 is included when it should be.
func (c Config) Grid() ([]float64, error) {
	if c.GridStep <= 0 {
		return nil, fmt.Errorf("grid-step must be > 0, got %v", c.GridStep)
	}
	if c.GridStart <= 0 || c.GridStop >= 1 || c.GridStart > c.GridStop {
		return nil, fmt.Errorf("grid [%v,%v] must sit inside (0,1)", c.GridStart, c.GridStop)
	}
	var grid []float64
	for i := 0; ; i++ {
		p := c.GridStart + float64(i)*c.GridStep
		if p > c.GridStop+c.GridStep/2 {
			break
		}
		grid = append(grid, math.Round(p*1e9)/1e9)
	}
	return grid, nil
}
