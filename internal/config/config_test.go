package config

import (
	"math"
	"testing"
)

func valid() Config {
	return Config{
		PoolSize:       100,
		Redundancy:     10,
		PCREff:         1.85,
		SpuriousEff:    1.1,
		Cycles:         10,
		Depth:          1,
		ThresholdRatio: 0.1,
		GridStart:      0.1,
		GridStop:       0.9,
		GridStep:       0.1,
		TargetPercent:  0.5,
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := valid().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny pool", func(c *Config) { c.PoolSize = 1 }},
		{"zero redundancy", func(c *Config) { c.Redundancy = 0 }},
		{"negative cycles", func(c *Config) { c.Cycles = -1 }},
		{"zero depth", func(c *Config) { c.Depth = 0 }},
		{"ratio at 1", func(c *Config) { c.ThresholdRatio = 1 }},
		{"eff below 1", func(c *Config) { c.PCREff = 0.5 }},
		{"spurious above 2", func(c *Config) { c.SpuriousEff = 2.5 }},
		{"negative bias sd", func(c *Config) { c.BiasSD = -0.1 }},
		{"negative threads", func(c *Config) { c.Threads = -2 }},
	}
	for _, tc := range cases {
		c := valid()
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

// The canonical sweep grid 0.1..0.9 step 0.1 must come out with all nine
// points despite float accumulation.
func TestGridCanonical(t *testing.T) {
	grid, err := valid().Grid()
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 9 {
		t.Fatalf("got %d points, want 9: %v", len(grid), grid)
	}
	for i, p := range grid {
		want := 0.1 * float64(i+1)
		if math.Abs(p-want) > 1e-9 {
			t.Errorf("grid[%d] = %v, want %v", i, p, want)
		}
	}
}

func TestGridRejectsBadBounds(t *testing.T) {
	c := valid()
	c.GridStep = 0
	if _, err := c.Grid(); err == nil {
		t.Error("zero step accepted")
	}
	c = valid()
	c.GridStart, c.GridStop = 0.5, 0.2
	if _, err := c.Grid(); err == nil {
		t.Error("inverted bounds accepted")
	}
}
