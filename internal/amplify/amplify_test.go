package amplify

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"rapsim/internal/pool"
)

// Deterministic growth is exact: 10 * 2^10 = 10240.
func TestDeterministicExact(t *testing.T) {
	p := pool.Pool{10}
	got, err := Deterministic{}.Amplify(p, Uniform(2), 10)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 10240 {
		t.Errorf("got %v, want 10240", got[0])
	}
}

func TestDeterministicPerOligo(t *testing.T) {
	p := pool.Pool{10, 10, 10}
	got, err := Deterministic{}.Amplify(p, PerOligo([]float64{1, 1.5, 2}), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{10, 22.5, 40}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// Uniform deterministic growth scales the summed copy number by eff^cycles.
func TestDeterministicScalesTotal(t *testing.T) {
	p := pool.Pool{1, 2, 3}
	got, err := (Deterministic{}).Amplify(p, Uniform(1.5), 4)
	if err != nil {
		t.Fatal(err)
	}
	want := p.Total() * math.Pow(1.5, 4)
	if math.Abs(got.Total()-want) > 1e-9 {
		t.Errorf("total = %v, want %v", got.Total(), want)
	}
}

func TestAmplifyDoesNotMutateInput(t *testing.T) {
	p := pool.Pool{5, 5}
	if _, err := (Deterministic{}).Amplify(p, Uniform(2), 3); err != nil {
		t.Fatal(err)
	}
	st := Stochastic{Src: rand.NewSource(7)}
	if _, err := st.Amplify(p, Uniform(1.8), 3); err != nil {
		t.Fatal(err)
	}
	if p[0] != 5 || p[1] != 5 {
		t.Errorf("input pool mutated: %v", p)
	}
}

func TestCyclesZeroIsIdentity(t *testing.T) {
	p := pool.Pool{3, 7}
	for _, eng := range []Engine{Deterministic{}, Stochastic{Src: rand.NewSource(1)}} {
		got, err := eng.Amplify(p, Uniform(1.9), 0)
		if err != nil {
			t.Fatal(err)
		}
		if got[0] != 3 || got[1] != 7 {
			t.Errorf("%T: got %v, want unchanged", eng, got)
		}
	}
}

func TestNegativeCycles(t *testing.T) {
	for _, eng := range []Engine{Deterministic{}, Stochastic{Src: rand.NewSource(1)}} {
		if _, err := eng.Amplify(pool.Pool{1}, Uniform(1.5), -1); !errors.Is(err, ErrCycles) {
			t.Errorf("%T: err = %v, want ErrCycles", eng, err)
		}
	}
}

func TestEfficiencyRange(t *testing.T) {
	for _, e := range []float64{0.9, 2.1, -1} {
		for _, eng := range []Engine{Deterministic{}, Stochastic{Src: rand.NewSource(1)}} {
			if _, err := eng.Amplify(pool.Pool{1}, Uniform(e), 1); !errors.Is(err, ErrEfficiency) {
				t.Errorf("%T eff=%v: err = %v, want ErrEfficiency", eng, e, err)
			}
		}
	}
}

func TestEfficiencyLengthMismatch(t *testing.T) {
	_, err := Deterministic{}.Amplify(pool.Pool{1, 2}, PerOligo([]float64{1.5}), 1)
	if !errors.Is(err, ErrEfficiency) {
		t.Errorf("err = %v, want ErrEfficiency", err)
	}
}

// Absorbing zero: an extinct oligo can never be rescued by amplification.
func TestStochasticAbsorbingZero(t *testing.T) {
	st := Stochastic{Src: rand.NewSource(3)}
	p := pool.Pool{0, 100, 0}
	got, err := st.Amplify(p, Uniform(2), 20)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 || got[2] != 0 {
		t.Errorf("zero entries amplified: %v", got)
	}
	if got[1] <= 100 {
		t.Errorf("live entry did not grow: %v", got[1])
	}
}

// The branching-process mean converges to the deterministic value: 10000
// oligos starting at 10 with efficiency 1.85 over 10 cycles average near
// 10*1.85^10 ~ 4700 copies.
func TestStochasticExpectation(t *testing.T) {
	st := Stochastic{Src: rand.NewSource(11)}
	p := pool.New(10000, 10)
	got, err := st.Amplify(p, Uniform(1.85), 10)
	if err != nil {
		t.Fatal(err)
	}
	want := 10 * math.Pow(1.85, 10)
	mean := got.Mean()
	if rel := math.Abs(mean-want) / want; rel > 0.05 {
		t.Errorf("mean = %v, want within 5%% of %v (rel %v)", mean, want, rel)
	}
}

func TestStochasticReproducible(t *testing.T) {
	p := pool.New(50, 10)
	a, err := Stochastic{Src: rand.NewSource(99)}.Amplify(p, Uniform(1.7), 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Stochastic{Src: rand.NewSource(99)}.Amplify(p, Uniform(1.7), 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("oligo %d differs across identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestOverflowFailsFast(t *testing.T) {
	_, err := Deterministic{}.Amplify(pool.Pool{1e10}, Uniform(2), 40)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("deterministic: err = %v, want ErrOverflow", err)
	}
}
