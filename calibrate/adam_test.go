package calibrate

import (
	"math"
	"testing"
)

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %.12f, want %.12f", name, got, want)
	}
}

// --- Adam ---

func TestAdamUpdateDirection(t *testing.T) {
	adam := NewAdam(1e-3)

	up := adam.Update(vector{1.0}, vector{2.0})
	if up[0] >= 1.0 {
		t.Errorf("w[0] = %f, want < 1 for a positive gradient", up[0])
	}

	adam = NewAdam(1e-3)
	down := adam.Update(vector{1.0}, vector{-2.0})
	if down[0] <= 1.0 {
		t.Errorf("w[0] = %f, want > 1 for a negative gradient", down[0])
	}
}

func TestAdamBiasCorrection(t *testing.T) {
	// At step 1 the bias-corrected moments equal g and g², so the step is
	// lr regardless of gradient scale.
	for _, g := range []float64{0.5, 1, 1e3} {
		adam := NewAdam(1e-3)
		updated := adam.Update(vector{0.3}, vector{g})
		assertClose(t, "first step", 0.3-updated[0], 1e-3)
	}
}

func TestAdamMultiStep(t *testing.T) {
	adam := NewAdam(1e-3)
	params := vector{0.5}
	for i := 0; i < 10; i++ {
		params = adam.Update(params, vector{1.0})
	}
	assertClose(t, "ten constant steps", 0.5-params[0], 10e-3)
}

func TestAdamZeroGradient(t *testing.T) {
	adam := NewAdam(1e-3)
	params := vector{5.0, 3.0, 7.0}

	updated := adam.Update(params, vector{})
	if updated != params {
		t.Errorf("updated = %v, want %v for a zero gradient", updated, params)
	}
}

func TestAdamSetLR(t *testing.T) {
	adam := NewAdam(1e-3)
	adam.SetLR(1e-2)
	updated := adam.Update(vector{1.0}, vector{1.0})
	assertClose(t, "step with lr=1e-2", 1.0-updated[0], 1e-2)
}

// --- CosineAnnealing ---

func TestCosineAnnealingEndpoints(t *testing.T) {
	ca := NewCosineAnnealing(1e-3, 100)
	assertClose(t, "lr at t=0", ca.LR(), 1e-3)
	for i := 0; i < 50; i++ {
		ca.Step()
	}
	assertClose(t, "lr at T_max/2", ca.LR(), 0.5e-3)
	for i := 0; i < 50; i++ {
		ca.Step()
	}
	assertClose(t, "lr at T_max", ca.LR(), 0)
}

func TestCosineAnnealingMonotonic(t *testing.T) {
	ca := NewCosineAnnealing(1e-3, 50)
	prev := ca.LR()
	for i := 0; i < 50; i++ {
		cur := ca.Step()
		if cur > prev+1e-15 {
			t.Errorf("lr increased at step %d: %g > %g", i+1, cur, prev)
		}
		prev = cur
	}
}
