package opw

import (
	"math"
	"testing"
)

func TestJointStateIsValid(t *testing.T) {
	tests := []struct {
		name string
		q    JointState
		want bool
	}{
		{"zero", JointState{}, true},
		{"finite", JointState{0.2, -3, 7, 1e9, -1e-9, 0}, true},
		{"NaN first", JointState{math.NaN(), 0, 0, 0, 0, 0}, false},
		{"NaN last", JointState{0, 0, 0, 0, 0, math.NaN()}, false},
		{"+Inf", JointState{0, 0, math.Inf(1), 0, 0, 0}, false},
		{"-Inf", JointState{0, 0, 0, math.Inf(-1), 0, 0}, false},
	}
	for _, tt := range tests {
		if got := tt.q.IsValid(); got != tt.want {
			t.Errorf("%s: IsValid() = %v, want %v", tt.name, got, tt.want)
		}
		if got := IsValid(tt.q); got != tt.want {
			t.Errorf("%s: IsValid(q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHarmonizeTowardZero(t *testing.T) {
	in := JointState{0.5, 4.0, -4.0, math.Pi, -math.Pi, 3 * math.Pi}
	got := HarmonizeTowardZero(in)
	want := JointState{0.5, 4.0 - 2*math.Pi, -4.0 + 2*math.Pi, math.Pi, math.Pi, math.Pi}
	for i := range want {
		assertFloat(t, "harmonized", got[i], want[i])
	}
	// Input is passed by value and left untouched.
	if in[1] != 4.0 {
		t.Errorf("input mutated: in[1] = %f", in[1])
	}
}

func TestHarmonizeTowardZeroRange(t *testing.T) {
	// Every angle within one turn of the principal range lands in (-π, π].
	for v := -2*math.Pi + 0.01; v < 2*math.Pi; v += 0.05 {
		got := HarmonizeTowardZero(JointState{v, v, v, v, v, v})
		for i, g := range got {
			if g <= -math.Pi || g > math.Pi {
				t.Fatalf("HarmonizeTowardZero(%f)[%d] = %f, outside (-π, π]", v, i, g)
			}
		}
	}
}

func TestHarmonizeTowardZeroKeepsNaN(t *testing.T) {
	got := HarmonizeTowardZero(JointState{math.NaN(), 1, 1, 1, 1, 1})
	if !math.IsNaN(got[0]) {
		t.Errorf("got[0] = %f, want NaN", got[0])
	}
}

func TestJointStateString(t *testing.T) {
	q := JointState{0.2, -0.2, 0, 1.5, math.Pi, math.NaN()}
	want := "[0.200000 -0.200000 0.000000 1.500000 3.141593 NaN]"
	if got := q.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestJointStateUnwrapToward(t *testing.T) {
	ref := JointState{0, 3, -3, 10, 0, 0}
	q := JointState{2 * math.Pi, -3, 3, 0, 0.5, -6}
	got := q.unwrapToward(ref)
	want := JointState{0, -3 + 2*math.Pi, 3 - 2*math.Pi, 4 * math.Pi, 0.5, -6 + 2*math.Pi}
	for i := range want {
		assertFloat(t, "unwrapped", got[i], want[i])
	}
}
