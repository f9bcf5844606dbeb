package opw

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
)

// randomJoints returns n joint states drawn uniformly from [-π, π).
func randomJoints(n int, seed int64) []JointState {
	rng := rand.New(rand.NewSource(seed))
	out := make([]JointState, n)
	for i := range out {
		for j := range out[i] {
			out[i][j] = (rng.Float64()*2 - 1) * math.Pi
		}
	}
	return out
}

// assertRoundTrip checks that pose has at least one valid branch and that
// every valid branch reproduces it.
func assertRoundTrip(t *testing.T, name string, p Parameters, pose Pose, sols Solutions) {
	t.Helper()
	valid := sols.Valid()
	if len(valid) == 0 {
		t.Errorf("%s: no valid branch", name)
		return
	}
	for _, s := range valid {
		got := Forward(p, s.Joints)
		if !got.ApproxEqual(pose, epsilon) {
			t.Errorf("%s: branch %s %v misses pose by %g", name, s.Branch, s.Joints, got.MaxDifference(pose))
		}
	}
}

func TestInverseKukaKR6(t *testing.T) {
	p := kukaKR6()
	q := JointState{0.2, 0.2, 0.2, 0.2, 0.2, 0.2}
	pose := Forward(p, q)
	sols := Inverse(p, pose)

	assertRoundTrip(t, "kuka", p, pose, sols)

	// Branch layout for this pose: the second shoulder solution is out of
	// reach and each reachable branch has a flipped twin.
	wantValid := [NumBranches]bool{true, true, false, false, true, true, false, false}
	for b, want := range wantValid {
		if got := sols[b].IsValid(); got != want {
			t.Errorf("branch %s valid = %v, want %v (%v)", Branch(b), got, want, sols[b])
		}
	}

	want := map[Branch]JointState{
		0: {0.2, 0.2, 0.2, 0.2, 0.2, 0.2},
		1: {0.2, 0.312323210, -0.008803763, 0.136098366, 0.295171990, 0.265835495},
		4: {0.2, 0.2, 0.2, -2.941592654, -0.2, 3.341592654},
		5: {0.2, 0.312323210, -0.008803763, -3.005494288, -0.295171990, 3.407428149},
	}
	for b, w := range want {
		for i := range w {
			assertFloat(t, Branch(b).String(), sols[b][i], w[i])
		}
	}
	// The unreachable shoulder still reports its axis-1 angle.
	assertFloat(t, "s1e0 joint 1", sols[2][0], 0.2+math.Pi)
}

func TestInverseRoundTripRandom(t *testing.T) {
	for name, p := range testRobots() {
		for _, q := range randomJoints(500, 42) {
			pose := Forward(p, q)
			assertRoundTrip(t, name, p, pose, Inverse(p, pose))
		}
	}
}

func TestInverseAlwaysEightBranches(t *testing.T) {
	sols := Inverse(kukaKR6(), Pose{Rotation: Identity, Translation: r3.Vector{X: 10, Y: 10, Z: 10}})
	if len(sols) != NumBranches {
		t.Fatalf("len = %d, want %d", len(sols), NumBranches)
	}
	for b, q := range sols {
		if q.IsValid() {
			t.Errorf("branch %s should be unreachable, got %v", Branch(b), q)
		}
	}
	if got := sols.Valid(); len(got) != 0 {
		t.Errorf("Valid() = %v, want empty", got)
	}
}

func TestInverseLateralOffsetUnreachable(t *testing.T) {
	// Wrist center closer to the base axis than the lateral offset b.
	p := testRobots()["staubli-tx40"]
	pose := Pose{Rotation: Identity, Translation: r3.Vector{X: 0.01, Y: 0, Z: 0.6}}
	for b, q := range Inverse(p, pose) {
		if q.IsValid() {
			t.Errorf("branch %s should be unreachable, got %v", Branch(b), q)
		}
	}
}

func TestInverseDeterministic(t *testing.T) {
	p := kukaKR6()
	pose := Forward(p, JointState{0.5, -0.3, 0.9, 1.2, -0.8, 0.1})
	a := Inverse(p, pose)
	b := Inverse(p, pose)
	for i := range a {
		for j := range a[i] {
			if math.Float64bits(a[i][j]) != math.Float64bits(b[i][j]) &&
				!(math.IsNaN(a[i][j]) && math.IsNaN(b[i][j])) {
				t.Errorf("branch %d joint %d: %v != %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestInverseFlippedBranches(t *testing.T) {
	p := kukaKR6()
	sols := Inverse(p, Forward(p, JointState{0.4, 0.1, 0.3, -1.0, 0.7, 2.0}))
	for b := Branch(0); b < 4; b++ {
		base, flip := sols[b], sols[b+4]
		if !base.IsValid() {
			continue
		}
		for i := 0; i < 3; i++ {
			if base[i] != flip[i] {
				t.Errorf("branch %s joint %d: %v != flipped %v", b, i+1, base[i], flip[i])
			}
		}
		// Sign corrections for axes 4 and 6 are -1 on this arm.
		assertFloat(t, "j4", flip[3], base[3]-math.Pi)
		assertFloat(t, "j5", flip[4], -base[4])
		assertFloat(t, "j6", flip[5], base[5]+math.Pi)
	}
}

func TestInverseSingularWrist(t *testing.T) {
	for name, p := range testRobots() {
		for _, q5 := range []float64{0, 1e-9, -1e-9, 5e-7, -5e-7, 2e-6, -2e-6, 1e-4} {
			q := JointState{0.3, -0.4, 0.5, 0.7, q5, -0.9}
			pose := Forward(p, q)
			assertRoundTrip(t, name, p, pose, Inverse(p, pose))
		}
	}
}

func TestInverseSingularWristZeroesAxis4(t *testing.T) {
	p := kukaKR6()
	pose := Forward(p, JointState{0.3, -0.4, 0.5, 0.7, 0, -0.9})
	sols := Inverse(p, pose)
	// Axis 4 has no offset and a -1 sign on this arm, so internal 0 and π
	// map to 0 and -π.
	assertFloat(t, "s0e0 j4", sols[0][3], 0)
	assertFloat(t, "s0e0f j4", sols[4][3], -math.Pi)
	// The aligned wrist still recovers the combined roll.
	assertPose(t, "s0e0", Forward(p, sols[0]), pose)
}

func TestInverseSingularityBoundaryContinuous(t *testing.T) {
	// Poses just inside and just outside the threshold solve to the same
	// pose as their source, and to each other within tolerance.
	p := kukaKR6()
	below := Forward(p, JointState{0.3, -0.4, 0.5, 0.7, 0.5e-6, -0.9})
	above := Forward(p, JointState{0.3, -0.4, 0.5, 0.7, 1.5e-6, -0.9})
	sb, ok := Inverse(p, below).Nearest(JointState{0.3, -0.4, 0.5, 0, 0, -0.2})
	if !ok {
		t.Fatal("no solution below threshold")
	}
	sa, ok := Inverse(p, above).Nearest(JointState{0.3, -0.4, 0.5, 0, 0, -0.2})
	if !ok {
		t.Fatal("no solution above threshold")
	}
	assertPose(t, "boundary", Forward(p, sb.Joints), Forward(p, sa.Joints))
}

func TestInverseCustomThreshold(t *testing.T) {
	// A larger threshold routes a slightly bent wrist through the aligned
	// solution, which reproduces the pose to within the bend.
	p := kukaKR6()
	pose := Forward(p, JointState{0.3, -0.4, 0.5, 0.7, 1e-7, -0.9})
	sols := inverse(&p, &pose, 1e-3)
	assertFloat(t, "j4", sols[0][3], 0)
	assertPose(t, "custom threshold", Forward(p, sols[0]), pose)
}
