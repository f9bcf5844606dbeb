package opw

import (
	"math"

	"github.com/golang/geo/r3"
)

// SingularityThreshold is the default |θ5| below which axes 4 and 6 are
// treated as aligned.
const SingularityThreshold = 1e-6

// Inverse returns all eight joint solutions reaching pose, indexed by
// Branch.
//
// Inverse never fails. A branch the arm cannot reach (target out of the
// workspace, lateral offset B larger than the target radius) carries NaN
// components, which IsValid and Solutions.Valid filter out.
func Inverse(p Parameters, pose Pose) Solutions {
	return inverse(&p, &pose, SingularityThreshold)
}

// armSolution is one (θ1, θ2, θ3) triple with its precomputed trigonometry.
type armSolution struct {
	q1, q2, q3 float64
	s1, c1     float64 // sin/cos θ1
	s23, c23   float64 // sin/cos (θ2+θ3)
}

func newArmSolution(q1, q2, q3 float64) armSolution {
	a := armSolution{q1: q1, q2: q2, q3: q3}
	a.s1, a.c1 = math.Sincos(q1)
	a.s23, a.c23 = math.Sincos(q2 + q3)
	return a
}

func inverse(p *Parameters, pose *Pose, threshold float64) Solutions {
	r := &pose.Rotation
	c := pose.Translation.Sub(r.Col(2).Mul(p.C4))

	arms := solveArm(p, c)

	var internal [NumBranches]JointState
	for i, a := range arms {
		// m = z_pose · z_arm, the cosine of the wrist bend. Rounding can push
		// |m| a few ulps past 1 on a straight wrist.
		m := r[0][2]*a.s23*a.c1 + r[1][2]*a.s23*a.s1 + r[2][2]*a.c23
		q5 := math.Atan2(math.Sqrt(math.Max(0, 1-m*m)), m)

		var q4, q6 float64
		if math.Abs(q5) < threshold {
			q4, q6 = alignedWrist(r, a.q1)
		} else {
			q4, q6 = nominalWrist(r, a)
		}

		internal[i] = JointState{a.q1, a.q2, a.q3, q4, q5, q6}
		internal[i+4] = JointState{a.q1, a.q2, a.q3, q4 + math.Pi, -q5, q6 - math.Pi}
	}

	var out Solutions
	for i := range internal {
		out[i] = p.fromInternal(internal[i])
	}
	return out
}

// solveArm solves axes 1 to 3 for wrist center c. Entries 0-1 share the
// first shoulder angle, 2-3 the second; even entries take the first elbow
// solution.
func solveArm(p *Parameters, c r3.Vector) [4]armSolution {
	nx1 := math.Sqrt(c.X*c.X+c.Y*c.Y-p.B*p.B) - p.A1

	// Shoulder: the lateral offset B shifts the arm plane off the base axis.
	base := math.Atan2(c.Y, c.X)
	lateral := math.Atan2(p.B, nx1+p.A1)
	q1i := base - lateral
	q1ii := base + lateral - math.Pi

	// Elbow: law of cosines on the triangle (C2, κ, s), where s is the
	// distance from axis 2 to the wrist center for each shoulder solution.
	dz := c.Z - p.C1
	nx2 := nx1 + 2*p.A1
	s1sq := nx1*nx1 + dz*dz
	s2sq := nx2*nx2 + dz*dz
	kappaSq := p.A2*p.A2 + p.C3*p.C3
	c2sq := p.C2 * p.C2

	s1 := math.Sqrt(s1sq)
	s2 := math.Sqrt(s2sq)

	alpha1 := math.Acos((s1sq + c2sq - kappaSq) / (2 * s1 * p.C2))
	beta1 := math.Atan2(nx1, dz)
	q2i := -alpha1 + beta1
	q2ii := alpha1 + beta1

	alpha2 := math.Acos((s2sq + c2sq - kappaSq) / (2 * s2 * p.C2))
	beta2 := math.Atan2(nx2, dz)
	q2iii := -alpha2 - beta2
	q2iv := alpha2 - beta2

	kappa2 := 2 * p.C2 * math.Sqrt(kappaSq)
	psi3 := math.Atan2(p.A2, p.C3)
	gamma1 := math.Acos((s1sq - c2sq - kappaSq) / kappa2)
	gamma2 := math.Acos((s2sq - c2sq - kappaSq) / kappa2)

	return [4]armSolution{
		newArmSolution(q1i, q2i, gamma1-psi3),
		newArmSolution(q1i, q2ii, -gamma1-psi3),
		newArmSolution(q1ii, q2iii, gamma2-psi3),
		newArmSolution(q1ii, q2iv, -gamma2-psi3),
	}
}

// nominalWrist recovers θ4 and θ6 when the wrist is bent, by expressing the
// pose's Z and Y/X columns in the frame of arm solution a.
func nominalWrist(r *Rotation, a armSolution) (q4, q6 float64) {
	y4 := r[1][2]*a.c1 - r[0][2]*a.s1
	x4 := r[0][2]*a.c23*a.c1 + r[1][2]*a.c23*a.s1 - r[2][2]*a.s23

	y6 := r[0][1]*a.s23*a.c1 + r[1][1]*a.s23*a.s1 + r[2][1]*a.c23
	x6 := -r[0][0]*a.s23*a.c1 - r[1][0]*a.s23*a.s1 - r[2][0]*a.c23

	return math.Atan2(y4, x4), math.Atan2(y6, x6)
}

// alignedWrist handles θ5 ≈ 0, where axes 4 and 6 coincide and only their
// combined roll is observable. θ4 is fixed at zero. With θ4 = θ5 = 0 the
// frame at axis 5 has its Y axis along (-sin θ1, cos θ1, 0) and its Z axis
// equal to the pose's, so θ6 is the angle of the pose's X axis in that
// frame.
func alignedWrist(r *Rotation, q1 float64) (q4, q6 float64) {
	s1, c1 := math.Sincos(q1)
	yc := r3.Vector{X: -s1, Y: c1}
	zc := r.Col(2)
	xc := yc.Cross(zc)

	xe := r.Col(0)
	return 0, math.Atan2(yc.Dot(xe), xc.Dot(xe))
}
