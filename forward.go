package opw

import (
	"math"

	"github.com/golang/geo/r3"
)

// Forward returns the tool-flange pose for joint angles q.
//
// Forward never fails. Non-finite joints or degenerate parameters simply
// propagate into the returned pose.
func Forward(p Parameters, q JointState) Pose {
	t := p.toInternal(q)

	psi3 := math.Atan2(p.A2, p.C3)
	k := math.Hypot(p.A2, p.C3)

	// Wrist center in the arm plane, before the axis-1 rotation.
	cx1 := p.C2*math.Sin(t[1]) + k*math.Sin(t[1]+t[2]+psi3) + p.A1
	cy1 := p.B
	cz1 := p.C2*math.Cos(t[1]) + k*math.Cos(t[1]+t[2]+psi3)

	s1, c1 := math.Sincos(t[0])
	center := r3.Vector{
		X: cx1*c1 - cy1*s1,
		Y: cx1*s1 + cy1*c1,
		Z: cz1 + p.C1,
	}

	r := armRotation(t[0], t[1], t[2]).Mul(wristRotation(t[3], t[4], t[5]))
	return Pose{
		Rotation:    r,
		Translation: center.Add(r.Col(2).Mul(p.C4)),
	}
}

// armRotation is the orientation of the frame at the wrist center for
// internal angles of axes 1 to 3.
func armRotation(q1, q2, q3 float64) Rotation {
	s1, c1 := math.Sincos(q1)
	s2, c2 := math.Sincos(q2)
	s3, c3 := math.Sincos(q3)
	return Rotation{
		{c1*c2*c3 - c1*s2*s3, -s1, c1*c2*s3 + c1*s2*c3},
		{s1*c2*c3 - s1*s2*s3, c1, s1*c2*s3 + s1*s2*c3},
		{-s2*c3 - c2*s3, 0, -s2*s3 + c2*c3},
	}
}

// wristRotation is the spherical wrist's ZYZ rotation for internal angles
// of axes 4 to 6.
func wristRotation(q4, q5, q6 float64) Rotation {
	s4, c4 := math.Sincos(q4)
	s5, c5 := math.Sincos(q5)
	s6, c6 := math.Sincos(q6)
	return Rotation{
		{c4*c5*c6 - s4*s6, -c4*c5*s6 - s4*c6, c4 * s5},
		{s4*c5*c6 + c4*s6, -s4*c5*s6 + c4*c6, s4 * s5},
		{-s5 * c6, s5 * s6, c5},
	}
}
