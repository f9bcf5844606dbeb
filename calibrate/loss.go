package calibrate

import (
	"github.com/sky-flux/opw"
)

// numParams is the number of fitted values: seven link dimensions followed
// by six joint offsets.
const numParams = 13

// vector is the flat parameter layout the optimizer works on.
type vector [numParams]float64

func toVector(p opw.Parameters) vector {
	v := vector{p.A1, p.A2, p.B, p.C1, p.C2, p.C3, p.C4}
	copy(v[7:], p.Offsets[:])
	return v
}

// toParameters writes v into a copy of base. Sign corrections come from base.
func (v vector) toParameters(base opw.Parameters) opw.Parameters {
	p := base
	p.A1, p.A2, p.B = v[0], v[1], v[2]
	p.C1, p.C2, p.C3, p.C4 = v[3], v[4], v[5], v[6]
	copy(p.Offsets[:], v[7:])
	return p
}

// poseError is the squared translation error plus the weighted squared
// Frobenius norm of the rotation difference.
func poseError(got, want opw.Pose, rotationWeight float64) float64 {
	d := got.Translation.Sub(want.Translation)
	e := d.Norm2()

	var r float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x := got.Rotation[i][j] - want.Rotation[i][j]
			r += x * x
		}
	}
	return e + rotationWeight*r
}

// batchLoss is the mean pose error of samples under p.
// Returns 0 for an empty batch.
func batchLoss(p opw.Parameters, samples []Sample, rotationWeight float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var total float64
	for _, s := range samples {
		total += poseError(opw.Forward(p, s.Joints), s.Pose, rotationWeight)
	}
	return total / float64(len(samples))
}

const gradEps = 1e-7

// numericalGradient computes the gradient of the batch loss w.r.t. each
// free parameter using central differences:
// dL/dw[i] ≈ (L(w[i]+ε) - L(w[i]-ε)) / (2ε). Entries where free is false
// stay zero.
func numericalGradient(v vector, base opw.Parameters, free *[numParams]bool, samples []Sample, rotationWeight float64) vector {
	var grad vector
	for i := range v {
		if !free[i] {
			continue
		}
		vPlus := v
		vPlus[i] += gradEps
		vMinus := v
		vMinus[i] -= gradEps

		lPlus := batchLoss(vPlus.toParameters(base), samples, rotationWeight)
		lMinus := batchLoss(vMinus.toParameters(base), samples, rotationWeight)

		grad[i] = (lPlus - lMinus) / (2 * gradEps)
	}
	return grad
}
