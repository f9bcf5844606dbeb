package opw

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// Rotation is a row-major 3x3 rotation matrix.
type Rotation [3][3]float64

// Identity is the rotation that leaves every vector unchanged.
var Identity = Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Col returns column j as a vector. Column 2 is the frame's Z axis.
func (r Rotation) Col(j int) r3.Vector {
	return r3.Vector{X: r[0][j], Y: r[1][j], Z: r[2][j]}
}

// Apply rotates v.
func (r Rotation) Apply(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// Mul returns the product r·o.
func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[i][0]*o[0][j] + r[i][1]*o[1][j] + r[i][2]*o[2][j]
		}
	}
	return out
}

// Transpose returns the inverse rotation.
func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// Dense copies r into a gonum matrix.
func (r Rotation) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		r[0][0], r[0][1], r[0][2],
		r[1][0], r[1][1], r[1][2],
		r[2][0], r[2][1], r[2][2],
	})
}

// IsRotation reports whether r is orthonormal with determinant +1, each
// within tol.
func (r Rotation) IsRotation(tol float64) bool {
	m := r.Dense()
	var rrt mat.Dense
	rrt.Mul(m, m.T())
	eye := mat.NewDiagDense(3, []float64{1, 1, 1})
	if !mat.EqualApprox(&rrt, eye, tol) {
		return false
	}
	return math.Abs(mat.Det(m)-1) <= tol
}

// Quaternion converts r to a unit quaternion with a non-negative real part.
func (r Rotation) Quaternion() quat.Number {
	var q quat.Number
	trace := r[0][0] + r[1][1] + r[2][2]
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (r[2][1] - r[1][2]) * s,
			Jmag: (r[0][2] - r[2][0]) * s,
			Kmag: (r[1][0] - r[0][1]) * s,
		}
	case r[0][0] > r[1][1] && r[0][0] > r[2][2]:
		s := 2 * math.Sqrt(1+r[0][0]-r[1][1]-r[2][2])
		q = quat.Number{
			Real: (r[2][1] - r[1][2]) / s,
			Imag: 0.25 * s,
			Jmag: (r[0][1] + r[1][0]) / s,
			Kmag: (r[0][2] + r[2][0]) / s,
		}
	case r[1][1] > r[2][2]:
		s := 2 * math.Sqrt(1+r[1][1]-r[0][0]-r[2][2])
		q = quat.Number{
			Real: (r[0][2] - r[2][0]) / s,
			Imag: (r[0][1] + r[1][0]) / s,
			Jmag: 0.25 * s,
			Kmag: (r[1][2] + r[2][1]) / s,
		}
	default:
		s := 2 * math.Sqrt(1+r[2][2]-r[0][0]-r[1][1])
		q = quat.Number{
			Real: (r[1][0] - r[0][1]) / s,
			Imag: (r[0][2] + r[2][0]) / s,
			Jmag: (r[1][2] + r[2][1]) / s,
			Kmag: 0.25 * s,
		}
	}
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	return q
}

// RotationFromQuaternion builds a rotation from q. q is normalized first;
// the zero quaternion is rejected.
func RotationFromQuaternion(q quat.Number) (Rotation, error) {
	n := quat.Abs(q)
	if n == 0 || !isFinite(n) {
		return Rotation{}, fmt.Errorf("%w: quaternion %v has no direction", ErrInvalidRotation, q)
	}
	q = quat.Scale(1/n, q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return Rotation{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}, nil
}

// Pose is the tool-flange frame in the robot base frame.
type Pose struct {
	Rotation    Rotation  `json:"rotation"`
	Translation r3.Vector `json:"translation"`
}

// NewPose returns a pose after checking that r is a proper rotation
// within 1e-6.
func NewPose(r Rotation, t r3.Vector) (Pose, error) {
	if !r.IsRotation(1e-6) {
		return Pose{}, fmt.Errorf("%w: %v", ErrInvalidRotation, r)
	}
	return Pose{Rotation: r, Translation: t}, nil
}

// PoseFromQuaternion builds a pose from a translation and an orientation
// quaternion (w, x, y, z).
func PoseFromQuaternion(t r3.Vector, q quat.Number) (Pose, error) {
	r, err := RotationFromQuaternion(q)
	if err != nil {
		return Pose{}, err
	}
	return Pose{Rotation: r, Translation: t}, nil
}

// Quaternion returns the orientation of p.
func (p Pose) Quaternion() quat.Number {
	return p.Rotation.Quaternion()
}

// Homogeneous returns the 4x4 homogeneous transform of p.
func (p Pose) Homogeneous() *mat.Dense {
	r, t := p.Rotation, p.Translation
	return mat.NewDense(4, 4, []float64{
		r[0][0], r[0][1], r[0][2], t.X,
		r[1][0], r[1][1], r[1][2], t.Y,
		r[2][0], r[2][1], r[2][2], t.Z,
		0, 0, 0, 1,
	})
}

// ApproxEqual reports whether every rotation entry and translation
// component of p and o differ by less than tol.
func (p Pose) ApproxEqual(o Pose, tol float64) bool {
	return p.MaxDifference(o) < tol
}

// MaxDifference is the largest absolute difference between corresponding
// rotation entries or translation components. NaN anywhere yields NaN.
func (p Pose) MaxDifference(o Pose) float64 {
	var worst float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			worst = maxDiff(worst, p.Rotation[i][j], o.Rotation[i][j])
		}
	}
	worst = maxDiff(worst, p.Translation.X, o.Translation.X)
	worst = maxDiff(worst, p.Translation.Y, o.Translation.Y)
	worst = maxDiff(worst, p.Translation.Z, o.Translation.Z)
	return worst
}

func maxDiff(worst, a, b float64) float64 {
	d := math.Abs(a - b)
	if math.IsNaN(d) || math.IsNaN(worst) {
		return math.NaN()
	}
	return math.Max(worst, d)
}
