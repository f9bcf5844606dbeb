package opw

import (
	"fmt"
	"math"
	"strings"
)

// JointState holds six joint angles in radians, index 0 for axis 1.
// Non-finite components mark a branch without a solution.
type JointState [6]float64

// IsValid reports whether all six joint angles are finite.
func (q JointState) IsValid() bool {
	for _, v := range q {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// IsValid reports whether all six joint angles of q are finite.
func IsValid(q JointState) bool {
	return q.IsValid()
}

// HarmonizeTowardZero shifts each angle by one turn when it lies outside
// (-π, π]. Angles further than one turn out of range are shifted only once.
func HarmonizeTowardZero(q JointState) JointState {
	for i, v := range q {
		if v > math.Pi {
			q[i] = v - 2*math.Pi
		} else if v <= -math.Pi {
			q[i] = v + 2*math.Pi
		}
	}
	return q
}

// String formats the joints as "[j1 j2 j3 j4 j5 j6]" with six decimals.
func (q JointState) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range q {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.6f", v)
	}
	b.WriteByte(']')
	return b.String()
}

// unwrapToward shifts each angle by whole turns to within π of ref.
func (q JointState) unwrapToward(ref JointState) JointState {
	for i := range q {
		q[i] = ref[i] + math.Remainder(q[i]-ref[i], 2*math.Pi)
	}
	return q
}

// distanceSquared is the squared Euclidean distance in joint space.
func (q JointState) distanceSquared(other JointState) float64 {
	var d float64
	for i := range q {
		diff := q[i] - other[i]
		d += diff * diff
	}
	return d
}
