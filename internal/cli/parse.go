package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/sky-flux/opw"
)

var errNonFinite = errors.New("joint values must be finite")

// parseJoints converts six positional arguments to a joint state.
func parseJoints(args []string) (opw.JointState, error) {
	var q opw.JointState
	if len(args) != len(q) {
		return q, fmt.Errorf("expected %d joint values, got %d", len(q), len(args))
	}
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return q, fmt.Errorf("joint %d: %w", i+1, err)
		}
		q[i] = v
	}
	return q, nil
}

// jointsFromSlice converts a --seed value to a joint state.
func jointsFromSlice(vals []float64) (opw.JointState, error) {
	var q opw.JointState
	if len(vals) != len(q) {
		return q, fmt.Errorf("expected %d joint values, got %d", len(q), len(vals))
	}
	copy(q[:], vals)
	if !q.IsValid() {
		return q, errNonFinite
	}
	return q, nil
}

// poseFromFlags builds the target pose from --translation and either
// --rotation (row-major) or --quaternion (w,x,y,z).
func poseFromFlags(translation, rotation, quaternion []float64) (opw.Pose, error) {
	if len(translation) != 3 {
		return opw.Pose{}, fmt.Errorf("--translation needs 3 values, got %d", len(translation))
	}
	t := r3.Vector{X: translation[0], Y: translation[1], Z: translation[2]}

	switch {
	case len(rotation) > 0 && len(quaternion) > 0:
		return opw.Pose{}, fmt.Errorf("--rotation and --quaternion are mutually exclusive")
	case len(rotation) > 0:
		if len(rotation) != 9 {
			return opw.Pose{}, fmt.Errorf("--rotation needs 9 values, got %d", len(rotation))
		}
		var r opw.Rotation
		for i := 0; i < 3; i++ {
			copy(r[i][:], rotation[i*3:i*3+3])
		}
		return opw.NewPose(r, t)
	case len(quaternion) > 0:
		if len(quaternion) != 4 {
			return opw.Pose{}, fmt.Errorf("--quaternion needs 4 values, got %d", len(quaternion))
		}
		q := quat.Number{Real: quaternion[0], Imag: quaternion[1], Jmag: quaternion[2], Kmag: quaternion[3]}
		return opw.PoseFromQuaternion(t, q)
	default:
		return opw.Pose{}, fmt.Errorf("one of --rotation or --quaternion is required")
	}
}

// writeRow prints a left-aligned label followed by fixed-width values.
func writeRow(w io.Writer, label string, vals ...float64) {
	fmt.Fprintf(w, "%-12s", label)
	for _, v := range vals {
		fmt.Fprintf(w, "%11.6f", v)
	}
	fmt.Fprintln(w)
}

func quatArray(q quat.Number) [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}
