package opw

import (
	"encoding/json"
	"fmt"
)

// SolverConfig configures a Solver.
// Zero values produce sensible defaults; see field comments.
type SolverConfig struct {
	Parameters           Parameters `json:"parameters"`
	SingularityThreshold float64    `json:"singularity_threshold"` // zero → SingularityThreshold
}

// Solver binds one validated robot geometry to the kinematics functions.
// It is immutable and safe for concurrent use.
type Solver struct {
	params    Parameters
	threshold float64
}

// NewSolver creates a Solver from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewSolver(cfg SolverConfig) (*Solver, error) {
	if err := cfg.Parameters.Validate(); err != nil {
		return nil, err
	}

	th := cfg.SingularityThreshold
	if th == 0 {
		th = SingularityThreshold
	}
	if th < 0 || !isFinite(th) {
		return nil, fmt.Errorf("opw: singularity threshold %g must be positive", th)
	}

	return &Solver{params: cfg.Parameters, threshold: th}, nil
}

// Parameters returns the solver's robot geometry.
func (s *Solver) Parameters() Parameters {
	return s.params
}

// SingularityThreshold returns the |θ5| below which the wrist is treated
// as aligned.
func (s *Solver) SingularityThreshold() float64 {
	return s.threshold
}

// Forward returns the tool-flange pose for joint angles q.
func (s *Solver) Forward(q JointState) Pose {
	return Forward(s.params, q)
}

// Inverse returns all eight branches for pose. See Inverse.
func (s *Solver) Inverse(pose Pose) Solutions {
	return inverse(&s.params, &pose, s.threshold)
}

// Solve returns only the branches that reach pose, in branch order.
func (s *Solver) Solve(pose Pose) []Solution {
	return s.Inverse(pose).Valid()
}

// Nearest returns the branch reaching pose that is closest to seed in
// joint space. ok is false when pose is unreachable.
func (s *Solver) Nearest(pose Pose, seed JointState) (Solution, bool) {
	return s.Inverse(pose).Nearest(seed)
}

// MarshalJSON implements json.Marshaler.
func (s *Solver) MarshalJSON() ([]byte, error) {
	return json.Marshal(SolverConfig{
		Parameters:           s.params,
		SingularityThreshold: s.threshold,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// The decoded config is validated exactly as NewSolver does.
func (s *Solver) UnmarshalJSON(data []byte) error {
	var cfg SolverConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	rebuilt, err := NewSolver(cfg)
	if err != nil {
		return err
	}
	*s = *rebuilt
	return nil
}
