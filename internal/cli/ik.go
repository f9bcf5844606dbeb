package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw"
)

// IKOptions holds flags for the ik command.
type IKOptions struct {
	Translation []float64
	Rotation    []float64
	Quaternion  []float64
	Seed        []float64
	All         bool
	Harmonize   bool
}

// IKBranch is one inverse kinematics branch. Joints is nil when the
// branch cannot reach the pose.
type IKBranch struct {
	Branch opw.Branch      `json:"branch"`
	Valid  bool            `json:"valid"`
	Joints *opw.JointState `json:"joints"`
}

// IKResult holds the branches reported by the ik command.
type IKResult struct {
	Model    string     `json:"model"`
	Branches []IKBranch `json:"branches"`
}

func (r IKResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "%-12s%s\n", "model:", r.Model)
	fmt.Fprintf(w, "%-12s", "branch")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(w, "%11s", fmt.Sprintf("j%d", i+1))
	}
	fmt.Fprintln(w)
	for _, b := range r.Branches {
		if b.Joints == nil {
			fmt.Fprintf(w, "%-12s%11s\n", b.Branch, "unreachable")
			continue
		}
		writeRow(w, b.Branch.String(), b.Joints[:]...)
	}
}

// NewIKCommand creates the ik command.
func NewIKCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IKOptions{}

	cmd := &cobra.Command{
		Use:   "ik",
		Short: "Compute joint angles for a flange pose",
		Long: `Compute the joint angles that place the flange at the given pose.

The orientation is given either as a row-major rotation matrix or as a
unit quaternion (w,x,y,z). Valid branches are printed in branch order:
s<shoulder>e<elbow>, with an "f" suffix for the flipped wrist. With --seed
only the branch closest to the seed is printed.`,
		Example: `  opw ik --translation 0.734,-0.152,0.183 --quaternion 0.4424,-0.0773,0.8801,-0.1542
  opw ik --translation 0.5,0,0.6 --rotation 0,0,1,0,1,0,-1,0,0 --all`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIK(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().Float64SliceVarP(&opts.Translation, "translation", "t", nil, "flange position x,y,z in metres")
	cmd.Flags().Float64SliceVarP(&opts.Rotation, "rotation", "r", nil, "rotation matrix r00,r01,...,r22 (row-major)")
	cmd.Flags().Float64SliceVarP(&opts.Quaternion, "quaternion", "q", nil, "orientation quaternion w,x,y,z")
	cmd.Flags().Float64SliceVar(&opts.Seed, "seed", nil, "print only the branch nearest to j1,...,j6")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "include unreachable branches")
	cmd.Flags().BoolVar(&opts.Harmonize, "harmonize", false, "shift joints into (-pi, pi]")
	_ = cmd.MarkFlagRequired("translation")
	cmd.MarkFlagsMutuallyExclusive("rotation", "quaternion")

	return cmd
}

func runIK(rootOpts *RootOptions, opts *IKOptions, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}

	pose, err := poseFromFlags(opts.Translation, opts.Rotation, opts.Quaternion)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeInput, "invalid pose", err)
	}

	sols := s.solver.Inverse(pose)
	if opts.Harmonize {
		sols = sols.Harmonized()
	}
	valid := sols.Valid()
	s.log.Debug("inverse", "translation", pose.Translation, "valid", len(valid))
	if len(valid) == 0 {
		return s.out.Fail(ExitFailure, ErrCodeNoSolution, "pose is unreachable", nil)
	}

	result := IKResult{Model: s.model.Name}

	if opts.Seed != nil {
		seed, err := jointsFromSlice(opts.Seed)
		if err != nil {
			return s.out.Fail(ExitCommandError, ErrCodeInput, "invalid seed", err)
		}
		if opts.All || opts.Harmonize {
			s.log.Warn("--all and --harmonize are ignored with --seed")
		}
		sol, _ := sols.Nearest(seed)
		result.Branches = []IKBranch{{Branch: sol.Branch, Valid: true, Joints: &sol.Joints}}
		return s.out.Success(result)
	}

	for i, q := range sols {
		q := q // per-iteration copy; go.mod targets Go 1.21 loop semantics
		if !q.IsValid() {
			if opts.All {
				result.Branches = append(result.Branches, IKBranch{Branch: opw.Branch(i)})
			}
			continue
		}
		result.Branches = append(result.Branches, IKBranch{Branch: opw.Branch(i), Valid: true, Joints: &q})
	}
	return s.out.Success(result)
}
