package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw"
)

// checkTolerance is the largest pose difference a branch may show and
// still count as reproducing the input.
const checkTolerance = 1e-5

// CheckBranch is the round trip error of one branch.
type CheckBranch struct {
	Branch   opw.Branch `json:"branch"`
	Valid    bool       `json:"valid"`
	MaxError float64    `json:"max_error,omitempty"`
	OK       bool       `json:"ok"`
}

// CheckResult summarizes a forward-inverse-forward round trip.
type CheckResult struct {
	Model     string         `json:"model"`
	Joints    opw.JointState `json:"joints"`
	Branches  []CheckBranch  `json:"branches"`
	Valid     int            `json:"valid"`
	Passed    int            `json:"passed"`
	Tolerance float64        `json:"tolerance"`
}

func (r CheckResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "%-12s%s\n", "model:", r.Model)
	fmt.Fprintf(w, "%-12s%s\n", "joints:", r.Joints)
	for _, b := range r.Branches {
		switch {
		case !b.Valid:
			fmt.Fprintf(w, "  %-8s unreachable\n", b.Branch)
		case b.OK:
			fmt.Fprintf(w, "  %-8s %.3e  ok\n", b.Branch, b.MaxError)
		default:
			fmt.Fprintf(w, "  %-8s %.3e  MISMATCH\n", b.Branch, b.MaxError)
		}
	}
	fmt.Fprintf(w, "%d of %d valid branches within %g\n", r.Passed, r.Valid, r.Tolerance)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <j1> <j2> <j3> <j4> <j5> <j6>",
		Short: "Verify that inverse kinematics reproduces a pose",
		Long: `Run forward kinematics on the joints, solve the resulting pose, and
run forward kinematics on every valid branch again. Each branch is
reported with its largest pose difference.

Exits with status 1 when no branch reproduces the pose.`,
		Args:          cobra.ExactArgs(6),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, args []string, cmd *cobra.Command) error {
	s, err := newSession(opts, cmd)
	if err != nil {
		return err
	}

	q, err := parseJoints(args)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeInput, "invalid joint values", err)
	}
	if !q.IsValid() {
		return s.out.Fail(ExitCommandError, ErrCodeInput, "invalid joint values", errNonFinite)
	}

	result := roundTrip(s.solver, q)
	result.Model = s.model.Name
	s.log.Debug("check", "joints", q.String(), "valid", result.Valid, "passed", result.Passed)

	if result.Passed == 0 {
		return s.out.Fail(ExitFailure, ErrCodeCheck,
			fmt.Sprintf("no branch reproduces the pose of %s (%d valid)", q, result.Valid), nil)
	}
	for _, b := range result.Branches {
		if b.Valid && !b.OK {
			s.log.Warn("branch does not reproduce the pose", "branch", b.Branch, "max_error", b.MaxError)
		}
	}
	return s.out.Success(result)
}

// roundTrip solves the pose of q and measures each branch against it.
func roundTrip(solver *opw.Solver, q opw.JointState) CheckResult {
	pose := solver.Forward(q)
	result := CheckResult{Joints: q, Tolerance: checkTolerance}

	for i, sol := range solver.Inverse(pose) {
		b := CheckBranch{Branch: opw.Branch(i)}
		if sol.IsValid() {
			b.Valid = true
			b.MaxError = pose.MaxDifference(solver.Forward(sol))
			b.OK = b.MaxError < checkTolerance
			result.Valid++
			if b.OK {
				result.Passed++
			}
		}
		result.Branches = append(result.Branches, b)
	}
	return result
}
