package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw"
)

// FKResult is the pose of the tool flange for a joint state.
type FKResult struct {
	Model       string         `json:"model"`
	Joints      opw.JointState `json:"joints"`
	Translation [3]float64     `json:"translation"`
	Rotation    opw.Rotation   `json:"rotation"`
	Quaternion  [4]float64     `json:"quaternion"` // w, x, y, z
}

func newFKResult(name string, q opw.JointState, pose opw.Pose) FKResult {
	return FKResult{
		Model:       name,
		Joints:      q,
		Translation: [3]float64{pose.Translation.X, pose.Translation.Y, pose.Translation.Z},
		Rotation:    pose.Rotation,
		Quaternion:  quatArray(pose.Quaternion()),
	}
}

func (r FKResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "%-12s%s\n", "model:", r.Model)
	fmt.Fprintf(w, "%-12s%s\n", "joints:", r.Joints)
	writeRow(w, "translation:", r.Translation[:]...)
	for i, row := range r.Rotation {
		label := ""
		if i == 0 {
			label = "rotation:"
		}
		writeRow(w, label, row[:]...)
	}
	writeRow(w, "quaternion:", r.Quaternion[:]...)
}

// NewFKCommand creates the fk command.
func NewFKCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fk <j1> <j2> <j3> <j4> <j5> <j6>",
		Short: "Compute the flange pose for six joint angles",
		Long: `Compute the flange pose for six joint angles in radians.

Use "--" before the joint values when the first one is negative:

  opw fk -- -0.5 0.3 0.2 0 0.1 0`,
		Args:          cobra.ExactArgs(6),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFK(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runFK(opts *RootOptions, args []string, cmd *cobra.Command) error {
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

	pose := s.solver.Forward(q)
	s.log.Debug("forward", "joints", q.String(), "translation", pose.Translation)
	return s.out.Success(newFKResult(s.model.Name, q, pose))
}
