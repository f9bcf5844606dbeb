package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw"
	"github.com/sky-flux/opw/model"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Model   string // preset name
	Params  string // parameter file, overrides Model
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the opw CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "opw",
		Short: "opw - kinematics for ortho-parallel wrist robots",
		Long: `Forward and inverse kinematics for six-axis industrial robots with an
ortho-parallel base and a spherical wrist.

Robot geometry comes from a built-in model (--model) or a YAML/JSON
parameter file (--params).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Model, "model", "m", model.Default, "built-in robot model")
	cmd.PersistentFlags().StringVarP(&opts.Params, "params", "p", "", "robot parameter file (.yaml|.yml|.json)")

	cmd.AddCommand(NewModelsCommand(opts))
	cmd.AddCommand(NewFKCommand(opts))
	cmd.AddCommand(NewIKCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewCalibrateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger returns a text logger on w. Debug records are emitted only with
// --verbose so that stdout stays clean for JSON consumers.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadModel resolves the robot selected by --params or --model.
func (o *RootOptions) loadModel() (model.Model, error) {
	if o.Params != "" {
		return model.Load(o.Params)
	}
	name := o.Model
	if name == "" {
		name = model.Default
	}
	return model.Lookup(name)
}

// session bundles what every kinematics command needs.
type session struct {
	out    *OutputFormatter
	log    *slog.Logger
	model  model.Model
	solver *opw.Solver
}

// newSession builds the formatter, logger and solver for cmd. Failures are
// already reported through the formatter when an error is returned.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	s := &session{
		out: &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
		log: opts.logger(cmd.ErrOrStderr()),
	}

	m, err := opts.loadModel()
	if err != nil {
		return nil, s.out.Fail(ExitCommandError, ErrCodeModel, "cannot load robot model", err)
	}
	solver, err := opw.NewSolver(opw.SolverConfig{Parameters: m.Parameters})
	if err != nil {
		return nil, s.out.Fail(ExitCommandError, ErrCodeModel, "invalid robot model", err)
	}
	s.log.Debug("model loaded", "name", m.Name, "params", m.Parameters.String())

	s.model = m
	s.solver = solver
	return s, nil
}
