package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw"
	"github.com/sky-flux/opw/calibrate"
	"github.com/sky-flux/opw/model"
)

// CalibrateOptions holds flags for the calibrate command.
type CalibrateOptions struct {
	Epochs       int
	MaxDeviation float64
	FixOffsets   bool
	Output       string
}

// CalibrateResult is a fitted model with its error before and after.
type CalibrateResult struct {
	Model       model.Model `json:"model"`
	Samples     int         `json:"samples"`
	Epochs      int         `json:"epochs"`
	InitialLoss float64     `json:"initial_loss"`
	Loss        float64     `json:"loss"`
	Output      string      `json:"output,omitempty"`
}

func (r CalibrateResult) renderText(w io.Writer) {
	fmt.Fprintf(w, "%-14s%d\n", "samples:", r.Samples)
	fmt.Fprintf(w, "%-14s%d\n", "epochs:", r.Epochs)
	fmt.Fprintf(w, "%-14s%.6e\n", "initial loss:", r.InitialLoss)
	fmt.Fprintf(w, "%-14s%.6e\n", "loss:", r.Loss)
	if r.Output != "" {
		fmt.Fprintf(w, "%-14s%s\n", "written:", r.Output)
		return
	}
	data, err := model.Marshal(r.Model, model.FormatYAML)
	if err != nil {
		fmt.Fprintf(w, "%s\n", r.Model)
		return
	}
	fmt.Fprintf(w, "---\n%s", data)
}

// NewCalibrateCommand creates the calibrate command.
func NewCalibrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalibrateOptions{}

	cmd := &cobra.Command{
		Use:   "calibrate <samples-file>",
		Short: "Fit robot parameters to measured poses",
		Long: `Refine the selected robot model so that its forward kinematics match
measured flange poses.

The samples file (YAML or JSON) holds a list of joint states with the pose
a tracker observed for each. Link dimensions and joint offsets are fitted;
sign corrections are kept. The result is printed as a model file, or
written to --output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Epochs, "epochs", 50, "passes over the samples")
	cmd.Flags().Float64Var(&opts.MaxDeviation, "max-deviation", 0.05, "largest change per parameter (m or rad)")
	cmd.Flags().BoolVar(&opts.FixOffsets, "fix-offsets", false, "fit link dimensions only")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the fitted model to this file (.yaml|.yml|.json)")

	return cmd
}

func runCalibrate(rootOpts *RootOptions, opts *CalibrateOptions, path string, cmd *cobra.Command) error {
	s, err := newSession(rootOpts, cmd)
	if err != nil {
		return err
	}

	if opts.Epochs <= 0 || !(opts.MaxDeviation > 0) {
		return s.out.Fail(ExitCommandError, ErrCodeInput, "invalid calibration settings",
			fmt.Errorf("--epochs and --max-deviation must be positive"))
	}

	samples, err := calibrate.LoadSamples(path)
	if err != nil {
		return s.out.Fail(ExitCommandError, ErrCodeInput, "cannot load samples", err)
	}
	s.log.Debug("samples loaded", "path", path, "count", len(samples))

	c := calibrate.New(calibrate.Config{
		Epochs:       opts.Epochs,
		MaxDeviation: opts.MaxDeviation,
		FixOffsets:   opts.FixOffsets,
	})
	fit, err := c.Fit(cmd.Context(), s.model.Parameters, samples)
	if err != nil {
		return s.out.Fail(ExitFailure, ErrCodeCalibrate, "calibration failed", err)
	}
	s.log.Debug("calibrated", "epochs", fit.Epochs, "initial_loss", fit.InitialLoss, "loss", fit.Loss)

	result := CalibrateResult{
		Model:       calibratedModel(s.model, fit.Parameters),
		Samples:     len(samples),
		Epochs:      fit.Epochs,
		InitialLoss: fit.InitialLoss,
		Loss:        fit.Loss,
	}

	if opts.Output != "" {
		if err := writeModel(opts.Output, result.Model); err != nil {
			return s.out.Fail(ExitCommandError, ErrCodeModel, "cannot write model", err)
		}
		result.Output = opts.Output
	}
	return s.out.Success(result)
}

func calibratedModel(nominal model.Model, p opw.Parameters) model.Model {
	desc := "calibrated from " + nominal.Name
	if nominal.Description != "" {
		desc = nominal.Description + ", calibrated"
	}
	return model.Model{
		Name:        nominal.Name + "-calibrated",
		Description: desc,
		Parameters:  p,
	}
}

func writeModel(path string, m model.Model) error {
	format, err := model.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := model.Marshal(m, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
