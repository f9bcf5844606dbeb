package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sky-flux/opw/model"
)

// ModelsResult lists the built-in robot models.
type ModelsResult struct {
	Models []model.Model `json:"models"`
}

func (r ModelsResult) renderText(w io.Writer) {
	for _, m := range r.Models {
		fmt.Fprintf(w, "%-20s %s\n", m.Name, m.Description)
		fmt.Fprintf(w, "  %s\n", m.Parameters)
	}
}

// NewModelsCommand creates the models command.
func NewModelsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "models",
		Short:         "List built-in robot models",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(rootOpts, cmd)
		},
	}
	return cmd
}

func runModels(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	var result ModelsResult
	for _, name := range model.Names() {
		m, err := model.Lookup(name)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeModel, "preset lookup failed", err)
		}
		result.Models = append(result.Models, m)
	}
	return formatter.Success(result)
}
