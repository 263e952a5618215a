package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model>",
		Short: "Check a model without writing any output",
		Long: `Validate the model and derive its relational schema for every
configured dialect. Diagnostics are printed to stderr; the command fails
when any of them is an error.`,
		Example: `  # Check a model for all dialects
  relgen validate model.yaml

  # Check it for SQL Server only
  relgen validate --dialect mssql model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			res, err := cc.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, o := range res.Outputs {
				_, _ = fmt.Fprintf(cc.Out, "%s: ok (%d tables)\n", o.Dialect, len(o.Schema.Tables))
			}
			return nil
		},
	}
}
