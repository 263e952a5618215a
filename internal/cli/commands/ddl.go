package commands

import (
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/compiler/gen"
)

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ddl <model>",
		Short: "Write the CREATE statements of a model",
		Long: `Write the CREATE TABLE and CREATE INDEX statements of the model for
every configured dialect. With --output, one <model>_<dialect>.sql file
per dialect is written to the directory; otherwise the statements go to
stdout.`,
		Example: `  relgen ddl model.yaml
  relgen ddl -o schema/ --dialect mssql,pgsql model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runDDL(cmd, cc, args[0])
		},
	}
}

func runDDL(cmd *cobra.Command, cc *CommandContext, path string) error {
	res, err := cc.Generate(cmd.Context(), path, gen.WithEmitter(gen.EmitDDL))
	if err != nil {
		return err
	}
	return cc.WriteOutputs(cmd.Context(), path, res, "sql")
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <model>",
		Short: "Write the Go snapshot of a model's schema",
		Long: `Write a Go source file describing the tables and columns derived for
each dialect. The package is set with --package and defaults to the
dialect name. With --output, each dialect's file is written to its own
directory and formatted with goimports.`,
		Example: `  relgen snapshot --package model model.yaml
  relgen snapshot -o internal/schema model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			res, err := cc.Generate(cmd.Context(), args[0], gen.WithEmitter(gen.EmitSnapshot(cc.Cfg.Package)))
			if err != nil {
				return err
			}
			return cc.WriteOutputs(cmd.Context(), args[0], res, "go")
		},
	}
}
