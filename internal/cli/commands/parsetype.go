package commands

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/compiler/semantics"
)

// NewParseTypeCommand creates the parse-type command.
func NewParseTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-type <type>",
		Short: "Parse an SQL type declaration",
		Long: `Parse a column type declaration with the grammar of every configured
dialect, after the custom type rules of the configuration, and print
what each dialect understood.`,
		Example: `  relgen parse-type --dialect mssql "NVARCHAR(100)"
  relgen parse-type "DECIMAL(10,2)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runParseType(cc, args[0])
		},
	}
}

func runParseType(cc *CommandContext, raw string) error {
	cfg, err := gen.NewConfig(cc.Cfg.Options(cc.Logger)...)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(cc.Out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dialect", "Type", "Kind", "Precision", "Scale", "To", "From"})

	var (
		merr *multierror.Error
		unit = semantics.NewUnit("")
	)
	for _, d := range cfg.Dialects {
		c, err := gen.NewContext(gen.NewPass(unit, semantics.NewAttrs(), d), cfg, io.Discard)
		if err != nil {
			return err
		}
		st, err := c.ResolveSQLType(raw)
		c.Close()
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", d, err))
			continue
		}
		prec := optional(st.HasPrec, st.Prec)
		if st.Unbounded() {
			prec = "MAX"
		}
		t.AppendRow(table.Row{d, st, st.Kind, prec, optional(st.HasScale, st.Scale), st.ToExpr(), st.FromExpr()})
	}
	if t.Length() > 0 {
		t.Render()
	}
	return merr.ErrorOrNil()
}

func optional(ok bool, v uint32) string {
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}
