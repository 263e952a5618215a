package commands

import (
	"fmt"
	"io"
	"strings"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/dialect/sql/schema"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <model>",
		Short: "Show the relational schema derived from a model",
		Long: `Show the tables and columns derived from the model for every
configured dialect.

The table format lists each column with its declared type, nullability
and keys. The json and msgpack formats write the full schema, one
document per dialect, for consumption by other tools.`,
		Example: `  relgen schema model.yaml
  relgen schema --format json --dialect pgsql model.yaml
  relgen schema --format msgpack -o build/ model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if cc.Cfg.Format == "table" {
				res, err := cc.Generate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, o := range res.Outputs {
					if err := renderSchema(cc.Out, o); err != nil {
						return err
					}
				}
				return nil
			}
			f, err := schema.ParseFormat(cc.Cfg.Format)
			if err != nil {
				return err
			}
			res, err := cc.Generate(cmd.Context(), args[0], gen.WithEmitter(gen.EmitEncoded(f)))
			if err != nil {
				return err
			}
			return cc.WriteOutputs(cmd.Context(), args[0], res, string(f))
		},
	}
}

// renderSchema prints the columns of every table of o.
func renderSchema(w io.Writer, o *gen.Output) error {
	s, err := schema.ToAtlas(string(o.Dialect), o.Schema)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(string(o.Dialect))
	t.AppendHeader(table.Row{"Table", "Column", "Type", "Null", "Key"})
	for _, at := range s.Tables {
		for _, c := range at.Columns {
			t.AppendRow(table.Row{at.Name, c.Name, c.Type.Raw, nullable(c.Type.Null), columnKeys(at, c)})
		}
	}
	t.Render()
	return nil
}

func nullable(null bool) string {
	if null {
		return "NULL"
	}
	return "NOT NULL"
}

// columnKeys describes the primary and foreign keys c belongs to.
func columnKeys(t *atlas.Table, c *atlas.Column) string {
	var keys []string
	if t.PrimaryKey != nil {
		for _, p := range t.PrimaryKey.Parts {
			if p.C == c {
				keys = append(keys, "PK")
				break
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		for i, fc := range fk.Columns {
			if fc == c {
				keys = append(keys, fmt.Sprintf("FK %s(%s)", fk.RefTable.Name, fk.RefColumns[i].Name))
			}
		}
	}
	return strings.Join(keys, ", ")
}
