package gen

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sql/schema"
)

// WriteDDL writes the CREATE statements of s to w, enclosed in guard
// comments naming the unit and dialect. Foreign keys are added after all
// tables exist, except on SQLite where they can only be declared inline.
func (c *Context) WriteDDL(w io.Writer, s *schema.Schema) error {
	restore := c.Diverge(w)
	defer restore()

	p := &printer{w: c.Out()}
	guard := c.MakeGuard(unitName(s.Unit) + "_" + string(c.Dialect()))
	p.printf("-- begin %s\n", guard)
	inline := c.Dialect() == dialect.SQLite
	for _, t := range s.Tables {
		p.printf("\n")
		c.createTable(p, t, inline)
		for _, idx := range t.Indexes {
			p.printf("CREATE %sINDEX %s ON %s (%s);\n", unique(idx.Unique), c.Quote(idx.Name), c.Quote(t.Name), c.quoteList(idx.Columns))
		}
	}
	if !inline {
		for _, t := range s.Tables {
			for _, fk := range t.ForeignKeys {
				p.printf("\nALTER TABLE %s\n  ADD %s;\n", c.Quote(t.Name), c.foreignKey(fk))
			}
		}
	}
	p.printf("\n-- end %s\n", guard)
	return p.err
}

func (c *Context) createTable(p *printer, t *schema.Table, inline bool) {
	p.printf("CREATE TABLE %s (", c.Quote(t.Name))
	var lines []string
	for _, col := range t.Columns {
		line := c.Quote(col.Name) + " " + col.Raw
		if col.Nullable {
			line += " NULL"
		} else {
			line += " NOT NULL"
		}
		if t.PrimaryKey != nil && t.PrimaryKey.Auto && len(t.PrimaryKey.Columns) == 1 && t.PrimaryKey.Has(col.Name) {
			if auto := c.autoClause(); auto != "" {
				line += " " + auto
			}
		}
		if col.Options != "" {
			line += " " + col.Options
		}
		lines = append(lines, line)
	}
	if t.PrimaryKey != nil && len(t.PrimaryKey.Columns) > 0 {
		lines = append(lines, "PRIMARY KEY ("+c.quoteList(t.PrimaryKey.Columns)+")")
	}
	if inline {
		for _, fk := range t.ForeignKeys {
			lines = append(lines, c.foreignKey(fk))
		}
	}
	p.printf("\n  %s);\n", strings.Join(lines, ",\n  "))
}

func (c *Context) foreignKey(fk *schema.ForeignKey) string {
	s := fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		c.Quote(fk.Name), c.quoteList(fk.Columns), c.Quote(fk.RefTable), c.quoteList(fk.RefColumns))
	if fk.OnDelete != schema.NoAction {
		s += " ON DELETE " + string(fk.OnDelete)
	}
	return s
}

// autoClause returns the column attribute making an integer key
// database-assigned. SQLite assigns INTEGER PRIMARY KEY values by itself.
func (c *Context) autoClause() string {
	switch c.Dialect() {
	case dialect.MSSQL:
		return "IDENTITY"
	case dialect.MySQL:
		return "AUTO_INCREMENT"
	case dialect.Postgres:
		return "GENERATED BY DEFAULT AS IDENTITY"
	}
	return ""
}

func (c *Context) quoteList(names []string) string {
	qs := make([]string, len(names))
	for i, n := range names {
		qs[i] = c.Quote(n)
	}
	return strings.Join(qs, ", ")
}

func unique(u bool) string {
	if u {
		return "UNIQUE "
	}
	return ""
}

// unitName returns the base name of a model file without its extension.
func unitName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
