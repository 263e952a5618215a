package gen

import (
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/relgen/dialect/sql/schema"
)

// WriteSnapshot renders s as Go source of package pkg to w. Each table
// becomes a variable named Table followed by its class and member path,
// holding the resolved columns together with their conversion expressions.
func (c *Context) WriteSnapshot(w io.Writer, s *schema.Schema, pkg string) error {
	restore := c.Diverge(w)
	defer restore()

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by relgen. DO NOT EDIT.")

	f.Comment("Dialect is the database dialect the snapshot was resolved for.")
	f.Const().Id("Dialect").Op("=").Lit(s.Dialect)

	f.Comment("Column is a resolved table column.")
	f.Type().Id("Column").Struct(
		jen.Id("Name").String(),
		jen.Id("Type").String(),
		jen.Id("Nullable").Bool(),
		jen.Id("Role").String(),
		jen.Comment("To and From convert values; (?) stands for the value."),
		jen.Id("To").String(),
		jen.Id("From").String(),
	)
	f.Comment("Table is a resolved table.")
	f.Type().Id("Table").Struct(
		jen.Id("Name").String(),
		jen.Id("Columns").Index().Id("Column"),
		jen.Id("PrimaryKey").Index().String(),
	)

	var (
		all  []jen.Code
		used = make(map[string]bool)
	)
	for _, t := range s.Tables {
		name := snapshotName(t, used)
		cols := make([]jen.Code, 0, len(t.Columns))
		for _, col := range t.Columns {
			cols = append(cols, jen.Values(jen.Dict{
				jen.Id("Name"):     jen.Lit(col.Name),
				jen.Id("Type"):     jen.Lit(col.Raw),
				jen.Id("Nullable"): jen.Lit(col.Nullable),
				jen.Id("Role"):     jen.Lit(string(col.Role)),
				jen.Id("To"):       jen.Lit(c.ConvertExpr(col.Type, true)),
				jen.Id("From"):     jen.Lit(c.ConvertExpr(col.Type, false)),
			}))
		}
		fields := jen.Dict{
			jen.Id("Name"):    jen.Lit(t.Name),
			jen.Id("Columns"): jen.Index().Id("Column").Values(cols...),
		}
		if t.PrimaryKey != nil {
			keys := make([]jen.Code, len(t.PrimaryKey.Columns))
			for i, k := range t.PrimaryKey.Columns {
				keys[i] = jen.Lit(k)
			}
			fields[jen.Id("PrimaryKey")] = jen.Index().String().Values(keys...)
		}
		f.Commentf("%s is the %s table.", name, t.Name)
		f.Var().Id(name).Op("=").Id("Table").Values(fields)
		all = append(all, jen.Op("&").Id(name))
	}
	f.Comment("Tables lists every table in creation order.")
	f.Var().Id("Tables").Op("=").Index().Op("*").Id("Table").Values(all...)
	return f.Render(c.Out())
}

// snapshotName returns the exported variable name of table t: Table
// followed by the flattened class and member path, with a counter suffix
// when an earlier table took the name.
func snapshotName(t *schema.Table, used map[string]bool) string {
	name := t.Class
	if t.Member != "" {
		name += "." + t.Member
	}
	name = FlatName(name)
	if r, n := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		name = string(unicode.ToUpper(r)) + name[n:]
	}
	name = "Table" + name
	for i, base := 2, name; used[name]; i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	used[name] = true
	return name
}
