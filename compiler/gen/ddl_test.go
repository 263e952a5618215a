package gen

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sql/schema"
)

func TestWriteDDL(t *testing.T) {
	t.Run("person", func(t *testing.T) {
		u := personUnit()
		c := newTestContext(t, u, prepare(t, u), dialect.MSSQL)
		s, err := c.Derive()
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, c.WriteDDL(&buf, s))
		assert.Equal(t, "-- begin PERSON_MSSQL\n"+
			"\n"+
			"CREATE TABLE [person] (\n"+
			"  [id] INT NOT NULL,\n"+
			"  [name] VARCHAR(512) NOT NULL,\n"+
			"  PRIMARY KEY ([id]));\n"+
			"\n"+
			"-- end PERSON_MSSQL\n", buf.String())
		assert.Equal(t, io.Discard, c.Out(), "output is restored")
	})

	t.Run("containers and auto keys", func(t *testing.T) {
		u := personUnit()
		u.Classes[0].Members[0].Auto = true
		u.AddMember(u.Classes[0], "nicknames", containerType(u, "strings", semantics.Ordered, u.Fundamental("string"), nil), pos(4))

		for _, tt := range []struct {
			dialect dialect.Name
			want    []string
		}{
			{dialect.MSSQL, []string{
				"[id] INT NOT NULL IDENTITY,",
				"CREATE INDEX [person_nicknames_object_id_i] ON [person_nicknames] ([object_id]);",
				"ALTER TABLE [person_nicknames]\n  ADD CONSTRAINT [person_nicknames_object_id_fk] FOREIGN KEY ([object_id]) REFERENCES [person] ([id]) ON DELETE CASCADE;",
			}},
			{dialect.MySQL, []string{"`id` INT NOT NULL AUTO_INCREMENT,"}},
			{dialect.Postgres, []string{`"id" INTEGER NOT NULL GENERATED BY DEFAULT AS IDENTITY,`}},
			{dialect.SQLite, []string{
				`"id" INTEGER NOT NULL,`,
				`CONSTRAINT "person_nicknames_object_id_fk" FOREIGN KEY ("object_id") REFERENCES "person" ("id") ON DELETE CASCADE);`,
			}},
		} {
			t.Run(string(tt.dialect), func(t *testing.T) {
				c := newTestContext(t, u, prepare(t, u), tt.dialect)
				s, err := c.Derive()
				require.NoError(t, err)

				var buf bytes.Buffer
				require.NoError(t, c.WriteDDL(&buf, s))
				for _, w := range tt.want {
					assert.Contains(t, buf.String(), w)
				}
				if tt.dialect == dialect.SQLite {
					assert.NotContains(t, buf.String(), "ALTER TABLE")
				}
			})
		}
	})

	t.Run("write error", func(t *testing.T) {
		u := personUnit()
		c := newTestContext(t, u, prepare(t, u), dialect.MSSQL)
		s, err := c.Derive()
		require.NoError(t, err)
		assert.EqualError(t, c.WriteDDL(failWriter{}, s), "disk full")
	})
}

func TestWriteSnapshot(t *testing.T) {
	u := personUnit()
	u.AddMember(u.Classes[0], "nicknames", containerType(u, "strings", semantics.Ordered, u.Fundamental("string"), nil), pos(4))
	c := newTestContext(t, u, prepare(t, u), dialect.MSSQL)
	s, err := c.Derive()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSnapshot(&buf, s, "model"))
	out := buf.String()
	assert.Contains(t, out, "// Code generated by relgen. DO NOT EDIT.")
	assert.Contains(t, out, "package model")
	assert.Contains(t, out, `const Dialect = "mssql"`)
	assert.Contains(t, out, "var TablePerson = Table{")
	assert.Contains(t, out, "var TablePerson_nicknames = Table{")
	assert.Regexp(t, `Name:\s+"person_nicknames"`, out)
	assert.Regexp(t, `Type:\s+"VARCHAR\(512\)"`, out)
	assert.Regexp(t, `To:\s+"\(\?\)"`, out)
	assert.Regexp(t, `PrimaryKey:\s+\[\]string\{"id"\}`, out)
	assert.Contains(t, out, "var Tables = []*Table{&TablePerson, &TablePerson_nicknames}")
}

func TestWriteSnapshot_DeclarationNames(t *testing.T) {
	u := semantics.NewUnit(testFile)
	for i, name := range []string{"Table", "Column", "Dialect", "Tables"} {
		k := objectClass(u, name, 2*i+1)
		idMember(u, k, "id", "int", 2*i+2)
	}
	c := newTestContext(t, u, prepare(t, u), dialect.MSSQL)
	s, err := c.Derive()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.WriteSnapshot(&buf, s, "model"))
	out := buf.String()
	for _, name := range []string{"TableTable", "TableColumn", "TableDialect", "TableTables"} {
		assert.Contains(t, out, "var "+name+" = Table{")
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "model.go", out, 0)
	require.NoError(t, err)
	_, err = new(types.Config).Check("model", fset, []*ast.File{f}, nil)
	assert.NoError(t, err, "generated snapshot must type-check")
}

func TestSnapshotName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "TablePerson", snapshotName(&schema.Table{Class: "Person"}, used))
	assert.Equal(t, "TableApp_person_tags", snapshotName(&schema.Table{Class: "app::person", Member: "tags"}, used))
	assert.Equal(t, "TablePerson_2", snapshotName(&schema.Table{Class: "Person"}, used))
	assert.Equal(t, "TablePerson_3", snapshotName(&schema.Table{Class: "Person"}, used))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
