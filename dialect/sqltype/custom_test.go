package sqltype

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperParse is a minimal grammar over INT, BIGINT and VARCHAR.
func upperParse(sql string) (Type, error) {
	p := NewParser("test", "Test", sql)
	return p.Run(func(p *Parser, t *Type) error {
		tok := p.Next()
		switch tok.Keyword() {
		case "INT":
			t.Kind = Int
		case "BIGINT":
			t.Kind = BigInt
		case "VARCHAR":
			t.Kind = VarChar
		default:
			return p.Errorf(tok, "unexpected type name '%s'", tok.String())
		}
		return nil
	})
}

func TestCompileRules(t *testing.T) {
	_, err := CompileRules([]Rule{{Type: "INT", As: "BIGINT"}, {Type: "(", As: "X"}})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidRule)
	var rerr *RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 1, rerr.Index)
}

func TestRules_Apply(t *testing.T) {
	rs, err := CompileRules([]Rule{
		{Type: "POINT", As: "VARCHAR(256)", To: "GEOMETRY::STPointFromText((?), 4326)", From: "(?).STAsText()"},
		{Type: "GEO\\((\\d+)\\)", As: "VARBINARY($1)"},
	})
	require.NoError(t, err)

	t.Run("case insensitive", func(t *testing.T) {
		m, ok := rs.Apply("point")
		require.True(t, ok)
		assert.Equal(t, "VARCHAR(256)", m.As)
		assert.Equal(t, "GEOMETRY::STPointFromText((?), 4326)", m.To)
		assert.Equal(t, "(?).STAsText()", m.From)
	})
	t.Run("submatch", func(t *testing.T) {
		m, ok := rs.Apply("GEO(16)")
		require.True(t, ok)
		assert.Equal(t, "VARBINARY(16)", m.As)
		assert.Empty(t, m.To)
	})
	t.Run("whole text only", func(t *testing.T) {
		_, ok := rs.Apply("POINTS")
		assert.False(t, ok)
	})
}

func TestResolve(t *testing.T) {
	t.Run("first match wins", func(t *testing.T) {
		rs, err := CompileRules([]Rule{
			{Type: "INT", As: "BIGINT", To: "first_to((?))", From: "first_from((?))"},
			{Type: "INT", As: "VARCHAR", To: "second_to((?))", From: "second_from((?))"},
		})
		require.NoError(t, err)
		typ, err := Resolve("INT", rs, upperParse)
		require.NoError(t, err)
		assert.Equal(t, BigInt, typ.Kind)
		assert.Equal(t, "first_to((?))", typ.To)
		assert.Equal(t, "first_from((?))", typ.From)
	})
	t.Run("no match passes through", func(t *testing.T) {
		rs, err := CompileRules([]Rule{{Type: "BIGINT", As: "INT"}})
		require.NoError(t, err)
		typ, err := Resolve("VARCHAR", rs, upperParse)
		require.NoError(t, err)
		assert.Equal(t, VarChar, typ.Kind)
		assert.Equal(t, Placeholder, typ.ToExpr())
		assert.Equal(t, Placeholder, typ.FromExpr())
	})
	t.Run("nil rules", func(t *testing.T) {
		typ, err := Resolve("int", nil, upperParse)
		require.NoError(t, err)
		assert.Equal(t, Int, typ.Kind)
	})
	t.Run("parse failure after rewrite", func(t *testing.T) {
		rs, err := CompileRules([]Rule{{Type: "INT", As: "WHATEVER"}})
		require.NoError(t, err)
		_, err = Resolve("INT", rs, upperParse)
		require.ErrorIs(t, err, ErrInvalidType)
		assert.True(t, strings.Contains(err.Error(), "'WHATEVER'"))
	})
}
