package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/dialect/sqltype"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want sqltype.Kind
	}{
		{"INTEGER", sqltype.Integer},
		{"BIGINT", sqltype.Integer},
		{"UNSIGNED BIG INT", sqltype.Integer},
		{"VARCHAR(255)", sqltype.Text},
		{"NATIVE CHARACTER(70)", sqltype.Text},
		{"CLOB", sqltype.Text},
		{"TEXT", sqltype.Text},
		{"BLOB", sqltype.Blob},
		{"REAL", sqltype.Real},
		{"DOUBLE PRECISION", sqltype.Real},
		{"FLOAT", sqltype.Real},
		{"NUMERIC", sqltype.Numeric},
		{"BOOLEAN", sqltype.Numeric},
		{"DATETIME", sqltype.Numeric},
		// INT is tested before CHAR.
		{"CHARINT", sqltype.Integer},
		{"", sqltype.Blob},
		{"  ", sqltype.Blob},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, "sqlite", got.Dialect)
		})
	}
}

func TestParse_NumericKeepsPrecision(t *testing.T) {
	got, err := Parse("DECIMAL(10,5)")
	require.NoError(t, err)
	assert.Equal(t, sqltype.Type{Kind: sqltype.Numeric, Dialect: "sqlite", Prec: 10, Scale: 5, HasPrec: true, HasScale: true}, got)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"(10)", "expected SQLite type name instead of '('"},
		{"DECIMAL(10,5", "expected ')' in SQLite type declaration"},
		{"TEXT(x)", "integer precision expected in SQLite type declaration"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.ErrorIs(t, err, sqltype.ErrInvalidType)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestDescriptor(t *testing.T) {
	d := Descriptor()
	assert.Equal(t, `"select"`, d.QuoteID("select"))
	assert.False(t, d.Flags.NeedAliasAs)
	for host, e := range d.TypeMap {
		_, err := d.Parse(e.Type)
		require.NoError(t, err, host)
	}
}
