package sqltype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Type{Kind: Int}, "INT"},
		{Type{Kind: Decimal, Prec: 18, Scale: 4, HasPrec: true, HasScale: true}, "DECIMAL(18,4)"},
		{Type{Kind: VarChar, HasPrec: true}, "VARCHAR(MAX)"},
		{Type{Kind: VarChar, Prec: 512, HasPrec: true}, "VARCHAR(512)"},
		{Type{Kind: DateTime2, Scale: 3, HasScale: true}, "DATETIME2(3)"},
		{Type{Kind: BigInt, Unsigned: true}, "BIGINT UNSIGNED"},
		{Type{Kind: Enum, Values: []string{"on", "o'ff"}}, "ENUM('on','o''ff')"},
		{Type{Kind: DoublePrecision}, "DOUBLE PRECISION"},
		{Type{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestType_Equal(t *testing.T) {
	a := Type{Kind: VarChar, Prec: 10, HasPrec: true}
	assert.True(t, a.Equal(Type{Kind: VarChar, Prec: 10, HasPrec: true}))
	assert.False(t, a.Equal(Type{Kind: VarChar, Prec: 11, HasPrec: true}))
	// Precision without its flag carries no meaning.
	assert.True(t, Type{Kind: Int, Prec: 3}.Equal(Type{Kind: Int}))
	assert.False(t, Type{Kind: Set, Values: []string{"a"}}.Equal(Type{Kind: Set, Values: []string{"b"}}))
}

func TestKind_Text(t *testing.T) {
	b, err := json.Marshal(Type{Kind: NVarChar, Prec: 256, HasPrec: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"NVARCHAR","prec":256,"has_prec":true}`, string(b))

	var typ Type
	require.NoError(t, json.Unmarshal(b, &typ))
	assert.Equal(t, NVarChar, typ.Kind)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("NOPE")))
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func TestKind_Classes(t *testing.T) {
	assert.True(t, BigInt.Integer())
	assert.True(t, Decimal.Numeric())
	assert.False(t, Decimal.Integer())
	assert.True(t, NText.Textual())
	assert.True(t, Bytea.Binary())
	assert.True(t, DateTimeOffset.Temporal())
	assert.False(t, Invalid.Valid())
}
