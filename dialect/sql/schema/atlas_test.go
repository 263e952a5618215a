package schema

import (
	"testing"

	atlas "ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAtlas(t *testing.T) {
	as, err := ToAtlas("main", personSchema())
	require.NoError(t, err)
	require.Len(t, as.Tables, 2)

	person, ok := as.Table("person")
	require.True(t, ok)
	require.NotNil(t, person.PrimaryKey)
	require.Len(t, person.PrimaryKey.Parts, 1)
	assert.Equal(t, "id", person.PrimaryKey.Parts[0].C.Name)

	id, ok := person.Column("id")
	require.True(t, ok)
	assert.Equal(t, &atlas.IntegerType{T: "INT"}, id.Type.Type)
	assert.Equal(t, "INT", id.Type.Raw)

	name, ok := person.Column("name")
	require.True(t, ok)
	assert.Equal(t, &atlas.StringType{T: "VARCHAR", Size: 512}, name.Type.Type)

	nicknames, ok := as.Table("person_nicknames")
	require.True(t, ok)
	require.Len(t, nicknames.ForeignKeys, 1)
	fk := nicknames.ForeignKeys[0]
	assert.Same(t, person, fk.RefTable)
	assert.Equal(t, atlas.Cascade, fk.OnDelete)
	assert.Equal(t, "id", fk.RefColumns[0].Name)
	require.Len(t, nicknames.Indexes, 2)
	value, ok := nicknames.Column("value")
	require.True(t, ok)
	assert.True(t, value.Type.Null)

	t.Run("Missing reference", func(t *testing.T) {
		s := personSchema()
		s.Tables[1].ForeignKeys[0].RefTable = "people"
		_, err := ToAtlas("main", s)
		assert.ErrorContains(t, err, `table "people" not found`)
	})
}
