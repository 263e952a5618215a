package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/compiler/semantics"
)

func TestValidate(t *testing.T) {
	t.Run("valid class records its id", func(t *testing.T) {
		u := personUnit()
		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		require.True(t, Validate(u, attrs, d))
		assert.Equal(t, 0, d.Len())

		id, ok := IDMember(attrs, u.Classes[0])
		require.True(t, ok)
		assert.Equal(t, "id", id.Name)
	})

	t.Run("missing id", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		k := objectClass(u, "Person", 1)
		u.AddMember(k, "name", u.Fundamental("string"), pos(2))

		d := &Diagnostics{}
		assert.False(t, Validate(u, semantics.NewAttrs(), d))
		require.Equal(t, 1, d.Len())
		assert.Equal(t,
			"person.yaml:1:1: error: no data member designated as object id\n"+
				"person.yaml:1:1: info: use the id annotation to specify the object id member",
			d.List()[0].String())
	})

	t.Run("multiple ids cite the first", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		k := objectClass(u, "Person", 1)
		idMember(u, k, "id", "int", 2)
		idMember(u, k, "code", "int", 3)
		idMember(u, k, "ssn", "int", 4)

		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		assert.False(t, Validate(u, attrs, d))
		require.Equal(t, 2, d.Errors())
		for i, line := range []int{3, 4} {
			diag := d.List()[i]
			assert.Equal(t, "multiple object id members", diag.Message)
			assert.Equal(t, line, diag.Pos.Line)
			require.Len(t, diag.Notes, 1)
			assert.Equal(t, 2, diag.Notes[0].Pos.Line)
		}
		id, ok := IDMember(attrs, k)
		require.True(t, ok)
		assert.Equal(t, "id", id.Name)
	})

	t.Run("no persistent members", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		k := objectClass(u, "Person", 1)
		m := u.AddMember(k, "cache", u.Fundamental("string"), pos(2))
		m.Transient = true

		d := &Diagnostics{}
		assert.False(t, Validate(u, semantics.NewAttrs(), d))
		require.Equal(t, 2, d.Len())
		assert.Equal(t, "no data member designated as object id", d.List()[0].Message)
		assert.Equal(t, "no persistent data members in the class", d.List()[1].Message)
	})

	t.Run("unnamed type", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		k := objectClass(u, "Person", 1)
		idMember(u, k, "id", "int", 2)
		anon := u.NewType("", semantics.KindContainer, pos(3))
		anon.Container = &semantics.Container{Kind: semantics.Ordered, Value: u.Fundamental("string")}
		u.AddMember(k, "tags", anon, pos(3))
		hinted := u.AddMember(k, "labels", anon, pos(4))
		hinted.Hint = "labels_t"

		d := &Diagnostics{}
		assert.False(t, Validate(u, semantics.NewAttrs(), d))
		require.Equal(t, 1, d.Len())
		assert.Equal(t, "unnamed type in data member declaration", d.List()[0].Message)
		assert.Equal(t, 3, d.List()[0].Pos.Line)
	})

	t.Run("inherited id", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		base := objectClass(u, "Base", 1)
		base.Abstract = true
		idMember(u, base, "id", "int", 2)
		derived := objectClass(u, "Employee", 3)
		derived.Bases = []*semantics.Class{base}
		u.AddMember(derived, "name", u.Fundamental("string"), pos(4))

		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		require.True(t, Validate(u, attrs, d), "%v", d.List())
		id, ok := IDMember(attrs, derived)
		require.True(t, ok)
		assert.Same(t, base.Members[0], id)
		_, ok = IDMember(attrs, base)
		assert.True(t, ok, "abstract classes record their id without checks")
	})

	t.Run("abstract without id is not checked", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		base := objectClass(u, "Base", 1)
		base.DBAbstract = true
		u.AddMember(base, "name", u.Fundamental("string"), pos(2))

		d := &Diagnostics{}
		assert.True(t, Validate(u, semantics.NewAttrs(), d))
		assert.Equal(t, 0, d.Len())
	})

	t.Run("classes from other files are skipped", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		u.NewClass("Other", semantics.Position{File: "other.yaml", Line: 1}).Object = true

		d := &Diagnostics{}
		assert.True(t, Validate(u, semantics.NewAttrs(), d))
	})

	t.Run("all classes are reported", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		objectClass(u, "A", 1)
		objectClass(u, "B", 2)

		d := &Diagnostics{}
		assert.False(t, Validate(u, semantics.NewAttrs(), d))
		assert.Equal(t, 4, d.Errors())
	})
}

func TestProcess(t *testing.T) {
	t.Run("container trees", func(t *testing.T) {
		u := personUnit()
		k := u.Classes[0]
		str, i := u.Fundamental("string"), u.Fundamental("int")
		list := u.AddMember(k, "nicknames", containerType(u, "strings", semantics.Ordered, str, nil), pos(4))
		set := u.AddMember(k, "tags", containerType(u, "tag_set", semantics.SetContainer, str, nil), pos(5))
		dict := u.AddMember(k, "scores", containerType(u, "scores", semantics.Map, i, str), pos(6))
		bag := u.AddMember(k, "bag", containerType(u, "bag", semantics.Ordered, str, nil), pos(7))
		bag.Unordered = true

		attrs := prepare(t, u)
		idType := k.Members[0].Type

		tree, ok := semantics.Get(attrs, TreeKey, list)
		require.True(t, ok)
		assert.Same(t, idType, tree.ID)
		assert.Same(t, str, tree.Value)
		require.NotNil(t, tree.Index)
		assert.Equal(t, SizeType, tree.Index.Name)
		assert.Nil(t, tree.Key)

		tree, _ = semantics.Get(attrs, TreeKey, set)
		assert.Nil(t, tree.Index, "sets are not indexed")

		tree, _ = semantics.Get(attrs, TreeKey, dict)
		assert.Same(t, str, tree.Key)
		assert.Same(t, i, tree.Value)
		assert.Nil(t, tree.Index)

		tree, _ = semantics.Get(attrs, TreeKey, bag)
		assert.Nil(t, tree.Index, "unordered containers have no index")
	})

	t.Run("container of containers", func(t *testing.T) {
		u := personUnit()
		inner := containerType(u, "strings", semantics.Ordered, u.Fundamental("string"), nil)
		u.AddMember(u.Classes[0], "matrix", containerType(u, "matrix", semantics.Ordered, inner, nil), pos(4))

		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		require.True(t, Validate(u, attrs, d))
		assert.False(t, Process(u, attrs, d))
		require.Equal(t, 1, d.Len())
		assert.Equal(t, "person.yaml:4:1: error: containers of containers not supported", d.List()[0].String())
	})

	t.Run("pointer to transient class", func(t *testing.T) {
		u := personUnit()
		plain := u.NewClass("Plain", pos(10))
		u.AddMember(u.Classes[0], "plain", pointerType(u, "plain_ptr", plain), pos(4))

		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		require.True(t, Validate(u, attrs, d))
		assert.False(t, Process(u, attrs, d))
		require.Equal(t, 1, d.Len())
		assert.Equal(t, "data member 'plain' points to class 'Plain' that is not persistent", d.List()[0].Message)
	})

	t.Run("inverse members", func(t *testing.T) {
		u := semantics.NewUnit(testFile)
		emp := objectClass(u, "Employer", 1)
		idMember(u, emp, "id", "int", 2)
		person := objectClass(u, "Person", 3)
		idMember(u, person, "id", "int", 4)
		u.AddMember(person, "employer", pointerType(u, "employer_ptr", emp), pos(5))
		staff := u.AddMember(emp, "staff", containerType(u, "people", semantics.Ordered, pointerType(u, "person_ptr", person), nil), pos(6))
		staff.Inverse = "employer"

		prepare(t, u)

		staff.Inverse = "manager"
		d, attrs := &Diagnostics{}, semantics.NewAttrs()
		require.True(t, Validate(u, attrs, d))
		assert.False(t, Process(u, attrs, d))
		assert.Equal(t, "data member 'manager' specified as inverse is not found in class 'Person'", d.List()[0].Message)

		staff.Inverse = "id"
		d = &Diagnostics{}
		assert.False(t, Process(u, attrs, d))
		assert.Equal(t, "inverse data member does not point back to this class", d.List()[0].Message)
	})

	t.Run("composites are memoized", func(t *testing.T) {
		u := personUnit()
		addr := valueClass(u, "Address", 10)
		u.AddMember(addr, "street", u.Fundamental("string"), pos(11))
		attrs := prepare(t, u)

		v, ok := semantics.Get(attrs, compositeKey, addr)
		require.True(t, ok)
		assert.True(t, v)
		v, ok = semantics.Get(attrs, compositeKey, u.Classes[0])
		require.True(t, ok)
		assert.False(t, v)
	})
}
