package semantics

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	p := Position{File: "person.yaml", Line: 3, Column: 5}
	assert.Equal(t, "person.yaml:3:5", p.String())
	assert.True(t, p.IsValid())
	assert.False(t, Position{}.IsValid())
}

func TestUnit(t *testing.T) {
	u := NewUnit("model.yaml")
	pos := Position{File: "model.yaml", Line: 1, Column: 1}
	person := u.NewClass("Person", pos)
	person.Namespace = "app"
	person.Object = true
	id := u.AddMember(person, "id", u.Fundamental("int"), pos)
	name := u.AddMember(person, "name", u.Fundamental("string"), pos)

	t.Run("IDs are unique", func(t *testing.T) {
		seen := map[NodeID]bool{}
		for _, n := range []Node{person, person.Type, id, name, id.Type, name.Type} {
			require.NotZero(t, n.NodeID())
			require.False(t, seen[n.NodeID()], "duplicate id %d", n.NodeID())
			seen[n.NodeID()] = true
		}
	})

	t.Run("Lookup", func(t *testing.T) {
		c, ok := u.Class("Person")
		require.True(t, ok)
		assert.Same(t, person, c)
		c, ok = u.Class("app::Person")
		require.True(t, ok)
		assert.Same(t, person, c)
		_, ok = u.Class("Missing")
		assert.False(t, ok)

		typ, ok := u.Type("app::Person")
		require.True(t, ok)
		assert.Same(t, person.Type, typ)
		assert.Same(t, person, typ.Class)
		assert.Same(t, id.Type, u.Fundamental("int"))
	})

	t.Run("Local", func(t *testing.T) {
		assert.True(t, u.Local(person))
		other := u.NewClass("Other", Position{File: "other.yaml"})
		assert.False(t, u.Local(other))
	})

	t.Run("Members", func(t *testing.T) {
		assert.Same(t, person, id.Class)
		m, ok := person.Member("name")
		require.True(t, ok)
		assert.Same(t, name, m)
	})
}

func TestClass_AllMembers(t *testing.T) {
	u := NewUnit("m.yaml")
	base := u.NewClass("Base", Position{})
	u.AddMember(base, "id", u.Fundamental("int"), Position{})
	mid := u.NewClass("Mid", Position{})
	mid.Bases = []*Class{base}
	u.AddMember(mid, "mid", u.Fundamental("int"), Position{})
	derived := u.NewClass("Derived", Position{})
	derived.Bases = []*Class{mid, base}
	u.AddMember(derived, "own", u.Fundamental("string"), Position{})

	var names []string
	for _, m := range derived.AllMembers() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"id", "mid", "own"}, names)
	assert.Equal(t, "Derived", derived.QualifiedName())
}

func TestType(t *testing.T) {
	u := NewUnit("m.yaml")
	anon := u.NewType("", KindContainer, Position{})
	assert.True(t, anon.Anonymous())
	assert.Equal(t, "<anonymous container>", anon.String())
	named := u.NewType("names", KindContainer, Position{})
	assert.False(t, named.Anonymous())
	assert.Equal(t, "names", named.String())
}

func TestKinds_Text(t *testing.T) {
	var tk TypeKind
	require.NoError(t, json.Unmarshal([]byte(`"wrapper"`), &tk))
	assert.Equal(t, KindWrapper, tk)
	assert.Error(t, json.Unmarshal([]byte(`"struct"`), &tk))

	var ck ContainerKind
	require.NoError(t, json.Unmarshal([]byte(`"multimap"`), &ck))
	assert.Equal(t, Multimap, ck)
	assert.True(t, ck.Keyed())
	assert.False(t, ck.Indexed())
	assert.True(t, Ordered.Indexed())

	var pk PointerKind
	require.NoError(t, json.Unmarshal([]byte(`"shared"`), &pk))
	assert.Equal(t, Shared, pk)
	b, err := json.Marshal(Weak)
	require.NoError(t, err)
	assert.JSONEq(t, `"weak"`, string(b))
}

func TestAttrs(t *testing.T) {
	u := NewUnit("m.yaml")
	c := u.NewClass("Person", Position{})
	m := u.AddMember(c, "id", u.Fundamental("int"), Position{})
	a := NewAttrs()
	idKey := NewKey[*Member]("id-member")
	flag := NewKey[bool]("flag")

	_, ok := Get(a, idKey, c)
	assert.False(t, ok)

	Set(a, idKey, c, m)
	got, ok := Get(a, idKey, c)
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.True(t, Has(a, idKey, c))
	assert.False(t, Has(a, idKey, m))
	assert.False(t, Has(a, flag, c), "keys do not share slots")

	t.Run("Same name keys are distinct", func(t *testing.T) {
		other := NewKey[*Member]("id-member")
		assert.False(t, Has(a, other, c))
		assert.Equal(t, "id-member", other.Name())
	})

	t.Run("Delete", func(t *testing.T) {
		Set(a, flag, m, true)
		assert.Equal(t, 2, a.Len())
		Delete(a, flag, m)
		assert.False(t, Has(a, flag, m))
	})

	t.Run("Concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				Set(a, flag, c, true)
				_, _ = Get(a, flag, c)
			}()
		}
		wg.Wait()
		v, ok := Get(a, flag, c)
		require.True(t, ok)
		assert.True(t, v)
	})
}

func TestSetContainer(t *testing.T) {
	var ck ContainerKind
	require.NoError(t, json.Unmarshal([]byte(`"set"`), &ck))
	assert.Equal(t, SetContainer, ck)
	assert.Equal(t, "set", SetContainer.String())
	assert.False(t, ck.Keyed())
	assert.False(t, ck.Indexed())
}

func TestMember_IDDesignation(t *testing.T) {
	u := NewUnit("m.yaml")
	c := u.NewClass("Person", Position{})
	m := u.AddMember(c, "id", u.Fundamental("int"), Position{})
	m.ID = true

	var n Node = m
	assert.NotZero(t, n.NodeID())
	a := NewAttrs()
	key := NewKey[bool]("object-id")
	Set(a, key, m, m.ID)
	v, ok := Get(a, key, n)
	require.True(t, ok)
	assert.True(t, v)
}
