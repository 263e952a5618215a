package gen

import (
	"github.com/syssam/relgen/compiler/semantics"
)

// Flags of IsA and HasA.
const (
	TestPointer           uint16 = 0x01
	TestEagerPointer      uint16 = 0x02
	TestLazyPointer       uint16 = 0x04
	TestContainer         uint16 = 0x08
	TestStraightContainer uint16 = 0x10
	TestInverseContainer  uint16 = 0x20
)

var (
	// IDMemberKey holds the object id member of a class. It is written by
	// the validator and may be absent for abstract classes.
	IDMemberKey = semantics.NewKey[*semantics.Member]("id-member")

	compositeKey = semantics.NewKey[bool]("composite-value")
)

// Wrapper returns the type wrapped by t. Only one level is unwrapped.
func Wrapper(t *semantics.Type) (*semantics.Type, bool) {
	if t == nil || t.Kind != semantics.KindWrapper || t.Wrapped == nil {
		return nil, false
	}
	return t.Wrapped, true
}

// CompositeValue reports if c is a value class without an explicit
// database type. Supplying the type makes the class a simple value. The
// result is memoized in a when a is not nil.
func CompositeValue(a *semantics.Attrs, c *semantics.Class) bool {
	if c == nil {
		return false
	}
	if a != nil {
		if v, ok := semantics.Get(a, compositeKey, c); ok {
			return v
		}
	}
	v := c.Value && c.DBType == ""
	if a != nil {
		semantics.Set(a, compositeKey, c, v)
	}
	return v
}

// CompositeValueWrapper returns the composite value class named by t,
// seeing through at most one wrapper.
func CompositeValueWrapper(a *semantics.Attrs, t *semantics.Type) (*semantics.Class, bool) {
	if c, ok := composite(a, t); ok {
		return c, true
	}
	if w, ok := Wrapper(t); ok {
		return composite(a, w)
	}
	return nil, false
}

// CompositeValueType reports if t names a composite value, seeing through
// at most one wrapper.
func CompositeValueType(a *semantics.Attrs, t *semantics.Type) bool {
	_, ok := CompositeValueWrapper(a, t)
	return ok
}

func composite(a *semantics.Attrs, t *semantics.Type) (*semantics.Class, bool) {
	if t == nil || t.Kind != semantics.KindClass || !CompositeValue(a, t.Class) {
		return nil, false
	}
	return t.Class, true
}

// Container reports if t is a container type.
func Container(t *semantics.Type) bool {
	return t != nil && t.Kind == semantics.KindContainer && t.Container != nil
}

// ContainerKindOf returns the kind of container t.
func ContainerKindOf(t *semantics.Type) (semantics.ContainerKind, bool) {
	if !Container(t) {
		return 0, false
	}
	return t.Container.Kind, true
}

// ObjectPointer returns the class t points to.
func ObjectPointer(t *semantics.Type) (*semantics.Class, bool) {
	if t == nil || t.Kind != semantics.KindPointer || t.Pointer == nil || t.Pointer.Target == nil {
		return nil, false
	}
	return t.Pointer.Target, true
}

// PointerKindOf returns the ownership kind of pointer t.
func PointerKindOf(t *semantics.Type) (semantics.PointerKind, bool) {
	if _, ok := ObjectPointer(t); !ok {
		return 0, false
	}
	return t.Pointer.Kind, true
}

// LazyPointer reports if t is a lazily loaded object pointer.
func LazyPointer(t *semantics.Type) bool {
	_, ok := ObjectPointer(t)
	return ok && t.Pointer.Lazy
}

// Abstract reports if c is abstract for the host type system or for the
// database.
func Abstract(c *semantics.Class) bool {
	return c.Abstract || c.DBAbstract
}

// IDMember returns the object id member recorded by the validator.
func IDMember(a *semantics.Attrs, c *semantics.Class) (*semantics.Member, bool) {
	return semantics.Get(a, IDMemberKey, c)
}

// Unordered reports if the order of a container member is not persisted.
func Unordered(m *semantics.Member) bool {
	return m.Unordered || Container(m.Type) && m.Type.Container.Unordered
}

// PartType returns the type of part p of member m: the member type for
// PartValue on plain members and the element types of containers. Plain
// members have no other parts.
func PartType(m *semantics.Member, p semantics.Part) *semantics.Type {
	if !Container(m.Type) {
		if p == semantics.PartValue {
			return m.Type
		}
		return nil
	}
	switch p {
	case semantics.PartValue:
		return m.Type.Container.Value
	case semantics.PartKey:
		return m.Type.Container.Key
	}
	return nil
}

// Inverse returns the member that an inverse pointer mirrors. For
// containers of pointers the element pointer is tested.
func Inverse(m *semantics.Member) (*semantics.Member, bool) {
	if m.Inverse == "" {
		return nil, false
	}
	target, ok := ObjectPointer(PartType(m, semantics.PartValue))
	if !ok {
		return nil, false
	}
	return target.Member(m.Inverse)
}

// Null reports if the column of member m may hold NULL. Member annotations
// win over type annotations; wrappers that can be empty and object
// pointers are nullable by default.
func Null(m *semantics.Member) bool {
	if m.ID {
		return false
	}
	if m.Null != nil {
		return *m.Null
	}
	return typeNull(m.Type)
}

func typeNull(t *semantics.Type) bool {
	if t == nil {
		return false
	}
	if t.Null != nil {
		return *t.Null
	}
	if _, ok := Wrapper(t); ok {
		return t.WrapperNull
	}
	_, ok := ObjectPointer(t)
	return ok
}

// IsA tests member m against flags. Container flags test the member
// itself; pointer flags test the member type.
func IsA(m *semantics.Member, flags uint16) bool {
	return isA(m, m.Type, flags)
}

func isA(m *semantics.Member, t *semantics.Type, flags uint16) bool {
	if flags&(TestPointer|TestEagerPointer|TestLazyPointer) != 0 {
		if _, ok := ObjectPointer(t); ok {
			lazy := t.Pointer.Lazy
			if flags&TestPointer != 0 || flags&TestEagerPointer != 0 && !lazy || flags&TestLazyPointer != 0 && lazy {
				return true
			}
		}
	}
	if flags&(TestContainer|TestStraightContainer|TestInverseContainer) != 0 && Container(t) {
		_, inv := Inverse(m)
		if flags&TestContainer != 0 || flags&TestStraightContainer != 0 && !inv || flags&TestInverseContainer != 0 && inv {
			return true
		}
	}
	return false
}

// HasA reports if any persistent member of the composite value t, or of
// the composites nested in it, satisfies IsA with flags. Container element
// types are not inspected.
func HasA(a *semantics.Attrs, t *semantics.Type, flags uint16) bool {
	c, ok := CompositeValueWrapper(a, t)
	if !ok {
		return false
	}
	return hasA(a, c, flags, make(map[*semantics.Class]bool))
}

func hasA(a *semantics.Attrs, c *semantics.Class, flags uint16, seen map[*semantics.Class]bool) bool {
	if seen[c] {
		return false
	}
	seen[c] = true
	for _, m := range c.AllMembers() {
		if m.Transient {
			continue
		}
		if IsA(m, flags) {
			return true
		}
		if nested, ok := CompositeValueWrapper(a, m.Type); ok && hasA(a, nested, flags, seen) {
			return true
		}
	}
	return false
}
