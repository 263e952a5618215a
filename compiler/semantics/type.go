package semantics

import "fmt"

// TypeKind classifies a Type.
type TypeKind uint8

// Type kinds.
const (
	KindInvalid TypeKind = iota
	KindFundamental
	KindEnum
	KindClass
	KindWrapper
	KindContainer
	KindPointer
)

var typeKindNames = [...]string{
	KindInvalid:     "invalid",
	KindFundamental: "fundamental",
	KindEnum:        "enum",
	KindClass:       "class",
	KindWrapper:     "wrapper",
	KindContainer:   "container",
	KindPointer:     "pointer",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return fmt.Sprintf("TypeKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TypeKind) UnmarshalText(text []byte) error {
	for i := KindFundamental; int(i) < len(typeKindNames); i++ {
		if typeKindNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("semantics: unknown type kind %q", text)
}

// ContainerKind is the collection shape of a container type.
type ContainerKind uint8

// Container kinds.
const (
	Ordered ContainerKind = iota + 1
	SetContainer
	Multiset
	Map
	Multimap
)

var containerKindNames = [...]string{
	Ordered:      "ordered",
	SetContainer: "set",
	Multiset:     "multiset",
	Map:          "map",
	Multimap:     "multimap",
}

func (k ContainerKind) String() string {
	if k > 0 && int(k) < len(containerKindNames) {
		return containerKindNames[k]
	}
	return fmt.Sprintf("ContainerKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k ContainerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ContainerKind) UnmarshalText(text []byte) error {
	for i := Ordered; int(i) < len(containerKindNames); i++ {
		if containerKindNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("semantics: unknown container kind %q", text)
}

// Keyed reports if the container maps keys to values.
func (k ContainerKind) Keyed() bool { return k == Map || k == Multimap }

// Indexed reports if the container keeps its elements in order.
func (k ContainerKind) Indexed() bool { return k == Ordered }

// PointerKind is the ownership model of a pointer type.
type PointerKind uint8

// Pointer kinds.
const (
	Raw PointerKind = iota + 1
	Unique
	Shared
	Weak
)

var pointerKindNames = [...]string{
	Raw:    "raw",
	Unique: "unique",
	Shared: "shared",
	Weak:   "weak",
}

func (k PointerKind) String() string {
	if k > 0 && int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return fmt.Sprintf("PointerKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k PointerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PointerKind) UnmarshalText(text []byte) error {
	for i := Raw; int(i) < len(pointerKindNames); i++ {
		if pointerKindNames[i] == string(text) {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("semantics: unknown pointer kind %q", text)
}

// Type is a host type that members are declared with.
type Type struct {
	id       NodeID
	Name     string // Empty for anonymous types.
	Kind     TypeKind
	Position Position

	// Wrapped is the single value held by a wrapper type.
	Wrapped *Type
	// WrapperNull reports if the wrapper can represent an absent value.
	WrapperNull bool

	Container *Container
	Pointer   *Pointer
	// Class is the class named by a KindClass type.
	Class *Class
	// Values lists the enumerators of a KindEnum type.
	Values []string

	// Null is the type-level null or not-null annotation.
	Null *bool
	// DBType and DBIDType are explicit database type mappings.
	DBType   string
	DBIDType string
	Options  string
}

// Container describes the elements of a container type.
type Container struct {
	Kind  ContainerKind
	Value *Type
	Key   *Type // Set for Map and Multimap.
	// Unordered marks an ordered container whose order is not persisted.
	Unordered bool
}

// Pointer describes the target of a pointer type.
type Pointer struct {
	Kind   PointerKind
	Target *Class
	Lazy   bool
}

// NodeID implements Node.
func (t *Type) NodeID() NodeID { return t.id }

// Pos implements Node.
func (t *Type) Pos() Position { return t.Position }

// Anonymous reports if the type has no name it can be referred to by.
func (t *Type) Anonymous() bool { return t.Name == "" }

func (t *Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "<anonymous " + t.Kind.String() + ">"
}
