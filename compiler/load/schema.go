package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/relgen/compiler/semantics"
)

// Model is the serialized form of a compilation unit.
type Model struct {
	// Unit names the file the model was read from. It defaults to the path
	// given to File.
	Unit    string       `json:"unit,omitempty" yaml:"unit,omitempty"`
	Types   []*TypeSpec  `json:"types,omitempty" yaml:"types,omitempty"`
	Classes []*ClassSpec `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// TypeSpec declares a named type, or an anonymous one when used inline in
// a member declaration.
type TypeSpec struct {
	Name string             `json:"name,omitempty" yaml:"name,omitempty"`
	Kind semantics.TypeKind `json:"kind" yaml:"kind"`

	// Wrapper types.
	Wrapped     *TypeRef `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
	WrapperNull bool     `json:"wrapper_null,omitempty" yaml:"wrapper_null,omitempty"`

	// Container types.
	Container semantics.ContainerKind `json:"container,omitempty" yaml:"container,omitempty"`
	Value     *TypeRef                `json:"value,omitempty" yaml:"value,omitempty"`
	Key       *TypeRef                `json:"key,omitempty" yaml:"key,omitempty"`
	Unordered bool                    `json:"unordered,omitempty" yaml:"unordered,omitempty"`

	// Pointer types.
	Target  string                `json:"target,omitempty" yaml:"target,omitempty"`
	Pointer semantics.PointerKind `json:"pointer,omitempty" yaml:"pointer,omitempty"`
	Lazy    bool                  `json:"lazy,omitempty" yaml:"lazy,omitempty"`

	// Enum types.
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`

	Null     *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	DBType   string `json:"db_type,omitempty" yaml:"db_type,omitempty"`
	DBIDType string `json:"db_id_type,omitempty" yaml:"db_id_type,omitempty"`
	Options  string `json:"options,omitempty" yaml:"options,omitempty"`

	Pos semantics.Position `json:"-" yaml:"-"`
}

// TypeRef refers to a type by name or declares an anonymous type inline.
// It is written either as a string or as a TypeSpec mapping.
type TypeRef struct {
	Name string
	Spec *TypeSpec
}

// ClassSpec declares a class.
type ClassSpec struct {
	Name       string        `json:"name" yaml:"name"`
	Namespace  string        `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Object     bool          `json:"object,omitempty" yaml:"object,omitempty"`
	Value      bool          `json:"value,omitempty" yaml:"value,omitempty"`
	Abstract   bool          `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	DBAbstract bool          `json:"db_abstract,omitempty" yaml:"db_abstract,omitempty"`
	Bases      []string      `json:"bases,omitempty" yaml:"bases,omitempty"`
	Table      string        `json:"table,omitempty" yaml:"table,omitempty"`
	DBType     string        `json:"db_type,omitempty" yaml:"db_type,omitempty"`
	DBIDType   string        `json:"db_id_type,omitempty" yaml:"db_id_type,omitempty"`
	Members    []*MemberSpec `json:"members,omitempty" yaml:"members,omitempty"`

	Pos semantics.Position `json:"-" yaml:"-"`
}

// MemberSpec declares a data member.
type MemberSpec struct {
	Name string   `json:"name" yaml:"name"`
	Type *TypeRef `json:"type" yaml:"type"`
	// Hint is the alias the member's type was spelled with.
	Hint string `json:"hint,omitempty" yaml:"hint,omitempty"`

	ID        bool   `json:"id,omitempty" yaml:"id,omitempty"`
	Auto      bool   `json:"auto,omitempty" yaml:"auto,omitempty"`
	Transient bool   `json:"transient,omitempty" yaml:"transient,omitempty"`
	Null      *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Inverse   string `json:"inverse,omitempty" yaml:"inverse,omitempty"`
	Unordered bool   `json:"unordered,omitempty" yaml:"unordered,omitempty"`

	Column   string                                `json:"column,omitempty" yaml:"column,omitempty"`
	Table    string                                `json:"table,omitempty" yaml:"table,omitempty"`
	DBType   string                                `json:"db_type,omitempty" yaml:"db_type,omitempty"`
	DBIDType string                                `json:"db_id_type,omitempty" yaml:"db_id_type,omitempty"`
	Options  string                                `json:"options,omitempty" yaml:"options,omitempty"`
	Parts    map[semantics.Part]semantics.PartSpec `json:"parts,omitempty" yaml:"parts,omitempty"`

	Pos semantics.Position `json:"-" yaml:"-"`
}

// =============================================================================
// Decoding
// =============================================================================

// UnmarshalYAML records the position of the type declaration.
func (s *TypeSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain TypeSpec
	if err := knownFields(n, s); err != nil {
		return err
	}
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Pos = nodePos(n)
	return nil
}

// UnmarshalYAML records the position of the class declaration.
func (s *ClassSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain ClassSpec
	if err := knownFields(n, s); err != nil {
		return err
	}
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Pos = nodePos(n)
	return nil
}

// UnmarshalYAML records the position of the member declaration.
func (s *MemberSpec) UnmarshalYAML(n *yaml.Node) error {
	type plain MemberSpec
	if err := knownFields(n, s); err != nil {
		return err
	}
	if err := n.Decode((*plain)(s)); err != nil {
		return err
	}
	s.Pos = nodePos(n)
	return nil
}

// UnmarshalYAML accepts a type name or an inline type declaration.
func (r *TypeRef) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&r.Name)
	case yaml.MappingNode:
		r.Spec = &TypeSpec{}
		return n.Decode(r.Spec)
	}
	return fmt.Errorf("line %d: type must be a name or a type declaration", n.Line)
}

// MarshalYAML writes named references as plain strings.
func (r TypeRef) MarshalYAML() (any, error) {
	if r.Spec != nil {
		return r.Spec, nil
	}
	return r.Name, nil
}

// UnmarshalJSON accepts a type name or an inline type declaration.
func (r *TypeRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		r.Spec = &TypeSpec{}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(r.Spec)
	}
	if err := json.Unmarshal(b, &r.Name); err != nil {
		return fmt.Errorf("type must be a name or a type declaration: %w", err)
	}
	return nil
}

// MarshalJSON writes named references as plain strings.
func (r TypeRef) MarshalJSON() ([]byte, error) {
	if r.Spec != nil {
		return json.Marshal(r.Spec)
	}
	return json.Marshal(r.Name)
}

// String returns the referenced name, or a description of the inline type.
func (r *TypeRef) String() string {
	if r == nil {
		return "<none>"
	}
	if r.Spec != nil {
		return "<anonymous " + r.Spec.Kind.String() + ">"
	}
	return r.Name
}

// knownFields reports the first key of mapping n that has no yaml field in
// the struct v points to. Node.Decode does not inherit the strictness of
// the decoder the document was read with.
func knownFields(n *yaml.Node, v any) error {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	t := reflect.TypeOf(v).Elem()
	fields := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !fields[k.Value] {
			return fmt.Errorf("line %d: field %s not found in type %s", k.Line, k.Value, t)
		}
	}
	return nil
}

func nodePos(n *yaml.Node) semantics.Position {
	return semantics.Position{Line: n.Line, Column: n.Column}
}
