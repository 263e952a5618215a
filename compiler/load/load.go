package load

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/compiler/semantics"
)

// Format is the serialization format of a model file.
type Format string

// Model formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format of path by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("load: unknown model format %q", filepath.Ext(path))
}

// File reads the model at path and resolves it to a compilation unit named
// after the path.
func File(path string) (*semantics.Unit, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if m.Unit == "" {
		m.Unit = path
	}
	return m.Resolve()
}

// Decode reads a model in the given format. YAML declarations carry their
// line and column; JSON declarations carry only the unit file.
func Decode(r io.Reader, format Format) (*Model, error) {
	m := &Model{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil && err != io.EOF {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("load: unknown model format %q", format)
	}
	return m, nil
}

// =============================================================================
// Resolution
// =============================================================================

// resolver turns model declarations into semantics nodes.
type resolver struct {
	m    *Model
	u    *semantics.Unit
	errs *multierror.Error
}

// Resolve builds the compilation unit described by m. Classes and named
// types may be referenced before they are declared. Type names that are
// not declared are fundamental types. Every unknown class reference and
// malformed declaration is reported; the errors are *gen.ModelError values
// combined in a *multierror.Error.
func (m *Model) Resolve() (*semantics.Unit, error) {
	r := &resolver{m: m, u: semantics.NewUnit(m.Unit)}
	classes := make([]*semantics.Class, len(m.Classes))
	for i, cs := range m.Classes {
		classes[i] = r.declareClass(cs)
	}
	types := make([]*semantics.Type, len(m.Types))
	for i, ts := range m.Types {
		types[i] = r.declareType(ts)
	}
	for i, ts := range m.Types {
		if types[i] != nil {
			r.defineType(types[i], ts)
		}
	}
	for i, cs := range m.Classes {
		if classes[i] != nil {
			r.defineClass(classes[i], cs)
		}
	}
	if err := r.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return r.u, nil
}

func (r *resolver) pos(p semantics.Position) semantics.Position {
	p.File = r.m.Unit
	return p
}

func (r *resolver) errorf(p semantics.Position, name, format string, args ...any) {
	r.errs = multierror.Append(r.errs, gen.NewModelError(r.pos(p), name, fmt.Sprintf(format, args...), nil))
}

func (r *resolver) declareClass(cs *ClassSpec) *semantics.Class {
	if cs.Name == "" {
		r.errorf(cs.Pos, "", "class declaration without a name")
		return nil
	}
	if k, ok := r.u.Class(qualify(cs.Namespace, cs.Name)); ok && k.Namespace == cs.Namespace {
		r.errorf(cs.Pos, cs.Name, "class redeclared, previous declaration at %s", k.Position)
		return nil
	}
	if cs.Object && cs.Value {
		r.errorf(cs.Pos, cs.Name, "class cannot be both an object and a value")
	}
	k := r.u.NewClass(cs.Name, r.pos(cs.Pos))
	k.Namespace = cs.Namespace
	k.Object = cs.Object
	k.Value = cs.Value
	k.Abstract = cs.Abstract
	k.DBAbstract = cs.DBAbstract
	k.Table = cs.Table
	k.DBType = cs.DBType
	k.DBIDType = cs.DBIDType
	return k
}

func (r *resolver) declareType(ts *TypeSpec) *semantics.Type {
	switch {
	case ts.Name == "":
		r.errorf(ts.Pos, "", "named type declaration without a name")
		return nil
	case ts.Kind == semantics.KindInvalid:
		r.errorf(ts.Pos, ts.Name, "missing type kind")
		return nil
	case ts.Kind == semantics.KindClass:
		r.errorf(ts.Pos, ts.Name, "class types are declared as classes")
		return nil
	}
	if t, ok := r.u.Type(ts.Name); ok {
		r.errorf(ts.Pos, ts.Name, "type redeclared, previous declaration at %s", t.Position)
		return nil
	}
	return r.u.NewType(ts.Name, ts.Kind, r.pos(ts.Pos))
}

// defineType fills in t from its declaration.
func (r *resolver) defineType(t *semantics.Type, ts *TypeSpec) {
	t.Null = ts.Null
	t.DBType = ts.DBType
	t.DBIDType = ts.DBIDType
	t.Options = ts.Options
	switch ts.Kind {
	case semantics.KindWrapper:
		t.Wrapped = r.typeRef(ts.Wrapped, ts.Pos, t.String(), "wrapped")
		t.WrapperNull = ts.WrapperNull
	case semantics.KindContainer:
		if ts.Container == 0 {
			r.errorf(ts.Pos, t.String(), "missing container kind")
			return
		}
		c := &semantics.Container{Kind: ts.Container, Unordered: ts.Unordered}
		c.Value = r.typeRef(ts.Value, ts.Pos, t.String(), "value")
		if ts.Container.Keyed() {
			c.Key = r.typeRef(ts.Key, ts.Pos, t.String(), "key")
		} else if ts.Key != nil {
			r.errorf(ts.Pos, t.String(), "%s containers have no key type", ts.Container)
		}
		t.Container = c
	case semantics.KindPointer:
		kind := ts.Pointer
		if kind == 0 {
			kind = semantics.Raw
		}
		p := &semantics.Pointer{Kind: kind, Lazy: ts.Lazy}
		if ts.Target == "" {
			r.errorf(ts.Pos, t.String(), "missing pointer target")
		} else if k, ok := r.u.Class(ts.Target); ok {
			p.Target = k
		} else {
			r.errorf(ts.Pos, t.String(), "unknown class '%s' in pointer target", ts.Target)
		}
		t.Pointer = p
	case semantics.KindEnum:
		if len(ts.Values) == 0 {
			r.errorf(ts.Pos, t.String(), "enum without values")
		}
		t.Values = ts.Values
	}
}

// typeRef resolves a type reference of the declaration named owner.
func (r *resolver) typeRef(ref *TypeRef, pos semantics.Position, owner, what string) *semantics.Type {
	switch {
	case ref == nil || ref.Name == "" && ref.Spec == nil:
		r.errorf(pos, owner, "missing %s type", what)
		return nil
	case ref.Spec != nil:
		ts := ref.Spec
		if ts.Name != "" {
			r.errorf(pos, owner, "inline type '%s' cannot be named", ts.Name)
			return nil
		}
		if ts.Kind == semantics.KindInvalid || ts.Kind == semantics.KindClass || ts.Kind == semantics.KindFundamental {
			r.errorf(pos, owner, "inline %s type must be a wrapper, container, pointer or enum", what)
			return nil
		}
		if ts.Pos.Line == 0 {
			ts.Pos = pos
		}
		t := r.u.NewType("", ts.Kind, r.pos(ts.Pos))
		r.defineType(t, ts)
		return t
	}
	if t, ok := r.u.Type(ref.Name); ok {
		return t
	}
	if strings.Contains(ref.Name, "::") {
		r.errorf(pos, owner, "unknown type '%s' in %s type", ref.Name, what)
		return nil
	}
	return r.u.Fundamental(ref.Name)
}

func (r *resolver) defineClass(k *semantics.Class, cs *ClassSpec) {
	for _, b := range cs.Bases {
		base, ok := r.u.Class(b)
		switch {
		case !ok:
			r.errorf(cs.Pos, cs.Name, "unknown base class '%s'", b)
		case base == k:
			r.errorf(cs.Pos, cs.Name, "class cannot derive from itself")
		default:
			k.Bases = append(k.Bases, base)
		}
	}
	seen := make(map[string]bool)
	for _, ms := range cs.Members {
		if ms.Name == "" {
			r.errorf(ms.Pos, cs.Name, "data member declaration without a name")
			continue
		}
		if seen[ms.Name] {
			r.errorf(ms.Pos, ms.Name, "data member redeclared in class '%s'", cs.Name)
			continue
		}
		seen[ms.Name] = true
		t := r.typeRef(ms.Type, ms.Pos, ms.Name, "member")
		if t == nil {
			continue
		}
		for p := range ms.Parts {
			if !p.Valid() {
				r.errorf(ms.Pos, ms.Name, "unknown container part '%s'", p)
			}
		}
		m := r.u.AddMember(k, ms.Name, t, r.pos(ms.Pos))
		m.Hint = ms.Hint
		m.ID = ms.ID
		m.Auto = ms.Auto
		m.Transient = ms.Transient
		m.Null = ms.Null
		m.Inverse = ms.Inverse
		m.Unordered = ms.Unordered
		m.Column = ms.Column
		m.Table = ms.Table
		m.DBType = ms.DBType
		m.DBIDType = ms.DBIDType
		m.Options = ms.Options
		m.Parts = ms.Parts
	}
}

func qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "::" + name
}
