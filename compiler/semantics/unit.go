package semantics

import "strings"

// Unit is one compiled model file together with everything it declares
// or references.
type Unit struct {
	// File is the path classes must be declared in to be compiled.
	File    string
	Classes []*Class
	Types   []*Type
	last    NodeID
}

// NewUnit returns an empty unit for file.
func NewUnit(file string) *Unit {
	return &Unit{File: file}
}

func (u *Unit) next() NodeID {
	u.last++
	return u.last
}

// NewType declares a type in the unit.
func (u *Unit) NewType(name string, kind TypeKind, pos Position) *Type {
	t := &Type{id: u.next(), Name: name, Kind: kind, Position: pos}
	u.Types = append(u.Types, t)
	return t
}

// NewClass declares a class and the type that names it.
func (u *Unit) NewClass(name string, pos Position) *Class {
	c := &Class{id: u.next(), Name: name, Position: pos}
	c.Type = u.NewType(name, KindClass, pos)
	c.Type.Class = c
	u.Classes = append(u.Classes, c)
	return c
}

// AddMember appends a member of type t to class c.
func (u *Unit) AddMember(c *Class, name string, t *Type, pos Position) *Member {
	m := &Member{id: u.next(), Name: name, Type: t, Position: pos, Class: c}
	c.Members = append(c.Members, m)
	return m
}

// Class returns the class with the given unqualified or qualified name.
func (u *Unit) Class(name string) (*Class, bool) {
	for _, c := range u.Classes {
		if c.Name == name || c.QualifiedName() == name {
			return c, true
		}
	}
	return nil, false
}

// Type returns the named type. Class types are found by their qualified
// name as well.
func (u *Unit) Type(name string) (*Type, bool) {
	if name == "" {
		return nil, false
	}
	for _, t := range u.Types {
		if t.Name == name {
			return t, true
		}
	}
	if strings.Contains(name, "::") {
		if c, ok := u.Class(name); ok {
			return c.Type, true
		}
	}
	return nil, false
}

// Fundamental returns the fundamental type with the given name, declaring
// it on first use.
func (u *Unit) Fundamental(name string) *Type {
	if t, ok := u.Type(name); ok && t.Kind == KindFundamental {
		return t
	}
	return u.NewType(name, KindFundamental, Position{})
}

// Local reports if n was declared in the unit's own file.
func (u *Unit) Local(n Node) bool {
	return n.Pos().File == u.File
}
