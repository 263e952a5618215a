package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect"
)

const testFile = "person.yaml"

func pos(line int) semantics.Position {
	return semantics.Position{File: testFile, Line: line, Column: 1}
}

func boolPtr(b bool) *bool { return &b }

// newTestContext returns a live context of dialect d over u.
func newTestContext(t *testing.T, u *semantics.Unit, attrs *semantics.Attrs, d dialect.Name, opts ...Option) *Context {
	t.Helper()
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	if attrs == nil {
		attrs = semantics.NewAttrs()
	}
	c, err := NewContext(NewPass(u, attrs, d), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// objectClass declares a persistent class.
func objectClass(u *semantics.Unit, name string, line int) *semantics.Class {
	c := u.NewClass(name, pos(line))
	c.Object = true
	return c
}

// valueClass declares a composite value class.
func valueClass(u *semantics.Unit, name string, line int) *semantics.Class {
	c := u.NewClass(name, pos(line))
	c.Value = true
	return c
}

func idMember(u *semantics.Unit, c *semantics.Class, name, typ string, line int) *semantics.Member {
	m := u.AddMember(c, name, u.Fundamental(typ), pos(line))
	m.ID = true
	return m
}

func containerType(u *semantics.Unit, name string, kind semantics.ContainerKind, value, key *semantics.Type) *semantics.Type {
	t := u.NewType(name, semantics.KindContainer, pos(0))
	t.Container = &semantics.Container{Kind: kind, Value: value, Key: key}
	return t
}

func pointerType(u *semantics.Unit, name string, target *semantics.Class) *semantics.Type {
	t := u.NewType(name, semantics.KindPointer, pos(0))
	t.Pointer = &semantics.Pointer{Kind: semantics.Shared, Target: target}
	return t
}

// personUnit is the minimal valid model: Person { id int (id); name string }.
func personUnit() *semantics.Unit {
	u := semantics.NewUnit(testFile)
	p := objectClass(u, "Person", 1)
	idMember(u, p, "id", "int", 2)
	u.AddMember(p, "name", u.Fundamental("string"), pos(3))
	return u
}

// prepare runs the validator and the type processor and fails the test on
// any diagnostic.
func prepare(t *testing.T, u *semantics.Unit) *semantics.Attrs {
	t.Helper()
	var (
		d     = &Diagnostics{}
		attrs = semantics.NewAttrs()
	)
	require.True(t, Validate(u, attrs, d), "%v", d.List())
	require.True(t, Process(u, attrs, d), "%v", d.List())
	return attrs
}
