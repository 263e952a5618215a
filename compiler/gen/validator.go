package gen

import (
	"github.com/syssam/relgen/compiler/semantics"
)

// Validate checks the object model invariants of every persistent class
// declared in the unit's own file and records each class's id member in
// attrs. Diagnostics for all classes are accumulated in d; the result
// reports if none were found.
//
// Members are walked bases first, so inherited members count towards the
// id and persistent member checks. Abstract classes are not checked.
func Validate(u *semantics.Unit, attrs *semantics.Attrs, d *Diagnostics) bool {
	valid := true
	for _, c := range u.Classes {
		if !c.Object || !u.Local(c) {
			continue
		}
		if Abstract(c) {
			if id, ok := findID(c); ok {
				semantics.Set(attrs, IDMemberKey, c, id)
			}
			continue
		}
		if !validateClass(c, attrs, d) {
			valid = false
		}
	}
	return valid
}

func validateClass(c *semantics.Class, attrs *semantics.Attrs, d *Diagnostics) bool {
	var (
		valid = true
		count int
		id    *semantics.Member
	)
	for _, m := range c.AllMembers() {
		if m.Transient {
			continue
		}
		count++
		if m.Type == nil || m.Type.Anonymous() && m.Hint == "" {
			d.ErrorWithNote(m.Position, "unnamed type in data member declaration",
				Note{Pos: m.Position, Message: "introduce a named type alias for this type"})
			valid = false
		}
		if !m.ID {
			continue
		}
		if id != nil {
			d.ErrorWithNote(m.Position, "multiple object id members",
				Note{Pos: id.Position, Message: "previous id member declared here"})
			valid = false
			continue
		}
		id = m
	}
	if id == nil {
		d.ErrorWithNote(c.Position, "no data member designated as object id",
			Note{Pos: c.Position, Message: "use the id annotation to specify the object id member"})
		valid = false
	} else {
		semantics.Set(attrs, IDMemberKey, c, id)
	}
	if count == 0 {
		d.Errorf(c.Position, "no persistent data members in the class")
		valid = false
	}
	return valid
}

func findID(c *semantics.Class) (*semantics.Member, bool) {
	for _, m := range c.AllMembers() {
		if m.ID && !m.Transient {
			return m, true
		}
	}
	return nil, false
}
