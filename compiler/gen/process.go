package gen

import (
	"github.com/syssam/relgen/compiler/semantics"
)

// SizeType is the host type of container index columns.
const SizeType = "size"

// Tree holds the types of the columns of a container's auxiliary table.
type Tree struct {
	// ID is the type of the owner's object id. It is nil for containers
	// declared in composite value classes, whose owner is only known when
	// the composite is inlined.
	ID    *semantics.Type
	Value *semantics.Type
	// Index is set for ordered containers whose order is persisted.
	Index *semantics.Type
	// Key is set for map containers.
	Key *semantics.Type
}

// TreeKey holds the Tree of each container member. It is written by Process.
var TreeKey = semantics.NewKey[Tree]("container-tree")

// Process records the derived attributes of the unit's classes in attrs:
// container tree types and composite value classification. It checks the
// references between classes that validation does not cover. It must run
// after Validate.
func Process(u *semantics.Unit, attrs *semantics.Attrs, d *Diagnostics) bool {
	valid := true
	for _, c := range u.Classes {
		CompositeValue(attrs, c)
		for _, m := range c.Members {
			if m.Transient {
				continue
			}
			if !processMember(u, attrs, c, m, d) {
				valid = false
			}
		}
	}
	return valid
}

func processMember(u *semantics.Unit, attrs *semantics.Attrs, c *semantics.Class, m *semantics.Member, d *Diagnostics) bool {
	valid := true
	if Container(m.Type) {
		ct := m.Type.Container
		if Container(ct.Value) || Container(ct.Key) {
			d.Errorf(m.Position, "containers of containers not supported")
			return false
		}
		tree := Tree{Value: ct.Value}
		if id, ok := IDMember(attrs, c); ok {
			tree.ID = id.Type
		}
		if ct.Kind.Indexed() && !Unordered(m) {
			tree.Index = u.Fundamental(SizeType)
		}
		if ct.Kind.Keyed() {
			tree.Key = ct.Key
			if ct.Key == nil {
				d.Errorf(m.Position, "map container in data member '%s' has no key type", m.Name)
				valid = false
			}
		}
		if ct.Value == nil {
			d.Errorf(m.Position, "container in data member '%s' has no value type", m.Name)
			valid = false
		}
		semantics.Set(attrs, TreeKey, m, tree)
	}
	for _, p := range [...]semantics.Part{semantics.PartValue, semantics.PartKey} {
		target, ok := ObjectPointer(PartType(m, p))
		if !ok {
			continue
		}
		if !target.Object {
			d.Errorf(m.Position, "data member '%s' points to class '%s' that is not persistent", m.Name, target.QualifiedName())
			valid = false
		}
	}
	if m.Inverse != "" {
		valid = processInverse(c, m, d) && valid
	}
	return valid
}

func processInverse(c *semantics.Class, m *semantics.Member, d *Diagnostics) bool {
	target, ok := ObjectPointer(PartType(m, semantics.PartValue))
	if !ok {
		d.Errorf(m.Position, "inverse data member '%s' is not an object pointer", m.Name)
		return false
	}
	inv, ok := target.Member(m.Inverse)
	if !ok {
		d.Errorf(m.Position, "data member '%s' specified as inverse is not found in class '%s'", m.Inverse, target.QualifiedName())
		return false
	}
	back, ok := ObjectPointer(PartType(inv, semantics.PartValue))
	if !ok || back != c {
		d.ErrorWithNote(m.Position, "inverse data member does not point back to this class",
			Note{Pos: inv.Position, Message: "inverse data member declared here"})
		return false
	}
	if inv.Inverse != "" {
		d.ErrorWithNote(m.Position, "inverse data member refers to another inverse member",
			Note{Pos: inv.Position, Message: "inverse data member declared here"})
		return false
	}
	return true
}
