package semantics

// Class is a class of the object model.
type Class struct {
	id        NodeID
	Name      string
	Namespace string
	Position  Position

	// Object marks a persistent class; Value marks an embeddable one.
	Object bool
	Value  bool
	// Abstract is set when the host type system marks the class abstract.
	Abstract bool
	// DBAbstract is set when the class is declared abstract for the database only.
	DBAbstract bool

	Bases   []*Class
	Members []*Member

	// Table is an explicit table name.
	Table string
	// DBType and DBIDType map a value class to a simple column type.
	DBType   string
	DBIDType string

	// Type is the type node that names this class.
	Type *Type
}

// NodeID implements Node.
func (c *Class) NodeID() NodeID { return c.id }

// Pos implements Node.
func (c *Class) Pos() Position { return c.Position }

// QualifiedName returns the class name with its namespace, joined by "::".
func (c *Class) QualifiedName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "::" + c.Name
}

// AllMembers returns the members of the class and its bases, bases first.
// A base reachable through more than one path is visited once.
func (c *Class) AllMembers() []*Member {
	var (
		ms   []*Member
		seen = make(map[*Class]bool)
		walk func(*Class)
	)
	walk = func(k *Class) {
		if seen[k] {
			return
		}
		seen[k] = true
		for _, b := range k.Bases {
			walk(b)
		}
		ms = append(ms, k.Members...)
	}
	walk(c)
	return ms
}

// Member returns the member declared in the class or its bases with the
// given name.
func (c *Class) Member(name string) (*Member, bool) {
	for _, m := range c.AllMembers() {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Member is a data member of a class.
type Member struct {
	id       NodeID
	Name     string
	Type     *Type
	Position Position
	// Class is the class declaring the member.
	Class *Class
	// Hint is the alias the type was named through, if any.
	Hint string

	Transient bool
	ID        bool
	Auto      bool
	Unordered bool
	// Null is the member-level null or not-null annotation.
	Null *bool
	// Inverse names the member of the pointed-to class this pointer mirrors.
	Inverse string

	// Column is an explicit column name. Table names the auxiliary table
	// of a container member.
	Column   string
	Table    string
	DBType   string
	DBIDType string
	Options  string
	// Parts overrides the mapping of individual member parts.
	Parts map[Part]PartSpec
}

// NodeID implements Node.
func (m *Member) NodeID() NodeID { return m.id }

// Pos implements Node.
func (m *Member) Pos() Position { return m.Position }

// Part returns the override for part p, if any.
func (m *Member) Part(p Part) (PartSpec, bool) {
	s, ok := m.Parts[p]
	return s, ok
}

// Persistent reports if the member is mapped to the database.
func (m *Member) Persistent() bool { return !m.Transient }
