package semantics

import "fmt"

// Position is a source location of a declaration.
type Position struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// String formats the position as file:line:column.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports if the position names a file.
func (p Position) IsValid() bool { return p.File != "" }

// NodeID identifies a node within its Unit. Zero is never assigned.
type NodeID uint32

// Node is implemented by every model element.
type Node interface {
	NodeID() NodeID
	Pos() Position
}

// Part names one column family of a member. Plain members only use
// PartValue; containers also have an id, index and key part.
type Part string

// Member parts.
const (
	PartID    Part = "id"
	PartValue Part = "value"
	PartIndex Part = "index"
	PartKey   Part = "key"
)

// Valid reports if p is a known part.
func (p Part) Valid() bool {
	switch p {
	case PartID, PartValue, PartIndex, PartKey:
		return true
	}
	return false
}

// PartSpec overrides the mapping of one member part.
type PartSpec struct {
	Column  string `json:"column,omitempty" yaml:"column,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Options string `json:"options,omitempty" yaml:"options,omitempty"`
	Null    *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}
