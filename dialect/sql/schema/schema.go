// Package schema holds the relational schema derived from an object model
// for one dialect: tables, columns, keys and indexes, with the resolved SQL
// type of every column.
package schema

import (
	"slices"

	"github.com/syssam/relgen/dialect/sqltype"
)

// Role is the part a column plays in its table.
type Role string

// Column roles.
const (
	RoleRegular  Role = "regular"
	RoleID       Role = "id"
	RoleObjectID Role = "object_id"
	RoleIndex    Role = "index"
	RoleKey      Role = "key"
	RoleValue    Role = "value"
)

// Schema is the derived schema of one unit in one dialect.
type Schema struct {
	Dialect string   `json:"dialect" msgpack:"dialect"`
	Unit    string   `json:"unit,omitempty" msgpack:"unit,omitempty"`
	Tables  []*Table `json:"tables" msgpack:"tables"`
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Table is a database table.
type Table struct {
	Name string `json:"name" msgpack:"name"`
	// Class is the qualified name of the class the table was derived from.
	Class string `json:"class,omitempty" msgpack:"class,omitempty"`
	// Member is the path of the container member of an auxiliary table.
	Member      string        `json:"member,omitempty" msgpack:"member,omitempty"`
	Columns     []*Column     `json:"columns" msgpack:"columns"`
	PrimaryKey  *PrimaryKey   `json:"primary_key,omitempty" msgpack:"primary_key,omitempty"`
	ForeignKeys []*ForeignKey `json:"foreign_keys,omitempty" msgpack:"foreign_keys,omitempty"`
	Indexes     []*Index      `json:"indexes,omitempty" msgpack:"indexes,omitempty"`
	// Container describes the container an auxiliary table stores.
	Container *Container `json:"container,omitempty" msgpack:"container,omitempty"`
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// AddColumn appends c to the table.
func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	return t
}

// HasColumn reports if the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Column is a table column.
type Column struct {
	Name string       `json:"name" msgpack:"name"`
	Type sqltype.Type `json:"type" msgpack:"type"`
	// Raw is the declared type text after override rewriting.
	Raw      string `json:"raw" msgpack:"raw"`
	Nullable bool   `json:"nullable,omitempty" msgpack:"nullable,omitempty"`
	Options  string `json:"options,omitempty" msgpack:"options,omitempty"`
	Role     Role   `json:"role" msgpack:"role"`
	// Member is the path of the member the column was derived from.
	Member string `json:"member,omitempty" msgpack:"member,omitempty"`
}

// PrimaryKey is the primary key of a table.
type PrimaryKey struct {
	Columns []string `json:"columns" msgpack:"columns"`
	// Auto marks a key assigned by the database.
	Auto bool `json:"auto,omitempty" msgpack:"auto,omitempty"`
}

// Has reports if column name is part of the key.
func (pk *PrimaryKey) Has(name string) bool {
	return pk != nil && slices.Contains(pk.Columns, name)
}

// ReferenceOption is a foreign key action.
type ReferenceOption string

// Foreign key actions.
const (
	NoAction ReferenceOption = ""
	Cascade  ReferenceOption = "CASCADE"
	SetNull  ReferenceOption = "SET NULL"
)

// ForeignKey is a foreign key constraint.
type ForeignKey struct {
	Name       string          `json:"name" msgpack:"name"`
	Columns    []string        `json:"columns" msgpack:"columns"`
	RefTable   string          `json:"ref_table" msgpack:"ref_table"`
	RefColumns []string        `json:"ref_columns" msgpack:"ref_columns"`
	OnDelete   ReferenceOption `json:"on_delete,omitempty" msgpack:"on_delete,omitempty"`
}

// Index is a table index.
type Index struct {
	Name    string   `json:"name" msgpack:"name"`
	Columns []string `json:"columns" msgpack:"columns"`
	Unique  bool     `json:"unique,omitempty" msgpack:"unique,omitempty"`
}

// Container records the tree types of an auxiliary container table. Each
// entry is the host type name a column was mapped from.
type Container struct {
	Kind  string `json:"kind" msgpack:"kind"`
	ID    string `json:"id,omitempty" msgpack:"id,omitempty"`
	Value string `json:"value" msgpack:"value"`
	Index string `json:"index,omitempty" msgpack:"index,omitempty"`
	Key   string `json:"key,omitempty" msgpack:"key,omitempty"`
}
