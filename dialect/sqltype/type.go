package sqltype

import (
	"strconv"
	"strings"
)

// Placeholder stands for the converted value in To and From expressions.
const Placeholder = "(?)"

// Type is a parsed SQL type declaration.
//
// Prec and Scale are meaningful only when HasPrec and HasScale are set.
// An unbounded length (SQL Server MAX) is encoded as HasPrec with Prec 0.
type Type struct {
	Kind     Kind     `json:"kind" msgpack:"kind"`
	Dialect  string   `json:"dialect,omitempty" msgpack:"dialect,omitempty"`
	Prec     uint32   `json:"prec,omitempty" msgpack:"prec,omitempty"`
	Scale    uint32   `json:"scale,omitempty" msgpack:"scale,omitempty"`
	HasPrec  bool     `json:"has_prec,omitempty" msgpack:"has_prec,omitempty"`
	HasScale bool     `json:"has_scale,omitempty" msgpack:"has_scale,omitempty"`
	Unsigned bool     `json:"unsigned,omitempty" msgpack:"unsigned,omitempty"`
	Values   []string `json:"values,omitempty" msgpack:"values,omitempty"`
	// To converts an application value into the column value.
	To string `json:"to,omitempty" msgpack:"to,omitempty"`
	// From converts a column value into the application value.
	From string `json:"from,omitempty" msgpack:"from,omitempty"`
}

// Valid reports if the type was successfully parsed.
func (t Type) Valid() bool { return t.Kind.Valid() }

// Unbounded reports if the type has an explicit MAX length.
func (t Type) Unbounded() bool {
	switch t.Kind {
	case VarChar, NVarChar, VarBinary:
		return t.HasPrec && t.Prec == 0
	}
	return false
}

// ToExpr returns the conversion applied when writing a value.
func (t Type) ToExpr() string {
	if t.To == "" {
		return Placeholder
	}
	return t.To
}

// FromExpr returns the conversion applied when reading a value.
func (t Type) FromExpr() string {
	if t.From == "" {
		return Placeholder
	}
	return t.From
}

// Equal reports if t and u describe the same type.
func (t Type) Equal(u Type) bool {
	if t.Kind != u.Kind || t.Dialect != u.Dialect || t.HasPrec != u.HasPrec || t.HasScale != u.HasScale ||
		t.Unsigned != u.Unsigned || t.To != u.To || t.From != u.From || len(t.Values) != len(u.Values) {
		return false
	}
	if t.HasPrec && t.Prec != u.Prec || t.HasScale && t.Scale != u.Scale {
		return false
	}
	for i := range t.Values {
		if t.Values[i] != u.Values[i] {
			return false
		}
	}
	return true
}

// String renders the canonical declaration text of the type.
func (t Type) String() string {
	if !t.Valid() {
		return ""
	}
	var b strings.Builder
	b.WriteString(t.Kind.String())
	switch {
	case len(t.Values) > 0:
		b.WriteByte('(')
		for i, v := range t.Values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Quote(v))
		}
		b.WriteByte(')')
	case t.Unbounded():
		b.WriteString("(MAX)")
	case t.HasPrec && t.HasScale:
		b.WriteString("(" + strconv.FormatUint(uint64(t.Prec), 10) + "," + strconv.FormatUint(uint64(t.Scale), 10) + ")")
	case t.HasPrec:
		b.WriteString("(" + strconv.FormatUint(uint64(t.Prec), 10) + ")")
	case t.HasScale:
		b.WriteString("(" + strconv.FormatUint(uint64(t.Scale), 10) + ")")
	}
	if t.Unsigned {
		b.WriteString(" UNSIGNED")
	}
	return b.String()
}

// Quote returns s as an SQL string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
