package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/relgen/compiler/semantics"
)

// TablePrefix is the accumulated name prefix of container tables nested in
// composite values.
type TablePrefix struct {
	Prefix string
	Level  int
}

// Nested returns the prefix for containers of the composite member m.
func (p TablePrefix) Nested(m *semantics.Member) TablePrefix {
	return TablePrefix{Prefix: p.Prefix + PublicNameDB(m) + "_", Level: p.Level + 1}
}

// TableName returns the table name of class k. An explicit name wins over
// the naming rules; the configured prefix is added in both cases.
func (c *Context) TableName(k *semantics.Class) string {
	name := k.Table
	if name == "" {
		name = c.applyNaming(k.Name)
	}
	return c.Escape(c.cfg.TablePrefix + name)
}

// ClassTablePrefix returns the prefix of the container tables of class k.
func (c *Context) ClassTablePrefix(k *semantics.Class) TablePrefix {
	return TablePrefix{Prefix: c.TableName(k) + "_", Level: 1}
}

// MemberTableName returns the auxiliary table name of container member m.
// The prefix must already include the configured table prefix.
func (c *Context) MemberTableName(m *semantics.Member, p TablePrefix) string {
	if m.Table != "" {
		return c.Escape(c.cfg.TablePrefix + m.Table)
	}
	return c.Escape(p.Prefix + PublicNameDB(m))
}

// ColumnName returns the column name of member m.
func (c *Context) ColumnName(m *semantics.Member) string {
	if m.Column != "" {
		return m.Column
	}
	return c.Escape(PublicNameDB(m))
}

// ColumnNameKey returns the column name of part p of member m, or
// defaultName if the part has no explicit name.
func (c *Context) ColumnNameKey(m *semantics.Member, p semantics.Part, defaultName string) string {
	if s, ok := m.Part(p); ok && s.Column != "" {
		return s.Column
	}
	return defaultName
}

// CompositeColumnPrefix returns the prefix of the columns inlined from the
// composite member m.
func (c *Context) CompositeColumnPrefix(m *semantics.Member) string {
	if m.Column != "" {
		return m.Column
	}
	return PublicNameDB(m) + "_"
}

// Escape turns name into a safe identifier. Illegal characters become
// underscores, a leading digit gets an underscore prefix and dialect
// keywords get an underscore suffix. Safe names are returned unchanged.
func (c *Context) Escape(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r == '_' || r < unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(r)
		case r < unicode.MaxASCII && unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return "_"
	}
	if c.desc.IsKeyword(s) {
		s += "_"
	}
	return s
}

// MakeGuard returns a guard token for name: camel words are split with
// underscores, everything is upcased and the result is escaped.
func (c *Context) MakeGuard(name string) string {
	var b strings.Builder
	rs := []rune(name)
	for i, r := range rs {
		b.WriteRune(r)
		if i+1 < len(rs) && unicode.IsLower(r) && unicode.IsUpper(rs[i+1]) {
			b.WriteByte('_')
		}
	}
	return c.Escape(upper(b.String()))
}

// Quote quotes a possibly qualified identifier for the dialect.
func (c *Context) Quote(parts ...string) string {
	return c.desc.QuoteID(parts...)
}

func (c *Context) applyNaming(name string) string {
	if c.cfg.Naming.Plural {
		name = inflect.Pluralize(name)
	}
	switch c.cfg.Naming.Case {
	case CaseLower:
		return cases.Lower(language.Und).String(name)
	case CaseUpper:
		return upper(name)
	case CasePreserve:
		return name
	}
	return snake(name)
}

// PublicNameDB returns the member name cleaned up for database names: an
// "m_" prefix and leading or trailing underscores are removed. A name made
// of underscores only is returned as is.
func PublicNameDB(m *semantics.Member) string {
	s := m.Name
	b, e := 0, len(s)
	if len(s) > 2 && strings.HasPrefix(s, "m_") {
		b = 2
	}
	for b < e && s[b] == '_' {
		b++
	}
	for e > b && s[e-1] == '_' {
		e--
	}
	if b == e {
		return s
	}
	return s[b:e]
}

// FlatName flattens a qualified name: every run of "::" or "." becomes a
// single underscore and a leading separator is dropped.
func FlatName(fq string) string {
	var b strings.Builder
	sep := false
	for i := 0; i < len(fq); i++ {
		if ch := fq[i]; ch == ':' || ch == '.' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteByte(fq[i])
	}
	return b.String()
}

// snake converts a Go or C-style identifier to snake_case. Acronyms are kept
// together, including a trailing plural "s" as in "UserIDs".
func snake(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prev := rs[i-1]
			next := rune(0)
			if i+1 < len(rs) {
				next = rs[i+1]
			}
			plural := next == 's' && i+2 == len(rs)
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				unicode.IsUpper(prev) && unicode.IsLower(next) && !plural {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
