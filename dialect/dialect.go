package dialect

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/syssam/relgen/dialect/sqltype"
)

// Name identifies a target database dialect.
type Name string

// Dialect names.
const (
	MSSQL    Name = "mssql"
	MySQL    Name = "mysql"
	Postgres Name = "postgres"
	SQLite   Name = "sqlite"
)

// Names returns every dialect in generation order.
func Names() []Name {
	return []Name{MSSQL, MySQL, Postgres, SQLite}
}

// Parse returns the dialect spelled by s, ignoring case. "pgsql" and
// "postgresql" are accepted for Postgres.
func Parse(s string) (Name, error) {
	switch n := Name(strings.ToLower(strings.TrimSpace(s))); n {
	case MSSQL, MySQL, Postgres, SQLite:
		return n, nil
	case "pgsql", "postgresql":
		return Postgres, nil
	case "sqlserver":
		return MSSQL, nil
	}
	return "", fmt.Errorf("dialect: unknown dialect %q (available: %s)", s, strings.Join(names(), ", "))
}

func names() []string {
	var ns []string
	for _, n := range Names() {
		ns = append(ns, string(n))
	}
	return ns
}

// DBType is one type map entry: the column type for ordinary members and the
// type used when the member is an object id.
type DBType struct {
	Type   string `json:"type" yaml:"type" koanf:"type"`
	IDType string `json:"id_type,omitempty" yaml:"id_type,omitempty" koanf:"id_type"`
}

// For returns the entry's type text for an id or a non-id column.
func (t DBType) For(id bool) string {
	if id && t.IDType != "" {
		return t.IDType
	}
	return t.Type
}

// TypeMap maps host type names to dialect types.
type TypeMap map[string]DBType

// Merge returns a copy of m overlaid with the entries of o.
func (m TypeMap) Merge(o TypeMap) TypeMap {
	r := maps.Clone(m)
	if r == nil {
		r = make(TypeMap, len(o))
	}
	maps.Copy(r, o)
	return r
}

// Flags are the code generation switches a dialect sets for the emitter.
type Flags struct {
	GenerateGrow                bool `json:"generate_grow"`
	NeedAliasAs                 bool `json:"need_alias_as"`
	InsertSendAutoID            bool `json:"insert_send_auto_id"`
	DelayFreeingStatementResult bool `json:"delay_freeing_statement_result"`
	NeedImageClone              bool `json:"need_image_clone"`
}

// Descriptor carries everything that differs between dialects.
type Descriptor struct {
	Name Name
	// Product is the database name used in diagnostics.
	Product string
	// TypeMap is the default host type mapping.
	TypeMap TypeMap
	// Keywords are reserved words that cannot be used as bare identifiers.
	Keywords []string
	Flags    Flags
	// QuoteOpen and QuoteClose delimit quoted identifiers.
	QuoteOpen, QuoteClose byte
	// MaxIdentifier truncates each quoted part; zero means unlimited.
	MaxIdentifier int
	// Parse is the dialect's type grammar.
	Parse sqltype.ParseFunc
	// EnumType maps an enumeration without an explicit type.
	EnumType func(values []string) string
}

// QuoteID quotes a possibly qualified identifier. Empty parts are skipped
// and the rest are joined with '.'.
func (d *Descriptor) QuoteID(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		if d.MaxIdentifier > 0 && len(p) > d.MaxIdentifier {
			p = p[:d.MaxIdentifier]
		}
		b.WriteByte(d.QuoteOpen)
		b.WriteString(strings.ReplaceAll(p, string(d.QuoteClose), string([]byte{d.QuoteClose, d.QuoteClose})))
		b.WriteByte(d.QuoteClose)
	}
	return b.String()
}

// IsKeyword reports if s is one of the dialect's reserved words.
func (d *Descriptor) IsKeyword(s string) bool {
	return slices.Contains(d.Keywords, strings.ToUpper(s))
}
