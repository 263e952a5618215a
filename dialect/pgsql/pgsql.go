// Package pgsql describes the PostgreSQL dialect.
package pgsql

import (
	"github.com/syssam/relgen/dialect"
)

// MaxIdentifier is the longest identifier PostgreSQL keeps (NAMEDATALEN-1).
const MaxIdentifier = 63

// Descriptor returns the PostgreSQL dialect descriptor.
func Descriptor() *dialect.Descriptor {
	return &dialect.Descriptor{
		Name:    dialect.Postgres,
		Product: Product,
		TypeMap: dialect.TypeMap{
			"bool":    {Type: "BOOLEAN"},
			"int8":    {Type: "SMALLINT"},
			"uint8":   {Type: "SMALLINT"},
			"int16":   {Type: "SMALLINT"},
			"uint16":  {Type: "INTEGER"},
			"int32":   {Type: "INTEGER"},
			"uint32":  {Type: "BIGINT"},
			"int":     {Type: "INTEGER"},
			"uint":    {Type: "BIGINT"},
			"int64":   {Type: "BIGINT"},
			"uint64":  {Type: "BIGINT"},
			"float32": {Type: "REAL"},
			"float64": {Type: "DOUBLE PRECISION"},
			"string":  {Type: "TEXT"},
			"wstring": {Type: "TEXT"},
			"bytes":   {Type: "BYTEA"},
			"time":    {Type: "TIMESTAMP"},
			"uuid":    {Type: "UUID"},
			"size":    {Type: "BIGINT"},
		},
		Keywords: keywords,
		Flags: dialect.Flags{
			GenerateGrow: true,
			NeedAliasAs:  true,
		},
		QuoteOpen:     '"',
		QuoteClose:    '"',
		MaxIdentifier: MaxIdentifier,
		Parse:         Parse,
		EnumType:      func([]string) string { return "INTEGER" },
	}
}

var keywords = []string{
	"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC", "ASYMMETRIC",
	"AUTHORIZATION", "BINARY", "BOTH", "CASE", "CAST", "CHECK", "COLLATE", "COLLATION",
	"COLUMN", "CONCURRENTLY", "CONSTRAINT", "CREATE", "CROSS", "CURRENT_CATALOG",
	"CURRENT_DATE", "CURRENT_ROLE", "CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "DEFAULT", "DEFERRABLE", "DESC", "DISTINCT", "DO", "ELSE", "END",
	"EXCEPT", "FALSE", "FETCH", "FOR", "FOREIGN", "FREEZE", "FROM", "FULL", "GRANT", "GROUP",
	"HAVING", "ILIKE", "IN", "INITIALLY", "INNER", "INTERSECT", "INTO", "IS", "ISNULL",
	"JOIN", "LATERAL", "LEADING", "LEFT", "LIKE", "LIMIT", "LOCALTIME", "LOCALTIMESTAMP",
	"NATURAL", "NOT", "NOTNULL", "NULL", "OFFSET", "ON", "ONLY", "OR", "ORDER", "OUTER",
	"OVERLAPS", "PLACING", "PRIMARY", "REFERENCES", "RETURNING", "RIGHT", "SELECT",
	"SESSION_USER", "SIMILAR", "SOME", "SYMMETRIC", "TABLE", "TABLESAMPLE", "THEN", "TO",
	"TRAILING", "TRUE", "UNION", "UNIQUE", "USER", "USING", "VARIADIC", "VERBOSE", "WHEN",
	"WHERE", "WINDOW", "WITH",
}
