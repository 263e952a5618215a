// Package sqlite describes the SQLite dialect.
package sqlite

import (
	"github.com/syssam/relgen/dialect"
)

// Descriptor returns the SQLite dialect descriptor.
func Descriptor() *dialect.Descriptor {
	return &dialect.Descriptor{
		Name:    dialect.SQLite,
		Product: Product,
		TypeMap: dialect.TypeMap{
			"bool":    {Type: "INTEGER"},
			"int8":    {Type: "INTEGER"},
			"uint8":   {Type: "INTEGER"},
			"int16":   {Type: "INTEGER"},
			"uint16":  {Type: "INTEGER"},
			"int32":   {Type: "INTEGER"},
			"uint32":  {Type: "INTEGER"},
			"int":     {Type: "INTEGER"},
			"uint":    {Type: "INTEGER"},
			"int64":   {Type: "INTEGER"},
			"uint64":  {Type: "INTEGER"},
			"float32": {Type: "REAL"},
			"float64": {Type: "REAL"},
			"string":  {Type: "TEXT"},
			"wstring": {Type: "TEXT"},
			"bytes":   {Type: "BLOB"},
			"time":    {Type: "TEXT"},
			"uuid":    {Type: "BLOB"},
			"size":    {Type: "INTEGER"},
		},
		Keywords: keywords,
		Flags: dialect.Flags{
			GenerateGrow:     true,
			InsertSendAutoID: true,
		},
		QuoteOpen:  '"',
		QuoteClose: '"',
		Parse:      Parse,
		EnumType:   func([]string) string { return "INTEGER" },
	}
}

var keywords = []string{
	"ABORT", "ACTION", "ADD", "AFTER", "ALL", "ALTER", "ANALYZE", "AND", "AS", "ASC",
	"ATTACH", "AUTOINCREMENT", "BEFORE", "BEGIN", "BETWEEN", "BY", "CASCADE", "CASE", "CAST",
	"CHECK", "COLLATE", "COLUMN", "COMMIT", "CONFLICT", "CONSTRAINT", "CREATE", "CROSS",
	"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "DATABASE", "DEFAULT", "DEFERRABLE",
	"DEFERRED", "DELETE", "DESC", "DETACH", "DISTINCT", "DROP", "EACH", "ELSE", "END",
	"ESCAPE", "EXCEPT", "EXCLUSIVE", "EXISTS", "EXPLAIN", "FAIL", "FOR", "FOREIGN", "FROM",
	"FULL", "GLOB", "GROUP", "HAVING", "IF", "IGNORE", "IMMEDIATE", "IN", "INDEX", "INDEXED",
	"INITIALLY", "INNER", "INSERT", "INSTEAD", "INTERSECT", "INTO", "IS", "ISNULL", "JOIN",
	"KEY", "LEFT", "LIKE", "LIMIT", "MATCH", "NATURAL", "NO", "NOT", "NOTNULL", "NULL", "OF",
	"OFFSET", "ON", "OR", "ORDER", "OUTER", "PLAN", "PRAGMA", "PRIMARY", "QUERY", "RAISE",
	"REFERENCES", "REGEXP", "REINDEX", "RELEASE", "RENAME", "REPLACE", "RESTRICT", "RIGHT",
	"ROLLBACK", "ROW", "SAVEPOINT", "SELECT", "SET", "TABLE", "TEMP", "TEMPORARY", "THEN",
	"TO", "TRANSACTION", "TRIGGER", "UNION", "UNIQUE", "UPDATE", "USING", "VACUUM", "VALUES",
	"VIEW", "VIRTUAL", "WHEN", "WHERE",
}
