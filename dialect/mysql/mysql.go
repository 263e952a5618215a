// Package mysql describes the MySQL dialect.
package mysql

import (
	"strings"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// MaxIdentifier is the longest identifier MySQL accepts.
const MaxIdentifier = 64

// Descriptor returns the MySQL dialect descriptor.
func Descriptor() *dialect.Descriptor {
	return &dialect.Descriptor{
		Name:    dialect.MySQL,
		Product: Product,
		TypeMap: dialect.TypeMap{
			"bool":    {Type: "TINYINT(1)"},
			"int8":    {Type: "TINYINT"},
			"uint8":   {Type: "TINYINT UNSIGNED"},
			"int16":   {Type: "SMALLINT"},
			"uint16":  {Type: "SMALLINT UNSIGNED"},
			"int32":   {Type: "INT"},
			"uint32":  {Type: "INT UNSIGNED"},
			"int":     {Type: "INT"},
			"uint":    {Type: "BIGINT UNSIGNED"},
			"int64":   {Type: "BIGINT"},
			"uint64":  {Type: "BIGINT UNSIGNED"},
			"float32": {Type: "FLOAT"},
			"float64": {Type: "DOUBLE"},
			"string":  {Type: "TEXT", IDType: "VARCHAR(128)"},
			"wstring": {Type: "TEXT", IDType: "VARCHAR(128)"},
			"bytes":   {Type: "BLOB", IDType: "VARBINARY(255)"},
			"time":    {Type: "DATETIME"},
			"uuid":    {Type: "BINARY(16)"},
			"size":    {Type: "BIGINT UNSIGNED"},
		},
		Keywords: keywords,
		Flags: dialect.Flags{
			GenerateGrow:     true,
			NeedAliasAs:      true,
			InsertSendAutoID: true,
		},
		QuoteOpen:     '`',
		QuoteClose:    '`',
		MaxIdentifier: MaxIdentifier,
		Parse:         Parse,
		EnumType:      enumType,
	}
}

// enumType maps an enumeration onto a native ENUM column.
func enumType(values []string) string {
	if len(values) == 0 {
		return "INT"
	}
	qs := make([]string, len(values))
	for i, v := range values {
		qs[i] = sqltype.Quote(v)
	}
	return "ENUM(" + strings.Join(qs, ",") + ")"
}

var keywords = []string{
	"ADD", "ALL", "ALTER", "ANALYZE", "AND", "AS", "ASC", "BEFORE", "BETWEEN", "BIGINT",
	"BINARY", "BLOB", "BOTH", "BY", "CALL", "CASCADE", "CASE", "CHANGE", "CHAR", "CHARACTER",
	"CHECK", "COLLATE", "COLUMN", "CONDITION", "CONSTRAINT", "CONTINUE", "CONVERT", "CREATE",
	"CROSS", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "CURSOR",
	"DATABASE", "DATABASES", "DEC", "DECIMAL", "DECLARE", "DEFAULT", "DELAYED", "DELETE",
	"DESC", "DESCRIBE", "DISTINCT", "DIV", "DOUBLE", "DROP", "DUAL", "EACH", "ELSE", "ELSEIF",
	"ENCLOSED", "ESCAPED", "EXISTS", "EXIT", "EXPLAIN", "FALSE", "FETCH", "FLOAT", "FOR",
	"FORCE", "FOREIGN", "FROM", "FULLTEXT", "GRANT", "GROUP", "HAVING", "IF", "IGNORE", "IN",
	"INDEX", "INNER", "INOUT", "INSERT", "INT", "INTEGER", "INTERVAL", "INTO", "IS",
	"ITERATE", "JOIN", "KEY", "KEYS", "KILL", "LEADING", "LEAVE", "LEFT", "LIKE", "LIMIT",
	"LINES", "LOAD", "LOCK", "LONG", "LOOP", "MATCH", "MOD", "NATURAL", "NOT", "NULL",
	"NUMERIC", "ON", "OPTION", "OR", "ORDER", "OUT", "OUTER", "PRECISION", "PRIMARY",
	"PROCEDURE", "RANGE", "READ", "REAL", "REFERENCES", "REGEXP", "RENAME", "REPEAT",
	"REPLACE", "REQUIRE", "RESTRICT", "RETURN", "REVOKE", "RIGHT", "RLIKE", "SCHEMA",
	"SELECT", "SET", "SHOW", "SMALLINT", "SPATIAL", "SQL", "STARTING", "TABLE", "TERMINATED",
	"THEN", "TINYINT", "TO", "TRAILING", "TRIGGER", "TRUE", "UNDO", "UNION", "UNIQUE",
	"UNLOCK", "UNSIGNED", "UPDATE", "USAGE", "USE", "USING", "VALUES", "VARCHAR", "VARYING",
	"WHEN", "WHERE", "WHILE", "WITH", "WRITE", "XOR", "ZEROFILL",
}
