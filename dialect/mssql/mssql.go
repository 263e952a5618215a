// Package mssql describes the Microsoft SQL Server dialect.
package mssql

import (
	"github.com/syssam/relgen/dialect"
)

// MaxIdentifier is the longest identifier SQL Server accepts.
const MaxIdentifier = 128

// Descriptor returns the SQL Server dialect descriptor. Each call returns a
// fresh value that the caller may modify.
func Descriptor() *dialect.Descriptor {
	return &dialect.Descriptor{
		Name:    dialect.MSSQL,
		Product: Product,
		TypeMap: dialect.TypeMap{
			"bool":    {Type: "BIT"},
			"int8":    {Type: "TINYINT"},
			"uint8":   {Type: "TINYINT"},
			"int16":   {Type: "SMALLINT"},
			"uint16":  {Type: "SMALLINT"},
			"int32":   {Type: "INT"},
			"uint32":  {Type: "INT"},
			"int":     {Type: "INT"},
			"uint":    {Type: "BIGINT"},
			"int64":   {Type: "BIGINT"},
			"uint64":  {Type: "BIGINT"},
			"float32": {Type: "REAL"},
			"float64": {Type: "FLOAT"},
			"string":  {Type: "VARCHAR(512)", IDType: "VARCHAR(256)"},
			"wstring": {Type: "NVARCHAR(512)", IDType: "NVARCHAR(256)"},
			"bytes":   {Type: "VARBINARY(MAX)"},
			"time":    {Type: "DATETIME2"},
			"uuid":    {Type: "UNIQUEIDENTIFIER"},
			"size":    {Type: "BIGINT"},
		},
		Keywords: keywords,
		Flags: dialect.Flags{
			GenerateGrow:                false,
			NeedAliasAs:                 true,
			InsertSendAutoID:            false,
			DelayFreeingStatementResult: true,
			NeedImageClone:              true,
		},
		QuoteOpen:     '[',
		QuoteClose:    ']',
		MaxIdentifier: MaxIdentifier,
		Parse:         Parse,
		EnumType:      func([]string) string { return "INT" },
	}
}

var keywords = []string{
	"ADD", "ALL", "ALTER", "AND", "ANY", "AS", "ASC", "AUTHORIZATION", "BACKUP", "BEGIN",
	"BETWEEN", "BREAK", "BROWSE", "BULK", "BY", "CASCADE", "CASE", "CHECK", "CHECKPOINT",
	"CLOSE", "CLUSTERED", "COALESCE", "COLLATE", "COLUMN", "COMMIT", "COMPUTE", "CONSTRAINT",
	"CONTAINS", "CONTAINSTABLE", "CONTINUE", "CONVERT", "CREATE", "CROSS", "CURRENT",
	"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "CURSOR", "DATABASE",
	"DBCC", "DEALLOCATE", "DECLARE", "DEFAULT", "DELETE", "DENY", "DESC", "DISK", "DISTINCT",
	"DISTRIBUTED", "DOUBLE", "DROP", "DUMP", "ELSE", "END", "ERRLVL", "ESCAPE", "EXCEPT",
	"EXEC", "EXECUTE", "EXISTS", "EXIT", "EXTERNAL", "FETCH", "FILE", "FILLFACTOR", "FOR",
	"FOREIGN", "FREETEXT", "FREETEXTTABLE", "FROM", "FULL", "FUNCTION", "GOTO", "GRANT",
	"GROUP", "HAVING", "HOLDLOCK", "IDENTITY", "IDENTITY_INSERT", "IDENTITYCOL", "IF", "IN",
	"INDEX", "INNER", "INSERT", "INTERSECT", "INTO", "IS", "JOIN", "KEY", "KILL", "LEFT",
	"LIKE", "LINENO", "LOAD", "MERGE", "NATIONAL", "NOCHECK", "NONCLUSTERED", "NOT", "NULL",
	"NULLIF", "OF", "OFF", "OFFSETS", "ON", "OPEN", "OPENDATASOURCE", "OPENQUERY",
	"OPENROWSET", "OPENXML", "OPTION", "OR", "ORDER", "OUTER", "OVER", "PERCENT", "PIVOT",
	"PLAN", "PRECISION", "PRIMARY", "PRINT", "PROC", "PROCEDURE", "PUBLIC", "RAISERROR",
	"READ", "READTEXT", "RECONFIGURE", "REFERENCES", "REPLICATION", "RESTORE", "RESTRICT",
	"RETURN", "REVERT", "REVOKE", "RIGHT", "ROLLBACK", "ROWCOUNT", "ROWGUIDCOL", "RULE",
	"SAVE", "SCHEMA", "SECURITYAUDIT", "SELECT", "SESSION_USER", "SET", "SETUSER",
	"SHUTDOWN", "SOME", "STATISTICS", "SYSTEM_USER", "TABLE", "TABLESAMPLE", "TEXTSIZE",
	"THEN", "TO", "TOP", "TRAN", "TRANSACTION", "TRIGGER", "TRUNCATE", "TSEQUAL", "UNION",
	"UNIQUE", "UNPIVOT", "UPDATE", "UPDATETEXT", "USE", "USER", "VALUES", "VARYING", "VIEW",
	"WAITFOR", "WHEN", "WHERE", "WHILE", "WITH", "WRITETEXT",
}
