// Package dialect describes the database dialects relgen generates for.
//
// The set of dialects is closed:
//
//	dialect.MSSQL    = "mssql"
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite"
//
// Each dialect package (dialect/mssql, dialect/mysql, dialect/pgsql and
// dialect/sqlite) exports a Descriptor carrying its default type map,
// reserved words, identifier quoting, code generation flags and the SQL
// type grammar used to parse column type declarations:
//
//	d := mssql.Descriptor()
//	t, err := d.Parse("DECIMAL(18,4)")
//	// t.Kind == sqltype.Decimal, t.Prec == 18, t.Scale == 4
//
// Quoting follows the product's rules and truncates long names:
//
//	d.QuoteID("dbo", "person") // [dbo].[person]
package dialect
