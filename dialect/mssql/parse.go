package mssql

import (
	"math"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Product is the database name used in diagnostics.
const Product = "SQL Server"

// Parse parses an SQL Server column type declaration. Tokens following a
// complete type are not examined.
func Parse(sql string) (sqltype.Type, error) {
	return sqltype.NewParser(string(dialect.MSSQL), Product, sql).Run(parseName)
}

func parseName(p *sqltype.Parser, r *sqltype.Type) error {
	t := p.Next()
	if t.Type != sqltype.Identifier {
		return p.Errorf(t, "expected SQL Server type name instead of '%s'", t)
	}
	switch id := t.Keyword(); id {
	case "BIT":
		r.Kind = sqltype.Bit
	case "TINYINT":
		r.Kind = sqltype.TinyInt
	case "SMALLINT":
		r.Kind = sqltype.SmallInt
	case "INT", "INTEGER":
		r.Kind = sqltype.Int
	case "BIGINT":
		r.Kind = sqltype.BigInt
	case "DECIMAL", "NUMERIC", "DEC":
		r.Kind = sqltype.Decimal
		r.Prec, r.HasPrec = 18, true
		r.Scale, r.HasScale = 0, true
		return parsePrecision(p, r, p.Next())
	case "SMALLMONEY":
		r.Kind = sqltype.SmallMoney
	case "MONEY":
		r.Kind = sqltype.Money
	case "REAL":
		r.Kind = sqltype.Float
		r.Prec, r.HasPrec = 24, true
	case "FLOAT":
		r.Kind = sqltype.Float
		r.Prec, r.HasPrec = 53, true
		return parsePrecision(p, r, p.Next())
	case "DOUBLE":
		if t = p.Next(); t.Keyword() != "PRECISION" {
			return p.Errorf(t, "expected 'PRECISION' instead of '%s'", t)
		}
		r.Kind = sqltype.Float
		r.Prec, r.HasPrec = 53, true
		// DOUBLE PRECISION may be followed by an explicit precision.
		return parsePrecision(p, r, p.Next())
	case "CHAR", "CHARACTER":
		return parseCharTrailer(p, r, false)
	case "VARCHAR":
		r.Kind = sqltype.VarChar
		r.Prec, r.HasPrec = 1, true
		return parsePrecision(p, r, p.Next())
	case "TEXT":
		r.Kind = sqltype.Text
	case "NCHAR":
		r.Kind = sqltype.NChar
		r.Prec, r.HasPrec = 1, true
		return parsePrecision(p, r, p.Next())
	case "NVARCHAR":
		r.Kind = sqltype.NVarChar
		r.Prec, r.HasPrec = 1, true
		return parsePrecision(p, r, p.Next())
	case "NTEXT":
		r.Kind = sqltype.NText
	case "NATIONAL":
		switch t = p.Next(); t.Keyword() {
		case "TEXT":
			r.Kind = sqltype.NText
		case "CHAR", "CHARACTER":
			return parseCharTrailer(p, r, true)
		default:
			return p.Errorf(t, "expected 'CHAR', 'CHARACTER', or 'TEXT' instead of '%s'", t)
		}
	case "BINARY":
		r.Kind = sqltype.Binary
		if t = p.Next(); t.Keyword() == "VARYING" {
			r.Kind = sqltype.VarBinary
			t = p.Next()
		}
		r.Prec, r.HasPrec = 1, true
		return parsePrecision(p, r, t)
	case "VARBINARY":
		r.Kind = sqltype.VarBinary
		r.Prec, r.HasPrec = 1, true
		return parsePrecision(p, r, p.Next())
	case "IMAGE":
		r.Kind = sqltype.Image
	case "DATE":
		r.Kind = sqltype.Date
	case "TIME":
		r.Kind = sqltype.Time
		r.Scale, r.HasScale = 7, true
		return parsePrecision(p, r, p.Next())
	case "DATETIME":
		r.Kind = sqltype.DateTime
	case "DATETIME2":
		r.Kind = sqltype.DateTime2
		r.Scale, r.HasScale = 7, true
		return parsePrecision(p, r, p.Next())
	case "SMALLDATETIME":
		r.Kind = sqltype.SmallDateTime
	case "DATETIMEOFFSET":
		r.Kind = sqltype.DateTimeOffset
		r.Scale, r.HasScale = 7, true
		return parsePrecision(p, r, p.Next())
	case "UNIQUEIDENTIFIER":
		r.Kind = sqltype.UniqueIdentifier
	case "ROWVERSION", "TIMESTAMP":
		r.Kind = sqltype.RowVersion
	default:
		return p.Errorf(t, "unexpected SQL Server type name '%s'", t)
	}
	return nil
}

// parsePrecision parses an optional "(prec[,scale])" clause starting at t.
// For the temporal kinds the single number is the fractional seconds scale.
func parsePrecision(p *sqltype.Parser, r *sqltype.Type, t sqltype.Token) error {
	if !t.Is('(') {
		return nil
	}
	t = p.Next()
	switch {
	case t.Keyword() == "MAX":
		// MAX is a length of the variable-length kinds only.
		r.Prec, r.HasPrec = 0, true
		if !r.Unbounded() {
			return p.Errorf(t, "invalid precision value '%s' in SQL Server type declaration", t)
		}
	case t.Type == sqltype.IntLit:
		v, ok := p.Uint(t, math.MaxUint16)
		if !ok {
			return p.Errorf(t, "invalid precision value '%s' in SQL Server type declaration", t)
		}
		switch r.Kind {
		case sqltype.Time, sqltype.DateTime2, sqltype.DateTimeOffset:
			r.Scale, r.HasScale = v, true
		default:
			r.Prec, r.HasPrec = v, true
		}
	default:
		return p.Errorf(t, "integer precision expected in SQL Server type declaration")
	}
	if t = p.Next(); t.Is(',') {
		// Scale can only be specified for DECIMAL.
		if r.Kind != sqltype.Decimal {
			return p.Errorf(t, "unexpected scale in SQL Server type declaration")
		}
		if t = p.Next(); t.Type != sqltype.IntLit {
			return p.Errorf(t, "integer scale expected in SQL Server type declaration")
		}
		v, ok := p.Uint(t, math.MaxUint32)
		if !ok {
			return p.Errorf(t, "invalid scale value '%s' in SQL Server type declaration", t)
		}
		r.Scale, r.HasScale = v, true
		t = p.Next()
	}
	if !t.Is(')') {
		return p.Errorf(t, "expected ')' in SQL Server type declaration")
	}
	return nil
}

// parseCharTrailer parses what follows CHAR or CHARACTER: an optional
// VARYING and the length clause.
func parseCharTrailer(p *sqltype.Parser, r *sqltype.Type, national bool) error {
	t := p.Next()
	varying := t.Keyword() == "VARYING"
	if varying {
		t = p.Next()
	}
	switch {
	case varying && national:
		r.Kind = sqltype.NVarChar
	case varying:
		r.Kind = sqltype.VarChar
	case national:
		r.Kind = sqltype.NChar
	default:
		r.Kind = sqltype.Char
	}
	r.Prec, r.HasPrec = 1, true
	return parsePrecision(p, r, t)
}
