package pgsql

import (
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Product is the database name used in diagnostics.
const Product = "PostgreSQL"

// Parse parses a PostgreSQL column type declaration.
func Parse(sql string) (sqltype.Type, error) {
	return sqltype.NewParser(string(dialect.Postgres), Product, sql).Run(parseName)
}

func parseName(p *sqltype.Parser, r *sqltype.Type) error {
	t := p.Next()
	if t.Type != sqltype.Identifier {
		return p.Errorf(t, "expected PostgreSQL type name instead of '%s'", t)
	}
	switch t.Keyword() {
	case "BOOLEAN", "BOOL":
		r.Kind = sqltype.Boolean
	case "SMALLINT", "INT2":
		r.Kind = sqltype.SmallInt
	case "INTEGER", "INT", "INT4":
		r.Kind = sqltype.Integer
	case "BIGINT", "INT8":
		r.Kind = sqltype.BigInt
	case "REAL", "FLOAT4":
		r.Kind = sqltype.Real
	case "FLOAT8":
		r.Kind = sqltype.DoublePrecision
	case "DOUBLE":
		if t = p.Next(); t.Keyword() != "PRECISION" {
			return p.Errorf(t, "expected 'PRECISION' instead of '%s'", t)
		}
		r.Kind = sqltype.DoublePrecision
	case "FLOAT":
		q, _, err := p.Qualifier(p.Next(), false)
		if err != nil {
			return err
		}
		switch {
		case !q.HasPrec || q.Prec > 24 && q.Prec <= 53:
			r.Kind = sqltype.DoublePrecision
		case q.Prec >= 1 && q.Prec <= 24:
			r.Kind = sqltype.Real
		default:
			return p.Errorf(t, "precision for type FLOAT must be between 1 and 53")
		}
	case "NUMERIC", "DECIMAL":
		r.Kind = sqltype.Numeric
		return qualify(p, r, p.Next(), true)
	case "DATE":
		r.Kind = sqltype.Date
	case "TIME":
		r.Kind = sqltype.Time
		return parseZone(p, r, sqltype.TimeTZ)
	case "TIMETZ":
		r.Kind = sqltype.TimeTZ
		return qualify(p, r, p.Next(), false)
	case "TIMESTAMP":
		r.Kind = sqltype.Timestamp
		return parseZone(p, r, sqltype.TimestampTZ)
	case "TIMESTAMPTZ":
		r.Kind = sqltype.TimestampTZ
		return qualify(p, r, p.Next(), false)
	case "CHAR", "CHARACTER":
		t = p.Next()
		if t.Keyword() == "VARYING" {
			r.Kind = sqltype.VarChar
			return qualify(p, r, p.Next(), false)
		}
		r.Kind = sqltype.Char
		r.Prec, r.HasPrec = 1, true
		return qualify(p, r, t, false)
	case "VARCHAR":
		r.Kind = sqltype.VarChar
		return qualify(p, r, p.Next(), false)
	case "TEXT":
		r.Kind = sqltype.Text
	case "BYTEA":
		r.Kind = sqltype.Bytea
	case "BIT":
		t = p.Next()
		if t.Keyword() == "VARYING" {
			r.Kind = sqltype.VarBit
			return qualify(p, r, p.Next(), false)
		}
		r.Kind = sqltype.Bit
		r.Prec, r.HasPrec = 1, true
		return qualify(p, r, t, false)
	case "VARBIT":
		r.Kind = sqltype.VarBit
		return qualify(p, r, p.Next(), false)
	case "UUID":
		r.Kind = sqltype.UUID
	default:
		return p.Errorf(t, "unexpected PostgreSQL type name '%s'", t)
	}
	return nil
}

// qualify applies an optional length or precision clause to r.
func qualify(p *sqltype.Parser, r *sqltype.Type, t sqltype.Token, scale bool) error {
	q, _, err := p.Qualifier(t, scale)
	if err != nil {
		return err
	}
	if q.HasPrec {
		r.Prec, r.HasPrec = q.Prec, true
	}
	if q.HasScale {
		r.Scale, r.HasScale = q.Scale, true
	}
	return nil
}

// parseZone parses "[(p)] [WITH | WITHOUT TIME ZONE]" after TIME or
// TIMESTAMP. WITH TIME ZONE switches r to the zoned kind.
func parseZone(p *sqltype.Parser, r *sqltype.Type, zoned sqltype.Kind) error {
	q, t, err := p.Qualifier(p.Next(), false)
	if err != nil {
		return err
	}
	if q.HasPrec {
		r.Prec, r.HasPrec = q.Prec, true
	}
	switch t.Keyword() {
	case "WITH":
		r.Kind = zoned
	case "WITHOUT":
	default:
		return nil
	}
	if t = p.Next(); t.Keyword() != "TIME" {
		return p.Errorf(t, "expected 'TIME' instead of '%s'", t)
	}
	if t = p.Next(); t.Keyword() != "ZONE" {
		return p.Errorf(t, "expected 'ZONE' instead of '%s'", t)
	}
	return nil
}
