package mysql

import (
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Product is the database name used in diagnostics.
const Product = "MySQL"

// Parse parses a MySQL column type declaration. Attributes after the type
// other than UNSIGNED and ZEROFILL (e.g. CHARACTER SET) are not examined.
func Parse(sql string) (sqltype.Type, error) {
	return sqltype.NewParser(string(dialect.MySQL), Product, sql).Run(parseName)
}

func parseName(p *sqltype.Parser, r *sqltype.Type) error {
	t := p.Next()
	if t.Type != sqltype.Identifier {
		return p.Errorf(t, "expected MySQL type name instead of '%s'", t)
	}
	switch t.Keyword() {
	case "BIT":
		r.Kind = sqltype.Bit
		return qualify(p, r, p.Next(), false, false)
	case "BOOL", "BOOLEAN":
		r.Kind = sqltype.TinyInt
		r.Prec, r.HasPrec = 1, true
	case "TINYINT", "INT1":
		r.Kind = sqltype.TinyInt
		return qualify(p, r, p.Next(), false, true)
	case "SMALLINT", "INT2":
		r.Kind = sqltype.SmallInt
		return qualify(p, r, p.Next(), false, true)
	case "MEDIUMINT", "INT3":
		r.Kind = sqltype.MediumInt
		return qualify(p, r, p.Next(), false, true)
	case "INT", "INTEGER", "INT4":
		r.Kind = sqltype.Int
		return qualify(p, r, p.Next(), false, true)
	case "BIGINT", "INT8":
		r.Kind = sqltype.BigInt
		return qualify(p, r, p.Next(), false, true)
	case "DECIMAL", "DEC", "NUMERIC", "FIXED":
		r.Kind = sqltype.Decimal
		r.Prec, r.HasPrec = 10, true
		r.Scale, r.HasScale = 0, true
		return qualify(p, r, p.Next(), true, true)
	case "FLOAT":
		r.Kind = sqltype.Float
		if err := qualify(p, r, p.Next(), true, true); err != nil {
			return err
		}
		// FLOAT(p) with p above 24 and no scale is a DOUBLE.
		if r.HasPrec && !r.HasScale && r.Prec > 24 {
			r.Kind, r.Prec, r.HasPrec = sqltype.Double, 0, false
		}
	case "DOUBLE":
		r.Kind = sqltype.Double
		t = p.Next()
		if t.Keyword() == "PRECISION" {
			t = p.Next()
		}
		return qualify(p, r, t, true, true)
	case "REAL":
		r.Kind = sqltype.Double
		return qualify(p, r, p.Next(), true, true)
	case "DATE":
		r.Kind = sqltype.Date
	case "TIME":
		r.Kind = sqltype.Time
		return qualify(p, r, p.Next(), false, false)
	case "DATETIME":
		r.Kind = sqltype.DateTime
		return qualify(p, r, p.Next(), false, false)
	case "TIMESTAMP":
		r.Kind = sqltype.Timestamp
		return qualify(p, r, p.Next(), false, false)
	case "YEAR":
		r.Kind = sqltype.Year
		return qualify(p, r, p.Next(), false, false)
	case "CHAR", "CHARACTER", "NCHAR":
		t = p.Next()
		if t.Keyword() == "VARYING" {
			r.Kind = sqltype.VarChar
			return length(p, r, p.Next())
		}
		r.Kind = sqltype.Char
		r.Prec, r.HasPrec = 1, true
		return qualify(p, r, t, false, false)
	case "VARCHAR", "NVARCHAR":
		r.Kind = sqltype.VarChar
		return length(p, r, p.Next())
	case "NATIONAL":
		switch t = p.Next(); t.Keyword() {
		case "CHAR", "CHARACTER":
			r.Kind = sqltype.Char
			r.Prec, r.HasPrec = 1, true
			return qualify(p, r, p.Next(), false, false)
		case "VARCHAR":
			r.Kind = sqltype.VarChar
			return length(p, r, p.Next())
		default:
			return p.Errorf(t, "expected 'CHAR', 'CHARACTER', or 'VARCHAR' instead of '%s'", t)
		}
	case "BINARY":
		r.Kind = sqltype.Binary
		r.Prec, r.HasPrec = 1, true
		return qualify(p, r, p.Next(), false, false)
	case "VARBINARY":
		r.Kind = sqltype.VarBinary
		return length(p, r, p.Next())
	case "TINYTEXT":
		r.Kind = sqltype.TinyText
	case "TEXT":
		r.Kind = sqltype.Text
		return qualify(p, r, p.Next(), false, false)
	case "MEDIUMTEXT":
		r.Kind = sqltype.MediumText
	case "LONGTEXT":
		r.Kind = sqltype.LongText
	case "TINYBLOB":
		r.Kind = sqltype.TinyBlob
	case "BLOB":
		r.Kind = sqltype.Blob
		return qualify(p, r, p.Next(), false, false)
	case "MEDIUMBLOB":
		r.Kind = sqltype.MediumBlob
	case "LONGBLOB":
		r.Kind = sqltype.LongBlob
	case "ENUM":
		r.Kind = sqltype.Enum
		return values(p, r)
	case "SET":
		r.Kind = sqltype.Set
		return values(p, r)
	default:
		return p.Errorf(t, "unexpected MySQL type name '%s'", t)
	}
	return nil
}

// qualify applies an optional "(m[,d])" clause and, for numeric kinds, the
// UNSIGNED and ZEROFILL attributes.
func qualify(p *sqltype.Parser, r *sqltype.Type, t sqltype.Token, scale, numeric bool) error {
	q, t, err := p.Qualifier(t, scale)
	if err != nil {
		return err
	}
	if q.HasPrec {
		r.Prec, r.HasPrec = q.Prec, true
	}
	if q.HasScale {
		r.Scale, r.HasScale = q.Scale, true
	}
	for numeric {
		switch t.Keyword() {
		case "UNSIGNED":
			r.Unsigned = true
		case "SIGNED", "ZEROFILL":
		default:
			return nil
		}
		t = p.Next()
	}
	return nil
}

// length parses the mandatory length of VARCHAR and VARBINARY.
func length(p *sqltype.Parser, r *sqltype.Type, t sqltype.Token) error {
	if !t.Is('(') {
		return p.Errorf(t, "expected '(' instead of '%s' in MySQL %s declaration", t, r.Kind)
	}
	return qualify(p, r, t, false, false)
}

// values parses the string list of ENUM and SET.
func values(p *sqltype.Parser, r *sqltype.Type) error {
	t := p.Next()
	if !t.Is('(') {
		return p.Errorf(t, "expected '(' instead of '%s' in MySQL %s declaration", t, r.Kind)
	}
	for {
		if t = p.Next(); t.Type != sqltype.StringLit {
			return p.Errorf(t, "string literal expected in MySQL %s declaration", r.Kind)
		}
		r.Values = append(r.Values, t.Literal)
		switch t = p.Next(); {
		case t.Is(','):
		case t.Is(')'):
			return nil
		default:
			return p.Errorf(t, "expected ')' in MySQL type declaration")
		}
	}
}
