package sqlite

import (
	"strings"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Product is the database name used in diagnostics.
const Product = "SQLite"

// Parse determines the column affinity of an SQLite type declaration
// using the database's own rules: the type name words are joined and
// searched for INT, then CHAR/CLOB/TEXT, then BLOB, then REAL/FLOA/DOUB.
// An empty declaration has BLOB affinity; anything else has NUMERIC
// affinity.
func Parse(sql string) (sqltype.Type, error) {
	return sqltype.NewParser(string(dialect.SQLite), Product, sql).Run(parseName)
}

func parseName(p *sqltype.Parser, r *sqltype.Type) error {
	t := p.Next()
	if t.Type == sqltype.EOF {
		r.Kind = sqltype.Blob
		return nil
	}
	if t.Type != sqltype.Identifier {
		return p.Errorf(t, "expected SQLite type name instead of '%s'", t)
	}
	var words []string
	for ; t.Type == sqltype.Identifier; t = p.Next() {
		words = append(words, t.Keyword())
	}
	q, _, err := p.Qualifier(t, true)
	if err != nil {
		return err
	}
	name := strings.Join(words, " ")
	switch {
	case strings.Contains(name, "INT"):
		r.Kind = sqltype.Integer
	case strings.Contains(name, "CHAR"), strings.Contains(name, "CLOB"), strings.Contains(name, "TEXT"):
		r.Kind = sqltype.Text
	case strings.Contains(name, "BLOB"):
		r.Kind = sqltype.Blob
	case strings.Contains(name, "REAL"), strings.Contains(name, "FLOA"), strings.Contains(name, "DOUB"):
		r.Kind = sqltype.Real
	default:
		r.Kind = sqltype.Numeric
		if q.HasPrec {
			r.Prec, r.HasPrec = q.Prec, true
		}
		if q.HasScale {
			r.Scale, r.HasScale = q.Scale, true
		}
	}
	return nil
}
