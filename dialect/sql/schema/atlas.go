package schema

import (
	"fmt"

	atlas "ariga.io/atlas/sql/schema"

	"github.com/syssam/relgen/dialect/sqltype"
)

// ToAtlas converts s into an atlas schema named name. Column types are
// mapped to atlas' dialect-neutral types with the declared text kept as
// the raw type.
func ToAtlas(name string, s *Schema) (*atlas.Schema, error) {
	as := &atlas.Schema{Name: name}
	tables := make(map[string]*atlas.Table, len(s.Tables))
	for _, t := range s.Tables {
		at := &atlas.Table{Name: t.Name, Schema: as}
		for _, c := range t.Columns {
			at.Columns = append(at.Columns, &atlas.Column{
				Name: c.Name,
				Type: &atlas.ColumnType{
					Type: atlasType(c.Type),
					Raw:  c.Raw,
					Null: c.Nullable,
				},
			})
		}
		if t.PrimaryKey != nil {
			pk := &atlas.Index{Name: "PRIMARY", Unique: true, Table: at}
			for i, name := range t.PrimaryKey.Columns {
				c, ok := at.Column(name)
				if !ok {
					return nil, fmt.Errorf("schema: table %q: primary key column %q not found", t.Name, name)
				}
				pk.Parts = append(pk.Parts, &atlas.IndexPart{SeqNo: i, C: c})
			}
			at.PrimaryKey = pk
		}
		for _, idx := range t.Indexes {
			ai := &atlas.Index{Name: idx.Name, Unique: idx.Unique, Table: at}
			for i, name := range idx.Columns {
				c, ok := at.Column(name)
				if !ok {
					return nil, fmt.Errorf("schema: index %q: column %q not found", idx.Name, name)
				}
				ai.Parts = append(ai.Parts, &atlas.IndexPart{SeqNo: i, C: c})
			}
			at.Indexes = append(at.Indexes, ai)
		}
		tables[t.Name] = at
		as.Tables = append(as.Tables, at)
	}
	// Foreign keys are linked once every table exists.
	for _, t := range s.Tables {
		at := tables[t.Name]
		for _, fk := range t.ForeignKeys {
			ref, ok := tables[fk.RefTable]
			if !ok {
				return nil, fmt.Errorf("schema: foreign key %q: table %q not found", fk.Name, fk.RefTable)
			}
			afk := &atlas.ForeignKey{
				Symbol:   fk.Name,
				Table:    at,
				RefTable: ref,
				OnDelete: referenceOption(fk.OnDelete),
			}
			for _, name := range fk.Columns {
				c, ok := at.Column(name)
				if !ok {
					return nil, fmt.Errorf("schema: foreign key %q: column %q not found", fk.Name, name)
				}
				afk.Columns = append(afk.Columns, c)
			}
			for _, name := range fk.RefColumns {
				c, ok := ref.Column(name)
				if !ok {
					return nil, fmt.Errorf("schema: foreign key %q: column %q not found in %q", fk.Name, name, fk.RefTable)
				}
				afk.RefColumns = append(afk.RefColumns, c)
			}
			at.ForeignKeys = append(at.ForeignKeys, afk)
		}
	}
	return as, nil
}

func referenceOption(o ReferenceOption) atlas.ReferenceOption {
	switch o {
	case Cascade:
		return atlas.Cascade
	case SetNull:
		return atlas.SetNull
	}
	return atlas.NoAction
}

func atlasType(t sqltype.Type) atlas.Type {
	name := t.Kind.String()
	switch k := t.Kind; {
	case k == sqltype.Boolean:
		return &atlas.BoolType{T: name}
	case k.Integer():
		return &atlas.IntegerType{T: name, Unsigned: t.Unsigned}
	case k == sqltype.Decimal || k == sqltype.Numeric || k == sqltype.Money || k == sqltype.SmallMoney:
		return &atlas.DecimalType{T: name, Precision: int(t.Prec), Scale: int(t.Scale), Unsigned: t.Unsigned}
	case k.Numeric():
		return &atlas.FloatType{T: name, Precision: int(t.Prec)}
	case k == sqltype.Enum || k == sqltype.Set:
		return &atlas.EnumType{T: name, Values: t.Values}
	case k.Textual():
		return &atlas.StringType{T: name, Size: int(t.Prec)}
	case k.Binary():
		if t.HasPrec && t.Prec > 0 {
			size := int(t.Prec)
			return &atlas.BinaryType{T: name, Size: &size}
		}
		return &atlas.BinaryType{T: name}
	case k.Temporal():
		switch {
		case t.HasScale:
			p := int(t.Scale)
			return &atlas.TimeType{T: name, Precision: &p}
		case t.HasPrec:
			p := int(t.Prec)
			return &atlas.TimeType{T: name, Precision: &p}
		}
		return &atlas.TimeType{T: name}
	case k == sqltype.UUID || k == sqltype.UniqueIdentifier:
		return &atlas.UUIDType{T: name}
	}
	return &atlas.UnsupportedType{T: name}
}
