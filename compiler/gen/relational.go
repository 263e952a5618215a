package gen

import (
	"github.com/syssam/relgen"
	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect/sql/schema"
)

// column is a column before its type text is resolved.
type column struct {
	name    string
	text    string
	path    string
	member  *semantics.Member
	role    schema.Role
	null    bool
	options string
}

// deriver builds the schema of one context.
type deriver struct {
	*Context
	s     *schema.Schema
	ids   map[*semantics.Class][]column
	texts map[textKey]string
	pos   map[string]semantics.Position
}

type textKey struct {
	m  *semantics.Member
	id bool
}

// Derive builds the relational schema of the unit's local object classes:
// one table per concrete class and one auxiliary table per container
// member. Type texts are resolved through the override rules and the
// dialect grammar. Mapping failures and schema inconsistencies are
// recorded as diagnostics and fail the derivation with a GenerationError.
func (c *Context) Derive() (*schema.Schema, error) {
	d := &deriver{
		Context: c,
		s:       &schema.Schema{Dialect: string(c.Dialect()), Unit: c.Unit().File},
		ids:     make(map[*semantics.Class][]column),
		texts:   make(map[textKey]string),
		pos:     make(map[string]semantics.Position),
	}
	for _, k := range c.Unit().Classes {
		if !k.Object || Abstract(k) || !c.Unit().Local(k) {
			continue
		}
		d.objectTable(k)
	}
	r := schema.ValidateSchema(d.s.Tables)
	for _, e := range r.Errors {
		c.diags.Errorf(d.pos[e.Table], "%s", e.Error())
	}
	for _, w := range r.Warnings {
		c.diags.Warnf(d.pos[w.Table], "%s", w.Error())
	}
	if n := c.diags.Errors(); n > 0 {
		c.log.Debug("schema derivation failed", "errors", n)
		return nil, NewGenerationError(c.Unit().File, string(c.Dialect()), "schema derivation failed", relgen.ErrFailed)
	}
	c.log.Debug("schema derived", "tables", len(d.s.Tables))
	return d.s, nil
}

// =============================================================================
// Object tables
// =============================================================================

func (d *deriver) objectTable(k *semantics.Class) {
	t := &schema.Table{Name: d.TableName(k), Class: k.QualifiedName()}
	d.pos[t.Name] = k.Position
	d.s.Tables = append(d.s.Tables, t)

	var (
		containers []func()
		pk         = &schema.PrimaryKey{}
		tp         = d.ClassTablePrefix(k)
	)
	var walk func(ms []*semantics.Member, prefix, path string, tp TablePrefix, id bool)
	walk = func(ms []*semantics.Member, prefix, path string, tp TablePrefix, id bool) {
		for _, m := range ms {
			if m.Transient {
				continue
			}
			isID := id || m.ID
			mpath := path + m.Name
			switch comp, ok := CompositeValueWrapper(d.Attrs(), m.Type); {
			case Container(m.Type):
				if _, inv := Inverse(m); inv {
					continue
				}
				containers = append(containers, func() { d.containerTable(k, t, m, tp, mpath) })
			case ok:
				walk(comp.AllMembers(), prefix+d.CompositeColumnPrefix(m), mpath+".", tp.Nested(m), isID)
			default:
				if m.ID && m.Auto {
					pk.Auto = true
				}
				for _, col := range d.memberColumns(t, m, prefix, mpath, isID) {
					if isID {
						pk.Columns = append(pk.Columns, col.name)
					}
				}
			}
		}
	}
	walk(k.AllMembers(), "", "", tp, false)
	if len(pk.Columns) > 0 {
		t.PrimaryKey = pk
	}
	for _, f := range containers {
		f()
	}
}

// memberColumns adds the columns of the simple or pointer member m to t.
func (d *deriver) memberColumns(t *schema.Table, m *semantics.Member, prefix, path string, id bool) []column {
	if target, ok := ObjectPointer(m.Type); ok {
		if _, inv := Inverse(m); inv {
			return nil
		}
		cols := d.pointerColumns(t, m, target, prefix+d.ColumnName(m), path, !id && Null(m))
		added := cols[:0]
		for _, col := range cols {
			if id {
				col.role = schema.RoleID
			}
			if m.DBType != "" && len(cols) == 1 {
				col.text = m.DBType
			}
			if d.addColumn(t, col) {
				added = append(added, col)
			}
		}
		return added
	}
	col := column{
		name:    prefix + d.ColumnName(m),
		text:    d.columnType(m, id),
		path:    path,
		member:  m,
		role:    schema.RoleRegular,
		null:    !id && Null(m),
		options: m.Options,
	}
	if id {
		col.role = schema.RoleID
	}
	if !d.addColumn(t, col) {
		return nil
	}
	return []column{col}
}

// pointerColumns returns the columns referencing the id of target and adds
// the foreign key to t.
func (d *deriver) pointerColumns(t *schema.Table, m *semantics.Member, target *semantics.Class, name, path string, null bool) []column {
	ref := d.idColumns(target)
	if len(ref) == 0 {
		return nil
	}
	fk := &schema.ForeignKey{RefTable: d.TableName(target)}
	cols := make([]column, len(ref))
	for i, r := range ref {
		cols[i] = column{
			name:    name,
			text:    r.text,
			path:    path,
			member:  m,
			role:    schema.RoleRegular,
			null:    null,
			options: m.Options,
		}
		if len(ref) > 1 {
			cols[i].name = name + "_" + r.name
		}
		fk.Columns = append(fk.Columns, cols[i].name)
		fk.RefColumns = append(fk.RefColumns, r.name)
	}
	fk.Name = d.Escape(t.Name + "_" + name + "_fk")
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return cols
}

// idColumns returns the id columns of class k as they appear in its table.
func (d *deriver) idColumns(k *semantics.Class) []column {
	if cols, ok := d.ids[k]; ok {
		return cols
	}
	var cols []column
	if id, ok := IDMember(d.Attrs(), k); ok {
		if comp, ok := CompositeValueWrapper(d.Attrs(), id.Type); ok {
			prefix := d.CompositeColumnPrefix(id)
			for _, m := range comp.AllMembers() {
				if m.Transient {
					continue
				}
				cols = append(cols, column{name: prefix + d.ColumnName(m), text: d.columnType(m, true), member: m})
			}
		} else {
			cols = append(cols, column{name: d.ColumnName(id), text: d.columnType(id, true), member: id})
		}
	}
	d.ids[k] = cols
	return cols
}

// columnType is ColumnType with the member's alias hint. Each member is
// resolved once so a mapping failure is reported once.
func (d *deriver) columnType(m *semantics.Member, id bool) string {
	key := textKey{m, id}
	if s, ok := d.texts[key]; ok {
		return s
	}
	s := d.ColumnType(m, m.Hint, id)
	d.texts[key] = s
	return s
}

// addColumn resolves the type of col and adds it to t. Columns whose type
// text is unknown are left out; the mapping failure is already recorded.
func (d *deriver) addColumn(t *schema.Table, col column) bool {
	if col.text == "" {
		return false
	}
	typ, err := d.ParseSQLType(col.text, col.member)
	if err != nil {
		d.diags.Errorf(col.member.Position, "%s", errorText(err))
		return false
	}
	t.AddColumn(&schema.Column{
		Name:     col.name,
		Type:     typ,
		Raw:      d.Rewrite(col.text),
		Nullable: col.null,
		Options:  col.options,
		Role:     col.role,
		Member:   col.path,
	})
	return true
}

// errorText returns the message of a resolution error without the
// position prefix the diagnostic adds again.
func errorText(err error) string {
	if e, ok := err.(*SQLTypeError); ok && e.Cause != nil {
		return e.Cause.Error()
	}
	return err.Error()
}

// =============================================================================
// Container tables
// =============================================================================

func (d *deriver) containerTable(k *semantics.Class, owner *schema.Table, m *semantics.Member, tp TablePrefix, path string) {
	tree, _ := semantics.Get(d.Attrs(), TreeKey, m)
	kind, _ := ContainerKindOf(m.Type)
	t := &schema.Table{
		Name:   d.MemberTableName(m, tp),
		Class:  owner.Class,
		Member: path,
		Container: &schema.Container{
			Kind:  kind.String(),
			ID:    typeName(tree.ID),
			Value: typeName(tree.Value),
			Index: typeName(tree.Index),
			Key:   typeName(tree.Key),
		},
	}
	d.pos[t.Name] = m.Position
	d.s.Tables = append(d.s.Tables, t)

	// object_id references the owner's key.
	var (
		idName = d.ColumnNameKey(m, semantics.PartID, "object_id")
		idSpec = partSpec(m, semantics.PartID)
		fk     = &schema.ForeignKey{RefTable: owner.Name, OnDelete: schema.Cascade}
		idx    = &schema.Index{Name: d.Escape(t.Name + "_object_id_i")}
	)
	ref := d.idColumns(k)
	for _, r := range ref {
		col := column{name: idName, text: r.text, path: path, member: r.member, role: schema.RoleObjectID, options: idSpec.Options}
		if len(ref) > 1 {
			col.name = idName + "_" + r.name
		}
		if idSpec.Type != "" {
			col.text, col.member = idSpec.Type, m
		}
		if d.addColumn(t, col) {
			fk.Columns = append(fk.Columns, col.name)
			fk.RefColumns = append(fk.RefColumns, r.name)
			idx.Columns = append(idx.Columns, col.name)
		}
	}
	if len(fk.Columns) > 0 {
		fk.Name = d.Escape(t.Name + "_" + idName + "_fk")
		t.ForeignKeys = append(t.ForeignKeys, fk)
		t.Indexes = append(t.Indexes, idx)
	}

	if tree.Index != nil {
		spec := partSpec(m, semantics.PartIndex)
		col := column{
			name:    d.ColumnNameKey(m, semantics.PartIndex, "index"),
			text:    spec.Type,
			path:    path,
			member:  m,
			role:    schema.RoleIndex,
			options: spec.Options,
		}
		if col.text == "" {
			col.text = d.partType(m, tree.Index, "", false)
		}
		if d.addColumn(t, col) {
			t.Indexes = append(t.Indexes, &schema.Index{Name: d.Escape(t.Name + "_index_i"), Columns: []string{col.name}})
		}
	}
	if tree.Key != nil {
		d.elementColumns(t, m, semantics.PartKey, tree.Key, "key", path, schema.RoleKey)
	}
	if tree.Value != nil {
		d.elementColumns(t, m, semantics.PartValue, tree.Value, "value", path, schema.RoleValue)
	}
}

// elementColumns adds the columns of the key or value part of container m.
func (d *deriver) elementColumns(t *schema.Table, m *semantics.Member, p semantics.Part, et *semantics.Type, def, path string, role schema.Role) {
	spec := partSpec(m, p)
	name := d.ColumnNameKey(m, p, def)
	null := p == semantics.PartValue && typeNull(et)
	if spec.Null != nil {
		null = *spec.Null
	}
	if target, ok := ObjectPointer(et); ok {
		for _, col := range d.pointerColumns(t, m, target, name, path, null) {
			col.role = role
			col.options = spec.Options
			if spec.Type != "" {
				col.text = spec.Type
			}
			d.addColumn(t, col)
		}
		return
	}
	if comp, ok := CompositeValueWrapper(d.Attrs(), et); ok {
		prefix := name + "_"
		for _, n := range comp.AllMembers() {
			if n.Transient {
				continue
			}
			d.addColumn(t, column{
				name:    prefix + d.ColumnName(n),
				text:    d.columnType(n, false),
				path:    path + "." + n.Name,
				member:  n,
				role:    role,
				null:    null || Null(n),
				options: n.Options,
			})
		}
		return
	}
	col := column{name: name, text: spec.Type, path: path, member: m, role: role, null: null, options: spec.Options}
	if col.text == "" {
		col.text = d.partType(m, et, "", false)
	}
	d.addColumn(t, col)
}

func partSpec(m *semantics.Member, p semantics.Part) semantics.PartSpec {
	s, _ := m.Part(p)
	return s
}

func typeName(t *semantics.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
