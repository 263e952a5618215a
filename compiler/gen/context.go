package gen

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Pass is one generation pass over a unit for a single dialect. It owns at
// most one live Context at a time.
type Pass struct {
	Unit    *semantics.Unit
	Attrs   *semantics.Attrs
	Dialect dialect.Name

	mu      sync.Mutex
	current *Context
}

// NewPass returns a pass of unit u for dialect d. The side table must hold
// the attributes recorded by the validator and the type processor.
func NewPass(u *semantics.Unit, attrs *semantics.Attrs, d dialect.Name) *Pass {
	return &Pass{Unit: u, Attrs: attrs, Dialect: d}
}

// Current returns the live context of the pass.
func (p *Pass) Current() (*Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, ErrNoContext
	}
	return p.current, nil
}

// Context is the type resolution state of one pass: the dialect's type
// map, keywords and flags, the compiled override rules, the SQL type cache
// and the output sink. Everything except the sink and the cache is fixed
// once the context is built.
//
// A Context is not safe for concurrent use.
type Context struct {
	pass    *Pass
	cfg     *Config
	desc    *dialect.Descriptor
	typeMap dialect.TypeMap
	rules   sqltype.Rules
	cache   *sqltype.Cache
	diags   *Diagnostics
	log     *slog.Logger

	out    io.Writer
	sinks  []io.Writer
	closed bool
}

// NewContext builds the context of pass p writing to out and makes it the
// pass's current context. It fails with ErrContextActive if the pass
// already has one, and with a ConfigError if an override rule does not
// compile.
func NewContext(p *Pass, cfg *Config, out io.Writer) (*Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		return nil, ErrContextActive
	}
	desc, err := NewDescriptor(p.Dialect)
	if err != nil {
		return nil, &ConfigError{Option: "Dialects", Value: p.Dialect, Message: "unsupported dialect", Cause: err}
	}
	rules, err := sqltype.CompileRules(cfg.CustomTypes[p.Dialect])
	if err != nil {
		return nil, &ConfigError{Option: "CustomTypes", Value: string(p.Dialect), Message: "invalid custom type rule", Cause: err}
	}
	desc.Keywords = cfg.keywords(desc)
	if out == nil {
		out = io.Discard
	}
	c := &Context{
		pass:    p,
		cfg:     cfg,
		desc:    desc,
		typeMap: cfg.typeMap(desc),
		rules:   rules,
		cache:   sqltype.NewCache(),
		diags:   &Diagnostics{},
		log:     cfg.Logger.With("dialect", string(p.Dialect), "unit", p.Unit.File),
		out:     out,
	}
	p.current = c
	c.log.Debug("type resolution context created", "types", len(c.typeMap), "rules", len(rules))
	return c, nil
}

// Close releases the pass's current slot. It is safe to call more than once.
func (c *Context) Close() {
	c.pass.mu.Lock()
	defer c.pass.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.pass.current == c {
		c.pass.current = nil
	}
}

// Dialect returns the context's dialect.
func (c *Context) Dialect() dialect.Name { return c.desc.Name }

// Product returns the database product name of the dialect.
func (c *Context) Product() string { return c.desc.Product }

// Flags returns the code generation flags of the dialect.
func (c *Context) Flags() dialect.Flags { return c.desc.Flags }

// Unit returns the unit being compiled.
func (c *Context) Unit() *semantics.Unit { return c.pass.Unit }

// Attrs returns the side table of the unit.
func (c *Context) Attrs() *semantics.Attrs { return c.pass.Attrs }

// Diagnostics returns the diagnostics recorded by the pass.
func (c *Context) Diagnostics() *Diagnostics { return c.diags }

// Keyword reports if s is reserved in the dialect.
func (c *Context) Keyword(s string) bool { return c.desc.IsKeyword(s) }

// =============================================================================
// Output redirection
// =============================================================================

// Out returns the current output sink.
func (c *Context) Out() io.Writer { return c.out }

// Diverge redirects output to w until the returned function is called.
// The restore function is idempotent and also unwinds diversions nested in
// this one that were not restored; callers defer it.
func (c *Context) Diverge(w io.Writer) (restore func()) {
	c.sinks = append(c.sinks, c.out)
	c.out = w
	depth := len(c.sinks)
	var once sync.Once
	return func() {
		once.Do(func() {
			for len(c.sinks) >= depth {
				c.Restore()
			}
		})
	}
}

// Restore undoes the latest diversion. It is a no-op when output is not
// diverted.
func (c *Context) Restore() {
	n := len(c.sinks)
	if n == 0 {
		return
	}
	c.out = c.sinks[n-1]
	c.sinks = c.sinks[:n-1]
}

// =============================================================================
// Type resolution
// =============================================================================

// DatabaseType returns the dialect type text mapped to host type t, or ""
// if there is none. The alias hint is looked up before the type name and
// enumerations fall back to the dialect's enum mapping. The text is not
// parsed here; ParseSQLType resolves it through the override rules.
func (c *Context) DatabaseType(t *semantics.Type, hint string, id bool) string {
	for _, name := range [...]string{hint, t.Name} {
		if name == "" {
			continue
		}
		if e, ok := c.typeMap[name]; ok {
			if s := e.For(id); s != "" {
				return s
			}
		}
	}
	if t.Kind == semantics.KindEnum && c.desc.EnumType != nil {
		return c.desc.EnumType(t.Values)
	}
	return ""
}

// ProbeSQLType parses raw without consulting the override rules. Failure
// means the text is not usable as a mapping; it is not an error.
func (c *Context) ProbeSQLType(raw string) (sqltype.Type, bool) {
	if t, ok := c.cache.Straight(raw); ok {
		return t, t.Valid()
	}
	t, err := c.desc.Parse(raw)
	if err != nil {
		c.log.Debug("sql type probe failed", "type", raw, "error", err)
		t = sqltype.Type{}
	}
	c.cache.SetStraight(raw, t)
	return t, t.Valid()
}

// ParseSQLType resolves the declaration raw of member m through the
// override rules and the dialect grammar. Failure is reported as a
// SQLTypeError positioned at m.
func (c *Context) ParseSQLType(raw string, m *semantics.Member) (sqltype.Type, error) {
	t, err := c.ResolveSQLType(raw)
	if err != nil {
		return sqltype.Type{}, NewSQLTypeError(m, raw, err)
	}
	return t, nil
}

// ResolveSQLType is ParseSQLType for a declaration that no member owns.
// It shares the custom cache slot and returns the grammar or rule error
// unwrapped.
func (c *Context) ResolveSQLType(raw string) (sqltype.Type, error) {
	if t, ok := c.cache.Custom(raw); ok {
		return t, nil
	}
	t, err := sqltype.Resolve(raw, c.rules, c.desc.Parse)
	if err != nil {
		return sqltype.Type{}, err
	}
	c.cache.SetCustom(raw, t)
	return t, nil
}

// Rewrite returns raw after the override rules, as it is handed to the
// grammar.
func (c *Context) Rewrite(raw string) string {
	if m, ok := c.rules.Apply(raw); ok {
		return m.As
	}
	return raw
}

// ConvertExpr returns the conversion applied when writing (to) or reading
// a value of type t. The placeholder (?) stands for the value.
func (c *Context) ConvertExpr(t sqltype.Type, to bool) string {
	if to {
		return t.ToExpr()
	}
	return t.FromExpr()
}

// ColumnType returns the type text of member m: its explicit declaration
// (the id-specific one first), the explicit mapping of its type, or the
// dialect mapping. When nothing maps, a diagnostic is recorded and "" is
// returned.
func (c *Context) ColumnType(m *semantics.Member, hint string, id bool) string {
	if s := explicitType(id, m.DBIDType, m.DBType); s != "" {
		return s
	}
	return c.partType(m, m.Type, hint, id)
}

// partType is ColumnType for type t, which m was declared with directly or
// as a container part.
func (c *Context) partType(m *semantics.Member, t *semantics.Type, hint string, id bool) string {
	s, err := c.LookupType(t, hint, id)
	if err != nil {
		c.diags.ErrorWithNote(m.Position, fmt.Sprintf("unable to map type '%s' used in data member '%s' to a %s database type", t, m.Name, c.desc.Product),
			Note{Pos: m.Position, Message: "use the member's type annotation to specify the database type"})
		return ""
	}
	return s
}

// LookupType returns the type text of t: the explicit mapping of the type
// or of the class it names, then the dialect mapping of t and of the type
// it wraps. It returns a MappingError if none applies.
func (c *Context) LookupType(t *semantics.Type, hint string, id bool) (string, error) {
	if t == nil {
		return "", relgen.NewMappingError("", c.desc.Product)
	}
	if s := explicitType(id, t.DBIDType, t.DBType); s != "" {
		return s, nil
	}
	if t.Kind == semantics.KindClass && t.Class != nil {
		if s := explicitType(id, t.Class.DBIDType, t.Class.DBType); s != "" {
			return s, nil
		}
	}
	if s := c.DatabaseType(t, hint, id); s != "" {
		return s, nil
	}
	if w, ok := Wrapper(t); ok {
		if s := explicitType(id, w.DBIDType, w.DBType); s != "" {
			return s, nil
		}
		if s := c.DatabaseType(w, "", id); s != "" {
			return s, nil
		}
	}
	return "", relgen.NewMappingError(t.String(), c.desc.Product)
}

func explicitType(id bool, idType, typ string) string {
	if id && idType != "" {
		return idType
	}
	return typ
}
