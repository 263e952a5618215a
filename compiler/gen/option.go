package gen

import (
	"log/slog"
	"slices"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// Option configures code generation.
type Option func(*Config) error

// WithDialects sets the target dialects. Aliases such as "pgsql" are
// accepted and duplicates are dropped.
func WithDialects(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewConfigError("Dialects", nil, "at least one dialect is required")
		}
		var ds []dialect.Name
		for _, s := range names {
			d, err := dialect.Parse(s)
			if err != nil {
				return NewConfigError("Dialects", s, err.Error())
			}
			if !slices.Contains(ds, d) {
				ds = append(ds, d)
			}
		}
		c.Dialects = ds
		return nil
	}
}

// WithTablePrefix sets the prefix added to every table name.
func WithTablePrefix(prefix string) Option {
	return func(c *Config) error {
		c.TablePrefix = prefix
		return nil
	}
}

// WithNaming sets the table naming rules.
func WithNaming(n Naming) Option {
	return func(c *Config) error {
		nc, err := ParseNameCase(string(n.Case))
		if err != nil {
			return NewConfigError("Naming", n.Case, "use snake, lower, upper, or preserve")
		}
		n.Case = nc
		c.Naming = n
		return nil
	}
}

// WithTypeMap overlays the host type mapping of dialect d.
func WithTypeMap(d string, m dialect.TypeMap) Option {
	return func(c *Config) error {
		name, err := dialect.Parse(d)
		if err != nil {
			return NewConfigError("TypeMap", d, err.Error())
		}
		for k, v := range m {
			if k == "" || v.Type == "" {
				return NewConfigError("TypeMap", k, "type map entries need a host type and a database type")
			}
		}
		c.TypeMap[name] = c.TypeMap[name].Merge(m)
		return nil
	}
}

// WithKeywords adds reserved words of dialect d.
func WithKeywords(d string, words ...string) Option {
	return func(c *Config) error {
		name, err := dialect.Parse(d)
		if err != nil {
			return NewConfigError("Keywords", d, err.Error())
		}
		c.Keywords[name] = append(c.Keywords[name], words...)
		return nil
	}
}

// WithCustomTypes appends override rules for dialect d. Patterns are
// compiled when the dialect's context is built.
func WithCustomTypes(d string, rules ...sqltype.Rule) Option {
	return func(c *Config) error {
		name, err := dialect.Parse(d)
		if err != nil {
			return NewConfigError("CustomTypes", d, err.Error())
		}
		for _, r := range rules {
			if r.Type == "" || r.As == "" {
				return NewConfigError("CustomTypes", r.Type, "custom type rules need a type pattern and an as template")
			}
		}
		c.CustomTypes[name] = append(c.CustomTypes[name], rules...)
		return nil
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithConcurrency bounds the number of dialect passes run in parallel.
func WithConcurrency(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Concurrency", n, "concurrency must be at least 1")
		}
		c.Concurrency = n
		return nil
	}
}

// WithEmitter sets the function run on each dialect's schema while its
// context is live. Whatever it writes to the context output is returned in
// the dialect's Output.
func WithEmitter(e Emitter) Option {
	return func(c *Config) error {
		if e == nil {
			return NewConfigError("Emitter", nil, "emitter cannot be nil")
		}
		c.Emitter = e
		return nil
	}
}

// typeMap returns the effective type map of descriptor d.
func (c *Config) typeMap(d *dialect.Descriptor) dialect.TypeMap {
	return d.TypeMap.Merge(c.TypeMap[d.Name])
}

// keywords returns the effective reserved words of descriptor d.
func (c *Config) keywords(d *dialect.Descriptor) []string {
	ks := slices.Concat(d.Keywords, c.Keywords[d.Name])
	for i, k := range ks {
		ks[i] = upper(k)
	}
	slices.Sort(ks)
	return slices.Compact(ks)
}
