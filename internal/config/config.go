// Package config loads the relgen command line configuration.
//
// Values are layered from lowest to highest precedence: defaults, the YAML
// config file, RELGEN_ environment variables and explicitly set flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "RELGEN_"

// Defaults.
const (
	DefaultFormat   = "table"
	DefaultDebounce = 200 * time.Millisecond
)

// DefaultFiles are the config files looked up in the working directory
// when no file is given.
var DefaultFiles = []string{"relgen.yaml", "relgen.yml"}

// Naming holds the table naming rules.
type Naming struct {
	Case   string `koanf:"case" validate:"omitempty,oneof=snake lower upper preserve"`
	Plural bool   `koanf:"plural"`
}

// Config holds all command line configuration options.
type Config struct {
	Dialects    []string                   `koanf:"dialects" validate:"required,min=1,dive,dialect"`
	Output      string                     `koanf:"output"`
	Package     string                     `koanf:"package" validate:"omitempty,lowercase,excludesall=/.-"`
	Format      string                     `koanf:"format" validate:"oneof=table json msgpack"`
	TablePrefix string                     `koanf:"table_prefix"`
	Naming      Naming                     `koanf:"naming"`
	Concurrency int                        `koanf:"concurrency" validate:"gte=0"`
	Debounce    time.Duration              `koanf:"debounce" validate:"gte=0"`
	Verbose     bool                       `koanf:"verbose"`
	TypeMaps    map[string]dialect.TypeMap `koanf:"type_maps" validate:"dive,keys,dialect,endkeys"`
	Keywords    map[string][]string        `koanf:"keywords" validate:"dive,keys,dialect,endkeys"`
	CustomTypes map[string][]sqltype.Rule  `koanf:"custom_types" validate:"dive,keys,dialect,endkeys,dive"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("dialect", validateDialect)
}

// validateDialect accepts the dialect names and aliases known to dialect.Parse.
func validateDialect(fl validator.FieldLevel) bool {
	_, err := dialect.Parse(fl.Field().String())
	return err == nil
}

// Load reads the configuration. An empty path selects the first of
// DefaultFiles present in the working directory; a missing default file is
// not an error. Only flags that were changed on the command line override
// the other sources.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	var ds []string
	for _, d := range dialect.Names() {
		ds = append(ds, string(d))
	}
	if err := k.Load(confmap.Provider(map[string]any{
		"dialects":    ds,
		"format":      DefaultFormat,
		"naming.case": string(gen.CaseSnake),
		"debounce":    DefaultDebounce.String(),
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(path)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: RELGEN_TABLE_PREFIX -> table_prefix. List keys take
	// comma separated values.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = configKey(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)))
		if key == "dialects" {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return configKey(strings.ReplaceAll(f.Name, "-", "_")), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the config file to read.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// splitList splits a comma separated value, dropping blank elements.
func splitList(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	return list
}

// configKey maps a flat snake_case name to its config key.
func configKey(s string) string {
	switch s {
	case "dialect":
		return "dialects"
	case "naming_case", "naming_plural":
		return "naming." + strings.TrimPrefix(s, "naming_")
	}
	return s
}

// Validate checks the configuration against its field rules. All failures
// are reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var merr *multierror.Error
	for _, e := range verrs {
		merr = multierror.Append(merr, fmt.Errorf("config: invalid %s: value %v fails %q", fieldName(e), e.Value(), e.Tag()))
	}
	return merr.ErrorOrNil()
}

// fieldName returns the namespaced field of e without the struct name.
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// Options converts the configuration to generator options. Per-dialect
// entries are applied in dialect name order.
func (c *Config) Options(log *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithDialects(c.Dialects...),
		gen.WithTablePrefix(c.TablePrefix),
		gen.WithNaming(gen.Naming{Case: gen.NameCase(c.Naming.Case), Plural: c.Naming.Plural}),
	}
	if log != nil {
		opts = append(opts, gen.WithLogger(log))
	}
	if c.Concurrency > 0 {
		opts = append(opts, gen.WithConcurrency(c.Concurrency))
	}
	for _, d := range sortedKeys(c.TypeMaps) {
		opts = append(opts, gen.WithTypeMap(d, c.TypeMaps[d]))
	}
	for _, d := range sortedKeys(c.Keywords) {
		opts = append(opts, gen.WithKeywords(d, c.Keywords[d]...))
	}
	for _, d := range sortedKeys(c.CustomTypes) {
		opts = append(opts, gen.WithCustomTypes(d, c.CustomTypes[d]...))
	}
	return opts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
