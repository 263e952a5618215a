package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("dialect", nil, "")
	fs.String("table-prefix", "", "")
	fs.String("naming-case", "", "")
	fs.Int("concurrency", 0, "")
	fs.Duration("debounce", 0, "")
	fs.Bool("verbose", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mssql", "mysql", "postgres", "sqlite"}, cfg.Dialects)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, "snake", cfg.Naming.Case)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
dialects: [mssql, pgsql]
table_prefix: app_
naming:
  case: lower
  plural: true
debounce: 1s
type_maps:
  mssql:
    blob_t:
      type: VARBINARY(MAX)
keywords:
  pgsql: [USER_DATA]
custom_types:
  mssql:
    - type: POINT
      as: VARBINARY(64)
      to: CONVERT(VARBINARY(64), (?))
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, []string{"mssql", "pgsql"}, cfg.Dialects)
	assert.Equal(t, "app_", cfg.TablePrefix)
	assert.Equal(t, Naming{Case: "lower", Plural: true}, cfg.Naming)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, dialect.DBType{Type: "VARBINARY(MAX)"}, cfg.TypeMaps["mssql"]["blob_t"])
	assert.Equal(t, []string{"USER_DATA"}, cfg.Keywords["pgsql"])
	assert.Equal(t, []sqltype.Rule{{Type: "POINT", As: "VARBINARY(64)", To: "CONVERT(VARBINARY(64), (?))"}}, cfg.CustomTypes["mssql"])

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), nil)
		assert.ErrorContains(t, err, "error reading config file")
	})
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, "table_prefix: file_\nconcurrency: 2\nnaming:\n  case: upper\n")

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("RELGEN_TABLE_PREFIX", "env_")
		t.Setenv("RELGEN_NAMING_CASE", "preserve")
		t.Setenv("RELGEN_DIALECTS", "sqlite,mysql")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "env_", cfg.TablePrefix)
		assert.Equal(t, "preserve", cfg.Naming.Case)
		assert.Equal(t, []string{"sqlite", "mysql"}, cfg.Dialects)
		assert.Equal(t, 2, cfg.Concurrency)
	})

	t.Run("env dialect list", func(t *testing.T) {
		t.Setenv("RELGEN_DIALECTS", " pgsql, ,mssql ")
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"pgsql", "mssql"}, cfg.Dialects)

		t.Setenv("RELGEN_DIALECTS", "sqlite,oracle")
		_, err = Load(path, nil)
		assert.ErrorContains(t, err, "Dialects[1]")
	})

	t.Run("changed flags over env", func(t *testing.T) {
		t.Setenv("RELGEN_TABLE_PREFIX", "env_")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--table-prefix", "flag_", "--dialect", "mssql", "--debounce", "50ms", "--verbose"}))
		cfg, err := Load(path, fs)
		require.NoError(t, err)
		assert.Equal(t, "flag_", cfg.TablePrefix)
		assert.Equal(t, []string{"mssql"}, cfg.Dialects)
		assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 2, cfg.Concurrency, "unchanged flags do not override")
		assert.Equal(t, "upper", cfg.Naming.Case)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Dialects: []string{"mssql"}, Format: "table"}
	}
	tests := []struct {
		name   string
		modify func(*Config)
		errs   []string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:   "dialect alias",
			modify: func(c *Config) { c.Dialects = []string{"pgsql", "sqlserver"} },
		},
		{
			name:   "no dialects",
			modify: func(c *Config) { c.Dialects = nil },
			errs:   []string{`invalid Dialects: value [] fails "required"`},
		},
		{
			name:   "unknown dialect",
			modify: func(c *Config) { c.Dialects = []string{"mssql", "oracle"} },
			errs:   []string{`invalid Dialects[1]: value oracle fails "dialect"`},
		},
		{
			name: "several failures",
			modify: func(c *Config) {
				c.Format = "xml"
				c.Naming.Case = "camel"
				c.Concurrency = -1
			},
			errs: []string{
				`invalid Format: value xml fails "oneof"`,
				`invalid Naming.Case: value camel fails "oneof"`,
				`invalid Concurrency: value -1 fails "gte"`,
			},
		},
		{
			name:   "type map dialect",
			modify: func(c *Config) { c.TypeMaps = map[string]dialect.TypeMap{"db2": {"x": {Type: "INT"}}} },
			errs:   []string{`fails "dialect"`},
		},
		{
			name:   "incomplete rule",
			modify: func(c *Config) { c.CustomTypes = map[string][]sqltype.Rule{"mssql": {{Type: "POINT"}}} },
			errs:   []string{`invalid CustomTypes[mssql][0].As: value  fails "required"`},
		},
		{
			name:   "package",
			modify: func(c *Config) { c.Package = "my/pkg" },
			errs:   []string{`invalid Package: value my/pkg fails "excludesall"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			err := c.Validate()
			if len(tt.errs) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, e := range tt.errs {
				assert.Contains(t, err.Error(), e)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	c := &Config{
		Dialects:    []string{"pgsql", "mssql"},
		TablePrefix: "app_",
		Naming:      Naming{Case: "upper"},
		Concurrency: 3,
		TypeMaps:    map[string]dialect.TypeMap{"mssql": {"blob_t": {Type: "IMAGE"}}},
		Keywords:    map[string][]string{"pgsql": {"ACCOUNT"}},
		CustomTypes: map[string][]sqltype.Rule{"mssql": {{Type: "POINT", As: "VARBINARY(64)"}}},
	}
	cfg, err := gen.NewConfig(c.Options(nil)...)
	require.NoError(t, err)
	assert.Equal(t, []dialect.Name{dialect.Postgres, dialect.MSSQL}, cfg.Dialects)
	assert.Equal(t, "app_", cfg.TablePrefix)
	assert.Equal(t, gen.CaseUpper, cfg.Naming.Case)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, "IMAGE", cfg.TypeMap[dialect.MSSQL]["blob_t"].Type)
	assert.Equal(t, []string{"ACCOUNT"}, cfg.Keywords[dialect.Postgres])
	assert.Len(t, cfg.CustomTypes[dialect.MSSQL], 1)

	t.Run("invalid values surface as config errors", func(t *testing.T) {
		c := &Config{Dialects: []string{"oracle"}}
		_, err := gen.NewConfig(c.Options(nil)...)
		assert.True(t, gen.IsConfigError(err))
	})
}
