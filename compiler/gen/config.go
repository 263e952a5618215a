package gen

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sqltype"
)

// NameCase selects how class names are turned into table names.
type NameCase string

// Name cases.
const (
	CaseSnake    NameCase = "snake"
	CaseLower    NameCase = "lower"
	CaseUpper    NameCase = "upper"
	CasePreserve NameCase = "preserve"
)

// ParseNameCase returns the case spelled by s. The empty string selects
// CaseSnake.
func ParseNameCase(s string) (NameCase, error) {
	switch c := NameCase(strings.ToLower(s)); c {
	case "":
		return CaseSnake, nil
	case CaseSnake, CaseLower, CaseUpper, CasePreserve:
		return c, nil
	}
	return "", fmt.Errorf("unknown name case %q", s)
}

// Naming holds the rules applied to derived table names.
type Naming struct {
	Case   NameCase
	Plural bool
}

// Config holds the code generation configuration.
type Config struct {
	// Dialects lists the target dialects in output order.
	Dialects []dialect.Name
	// TablePrefix is prepended once to every table name.
	TablePrefix string
	Naming      Naming
	// TypeMap overrides descriptor type maps per dialect.
	TypeMap map[dialect.Name]dialect.TypeMap
	// Keywords extends the reserved words of a dialect.
	Keywords map[dialect.Name][]string
	// CustomTypes are the override rules of a dialect, in order.
	CustomTypes map[dialect.Name][]sqltype.Rule
	Logger      *slog.Logger
	// Concurrency bounds the number of dialect passes run at once.
	Concurrency int
	// Emitter writes the output of each pass. It may be nil.
	Emitter Emitter
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Dialects:    dialect.Names(),
		Naming:      Naming{Case: CaseSnake},
		TypeMap:     make(map[dialect.Name]dialect.TypeMap),
		Keywords:    make(map[dialect.Name][]string),
		CustomTypes: make(map[dialect.Name][]sqltype.Rule),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
