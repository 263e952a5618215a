package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/compiler/semantics"
	"github.com/syssam/relgen/dialect"
	"github.com/syssam/relgen/dialect/sql/schema"
)

// Emitter writes the output of one dialect pass to the context output.
type Emitter func(c *Context, s *schema.Schema) error

// EmitDDL is an Emitter writing the CREATE statements of the schema.
func EmitDDL(c *Context, s *schema.Schema) error {
	return c.WriteDDL(c.Out(), s)
}

// EmitSnapshot returns an Emitter writing the Go snapshot of the schema
// in package pkg. An empty pkg names the package after the dialect.
func EmitSnapshot(pkg string) Emitter {
	return func(c *Context, s *schema.Schema) error {
		if pkg == "" {
			return c.WriteSnapshot(c.Out(), s, string(c.Dialect()))
		}
		return c.WriteSnapshot(c.Out(), s, pkg)
	}
}

// EmitEncoded returns an Emitter writing the schema in format f.
func EmitEncoded(f schema.Format) Emitter {
	return func(c *Context, s *schema.Schema) error {
		return schema.Encode(c.Out(), s, f)
	}
}

// Output is the result of one dialect pass.
type Output struct {
	Dialect dialect.Name
	Schema  *schema.Schema
	// Text holds what the Emitter wrote.
	Text []byte
}

// Result is the output of Generate.
type Result struct {
	// Outputs holds one entry per dialect in configuration order.
	Outputs []*Output
	// Diagnostics holds the validator and type processor messages followed
	// by those of each pass in dialect order.
	Diagnostics []Diagnostic
}

// Output returns the output of dialect d.
func (r *Result) Output(d dialect.Name) (*Output, bool) {
	for _, o := range r.Outputs {
		if o.Dialect == d {
			return o, true
		}
	}
	return nil, false
}

// Generate compiles unit u for every configured dialect. The validator
// gates everything else: when it reports errors, no pass runs and a
// ValidationError is returned. Dialect passes are independent and run
// concurrently; an error diagnostic in any of them fails the whole unit
// with a GenerationError and no outputs.
//
// The returned Result is never nil and always carries the diagnostics.
func Generate(ctx context.Context, u *semantics.Unit, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return &Result{}, err
	}
	log := cfg.Logger.With("unit", u.File)
	var (
		diags = &Diagnostics{}
		attrs = semantics.NewAttrs()
	)
	if !Validate(u, attrs, diags) {
		log.Debug("validation failed", "errors", diags.Errors())
		return &Result{Diagnostics: diags.List()}, NewValidationError(u.File, diags.Errors(), relgen.ErrFailed)
	}
	if !Process(u, attrs, diags) {
		return &Result{Diagnostics: diags.List()}, NewGenerationError(u.File, "", fmt.Sprintf("%d error(s)", diags.Errors()), relgen.ErrFailed)
	}

	var (
		n       = len(cfg.Dialects)
		outputs = make([]*Output, n)
		pdiags  = make([]*Diagnostics, n)
		perrs   = make([]error, n)
	)
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(cfg.Concurrency)
	for i, d := range cfg.Dialects {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				perrs[i] = err
				return nil
			}
			outputs[i], pdiags[i], perrs[i] = runPass(NewPass(u, attrs, d), cfg)
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return &Result{Diagnostics: diags.List()}, err
	}

	var merr *multierror.Error
	for i, d := range cfg.Dialects {
		diags.Merge(pdiags[i])
		if err := perrs[i]; err != nil && !errors.Is(err, relgen.ErrFailed) {
			merr = multierror.Append(merr, fmt.Errorf("dialect %s: %w", d, err))
		}
	}
	res := &Result{Diagnostics: diags.List()}
	if n := diags.Errors(); n > 0 {
		log.Debug("generation failed", "errors", n)
		return res, NewGenerationError(u.File, "", fmt.Sprintf("%d error(s)", n), relgen.ErrFailed)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return res, err
	}
	res.Outputs = outputs
	return res, nil
}

// runPass derives the schema of one dialect and runs the emitter on it.
func runPass(p *Pass, cfg *Config) (*Output, *Diagnostics, error) {
	var buf bytes.Buffer
	c, err := NewContext(p, cfg, &buf)
	if err != nil {
		return nil, nil, err
	}
	defer c.Close()
	c.log.Debug("pass started")
	s, err := c.Derive()
	if err != nil {
		return nil, c.Diagnostics(), err
	}
	if cfg.Emitter != nil {
		if err := cfg.Emitter(c, s); err != nil {
			return nil, c.Diagnostics(), err
		}
	}
	c.log.Debug("pass finished", "tables", len(s.Tables), "bytes", buf.Len())
	return &Output{Dialect: p.Dialect, Schema: s, Text: buf.Bytes()}, c.Diagnostics(), nil
}
