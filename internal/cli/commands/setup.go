package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/compiler/load"
	"github.com/syssam/relgen/internal/config"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	// Flags are the flags Cfg was loaded with. They are reused when the
	// configuration is reloaded.
	Flags *pflag.FlagSet

	Out, Err io.Writer
}

type contextKey struct{}

// WithCommandContext stores cc in ctx.
func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, contextKey{}, cc)
}

// NewCommandContext returns the CommandContext stored in the command
// context by the root command, bound to the command's output streams. A
// command run on its own gets the configuration found in the working
// directory and a logger that discards everything.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	var cc CommandContext
	if ctx := cmd.Context(); ctx != nil {
		if stored, ok := ctx.Value(contextKey{}).(*CommandContext); ok {
			cc = *stored
		}
	}
	if cc.Cfg == nil {
		cfg, err := config.Load("", nil)
		if err != nil {
			return nil, err
		}
		cc.Cfg = cfg
	}
	if cc.Logger == nil {
		cc.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cc.Out = cmd.OutOrStdout()
	cc.Err = cmd.ErrOrStderr()
	return &cc, nil
}

// Reload reads the configuration again from the file and flags it was
// first loaded from.
func (cc *CommandContext) Reload() error {
	cfg, err := config.Load(cc.Cfg.File, cc.Flags)
	if err != nil {
		return err
	}
	cc.Cfg = cfg
	return nil
}

// Generate loads the model at path and compiles it with the configured
// options followed by opts. Diagnostics are reported on the error stream
// whether or not generation succeeds.
func (cc *CommandContext) Generate(ctx context.Context, path string, opts ...gen.Option) (*gen.Result, error) {
	u, err := load.File(path)
	if err != nil {
		return nil, err
	}
	res, err := gen.Generate(ctx, u, append(cc.Cfg.Options(cc.Logger), opts...)...)
	cc.Report(res.Diagnostics)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Report writes diagnostics in compiler format.
func (cc *CommandContext) Report(diags []gen.Diagnostic) {
	for _, d := range diags {
		_, _ = fmt.Fprintln(cc.Err, d)
	}
}

// WriteOutputs writes the text of every output of res to the output
// stream, or to files named after the model under the configured output
// directory.
func (cc *CommandContext) WriteOutputs(ctx context.Context, path string, res *gen.Result, ext string) error {
	if cc.Cfg.Output == "" {
		for _, o := range res.Outputs {
			if _, err := cc.Out.Write(o.Text); err != nil {
				return err
			}
		}
		return nil
	}
	w := gen.NewWriter(cc.Cfg.Output).WithWorkers(cc.Cfg.Concurrency)
	if err := w.WriteAll(ctx, path, res, ext); err != nil {
		return err
	}
	m := w.Metrics()
	cc.Logger.Info("outputs written", "dir", cc.Cfg.Output, "files", m.FilesWritten, "bytes", m.TotalBytes)
	return nil
}
