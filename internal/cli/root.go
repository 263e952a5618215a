// Package cli provides the command-line interface for relgen.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/relgen/internal/cli/commands"
	"github.com/syssam/relgen/internal/config"
)

// Version is the relgen version (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "relgen",
		Short: "relgen - object-relational schema compiler",
		Long: `relgen reads an annotated object model and derives, for each target
database dialect, its relational schema: tables, columns with their SQL
types and conversions, keys and indexes.

Configuration is read from relgen.yaml, RELGEN_* environment variables
and flags, in increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			flags := cmd.Root().PersistentFlags()
			cfg, err := config.Load(cfgFile, flags)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if cfg.File != "" {
				logger.Debug("using config file", "file", cfg.File)
			}

			cmd.SetContext(commands.WithCommandContext(cmd.Context(), &commands.CommandContext{
				Cfg:    cfg,
				Logger: logger,
				Flags:  flags,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./relgen.yaml)")
	rootCmd.PersistentFlags().StringSlice("dialect", nil, "Target dialects (mssql, mysql, pgsql, sqlite)")
	rootCmd.PersistentFlags().String("table-prefix", "", "Prefix added to every table name")
	rootCmd.PersistentFlags().String("naming-case", "", "Table name case (snake|lower|upper|preserve)")
	rootCmd.PersistentFlags().Bool("naming-plural", false, "Pluralize table names")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Dialect passes run in parallel (default: GOMAXPROCS)")
	rootCmd.PersistentFlags().Duration("debounce", 0, "Delay before watch regenerates after a change")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory (default: stdout)")
	rootCmd.PersistentFlags().String("package", "", "Go package of snapshots (default: dialect name)")
	rootCmd.PersistentFlags().String("format", "", "Schema output format (table|json|msgpack)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "msgpack"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mssql", "mysql", "pgsql", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewSchemaCommand())
	rootCmd.AddCommand(commands.NewDDLCommand())
	rootCmd.AddCommand(commands.NewSnapshotCommand())
	rootCmd.AddCommand(commands.NewParseTypeCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
