package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <model>",
		Short: "Regenerate the DDL of a model whenever it changes",
		Long: `Write the DDL of the model like the ddl command, then keep watching the
model and the config file. Changes are debounced (--debounce); a changed
config file is reloaded before the next run. Failed runs are reported and
watching continues. Stop with Ctrl+C.`,
		Example: `  relgen watch -o schema/ model.yaml
  relgen watch --debounce 1s model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return runWatch(cmd, cc, args[0])
		},
	}
}

func runWatch(cmd *cobra.Command, cc *CommandContext, path string) error {
	ctx := cmd.Context()
	model, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(model); err != nil {
		return err
	}
	targets := map[string]bool{model: true}
	var config string
	if cc.Cfg.File != "" {
		if config, err = filepath.Abs(cc.Cfg.File); err != nil {
			return err
		}
		targets[config] = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Watch parent directories; editors may replace files on save.
	for target := range targets {
		if err := watcher.Add(filepath.Dir(target)); err != nil {
			return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
		}
	}

	build := func() {
		if err := runDDL(cmd, cc, path); err != nil {
			_, _ = fmt.Fprintf(cc.Err, "relgen: %v\n", err)
			return
		}
		cc.Logger.Info("generated", "model", path)
	}
	build()
	_, _ = fmt.Fprintf(cc.Err, "Watching %s for changes. Press Ctrl+C to stop.\n", path)

	var (
		mu     sync.Mutex
		timer  *time.Timer
		reload bool
	)
	for {
		select {
		case <-ctx.Done():
			// Wait for a running build to finish.
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !targets[filepath.Clean(event.Name)] {
				continue
			}
			mu.Lock()
			if filepath.Clean(event.Name) == config {
				reload = true
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(cc.Cfg.Debounce, func() {
				mu.Lock()
				defer mu.Unlock()
				if ctx.Err() != nil {
					return
				}
				cc.Logger.Debug("change detected", "file", filepath.Base(event.Name))
				if reload {
					reload = false
					if err := cc.Reload(); err != nil {
						_, _ = fmt.Fprintf(cc.Err, "relgen: %v\n", err)
						return
					}
				}
				build()
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watcher error", "error", err)
		}
	}
}
