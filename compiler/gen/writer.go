package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/relgen/dialect"
)

// Writer writes the outputs of Generate to a directory, one file per
// dialect, with parallel execution.
type Writer struct {
	dir     string
	workers int

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks the files written.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a new Writer for directory dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// FileName returns the path, relative to the output directory, of the
// file holding the output of dialect d for unit. Go sources go to a
// directory per dialect so that each snapshot package compiles alone.
func FileName(unit string, d dialect.Name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	name := unitName(unit)
	if ext == "go" {
		return filepath.Join(string(d), name+".go")
	}
	return name + "_" + string(d) + "." + ext
}

// WriteAll writes the text of every output of res. Go sources are passed
// through goimports before they are written.
func (w *Writer) WriteAll(ctx context.Context, unit string, res *Result, ext string) error {
	if w.dir == "" {
		return NewConfigError("Output", nil, "missing output directory")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, o := range res.Outputs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.writeFile(FileName(unit, o.Dialect, ext), o.Text)
		})
	}
	return eg.Wait()
}

// writeFile writes a single file.
func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.dir, name)
	if filepath.Ext(name) == ".go" {
		formatted, err := imports.Process(path, data, nil)
		if err != nil {
			// Keep the unformatted source around for inspection.
			debug := path + ".error"
			_ = os.MkdirAll(filepath.Dir(debug), 0o755)
			_ = os.WriteFile(debug, data, 0o644)
			return fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debug)
		}
		data = formatted
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(data))
	w.mu.Unlock()
	return nil
}
