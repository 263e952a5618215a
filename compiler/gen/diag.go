package gen

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/syssam/relgen/compiler/semantics"
)

// Severity is the level of a diagnostic.
type Severity uint8

// Severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Note is an info line attached to a diagnostic.
type Note struct {
	Pos     semantics.Position `json:"pos"`
	Message string             `json:"message"`
}

// Diagnostic is one compiler message.
type Diagnostic struct {
	Pos      semantics.Position `json:"pos"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
	Notes    []Note             `json:"notes,omitempty"`
}

// String formats the diagnostic as <file>:<line>:<column>: error: <message>,
// followed by one info line per note.
func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %s", d.Pos, d.Severity, d.Message)
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "\n%s: info: %s", n.Pos, n.Message)
	}
	return b.String()
}

// Diagnostics accumulates the messages of one unit. It is safe for
// concurrent use.
type Diagnostics struct {
	mu   sync.Mutex
	list []Diagnostic
}

// Add records d.
func (ds *Diagnostics) Add(d Diagnostic) {
	ds.mu.Lock()
	ds.list = append(ds.list, d)
	ds.mu.Unlock()
}

// Errorf records an error at pos.
func (ds *Diagnostics) Errorf(pos semantics.Position, format string, args ...any) {
	ds.Add(Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// ErrorWithNote records an error at pos followed by an info line.
func (ds *Diagnostics) ErrorWithNote(pos semantics.Position, msg string, note Note) {
	ds.Add(Diagnostic{Pos: pos, Message: msg, Notes: []Note{note}})
}

// Warnf records a warning at pos.
func (ds *Diagnostics) Warnf(pos semantics.Position, format string, args ...any) {
	ds.Add(Diagnostic{Pos: pos, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Merge appends the diagnostics of o.
func (ds *Diagnostics) Merge(o *Diagnostics) {
	if o == nil || o == ds {
		return
	}
	l := o.List()
	ds.mu.Lock()
	ds.list = append(ds.list, l...)
	ds.mu.Unlock()
}

// List returns a copy of the recorded diagnostics in order.
func (ds *Diagnostics) List() []Diagnostic {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return slices.Clone(ds.list)
}

// Len returns the number of recorded diagnostics.
func (ds *Diagnostics) Len() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return len(ds.list)
}

// Errors returns the number of error diagnostics.
func (ds *Diagnostics) Errors() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	n := 0
	for _, d := range ds.list {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// HasErrors reports if any error was recorded.
func (ds *Diagnostics) HasErrors() bool { return ds.Errors() > 0 }

// WriteTo writes every diagnostic on its own line.
func (ds *Diagnostics) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, d := range ds.List() {
		n, err := io.WriteString(w, d.String()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
