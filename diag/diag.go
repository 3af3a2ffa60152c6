// Package diag implements the diagnostic stream: a (message, subsystem,
// severity, location) tuple stream, an append-only per-message buffer
// sealed after verification, and a Propagate checkpoint that raises a
// composite error.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/componolit/rflx-verify/ident"
)

// Severity is one of ERROR, WARNING, INFO.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String renders the severity the way log output expects it.
func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one entry in the stream. INFO entries attach to a
// preceding ERROR to describe context, e.g. "on path A -> B -> C";
// Related holds the index of that preceding entry within the same
// Buffer, or -1 if none.
type Diagnostic struct {
	Message   string
	Subsystem string
	Severity  Severity
	Location  *ident.Location
	Err       error
	Related   int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: [%s] %s (%s)", d.Severity, d.Subsystem, d.Message, d.Location)
}

// Buffer is the append-only diagnostic log owned by a message or type
// during its validation window — the only mutable field post
// construction, sealed once that window closes. It is not safe for
// concurrent writers; the proof driver folds worker results back onto
// the buffer from the single coordinator goroutine.
type Buffer struct {
	entries []Diagnostic
	sealed  bool
}

// Add appends a diagnostic. It panics if the buffer has been sealed by a
// prior Propagate call, since propagation marks the end of a validation
// window.
func (b *Buffer) Add(d Diagnostic) {
	if b.sealed {
		panic("diag: Add called on a sealed Buffer")
	}
	if d.Related == 0 {
		d.Related = -1
	}
	b.entries = append(b.entries, d)
}

// Errorf is a convenience wrapper constructing an ERROR-severity
// diagnostic from a *errors.Kind-produced error.
func (b *Buffer) Errorf(subsystem string, loc *ident.Location, err error) {
	b.Add(Diagnostic{Message: err.Error(), Subsystem: subsystem, Severity: Error, Location: loc, Err: err})
}

// Info attaches an INFO entry to the diagnostic at index relatedTo.
func (b *Buffer) Info(subsystem string, loc *ident.Location, message string, relatedTo int) {
	b.Add(Diagnostic{Message: message, Subsystem: subsystem, Severity: Info, Location: loc})
	b.entries[len(b.entries)-1].Related = relatedTo
}

// Entries returns a copy of the accumulated diagnostics.
func (b *Buffer) Entries() []Diagnostic {
	cp := make([]Diagnostic, len(b.entries))
	copy(cp, b.entries)
	return cp
}

// HasErrors reports whether any ERROR-severity diagnostic was recorded.
func (b *Buffer) HasErrors() bool {
	for _, e := range b.entries {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

// Merge appends another buffer's entries after b's own, preserving their
// order.
func (b *Buffer) Merge(other *Buffer) {
	if other == nil {
		return
	}
	b.entries = append(b.entries, other.entries...)
}

// Propagate raises a composite error carrying every accumulated ERROR
// entry, and seals the buffer against further writes. It returns nil if
// no ERROR entry was recorded.
func (b *Buffer) Propagate() error {
	b.sealed = true
	var result *multierror.Error
	for _, e := range b.entries {
		if e.Severity != Error {
			continue
		}
		if e.Err != nil {
			result = multierror.Append(result, e.Err)
		} else {
			result = multierror.Append(result, fmt.Errorf("%s", e.Message))
		}
	}
	return result.ErrorOrNil()
}
