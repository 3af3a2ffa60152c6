// Package model implements the message graph: Field, Link, Message,
// path enumeration, field sizing, and the derived diagnostics (definite
// predecessors, fixed/implicit size, prefixing).
package model

import (
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/rftypes"
)

// Field is a named, typed node of a Message's structure. INITIAL and
// FINAL are the two sentinel fields every Message carries implicitly:
// the structure graph has exactly one INITIAL node with no incoming
// links and exactly one FINAL node with no outgoing links.
type Field struct {
	Name ident.ID
	Type *rftypes.Type // nil for INITIAL and FINAL
}

var (
	// INITIAL is the sentinel source of every Message's structure graph.
	INITIAL = &Field{Name: ident.New("INITIAL")}
	// FINAL is the sentinel sink of every Message's structure graph.
	FINAL = &Field{Name: ident.New("FINAL")}
)

// IsSentinel reports whether f is INITIAL or FINAL.
func (f *Field) IsSentinel() bool { return f == INITIAL || f == FINAL }

func (f *Field) String() string { return f.Name.String() }
