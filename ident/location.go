package ident

import "fmt"

// Position is a 1-based line/column pair within a source file.
type Position struct {
	Line   int
	Column int
}

// String renders "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is an optional source file plus start and end positions.
// Present on every user-derived entity; nil on synthesized ones (e.g. the
// INITIAL/FINAL field sentinels, or expressions inserted by normalization).
type Location struct {
	File  string
	Start Position
	End   Position
}

// String renders "file:startLine:startColumn" for diagnostics, matching
// the compact form most Go tools use for a single anchor point.
func (l *Location) String() string {
	if l == nil {
		return "<unknown location>"
	}
	if l.File == "" {
		return l.Start.String()
	}
	return fmt.Sprintf("%s:%s", l.File, l.Start)
}
