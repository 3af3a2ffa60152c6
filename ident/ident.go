// Package ident implements qualified names and source locations, the
// leaf data types every other package in this module builds on.
package ident

import "strings"

// ID is a nonempty, ordered sequence of name parts. Top-level declarations
// (messages, types) carry exactly two parts: a package name and a local
// name. Equality and ordering are part-wise.
type ID struct {
	parts []string
}

// New builds an ID from one or more name parts. It panics on an empty part
// list; callers at the model boundary are expected to have validated this
// already (the core never ingests raw source text).
func New(parts ...string) ID {
	if len(parts) == 0 {
		panic("ident: New called with no parts")
	}
	cp := make([]string, len(parts))
	copy(cp, parts)
	return ID{parts: cp}
}

// Parts returns the name parts in declaration order.
func (id ID) Parts() []string {
	cp := make([]string, len(id.parts))
	copy(cp, id.parts)
	return cp
}

// Package returns the leading parts (all but the last), or the empty ID if
// id has a single part.
func (id ID) Package() ID {
	if len(id.parts) <= 1 {
		return ID{}
	}
	return ID{parts: id.parts[:len(id.parts)-1]}
}

// Name returns the final, local part of the identifier.
func (id ID) Name() string {
	if len(id.parts) == 0 {
		return ""
	}
	return id.parts[len(id.parts)-1]
}

// IsZero reports whether id was never assigned a part.
func (id ID) IsZero() bool { return len(id.parts) == 0 }

// String renders the identifier with "::" separators, matching the
// qualified-name convention used throughout message definitions.
func (id ID) String() string {
	return strings.Join(id.parts, "::")
}

// Equal reports part-wise equality.
func (id ID) Equal(other ID) bool {
	if len(id.parts) != len(other.parts) {
		return false
	}
	for i, p := range id.parts {
		if p != other.parts[i] {
			return false
		}
	}
	return true
}

// Less orders identifiers alphabetically, part by part, for diagnostic
// stability.
func (id ID) Less(other ID) bool {
	n := len(id.parts)
	if len(other.parts) < n {
		n = len(other.parts)
	}
	for i := 0; i < n; i++ {
		if id.parts[i] != other.parts[i] {
			return id.parts[i] < other.parts[i]
		}
	}
	return len(id.parts) < len(other.parts)
}

// WithSuffix returns a new ID whose local name has suffix appended, used by
// the message merger to prefix inlined fields.
func (id ID) WithSuffix(suffix string) ID {
	parts := id.Parts()
	if len(parts) == 0 {
		return New(suffix)
	}
	parts[len(parts)-1] = parts[len(parts)-1] + suffix
	return ID{parts: parts}
}

// WithPrefix returns a new ID whose local name is prefixed, used by the
// message merger's field-renaming step.
func (id ID) WithPrefix(prefix string) ID {
	parts := id.Parts()
	if len(parts) == 0 {
		return New(prefix)
	}
	parts[len(parts)-1] = prefix + parts[len(parts)-1]
	return ID{parts: parts}
}
