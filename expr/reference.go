package expr

import (
	"fmt"

	"github.com/componolit/rflx-verify/ident"
)

// Variable is a free or field-referencing name, e.g. a field name, a
// parameter, or the special "Message" pseudo-variable used as a prefix
// for whole-message attributes.
type Variable struct {
	base
	Name ident.ID
}

func NewVariable(name ident.ID) *Variable { return &Variable{Name: name} }

func (v *Variable) Children() []Expr { return nil }

func (v *Variable) WithChildren(children ...Expr) (Expr, error) {
	if len(children) != 0 {
		return nil, &wrongChildCount{"Variable", 0, len(children)}
	}
	return v, nil
}

func (v *Variable) String() string { return v.Name.String() }

// attrRef is embedded by the four attribute-reference variants: Size,
// First, Last, ValidChecksum. Prefix is usually a *Variable naming a
// field or the Message pseudo-variable, but is kept as a general Expr so
// Substitute can rewrite it uniformly (merge, for its part, replaces a
// whole First(Message) node rather than only its prefix).
type attrRef struct {
	base
	Prefix Expr
}

func (a *attrRef) Children() []Expr { return []Expr{a.Prefix} }

// Size is the Size(prefix) attribute.
type Size struct{ attrRef }

func NewSize(prefix Expr) *Size                     { return &Size{attrRef{Prefix: prefix}} }
func (s *Size) WithChildren(c ...Expr) (Expr, error) { return withOneChild("Size", c, func(e Expr) Expr { return &Size{attrRef{Prefix: e}} }) }
func (s *Size) String() string                       { return fmt.Sprintf("%s'Size", s.Prefix) }

// First is the First(prefix) attribute.
type First struct{ attrRef }

func NewFirst(prefix Expr) *First                    { return &First{attrRef{Prefix: prefix}} }
func (f *First) WithChildren(c ...Expr) (Expr, error) { return withOneChild("First", c, func(e Expr) Expr { return &First{attrRef{Prefix: e}} }) }
func (f *First) String() string                       { return fmt.Sprintf("%s'First", f.Prefix) }

// Last is the Last(prefix) attribute.
type Last struct{ attrRef }

func NewLast(prefix Expr) *Last                     { return &Last{attrRef{Prefix: prefix}} }
func (l *Last) WithChildren(c ...Expr) (Expr, error) { return withOneChild("Last", c, func(e Expr) Expr { return &Last{attrRef{Prefix: e}} }) }
func (l *Last) String() string                       { return fmt.Sprintf("%s'Last", l.Prefix) }

// ValidChecksum is the Valid_Checksum(prefix) predicate.
type ValidChecksum struct{ attrRef }

func NewValidChecksum(prefix Expr) *ValidChecksum { return &ValidChecksum{attrRef{Prefix: prefix}} }
func (v *ValidChecksum) WithChildren(c ...Expr) (Expr, error) {
	return withOneChild("ValidChecksum", c, func(e Expr) Expr { return &ValidChecksum{attrRef{Prefix: e}} })
}
func (v *ValidChecksum) String() string { return fmt.Sprintf("%s'Valid_Checksum", v.Prefix) }

func withOneChild(name string, children []Expr, build func(Expr) Expr) (Expr, error) {
	if len(children) != 1 {
		return nil, &wrongChildCount{name, 1, len(children)}
	}
	return build(children[0]), nil
}
