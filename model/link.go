package model

import (
	"hash/fnv"

	"github.com/componolit/rflx-verify/expr"
)

// Link is a directed edge of a Message's structure graph: Source reads
// until Target begins, guarded by Condition, with explicit or UNDEFINED
// Size/First expressions.
type Link struct {
	Source, Target *Field
	Condition      expr.Expr // defaults to True
	Size           expr.Expr // defaults to UNDEFINED
	First          expr.Expr // defaults to UNDEFINED
}

// NewLink builds a Link with True condition and UNDEFINED size/first,
// the defaults assigned when a link omits an aspect.
func NewLink(source, target *Field) *Link {
	return &Link{Source: source, Target: target, Condition: expr.NewTrue(), Size: expr.NewUndefined(), First: expr.NewUndefined()}
}

// HasImplicitSize reports whether the link leaves Size to be derived
// from the target field's type rather than stating it explicitly.
func (l *Link) HasImplicitSize() bool { return expr.IsUndefined(l.Size) }

// HasImplicitFirst reports whether the link leaves First to be derived
// from the predecessor's layout.
func (l *Link) HasImplicitFirst() bool { return expr.IsUndefined(l.First) }

// Hash returns a structural FNV-1a hash of the link over its source and
// target names, its condition, and its size/first expressions' rendered
// form, so two structurally identical links compare equal wherever a
// link is used as a memo key.
func (l *Link) Hash() uint64 {
	h := fnv.New64a()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(l.Source.Name.String())
	write(l.Target.Name.String())
	write(l.Condition.String())
	write(l.Size.String())
	write(l.First.String())
	return h.Sum64()
}

// Equal reports structural equality, consistent with Hash.
func (l *Link) Equal(other *Link) bool {
	return l.Hash() == other.Hash()
}
