package model

import (
	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/rferrors"
	"github.com/componolit/rflx-verify/rftypes"
)

// Normalize rewrites m in place — qualifying bare enumeration literals
// that appear in link conditions/sizes/firsts, and flagging fields whose
// implicit size cannot be resolved unambiguously — and returns any
// diagnostics raised along the way. It must run before verifier.Verify,
// whose typing phase assumes a normalized message. It does not insert
// implicit size expressions: a link whose Size is left implicit keeps
// its UNDEFINED Size.
func Normalize(m *Message) *diag.Buffer {
	buf := &diag.Buffer{}
	qualifyEnumLiterals(m, buf)
	flagAmbiguousImplicitSizes(m, buf)
	return buf
}

// qualifyEnumLiterals rewrites every bare Variable whose name matches
// exactly one enumeration literal across the message's field types into
// TypeID::Literal form, so later phases can resolve it without
// re-scanning every enumeration. A literal name shared by two or more
// enumerations used in the same message is a Naming error, since the
// reference is inherently ambiguous without qualification already
// present in the source.
func qualifyEnumLiterals(m *Message, buf *diag.Buffer) {
	literalOwners := map[string][]ident.ID{}
	for _, t := range m.Types {
		if t.Kind != rftypes.EnumerationKindTag {
			continue
		}
		for lit := range t.Literals {
			literalOwners[lit] = append(literalOwners[lit], t.ID)
		}
	}
	rewrite := func(e expr.Expr) expr.Expr {
		if e == nil {
			return nil
		}
		return expr.Substitute(e, func(n expr.Expr) (expr.Expr, bool) {
			v, ok := n.(*expr.Variable)
			if !ok {
				return nil, false
			}
			owners := literalOwners[v.Name.String()]
			switch len(owners) {
			case 0:
				return nil, false
			case 1:
				qualified := ident.New(append(owners[0].Parts(), v.Name.String())...)
				return expr.NewVariable(qualified), true
			default:
				buf.Add(diag.Diagnostic{
					Message:   v.Name.String() + " is ambiguous among multiple enumerations",
					Subsystem: "model.normalize",
					Severity:  diag.Error,
					Err:       rferrors.ErrNameConflict.New(v.Name.String(), owners[0].String()),
				})
				return nil, false
			}
		})
	}
	for _, l := range m.Structure {
		l.Condition = rewrite(l.Condition)
		l.Size = rewrite(l.Size)
		l.First = rewrite(l.First)
	}
}

// flagAmbiguousImplicitSizes surfaces a diagnostic for every field that
// both (a) leaves its Size implicit and (b) is not provably the last
// field read on every path that reaches it, rather than guessing which
// remaining-bits interpretation the author intended.
func flagAmbiguousImplicitSizes(m *Message, buf *diag.Buffer) {
	for _, l := range m.Structure {
		if !l.HasImplicitSize() || l.Target == FINAL {
			continue
		}
		if l.Target.Type != nil {
			if _, fixed := l.Target.Type.FixedSize(); fixed {
				continue
			}
		}
		if isAlwaysLastBeforeFinal(m, l.Target) {
			continue
		}
		buf.Add(diag.Diagnostic{
			Message:   "implicit size of " + l.Target.Name.String() + " cannot be resolved unambiguously",
			Subsystem: "model.normalize",
			Severity:  diag.Error,
			Err:       rferrors.ErrAmbiguousImplicitSize.New(l.Target.Name.String()),
		})
	}
}

func isAlwaysLastBeforeFinal(m *Message, f *Field) bool {
	for _, out := range m.Outgoing(f) {
		if out.Target != FINAL {
			return false
		}
	}
	return len(m.Outgoing(f)) > 0
}
