package model

import (
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/rferrors"
	"github.com/componolit/rflx-verify/rftypes"
)

// Derive builds a DerivedMessage: a copy of base under a new identifier,
// inheriting its structure, types, and checksums verbatim. Deriving from
// an already-derived message is rejected: derivation does not chain, so
// base.BaseID must be the zero ident.ID.
func Derive(base *Message, id ident.ID) (*Message, error) {
	if base.IsDerived {
		return nil, rferrors.ErrDerivedFromDerived.New(id.String(), base.ID.String())
	}
	derived := New(id, base.Loc, append([]*Link(nil), base.Structure...), copyTypes(base.Types))
	derived.ByteOrder = base.ByteOrder
	derived.IsDerived = true
	derived.BaseID = base.ID
	for name, covered := range base.Checksums {
		derived.Checksums[name] = append([]expr.Expr(nil), covered...)
	}
	return derived, nil
}

func copyTypes(types map[string]*rftypes.Type) map[string]*rftypes.Type {
	out := make(map[string]*rftypes.Type, len(types))
	for k, v := range types {
		out[k] = v
	}
	return out
}
