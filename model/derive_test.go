package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
)

func TestDeriveCopiesStructureTypesAndChecksums(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	base := model.New(ident.New("Base"), nil, []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, model.FINAL),
	}, map[string]*rftypes.Type{"A": byteType})
	base.Checksums = map[string][]expr.Expr{"A": {expr.NewVariable(ident.New("A"))}}

	derived, err := model.Derive(base, ident.New("Derived"))
	r.NoError(err)
	r.True(derived.IsDerived)
	r.Equal("Base", derived.BaseID.String())
	r.Equal("Derived", derived.ID.String())
	r.Len(derived.Fields(), 1)
	r.Contains(derived.Types, "A")
	r.Len(derived.Checksums["A"], 1)
}

func TestDeriveMutatingDerivedDoesNotAffectBase(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	base := model.New(ident.New("Base"), nil, []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, model.FINAL),
	}, map[string]*rftypes.Type{"A": byteType})

	derived, err := model.Derive(base, ident.New("Derived"))
	r.NoError(err)

	b := &model.Field{Name: ident.New("B"), Type: byteType}
	derived.Structure = append(derived.Structure, model.NewLink(a, b))
	derived.Types["B"] = byteType

	r.Len(base.Structure, 2)
	r.NotContains(base.Types, "B")
}

func TestDeriveRejectsDerivingFromAnAlreadyDerivedMessage(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	base := model.New(ident.New("Base"), nil, []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, model.FINAL),
	}, map[string]*rftypes.Type{"A": byteType})

	derived, err := model.Derive(base, ident.New("Derived"))
	r.NoError(err)

	_, err = model.Derive(derived, ident.New("Further"))
	r.Error(err)
}

func TestNewRefinementDefaultsConditionToTrue(t *testing.T) {
	r := require.New(t)
	inner := model.New(ident.New("Inner"), nil, nil, map[string]*rftypes.Type{})
	ref := model.NewRefinement(ident.New("Payload"), inner)
	r.Equal("Payload", ref.Field.String())
	r.Same(inner, ref.Message)
	_, isTrue := ref.Condition.(*expr.True)
	r.True(isTrue)
}
