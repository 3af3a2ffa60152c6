package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
)

func TestLinkHashIsStructuralNotIdentity(t *testing.T) {
	r := require.New(t)
	a := &model.Field{Name: ident.New("A")}
	b := &model.Field{Name: ident.New("B")}
	l1 := model.NewLink(a, b)
	l2 := model.NewLink(a, b)
	r.True(l1.Equal(l2))
	r.NotSame(l1, l2)
}

func TestLinkHashDistinguishesDifferentConditions(t *testing.T) {
	r := require.New(t)
	a := &model.Field{Name: ident.New("A")}
	b := &model.Field{Name: ident.New("B")}
	l1 := model.NewLink(a, b)
	l2 := model.NewLink(a, b)
	l2.Condition = expr.NewEqual(expr.NewVariable(ident.New("A")), expr.NewNumber(1))
	r.False(l1.Equal(l2))
}

func TestHasImplicitSizeAndFirstDefaultTrue(t *testing.T) {
	r := require.New(t)
	a := &model.Field{Name: ident.New("A")}
	b := &model.Field{Name: ident.New("B")}
	l := model.NewLink(a, b)
	r.True(l.HasImplicitSize())
	r.True(l.HasImplicitFirst())

	l.Size = expr.NewNumber(8)
	r.False(l.HasImplicitSize())
}
