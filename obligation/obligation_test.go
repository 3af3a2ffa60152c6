package obligation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/obligation"
	"github.com/componolit/rflx-verify/rftypes"
)

func TestQueryNegatesFormulaOnlyWhenNegateSet(t *testing.T) {
	r := require.New(t)
	ob := &obligation.Obligation{
		Formula: expr.NewTrue(),
		Negate:  true,
	}
	_, isFalse := ob.Query().(*expr.False)
	r.True(isFalse)

	ob.Negate = false
	_, isTrue := ob.Query().(*expr.True)
	r.True(isTrue)
}

func TestQueryConjoinsAssumptions(t *testing.T) {
	r := require.New(t)
	x := expr.NewVariable(ident.New("X"))
	ob := &obligation.Obligation{
		Formula:     x,
		Assumptions: []expr.Expr{expr.NewTrue(), expr.NewTrue()},
	}
	r.Equal("X", ob.Query().String())
}

func twoFieldModular() *model.Message {
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(b, model.FINAL),
	}
	return model.New(ident.New("Msg"), nil, structure, types)
}

func TestBuilderFactsIncludesPathConditionAndLengthBound(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular()
	b := obligation.NewBuilder(m)
	path := m.Paths(model.FINAL)[0]
	facts := b.Facts(path)
	r.NotEmpty(facts)

	var sawPathCondition, sawLengthBound bool
	for _, f := range facts {
		if f.String() == model.PathCondition(path).String() {
			sawPathCondition = true
		}
		// Type range facts are LessEqual too; the length bound is the one
		// on Size(Message).
		if le, ok := f.(*expr.LessEqual); ok {
			if _, onSize := le.Left.(*expr.Size); onSize {
				sawLengthBound = true
			}
		}
	}
	r.True(sawPathCondition)
	r.True(sawLengthBound)
}

func TestBuilderFactsIncludesSizeFirstRelationsForEachLink(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular()
	b := obligation.NewBuilder(m)
	path := m.Paths(model.FINAL)[0]
	facts := b.Facts(path)

	var equalities int
	for _, f := range facts {
		if _, ok := f.(*expr.Equal); ok {
			equalities++
		}
	}
	// One First(target) == First(source) + size relation per non-sentinel
	// link on the path (A and B).
	r.GreaterOrEqual(equalities, 2)
}
