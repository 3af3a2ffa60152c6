package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
)

// twoFieldModular builds a canonical two-field modular message:
// INITIAL -> A -> B -> FINAL, both fields Modular{256}.
func twoFieldModular(t *testing.T) *model.Message {
	t.Helper()
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

func TestFieldsReturnsNonSentinelFieldsInFirstAppearanceOrder(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	fields := m.Fields()
	r.Len(fields, 2)
	r.Equal("A", fields[0].Name.String())
	r.Equal("B", fields[1].Name.String())
}

func TestTopologicalOrderPlacesInitialFirstAndFinalLast(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	order, err := m.TopologicalOrder()
	r.NoError(err)
	r.Len(order, 4)
	r.Equal("INITIAL", order[0].Name.String())
	r.Equal("FINAL", order[len(order)-1].Name.String())
}

func TestTopologicalOrderDetectsCycle(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(b, a), // cycle back to A
	}
	m := model.New(ident.New("Cyclic"), nil, structure, types)
	_, err := m.TopologicalOrder()
	r.Error(err)
}

func TestPathsEnumeratesEveryRouteToTarget(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	c := &model.Field{Name: ident.New("C"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType, "C": byteType}
	// INITIAL -> A; A -> B; A -> C; B -> FINAL; C -> FINAL (two paths).
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(a, c),
		model.NewLink(b, model.FINAL),
		model.NewLink(c, model.FINAL),
	}
	m := model.New(ident.New("Branchy"), nil, structure, types)
	paths := m.Paths(model.FINAL)
	r.Len(paths, 2)
}

func TestDefinitePredecessorsIsCommonToEveryPath(t *testing.T) {
	r := require.New(t)
	byteType := rftypes.NewModularInteger(ident.New("Byte"), nil, 256)
	a := &model.Field{Name: ident.New("A"), Type: byteType}
	b := &model.Field{Name: ident.New("B"), Type: byteType}
	c := &model.Field{Name: ident.New("C"), Type: byteType}
	types := map[string]*rftypes.Type{"A": byteType, "B": byteType, "C": byteType}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, a),
		model.NewLink(a, b),
		model.NewLink(a, c),
		model.NewLink(b, model.FINAL),
		model.NewLink(c, model.FINAL),
	}
	m := model.New(ident.New("Branchy"), nil, structure, types)
	pre := m.DefinitePredecessors(model.FINAL)
	r.Len(pre, 1)
	r.Equal("A", pre[0].Name.String())
}

func TestLinkSizeResolvesFixedSizeTypeWhenImplicit(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	links := m.Outgoing(model.INITIAL)
	r.Len(links, 1)
	size, err := m.LinkSize(links[0])
	r.NoError(err)
	n, ok := size.(*expr.Number)
	r.True(ok)
	r.EqualValues(8, n.Value)
}

func TestLinkSizeErrorsWithNoExplicitSizeAndNoFixedSizeType(t *testing.T) {
	r := require.New(t)
	opaque := rftypes.NewOpaque(ident.New("Payload"), nil)
	f := &model.Field{Name: ident.New("Payload"), Type: opaque}
	types := map[string]*rftypes.Type{"Payload": opaque}
	structure := []*model.Link{
		model.NewLink(model.INITIAL, f),
		model.NewLink(f, model.FINAL),
	}
	m := model.New(ident.New("Msg"), nil, structure, types)
	_, err := m.LinkSize(structure[0])
	r.Error(err)
}

func TestMaxSizeSumsConstantFieldSizesAcrossPaths(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	total, ok := m.MaxSize()
	r.True(ok)
	r.EqualValues(16, total)
}

func TestMaxFieldSizesReportsPerFieldLargestSize(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	sizes := m.MaxFieldSizes()
	r.EqualValues(8, sizes["A"])
	r.EqualValues(8, sizes["B"])
}

func TestIsDefiniteIsTrueForSinglePathMessages(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	r.True(m.IsDefinite())
}

func TestOutgoingAndIncomingAreDeclarationOrdered(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	a := m.Fields()[0]
	out := m.Outgoing(model.INITIAL)
	r.Len(out, 1)
	r.Equal(a.Name.String(), out[0].Target.Name.String())
	in := m.Incoming(a)
	r.Len(in, 1)
	r.Equal("INITIAL", in[0].Source.Name.String())
}

func TestInvalidateCachesClearsMemoizedFields(t *testing.T) {
	r := require.New(t)
	m := twoFieldModular(t)
	first := m.Fields()
	r.Len(first, 2)

	m.Structure = append(m.Structure, model.NewLink(first[1], &model.Field{Name: ident.New("C")}))
	m.InvalidateCaches()
	r.Len(m.Fields(), 3) // recomputed from Structure rather than the stale cache
}
