package obligation

import (
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
)

var messageIdent = ident.New("Message")

// Builder constructs the Facts list for a path through msg: (1) each
// scalar field's type range constraint, (2) the path's own condition,
// (3) prior fields' size/first relations, (4) checksum coverage
// constraints, and (5) a bound on the message's total length.
type Builder struct {
	Message *model.Message
}

// NewBuilder constructs a Builder over msg.
func NewBuilder(msg *model.Message) *Builder { return &Builder{Message: msg} }

// Facts returns every fact that holds along path, suitable as
// Obligation.Assumptions.
func (b *Builder) Facts(path []*model.Link) []expr.Expr {
	var facts []expr.Expr
	facts = append(facts, b.typeConstraints(path)...)
	facts = append(facts, model.PathCondition(path))
	facts = append(facts, b.sizeFirstRelations(path)...)
	facts = append(facts, b.checksumCoverage(path)...)
	if bound, ok := b.lengthBound(); ok {
		facts = append(facts, bound)
	}
	return facts
}

// typeConstraints returns, for each scalar field on path, the range
// constraint its declared type imposes.
func (b *Builder) typeConstraints(path []*model.Link) []expr.Expr {
	var out []expr.Expr
	for _, l := range path {
		f := l.Target
		if f.IsSentinel() || f.Type == nil || !f.Type.IsScalar() {
			continue
		}
		v := expr.NewVariable(f.Name)
		if lat := f.Type.Lattice(); lat.Kind == rftypes.BoundedInteger {
			out = append(out,
				expr.NewGreaterEqual(v, expr.NewNumber(lat.LowerBound)),
				expr.NewLessEqual(v, expr.NewNumber(lat.UpperBound)),
			)
		}
	}
	return out
}

// sizeFirstRelations returns, for each link on path whose target has a
// resolvable size, the relation placing the target field's First
// position: First(Message) after INITIAL, otherwise the source's First
// plus the source's resolved Size, letting the solver reason about byte
// offsets without re-deriving layout itself. A link whose source's size
// does not resolve gets no relation.
func (b *Builder) sizeFirstRelations(path []*model.Link) []expr.Expr {
	var out []expr.Expr
	var sourceSize expr.Expr // size of l.Source, resolved on the previous link
	for _, l := range path {
		if l.Target.IsSentinel() {
			continue
		}
		size, err := b.Message.LinkSize(l)
		if err == nil {
			firstOfTarget := expr.NewFirst(expr.NewVariable(l.Target.Name))
			if l.Source == model.INITIAL {
				out = append(out, expr.NewEqual(firstOfTarget, expr.NewFirst(expr.NewVariable(messageIdent))))
			} else if sourceSize != nil {
				firstOfSource := expr.NewFirst(expr.NewVariable(l.Source.Name))
				out = append(out, expr.NewEqual(firstOfTarget, expr.NewAdd(firstOfSource, sourceSize)))
			}
		}
		sourceSize = size
	}
	return out
}

// checksumCoverage returns, for each checksum group whose field appears
// on path, a constraint that Valid_Checksum only holds when every
// covered field reference it names is true.
func (b *Builder) checksumCoverage(path []*model.Link) []expr.Expr {
	var out []expr.Expr
	for name, covered := range b.Message.Checksums {
		onPath := false
		for _, l := range path {
			if l.Target.Name.String() == name {
				onPath = true
				break
			}
		}
		if !onPath {
			continue
		}
		terms := covered
		if len(terms) == 0 {
			terms = []expr.Expr{expr.NewTrue()}
		}
		out = append(out, expr.NewOr(
			expr.NewNot(expr.NewValidChecksum(expr.NewVariable(ident.New(name)))),
			expr.NewAnd(terms...),
		))
	}
	return out
}

// lengthBound returns Size(Message) <= max, if msg.MaxSize is known.
func (b *Builder) lengthBound() (expr.Expr, bool) {
	max, ok := b.Message.MaxSize()
	if !ok {
		return nil, false
	}
	return expr.NewLessEqual(expr.NewSize(expr.NewVariable(messageIdent)), expr.NewNumber(max)), true
}
