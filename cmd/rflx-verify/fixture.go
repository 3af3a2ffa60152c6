package main

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/model"
	"github.com/componolit/rflx-verify/rftypes"
)

// Fixture is the YAML message-graph format this demo harness reads. It
// is a Go-native stand-in for a concrete-syntax parser, built as a
// declarative table rather than a parsed ".rflx" source file.
type Fixture struct {
	Message   string        `yaml:"message"`
	ByteOrder string        `yaml:"byte_order"`
	Types     []TypeDecl    `yaml:"types"`
	Links     []LinkDecl    `yaml:"links"`
	Proof     ProofSettings `yaml:"proof"`
}

// TypeDecl declares one scalar or composite type.
type TypeDecl struct {
	Name     string                 `yaml:"name"`
	Kind     string                 `yaml:"kind"` // modular, range, enum, opaque, sequence
	Modulus  interface{}            `yaml:"modulus"`
	First    interface{}            `yaml:"first"`
	Last     interface{}            `yaml:"last"`
	Size     interface{}            `yaml:"size"`
	Literals map[string]interface{} `yaml:"literals"`
}

// LinkDecl declares one structure-graph edge.
type LinkDecl struct {
	Source    string    `yaml:"source"`
	Target    string    `yaml:"target"`
	Type      string    `yaml:"type"` // target field's declared type name, empty for INITIAL/FINAL
	Condition *ExprNode `yaml:"condition"`
	Size      *ExprNode `yaml:"size"`
	First     *ExprNode `yaml:"first"`
}

// ProofSettings configures the verifier's parallel proof driver.
type ProofSettings struct {
	Workers   int `yaml:"workers"`
	TimeoutMS int `yaml:"timeout_ms"`
}

// ExprNode is a structured, non-textual expr.Expr fixture: each variant
// of the algebra is one discriminated Kind.
type ExprNode struct {
	Kind    string      `yaml:"kind"`
	Value   interface{} `yaml:"value"`
	Name    string      `yaml:"name"`
	Left    *ExprNode   `yaml:"left"`
	Right   *ExprNode   `yaml:"right"`
	Operand *ExprNode   `yaml:"operand"`
	Prefix  *ExprNode   `yaml:"prefix"`
	Terms   []*ExprNode `yaml:"terms"`
}

// LoadFixture reads and parses a Fixture from path.
func LoadFixture(path string) (*Fixture, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Build converts n into an expr.Expr, defaulting to True for a nil node
// — the fixture format's way of leaving Condition at its usual default.
// BuildMessage does not call Build for an omitted Size or First; it
// leaves those UNDEFINED.
func (n *ExprNode) Build() (expr.Expr, error) {
	if n == nil {
		return expr.NewTrue(), nil
	}
	switch n.Kind {
	case "", "true":
		return expr.NewTrue(), nil
	case "false":
		return expr.NewFalse(), nil
	case "undefined":
		return expr.NewUndefined(), nil
	case "number":
		return expr.NewNumber(cast.ToInt64(n.Value)), nil
	case "variable":
		return expr.NewVariable(ident.New(n.Name)), nil
	case "add", "sub", "mul", "div", "mod", "pow", "equal", "not_equal", "less", "less_equal", "greater", "greater_equal":
		l, err := n.Left.Build()
		if err != nil {
			return nil, err
		}
		r, err := n.Right.Build()
		if err != nil {
			return nil, err
		}
		return buildBinary(n.Kind, l, r)
	case "neg":
		operand, err := n.Operand.Build()
		if err != nil {
			return nil, err
		}
		return expr.NewNeg(operand), nil
	case "not":
		operand, err := n.Operand.Build()
		if err != nil {
			return nil, err
		}
		return expr.NewNot(operand), nil
	case "and", "or":
		terms := make([]expr.Expr, len(n.Terms))
		for i, t := range n.Terms {
			e, err := t.Build()
			if err != nil {
				return nil, err
			}
			terms[i] = e
		}
		if n.Kind == "and" {
			return expr.NewAnd(terms...), nil
		}
		return expr.NewOr(terms...), nil
	case "size", "first", "last", "valid_checksum":
		prefix, err := n.Prefix.Build()
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case "size":
			return expr.NewSize(prefix), nil
		case "first":
			return expr.NewFirst(prefix), nil
		case "last":
			return expr.NewLast(prefix), nil
		default:
			return expr.NewValidChecksum(prefix), nil
		}
	default:
		return nil, fmt.Errorf("fixture: unknown expression kind %q", n.Kind)
	}
}

func buildBinary(kind string, l, r expr.Expr) (expr.Expr, error) {
	switch kind {
	case "add":
		return expr.NewAdd(l, r), nil
	case "sub":
		return expr.NewSub(l, r), nil
	case "mul":
		return expr.NewMul(l, r), nil
	case "div":
		return expr.NewDiv(l, r), nil
	case "mod":
		return expr.NewMod(l, r), nil
	case "pow":
		return expr.NewPow(l, r), nil
	case "equal":
		return expr.NewEqual(l, r), nil
	case "not_equal":
		return expr.NewNotEqual(l, r), nil
	case "less":
		return expr.NewLess(l, r), nil
	case "less_equal":
		return expr.NewLessEqual(l, r), nil
	case "greater":
		return expr.NewGreater(l, r), nil
	default:
		return expr.NewGreaterEqual(l, r), nil
	}
}

// BuildMessage converts the fixture into a *model.Message.
func (f *Fixture) BuildMessage() (*model.Message, error) {
	types := map[string]*rftypes.Type{}
	for _, td := range f.Types {
		t, err := td.build()
		if err != nil {
			return nil, fmt.Errorf("fixture: type %q: %w", td.Name, err)
		}
		types[td.Name] = t
	}

	// Each link names its target field's type; the message keys types by
	// field name.
	fieldTypes := map[string]*rftypes.Type{}
	for _, ld := range f.Links {
		if ld.Type != "" {
			fieldTypes[ld.Target] = types[ld.Type]
		}
	}
	fieldTypeFor := func(name string) *rftypes.Type {
		return fieldTypes[name]
	}

	var links []*model.Link
	for _, ld := range f.Links {
		source := fieldFor(ld.Source, fieldTypeFor)
		target := fieldFor(ld.Target, fieldTypeFor)
		cond, err := ld.Condition.Build()
		if err != nil {
			return nil, err
		}
		var size, first expr.Expr = expr.NewUndefined(), expr.NewUndefined()
		if ld.Size != nil {
			if size, err = ld.Size.Build(); err != nil {
				return nil, err
			}
		}
		if ld.First != nil {
			if first, err = ld.First.Build(); err != nil {
				return nil, err
			}
		}
		links = append(links, &model.Link{Source: source, Target: target, Condition: cond, Size: size, First: first})
	}

	msg := model.New(ident.New(f.Message), nil, links, fieldTypes)
	if f.ByteOrder != "" {
		msg.ByteOrder = f.ByteOrder
	}
	return msg, nil
}

func fieldFor(name string, typeFor func(string) *rftypes.Type) *model.Field {
	switch name {
	case "INITIAL":
		return model.INITIAL
	case "FINAL":
		return model.FINAL
	default:
		return &model.Field{Name: ident.New(name), Type: typeFor(name)}
	}
}

func (td *TypeDecl) build() (*rftypes.Type, error) {
	id := ident.New(td.Name)
	switch td.Kind {
	case "modular":
		return rftypes.NewModularInteger(id, nil, cast.ToInt64(td.Modulus)), nil
	case "range":
		first := cast.ToInt64(td.First)
		last := cast.ToInt64(td.Last)
		size := cast.ToInt64(td.Size)
		return rftypes.NewRangeInteger(id, nil, first, last, size), nil
	case "enum":
		literals := make(map[string]int64, len(td.Literals))
		for name, v := range td.Literals {
			literals[name] = cast.ToInt64(v)
		}
		return rftypes.NewEnumeration(id, nil, literals, cast.ToInt64(td.Size), false), nil
	case "opaque":
		return rftypes.NewOpaque(id, nil), nil
	case "sequence":
		return rftypes.NewSequence(id, nil, rftypes.NewOpaque(ident.New(td.Name+"_Element"), nil)), nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", td.Kind)
	}
}
