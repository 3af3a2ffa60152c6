package expr

import (
	"fmt"

	"github.com/componolit/rflx-verify/rftypes"
)

// TypeEnv resolves the lattice of a free variable by name, letting
// CheckType work without depending on package model (which in turn
// depends on expr). Package model supplies a concrete TypeEnv built
// from a message's field type map.
type TypeEnv interface {
	Lookup(name string) (rftypes.Lattice, bool)
}

// MapEnv is the simplest TypeEnv, keyed directly by variable name.
type MapEnv map[string]rftypes.Lattice

func (m MapEnv) Lookup(name string) (rftypes.Lattice, bool) {
	l, ok := m[name]
	return l, ok
}

// CheckType infers e's lattice under env and reports an error if e
// cannot be typed: an undefined variable, operands that cannot be
// compared, non-numeric arithmetic, or a variable in an exponent. It
// does not check size aspects on fixed-size fields or aggregate
// lengths. On success it returns the inferred lattice.
func CheckType(e Expr, env TypeEnv) (rftypes.Lattice, error) {
	switch n := e.(type) {
	case *Number:
		return rftypes.UniversalIntegerLattice(), nil
	case *StringLiteral:
		return rftypes.OpaqueLattice(), nil
	case *Aggregate:
		return rftypes.AggregateLattice(), nil
	case *True, *False:
		return rftypes.Lattice{Kind: rftypes.Any}, nil
	case *Variable:
		l, ok := env.Lookup(n.Name.String())
		if !ok {
			return rftypes.Lattice{}, fmt.Errorf("checktype: undefined variable %s", n.Name)
		}
		return l, nil
	case *Size, *First, *Last, *ValidChecksum:
		// Attribute references always yield a universal integer (or, for
		// ValidChecksum, a Boolean), independent of the prefix's own type;
		// the prefix itself still needs to resolve to catch an attribute
		// use on something that isn't a field reference.
		prefix := attrPrefix(n)
		if _, err := CheckType(prefix, env); err != nil {
			return rftypes.Lattice{}, err
		}
		if _, ok := n.(*ValidChecksum); ok {
			return rftypes.Lattice{Kind: rftypes.Any}, nil
		}
		return rftypes.UniversalIntegerLattice(), nil
	case *Add, *Sub, *Mul, *Div, *Mod:
		return checkArith(n, env)
	case *Pow:
		return checkPow(n, env)
	case *Neg:
		return CheckType(n.Operand, env)
	case *Equal, *NotEqual, *Less, *LessEqual, *Greater, *GreaterEqual:
		l, r := binaryOperands(n)
		lt, err := CheckType(l, env)
		if err != nil {
			return rftypes.Lattice{}, err
		}
		rt, err := CheckType(r, env)
		if err != nil {
			return rftypes.Lattice{}, err
		}
		if !lt.Accepts(rt) && !rt.Accepts(lt) {
			return rftypes.Lattice{}, fmt.Errorf("checktype: %s and %s are not comparable", lt, rt)
		}
		return rftypes.Lattice{Kind: rftypes.Any}, nil
	case *And, *Or:
		for _, t := range e.Children() {
			if _, err := CheckType(t, env); err != nil {
				return rftypes.Lattice{}, err
			}
		}
		return rftypes.Lattice{Kind: rftypes.Any}, nil
	case *Not:
		return CheckType(n.Operand, env)
	case *ValueRange:
		lo, err := CheckType(n.Lo, env)
		if err != nil {
			return rftypes.Lattice{}, err
		}
		hi, err := CheckType(n.Hi, env)
		if err != nil {
			return rftypes.Lattice{}, err
		}
		if !lo.Accepts(hi) && !hi.Accepts(lo) {
			return rftypes.Lattice{}, fmt.Errorf("checktype: range bounds %s and %s disagree", lo, hi)
		}
		return lo, nil
	case *In, *NotIn:
		elem, set := membershipOperands(n)
		if _, err := CheckType(elem, env); err != nil {
			return rftypes.Lattice{}, err
		}
		if _, err := CheckType(set, env); err != nil {
			return rftypes.Lattice{}, err
		}
		return rftypes.Lattice{Kind: rftypes.Any}, nil
	case *Undefined:
		return rftypes.Lattice{Kind: rftypes.Any}, nil
	default:
		return rftypes.Lattice{}, fmt.Errorf("checktype: unhandled expression %T", e)
	}
}

func attrPrefix(e Expr) Expr {
	switch n := e.(type) {
	case *Size:
		return n.Prefix
	case *First:
		return n.Prefix
	case *Last:
		return n.Prefix
	case *ValidChecksum:
		return n.Prefix
	default:
		panic(fmt.Sprintf("attrPrefix: unexpected %T", e))
	}
}

func checkArith(e Expr, env TypeEnv) (rftypes.Lattice, error) {
	l, r := binaryOperands(e)
	lt, err := CheckType(l, env)
	if err != nil {
		return rftypes.Lattice{}, err
	}
	rt, err := CheckType(r, env)
	if err != nil {
		return rftypes.Lattice{}, err
	}
	if lt.Kind != rftypes.UniversalInteger && lt.Kind != rftypes.BoundedInteger {
		return rftypes.Lattice{}, fmt.Errorf("checktype: %s is not numeric", lt)
	}
	if rt.Kind != rftypes.UniversalInteger && rt.Kind != rftypes.BoundedInteger {
		return rftypes.Lattice{}, fmt.Errorf("checktype: %s is not numeric", rt)
	}
	return rftypes.UniversalIntegerLattice(), nil
}

// checkPow additionally rejects a non-constant exponent: an
// "unsupported variable in exponent" Expression error.
func checkPow(e Expr, env TypeEnv) (rftypes.Lattice, error) {
	p := e.(*Pow)
	if len(Variables(p.Right)) > 0 {
		return rftypes.Lattice{}, fmt.Errorf("checktype: exponent must not contain a variable")
	}
	return checkArith(e, env)
}

func binaryOperands(e Expr) (Expr, Expr) {
	c := e.Children()
	return c[0], c[1]
}

func membershipOperands(e Expr) (Expr, Expr) {
	switch n := e.(type) {
	case *In:
		return n.Elem, n.Set
	case *NotIn:
		return n.Elem, n.Set
	default:
		panic(fmt.Sprintf("membershipOperands: unexpected %T", e))
	}
}
