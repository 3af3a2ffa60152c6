package expr

import "sort"

// Simplify performs constant folding, flattening of associative
// operators, removal of True conjuncts and False disjuncts, and
// canonical operand ordering for commutative operators.
// It is idempotent: Simplify(Simplify(e)) == Simplify(e) for any e,
// since every rule below reaches a fixed point representation (folded
// constants, flattened n-ary terms, sorted operands) that triggers none
// of the same rules again.
func Simplify(e Expr) Expr {
	if e == nil {
		return nil
	}
	children := e.Children()
	if len(children) > 0 {
		newChildren := make([]Expr, len(children))
		changed := false
		for i, c := range children {
			nc := Simplify(c)
			newChildren[i] = nc
			if nc != c {
				changed = true
			}
		}
		if changed {
			rebuilt, err := e.WithChildren(newChildren...)
			if err != nil {
				panic(err)
			}
			e = rebuilt
		}
	}
	return simplifyNode(e)
}

func simplifyNode(e Expr) Expr {
	switch n := e.(type) {
	case *Add:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return NewNumber(l + r)
		}
	case *Sub:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return NewNumber(l - r)
		}
	case *Mul:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return NewNumber(l * r)
		}
	case *Div:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok && r != 0 {
			return NewNumber(l / r)
		}
	case *Mod:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok && r != 0 {
			return NewNumber(((l % r) + r) % r)
		}
	case *Pow:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok && r >= 0 {
			return NewNumber(intPow(l, r))
		}
	case *Neg:
		if v, ok := asNumber(n.Operand); ok {
			return NewNumber(-v)
		}
	case *Equal:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l == r)
		}
		return canonicalizeCommutative2(&n.binary, func(l, r Expr) Expr { return &Equal{binary{Left: l, Right: r}} })
	case *NotEqual:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l != r)
		}
		return canonicalizeCommutative2(&n.binary, func(l, r Expr) Expr { return &NotEqual{binary{Left: l, Right: r}} })
	case *Less:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l < r)
		}
	case *LessEqual:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l <= r)
		}
	case *Greater:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l > r)
		}
	case *GreaterEqual:
		if l, r, ok := twoNumbers(n.Left, n.Right); ok {
			return boolExpr(l >= r)
		}
	case *Not:
		switch operand := n.Operand.(type) {
		case *True:
			return NewFalse()
		case *False:
			return NewTrue()
		case *Not:
			return operand.Operand
		}
	case *And:
		return simplifyAnd(n)
	case *Or:
		return simplifyOr(n)
	}
	return e
}

func twoNumbers(l, r Expr) (int64, int64, bool) {
	lv, ok := asNumber(l)
	if !ok {
		return 0, 0, false
	}
	rv, ok := asNumber(r)
	if !ok {
		return 0, 0, false
	}
	return lv, rv, true
}

func asNumber(e Expr) (int64, bool) {
	n, ok := e.(*Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func boolExpr(b bool) Expr {
	if b {
		return NewTrue()
	}
	return NewFalse()
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// flattenTerms recursively unpacks nested n-ary nodes of the same kind
// (checked via sameKind), implementing the "flattening of associative
// operators" rule.
func flattenTerms(terms []Expr, sameKind func(Expr) ([]Expr, bool)) []Expr {
	var out []Expr
	for _, t := range terms {
		if nested, ok := sameKind(t); ok {
			out = append(out, flattenTerms(nested, sameKind)...)
		} else {
			out = append(out, t)
		}
	}
	return out
}

func simplifyAnd(n *And) Expr {
	terms := flattenTerms(n.Terms, func(e Expr) ([]Expr, bool) {
		if a, ok := e.(*And); ok {
			return a.Terms, true
		}
		return nil, false
	})
	var kept []Expr
	for _, t := range terms {
		switch t.(type) {
		case *True:
			continue // TRUE conjuncts are removed
		case *False:
			return NewFalse()
		}
		kept = append(kept, t)
	}
	switch len(kept) {
	case 0:
		return NewTrue()
	case 1:
		return kept[0]
	default:
		sortTermsByString(kept)
		return NewAnd(kept...)
	}
}

func simplifyOr(n *Or) Expr {
	terms := flattenTerms(n.Terms, func(e Expr) ([]Expr, bool) {
		if o, ok := e.(*Or); ok {
			return o.Terms, true
		}
		return nil, false
	})
	var kept []Expr
	for _, t := range terms {
		switch t.(type) {
		case *False:
			continue // FALSE disjuncts are removed
		case *True:
			return NewTrue()
		}
		kept = append(kept, t)
	}
	switch len(kept) {
	case 0:
		return NewFalse()
	case 1:
		return kept[0]
	default:
		sortTermsByString(kept)
		return NewOr(kept...)
	}
}

// sortTermsByString gives commutative n-ary operators a canonical
// operand ordering, using the rendered form as the sort key —
// sufficient for a stable, deterministic ordering without needing a
// separate structural comparator.
func sortTermsByString(terms []Expr) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].String() < terms[j].String()
	})
}

// canonicalizeCommutative2 orders a two-operand commutative comparison's
// operands canonically so e.g. (a = b) and (b = a) simplify identically.
func canonicalizeCommutative2(n *binary, rebuild func(l, r Expr) Expr) Expr {
	if n.Left.String() <= n.Right.String() {
		return rebuild(n.Left, n.Right)
	}
	return rebuild(n.Right, n.Left)
}
