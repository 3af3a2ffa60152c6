package model

import (
	"fmt"

	"github.com/componolit/rflx-verify/expr"
)

// Paths enumerates every link-path from INITIAL to target. The message
// must already be known acyclic (TopologicalOrder succeeds) or this
// recurses forever on a cycle.
func (m *Message) Paths(target *Field) [][]*Link {
	m.mu.Lock()
	if m.pathsCache == nil {
		m.pathsCache = map[string][][]*Link{}
	}
	key := target.Name.String()
	if cached, ok := m.pathsCache[key]; ok {
		m.mu.Unlock()
		return cached
	}
	// Incoming and the recursive Paths calls lock mu themselves.
	m.mu.Unlock()

	var out [][]*Link
	if target == INITIAL {
		out = [][]*Link{{}}
	} else {
		for _, l := range m.Incoming(target) {
			for _, prefix := range m.Paths(l.Source) {
				path := make([]*Link, len(prefix)+1)
				copy(path, prefix)
				path[len(prefix)] = l
				out = append(out, path)
			}
		}
	}
	m.mu.Lock()
	m.pathsCache[key] = out
	m.mu.Unlock()
	return out
}

// PathCondition returns the conjunction of every link's Condition along
// path, simplified.
func PathCondition(path []*Link) expr.Expr {
	if len(path) == 0 {
		return expr.NewTrue()
	}
	terms := make([]expr.Expr, len(path))
	for i, l := range path {
		terms[i] = l.Condition
	}
	return expr.Simplify(expr.NewAnd(terms...))
}

// DefinitePredecessors returns the fields that occur in every path from
// INITIAL to target — the fields a reader is guaranteed to have already
// parsed once it reaches target, regardless of which branch was taken.
func (m *Message) DefinitePredecessors(target *Field) []*Field {
	m.mu.Lock()
	if m.definitePrereqs == nil {
		m.definitePrereqs = map[string][]*Field{}
	}
	key := target.Name.String()
	if cached, ok := m.definitePrereqs[key]; ok {
		m.mu.Unlock()
		return cached
	}
	m.mu.Unlock()

	paths := m.Paths(target)
	if len(paths) == 0 {
		return nil
	}
	counts := map[string]int{}
	order := map[string]*Field{}
	for _, path := range paths {
		seen := map[string]bool{}
		for _, l := range path {
			for _, f := range []*Field{l.Source, l.Target} {
				if f == target || f.IsSentinel() {
					continue
				}
				if !seen[f.Name.String()] {
					seen[f.Name.String()] = true
					counts[f.Name.String()]++
					order[f.Name.String()] = f
				}
			}
		}
	}
	var out []*Field
	for _, path := range paths {
		for _, l := range path {
			for _, f := range []*Field{l.Source, l.Target} {
				if f == target || f.IsSentinel() {
					continue
				}
				if counts[f.Name.String()] == len(paths) {
					already := false
					for _, existing := range out {
						if existing.Name.Equal(f.Name) {
							already = true
							break
						}
					}
					if !already {
						out = append(out, f)
					}
				}
			}
		}
		break
	}

	m.mu.Lock()
	m.definitePrereqs[key] = out
	m.mu.Unlock()
	return out
}

// LinkSize resolves l's bit-size expression: the link's own explicit
// Size if present, or the target field's fixed-size type width
// otherwise. Memoized by l.Hash(), so two structurally identical links
// sharing a target resolve to the same cached size.
func (m *Message) LinkSize(l *Link) (expr.Expr, error) {
	m.mu.Lock()
	if m.fieldSizeCache == nil {
		m.fieldSizeCache = map[string]expr.Expr{}
	}
	key := fmt.Sprintf("%x", l.Hash())
	if cached, ok := m.fieldSizeCache[key]; ok {
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	var size expr.Expr
	if !l.HasImplicitSize() {
		size = expr.Simplify(l.Size)
	} else if l.Target.Type != nil {
		fixed, ok := l.Target.Type.FixedSize()
		if !ok {
			return nil, fmt.Errorf("model: %s has no explicit Size and %s has no fixed size", l.Target.Name, l.Target.Type.ID)
		}
		size = expr.NewNumber(fixed)
	} else {
		return nil, fmt.Errorf("model: FINAL link has no size")
	}

	m.mu.Lock()
	m.fieldSizeCache[key] = size
	m.mu.Unlock()
	return size, nil
}

// HasFixedSize reports whether every link of the message carries a
// statically known size (no implicit size resolved against an unbounded
// composite type).
func (m *Message) HasFixedSize() bool {
	for _, l := range m.Structure {
		if l.Target == FINAL {
			continue
		}
		if _, err := m.LinkSize(l); err != nil {
			return false
		}
	}
	return true
}

// HasImplicitSize reports whether any link in the message leaves Size
// to be derived from its target's type.
func (m *Message) HasImplicitSize() bool {
	for _, l := range m.Structure {
		if l.HasImplicitSize() {
			return true
		}
	}
	return false
}

// IsDefinite reports whether the message has exactly one path from
// INITIAL to FINAL with no conditional branching: the trivial
// single-layout case.
func (m *Message) IsDefinite() bool {
	return len(m.Paths(FINAL)) == 1
}

// MaxSize returns the maximum total bit-size across all paths to FINAL,
// and false if any path includes a field without a statically known
// size.
func (m *Message) MaxSize() (int64, bool) {
	best := int64(0)
	found := false
	for _, path := range m.Paths(FINAL) {
		total := int64(0)
		ok := true
		for _, l := range path {
			if l.Target == FINAL {
				continue
			}
			size, err := m.LinkSize(l)
			if err != nil {
				ok = false
				break
			}
			n, isNum := constantOf(size)
			if !isNum {
				ok = false
				break
			}
			total += n
		}
		if !ok {
			return 0, false
		}
		found = true
		if total > best {
			best = total
		}
	}
	return best, found
}

// MaxFieldSizes returns, for every field, the largest constant size it
// takes across all paths reaching it, for fields with a statically
// known size on every path.
func (m *Message) MaxFieldSizes() map[string]int64 {
	out := map[string]int64{}
	for _, f := range m.Fields() {
		best := int64(-1)
		for _, l := range m.Incoming(f) {
			size, err := m.LinkSize(l)
			if err != nil {
				best = -1
				break
			}
			n, ok := constantOf(size)
			if !ok {
				best = -1
				break
			}
			if n > best {
				best = n
			}
		}
		if best >= 0 {
			out[f.Name.String()] = best
		}
	}
	return out
}

func constantOf(e expr.Expr) (int64, bool) {
	n, ok := expr.Simplify(e).(*expr.Number)
	if !ok {
		return 0, false
	}
	return n.Value, true
}
