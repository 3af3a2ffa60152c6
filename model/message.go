package model

import (
	"fmt"
	"sync"

	"github.com/componolit/rflx-verify/diag"
	"github.com/componolit/rflx-verify/expr"
	"github.com/componolit/rflx-verify/ident"
	"github.com/componolit/rflx-verify/rftypes"
)

// Message is the message graph: a set of Fields reachable from INITIAL,
// a set of typed Links forming the structure, per-field type
// assignments, and named checksum field groups.
//
// A freshly built Message is "unproven"; verifier.Verify moves it to
// "proven" on success. Derived caches below are computed lazily and
// guarded by mu, so paths and sizes aren't recomputed eagerly at
// construction time.
type Message struct {
	ID        ident.ID
	Loc       *ident.Location
	Structure []*Link
	Types     map[string]*rftypes.Type // field name -> type, INITIAL/FINAL excluded
	Checksums map[string][]expr.Expr   // checksum field name -> covered field references
	ByteOrder string                   // "low_order_first" or "high_order_first"

	// IsDerived and BaseID record provenance for a DerivedMessage; BaseID
	// is the zero ident.ID for a message that isn't derived.
	IsDerived bool
	BaseID    ident.ID

	Proven bool

	mu              sync.Mutex
	fieldsCache     []*Field
	outgoingCache   map[string][]*Link
	incomingCache   map[string][]*Link
	topoCache       []*Field
	pathsCache      map[string][][]*Link
	fieldSizeCache  map[string]expr.Expr
	definitePrereqs map[string][]*Field
}

// New builds an unproven Message from its structure and per-field types,
// with no checksums and low_order_first byte order.
func New(id ident.ID, loc *ident.Location, structure []*Link, types map[string]*rftypes.Type) *Message {
	return &Message{ID: id, Loc: loc, Structure: structure, Types: types, Checksums: map[string][]expr.Expr{}, ByteOrder: "low_order_first"}
}

func (m *Message) field(name ident.ID) *Field {
	if name.String() == "INITIAL" {
		return INITIAL
	}
	if name.String() == "FINAL" {
		return FINAL
	}
	return &Field{Name: name, Type: m.Types[name.String()]}
}

// Fields returns every field of the message (excluding INITIAL/FINAL),
// in first-appearance order across Structure.
func (m *Message) Fields() []*Field {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fieldsCache != nil {
		return m.fieldsCache
	}
	seen := map[string]bool{}
	var out []*Field
	for _, l := range m.Structure {
		for _, f := range []*Field{l.Source, l.Target} {
			if f.IsSentinel() || seen[f.Name.String()] {
				continue
			}
			seen[f.Name.String()] = true
			out = append(out, f)
		}
	}
	m.fieldsCache = out
	return out
}

// Outgoing returns the links leaving f, in declaration order.
func (m *Message) Outgoing(f *Field) []*Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outgoingCache == nil {
		m.outgoingCache = map[string][]*Link{}
		for _, l := range m.Structure {
			key := l.Source.Name.String()
			m.outgoingCache[key] = append(m.outgoingCache[key], l)
		}
	}
	return m.outgoingCache[f.Name.String()]
}

// Incoming returns the links entering f, in declaration order.
func (m *Message) Incoming(f *Field) []*Link {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.incomingCache == nil {
		m.incomingCache = map[string][]*Link{}
		for _, l := range m.Structure {
			key := l.Target.Name.String()
			m.incomingCache[key] = append(m.incomingCache[key], l)
		}
	}
	return m.incomingCache[f.Name.String()]
}

// TopologicalOrder returns the fields (including INITIAL and FINAL) in
// an order consistent with the structure graph's edges, computed with
// Kahn's algorithm. It returns an error if the graph contains a cycle:
// the structure graph must be acyclic.
func (m *Message) TopologicalOrder() ([]*Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.topoCache != nil {
		return m.topoCache, nil
	}
	order, err := kahn(m)
	if err != nil {
		return nil, err
	}
	m.topoCache = order
	return order, nil
}

// kahn implements Kahn's algorithm over the message's structure graph,
// treating INITIAL/FINAL as ordinary nodes.
func kahn(m *Message) ([]*Field, error) {
	inDegree := map[string]int{}
	adj := map[string][]*Field{}
	nodes := map[string]*Field{INITIAL.Name.String(): INITIAL, FINAL.Name.String(): FINAL}
	for _, f := range m.fieldsUnlocked() {
		nodes[f.Name.String()] = f
	}
	for _, n := range nodes {
		inDegree[n.Name.String()] = 0
	}
	for _, l := range m.Structure {
		adj[l.Source.Name.String()] = append(adj[l.Source.Name.String()], l.Target)
		inDegree[l.Target.Name.String()]++
	}
	// Every node nothing links into starts the queue, INITIAL first, so
	// only a cycle leaves nodes unvisited.
	queue := []*Field{INITIAL}
	for _, f := range append(m.fieldsUnlocked(), FINAL) {
		if inDegree[f.Name.String()] == 0 {
			queue = append(queue, f)
		}
	}
	var order []*Field
	visited := map[string]bool{}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if visited[n.Name.String()] {
			continue
		}
		visited[n.Name.String()] = true
		order = append(order, n)
		for _, t := range adj[n.Name.String()] {
			inDegree[t.Name.String()]--
			if inDegree[t.Name.String()] == 0 {
				queue = append(queue, t)
			}
		}
	}
	if len(order) != len(nodes) {
		return nil, fmt.Errorf("model: structure graph of %s contains a cycle", m.ID)
	}
	return order, nil
}

// fieldsUnlocked is Fields without acquiring mu, for callers that
// already hold it.
func (m *Message) fieldsUnlocked() []*Field {
	seen := map[string]bool{}
	var out []*Field
	for _, l := range m.Structure {
		for _, f := range []*Field{l.Source, l.Target} {
			if f.IsSentinel() || seen[f.Name.String()] {
				continue
			}
			seen[f.Name.String()] = true
			out = append(out, f)
		}
	}
	return out
}

// InvalidateCaches drops every memoized derivation (Fields, topological
// order, paths, link sizes, definite predecessors), for callers that
// mutate Structure directly after construction (merge's dangling-field
// pruning is the only such caller).
func (m *Message) InvalidateCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fieldsCache = nil
	m.outgoingCache = nil
	m.incomingCache = nil
	m.topoCache = nil
	m.pathsCache = nil
	m.fieldSizeCache = nil
	m.definitePrereqs = nil
}

// TypeEnv returns an expr.TypeEnv resolving every field name to its
// lattice, plus the "Message" pseudo-variable (Any, the whole-message
// attribute prefix).
func (m *Message) TypeEnv() expr.TypeEnv {
	env := expr.MapEnv{"Message": rftypes.AnyLattice()}
	for name, t := range m.Types {
		env[name] = t.Lattice()
	}
	return env
}
