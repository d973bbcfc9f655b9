// Package tree overlays bidirectional navigation onto a CDDL AST.
//
// AST ownership is strictly top-down, so no node can reference its
// parent natively. Build walks a document and records every parent/child
// edge into an arena: a flat, append-only store of wrapped nodes
// addressed by stable integer index. The arena borrows the document's
// nodes without cloning them, so the document must stay alive and
// unmodified for the lifetime of the Tree.
//
// Nodes are interned by structural equality, not identity: two
// structurally identical subtrees occurring at different positions
// collapse to one arena slot. Under duplicate substructure the index is
// therefore a DAG, and a slot can appear in several parents' child lists
// while its own parent index reflects only the first assignment.
package tree

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/internal/logging"
)

// ErrOverwrite reports an attempt to assign a second parent to a node
// that already has one. It is returned during Build only under
// FailOnReparent; the default policy keeps the first parent.
var ErrOverwrite = errors.New("attempt to overwrite existing tree node parent")

// noParent marks an arena slot whose parent index is unset.
const noParent = -1

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	logger         *slog.Logger
	failOnReparent bool
}

// WithLogger sets the logger for trace output during the build walk.
// If not set, no logging occurs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *buildConfig) { c.logger = logger }
}

// FailOnReparent makes Build return ErrOverwrite when a node would be
// assigned a second parent, instead of keeping the first parent
// silently. Structural interning makes re-parenting reachable from
// ordinary documents with duplicate substructure, so this is off by
// default.
func FailOnReparent() Option {
	return func(c *buildConfig) { c.failOnReparent = true }
}

// node is one arena slot: a borrowed AST node with its recorded edges.
type node struct {
	val      ast.Node
	parent   int
	children []int
}

// Tree is the queryable parent index over one document. It is read-only
// after Build returns.
type Tree struct {
	arena []node
}

// Build walks the document and returns its parent index. Building twice
// over the same document yields identical parent/child relationships.
func Build(doc *ast.CDDL, opts ...Option) (*Tree, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	pv := &parentVisitor{
		tree:           &Tree{},
		failOnReparent: cfg.failOnReparent,
		Logger:         logging.Logger{L: cfg.logger},
	}
	if err := pv.VisitCDDL(doc); err != nil {
		return nil, err
	}

	pv.Log(slog.LevelDebug, "parent index built",
		slog.Int("nodes", len(pv.tree.arena)))
	return pv.tree, nil
}

// intern returns the arena index of a slot structurally equal to val,
// appending a new slot if none exists.
func (t *Tree) intern(val ast.Node) int {
	if idx, ok := t.find(val); ok {
		return idx
	}
	t.arena = append(t.arena, node{val: val, parent: noParent})
	return len(t.arena) - 1
}

// find locates the arena slot structurally equal to val without
// mutating the arena. Queries go through find, never intern.
func (t *Tree) find(val ast.Node) (int, bool) {
	for i := range t.arena {
		if reflect.DeepEqual(t.arena[i].val, val) {
			return i, true
		}
	}
	return 0, false
}

// link records a parent/child edge. The child's parent index is set only
// if unset: the first recorded parent wins. Membership in the parent's
// child list is appended regardless, which is what makes duplicate
// substructure produce DAG-shaped indexes.
func (t *Tree) link(parent, child int, failOnReparent bool) error {
	if t.arena[child].parent == noParent {
		t.arena[child].parent = parent
	} else if failOnReparent {
		return ErrOverwrite
	}
	t.arena[parent].children = append(t.arena[parent].children, child)
	return nil
}

// Len returns the number of arena slots.
func (t *Tree) Len() int {
	return len(t.arena)
}

// Contains reports whether a node structurally equal to n was recorded
// during the build walk.
func (t *Tree) Contains(n ast.Node) bool {
	_, ok := t.find(n)
	return ok
}

// ParentNode returns the recorded parent of the node structurally equal
// to child, untyped. Returns false when the child is unknown or is the
// document root.
func (t *Tree) ParentNode(child ast.Node) (ast.Node, bool) {
	idx, ok := t.find(child)
	if !ok {
		return nil, false
	}
	p := t.arena[idx].parent
	if p == noParent {
		return nil, false
	}
	return t.arena[p].val, true
}

// ChildNodes returns the recorded children of the node structurally
// equal to n, in walk order. Returns nil when the node is unknown.
func (t *Tree) ChildNodes(n ast.Node) []ast.Node {
	idx, ok := t.find(n)
	if !ok {
		return nil
	}
	children := make([]ast.Node, 0, len(t.arena[idx].children))
	for _, c := range t.arena[idx].children {
		children = append(children, t.arena[c].val)
	}
	return children
}

// Parent returns the parent of child typed as P. The lookup is
// structural and never mutates the arena. Returns false when the child
// is unknown, has no parent, or the parent's kind is not P.
func Parent[P ast.Node](t *Tree, child ast.Node) (P, bool) {
	var zero P
	p, ok := t.ParentNode(child)
	if !ok {
		return zero, false
	}
	parent, ok := p.(P)
	if !ok {
		return zero, false
	}
	return parent, true
}
