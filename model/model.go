package model

import (
	"fmt"
	"sort"
	"sync"
)

// Model is a tree of nodes populated asynchronously from network responses.
// All exported methods are safe for concurrent use.
type Model struct {
	cfg Config

	mu      sync.RWMutex
	root    *Node
	byID    map[string]*Node
	actions map[*Action]struct{}
	lastErr *Error
	keys    map[string]struct{}

	listenerMu   sync.Mutex
	listeners    map[int]func(Event)
	nextListener int
}

// New creates a model from the given config
func New(cfg Config) (*Model, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("model: config needs a Source")
	}
	cfg = cfg.withDefaults()
	m := &Model{
		cfg:       cfg,
		byID:      map[string]*Node{},
		actions:   map[*Action]struct{}{},
		keys:      map[string]struct{}{},
		listeners: map[int]func(Event){},
	}
	m.initRoot()
	return m, nil
}

func (m *Model) initRoot() {
	// The pagination instance is shared across root rebuilds; forget what it
	// loaded but keep its configuration (direction, page size, headers).
	m.cfg.RootPagination.ResetLoaded()
	m.cfg.RootPagination.RequestReload()
	m.root = newNode(nil, nil)
	m.root.EnableChildren(m.cfg.RootPolicy, m.cfg.RootPagination)
	m.byID[m.root.id] = m.root
}

// Root returns the invisible root node
func (m *Model) Root() *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.root
}

// RowCount returns the number of children of node; nil means the root
func (m *Model) RowCount(node *Node) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolve(node).ChildCount()
}

// ChildAt returns the child of node at the given row; nil node means the root
func (m *Model) ChildAt(node *Node, row int) *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolve(node).Child(row)
}

// NodeByID looks a node up by its stable ID
func (m *Model) NodeByID(id string) *Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byID[id]
}

// Field returns one field value of node under the model lock. Use this
// instead of Node.Field when loads may be running, e.g. from view render
// code.
func (m *Model) Field(node *Node, name string) any {
	if node == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return node.fields[name]
}

// FieldsOf returns a copy of node's fields under the model lock
func (m *Model) FieldsOf(node *Node) map[string]any {
	if node == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return node.Fields()
}

// Keys returns every field name seen in loaded data, sorted. Views use this
// to discover available columns.
func (m *Model) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.keys))
	for k := range m.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LastError returns the most recent load error, or nil
func (m *Model) LastError() *Error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// resolve maps the nil node to the root. Callers hold the mutex.
func (m *Model) resolve(node *Node) *Node {
	if node == nil {
		return m.root
	}
	return node
}

// Reset discards all loaded data and running loads, restoring the model to
// its initial state
func (m *Model) Reset() {
	m.mu.Lock()
	for a := range m.actions {
		a.invalidate()
	}
	m.actions = map[*Action]struct{}{}
	m.byID = map[string]*Node{}
	m.keys = map[string]struct{}{}
	m.lastErr = nil
	m.initRoot()
	m.mu.Unlock()

	m.emit(Event{Kind: EventReset})
}

// SetField assigns one field value on node and announces the change
func (m *Model) SetField(node *Node, name string, value any) {
	if node == nil {
		return
	}
	m.mu.Lock()
	node.setField(name, value)
	m.keys[name] = struct{}{}
	m.mu.Unlock()

	m.emit(Event{Kind: EventNodeChanged, Node: node})
}

// RemoveRow removes the child of node at the given row. Loads running for
// the removed subtree are invalidated.
func (m *Model) RemoveRow(node *Node, row int) error {
	return m.RemoveRows(node, row, 1)
}

// RemoveRows removes count children of node starting at row
func (m *Model) RemoveRows(node *Node, row, count int) error {
	m.mu.Lock()
	parent := m.resolve(node)
	if row < 0 || count < 1 || row+count > parent.ChildCount() {
		m.mu.Unlock()
		return fmt.Errorf("remove rows %d..%d: out of range (%d children)", row, row+count-1, parent.ChildCount())
	}
	for _, c := range parent.children[row : row+count] {
		m.dropSubtree(c)
	}
	parent.children = append(parent.children[:row], parent.children[row+count:]...)
	m.mu.Unlock()

	m.emit(Event{Kind: EventRowsRemoved, Node: parent, First: row, Last: row + count - 1})
	return nil
}

// dropSubtree forgets a node and its descendants and invalidates their
// running loads. Callers hold the mutex and detach the node themselves.
func (m *Model) dropSubtree(node *Node) {
	delete(m.byID, node.id)
	for a := range m.actions {
		if a.node == node {
			a.invalidate()
			delete(m.actions, a)
		}
	}
	for _, c := range node.children {
		m.dropSubtree(c)
	}
	node.parent = nil
}

// buildSubtree turns one decoded item into a node with its statically nested
// children. Returns nil if PrepareItem dropped the item. Callers hold the
// mutex.
func (m *Model) buildSubtree(parent *Node, fields map[string]any) *Node {
	if m.cfg.PrepareItem != nil {
		fields = m.cfg.PrepareItem(parent, fields)
		if fields == nil {
			return nil
		}
	}

	var nested []map[string]any
	if m.cfg.ChildrenOf != nil {
		nested = m.cfg.ChildrenOf(fields)
	}

	node := newNode(parent, fields)
	m.byID[node.id] = node
	for k := range fields {
		m.keys[k] = struct{}{}
	}
	if m.cfg.Configure != nil {
		m.cfg.Configure(node)
	}

	for _, childFields := range nested {
		if child := m.buildSubtree(node, childFields); child != nil {
			node.children = append(node.children, child)
		}
	}
	return node
}

// buildNodes turns decoded items into sorted sibling nodes. Callers hold the
// mutex; the nodes are not yet attached to the parent.
func (m *Model) buildNodes(parent *Node, items []map[string]any) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, fields := range items {
		if n := m.buildSubtree(parent, fields); n != nil {
			nodes = append(nodes, n)
		}
	}
	if m.cfg.SortChildren != nil {
		m.cfg.SortChildren(nodes)
	}
	return nodes
}

// removeChildren detaches and forgets all children of node. Callers hold the
// mutex; the returned count is the number of removed rows.
func (m *Model) removeChildren(node *Node) int {
	count := len(node.children)
	for _, c := range node.children {
		m.dropSubtree(c)
	}
	node.children = nil
	return count
}

func (m *Model) registerAction(a *Action) {
	m.actions[a] = struct{}{}
}

func (m *Model) unregisterAction(a *Action) {
	delete(m.actions, a)
}

// Actions returns the currently running load actions
func (m *Model) Actions() []*Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Action, 0, len(m.actions))
	for a := range m.actions {
		out = append(out, a)
	}
	return out
}
