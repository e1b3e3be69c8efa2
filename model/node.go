package model

import (
	"github.com/google/uuid"
)

// childLoading holds the children-loading bookkeeping of a node. It exists
// only on nodes whose children are loaded separately.
type childLoading struct {
	policy     LoadPolicy
	state      LoadState
	pagination Pagination
	reloading  bool
}

// detailLoading holds the details-loading bookkeeping of a node
type detailLoading struct {
	state  LoadState
	loaded bool
}

// Node is a single item of the model. Every node carries a stable unique ID
// and a flat set of named fields decoded from the server data.
//
// Node accessors do not lock; use the Model methods (RowCount, ChildAt,
// NodeByID, Field, FieldsOf) when reading while loads may be running, or
// call accessors from inside a Subscribe callback. Detail loads and SetField
// rewrite the field map, so unlocked Field reads race with them.
type Node struct {
	id       string
	fields   map[string]any
	parent   *Node
	children []*Node
	child    *childLoading
	detail   *detailLoading
}

func newNode(parent *Node, fields map[string]any) *Node {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Node{
		id:     uuid.NewString(),
		fields: fields,
		parent: parent,
	}
}

// ID returns the node's stable unique identifier
func (n *Node) ID() string { return n.id }

// Field returns the named field value, or nil if the field is absent
func (n *Node) Field(name string) any { return n.fields[name] }

// Fields returns a copy of the node's field map
func (n *Node) Fields() map[string]any {
	out := make(map[string]any, len(n.fields))
	for k, v := range n.fields {
		out[k] = v
	}
	return out
}

// Parent returns the node's parent, or nil for the root
func (n *Node) Parent() *Node { return n.parent }

// IsRoot returns true for the model root node
func (n *Node) IsRoot() bool { return n.parent == nil }

// Row returns the node's position under its parent, or -1 for the root
func (n *Node) Row() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// ChildCount returns the number of children currently held by the node
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the child at the given row, or nil if out of range
func (n *Node) Child(row int) *Node {
	if row < 0 || row >= len(n.children) {
		return nil
	}
	return n.children[row]
}

// EnableChildren marks the node's children as loaded separately over the
// network, with the given policy and pagination. Called from Configure (or by
// the model for the root); a node without it holds only statically attached
// children.
func (n *Node) EnableChildren(policy LoadPolicy, pagination Pagination) {
	if pagination == nil {
		pagination = NewAllAtOnce()
	}
	state := LoadStateIdle
	if policy == PolicyDoNotLoad {
		state = LoadStateUnknown
	}
	n.child = &childLoading{
		policy:     policy,
		state:      state,
		pagination: pagination,
	}
}

// EnableDetails marks the node as having detail data loaded separately.
// Called from Configure.
func (n *Node) EnableDetails() {
	n.detail = &detailLoading{state: LoadStateIdle}
}

func (n *Node) childrenLoadable() bool { return n.child != nil }

func (n *Node) detailsLoadable() bool { return n.detail != nil }

// setField assigns one field value. Callers emit EventNodeChanged.
func (n *Node) setField(name string, value any) {
	n.fields[name] = value
}

// mergeFields copies fields into the node, overwriting existing keys
func (n *Node) mergeFields(fields map[string]any) {
	for k, v := range fields {
		n.fields[k] = v
	}
}
