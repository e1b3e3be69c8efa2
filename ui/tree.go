package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/fynex/netmodel/model"
)

// Tree is a widget.Tree over a whole netmodel Model. Branch IDs are the
// stable node IDs; opening a branch loads its children when its policy
// allows automatic loads.
type Tree struct {
	widget.Tree

	model *model.Model
	field string

	unsubscribe func()
}

// NewTree creates a tree over m rendering the given field as node labels
func NewTree(m *model.Model, field string) *Tree {
	t := &Tree{
		model: m,
		field: field,
	}
	t.Tree.ChildUIDs = t.childUIDs
	t.Tree.IsBranch = t.isBranch
	t.Tree.CreateNode = t.createNode
	t.Tree.UpdateNode = t.updateNode
	t.Tree.OnBranchOpened = t.branchOpened
	t.ExtendBaseWidget(t)

	t.unsubscribe = m.Subscribe(func(model.Event) {
		fyne.Do(t.Refresh)
	})
	return t
}

// NodeFor returns the model node behind a tree ID, or nil for the invisible
// root
func (t *Tree) NodeFor(uid widget.TreeNodeID) *model.Node {
	if uid == "" {
		return nil
	}
	return t.model.NodeByID(uid)
}

// Close drops the tree's model subscription
func (t *Tree) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Tree) childUIDs(uid widget.TreeNodeID) []widget.TreeNodeID {
	node := t.NodeFor(uid)
	if uid != "" && node == nil {
		return nil
	}
	count := t.model.RowCount(node)
	ids := make([]widget.TreeNodeID, 0, count)
	for i := 0; i < count; i++ {
		if c := t.model.ChildAt(node, i); c != nil {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

func (t *Tree) isBranch(uid widget.TreeNodeID) bool {
	if uid == "" {
		return true
	}
	node := t.NodeFor(uid)
	if node == nil {
		return false
	}
	return node.ChildCount() > 0 || t.model.ChildrenLoadedSeparately(node)
}

func (t *Tree) createNode(branch bool) fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}

func (t *Tree) updateNode(uid widget.TreeNodeID, branch bool, o fyne.CanvasObject) {
	node := t.NodeFor(uid)
	if node == nil {
		return
	}
	text := ""
	if v := t.model.Field(node, t.field); v != nil {
		text = fmt.Sprintf("%v", v)
	}
	if t.model.ChildrenState(node).IsLoading() {
		text += " …"
	}
	o.(*widget.Label).SetText(text)
}

func (t *Tree) branchOpened(uid widget.TreeNodeID) {
	node := t.NodeFor(uid)
	if uid != "" && node == nil {
		return
	}
	if t.model.CanFetchMore(node) {
		t.model.FetchMore(node)
	}
}
