package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/fynex/netmodel/model"
)

// List is a widget.List showing the children of one model node. It refreshes
// itself when the model changes and, for nodes with an automatic load
// policy, loads further pages as the user scrolls to the end.
type List struct {
	widget.List

	model  *model.Model
	parent *model.Node

	createRow func() fyne.CanvasObject
	updateRow func(node *model.Node, o fyne.CanvasObject)

	unsubscribe func()
}

// NewList creates a list of parent's children rendering the given field as a
// label. A nil parent shows the top-level rows.
func NewList(m *model.Model, parent *model.Node, field string) *List {
	return NewCustomList(m, parent,
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(node *model.Node, o fyne.CanvasObject) {
			text := ""
			if v := m.Field(node, field); v != nil {
				text = fmt.Sprintf("%v", v)
			}
			o.(*widget.Label).SetText(text)
		},
	)
}

// NewCustomList creates a list with caller-provided row construction and
// binding. updateRow runs on the render thread while loads may be running,
// so it must read field data through Model.Field/Model.FieldsOf.
func NewCustomList(m *model.Model, parent *model.Node, createRow func() fyne.CanvasObject, updateRow func(node *model.Node, o fyne.CanvasObject)) *List {
	l := &List{
		model:     m,
		parent:    parent,
		createRow: createRow,
		updateRow: updateRow,
	}
	l.List.Length = l.length
	l.List.CreateItem = l.createItem
	l.List.UpdateItem = l.updateItem
	l.ExtendBaseWidget(l)

	l.unsubscribe = m.Subscribe(l.onEvent)
	return l
}

// Node returns the model node shown at the given row
func (l *List) Node(row int) *model.Node {
	return l.model.ChildAt(l.parent, row)
}

// Close drops the list's model subscription. Call it when the list leaves
// the screen for good.
func (l *List) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

func (l *List) length() int {
	return l.model.RowCount(l.parent)
}

func (l *List) createItem() fyne.CanvasObject {
	return l.createRow()
}

func (l *List) updateItem(id widget.ListItemID, o fyne.CanvasObject) {
	node := l.model.ChildAt(l.parent, id)
	if node == nil {
		return
	}
	l.updateRow(node, o)

	// Rendering the last row means the user scrolled to the end
	if id == l.model.RowCount(l.parent)-1 && l.model.CanFetchMore(l.parent) {
		l.model.FetchMore(l.parent)
	}
}

// resolvedParent returns the node events of this list carry. The root node
// is re-read from the model because Reset replaces it.
func (l *List) resolvedParent() *model.Node {
	if l.parent != nil {
		return l.parent
	}
	return l.model.Root()
}

func (l *List) onEvent(ev model.Event) {
	switch ev.Kind {
	case model.EventReset:
	case model.EventRowsInserted, model.EventRowsRemoved,
		model.EventChildrenStateChanged, model.EventChildrenLoadingStarted, model.EventChildrenLoadingFinished:
		if ev.Node != l.resolvedParent() {
			return
		}
	case model.EventNodeChanged:
		if ev.Node == nil || ev.Node.Parent() != l.resolvedParent() {
			return
		}
	default:
		return
	}
	fyne.Do(l.Refresh)
}
