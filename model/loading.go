package model

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ChildrenLoadedSeparately returns true if node's children are fetched over
// the network rather than nested in the parent's data. Nil node means the
// root.
func (m *Model) ChildrenLoadedSeparately(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolve(node).childrenLoadable()
}

// HasLoadedChildren returns true if node's pagination has loaded any data
func (m *Model) HasLoadedChildren(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	if n.child == nil {
		return false
	}
	return n.child.pagination.HasLoaded()
}

// ChildrenState returns the children load state of node, or Unknown if its
// children are not loaded separately
func (m *Model) ChildrenState(node *Node) LoadState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	if n.child == nil {
		return LoadStateUnknown
	}
	return n.child.state
}

// ChildrenPolicy returns the children load policy of node
func (m *Model) ChildrenPolicy(node *Node) LoadPolicy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	if n.child == nil {
		return PolicyDoNotLoad
	}
	return n.child.policy
}

// SetChildrenPolicy changes the children load policy of node. Switching away
// from DoNotLoad makes an Unknown state Idle; switching to DoNotLoad on a
// node with no running load makes it Unknown.
func (m *Model) SetChildrenPolicy(node *Node, policy LoadPolicy) {
	m.mu.Lock()
	n := m.resolve(node)
	if n.child == nil || n.child.policy == policy {
		m.mu.Unlock()
		return
	}
	n.child.policy = policy
	stateChanged := false
	if policy == PolicyDoNotLoad {
		if !n.child.state.IsLoading() {
			n.child.state = LoadStateUnknown
			stateChanged = true
		}
	} else if n.child.state == LoadStateUnknown {
		n.child.state = LoadStateIdle
		stateChanged = true
	}
	m.mu.Unlock()

	events := []Event{{Kind: EventChildrenPolicyChanged, Node: n}}
	if stateChanged {
		events = append(events, Event{Kind: EventChildrenStateChanged, Node: n})
	}
	m.emit(events...)
}

// PaginationOf returns the pagination of node's children, or nil if its
// children are not loaded separately
func (m *Model) PaginationOf(node *Node) Pagination {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	if n.child == nil {
		return nil
	}
	return n.child.pagination
}

// canStartChildrenLoad is the shared gate of all load entry points. Callers
// hold the mutex. At most one load per node runs at a time: Loading blocks.
func canStartChildrenLoad(n *Node, trigger LoadPolicy) bool {
	if n.child == nil {
		return false
	}
	return n.child.policy.Allows(trigger) && n.child.state.CanStartLoad()
}

// CanReload returns true if node's children can be reloaded from scratch
func (m *Model) CanReload(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	return canStartChildrenLoad(n, PolicyManual) && n.child.pagination.CanReload()
}

// Reload drops node's loaded children and loads them again from the start
func (m *Model) Reload(node *Node) (*Action, error) {
	return m.startChildrenLoad(node, PolicyManual, true, Pagination.RequestReload)
}

// CanLoadNext returns true if the next portion of node's children can be
// loaded
func (m *Model) CanLoadNext(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	return canStartChildrenLoad(n, PolicyManual) && n.child.pagination.CanLoadNext()
}

// LoadNext loads the next portion of node's children
func (m *Model) LoadNext(node *Node) (*Action, error) {
	return m.startChildrenLoad(node, PolicyManual, false, Pagination.RequestNext)
}

// CanLoadPrevious returns true if the previous portion of node's children
// can be loaded
func (m *Model) CanLoadPrevious(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	return canStartChildrenLoad(n, PolicyManual) && n.child.pagination.CanLoadPrevious()
}

// LoadPrevious loads the previous portion of node's children
func (m *Model) LoadPrevious(node *Node) (*Action, error) {
	return m.startChildrenLoad(node, PolicyManual, false, Pagination.RequestPrevious)
}

// CanFetchMore is the view-driven counterpart of CanLoadNext. It returns
// true only for nodes whose policy allows automatic loads.
func (m *Model) CanFetchMore(node *Node) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := m.resolve(node)
	return canStartChildrenLoad(n, PolicyAuto) && n.child.pagination.CanLoadNext()
}

// FetchMore loads the next portion of node's children when triggered by a
// view. A no-op when CanFetchMore is false.
func (m *Model) FetchMore(node *Node) {
	if _, err := m.startChildrenLoad(node, PolicyAuto, false, Pagination.RequestNext); err != nil {
		log.Printf("fetch more skipped: %v", err)
	}
}

// startChildrenLoad moves the pagination via request, flips the node to
// Loading, and spawns the fetch goroutine.
func (m *Model) startChildrenLoad(node *Node, trigger LoadPolicy, reload bool, request func(Pagination)) (*Action, error) {
	m.mu.Lock()
	n := m.resolve(node)
	if !canStartChildrenLoad(n, trigger) {
		m.mu.Unlock()
		return nil, fmt.Errorf("children of node %s not loadable (state %s, policy %s)",
			n.id, m.lockedChildrenState(n), m.lockedChildrenPolicy(n))
	}
	cl := n.child
	request(cl.pagination)
	query := cl.pagination.Query()
	cl.state = LoadStateLoading
	cl.reloading = reload

	ctx, cancel := context.WithCancel(context.Background())
	action := newAction(ActionChildrenLoad, n, cancel)
	m.registerAction(action)
	m.mu.Unlock()

	m.emit(
		Event{Kind: EventChildrenLoadingStarted, Node: n},
		Event{Kind: EventChildrenStateChanged, Node: n},
	)

	go m.runChildrenLoad(ctx, action, node, n, query)
	return action, nil
}

func (m *Model) lockedChildrenState(n *Node) LoadState {
	if n.child == nil {
		return LoadStateUnknown
	}
	return n.child.state
}

func (m *Model) lockedChildrenPolicy(n *Node) LoadPolicy {
	if n.child == nil {
		return PolicyDoNotLoad
	}
	return n.child.policy
}

// runChildrenLoad performs the fetch and hands the result to the finish
// step. node is the caller's handle (possibly nil for the root), n the
// resolved node.
func (m *Model) runChildrenLoad(ctx context.Context, action *Action, node, n *Node, query PageQuery) {
	srcNode := node
	if n.IsRoot() {
		srcNode = nil
	}
	resp, err := m.cfg.Source.FetchList(ctx, srcNode, query)
	if err == nil && resp == nil {
		err = fmt.Errorf("source returned no response")
	}
	m.finishChildrenLoad(ctx, action, node, n, resp, err)
}

func (m *Model) finishChildrenLoad(ctx context.Context, action *Action, node, n *Node, resp *Response, err error) {
	m.mu.Lock()
	if action.invalidated() {
		m.unregisterAction(action)
		m.mu.Unlock()
		return
	}

	cl := n.child
	reloading := cl.reloading
	cl.reloading = false

	loadErr := m.childrenLoadError(ctx, n, resp, err)

	var items []map[string]any
	if loadErr == nil {
		var derr error
		items, derr = m.cfg.DecodeList(resp)
		if derr != nil {
			loadErr = &Error{Kind: ErrorParse, Summary: derr.Error(), Detail: string(resp.Body), Node: n}
		}
	}

	if loadErr == nil {
		if reloading {
			cl.pagination.ResetLoaded()
		}
		if uerr := cl.pagination.Update(resp); uerr != nil {
			loadErr = &Error{Kind: ErrorPagination, Summary: uerr.Error(), Node: n}
		}
	}

	if loadErr != nil {
		// Loaded rows stay untouched on failure
		cl.state = LoadStateFailed
		m.lastErr = loadErr
		m.unregisterAction(action)
		m.mu.Unlock()

		m.emit(
			Event{Kind: EventError, Node: n, Err: loadErr},
			Event{Kind: EventChildrenStateChanged, Node: n},
			Event{Kind: EventChildrenLoadingFinished, Node: n},
		)
		action.finish(loadErr)
		return
	}

	removed := 0
	if reloading || cl.pagination.ReplacesLoaded() {
		removed = m.removeChildren(n)
	}
	nodes := m.buildNodes(n, items)
	first := len(n.children)
	n.children = append(n.children, nodes...)
	last := first + len(nodes) - 1

	cl.state = LoadStateLoaded
	m.unregisterAction(action)
	m.mu.Unlock()

	events := make([]Event, 0, 4)
	if removed > 0 {
		events = append(events, Event{Kind: EventRowsRemoved, Node: n, First: 0, Last: removed - 1})
	}
	if len(nodes) > 0 {
		events = append(events, Event{Kind: EventRowsInserted, Node: n, First: first, Last: last})
	}
	events = append(events,
		Event{Kind: EventChildrenStateChanged, Node: n},
		Event{Kind: EventChildrenLoadingFinished, Node: n},
	)
	m.emit(events...)
	action.finish(nil)
}

// childrenLoadError classifies transport and HTTP failures. Callers hold the
// mutex.
func (m *Model) childrenLoadError(ctx context.Context, n *Node, resp *Response, err error) *Error {
	if err != nil {
		kind := ErrorNetwork
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			kind = ErrorCanceled
		}
		return &Error{Kind: kind, Summary: err.Error(), Node: n}
	}
	if resp.StatusCode >= 400 {
		return &Error{
			Kind:    ErrorNetwork,
			Summary: fmt.Sprintf("server answered %d", resp.StatusCode),
			Detail:  string(resp.Body),
			Node:    n,
		}
	}
	return nil
}
