package model

import (
	"context"
	"errors"
	"fmt"
)

// DetailsLoadedSeparately returns true if node carries detail data fetched
// over the network
func (m *Model) DetailsLoadedSeparately(node *Node) bool {
	if node == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return node.detailsLoadable()
}

// DetailsState returns the details load state of node, or Unknown if it has
// no separately loaded details
func (m *Model) DetailsState(node *Node) LoadState {
	if node == nil {
		return LoadStateUnknown
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if node.detail == nil {
		return LoadStateUnknown
	}
	return node.detail.state
}

// HasLoadedDetails returns true if node's details have been loaded at least
// once
func (m *Model) HasLoadedDetails(node *Node) bool {
	if node == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return node.detail != nil && node.detail.loaded
}

// CanLoadDetails returns true if a details load can be started for node
func (m *Model) CanLoadDetails(node *Node) bool {
	if node == nil || m.cfg.Details == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return node.detail != nil && node.detail.state.CanStartLoad()
}

// LoadDetails fetches node's detail data and merges it into the node's
// fields
func (m *Model) LoadDetails(node *Node) (*Action, error) {
	if node == nil {
		return nil, fmt.Errorf("details need a node")
	}
	if m.cfg.Details == nil {
		return nil, fmt.Errorf("model has no detail source")
	}
	m.mu.Lock()
	if node.detail == nil || !node.detail.state.CanStartLoad() {
		state := LoadStateUnknown
		if node.detail != nil {
			state = node.detail.state
		}
		m.mu.Unlock()
		return nil, fmt.Errorf("details of node %s not loadable (state %s)", node.id, state)
	}
	node.detail.state = LoadStateLoading

	ctx, cancel := context.WithCancel(context.Background())
	action := newAction(ActionDetailsLoad, node, cancel)
	m.registerAction(action)
	m.mu.Unlock()

	m.emit(
		Event{Kind: EventDetailsLoadingStarted, Node: node},
		Event{Kind: EventDetailsStateChanged, Node: node},
	)

	go m.runDetailsLoad(ctx, action, node)
	return action, nil
}

func (m *Model) runDetailsLoad(ctx context.Context, action *Action, node *Node) {
	resp, err := m.cfg.Details.FetchDetails(ctx, node)
	if err == nil && resp == nil {
		err = fmt.Errorf("detail source returned no response")
	}
	m.finishDetailsLoad(ctx, action, node, resp, err)
}

func (m *Model) finishDetailsLoad(ctx context.Context, action *Action, node *Node, resp *Response, err error) {
	m.mu.Lock()
	if action.invalidated() {
		m.unregisterAction(action)
		m.mu.Unlock()
		return
	}

	var loadErr *Error
	var fields map[string]any

	switch {
	case err != nil:
		kind := ErrorNetwork
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			kind = ErrorCanceled
		}
		loadErr = &Error{Kind: kind, Summary: err.Error(), Node: node}
	case resp.StatusCode >= 400:
		loadErr = &Error{
			Kind:    ErrorNetwork,
			Summary: fmt.Sprintf("server answered %d", resp.StatusCode),
			Detail:  string(resp.Body),
			Node:    node,
		}
	default:
		var derr error
		fields, derr = m.cfg.DecodeObject(resp)
		if derr != nil {
			loadErr = &Error{Kind: ErrorParse, Summary: derr.Error(), Detail: string(resp.Body), Node: node}
		}
	}

	if loadErr != nil {
		node.detail.state = LoadStateFailed
		m.lastErr = loadErr
		m.unregisterAction(action)
		m.mu.Unlock()

		m.emit(
			Event{Kind: EventError, Node: node, Err: loadErr},
			Event{Kind: EventDetailsStateChanged, Node: node},
			Event{Kind: EventDetailsLoadingFinished, Node: node},
		)
		action.finish(loadErr)
		return
	}

	if m.cfg.PrepareDetails != nil {
		fields = m.cfg.PrepareDetails(node, fields)
	}
	node.mergeFields(fields)
	for k := range fields {
		m.keys[k] = struct{}{}
	}
	node.detail.state = LoadStateLoaded
	node.detail.loaded = true
	m.unregisterAction(action)
	m.mu.Unlock()

	m.emit(
		Event{Kind: EventNodeChanged, Node: node},
		Event{Kind: EventDetailsStateChanged, Node: node},
		Event{Kind: EventDetailsLoadingFinished, Node: node},
	)
	action.finish(nil)
}
