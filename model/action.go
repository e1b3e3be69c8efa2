package model

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ActionKind identifies what a running action loads
type ActionKind string

const (
	// ActionChildrenLoad is a load of a node's children
	ActionChildrenLoad ActionKind = "ChildrenLoad"

	// ActionDetailsLoad is a load of a node's detail data
	ActionDetailsLoad ActionKind = "DetailsLoad"
)

// Action is a handle to one in-flight load. The model returns an Action from
// every operation that starts a load; callers may ignore it, cancel it, or
// wait for it to finish.
//
// An action whose node is removed before the load completes is invalidated:
// its result is discarded and Wait returns ErrInvalidated.
type Action struct {
	id     string
	kind   ActionKind
	node   *Node
	cancel context.CancelFunc

	mu       sync.Mutex
	err      *Error
	finished bool
	invalid  bool
	done     chan struct{}
}

func newAction(kind ActionKind, node *Node, cancel context.CancelFunc) *Action {
	return &Action{
		id:     uuid.NewString(),
		kind:   kind,
		node:   node,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID returns the action's unique identifier
func (a *Action) ID() string { return a.id }

// Kind returns what the action loads
func (a *Action) Kind() ActionKind { return a.kind }

// Node returns the node the action is loading for; the model root for loads
// of the top-level rows
func (a *Action) Node() *Node { return a.node }

// Cancel aborts the underlying request. The action still finishes, with a
// Canceled error.
func (a *Action) Cancel() {
	a.cancel()
}

// Done returns a channel closed when the action has finished or was
// invalidated
func (a *Action) Done() <-chan struct{} { return a.done }

// Err returns the load error after the action finished, or nil on success.
// ErrInvalidated is returned for invalidated actions.
func (a *Action) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.invalid {
		return ErrInvalidated
	}
	if a.err != nil {
		return a.err
	}
	return nil
}

// Wait blocks until the action finishes, is invalidated, or ctx expires.
// It returns the load error, ErrInvalidated, or ctx.Err().
func (a *Action) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finish records the outcome and releases waiters. Safe to call once.
func (a *Action) finish(err *Error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return
	}
	a.finished = true
	a.err = err
	close(a.done)
}

// invalidate marks the action's result as discarded and cancels the request
func (a *Action) invalidate() {
	a.mu.Lock()
	if a.finished {
		a.mu.Unlock()
		return
	}
	a.finished = true
	a.invalid = true
	close(a.done)
	a.mu.Unlock()
	a.cancel()
}

// invalidated reports whether the action was invalidated
func (a *Action) invalidated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.invalid
}
