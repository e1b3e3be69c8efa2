package model

// EventKind identifies the kind of model change an Event describes
type EventKind int

const (
	// EventRowsInserted means rows First..Last were inserted under Node
	EventRowsInserted EventKind = iota

	// EventRowsRemoved means rows First..Last were removed from Node
	EventRowsRemoved

	// EventNodeChanged means the field data of Node changed
	EventNodeChanged

	// EventChildrenLoadingStarted means a children load started for Node
	EventChildrenLoadingStarted

	// EventChildrenLoadingFinished means a children load finished for Node
	EventChildrenLoadingFinished

	// EventChildrenStateChanged means the children LoadState of Node changed
	EventChildrenStateChanged

	// EventChildrenPolicyChanged means the children LoadPolicy of Node changed
	EventChildrenPolicyChanged

	// EventDetailsLoadingStarted means a details load started for Node
	EventDetailsLoadingStarted

	// EventDetailsLoadingFinished means a details load finished for Node
	EventDetailsLoadingFinished

	// EventDetailsStateChanged means the details LoadState of Node changed
	EventDetailsStateChanged

	// EventError means an error occurred; Err carries it
	EventError

	// EventReset means the whole model was reset
	EventReset
)

// Event describes a single model change. Node is the node the change
// happened on; for loads of the top-level rows it is the root node. Only
// EventReset carries a nil Node. First and Last are only meaningful for row
// insertion and removal.
type Event struct {
	Kind  EventKind
	Node  *Node
	First int
	Last  int
	Err   *Error
}

// Subscribe registers fn to be called for every model change and returns a
// function that removes the subscription.
//
// Callbacks run on the goroutine that completed the load, not on the UI
// thread; UI code must hop threads itself (the ui package does this via
// fyne.Do). The model mutex is not held during callbacks, so model accessors
// may be called from them.
func (m *Model) Subscribe(fn func(Event)) func() {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	id := m.nextListener
	m.nextListener++
	m.listeners[id] = fn
	return func() {
		m.listenerMu.Lock()
		delete(m.listeners, id)
		m.listenerMu.Unlock()
	}
}

// emit delivers events to all subscribers; callers must not hold the model
// mutex.
func (m *Model) emit(events ...Event) {
	m.listenerMu.Lock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.listenerMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
