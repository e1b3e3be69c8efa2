package model

// Package model implements a hierarchical item model whose nodes load their
// children and detail data asynchronously over the network. Nodes carry a
// per-node loading policy and pagination strategy, loads are represented as
// cancellable actions, and observers subscribe to change events for direct
// binding in the UI.
