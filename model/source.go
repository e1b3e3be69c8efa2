package model

import (
	"context"
)

// Source fetches list data for a node's children. The model calls FetchList
// from a background goroutine; implementations must be safe for concurrent
// use.
//
// node is nil when loading the model root's children. A nil *Response with a
// nil error is treated as a transport failure.
type Source interface {
	FetchList(ctx context.Context, node *Node, query PageQuery) (*Response, error)
}

// DetailSource fetches detail data for a single node
type DetailSource interface {
	FetchDetails(ctx context.Context, node *Node) (*Response, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func(ctx context.Context, node *Node, query PageQuery) (*Response, error)

// FetchList calls f
func (f SourceFunc) FetchList(ctx context.Context, node *Node, query PageQuery) (*Response, error) {
	return f(ctx, node, query)
}

// DetailSourceFunc adapts a function to the DetailSource interface
type DetailSourceFunc func(ctx context.Context, node *Node) (*Response, error)

// FetchDetails calls f
func (f DetailSourceFunc) FetchDetails(ctx context.Context, node *Node) (*Response, error) {
	return f(ctx, node)
}

// Config describes how a Model loads and shapes its data. Source is the only
// required field; every hook has a sensible default.
type Config struct {
	// Source fetches children list data. Required.
	Source Source

	// Details fetches per-node detail data. Optional; detail operations
	// report Unknown state without it.
	Details DetailSource

	// RootPolicy is the load policy of the root's children.
	// Defaults to PolicyManual.
	RootPolicy LoadPolicy

	// RootPagination paginates the root's children.
	// Defaults to a fresh AllAtOnce.
	RootPagination Pagination

	// DecodeList maps a list response body to item field maps.
	// Defaults to JSON: an array of objects, or a single object treated as a
	// one-element list.
	DecodeList func(resp *Response) ([]map[string]any, error)

	// DecodeObject maps a detail response body to a field map.
	// Defaults to a JSON object.
	DecodeObject func(resp *Response) (map[string]any, error)

	// PrepareItem rewrites a decoded item before a node is built from it.
	// Returning nil fields drops the item.
	PrepareItem func(node *Node, fields map[string]any) map[string]any

	// ChildrenOf extracts statically nested children from a decoded item.
	// Extracted entries become child nodes and are recursed into.
	ChildrenOf func(fields map[string]any) []map[string]any

	// Configure runs on every freshly built node. This is where nodes call
	// EnableChildren and EnableDetails.
	Configure func(node *Node)

	// SortChildren orders freshly inserted sibling nodes before insertion.
	// Applied per load, not across accumulated pages.
	SortChildren func(nodes []*Node)

	// PrepareDetails rewrites decoded detail data before it is merged into
	// the node's fields
	PrepareDetails func(node *Node, fields map[string]any) map[string]any
}

// withDefaults returns a copy of the config with every optional field filled
func (c Config) withDefaults() Config {
	if c.RootPolicy == PolicyDoNotLoad {
		c.RootPolicy = PolicyManual
	}
	if c.RootPagination == nil {
		c.RootPagination = NewAllAtOnce()
	}
	if c.DecodeList == nil {
		c.DecodeList = decodeListJSON
	}
	if c.DecodeObject == nil {
		c.DecodeObject = decodeObjectJSON
	}
	return c
}
