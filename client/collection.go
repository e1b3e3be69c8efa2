package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fynex/netmodel/model"
)

// Collection adapts one REST collection endpoint to model.Source and
// model.DetailSource. The zero value is not usable; set Client and Path.
type Collection struct {
	Client *Client

	// Path is the collection endpoint, e.g. "/users"
	Path string

	// PageParam and PerPageParam name the pagination query parameters.
	// They default to "page" and "per_page".
	PageParam    string
	PerPageParam string

	// Query holds extra query parameters sent with every list request
	Query url.Values

	// ChildPath derives the list endpoint for a node's children. Without it
	// only the top-level rows can be loaded from this collection.
	ChildPath func(node *model.Node) string

	// DetailPath derives the detail endpoint of a node. Without it the
	// collection serves no detail data.
	DetailPath func(node *model.Node) string
}

// FetchList implements model.Source
func (c *Collection) FetchList(ctx context.Context, node *model.Node, query model.PageQuery) (*model.Response, error) {
	path := c.Path
	if node != nil {
		if c.ChildPath == nil {
			return nil, fmt.Errorf("collection %s has no child path", c.Path)
		}
		path = c.ChildPath(node)
	}

	values := url.Values{}
	for name, vs := range c.Query {
		values[name] = vs
	}
	if !query.All {
		values.Set(c.pageParam(), strconv.Itoa(query.Page))
		values.Set(c.perPageParam(), strconv.Itoa(query.PerPage))
	}

	return c.Client.Get(ctx, path, values)
}

// FetchDetails implements model.DetailSource
func (c *Collection) FetchDetails(ctx context.Context, node *model.Node) (*model.Response, error) {
	if c.DetailPath == nil {
		return nil, fmt.Errorf("collection %s has no detail path", c.Path)
	}
	return c.Client.Get(ctx, c.DetailPath(node), nil)
}

func (c *Collection) pageParam() string {
	if c.PageParam != "" {
		return c.PageParam
	}
	return "page"
}

func (c *Collection) perPageParam() string {
	if c.PerPageParam != "" {
		return c.PerPageParam
	}
	return "per_page"
}
