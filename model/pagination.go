package model

import (
	"fmt"
)

// Pagination response header names. Servers following the common
// header-driven pagination convention report the current page and the total
// page count on every list response.
const (
	HeaderCurrentPage = "X-Pagination-Current-Page"
	HeaderPageCount   = "X-Pagination-Page-Count"
)

// DefaultPerPage is the default number of records requested per page
const DefaultPerPage = 25

const (
	firstPage          = 1
	unknownCurrentPage = firstPage - 1
	unknownLastPage    = -1
	unknownPageCount   = 1
)

// PaginationKind identifies a pagination strategy
type PaginationKind string

const (
	PaginationNone       PaginationKind = "None"
	PaginationAllAtOnce  PaginationKind = "AllAtOnce"
	PaginationAccumulate PaginationKind = "Accumulate"
	PaginationReplace    PaginationKind = "Replace"
)

// Direction is the order in which pages are walked
type Direction int

const (
	// FirstToLast walks pages from the first page forward
	FirstToLast Direction = iota

	// LastToFirst walks pages from the last page backward
	LastToFirst
)

// PageQuery tells a Source which portion of the collection to request.
// When All is true the whole collection is requested and Page/PerPage are
// meaningless.
type PageQuery struct {
	All     bool
	Page    int
	PerPage int
}

// Pagination tracks which portion of a node's children has been loaded and
// decides which portion a load request should ask for. A pagination instance
// belongs to exactly one node and must be configured before the first load.
//
// The model drives the Request*/Update/Reset methods; applications normally
// only construct a pagination and query its Can* methods.
type Pagination interface {
	Kind() PaginationKind

	// HasLoaded returns true if any data has been loaded already
	HasLoaded() bool

	// ReplacesLoaded returns true if already loaded rows must be removed
	// before rows of a new load are appended
	ReplacesLoaded() bool

	CanLoadNext() bool
	CanLoadPrevious() bool
	CanReload() bool

	// RequestNext/RequestPrevious/RequestReload move the required portion.
	// The matching Can method must have returned true.
	RequestNext()
	RequestPrevious()
	RequestReload()

	// Query returns the portion the next load should request
	Query() PageQuery

	// Update advances the loaded-state from a successful load response
	Update(resp *Response) error

	// ResetLoaded forgets what was loaded, keeping configuration
	ResetLoaded()

	// Reset restores the initial state including configuration
	Reset()
}

// NoPagination forbids loading any data. Nodes configured with it never
// issue requests.
type NoPagination struct{}

func (NoPagination) Kind() PaginationKind        { return PaginationNone }
func (NoPagination) HasLoaded() bool             { return false }
func (NoPagination) ReplacesLoaded() bool        { return false }
func (NoPagination) CanLoadNext() bool           { return false }
func (NoPagination) CanLoadPrevious() bool       { return false }
func (NoPagination) CanReload() bool             { return false }
func (NoPagination) RequestNext()                {}
func (NoPagination) RequestPrevious()            {}
func (NoPagination) RequestReload()              {}
func (NoPagination) Query() PageQuery            { return PageQuery{} }
func (NoPagination) Update(*Response) error      { return nil }
func (NoPagination) ResetLoaded()                {}
func (NoPagination) Reset()                      {}

// AllAtOnce loads the whole collection in a single request
type AllAtOnce struct {
	loaded bool
}

// NewAllAtOnce creates an all-at-once pagination
func NewAllAtOnce() *AllAtOnce {
	return &AllAtOnce{}
}

func (p *AllAtOnce) Kind() PaginationKind  { return PaginationAllAtOnce }
func (p *AllAtOnce) HasLoaded() bool       { return p.loaded }
func (p *AllAtOnce) ReplacesLoaded() bool  { return false }
func (p *AllAtOnce) CanLoadNext() bool     { return !p.loaded }
func (p *AllAtOnce) CanLoadPrevious() bool { return !p.loaded }
func (p *AllAtOnce) CanReload() bool       { return true }
func (p *AllAtOnce) RequestNext()          {}
func (p *AllAtOnce) RequestPrevious()      {}
func (p *AllAtOnce) RequestReload()        {}
func (p *AllAtOnce) Query() PageQuery      { return PageQuery{All: true} }

func (p *AllAtOnce) Update(*Response) error {
	p.loaded = true
	return nil
}

func (p *AllAtOnce) ResetLoaded() { p.loaded = false }
func (p *AllAtOnce) Reset()       { p.loaded = false }

// Accumulate loads the collection page by page, keeping every loaded page.
// Page numbers and the page count are taken from the response headers.
type Accumulate struct {
	direction         Direction
	perPage           int
	currentPage       int
	pageCount         int
	requiredPage      int
	currentPageHeader string
	pageCountHeader   string
}

// NewAccumulate creates a page-accumulating pagination with default
// direction, page size, and header names.
func NewAccumulate() *Accumulate {
	p := &Accumulate{}
	p.Reset()
	return p
}

// SetDirection sets the page walk order. Only valid before the first load.
func (p *Accumulate) SetDirection(d Direction) {
	p.direction = d
	p.resetRequiredPage()
}

// Direction returns the page walk order
func (p *Accumulate) Direction() Direction { return p.direction }

// SetPerPage sets the number of records requested per page. Only valid
// before the first load.
func (p *Accumulate) SetPerPage(perPage int) { p.perPage = perPage }

// PerPage returns the number of records requested per page
func (p *Accumulate) PerPage() int { return p.perPage }

// SetHeaders overrides the response header names the pagination is updated
// from
func (p *Accumulate) SetHeaders(currentPage, pageCount string) {
	p.currentPageHeader = currentPage
	p.pageCountHeader = pageCount
}

// CurrentPage returns the number of the most recently loaded page, or 0 if
// nothing has been loaded yet.
func (p *Accumulate) CurrentPage() int { return p.currentPage }

// PageCount returns the total number of pages reported by the server
func (p *Accumulate) PageCount() int { return p.pageCount }

// FirstPage returns the number of the first page
func (p *Accumulate) FirstPage() int { return firstPage }

// LastPage returns the number of the last known page
func (p *Accumulate) LastPage() int { return firstPage + p.pageCount - 1 }

func (p *Accumulate) resetRequiredPage() {
	if p.direction == FirstToLast {
		p.requiredPage = firstPage
	} else {
		p.requiredPage = unknownLastPage
	}
}

func (p *Accumulate) Kind() PaginationKind { return PaginationAccumulate }

func (p *Accumulate) HasLoaded() bool { return p.currentPage != unknownCurrentPage }

func (p *Accumulate) ReplacesLoaded() bool { return false }

func (p *Accumulate) CanLoadNext() bool {
	if !p.HasLoaded() {
		return true
	}
	if p.direction == FirstToLast {
		return p.currentPage < p.LastPage()
	}
	return p.currentPage > firstPage
}

func (p *Accumulate) RequestNext() {
	if !p.HasLoaded() {
		p.resetRequiredPage()
		return
	}
	if p.direction == FirstToLast {
		p.requiredPage = p.currentPage + 1
	} else {
		p.requiredPage = p.currentPage - 1
	}
}

func (p *Accumulate) CanLoadPrevious() bool { return false }

func (p *Accumulate) RequestPrevious() {}

func (p *Accumulate) CanReload() bool { return true }

func (p *Accumulate) RequestReload() { p.resetRequiredPage() }

func (p *Accumulate) Query() PageQuery {
	return PageQuery{Page: p.requiredPage, PerPage: p.perPage}
}

func (p *Accumulate) Update(resp *Response) error {
	pageCount, ok := resp.IntHeader(p.pageCountHeader)
	if !ok {
		return fmt.Errorf("missing or invalid %s header", p.pageCountHeader)
	}
	currentPage, ok := resp.IntHeader(p.currentPageHeader)
	if !ok {
		return fmt.Errorf("missing or invalid %s header", p.currentPageHeader)
	}
	if pageCount < 1 {
		return fmt.Errorf("%s reports %d pages", p.pageCountHeader, pageCount)
	}
	if currentPage < firstPage || currentPage > firstPage+pageCount-1 {
		return fmt.Errorf("%s reports page %d outside %d..%d",
			p.currentPageHeader, currentPage, firstPage, firstPage+pageCount-1)
	}
	p.pageCount = pageCount
	p.currentPage = currentPage
	return nil
}

func (p *Accumulate) ResetLoaded() { p.currentPage = unknownCurrentPage }

func (p *Accumulate) Reset() {
	p.direction = FirstToLast
	p.perPage = DefaultPerPage
	p.currentPage = unknownCurrentPage
	p.pageCount = unknownPageCount
	p.currentPageHeader = HeaderCurrentPage
	p.pageCountHeader = HeaderPageCount
	p.resetRequiredPage()
}

// Replace loads one page at a time, replacing the previously loaded page.
// In addition to next/previous navigation an arbitrary valid page can be
// requested directly.
type Replace struct {
	Accumulate
}

// NewReplace creates a page-replacing pagination
func NewReplace() *Replace {
	p := &Replace{}
	p.Reset()
	return p
}

func (p *Replace) Kind() PaginationKind { return PaginationReplace }

func (p *Replace) ReplacesLoaded() bool { return true }

func (p *Replace) CanLoadPrevious() bool {
	if !p.HasLoaded() {
		return false
	}
	if p.direction == FirstToLast {
		return p.currentPage > firstPage
	}
	return p.currentPage < p.LastPage()
}

func (p *Replace) RequestPrevious() {
	if p.direction == FirstToLast {
		p.requiredPage = p.currentPage - 1
	} else {
		p.requiredPage = p.currentPage + 1
	}
}

func (p *Replace) RequestReload() {
	if !p.HasLoaded() {
		p.resetRequiredPage()
		return
	}
	p.requiredPage = p.currentPage
}

// PageValid returns true if page is inside the known page range
func (p *Replace) PageValid(page int) bool {
	return firstPage <= page && page <= p.LastPage()
}

// CanLoadPage returns true if the given page can be requested
func (p *Replace) CanLoadPage(page int) bool {
	return p.PageValid(page)
}

// RequestPage requests the given page directly
func (p *Replace) RequestPage(page int) {
	p.requiredPage = page
}
