package model

import (
	"net/http"
	"strconv"
	"testing"
)

func pageResponse(current, count int) *Response {
	h := http.Header{}
	h.Set(HeaderCurrentPage, strconv.Itoa(current))
	h.Set(HeaderPageCount, strconv.Itoa(count))
	return &Response{StatusCode: 200, Header: h, Body: []byte("[]")}
}

func TestNoPagination(t *testing.T) {
	var p NoPagination
	if p.CanLoadNext() || p.CanLoadPrevious() || p.CanReload() {
		t.Error("NoPagination should never allow a load")
	}
	if p.HasLoaded() {
		t.Error("NoPagination should never report loaded data")
	}
}

func TestAllAtOnce(t *testing.T) {
	p := NewAllAtOnce()

	if !p.CanLoadNext() {
		t.Error("fresh AllAtOnce should allow the first load")
	}
	q := p.Query()
	if !q.All {
		t.Errorf("Query() = %+v, want All", q)
	}

	if err := p.Update(&Response{StatusCode: 200}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !p.HasLoaded() {
		t.Error("should report loaded after Update")
	}
	if p.CanLoadNext() {
		t.Error("loaded AllAtOnce should not allow another load")
	}
	if !p.CanReload() {
		t.Error("loaded AllAtOnce should still allow reload")
	}

	p.ResetLoaded()
	if p.HasLoaded() {
		t.Error("ResetLoaded should forget loaded data")
	}
}

func TestAccumulateFirstToLast(t *testing.T) {
	p := NewAccumulate()

	if p.HasLoaded() {
		t.Error("fresh pagination should not report loaded data")
	}
	if !p.CanLoadNext() {
		t.Error("fresh pagination should allow the first load")
	}
	if p.CanLoadPrevious() {
		t.Error("Accumulate never allows loading previous")
	}

	p.RequestNext()
	if q := p.Query(); q.Page != 1 || q.PerPage != DefaultPerPage {
		t.Errorf("Query() = %+v, want page 1 per %d", q, DefaultPerPage)
	}
	if err := p.Update(pageResponse(1, 3)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.CurrentPage() != 1 || p.PageCount() != 3 {
		t.Errorf("after update: page %d of %d, want 1 of 3", p.CurrentPage(), p.PageCount())
	}

	p.RequestNext()
	if q := p.Query(); q.Page != 2 {
		t.Errorf("Query().Page = %d, want 2", q.Page)
	}
	if err := p.Update(pageResponse(2, 3)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if err := p.Update(pageResponse(3, 3)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.CanLoadNext() {
		t.Error("last page loaded, should not allow next")
	}
}

func TestAccumulateLastToFirst(t *testing.T) {
	p := NewAccumulate()
	p.SetDirection(LastToFirst)

	p.RequestNext()
	if q := p.Query(); q.Page != unknownLastPage {
		t.Errorf("Query().Page = %d, want the unknown-last-page marker", q.Page)
	}
	if err := p.Update(pageResponse(4, 4)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	p.RequestNext()
	if q := p.Query(); q.Page != 3 {
		t.Errorf("Query().Page = %d, want 3", q.Page)
	}
	if err := p.Update(pageResponse(1, 4)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.CanLoadNext() {
		t.Error("first page loaded walking backward, should not allow next")
	}
}

func TestAccumulateUpdateRejectsMissingHeaders(t *testing.T) {
	p := NewAccumulate()
	if err := p.Update(&Response{StatusCode: 200, Header: http.Header{}}); err == nil {
		t.Error("Update() without pagination headers should fail")
	}
}

func TestAccumulateUpdateRejectsBadPageRange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		count   int
	}{
		{"page past the count", 5, 3},
		{"page below the first", 0, 3},
		{"zero page count", 1, 0},
		{"negative page count", 1, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewAccumulate()
			if err := p.Update(pageResponse(tt.current, tt.count)); err == nil {
				t.Errorf("Update(page %d of %d) should fail", tt.current, tt.count)
			}
			if p.HasLoaded() {
				t.Error("a rejected update must not mark data as loaded")
			}
		})
	}
}

func TestAccumulateCustomHeaders(t *testing.T) {
	p := NewAccumulate()
	p.SetHeaders("X-Page", "X-Pages")

	h := http.Header{}
	h.Set("X-Page", "2")
	h.Set("X-Pages", "5")
	if err := p.Update(&Response{StatusCode: 200, Header: h}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p.CurrentPage() != 2 || p.PageCount() != 5 {
		t.Errorf("after update: page %d of %d, want 2 of 5", p.CurrentPage(), p.PageCount())
	}
}

func TestReplaceNavigation(t *testing.T) {
	p := NewReplace()

	if !p.ReplacesLoaded() {
		t.Error("Replace should replace loaded rows")
	}
	if p.CanLoadPrevious() {
		t.Error("nothing loaded, previous should be unavailable")
	}

	if err := p.Update(pageResponse(2, 4)); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !p.CanLoadPrevious() {
		t.Error("page 2 of 4 loaded, previous should be available")
	}
	p.RequestPrevious()
	if q := p.Query(); q.Page != 1 {
		t.Errorf("Query().Page = %d, want 1", q.Page)
	}

	p.RequestReload()
	if q := p.Query(); q.Page != 2 {
		t.Errorf("reload Query().Page = %d, want current page 2", q.Page)
	}

	if !p.CanLoadPage(4) {
		t.Error("page 4 of 4 should be loadable")
	}
	if p.CanLoadPage(5) {
		t.Error("page 5 of 4 should not be loadable")
	}
	p.RequestPage(4)
	if q := p.Query(); q.Page != 4 {
		t.Errorf("Query().Page = %d, want 4", q.Page)
	}
}
