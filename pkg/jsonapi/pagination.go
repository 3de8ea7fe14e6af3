package jsonapi

import (
	"net/url"
	"strconv"
)

// Pagination describes one zero-based page of a collection.
type Pagination struct {
	Total   int64
	Page    int // zero-based
	Size    int
	BaseURL string // request URL used to build links; may be empty
}

// NewPagination creates a Pagination. Negative pages clamp to 0 and a
// non-positive size means a single page holding everything.
func NewPagination(total int64, page, size int, baseURL string) *Pagination {
	if page < 0 {
		page = 0
	}
	if size < 0 {
		size = 0
	}
	return &Pagination{Total: total, Page: page, Size: size, BaseURL: baseURL}
}

// TotalPages returns the number of pages; an empty collection has one.
func (p *Pagination) TotalPages() int {
	if p.Size == 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// HasPrev reports whether a previous page exists.
func (p *Pagination) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a following page exists.
func (p *Pagination) HasNext() bool {
	return p.Page+1 < p.TotalPages()
}

// Meta returns paging metadata.
func (p *Pagination) Meta() Meta {
	return Meta{
		"total":      p.Total,
		"page":       p.Page,
		"size":       p.Size,
		"totalPages": p.TotalPages(),
	}
}

// Links returns self/first/last and, where they exist, prev/next links.
// It returns nil when no BaseURL is set.
func (p *Pagination) Links() *Links {
	if p.BaseURL == "" {
		return nil
	}
	links := &Links{
		Self:  p.url(p.Page),
		First: p.url(0),
		Last:  p.url(p.TotalPages() - 1),
	}
	if p.HasPrev() {
		links.Prev = p.url(p.Page - 1)
	}
	if p.HasNext() {
		links.Next = p.url(p.Page + 1)
	}
	return links
}

func (p *Pagination) url(page int) string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return p.BaseURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
