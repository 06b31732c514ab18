// Package paginator splits ordered listings into fixed-size pages.
//
// Page numbers that are missing or malformed resolve to the first page and
// numbers past the end resolve to the last one, so a listing never fails
// because of its page parameter.
package paginator

import (
	"strconv"
	"strings"
)

// DefaultPerPage is used when a Paginator is built with a non-positive size.
const DefaultPerPage = 10

// Paginator computes page windows of a fixed size.
type Paginator struct {
	PerPage int
}

// New returns a Paginator with perPage items per page.
func New(perPage int) Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Paginator{PerPage: perPage}
}

// Page is one window of a listing.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	PerPage  int
	Count    int64
}

// Resolve returns the page window for count items and the raw page parameter.
// Items is left empty for the caller to fill from Offset and PerPage.
func Resolve[T any](p Paginator, count int64, raw string) *Page[T] {
	per := p.PerPage
	if per < 1 {
		per = DefaultPerPage
	}
	numPages := int((count + int64(per) - 1) / int64(per))
	if numPages < 1 {
		numPages = 1
	}
	return &Page[T]{
		Number:   ParseNumber(raw, numPages),
		NumPages: numPages,
		PerPage:  per,
		Count:    count,
	}
}

// ParseNumber maps a raw page parameter onto [1, numPages].
func ParseNumber(raw string, numPages int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > numPages {
		return numPages
	}
	return n
}

// Offset is the index of the first item on the page.
func (p *Page[T]) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p *Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p *Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p *Page[T]) NextNumber() int {
	return p.Number + 1
}

func (p *Page[T]) PreviousNumber() int {
	return p.Number - 1
}

// Len is the number of items on this page.
func (p *Page[T]) Len() int {
	return len(p.Items)
}

// Range lists every page number, for rendering page links.
func (p *Page[T]) Range() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
