package search

import "math"

const (
	DefaultPageSize = 5
	MaxPageSize     = 20
)

// Page is a zero-based page index and a page size. A zero Size means no
// limit and is only produced by Unbounded.
type Page struct {
	Index int
	Size  int
}

// maxPageIndex keeps Index*MaxPageSize within int.
const maxPageIndex = math.MaxInt / MaxPageSize

// NewPage converts the 1-based page and the requested limit of a request into
// a Page. The limit is capped at MaxPageSize and defaults to DefaultPageSize.
// Pages past the last representable offset are clamped and come back empty.
func NewPage(page, limit int) Page {
	index := 0
	if page > 1 {
		index = min(page-1, maxPageIndex)
	}
	size := DefaultPageSize
	if limit > 0 {
		size = min(MaxPageSize, limit)
	}
	return Page{Index: index, Size: size}
}

func Unbounded() Page {
	return Page{}
}

// Offset saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.Index <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Index > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Index * p.Size
}

func (p Page) Bounded() bool {
	return p.Size > 0
}
