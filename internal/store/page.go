package store

import "math"

// Page selects a window of a newest-first listing.
type Page struct {
	Number int // 1-based
	Size   int
}

// Offset returns the number of rows skipped before the page starts.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	// Past the last representable row the page is simply empty.
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Limit returns the page size, falling back to DefaultPageSize.
func (p Page) Limit() int {
	if p.Size < 1 {
		return DefaultPageSize
	}
	return p.Size
}

// DefaultPageSize is used when a page carries no size.
const DefaultPageSize = 20
