package models

// DefaultPageSize is the number of songs requested per page.
const DefaultPageSize = 10

// Page is a limit/offset window over a song listing.
//
// The backend does not report totals, so a page that comes back full means a next page may exist.
type Page struct {
	Limit  int
	Offset int
}

// NewPage returns the first page with the given limit, falling back to [DefaultPageSize].
func NewPage(limit int) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Page{Limit: limit}
}

// Next returns the following page.
func (p Page) Next() Page {
	return Page{Limit: p.Limit, Offset: p.Offset + p.Limit}
}

// Prev returns the preceding page, never going below offset 0.
func (p Page) Prev() Page {
	return Page{Limit: p.Limit, Offset: max(0, p.Offset-p.Limit)}
}

// HasPrev reports whether there is a page before p.
func (p Page) HasPrev() bool {
	return p.Offset > 0
}

// HasNext reports whether a page after p may exist given that p returned n records.
func (p Page) HasNext(n int) bool {
	return p.Limit > 0 && n == p.Limit
}

// Number returns the 1-based page number.
func (p Page) Number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}
