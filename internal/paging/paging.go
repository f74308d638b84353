// Package paging slices already-fetched lists into display pages.
package paging

// DefaultPerPage matches the storefront grid size.
const DefaultPerPage = 12

// Page is one window over a list plus the totals the pager renders.
type Page[T any] struct {
	Items      []T
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Slice returns page number `page` of items. Page numbers start at 1 and
// are clamped into the valid range; perPage falls back to DefaultPerPage
// when non-positive. An empty list yields one empty page.
func Slice[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: totalPages,
	}
}
