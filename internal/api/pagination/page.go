package pagination

// Page is an offset-based page request shared by the admin queues and the
// user-facing listings.
type Page struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize clamps a page request to sane bounds. Zero values become the
// first page at the default size.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Normalize().Size
}

// Result is one page of a listing plus its count metadata. Total is the
// exact pre-pagination row count unless the producer documents otherwise
// (see the interest listing's post-filter fallback).
type Result[T any] struct {
	Items      []T
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

func NewResult[T any](items []T, total int, page Page) Result[T] {
	page = page.Normalize()
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Size - 1) / page.Size
	}
	return Result[T]{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       page.Number,
		PageSize:   page.Size,
	}
}
