package service

// Page is one page of an offset-paginated listing.
type Page[T any] struct {
	Items   []T
	Total   int64
	Page    int
	PerPage int
}

func newPage[T any](items []T, total int64, page, perPage int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: page, PerPage: perPage}
}

// LastPage is the number of the last page, at least 1.
func (p *Page[T]) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// From is the 1-based position of the first item on the page, or 0 when the page is empty.
func (p *Page[T]) From() int {
	if len(p.Items) == 0 {
		return 0
	}
	return (p.Page-1)*p.PerPage + 1
}

// To is the 1-based position of the last item on the page, or 0 when the page is empty.
func (p *Page[T]) To() int {
	if len(p.Items) == 0 {
		return 0
	}
	return p.From() + len(p.Items) - 1
}

func pageOffset(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	return perPage, (page - 1) * perPage
}
