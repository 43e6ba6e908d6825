package models

const (
	DefaultPage = 1
	DefaultSize = 100
)

// PageRequest selects one page of a listing. Pages are 1-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize replaces non-positive values with the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	return p
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Size
}

// Paginated is one page of a listing together with totals.
type Paginated[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// NewPaginated builds the envelope for data fetched with req. Size is capped
// at the number of items actually returned; Pages is computed from the
// requested size and is at least 1.
func NewPaginated[T any](data []T, total int, req PageRequest) Paginated[T] {
	req = req.Normalize()
	if data == nil {
		data = []T{}
	}

	size := req.Size
	if size > len(data) {
		size = len(data)
	}

	pages := (total + req.Size - 1) / req.Size
	if pages < 1 {
		pages = 1
	}

	return Paginated[T]{
		Data:  data,
		Page:  req.Page,
		Size:  size,
		Pages: pages,
		Total: total,
	}
}
