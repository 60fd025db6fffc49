package services

import "ecommerce-api/pagination"

// ListParams controls list endpoints. A Size of zero means no pagination: the
// full filtered result set is returned.
type ListParams struct {
	Size   int
	Cursor string
	Path   string
}

func (p ListParams) paginated() bool { return p.Size > 0 }

// ListResult holds either the full result set or one cursor page.
type ListResult[T any] struct {
	All  []T
	Page *pagination.Page[T]
}

// Data returns whichever representation the request asked for, ready for the
// response envelope.
func (r *ListResult[T]) Data() any {
	if r.Page != nil {
		return r.Page
	}
	if r.All == nil {
		return []T{}
	}
	return r.All
}
