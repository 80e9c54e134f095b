package response

import "github.com/google/uuid"

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// ListResponse echoes the effective page so clients can request the next one.
type ListResponse[T any] struct {
	Items  []T    `json:"items"`
	Total  *int64 `json:"total,omitempty"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

func NewListResponse[T any](items []T, limit, offset int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Limit: limit, Offset: offset}
}

func (r ListResponse[T]) WithTotal(total int64) ListResponse[T] {
	r.Total = &total
	return r
}
