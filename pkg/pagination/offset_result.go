package pagination

// OffsetResult wraps one page of results. HasMore is inferred from page
// fill: a full page may have a successor, a short page never does.
type OffsetResult[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	HasMore bool `json:"has_more"`
}

// NewOffsetResult creates a page result for the given request.
func NewOffsetResult[T any](items []T, page OffsetRequest) *OffsetResult[T] {
	if items == nil {
		items = []T{}
	}
	return &OffsetResult[T]{
		Items:   items,
		Page:    page.Page,
		Size:    page.Size,
		HasMore: len(items) == page.Size,
	}
}
