package pagination

// OffsetRequest is an offset-based page request, bound from query params.
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Validate normalizes the request in place: out-of-range values fall back
// to the defaults instead of erroring, so unpaged requests just work.
func (r *OffsetRequest) Validate() error {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	return nil
}

// Offset is the row offset of the page, for LIMIT/OFFSET queries and slice
// windows.
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}
