package constants

import "strconv"

// Pagination Defaults
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PaginationParams holds normalized pagination values parsed from a request.
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePaginationParams parses page and limit query values, applying
// defaults and clamping limit to MaxLimit. Malformed or out-of-range
// values fall back to the defaults.
func ParsePaginationParams(pageStr, limitStr string) PaginationParams {
	page := DefaultPage
	limit := DefaultLimit

	if pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil && v >= 1 {
			page = v
		}
	}

	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v >= 1 {
			limit = v
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}

	return PaginationParams{Page: page, Limit: limit}
}
