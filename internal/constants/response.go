package constants

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// PaginationMetadata describes the position of a page within a result set.
type PaginationMetadata struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// ListResponse is the envelope for paginated list responses.
type ListResponse struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data"`
	Pagination PaginationMetadata `json:"pagination"`
}

// BuildSuccessResponse wraps data in the standard success envelope.
func BuildSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// BuildErrorResponse wraps an error message in the standard error envelope.
func BuildErrorResponse(message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	}
}

// BuildPaginationMetadata computes page navigation fields from a total
// row count and the requested page and limit.
func BuildPaginationMetadata(totalCount int64, page, limit int) PaginationMetadata {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return PaginationMetadata{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// BuildListResponse wraps a page of data with its pagination metadata.
func BuildListResponse(data interface{}, totalCount int64, page, limit int) ListResponse {
	return ListResponse{
		Success:    true,
		Data:       data,
		Pagination: BuildPaginationMetadata(totalCount, page, limit),
	}
}
