package dto

import "github.com/daycarehub/backend/internal/model"

// SearchResult is the paginated search envelope.
type SearchResult struct {
	Daycares        []model.Daycare `json:"daycares"`
	TotalCount      int64           `json:"totalCount"`
	CurrentPage     int             `json:"currentPage"`
	TotalPages      int             `json:"totalPages"`
	Limit           int             `json:"limit"`
	HasNextPage     bool            `json:"hasNextPage"`
	HasPreviousPage bool            `json:"hasPreviousPage"`
}

// NewSearchResult assembles the envelope from a page of rows and the
// matching row count.
func NewSearchResult(daycares []model.Daycare, totalCount int64, page, limit int) SearchResult {
	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	return SearchResult{
		Daycares:        daycares,
		TotalCount:      totalCount,
		CurrentPage:     page,
		TotalPages:      totalPages,
		Limit:           limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// RegionCities groups the cities known for one region.
type RegionCities struct {
	Region string   `json:"region"`
	Cities []string `json:"cities"`
}

// DirectoryStats summarizes the listing inventory.
type DirectoryStats struct {
	TotalDaycares     int64   `json:"totalDaycares"`
	WithAvailability  int64   `json:"withAvailability"`
	CWELCCParticipant int64   `json:"cwelccParticipants"`
	SubsidyAvailable  int64   `json:"subsidyAvailable"`
	AveragePrice      float64 `json:"averagePrice"`
	RegionCount       int64   `json:"regionCount"`
}
