package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	"github.com/daycarehub/backend/internal/model"
	"github.com/daycarehub/backend/internal/repository"
	"github.com/daycarehub/backend/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fakeListings serves a fixed page of listings for handler tests.
type fakeListings struct {
	daycares []model.Daycare
	total    int64
}

func (f *fakeListings) Search(ctx context.Context, filters repository.SearchFilters) ([]model.Daycare, int64, error) {
	return f.daycares, f.total, nil
}

func (f *fakeListings) GetByID(ctx context.Context, id uint) (*model.Daycare, error) {
	for i := range f.daycares {
		if f.daycares[i].ID == id {
			return &f.daycares[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeListings) GetAllLocations(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeListings) GetAllRegions(ctx context.Context) ([]string, error)   { return nil, nil }
func (f *fakeListings) GetCitiesByRegion(ctx context.Context, region string) ([]string, error) {
	return nil, nil
}
func (f *fakeListings) GetAllProgramAges(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeListings) GetAllTypes(ctx context.Context, region, city string) ([]string, error) {
	return nil, nil
}
func (f *fakeListings) GetStats(ctx context.Context) (*dto.DirectoryStats, error) {
	return &dto.DirectoryStats{}, nil
}

func newSearchTestRouter(listings *fakeListings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	daycareService := service.NewDaycareService(listings, service.NewCacheService(nil))
	h := NewDaycareHandler(daycareService)

	engine := gin.New()
	engine.GET("/api/v1/daycares", h.Search)
	return engine
}

func TestSearchResponseEnvelope(t *testing.T) {
	daycares := make([]model.Daycare, 10)
	for i := range daycares {
		daycares[i].ID = uint(i + 1)
		daycares[i].Name = "Sunrise Childcare"
	}
	engine := newSearchTestRouter(&fakeListings{daycares: daycares, total: 25})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/daycares?page=2&limit=10", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Success    bool                         `json:"success"`
		Data       []model.Daycare              `json:"data"`
		Pagination constants.PaginationMetadata `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if !resp.Success {
		t.Error("Expected success true in the envelope")
	}
	if len(resp.Data) != 10 {
		t.Errorf("Expected 10 listings in data, got %d", len(resp.Data))
	}
	if resp.Pagination.TotalCount != 25 {
		t.Errorf("Expected total count 25, got %d", resp.Pagination.TotalCount)
	}
	if resp.Pagination.CurrentPage != 2 {
		t.Errorf("Expected current page 2, got %d", resp.Pagination.CurrentPage)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", resp.Pagination.TotalPages)
	}
	if !resp.Pagination.HasNextPage || !resp.Pagination.HasPreviousPage {
		t.Error("Expected both page navigation flags set on page 2 of 3")
	}
}
