package service

import (
	"context"
	"errors"
	"testing"

	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"github.com/daycarehub/backend/internal/repository"
	"gorm.io/gorm"
)

// fakeListingStore serves canned listing data and records the filters
// it was last queried with.
type fakeListingStore struct {
	daycares    []model.Daycare
	total       int64
	searchErr   error
	lastFilters repository.SearchFilters
	searchCalls int
	locations   []string
	regions     []string
	cities      map[string][]string
	programAges []string
	types       []string
	stats       *dto.DirectoryStats
}

func (f *fakeListingStore) Search(ctx context.Context, filters repository.SearchFilters) ([]model.Daycare, int64, error) {
	f.searchCalls++
	f.lastFilters = filters
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.daycares, f.total, nil
}

func (f *fakeListingStore) GetByID(ctx context.Context, id uint) (*model.Daycare, error) {
	for i := range f.daycares {
		if f.daycares[i].ID == id {
			return &f.daycares[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeListingStore) GetAllLocations(ctx context.Context) ([]string, error) {
	return f.locations, nil
}

func (f *fakeListingStore) GetAllRegions(ctx context.Context) ([]string, error) {
	return f.regions, nil
}

func (f *fakeListingStore) GetCitiesByRegion(ctx context.Context, region string) ([]string, error) {
	return f.cities[region], nil
}

func (f *fakeListingStore) GetAllProgramAges(ctx context.Context) ([]string, error) {
	return f.programAges, nil
}

func (f *fakeListingStore) GetAllTypes(ctx context.Context, region, city string) ([]string, error) {
	return f.types, nil
}

func (f *fakeListingStore) GetStats(ctx context.Context) (*dto.DirectoryStats, error) {
	return f.stats, nil
}

func newTestDaycareService(store *fakeListingStore) *DaycareService {
	return NewDaycareService(store, NewCacheService(nil))
}

func TestSearchAppliesFilterDefaults(t *testing.T) {
	tests := []struct {
		name             string
		filters          repository.SearchFilters
		wantPage         int
		wantLimit        int
		wantAvailability string
	}{
		{
			name:             "zero values fall back to defaults",
			filters:          repository.SearchFilters{},
			wantPage:         1,
			wantLimit:        10,
			wantAvailability: "yes",
		},
		{
			name:             "negative page clamped",
			filters:          repository.SearchFilters{Page: -3, Limit: 25},
			wantPage:         1,
			wantLimit:        25,
			wantAvailability: "yes",
		},
		{
			name:             "limit capped at maximum",
			filters:          repository.SearchFilters{Page: 2, Limit: 500},
			wantPage:         2,
			wantLimit:        100,
			wantAvailability: "yes",
		},
		{
			name:             "explicit availability preserved",
			filters:          repository.SearchFilters{Availability: "no"},
			wantPage:         1,
			wantLimit:        10,
			wantAvailability: "no",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeListingStore{}
			service := newTestDaycareService(store)

			if _, err := service.Search(context.Background(), tt.filters); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if store.lastFilters.Page != tt.wantPage {
				t.Errorf("Expected page %d, got %d", tt.wantPage, store.lastFilters.Page)
			}
			if store.lastFilters.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, store.lastFilters.Limit)
			}
			if store.lastFilters.Availability != tt.wantAvailability {
				t.Errorf("Expected availability %q, got %q", tt.wantAvailability, store.lastFilters.Availability)
			}
		})
	}
}

func TestSearchPaginationEnvelope(t *testing.T) {
	daycares := make([]model.Daycare, 10)
	for i := range daycares {
		daycares[i].ID = uint(i + 1)
		daycares[i].Name = "Sunrise Childcare"
	}
	store := &fakeListingStore{daycares: daycares, total: 25}
	service := newTestDaycareService(store)

	result, err := service.Search(context.Background(), repository.SearchFilters{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.TotalCount != 25 {
		t.Errorf("Expected total count 25, got %d", result.TotalCount)
	}
	if result.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", result.TotalPages)
	}
	if result.CurrentPage != 2 {
		t.Errorf("Expected current page 2, got %d", result.CurrentPage)
	}
	if !result.HasNextPage {
		t.Error("Expected hasNextPage to be true on page 2 of 3")
	}
	if !result.HasPreviousPage {
		t.Error("Expected hasPreviousPage to be true on page 2")
	}
	if len(result.Daycares) != 10 {
		t.Errorf("Expected 10 daycares in page, got %d", len(result.Daycares))
	}
}

func TestSearchEnvelopeBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		limit     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{name: "single partial page", total: 7, page: 1, limit: 10, wantPages: 1, wantNext: false, wantPrev: false},
		{name: "exact page boundary", total: 20, page: 2, limit: 10, wantPages: 2, wantNext: false, wantPrev: true},
		{name: "empty result set", total: 0, page: 1, limit: 10, wantPages: 0, wantNext: false, wantPrev: false},
		{name: "first of many", total: 101, page: 1, limit: 10, wantPages: 11, wantNext: true, wantPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeListingStore{total: tt.total}
			service := newTestDaycareService(store)

			result, err := service.Search(context.Background(), repository.SearchFilters{Page: tt.page, Limit: tt.limit})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if result.TotalPages != tt.wantPages {
				t.Errorf("Expected %d total pages, got %d", tt.wantPages, result.TotalPages)
			}
			if result.HasNextPage != tt.wantNext {
				t.Errorf("Expected hasNextPage %t, got %t", tt.wantNext, result.HasNextPage)
			}
			if result.HasPreviousPage != tt.wantPrev {
				t.Errorf("Expected hasPreviousPage %t, got %t", tt.wantPrev, result.HasPreviousPage)
			}
		})
	}
}

func TestSearchWrapsStoreFailure(t *testing.T) {
	store := &fakeListingStore{searchErr: errors.New("connection refused")}
	service := newTestDaycareService(store)

	_, err := service.Search(context.Background(), repository.SearchFilters{})
	if err == nil {
		t.Fatal("Expected error when the store fails")
	}

	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil {
		t.Fatal("Expected a domain error")
	}
	if domainErr.Code != apperrors.ErrInternal.Code {
		t.Errorf("Expected code %s, got %s", apperrors.ErrInternal.Code, domainErr.Code)
	}
}

func TestGetByID(t *testing.T) {
	store := &fakeListingStore{daycares: []model.Daycare{{Name: "Maple Grove Daycare"}}}
	store.daycares[0].ID = 7
	service := newTestDaycareService(store)

	daycare, err := service.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if daycare.Name != "Maple Grove Daycare" {
		t.Errorf("Expected name %q, got %q", "Maple Grove Daycare", daycare.Name)
	}

	_, err = service.GetByID(context.Background(), 999)
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrDaycareNotFound.Code {
		t.Errorf("Expected %s for missing listing, got %v", apperrors.ErrDaycareNotFound.Code, err)
	}
}

func TestMetadataLookups(t *testing.T) {
	store := &fakeListingStore{
		locations:   []string{"Toronto", "Ottawa"},
		regions:     []string{"Toronto", "Peel"},
		cities:      map[string][]string{"Peel": {"Mississauga", "Brampton"}},
		programAges: []string{"Infant", "Toddler"},
		stats:       &dto.DirectoryStats{TotalDaycares: 120, RegionCount: 4},
	}
	service := newTestDaycareService(store)
	ctx := context.Background()

	locations, err := service.GetLocations(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(locations) != 2 || locations[0] != "Toronto" {
		t.Errorf("Expected locations [Toronto Ottawa], got %v", locations)
	}

	cities, err := service.GetCitiesByRegion(ctx, "Peel")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cities) != 2 || cities[1] != "Brampton" {
		t.Errorf("Expected cities [Mississauga Brampton], got %v", cities)
	}

	stats, err := service.GetStats(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if stats.TotalDaycares != 120 {
		t.Errorf("Expected 120 total daycares, got %d", stats.TotalDaycares)
	}
}
