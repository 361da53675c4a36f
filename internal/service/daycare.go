package service

import (
	"context"
	"errors"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"github.com/daycarehub/backend/internal/repository"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

// ListingStore is the subset of listing persistence the directory
// operations need.
type ListingStore interface {
	Search(ctx context.Context, filters repository.SearchFilters) ([]model.Daycare, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Daycare, error)
	GetAllLocations(ctx context.Context) ([]string, error)
	GetAllRegions(ctx context.Context) ([]string, error)
	GetCitiesByRegion(ctx context.Context, region string) ([]string, error)
	GetAllProgramAges(ctx context.Context) ([]string, error)
	GetAllTypes(ctx context.Context, region, city string) ([]string, error)
	GetStats(ctx context.Context) (*dto.DirectoryStats, error)
}

type DaycareService struct {
	listings ListingStore
	cache    *CacheService
}

func NewDaycareService(listings ListingStore, cache *CacheService) *DaycareService {
	return &DaycareService{
		listings: listings,
		cache:    cache,
	}
}

// normalizeFilters applies the pagination and availability defaults.
// Malformed values were already dropped at the boundary, so only
// range clamping remains.
func normalizeFilters(filters repository.SearchFilters) repository.SearchFilters {
	if filters.Page < 1 {
		filters.Page = constants.DefaultPage
	}
	if filters.Limit < 1 {
		filters.Limit = constants.DefaultLimit
	}
	if filters.Limit > constants.MaxLimit {
		filters.Limit = constants.MaxLimit
	}
	if filters.Availability == "" {
		filters.Availability = "yes"
	}
	return filters
}

// Search resolves a filter combination to one page of listings plus
// pagination metadata. Results are cached per filter combination.
func (s *DaycareService) Search(ctx context.Context, filters repository.SearchFilters) (*dto.SearchResult, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Search")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	filters = normalizeFilters(filters)

	logger.InfoWithContext(ctx, "Searching daycares").
		String("query", filters.Query).
		String("region", filters.Region).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Log()

	cacheKey := s.cache.SearchKey(filters)
	var cached dto.SearchResult
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	daycares, totalCount, err := s.listings.Search(ctx, filters)
	if err != nil {
		logger.ErrorWithContext(ctx, "Search failed").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	result := dto.NewSearchResult(daycares, totalCount, filters.Page, filters.Limit)
	s.cache.Set(ctx, cacheKey, result, searchCacheTTL)

	logger.InfoWithContext(ctx, "Search completed").
		Int64("total_count", totalCount).
		Int("returned", len(daycares)).
		Log()

	return &result, nil
}

// GetByID fetches one listing.
func (s *DaycareService) GetByID(ctx context.Context, id uint) (*model.Daycare, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	daycare, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDaycareNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return daycare, nil
}

// cachedStrings wraps the shared lookup-then-fill pattern for the
// string list metadata endpoints.
func (s *DaycareService) cachedStrings(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	var cached []string
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	values, err := fetch(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Set(ctx, key, values, metadataCacheTTL)
	return values, nil
}

// GetLocations lists the distinct cities.
func (s *DaycareService) GetLocations(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetLocations")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.cachedStrings(ctx, s.cache.MetadataKey("locations"), s.listings.GetAllLocations)
}

// GetRegions lists the distinct regions.
func (s *DaycareService) GetRegions(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetRegions")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.cachedStrings(ctx, s.cache.MetadataKey("regions"), s.listings.GetAllRegions)
}

// GetCitiesByRegion lists the distinct cities within one region.
func (s *DaycareService) GetCitiesByRegion(ctx context.Context, region string) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetCitiesByRegion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.cachedStrings(ctx, s.cache.MetadataKey("cities", region), func(ctx context.Context) ([]string, error) {
		return s.listings.GetCitiesByRegion(ctx, region)
	})
}

// GetProgramAges lists the distinct program age labels.
func (s *DaycareService) GetProgramAges(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetProgramAges")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.cachedStrings(ctx, s.cache.MetadataKey("program_ages"), s.listings.GetAllProgramAges)
}

// GetTypes lists the distinct daycare types, optionally narrowed by
// region and city.
func (s *DaycareService) GetTypes(ctx context.Context, region, city string) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetTypes")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	return s.cachedStrings(ctx, s.cache.MetadataKey("types", region, city), func(ctx context.Context) ([]string, error) {
		return s.listings.GetAllTypes(ctx, region, city)
	})
}

// GetStats summarizes the listing inventory.
func (s *DaycareService) GetStats(ctx context.Context) (*dto.DirectoryStats, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetStats")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	key := s.cache.MetadataKey("stats")
	var cached dto.DirectoryStats
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	stats, err := s.listings.GetStats(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.cache.Set(ctx, key, stats, metadataCacheTTL)
	return stats, nil
}
