package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/repository"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/daycarehub/backend/pkg/redis"
)

// Cache TTLs. Search pages turn over quickly; directory metadata
// changes only on imports.
const (
	searchCacheTTL   = 5 * time.Minute
	metadataCacheTTL = time.Hour
)

// CacheService fronts redis for the search and metadata endpoints.
// A nil redis client disables caching entirely; every lookup misses
// and every write is a no-op.
type CacheService struct {
	redisClient *redis.Client
}

func NewCacheService(redisClient *redis.Client) *CacheService {
	return &CacheService{redisClient: redisClient}
}

// Enabled reports whether a cache backend is configured.
func (s *CacheService) Enabled() bool {
	return s.redisClient != nil
}

// SearchKey builds a deterministic cache key from the normalized
// filter set. Slice filters are sorted first so the same filter
// combination hashes identically regardless of parameter order.
func (s *CacheService) SearchKey(filters repository.SearchFilters) string {
	h := md5.New()

	fmt.Fprintf(h, "q:%s:loc:%s:region:%s:ward:%s:type:%s",
		filters.Query, filters.Location, filters.Region, filters.Ward, filters.DaycareType)

	if filters.PriceMin != nil {
		fmt.Fprintf(h, ":pmin:%g", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		fmt.Fprintf(h, ":pmax:%g", *filters.PriceMax)
	}

	for _, values := range [][]string{filters.AgeRange, filters.ProgramAge, filters.Features} {
		sorted := append([]string(nil), values...)
		sort.Strings(sorted)
		fmt.Fprintf(h, ":%s", strings.Join(sorted, ","))
	}

	fmt.Fprintf(h, ":avail:%s:cwelcc:%t:subsidy:%t:page:%d:limit:%d",
		filters.Availability, filters.CWELCC, filters.Subsidy, filters.Page, filters.Limit)

	return fmt.Sprintf("%s%x", constants.CacheKeySearch, h.Sum(nil))
}

// MetadataKey builds the cache key for one metadata endpoint.
func (s *CacheService) MetadataKey(parts ...string) string {
	return constants.CacheKeyMetadata + strings.Join(parts, ":")
}

// Get loads a cached value into dest, reporting a hit. Cache faults
// degrade to a miss so the caller falls through to the database.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if s.redisClient == nil {
		return false
	}

	hit, err := s.redisClient.GetJSON(ctx, key, dest)
	if err != nil {
		logger.WarnWithContext(ctx, "Cache read failed, falling back to database").
			String("key", key).
			Err(err).
			Log()
		return false
	}
	return hit
}

// Set stores a value. Failures are logged and swallowed.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redisClient == nil {
		return
	}

	if err := s.redisClient.SetJSON(ctx, key, value, ttl); err != nil {
		logger.WarnWithContext(ctx, "Cache write failed").
			String("key", key).
			Err(err).
			Log()
	}
}

// InvalidateSearches drops every cached search page. Called after
// listing imports or edits.
func (s *CacheService) InvalidateSearches(ctx context.Context) (int, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "InvalidateSearches")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if s.redisClient == nil {
		return 0, nil
	}
	return s.redisClient.DeleteByPattern(ctx, constants.CacheKeySearch+"*")
}

// InvalidateMetadata drops the cached metadata lists.
func (s *CacheService) InvalidateMetadata(ctx context.Context) (int, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "InvalidateMetadata")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if s.redisClient == nil {
		return 0, nil
	}
	return s.redisClient.DeleteByPattern(ctx, constants.CacheKeyMetadata+"*")
}

// Clear drops everything under the application prefix.
func (s *CacheService) Clear(ctx context.Context) (int, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Clear")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if s.redisClient == nil {
		return 0, nil
	}
	return s.redisClient.DeleteByPattern(ctx, constants.CacheKeyPrefix+"*")
}

// Stats returns backend cache statistics.
func (s *CacheService) Stats(ctx context.Context) (map[string]interface{}, error) {
	if s.redisClient == nil {
		return map[string]interface{}{"enabled": false}, nil
	}

	stats, err := s.redisClient.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	stats["enabled"] = true
	return stats, nil
}
