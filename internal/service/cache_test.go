package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/daycarehub/backend/internal/constants"
	"github.com/daycarehub/backend/internal/repository"
)

func TestSearchKeyDeterministic(t *testing.T) {
	cache := NewCacheService(nil)

	filters := repository.SearchFilters{
		Query:    "montessori",
		Region:   "Toronto",
		AgeRange: []string{"infant", "toddler"},
		Features: []string{"Meals", "Outdoor Play"},
		Page:     1,
		Limit:    10,
	}
	reordered := filters
	reordered.AgeRange = []string{"toddler", "infant"}
	reordered.Features = []string{"Outdoor Play", "Meals"}

	if cache.SearchKey(filters) != cache.SearchKey(reordered) {
		t.Error("Expected identical keys for reordered slice filters")
	}
}

func TestSearchKeyVariesByFilter(t *testing.T) {
	cache := NewCacheService(nil)
	base := repository.SearchFilters{Query: "montessori", Page: 1, Limit: 10}

	tests := []struct {
		name   string
		mutate func(f repository.SearchFilters) repository.SearchFilters
	}{
		{name: "query", mutate: func(f repository.SearchFilters) repository.SearchFilters {
			f.Query = "waldorf"
			return f
		}},
		{name: "page", mutate: func(f repository.SearchFilters) repository.SearchFilters {
			f.Page = 2
			return f
		}},
		{name: "availability", mutate: func(f repository.SearchFilters) repository.SearchFilters {
			f.Availability = "no"
			return f
		}},
		{name: "price minimum", mutate: func(f repository.SearchFilters) repository.SearchFilters {
			price := 800.0
			f.PriceMin = &price
			return f
		}},
		{name: "subsidy flag", mutate: func(f repository.SearchFilters) repository.SearchFilters {
			f.Subsidy = true
			return f
		}},
	}

	baseKey := cache.SearchKey(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cache.SearchKey(tt.mutate(base)) == baseKey {
				t.Error("Expected a different key when the filter changes")
			}
		})
	}
}

func TestSearchKeyPrefix(t *testing.T) {
	cache := NewCacheService(nil)
	key := cache.SearchKey(repository.SearchFilters{})

	if !strings.HasPrefix(key, constants.CacheKeySearch) {
		t.Errorf("Expected prefix %q, got %q", constants.CacheKeySearch, key)
	}
}

func TestMetadataKey(t *testing.T) {
	cache := NewCacheService(nil)

	if got := cache.MetadataKey("regions"); got != constants.CacheKeyMetadata+"regions" {
		t.Errorf("Expected %q, got %q", constants.CacheKeyMetadata+"regions", got)
	}
	expect := constants.CacheKeyMetadata + "types:Toronto:North York"
	if got := cache.MetadataKey("types", "Toronto", "North York"); got != expect {
		t.Errorf("Expected %q, got %q", expect, got)
	}
}

func TestCacheDisabledWithoutBackend(t *testing.T) {
	cache := NewCacheService(nil)
	ctx := context.Background()

	if cache.Enabled() {
		t.Error("Expected Enabled to be false without a backend")
	}

	var dest []string
	if cache.Get(ctx, "k", &dest) {
		t.Error("Expected every lookup to miss without a backend")
	}

	// Writes and invalidations are no-ops.
	cache.Set(ctx, "k", []string{"v"}, time.Minute)
	if deleted, err := cache.InvalidateSearches(ctx); err != nil || deleted != 0 {
		t.Errorf("Expected 0 deletions and no error, got %d, %v", deleted, err)
	}
	if deleted, err := cache.Clear(ctx); err != nil || deleted != 0 {
		t.Errorf("Expected 0 deletions and no error, got %d, %v", deleted, err)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Errorf("Expected enabled false in stats, got %v", stats["enabled"])
	}
}
