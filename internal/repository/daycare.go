package repository

import (
	"context"
	"time"

	"github.com/daycarehub/backend/internal/dto"
	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type DaycareRepository struct {
	db *gorm.DB
}

func NewDaycareRepository(db *gorm.DB) *DaycareRepository {
	return &DaycareRepository{db: db}
}

// Search runs the filter predicate twice: once for the total match
// count and once for the requested page window. The two reads are not
// transactional; a listing added between them can shift pagination by
// one row.
func (r *DaycareRepository) Search(ctx context.Context, filters SearchFilters) ([]model.Daycare, int64, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Search")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	start := time.Now()

	var totalCount int64
	countQuery := filters.apply(r.db.WithContext(ctx).Model(&model.Daycare{}))
	if err := countQuery.Count(&totalCount).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to count search results").
			Err(err).
			Log()
		return nil, 0, err
	}

	var daycares []model.Daycare
	pageQuery := filters.apply(r.db.WithContext(ctx).Model(&model.Daycare{}))
	if err := pageQuery.
		Offset((filters.Page - 1) * filters.Limit).
		Limit(filters.Limit).
		Find(&daycares).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch search page").
			Int("page", filters.Page).
			Int("limit", filters.Limit).
			Err(err).
			Log()
		return nil, 0, err
	}

	logger.DebugWithContext(ctx, "Search executed").
		Int64("total_count", totalCount).
		Int("page", filters.Page).
		Int("limit", filters.Limit).
		Int("returned", len(daycares)).
		Duration(time.Since(start)).
		Log()

	return daycares, totalCount, nil
}

func (r *DaycareRepository) GetByID(ctx context.Context, id uint) (*model.Daycare, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var daycare model.Daycare
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&daycare)
	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get daycare by ID").
				Uint("daycare_id", id).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &daycare, nil
}

// GetAllLocations returns the distinct non-empty cities across all
// listings, sorted alphabetically.
func (r *DaycareRepository) GetAllLocations(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAllLocations")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var cities []string
	err := r.db.WithContext(ctx).
		Model(&model.Daycare{}).
		Distinct("city").
		Where("city <> ''").
		Order("city").
		Pluck("city", &cities).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch locations").
			Err(err).
			Log()
		return nil, err
	}

	return cities, nil
}

// GetAllRegions returns the distinct non-empty regions.
func (r *DaycareRepository) GetAllRegions(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAllRegions")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var regions []string
	err := r.db.WithContext(ctx).
		Model(&model.Daycare{}).
		Distinct("region").
		Where("region <> ''").
		Order("region").
		Pluck("region", &regions).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch regions").
			Err(err).
			Log()
		return nil, err
	}

	return regions, nil
}

// GetCitiesByRegion returns the distinct cities within one region.
func (r *DaycareRepository) GetCitiesByRegion(ctx context.Context, region string) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetCitiesByRegion")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var cities []string
	err := r.db.WithContext(ctx).
		Model(&model.Daycare{}).
		Distinct("city").
		Where("region ILIKE ? AND city <> ''", containsPattern(region)).
		Order("city").
		Pluck("city", &cities).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch cities by region").
			String("region", region).
			Err(err).
			Log()
		return nil, err
	}

	return cities, nil
}

// GetAllProgramAges returns the distinct program age labels used by
// any listing, unnested from the program_age array column.
func (r *DaycareRepository) GetAllProgramAges(ctx context.Context) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAllProgramAges")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var programAges []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT elem
			FROM daycares, jsonb_array_elements_text(program_age) AS elem
			WHERE daycares.deleted_at IS NULL
			ORDER BY elem`).
		Scan(&programAges).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch program ages").
			Err(err).
			Log()
		return nil, err
	}

	return programAges, nil
}

// GetAllTypes returns the distinct daycare types, optionally narrowed
// by region and city.
func (r *DaycareRepository) GetAllTypes(ctx context.Context, region, city string) ([]string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetAllTypes")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	query := r.db.WithContext(ctx).
		Model(&model.Daycare{}).
		Distinct("daycare_type").
		Where("daycare_type <> ''")
	if region != "" {
		query = query.Where("region ILIKE ?", containsPattern(region))
	}
	if city != "" {
		query = query.Where("city ILIKE ?", containsPattern(city))
	}

	var types []string
	if err := query.Order("daycare_type").Pluck("daycare_type", &types).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch daycare types").
			Err(err).
			Log()
		return nil, err
	}

	return types, nil
}

// GetStats summarizes the listing inventory for the directory
// dashboard.
func (r *DaycareRepository) GetStats(ctx context.Context) (*dto.DirectoryStats, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetStats")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	stats := &dto.DirectoryStats{}
	db := r.db.WithContext(ctx).Model(&model.Daycare{})

	if err := db.Session(&gorm.Session{}).Count(&stats.TotalDaycares).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("availability = ?", "yes").Count(&stats.WithAvailability).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("cwelcc = ?", true).Count(&stats.CWELCCParticipant).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("subsidy_available = ?", true).Count(&stats.SubsidyAvailable).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Distinct("region").Where("region <> ''").Count(&stats.RegionCount).Error; err != nil {
		return nil, err
	}

	var avgPrice *float64
	if err := r.db.WithContext(ctx).
		Model(&model.Daycare{}).
		Select("AVG(price)").
		Where("price IS NOT NULL").
		Scan(&avgPrice).Error; err != nil {
		return nil, err
	}
	if avgPrice != nil {
		stats.AveragePrice = *avgPrice
	}

	return stats, nil
}
