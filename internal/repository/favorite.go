package repository

import (
	"context"

	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create favorite").
			Uint("user_id", favorite.UserID).
			Uint("daycare_id", favorite.DaycareID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *FavoriteRepository) GetByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Daycare").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch favorites").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, err
	}
	return favorites, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, daycareID uint) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Exists")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND daycare_id = ?", userID, daycareID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByUserAndDaycare removes one saved listing. Returns
// gorm.ErrRecordNotFound when nothing was deleted.
func (r *FavoriteRepository) DeleteByUserAndDaycare(ctx context.Context, userID, daycareID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByUserAndDaycare")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND daycare_id = ?", userID, daycareID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete favorite").
			Uint("user_id", userID).
			Uint("daycare_id", daycareID).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
