package repository

import (
	"context"

	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, application *model.Application) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create application").
			Uint("user_id", application.UserID).
			Uint("daycare_id", application.DaycareID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var application model.Application
	result := r.db.WithContext(ctx).Preload("Daycare").Where("id = ?", id).First(&application)
	if result.Error != nil {
		return nil, result.Error
	}
	return &application, nil
}

func (r *ApplicationRepository) GetByUser(ctx context.Context, userID uint) ([]model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var applications []model.Application
	err := r.db.WithContext(ctx).
		Preload("Daycare").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch applications").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, err
	}
	return applications, nil
}

// GetByDaycare lists applications submitted to one listing, for the
// provider review screen.
func (r *ApplicationRepository) GetByDaycare(ctx context.Context, daycareID uint) ([]model.Application, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByDaycare")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var applications []model.Application
	err := r.db.WithContext(ctx).
		Where("daycare_id = ?", daycareID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) Save(ctx context.Context, application *model.Application) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Save")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Save(application).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to save application").
			Uint("application_id", application.ID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).Delete(&model.Application{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
