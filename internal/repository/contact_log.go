package repository

import (
	"context"

	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactLogRepository struct {
	db *gorm.DB
}

func NewContactLogRepository(db *gorm.DB) *ContactLogRepository {
	return &ContactLogRepository{db: db}
}

func (r *ContactLogRepository) Create(ctx context.Context, log *model.ContactLog) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create contact log").
			Uint("user_id", log.UserID).
			Uint("daycare_id", log.DaycareID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *ContactLogRepository) GetByUser(ctx context.Context, userID uint) ([]model.ContactLog, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByUser")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var logs []model.ContactLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch contact logs").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, err
	}
	return logs, nil
}
