package repository

import (
	"context"

	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create message").
			Uint("sender_id", message.SenderID).
			Uint("recipient_id", message.RecipientID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var message model.Message
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&message)
	if result.Error != nil {
		return nil, result.Error
	}
	return &message, nil
}

// GetInbox lists messages received by a user, newest first.
func (r *MessageRepository) GetInbox(ctx context.Context, userID uint) ([]model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetInbox")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to fetch inbox").
			Uint("user_id", userID).
			Err(err).
			Log()
		return nil, err
	}
	return messages, nil
}

// GetSent lists messages sent by a user, newest first.
func (r *MessageRepository) GetSent(ctx context.Context, userID uint) ([]model.Message, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetSent")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags a received message as read.
func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "MarkRead")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	result := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
