package repository

import (
	"context"
	"time"

	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "User created").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Duration(duration).
		Log()

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByID")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by ID").
				Uint("user_id", id).
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var user model.User
	result := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if result.Error != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to get user by email").
				Duration(duration).
				Err(result.Error).
				Log()
		}
		return nil, result.Error
	}

	return &user, nil
}

// EmailExists reports whether any account uses the email, regardless
// of account type.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "EmailExists")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return false, err
	}

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to check email existence").
			Err(result.Error).
			Log()
		return false, result.Error
	}

	return count > 0, nil
}

// GetByVerificationToken fetches the user holding an unexpired email
// verification token.
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByVerificationToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	result := r.db.WithContext(ctx).
		Where("email_verification_token = ? AND email_verification_token_expires > ?", token, time.Now()).
		First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// GetByResetToken fetches the active user holding an unexpired
// password reset token.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByResetToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	result := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_token_expires > ? AND is_active = ?",
			token, time.Now(), true).
		First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// Save persists all fields of an already loaded user.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Save")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	result := r.db.WithContext(ctx).Save(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to save user").
			Uint("user_id", user.ID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}

// UpdateLastLogin stamps the login time without touching other fields.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateLastLogin")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	if err := ctx.Err(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", at)
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update last login").
			Uint("user_id", userID).
			Err(result.Error).
			Log()
		return result.Error
	}

	return nil
}
