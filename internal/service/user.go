package service

import (
	"context"
	"errors"

	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the profile for the authenticated user.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the supplied profile fields. Empty fields are
// left untouched; children and communication preferences are replaced
// wholesale when present.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "UpdateProfile")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if req.Children != nil {
		children := make([]model.Child, 0, len(req.Children))
		for _, child := range req.Children {
			children = append(children, model.Child{Name: child.Name, Age: child.Age})
		}
		user.Children = datatypes.NewJSONType(children)
	}

	if req.CommunicationPreferences != nil {
		// The registration acknowledgement is immutable from the
		// profile surface.
		prefs := user.CommunicationPreferences.Data()
		prefs.Email = req.CommunicationPreferences.Email
		prefs.SMS = req.CommunicationPreferences.SMS
		prefs.Phone = req.CommunicationPreferences.Phone
		user.CommunicationPreferences = datatypes.NewJSONType(prefs)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Profile updated").
		Uint("user_id", userID).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
