package dto

import (
	"time"

	"github.com/daycarehub/backend/internal/model"
)

type UserResponse struct {
	ID            uint          `json:"id"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Email         string        `json:"email"`
	UserType      string        `json:"userType"`
	Phone         string        `json:"phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	DaycareID     *uint         `json:"daycareId,omitempty"`
	Children      []model.Child `json:"children,omitempty"`
	EmailVerified bool          `json:"emailVerified"`
	LastLogin     *time.Time    `json:"lastLogin,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`

	CommunicationPreferences model.CommunicationPreferences `json:"communicationPreferences"`
}

// NewUserResponse maps a user model to its API shape, dropping
// credential and token fields.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		UserType:      user.UserType,
		Phone:         user.Phone,
		Address:       user.Address,
		DaycareID:     user.DaycareID,
		Children:      user.Children.Data(),
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
		CreatedAt:     user.CreatedAt,

		CommunicationPreferences: user.CommunicationPreferences.Data(),
	}
}

type UpdateProfileRequest struct {
	FirstName string       `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  string       `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone     string       `json:"phone" validate:"omitempty,max=30"`
	Address   string       `json:"address" validate:"omitempty,max=255"`
	Children  []ChildInput `json:"children" validate:"omitempty,dive"`

	CommunicationPreferences *CommunicationPreferencesInput `json:"communicationPreferences" validate:"omitempty"`
}

type CommunicationPreferencesInput struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Phone bool `json:"phone"`
}
