package dto

import "github.com/daycarehub/backend/internal/model"

// ChildInput describes a dependent supplied during registration.
type ChildInput struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Age  int    `json:"age" validate:"required,gte=1,lte=18"`
}

// ConsentInput holds the consent flags collected at registration.
// Email and acknowledgement are mandatory; SMS is optional.
type ConsentInput struct {
	Email           bool `json:"email"`
	SMS             bool `json:"sms"`
	Acknowledgement bool `json:"acknowledgement"`
}

type RegisterRequest struct {
	FirstName string       `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string       `json:"lastName" validate:"required,min=1,max=100"`
	Email     string       `json:"email" validate:"required,email"`
	Password  string       `json:"password" validate:"required,min=6,max=100"`
	UserType  string       `json:"userType" validate:"required,oneof=parent provider"`
	Phone     string       `json:"phone" validate:"omitempty,max=30"`
	Address   string       `json:"address" validate:"omitempty,max=255"`
	Children  []ChildInput `json:"children" validate:"omitempty,dive"`
	Consent   ConsentInput `json:"consent"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	// Optional in the body; the refresh cookie is preferred.
	RefreshToken string `json:"refreshToken" validate:"omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=100"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=100"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterResponse is returned on successful registration. No session
// tokens are issued until the email is verified.
type RegisterResponse struct {
	User                      UserResponse `json:"user"`
	RequiresEmailVerification bool         `json:"requiresEmailVerification"`
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// NewLoginResponse assembles the login payload from a user and a
// freshly minted token pair.
func NewLoginResponse(user *model.User, accessToken, refreshToken string, expiresIn int) LoginResponse {
	return LoginResponse{
		User:         NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}
}
