package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	bcryptCost = 12

	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// UserStore is the subset of user persistence the auth flows need.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByVerificationToken(ctx context.Context, token string) (*model.User, error)
	GetByResetToken(ctx context.Context, token string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// TokenPair bundles a freshly minted access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	users  UserStore
	jwt    *JWTService
	emails EmailService
}

func NewAuthService(users UserStore, jwtService *JWTService, emails EmailService) *AuthService {
	return &AuthService{
		users:  users,
		jwt:    jwtService,
		emails: emails,
	}
}

// normalizeEmail lowercases and trims an address so the unique index
// on users.email sees one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateSecureToken returns a 32-byte random token in hex form, used
// for email verification and password reset links.
func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Register creates a new account in the pending-verification state.
// No session tokens are issued; the caller must verify their email
// first. Registration succeeds even when the verification email cannot
// be delivered.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Register")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	email := normalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "Registering new user").
		String("email", email).
		String("user_type", req.UserType).
		Log()

	// The uniqueness check is global across active and inactive
	// accounts.
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.InfoWithContext(ctx, "Registration rejected, email already exists").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	}

	if !req.Consent.Email || !req.Consent.Acknowledgement {
		return nil, apperrors.NewDomainError("VALIDATION_FAILED",
			"email consent and acknowledgement must both be accepted")
	}

	if req.UserType == "parent" {
		if len(req.Children) == 0 {
			return nil, apperrors.NewDomainError("VALIDATION_FAILED",
				"parent accounts require at least one child")
		}
		for _, child := range req.Children {
			if child.Age < 1 || child.Age > 18 {
				return nil, apperrors.NewDomainError("VALIDATION_FAILED",
					"child age must be between 1 and 18")
			}
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	verificationToken, err := generateSecureToken()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	tokenExpiry := time.Now().Add(verificationTokenTTL)

	children := make([]model.Child, 0, len(req.Children))
	for _, child := range req.Children {
		children = append(children, model.Child{Name: child.Name, Age: child.Age})
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Password:  string(hashedPassword),
		UserType:  req.UserType,
		Phone:     req.Phone,
		Address:   req.Address,
		Children:  datatypes.NewJSONType(children),
		CommunicationPreferences: datatypes.NewJSONType(model.CommunicationPreferences{
			Email:           req.Consent.Email,
			SMS:             req.Consent.SMS,
			Acknowledgement: req.Consent.Acknowledgement,
		}),
		IsActive:                      true,
		EmailVerified:                 false,
		EmailVerificationToken:        verificationToken,
		EmailVerificationTokenExpires: &tokenExpiry,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User registered, verification pending").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	go s.deliverVerificationEmail(user.Email, user.FirstName, verificationToken)

	return &dto.RegisterResponse{
		User:                      dto.NewUserResponse(user),
		RequiresEmailVerification: true,
	}, nil
}

// deliverVerificationEmail runs outside the request lifecycle.
// Delivery failure is logged only; the account keeps its token so
// verification can be resent.
func (s *AuthService) deliverVerificationEmail(email, firstName, token string) {
	ctx := context.WithValue(context.Background(), ctxutil.ModuleKey, "service")
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "deliverVerificationEmail")

	if err := s.emails.SendVerificationEmail(ctx, email, firstName, token); err != nil {
		logger.ErrorWithContext(ctx, "Verification email dispatch failed").
			String("email", email).
			Err(err).
			Log()
	}
}

// VerifyEmail consumes a verification token. The token is single-use;
// a second call with the same token fails as invalid-or-expired
// because the first call cleared it.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*dto.UserResponse, bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "VerifyEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Verification failed, token not found or expired").Log()
			return nil, false, apperrors.ErrInvalidOrExpiredToken
		}
		return nil, false, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.EmailVerified {
		logger.InfoWithContext(ctx, "Email already verified").
			Uint("user_id", user.ID).
			Log()
		resp := dto.NewUserResponse(user)
		return &resp, true, nil
	}

	user.EmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationTokenExpires = nil

	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Email verified").
		Uint("user_id", user.ID).
		String("email", user.Email).
		Log()

	go s.deliverWelcomeEmail(user.Email, user.FirstName)

	resp := dto.NewUserResponse(user)
	return &resp, false, nil
}

func (s *AuthService) deliverWelcomeEmail(email, firstName string) {
	ctx := context.WithValue(context.Background(), ctxutil.ModuleKey, "service")
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "deliverWelcomeEmail")

	if err := s.emails.SendWelcomeEmail(ctx, email, firstName); err != nil {
		logger.ErrorWithContext(ctx, "Welcome email dispatch failed").
			String("email", email).
			Err(err).
			Log()
	}
}

// Login checks credentials and mints a token pair. Unknown email and
// wrong password produce the identical error so the response cannot be
// used for account enumeration.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*model.User, *TokenPair, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Login")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Login failed, account not found").Log()
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.IsActive {
		logger.WarnWithContext(ctx, "Login attempt on inactive account").
			Uint("user_id", user.ID).
			Log()
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.InfoWithContext(ctx, "Login failed, password mismatch").
			Uint("user_id", user.ID).
			Log()
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		logger.InfoWithContext(ctx, "Login blocked, email not verified").
			Uint("user_id", user.ID).
			Log()
		return nil, nil, apperrors.ErrEmailNotVerified
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login proceeds; the stamp is best effort.
		logger.WarnWithContext(ctx, "Failed to stamp last login").
			Uint("user_id", user.ID).
			Err(err).
			Log()
	}
	user.LastLogin = &now

	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return nil, nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Login successful").
		Uint("user_id", user.ID).
		String("user_type", user.UserType).
		Log()

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken validates a refresh token and mints a new access
// token. The refresh token is not rotated. The user record is fetched
// again so the new access token reflects profile changes made since
// the refresh token was issued.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*model.User, string, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "RefreshAccessToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if refreshToken == "" {
		return nil, "", apperrors.ErrInvalidRefreshToken
	}

	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		logger.InfoWithContext(ctx, "Refresh rejected").
			Err(err).
			Log()
		return nil, "", apperrors.WrapError(apperrors.ErrInvalidRefreshToken, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Access token refreshed").
		Uint("user_id", user.ID).
		Log()

	return user, accessToken, nil
}

// RequestPasswordReset starts the reset flow. It reports success
// whether or not the email maps to an account, so responses cannot be
// used to probe for registered addresses.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "RequestPasswordReset")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Password reset requested for unknown email").Log()
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !user.IsActive {
		return nil
	}

	resetToken, err := generateSecureToken()
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	expiry := time.Now().Add(resetTokenTTL)

	user.ResetPasswordToken = resetToken
	user.ResetPasswordTokenExpires = &expiry

	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password reset token issued").
		Uint("user_id", user.ID).
		Log()

	go s.deliverResetEmail(user.ID, user.Email, user.FirstName, resetToken)

	return nil
}

// deliverResetEmail clears the reset token when dispatch fails, so an
// undeliverable token cannot sit live in the database for its full
// hour.
func (s *AuthService) deliverResetEmail(userID uint, email, firstName, token string) {
	ctx := context.WithValue(context.Background(), ctxutil.ModuleKey, "service")
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "deliverResetEmail")

	err := s.emails.SendPasswordResetEmail(ctx, email, firstName, token)
	if err == nil {
		return
	}

	logger.ErrorWithContext(ctx, "Reset email dispatch failed, clearing token").
		Uint("user_id", userID).
		Err(err).
		Log()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to load user for token cleanup").
			Uint("user_id", userID).
			Err(err).
			Log()
		return
	}

	user.ResetPasswordToken = ""
	user.ResetPasswordTokenExpires = nil
	if err := s.users.Save(ctx, user); err != nil {
		logger.ErrorWithContext(ctx, "Failed to clear reset token").
			Uint("user_id", userID).
			Err(err).
			Log()
	}
}

// VerifyResetToken checks that a reset token is live without
// consuming it.
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "VerifyResetToken")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if _, err := s.users.GetByResetToken(ctx, token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return nil
}

// ResetPassword consumes a reset token and replaces the password. The
// token fields are cleared so the same link cannot be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ResetPassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	if len(newPassword) < 6 {
		return apperrors.NewDomainError("VALIDATION_FAILED",
			"password must be at least 6 characters")
	}

	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Password reset failed, token not found or expired").Log()
			return apperrors.ErrInvalidOrExpiredToken
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordTokenExpires = nil

	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password reset completed").
		Uint("user_id", user.ID).
		Log()

	return nil
}

// ResendVerification issues a fresh verification token. Like the reset
// request, it reports generic success for unknown or already verified
// emails.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ResendVerification")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.InfoWithContext(ctx, "Verification resend requested for unknown email").Log()
			return nil
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if user.EmailVerified {
		return nil
	}

	verificationToken, err := generateSecureToken()
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
	expiry := time.Now().Add(verificationTokenTTL)

	user.EmailVerificationToken = verificationToken
	user.EmailVerificationTokenExpires = &expiry

	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	go s.deliverResendVerificationEmail(user.ID, user.Email, user.FirstName, verificationToken)

	return nil
}

// deliverResendVerificationEmail clears the replacement token when
// dispatch fails.
func (s *AuthService) deliverResendVerificationEmail(userID uint, email, firstName, token string) {
	ctx := context.WithValue(context.Background(), ctxutil.ModuleKey, "service")
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "deliverResendVerificationEmail")

	err := s.emails.SendVerificationEmail(ctx, email, firstName, token)
	if err == nil {
		return
	}

	logger.ErrorWithContext(ctx, "Verification resend dispatch failed, clearing token").
		Uint("user_id", userID).
		Err(err).
		Log()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return
	}

	user.EmailVerificationToken = ""
	user.EmailVerificationTokenExpires = nil
	if err := s.users.Save(ctx, user); err != nil {
		logger.ErrorWithContext(ctx, "Failed to clear verification token").
			Uint("user_id", userID).
			Err(err).
			Log()
	}
}

// ChangePassword replaces the password for a logged-in user after
// re-checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ChangePassword")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		logger.InfoWithContext(ctx, "Password change rejected, current password mismatch").
			Uint("user_id", userID).
			Log()
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user.Password = string(hashedPassword)
	if err := s.users.Save(ctx, user); err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Password changed").
		Uint("user_id", userID).
		Log()

	return nil
}

// CheckEmail reports whether an account exists with the given email.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "CheckEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	exists, err := s.users.EmailExists(ctx, normalizeEmail(email))
	if err != nil {
		return false, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return exists, nil
}
