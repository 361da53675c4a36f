package service

import (
	"testing"
	"time"

	"github.com/daycarehub/backend/config"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"gorm.io/gorm"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	})
}

func testUser() *model.User {
	return &model.User{
		Model:    gorm.Model{ID: 42},
		Email:    "parent@example.com",
		UserType: "parent",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 30*24*time.Hour)
	user := testUser()

	tokenString, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	if claims.UserID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("Expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.UserType != user.UserType {
		t.Errorf("Expected user type %s, got %s", user.UserType, claims.UserType)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("Expected token type %s, got %s", TokenTypeAccess, claims.TokenType)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 30*24*time.Hour)

	tokenString, err := svc.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := svc.ValidateRefreshToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("Expected token type %s, got %s", TokenTypeRefresh, claims.TokenType)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestJWTService(-1*time.Minute, 30*24*time.Hour)

	tokenString, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = svc.ValidateAccessToken(tokenString)
	if err == nil {
		t.Fatal("Expected error for expired token, got nil")
	}

	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrTokenExpired.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrTokenExpired.Code, err)
	}
}

func TestTokenClassesDoNotCrossValidate(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 30*24*time.Hour)

	accessToken, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	// The secrets differ, so the access token must fail refresh
	// validation before the type claim is even considered.
	if _, err := svc.ValidateRefreshToken(accessToken); err == nil {
		t.Fatal("Expected access token to be rejected as refresh token")
	}
}

func TestWrongTokenTypeRejected(t *testing.T) {
	// Same secret for both classes so validation reaches the type check.
	svc := NewJWTService(config.JWTConfig{
		AccessSecret:  "shared-secret",
		RefreshSecret: "shared-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    30 * 24 * time.Hour,
	})

	accessToken, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = svc.ValidateRefreshToken(accessToken)
	if err == nil {
		t.Fatal("Expected error for wrong token type, got nil")
	}

	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrWrongTokenType.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrWrongTokenType.Code, err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 30*24*time.Hour)

	tokenString, err := svc.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	if err == nil {
		t.Fatal("Expected error for tampered token, got nil")
	}

	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrInvalidToken.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrInvalidToken.Code, err)
	}
}
