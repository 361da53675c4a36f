package service

import (
	"errors"
	"time"

	"github.com/daycarehub/backend/config"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Token classes carried in the type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the claims shape shared by both token classes.
type TokenClaims struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies the two token classes. Access and
// refresh tokens use distinct secrets, so one class can never verify
// under the other's key even before the type claim is checked.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

// GenerateAccessToken mints a short-lived access token for the user.
func (s *JWTService) GenerateAccessToken(user *model.User) (string, error) {
	return s.generate(user, TokenTypeAccess, s.accessSecret, s.accessTTL)
}

// GenerateRefreshToken mints a long-lived refresh token for the user.
func (s *JWTService) GenerateRefreshToken(user *model.User) (string, error) {
	return s.generate(user, TokenTypeRefresh, s.refreshSecret, s.refreshTTL)
}

func (s *JWTService) generate(user *model.User, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		UserType:  user.UserType,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, TokenTypeAccess, s.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, TokenTypeRefresh, s.refreshSecret)
}

func (s *JWTService) validate(tokenString, wantType string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.WrapError(apperrors.ErrTokenExpired, err)
		}
		return nil, apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, apperrors.ErrWrongTokenType
	}

	return claims, nil
}

// AccessTTL returns the access token lifetime.
func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the refresh token lifetime.
func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}
