package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/internal/dto"
	apperrors "github.com/daycarehub/backend/internal/errors"
	"github.com/daycarehub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeUserStore holds users in memory and mimics the repository's
// lookup semantics, including token expiry checks.
type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*model.User), nextID: 1}
}

func (s *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeUserStore) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range s.users {
		if user.EmailVerificationToken == token &&
			user.EmailVerificationTokenExpires != nil &&
			user.EmailVerificationTokenExpires.After(time.Now()) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	for _, user := range s.users {
		if user.ResetPasswordToken == token &&
			user.ResetPasswordTokenExpires != nil &&
			user.ResetPasswordTokenExpires.After(time.Now()) &&
			user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Save(ctx context.Context, user *model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLogin = &at
	return nil
}

// fakeEmailService records dispatches and can be told to fail. The
// mutex matters because delivery runs on background goroutines.
type fakeEmailService struct {
	mu               sync.Mutex
	verificationSent int
	resetSent        int
	welcomeSent      int
	fail             bool
}

func (s *fakeEmailService) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *fakeEmailService) SendVerificationEmail(ctx context.Context, email, firstName, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.verificationSent++
	return nil
}

func (s *fakeEmailService) SendPasswordResetEmail(ctx context.Context, email, firstName, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.resetSent++
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.welcomeSent++
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeEmailService) {
	store := newFakeUserStore()
	emails := &fakeEmailService{}
	jwtSvc := NewJWTService(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    30 * 24 * time.Hour,
	})
	return NewAuthService(store, jwtSvc, emails), store, emails
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName: "Jordan",
		LastName:  "Lee",
		Email:     "jordan@example.com",
		Password:  "sup3rsecret",
		UserType:  "parent",
		Children:  []dto.ChildInput{{Name: "Sam", Age: 3}},
		Consent:   dto.ConsentInput{Email: true, Acknowledgement: true},
	}
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	svc, store, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !resp.RequiresEmailVerification {
		t.Error("Expected requiresEmailVerification to be true")
	}

	user, err := store.GetByEmail(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("User not persisted: %v", err)
	}
	if user.EmailVerified {
		t.Error("Expected new user to be unverified")
	}
	if user.EmailVerificationToken == "" {
		t.Error("Expected a verification token to be issued")
	}
	if len(user.EmailVerificationToken) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(user.EmailVerificationToken))
	}
	if user.Password == "sup3rsecret" {
		t.Error("Password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("sup3rsecret")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}
}

func TestRegisterPersistsConsent(t *testing.T) {
	svc, store, _ := newTestAuthService()

	req := validRegisterRequest()
	req.Consent = dto.ConsentInput{Email: true, SMS: true, Acknowledgement: true}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := store.GetByEmail(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("User not persisted: %v", err)
	}

	prefs := user.CommunicationPreferences.Data()
	if !prefs.Email {
		t.Error("Expected email consent persisted")
	}
	if !prefs.SMS {
		t.Error("Expected sms consent persisted")
	}
	if !prefs.Acknowledgement {
		t.Error("Expected acknowledgement persisted")
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	req := validRegisterRequest()
	req.Email = "  Jordan@Example.COM "

	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := store.GetByEmail(ctx, "jordan@example.com")
	if err != nil {
		t.Fatalf("User not found under canonical address: %v", err)
	}
	if user.Email != "jordan@example.com" {
		t.Errorf("Expected stored email jordan@example.com, got %q", user.Email)
	}

	// A different casing of the same address is the same account.
	_, err = svc.Register(ctx, validRegisterRequest())
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrEmailExists.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrEmailExists.Code, err)
	}

	exists, err := svc.CheckEmail(ctx, "JORDAN@example.com")
	if err != nil {
		t.Fatalf("CheckEmail failed: %v", err)
	}
	if !exists {
		t.Error("Expected CheckEmail to match regardless of casing")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	_, err := svc.Register(ctx, validRegisterRequest())
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrEmailExists.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrEmailExists.Code, err)
	}
}

func TestRegisterValidationRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{
			name:   "Missing email consent",
			mutate: func(r *dto.RegisterRequest) { r.Consent.Email = false },
		},
		{
			name:   "Missing acknowledgement",
			mutate: func(r *dto.RegisterRequest) { r.Consent.Acknowledgement = false },
		},
		{
			name:   "Parent without children",
			mutate: func(r *dto.RegisterRequest) { r.Children = nil },
		},
		{
			name:   "Child age out of range",
			mutate: func(r *dto.RegisterRequest) { r.Children = []dto.ChildInput{{Name: "Sam", Age: 25}} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService()
			req := validRegisterRequest()
			tt.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			domainErr := apperrors.GetDomainError(err)
			if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
				t.Errorf("Expected VALIDATION_FAILED, got %v", err)
			}
		})
	}
}

func TestProviderRegistersWithoutChildren(t *testing.T) {
	svc, _, _ := newTestAuthService()

	req := validRegisterRequest()
	req.UserType = "provider"
	req.Children = nil

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("Provider registration failed: %v", err)
	}
}

func registerAndVerify(t *testing.T, svc *AuthService, store *fakeUserStore) *model.User {
	t.Helper()

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user, err := store.GetByEmail(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("User missing: %v", err)
	}
	if _, _, err := svc.VerifyEmail(context.Background(), user.EmailVerificationToken); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	user, _ = store.GetByEmail(context.Background(), "jordan@example.com")
	return user
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user, _ := store.GetByEmail(ctx, "jordan@example.com")
	token := user.EmailVerificationToken

	_, already, err := svc.VerifyEmail(ctx, token)
	if err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}
	if already {
		t.Error("First verification reported already-verified")
	}

	// The token was cleared, so a replay fails.
	_, _, err = svc.VerifyEmail(ctx, token)
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrInvalidOrExpiredToken.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrInvalidOrExpiredToken.Code, err)
	}
}

func TestLoginErrorKinds(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	registerAndVerify(t, svc, store)

	tests := []struct {
		name     string
		prepare  func()
		email    string
		password string
		wantCode string
	}{
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "sup3rsecret",
			wantCode: apperrors.ErrInvalidCredentials.Code,
		},
		{
			name:     "Wrong password",
			email:    "jordan@example.com",
			password: "wrong",
			wantCode: apperrors.ErrInvalidCredentials.Code,
		},
		{
			name: "Inactive account",
			prepare: func() {
				user, _ := store.GetByEmail(ctx, "jordan@example.com")
				user.IsActive = false
				store.Save(ctx, user)
			},
			email:    "jordan@example.com",
			password: "sup3rsecret",
			wantCode: apperrors.ErrInvalidCredentials.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepare != nil {
				tt.prepare()
			}
			_, _, err := svc.Login(ctx, dto.LoginRequest{Email: tt.email, Password: tt.password})
			domainErr := apperrors.GetDomainError(err)
			if domainErr == nil || domainErr.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestLoginBlockedBeforeVerification(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "sup3rsecret"})
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrEmailNotVerified.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrEmailNotVerified.Code, err)
	}
}

func TestLoginStampsLastLoginAndMintsPair(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	registerAndVerify(t, svc, store)

	user, tokens, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "sup3rsecret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Expected both tokens to be minted")
	}
	if user.LastLogin == nil {
		t.Error("Expected lastLogin to be stamped")
	}

	stored, _ := store.GetByEmail(ctx, "jordan@example.com")
	if stored.LastLogin == nil {
		t.Error("Expected lastLogin persisted")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	registerAndVerify(t, svc, store)

	_, tokens, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "sup3rsecret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, accessToken, err := svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}
	if accessToken == "" {
		t.Error("Expected a new access token")
	}
	if user.Email != "jordan@example.com" {
		t.Errorf("Unexpected user %s", user.Email)
	}

	// An access token is not a valid refresh token.
	if _, _, err := svc.RefreshAccessToken(ctx, tokens.AccessToken); err == nil {
		t.Error("Expected access token to be rejected for refresh")
	}

	// Empty input is rejected up front.
	_, _, err = svc.RefreshAccessToken(ctx, "")
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrInvalidRefreshToken.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrInvalidRefreshToken.Code, err)
	}
}

func TestRefreshFailsWhenUserDeleted(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	user := registerAndVerify(t, svc, store)

	_, tokens, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "sup3rsecret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	delete(store.users, user.ID)

	_, _, err = svc.RefreshAccessToken(ctx, tokens.RefreshToken)
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrUserNotFound.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrUserNotFound.Code, err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	registerAndVerify(t, svc, store)

	if err := svc.RequestPasswordReset(ctx, "jordan@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}

	user, _ := store.GetByEmail(ctx, "jordan@example.com")
	token := user.ResetPasswordToken
	if token == "" {
		t.Fatal("Expected reset token to be issued")
	}

	if err := svc.VerifyResetToken(ctx, token); err != nil {
		t.Fatalf("VerifyResetToken failed: %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "newpassword"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	// The token is single use.
	err := svc.ResetPassword(ctx, token, "anotherpassword")
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrInvalidOrExpiredToken.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrInvalidOrExpiredToken.Code, err)
	}

	// The new password works.
	if _, _, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "newpassword"}); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
	// The old one does not.
	if _, _, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "sup3rsecret"}); err == nil {
		t.Error("Login with old password should fail")
	}
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.ResetPassword(context.Background(), "whatever", "short")
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("Expected VALIDATION_FAILED, got %v", err)
	}
}

func TestEnumerationResistantResponses(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	// Both calls succeed even though no such account exists.
	if err := svc.RequestPasswordReset(ctx, "ghost@example.com"); err != nil {
		t.Errorf("Expected generic success for unknown email, got %v", err)
	}
	if err := svc.ResendVerification(ctx, "ghost@example.com"); err != nil {
		t.Errorf("Expected generic success for unknown email, got %v", err)
	}
}

func TestResendVerificationReplacesToken(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	before, _ := store.GetByEmail(ctx, "jordan@example.com")

	if err := svc.ResendVerification(ctx, "jordan@example.com"); err != nil {
		t.Fatalf("ResendVerification failed: %v", err)
	}
	after, _ := store.GetByEmail(ctx, "jordan@example.com")

	if after.EmailVerificationToken == before.EmailVerificationToken {
		t.Error("Expected a fresh verification token")
	}
	// The old token no longer verifies.
	if _, _, err := svc.VerifyEmail(ctx, before.EmailVerificationToken); err == nil {
		t.Error("Expected the replaced token to be rejected")
	}
}

func TestResendVerificationNoopWhenVerified(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	registerAndVerify(t, svc, store)

	if err := svc.ResendVerification(ctx, "jordan@example.com"); err != nil {
		t.Fatalf("ResendVerification failed: %v", err)
	}
	user, _ := store.GetByEmail(ctx, "jordan@example.com")
	if user.EmailVerificationToken != "" {
		t.Error("Verified account should not receive a new token")
	}
}

func TestDeliverResetEmailClearsTokenOnFailure(t *testing.T) {
	svc, store, emails := newTestAuthService()
	user := registerAndVerify(t, svc, store)

	expiry := time.Now().Add(time.Hour)
	stored := store.users[user.ID]
	stored.ResetPasswordToken = "doomed-token"
	stored.ResetPasswordTokenExpires = &expiry

	emails.setFail(true)
	svc.deliverResetEmail(user.ID, user.Email, user.FirstName, "doomed-token")

	after := store.users[user.ID]
	if after.ResetPasswordToken != "" {
		t.Error("Expected reset token to be cleared after failed dispatch")
	}
	if after.ResetPasswordTokenExpires != nil {
		t.Error("Expected reset token expiry to be cleared")
	}
}

func TestChangePassword(t *testing.T) {
	svc, store, _ := newTestAuthService()
	ctx := context.Background()
	user := registerAndVerify(t, svc, store)

	err := svc.ChangePassword(ctx, user.ID, "wrong", "brandnewpass")
	domainErr := apperrors.GetDomainError(err)
	if domainErr == nil || domainErr.Code != apperrors.ErrIncorrectPassword.Code {
		t.Errorf("Expected code %s, got %v", apperrors.ErrIncorrectPassword.Code, err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "sup3rsecret", "brandnewpass"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if _, _, err := svc.Login(ctx, dto.LoginRequest{Email: "jordan@example.com", Password: "brandnewpass"}); err != nil {
		t.Errorf("Login with changed password failed: %v", err)
	}
}

func TestCheckEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	exists, err := svc.CheckEmail(ctx, "jordan@example.com")
	if err != nil {
		t.Fatalf("CheckEmail failed: %v", err)
	}
	if exists {
		t.Error("Expected email to be unknown")
	}

	if _, err := svc.Register(ctx, validRegisterRequest()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	exists, err = svc.CheckEmail(ctx, "jordan@example.com")
	if err != nil {
		t.Fatalf("CheckEmail failed: %v", err)
	}
	if !exists {
		t.Error("Expected email to be known")
	}
}
