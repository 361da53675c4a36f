package service

import (
	"context"
	"fmt"

	"github.com/daycarehub/backend/config"
	ctxutil "github.com/daycarehub/backend/pkg/context"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/daycarehub/backend/pkg/mailer"
)

// EmailService dispatches the transactional emails the auth flows
// need. Callers treat dispatch as fire-and-forget; delivery failure
// never fails the triggering operation.
type EmailService interface {
	SendVerificationEmail(ctx context.Context, to, firstName, token string) error
	SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
}

type MailEmailService struct {
	mailer    mailer.Mailer
	appName   string
	publicURL string
}

func NewEmailService(m mailer.Mailer, cfg *config.Config) *MailEmailService {
	return &MailEmailService{
		mailer:    m,
		appName:   cfg.App.Name,
		publicURL: cfg.App.PublicURL,
	}
}

func (s *MailEmailService) SendVerificationEmail(ctx context.Context, to, firstName, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "SendVerificationEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	body, err := mailer.Render(mailer.TemplateVerification, mailer.TemplateData{
		AppName:     s.appName,
		FirstName:   firstName,
		Link:        fmt.Sprintf("%s/verify-email?token=%s", s.publicURL, token),
		ExpiryHours: 24,
	})
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Sending verification email").
		String("to", to).
		Log()

	return s.mailer.Send(ctx, to, firstName, "Verify your email address", body)
}

func (s *MailEmailService) SendPasswordResetEmail(ctx context.Context, to, firstName, token string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "SendPasswordResetEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	body, err := mailer.Render(mailer.TemplatePasswordReset, mailer.TemplateData{
		AppName:     s.appName,
		FirstName:   firstName,
		Link:        fmt.Sprintf("%s/reset-password?token=%s", s.publicURL, token),
		ExpiryHours: 1,
	})
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Sending password reset email").
		String("to", to).
		Log()

	return s.mailer.Send(ctx, to, firstName, "Reset your password", body)
}

func (s *MailEmailService) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "SendWelcomeEmail")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	body, err := mailer.Render(mailer.TemplateWelcome, mailer.TemplateData{
		AppName:   s.appName,
		FirstName: firstName,
		Link:      fmt.Sprintf("%s/search", s.publicURL),
	})
	if err != nil {
		return err
	}

	logger.InfoWithContext(ctx, "Sending welcome email").
		String("to", to).
		Log()

	return s.mailer.Send(ctx, to, firstName, fmt.Sprintf("Welcome to %s", s.appName), body)
}
