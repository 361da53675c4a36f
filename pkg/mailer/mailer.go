package mailer

import (
	"context"
	"fmt"

	"github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/pkg/circuit"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/wneessen/go-mail"
)

// Mailer delivers a rendered HTML message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, htmlBody string) error
}

// SMTPMailer sends mail through an SMTP relay. Delivery runs behind a
// circuit breaker so a dead relay fails fast instead of holding worker
// goroutines on dial timeouts.
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
	breaker  *circuit.Breaker
}

// NewSMTPMailer builds a mailer from SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.From,
		fromName: cfg.FromName,
		breaker:  circuit.NewBreaker("smtp", circuit.DefaultConfig(), logger.GetLogger()),
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.AddToFormat(toName, to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return m.breaker.Execute(func() error {
		if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
			logger.ErrorWithContext(ctx, "SMTP delivery failed").
				String("to", to).
				String("subject", subject).
				Err(err).
				Log()
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	})
}

// BreakerStats exposes the SMTP breaker state for the health endpoint.
func (m *SMTPMailer) BreakerStats() map[string]interface{} {
	return m.breaker.Stats()
}

// LogMailer writes messages to the log instead of delivering them.
// Used in development environments without an SMTP relay.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	logger.InfoWithContext(ctx, "Email delivery skipped, SMTP disabled").
		String("to", to).
		String("subject", subject).
		Int("body_size", len(htmlBody)).
		Log()
	return nil
}

// NewMailer returns the SMTP mailer when SMTP is enabled, otherwise
// the log-only mailer.
func NewMailer(cfg config.SMTPConfig) (Mailer, error) {
	if !cfg.Enabled {
		return NewLogMailer(), nil
	}
	return NewSMTPMailer(cfg)
}
