package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	jwemail "github.com/jordan-wright/email"
	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them. Used with EMAIL_PROVIDER=log in ENV=local.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "email (local dev)", "to", to, "subject", subject, "body", body)
	return nil
}

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

// Send ignores ctx: net/smtp has no cancellation.
func (s *SMTPSender) Send(_ context.Context, to, subject, body string) error {
	e := jwemail.NewEmail()
	e.From = s.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(body)

	if err := e.Send(s.addr, s.auth); err != nil {
		return fmt.Errorf("send email via smtp: %w", err)
	}
	return nil
}

type Options struct {
	Provider     string // log | resend | smtp
	From         string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

// NewSender picks the backend named by opts.Provider, defaulting to LogSender.
func NewSender(opts Options, logger *slog.Logger) Sender {
	switch opts.Provider {
	case "resend":
		return &ResendSender{
			client: resend.NewClient(opts.ResendAPIKey),
			from:   opts.From,
		}
	case "smtp":
		var auth smtp.Auth
		if opts.SMTPUsername != "" {
			auth = smtp.PlainAuth("", opts.SMTPUsername, opts.SMTPPassword, opts.SMTPHost)
		}
		return &SMTPSender{
			addr: opts.SMTPHost + ":" + opts.SMTPPort,
			auth: auth,
			from: opts.From,
		}
	default:
		return &LogSender{logger: logger.With("component", "email")}
	}
}
