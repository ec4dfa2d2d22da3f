// Package mailer isolates email delivery so the transport can change
// without touching the alert pipeline.
package mailer

import (
	"context"
	"strings"

	"github.com/lonestarcare/carewatch/internal/config"
	mail "github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Message is one outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends email. Callers treat delivery as best effort: errors are
// logged at the call site and never unwind a check cycle.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers through a configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.EmailFrom}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return err
	}
	if msg.ToName != "" {
		if err := out.AddToFormat(msg.ToName, msg.To); err != nil {
			return err
		}
	} else if err := out.To(msg.To); err != nil {
		return err
	}
	out.Subject(msg.Subject)

	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	out.SetBodyString(mail.TypeTextPlain, text)
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return m.client.DialAndSendWithContext(ctx, out)
}

// LogMailer records sends instead of delivering. Used when no SMTP host is
// configured so local runs still exercise the full pipeline.
type LogMailer struct {
	log *zap.Logger
}

func NewLog(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.Named("mailer.log")}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("email suppressed (no SMTP host configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Provide selects the mailer implementation from configuration.
func Provide(cfg config.Config, log *zap.Logger) (Mailer, error) {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return NewLog(log), nil
	}
	return NewSMTP(cfg)
}
