package utils

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// SMTPRelay delivers through a host/port/credential SMTP server
type SMTPRelay struct {
	client *mail.Client
	domain string
}

// NewSMTPRelay builds an SMTP client from SMTP_* settings
func NewSMTPRelay(cfg Config) (*SMTPRelay, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST is not set", ErrRelayNotConfigured)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(smtpTLSPolicy(cfg)),
		mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.SMTPHost,
			InsecureSkipVerify: cfg.SMTPInsecureSkipVerify,
		}),
	}
	if cfg.SMTPPort == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &SMTPRelay{client: client, domain: senderDomain(cfg.MailFrom, cfg.SMTPHost)}, nil
}

// smtpTLSPolicy requires STARTTLS when credentials are set, since PLAIN auth is refused
// on an unencrypted connection. Relays without credentials may stay in plain text.
func smtpTLSPolicy(cfg Config) mail.TLSPolicy {
	if cfg.SMTPUser != "" {
		return mail.TLSMandatory
	}
	return mail.TLSOpportunistic
}

func senderDomain(from, fallback string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 {
		return strings.Trim(from[i+1:], "> ")
	}
	return fallback
}

func (r *SMTPRelay) Send(ctx context.Context, m Message) (string, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return "", fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return "", fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetDate()
	id := fmt.Sprintf("%s@%s", uuid.NewString(), r.domain)
	msg.SetMessageIDWithValue(id)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)

	if err := r.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", err
	}
	return "<" + id + ">", nil
}

// Verify opens and closes a connection, authenticating when credentials are set
func (r *SMTPRelay) Verify(ctx context.Context) error {
	if err := r.client.DialWithContext(ctx); err != nil {
		return err
	}
	return r.client.Close()
}
