package utils

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JasonLinn/bnb-breakfast/models"
)

// ErrRelayNotConfigured is returned when the selected mail driver lacks settings
var ErrRelayNotConfigured = errors.New("mail relay not configured")

// Message is one outgoing email with HTML and plain-text bodies
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Relay delivers messages to an external mail service
type Relay interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
	Verify(ctx context.Context) error
}

// EmailService formats orders and hands them to a Relay
type EmailService struct {
	relay    Relay
	from     string
	to       string
	shopName string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewEmailService builds the relay selected by cfg.MailDriver
func NewEmailService(cfg Config, logger *slog.Logger) (*EmailService, error) {
	var (
		relay Relay
		err   error
	)
	switch cfg.MailDriver {
	case DriverSMTP:
		relay, err = NewSMTPRelay(cfg)
	case DriverPostmark:
		relay, err = NewPostmarkRelay(cfg)
	case DriverSendGrid:
		relay, err = NewSendGridRelay(cfg)
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.MailDriver)
	}
	if err != nil {
		return nil, err
	}
	if cfg.MailTo == "" {
		return nil, fmt.Errorf("%w: SMTP_TO is not set", ErrRelayNotConfigured)
	}
	return NewEmailServiceWithRelay(relay, cfg, logger), nil
}

// NewEmailServiceWithRelay wires an existing relay, used by tests and alternative transports
func NewEmailServiceWithRelay(relay Relay, cfg Config, logger *slog.Logger) *EmailService {
	if logger == nil {
		logger = NopLogger()
	}
	timeout := cfg.MailTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &EmailService{
		relay:    relay,
		from:     cfg.MailFrom,
		to:       cfg.MailTo,
		shopName: cfg.ShopName,
		timeout:  timeout,
		logger:   logger,
	}
}

// SendEmail sends a message to the specified recipient
func (es *EmailService) SendEmail(ctx context.Context, toEmail, subject, htmlContent, textContent string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, es.timeout)
	defer cancel()

	id, err := es.relay.Send(ctx, Message{
		From:    es.from,
		To:      toEmail,
		Subject: subject,
		HTML:    htmlContent,
		Text:    textContent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	es.logger.Info("email sent", "to", toEmail, "message_id", id)
	return id, nil
}

// SendOrderEmail renders the order and sends it to the staff mailbox
func (es *EmailService) SendOrderEmail(ctx context.Context, order models.OrderPayload) (string, error) {
	rendered, err := RenderOrder(order, es.shopName)
	if err != nil {
		return "", err
	}
	return es.SendEmail(ctx, es.to, rendered.Subject, rendered.HTML, rendered.Text)
}

// Verify checks connectivity to the mail relay
func (es *EmailService) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, es.timeout)
	defer cancel()

	if err := es.relay.Verify(ctx); err != nil {
		return fmt.Errorf("mail relay unreachable: %w", err)
	}
	return nil
}
