package utils

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridHost = "https://api.sendgrid.com"

// SendGridRelay delivers through the SendGrid v3 API
type SendGridRelay struct {
	apiKey string
	client *sendgrid.Client
}

// NewSendGridRelay builds a SendGrid client from SENDGRID_API_KEY
func NewSendGridRelay(cfg Config) (*SendGridRelay, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("%w: SENDGRID_API_KEY is not set", ErrRelayNotConfigured)
	}
	return &SendGridRelay{apiKey: cfg.SendGridAPIKey, client: sendgrid.NewSendClient(cfg.SendGridAPIKey)}, nil
}

func (r *SendGridRelay) Send(ctx context.Context, m Message) (string, error) {
	from := sgmail.NewEmail("", m.From)
	to := sgmail.NewEmail("", m.To)
	message := sgmail.NewSingleEmail(from, m.Subject, to, m.Text, m.HTML)

	res, err := r.client.SendWithContext(ctx, message)
	if err != nil {
		return "", err
	}
	if res.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("sendgrid returned %d: %s", res.StatusCode, res.Body)
	}
	if ids := res.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}

// Verify lists the API key scopes, which fails on bad keys or no connectivity
func (r *SendGridRelay) Verify(ctx context.Context) error {
	req := sendgrid.GetRequest(r.apiKey, "/v3/scopes", sendGridHost)
	req.Method = rest.Get
	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid returned %d", res.StatusCode)
	}
	return nil
}
