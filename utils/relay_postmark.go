package utils

import (
	"context"
	"fmt"

	"github.com/keighl/postmark"
)

// PostmarkRelay delivers through the Postmark API
type PostmarkRelay struct {
	client *postmark.Client
}

// NewPostmarkRelay builds a Postmark client from POSTMARK_SERVER_TOKEN
func NewPostmarkRelay(cfg Config) (*PostmarkRelay, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is not set", ErrRelayNotConfigured)
	}
	return &PostmarkRelay{client: postmark.NewClient(cfg.PostmarkServerToken, "")}, nil
}

// Send ignores ctx beyond an up-front cancellation check; the Postmark client has no context support
func (r *PostmarkRelay) Send(ctx context.Context, m Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := r.client.SendEmail(postmark.Email{
		From:     m.From,
		To:       m.To,
		Subject:  m.Subject,
		HtmlBody: m.HTML,
		TextBody: m.Text,
		Tag:      "breakfast-order",
	})
	if err != nil {
		return "", err
	}
	if res.ErrorCode != 0 {
		return "", fmt.Errorf("postmark error %d: %s", res.ErrorCode, res.Message)
	}
	return res.MessageID, nil
}

func (r *PostmarkRelay) Verify(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.client.GetCurrentServer()
	return err
}
