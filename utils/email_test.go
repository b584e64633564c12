package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/JasonLinn/bnb-breakfast/models"
)

type stubRelay struct {
	msgs []Message
	err  error
}

func (s *stubRelay) Send(_ context.Context, m Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.msgs = append(s.msgs, m)
	return "id-1", nil
}

func (s *stubRelay) Verify(context.Context) error { return s.err }

func TestRenderOrderGrouped(t *testing.T) {
	order := models.OrderPayload{
		Timestamp:     "2026/10/19 上午7:00:00",
		DeliveryTime:  "8:30",
		RoomNumber:    "101",
		OrderNote:     "no onion",
		FoodItems:     []models.OrderItem{{Name: "Platter", Quantity: 2}, {Name: "Pancake <big>", Quantity: 1}},
		BeverageItems: []models.OrderItem{{Name: "Black tea (熱)", Quantity: 1}},
		Items:         []models.OrderItem{{Name: "ignored when grouped", Quantity: 9}},
	}

	r, err := RenderOrder(order, "Test Brunch")
	require.NoError(t, err)

	assert.Equal(t, "🍳 新訂單 - 房號 101 - 8:30 送餐 (4份)", r.Subject)
	assert.Contains(t, r.Text, "餐點 (3份):\n  Platter: 2份")
	assert.Contains(t, r.Text, "飲料 (1份):")
	assert.Contains(t, r.Text, "送餐日期: 未指定")
	assert.Contains(t, r.Text, "快速複製:\n房號 101 / 8:30 送餐 / 未指定\nPlatter x2\nPancake <big> x1\nBlack tea (熱) x1\n備註: no onion")
	assert.NotContains(t, r.Text, "ignored when grouped")
	assert.Contains(t, r.HTML, "Pancake &lt;big&gt;")
	assert.Contains(t, r.HTML, "Test Brunch")
}

func TestRenderOrderFlatItems(t *testing.T) {
	order := models.OrderPayload{
		DeliveryTime: "9:00",
		Items:        []models.OrderItem{{Name: "Test item", Quantity: 1}},
	}

	r, err := RenderOrder(order, "Test Brunch")
	require.NoError(t, err)

	assert.Equal(t, "🍳 新訂單 - 房號 未提供 - 9:00 送餐 (1份)", r.Subject)
	assert.Contains(t, r.Text, "訂單明細 (1份):\n  Test item: 1份")
	assert.Contains(t, r.Text, "備註: 無")
	assert.NotContains(t, r.Text, "Test item x1\n備註")
}

func TestRenderOrderSentinelsShowAsLabels(t *testing.T) {
	order := models.OrderPayload{
		DeliveryTime: "10:00",
		RoomNumber:   models.RoomNotProvided,
		OrderDate:    models.DateUnspecified,
		OrderNote:    models.NoteNone,
		FoodItems:    []models.OrderItem{{Name: "洋蔥燒肉蛋餅", Quantity: 1}},
	}

	r, err := RenderOrder(order, "ToDo早午餐 利澤店")
	require.NoError(t, err)

	assert.Contains(t, r.Text, "房號: 未提供")
	assert.Contains(t, r.Text, "送餐日期: 未指定")
	assert.Contains(t, r.Text, "備註: 無")
	assert.NotContains(t, r.Text, models.RoomNotProvided)
	assert.Contains(t, r.HTML, "<h3>🍽️ 餐點 (1 份)</h3>")
	assert.Contains(t, r.HTML, "此郵件由 ToDo早午餐 利澤店 訂單系統 自動發送")
}

func TestEmailService(t *testing.T) {
	relay := &stubRelay{}
	es := NewEmailServiceWithRelay(relay, Config{MailFrom: "a@x.com", MailTo: "staff@x.com", ShopName: "S"}, nil)

	id, err := es.SendOrderEmail(context.Background(), models.OrderPayload{
		DeliveryTime: "8:00",
		Items:        []models.OrderItem{{Name: "Platter", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	require.Len(t, relay.msgs, 1)
	assert.Equal(t, "a@x.com", relay.msgs[0].From)
	assert.Equal(t, "staff@x.com", relay.msgs[0].To)
	assert.NotEmpty(t, relay.msgs[0].HTML)
	assert.NoError(t, es.Verify(context.Background()))

	relay.err = errors.New("boom")
	_, err = es.SendEmail(context.Background(), "x@x.com", "s", "h", "t")
	assert.ErrorContains(t, err, "failed to send email: boom")
	assert.ErrorContains(t, es.Verify(context.Background()), "boom")
}

func TestNewEmailServiceConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "unknownDriver", cfg: Config{MailDriver: "pigeon", MailTo: "s@x.com"}},
		{name: "smtpWithoutHost", cfg: Config{MailDriver: DriverSMTP, MailTo: "s@x.com"}},
		{name: "postmarkWithoutToken", cfg: Config{MailDriver: DriverPostmark, MailTo: "s@x.com"}},
		{name: "sendgridWithoutKey", cfg: Config{MailDriver: DriverSendGrid, MailTo: "s@x.com"}},
		{name: "noRecipient", cfg: Config{MailDriver: DriverPostmark, PostmarkServerToken: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmailService(tt.cfg, nil)
			assert.Error(t, err)
		})
	}

	_, err := NewEmailService(Config{MailDriver: DriverSendGrid, MailTo: "s@x.com"}, nil)
	assert.ErrorIs(t, err, ErrRelayNotConfigured)
}

func TestNewEmailServiceDrivers(t *testing.T) {
	for _, cfg := range []Config{
		{MailDriver: DriverSMTP, SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUser: "u", SMTPPass: "p", MailFrom: "orders@example.com", MailTo: "s@x.com"},
		{MailDriver: DriverPostmark, PostmarkServerToken: "token", MailTo: "s@x.com"},
		{MailDriver: DriverSendGrid, SendGridAPIKey: "key", MailTo: "s@x.com"},
	} {
		t.Run(cfg.MailDriver, func(t *testing.T) {
			es, err := NewEmailService(cfg, nil)
			require.NoError(t, err)
			assert.NotNil(t, es)
		})
	}
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "example.com", senderDomain("Orders <orders@example.com>", "fallback"))
	assert.Equal(t, "fallback", senderDomain("", "fallback"))
}

func TestSMTPTLSPolicy(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want mail.TLSPolicy
	}{
		{name: "withCredentials", cfg: Config{SMTPHost: "smtp.example.com", SMTPUser: "u", SMTPPass: "p"}, want: mail.TLSMandatory},
		{name: "anonymous", cfg: Config{SMTPHost: "relay.local"}, want: mail.TLSOpportunistic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, smtpTLSPolicy(tt.cfg))
		})
	}
}
