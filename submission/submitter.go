// Package submission validates the cart, sends it to the notification endpoint
// and reports the outcome. Every attempt clears the cart, whatever the result.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/JasonLinn/bnb-breakfast/cart"
	"github.com/JasonLinn/bnb-breakfast/models"
)

// ErrDelivery wraps every transport or endpoint failure
var ErrDelivery = errors.New("order notification failed")

const maxResponseBody = 64 << 10

// Receipt summarizes an order the endpoint accepted
type Receipt struct {
	MessageID     string
	RoomNumber    string
	DeliveryTime  string
	OrderDate     string
	FoodTotal     int
	BeverageTotal int
	TotalItems    int
}

// Notifier shows the outcome of a submission to the customer
type Notifier interface {
	Invalid(err *ValidationError)
	Success(r Receipt)
	Failure(reason string)
}

// Submitter posts orders to the notification endpoint
type Submitter struct {
	endpoint     string
	client       *http.Client
	roomRequired bool
	notifier     Notifier
	logger       *slog.Logger
	now          func() time.Time
	pending      atomic.Bool
}

// Option configures a Submitter
type Option func(*Submitter)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Submitter) { s.client = c }
}

// WithRoomRequired makes the room number mandatory
func WithRoomRequired(required bool) Option {
	return func(s *Submitter) { s.roomRequired = required }
}

// WithNotifier sets where outcomes are reported
func WithNotifier(n Notifier) Option {
	return func(s *Submitter) { s.notifier = n }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Submitter) { s.logger = l }
}

// WithClock overrides time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// NewSubmitter creates a Submitter for the endpoint URL (…/api/send-email)
func NewSubmitter(endpoint string, opts ...Option) *Submitter {
	s := &Submitter{
		endpoint:     endpoint,
		client:       &http.Client{Timeout: 30 * time.Second},
		roomRequired: true,
		notifier:     nopNotifier{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pending reports whether a submission is in flight; callers use it to disable input
func (s *Submitter) Pending() bool {
	return s.pending.Load()
}

// RoomRequired reports whether the room number is mandatory
func (s *Submitter) RoomRequired() bool {
	return s.roomRequired
}

// Submit validates and sends the cart. Validation failures leave the cart
// untouched and make no request. Once a request is attempted the cart and
// delivery fields are cleared, on success and on failure alike.
func (s *Submitter) Submit(ctx context.Context, e *cart.Engine) (Receipt, error) {
	draft := DraftFrom(e, s.now())
	if err := Validate(draft, s.roomRequired); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			s.notifier.Invalid(verr)
		}
		return Receipt{}, err
	}

	s.pending.Store(true)
	defer s.pending.Store(false)

	payload := BuildPayload(draft)
	res, err := s.post(ctx, payload)
	e.Clear()

	if err != nil {
		s.logger.Warn("order submission failed", "err", err)
		s.notifier.Failure(err.Error())
		return Receipt{}, err
	}

	receipt := Receipt{
		MessageID:     res.MessageID,
		RoomNumber:    payload.RoomNumber,
		DeliveryTime:  payload.DeliveryTime,
		OrderDate:     payload.OrderDate,
		FoodTotal:     payload.FoodTotal,
		BeverageTotal: payload.BeverageTotal,
		TotalItems:    payload.TotalItems,
	}
	s.logger.Info("order submitted", "message_id", res.MessageID, "total_items", payload.TotalItems)
	s.notifier.Success(receipt)
	return receipt, nil
}

// SendTestOrder posts a one-item order without touching any cart
func (s *Submitter) SendTestOrder(ctx context.Context) (models.SendEmailResponse, error) {
	item := models.OrderItem{Name: "Test item", Quantity: 1}
	return s.post(ctx, models.OrderPayload{
		Timestamp:    FormatTimestamp(s.now()),
		DeliveryTime: "8:30",
		OrderDetails: "Test item: 1",
		TotalItems:   1,
		Items:        []models.OrderItem{item},
	})
}

// Ping asks the endpoint to verify its mail relay
func (s *Submitter) Ping(ctx context.Context) (models.SendEmailResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return models.SendEmailResponse{}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return s.do(req)
}

func (s *Submitter) post(ctx context.Context, payload models.OrderPayload) (models.SendEmailResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return models.SendEmailResponse{}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.SendEmailResponse{}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *Submitter) do(req *http.Request) (models.SendEmailResponse, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return models.SendEmailResponse{}, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	var out models.SendEmailResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&out); err != nil {
		return models.SendEmailResponse{}, fmt.Errorf("%w: malformed response (HTTP %d)", ErrDelivery, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !out.Success {
		reason := out.Message
		if out.Error != "" {
			reason += ": " + out.Error
		}
		if reason == "" {
			reason = "no details"
		}
		return out, fmt.Errorf("%w: HTTP %d: %s", ErrDelivery, resp.StatusCode, reason)
	}
	return out, nil
}

type nopNotifier struct{}

func (nopNotifier) Invalid(*ValidationError) {}
func (nopNotifier) Success(Receipt)          {}
func (nopNotifier) Failure(string)           {}
