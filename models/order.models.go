package models

import "time"

// Sentinels written into the request body for absent optional fields
const (
	RoomNotProvided = "not provided"
	DateUnspecified = "unspecified"
	NoteNone        = "none"
)

// OrderDraft is the submission-ready snapshot of the cart and delivery metadata
type OrderDraft struct {
	RoomNumber   Option[string]
	DeliveryTime string
	OrderDate    Option[string]
	OrderNote    Option[string]
	Lines        []CartLine
	CreatedAt    time.Time
}

// OrderItem is one aggregated row of the request body
type OrderItem struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// OrderPayload is the JSON body posted to the notification endpoint
type OrderPayload struct {
	Timestamp     string      `json:"timestamp"`
	DeliveryTime  string      `json:"deliveryTime" validate:"required"`
	RoomNumber    string      `json:"roomNumber,omitempty"`
	OrderDate     string      `json:"orderDate,omitempty"`
	OrderNote     string      `json:"orderNote,omitempty"`
	OrderDetails  string      `json:"orderDetails,omitempty"`
	FoodItems     []OrderItem `json:"foodItems,omitempty" validate:"dive"`
	BeverageItems []OrderItem `json:"beverageItems,omitempty" validate:"dive"`
	FoodTotal     int         `json:"foodTotal"`
	BeverageTotal int         `json:"beverageTotal"`
	TotalItems    int         `json:"totalItems"`
	Items         []OrderItem `json:"items,omitempty" validate:"dive"`
}

// ItemCount returns how many rows the payload carries across all groups
func (p OrderPayload) ItemCount() int {
	return len(p.FoodItems) + len(p.BeverageItems) + len(p.Items)
}

// SendEmailResponse is the envelope returned by /api/send-email
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OrderNotified is announced after the mail relay accepted an order
type OrderNotified struct {
	ID           string    `json:"id"`
	MessageID    string    `json:"message_id"`
	RoomNumber   string    `json:"room_number"`
	DeliveryTime string    `json:"delivery_time"`
	TotalItems   int       `json:"total_items"`
	NotifiedAt   time.Time `json:"notified_at"`
}
