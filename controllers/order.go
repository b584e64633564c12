// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/JasonLinn/bnb-breakfast/events"
	"github.com/JasonLinn/bnb-breakfast/models"
	"github.com/JasonLinn/bnb-breakfast/utils"
)

const maxOrderBody = 1 << 20

// OrderController relays submitted orders to the staff mailbox
type OrderController struct {
	EmailService *utils.EmailService
	Publisher    events.Publisher
	Logger       *slog.Logger
	validate     *validator.Validate
}

// NewOrderController creates a new OrderController
func NewOrderController(emailService *utils.EmailService, publisher events.Publisher, logger *slog.Logger) *OrderController {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = utils.NopLogger()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &OrderController{
		EmailService: emailService,
		Publisher:    publisher,
		Logger:       logger,
		validate:     v,
	}
}

func writeJSON(w http.ResponseWriter, status int, body models.SendEmailResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// SendOrderEmail handles POST /api/send-email
func (oc *OrderController) SendOrderEmail(w http.ResponseWriter, r *http.Request) {
	var order models.OrderPayload
	r.Body = http.MaxBytesReader(w, r.Body, maxOrderBody)
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeJSON(w, http.StatusBadRequest, models.SendEmailResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	if err := oc.validateOrder(order); err != nil {
		writeJSON(w, http.StatusBadRequest, models.SendEmailResponse{
			Success: false,
			Message: "Missing required fields",
			Error:   err.Error(),
		})
		return
	}

	messageID, err := oc.EmailService.SendOrderEmail(r.Context(), order)
	if err != nil {
		oc.Logger.Error("order email failed", "delivery_time", order.DeliveryTime, "err", err)
		writeJSON(w, http.StatusInternalServerError, models.SendEmailResponse{
			Success: false,
			Message: "Failed to send order email",
			Error:   err.Error(),
		})
		return
	}

	oc.Logger.Info("order relayed", "message_id", messageID, "room", order.RoomNumber, "delivery_time", order.DeliveryTime)
	oc.announce(order, messageID)

	writeJSON(w, http.StatusOK, models.SendEmailResponse{
		Success:   true,
		Message:   "Order received",
		MessageID: messageID,
	})
}

func (oc *OrderController) validateOrder(order models.OrderPayload) error {
	if err := oc.validate.Struct(order); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Namespace())
			}
			return fmt.Errorf("invalid or missing fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	if order.ItemCount() == 0 {
		return errors.New("order has no items")
	}
	return nil
}

// announce publishes the relayed order; failures are only logged
func (oc *OrderController) announce(order models.OrderPayload, messageID string) {
	total := order.TotalItems
	if total == 0 {
		for _, group := range [][]models.OrderItem{order.FoodItems, order.BeverageItems, order.Items} {
			for _, it := range group {
				total += it.Quantity
			}
		}
	}
	ev := models.OrderNotified{
		ID:           uuid.NewString(),
		MessageID:    messageID,
		RoomNumber:   order.RoomNumber,
		DeliveryTime: order.DeliveryTime,
		TotalItems:   total,
		NotifiedAt:   time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := events.PublishOrderNotified(ctx, oc.Publisher, ev); err != nil {
		oc.Logger.Warn("failed to publish order event", "message_id", messageID, "err", err)
	}
}

// CheckMailRelay handles GET /api/send-email
func (oc *OrderController) CheckMailRelay(w http.ResponseWriter, r *http.Request) {
	if err := oc.EmailService.Verify(r.Context()); err != nil {
		oc.Logger.Warn("mail relay health check failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, models.SendEmailResponse{
			Success: false,
			Message: "Mail relay connection failed",
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, models.SendEmailResponse{
		Success: true,
		Message: "Mail relay connection OK",
	})
}
