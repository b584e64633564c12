package cart

import (
	"github.com/JasonLinn/bnb-breakfast/models"
	"github.com/JasonLinn/bnb-breakfast/storage"
)

// Delivery returns the current delivery metadata
func (e *Engine) Delivery() Delivery {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.delivery
}

// SetDeliveryTime records the chosen slot; an empty value clears it
func (e *Engine) SetDeliveryTime(v string) {
	e.setField(storage.KeyDeliveryTime, &e.delivery.DeliveryTime, v)
}

// SetRoomNumber records the guest room; an empty value clears it
func (e *Engine) SetRoomNumber(v string) {
	e.setField(storage.KeyRoomNumber, &e.delivery.RoomNumber, v)
}

// SetOrderDate records the requested date; an empty value clears it
func (e *Engine) SetOrderDate(v string) {
	e.setField(storage.KeyOrderDate, &e.delivery.OrderDate, v)
}

// SetOrderNote records a free-form note; an empty value clears it
func (e *Engine) SetOrderNote(v string) {
	e.setField(storage.KeyOrderNote, &e.delivery.OrderNote, v)
}

func (e *Engine) setField(key string, field *models.Option[string], v string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	*field = models.OptionalString(v)
	var err error
	if v == "" {
		err = e.store.Remove(key)
	} else {
		err = e.store.Set(key, v)
	}
	if err != nil {
		e.logger.Warn("failed to persist field", "key", key, "err", err)
	}
}
