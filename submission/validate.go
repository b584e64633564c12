package submission

import (
	"errors"
	"strings"

	"github.com/JasonLinn/bnb-breakfast/models"
)

// ErrMissingField is wrapped by every ValidationError
var ErrMissingField = errors.New("missing required field")

// ValidationError names the mandatory field that blocked a submission
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return ErrMissingField.Error() + ": " + e.Field
}

func (e *ValidationError) Unwrap() error { return ErrMissingField }

// Validate checks a draft before anything is sent. The room number is only
// mandatory when roomRequired is set.
func Validate(d models.OrderDraft, roomRequired bool) error {
	if len(d.Lines) == 0 {
		return &ValidationError{Field: "items"}
	}
	if strings.TrimSpace(d.DeliveryTime) == "" {
		return &ValidationError{Field: "deliveryTime"}
	}
	if roomRequired {
		room, ok := d.RoomNumber.Get()
		if !ok || strings.TrimSpace(room) == "" {
			return &ValidationError{Field: "roomNumber"}
		}
	}
	return nil
}
