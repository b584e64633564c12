// Package storage provides scoped string key-value stores used to mirror the cart.
package storage

// Keys written by the cart engine
const (
	KeyCart         = "cart"
	KeyDeliveryTime = "deliveryTime"
	KeyOrderDate    = "orderDate"
	KeyOrderNote    = "orderNote"
	KeyRoomNumber   = "roomNumber"
)

// AllKeys lists every key the cart engine mirrors
var AllKeys = []string{KeyCart, KeyDeliveryTime, KeyOrderDate, KeyOrderNote, KeyRoomNumber}

// Store is a scoped string key-value store. Get reports ok=false for absent keys.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(keys ...string) error
}
