// Package cart holds the in-memory cart and delivery details of the order form
// and mirrors them into a scoped store after every change.
package cart

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/JasonLinn/bnb-breakfast/models"
	"github.com/JasonLinn/bnb-breakfast/storage"
)

// Delivery is the metadata collected alongside the cart
type Delivery struct {
	RoomNumber   models.Option[string]
	DeliveryTime models.Option[string]
	OrderDate    models.Option[string]
	OrderNote    models.Option[string]
}

// Engine owns the cart lines and delivery metadata
type Engine struct {
	mu       sync.Mutex
	lines    []models.CartLine
	delivery Delivery
	store    storage.Store
	logger   *slog.Logger
}

// New restores an Engine from store. Missing keys fall back to empty values and an
// unreadable cart is logged and discarded.
func New(store storage.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	e := &Engine{store: store, logger: logger}
	e.load()
	return e
}

func (e *Engine) load() {
	if raw, ok := e.read(storage.KeyCart); ok {
		var lines []models.CartLine
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			e.logger.Warn("discarding unreadable cart", "err", err)
		} else {
			e.lines = sanitize(lines)
		}
	}
	e.delivery.DeliveryTime = e.readOption(storage.KeyDeliveryTime)
	e.delivery.OrderDate = e.readOption(storage.KeyOrderDate)
	e.delivery.OrderNote = e.readOption(storage.KeyOrderNote)
	e.delivery.RoomNumber = e.readOption(storage.KeyRoomNumber)
}

// sanitize drops non-positive quantities and merges duplicate keys so restored
// state keeps the cart invariants.
func sanitize(lines []models.CartLine) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	index := make(map[models.LineKey]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i, ok := index[l.Key()]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.Key()] = len(out)
		out = append(out, l)
	}
	return out
}

func (e *Engine) read(key string) (string, bool) {
	v, ok, err := e.store.Get(key)
	if err != nil {
		e.logger.Warn("failed to read persisted field", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

func (e *Engine) readOption(key string) models.Option[string] {
	v, ok := e.read(key)
	if !ok {
		return models.None[string]()
	}
	return models.OptionalString(v)
}

// AddItem adds one unit of entry. Variants may be given by id or label and are
// stored as labels. Without explicit variants the entry's first declared variant
// is used; kind is the beverage temperature or TempNone.
func (e *Engine) AddItem(entry models.Orderable, kind models.Temperature, variants ...string) {
	declared := entry.ItemVariants()
	labels := make([]string, 0, len(variants))
	for _, v := range variants {
		labels = append(labels, variantLabel(declared, v))
	}
	if len(labels) == 0 && len(declared) > 0 {
		labels = append(labels, declared[0].Label)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := models.NewLineKey(entry.ItemID(), kind, labels)
	if i := e.indexOf(key); i >= 0 {
		e.lines[i].Quantity++
	} else {
		e.lines = append(e.lines, models.CartLine{
			EntryID:  entry.ItemID(),
			Name:     displayName(entry.ItemName(), kind, labels),
			Quantity: 1,
			Kind:     kind,
			Variants: labels,
		})
	}
	e.mirrorCart()
}

// variantLabel resolves v against the declared variants; unknown values are kept as given
func variantLabel(declared []models.Variant, v string) string {
	for _, d := range declared {
		if d.ID == v || d.Label == v {
			return d.Label
		}
	}
	return v
}

func displayName(base string, kind models.Temperature, labels []string) string {
	name := base
	for _, l := range labels {
		name += " - " + l
	}
	if kind != models.TempNone {
		name += " (" + kind.Label() + ")"
	}
	return name
}

// RemoveItem deletes every line matching the key; unknown keys are ignored
func (e *Engine) RemoveItem(entryID int, kind models.Temperature, variants []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.remove(models.NewLineKey(entryID, kind, variants))
}

func (e *Engine) remove(key models.LineKey) {
	kept := e.lines[:0]
	removed := false
	for _, l := range e.lines {
		if l.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return
	}
	e.lines = kept
	e.mirrorCart()
}

// SetQuantity updates the matching line in place; quantity <= 0 removes it
func (e *Engine) SetQuantity(entryID int, kind models.Temperature, variants []string, quantity int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := models.NewLineKey(entryID, kind, variants)
	if quantity <= 0 {
		e.remove(key)
		return
	}
	i := e.indexOf(key)
	if i < 0 {
		return
	}
	e.lines[i].Quantity = quantity
	e.mirrorCart()
}

// Clear empties the cart and erases every persisted field
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	e.delivery = Delivery{}
	if err := e.store.Remove(storage.AllKeys...); err != nil {
		e.logger.Warn("failed to erase persisted order form", "err", err)
	}
}

// TotalCount is the sum of all line quantities
func (e *Engine) TotalCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, l := range e.lines {
		total += l.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order
func (e *Engine) Lines() []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.CartLine, len(e.lines))
	for i, l := range e.lines {
		l.Variants = append([]string(nil), l.Variants...)
		out[i] = l
	}
	return out
}

func (e *Engine) indexOf(key models.LineKey) int {
	for i, l := range e.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

// mirrorCart must be called with mu held
func (e *Engine) mirrorCart() {
	data, err := json.Marshal(e.lines)
	if err != nil {
		e.logger.Warn("failed to encode cart", "err", err)
		return
	}
	if len(e.lines) == 0 {
		data = []byte("[]")
	}
	if err := e.store.Set(storage.KeyCart, string(data)); err != nil {
		e.logger.Warn("failed to persist cart", "err", err)
	}
}
