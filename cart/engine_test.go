package cart

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JasonLinn/bnb-breakfast/catalog"
	"github.com/JasonLinn/bnb-breakfast/models"
	"github.com/JasonLinn/bnb-breakfast/storage"
)

var (
	sandwich = models.MenuEntry{
		ID:   2,
		Name: "Pork chop egg",
		Variants: []models.Variant{
			{ID: "hamburger", Label: "hamburger"},
			{ID: "toast", Label: "toast"},
		},
	}
	platter = models.MenuEntry{ID: 1, Name: "Morning platter"}
	tea     = models.BeverageEntry{ID: 1, Name: "Black tea", NoIce: true}
)

// failingStore rejects every operation
type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingStore) Set(string, string) error         { return errors.New("quota exceeded") }
func (failingStore) Remove(...string) error           { return errors.New("unavailable") }

func TestAddItemMergesSameKey(t *testing.T) {
	e := New(storage.NewMemoryStore(), nil)

	for i := 0; i < 5; i++ {
		e.AddItem(platter, models.TempNone)
	}

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddItemDefaultVariant(t *testing.T) {
	e := New(nil, nil)

	e.AddItem(sandwich, models.TempNone)

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "Pork chop egg - hamburger", lines[0].Name)
	assert.Equal(t, []string{"hamburger"}, lines[0].Variants)

	e.AddItem(sandwich, models.TempNone, "hamburger")
	e.AddItem(sandwich, models.TempNone, "toast")

	lines = e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Pork chop egg - toast", lines[1].Name)
}

func TestAddItemVariantByIDOrLabel(t *testing.T) {
	entry, err := catalog.FindMenuEntry(2)
	require.NoError(t, err)

	e := New(nil, nil)
	e.AddItem(entry, models.TempNone)
	e.AddItem(entry, models.TempNone, "hamburger")
	e.AddItem(entry, models.TempNone, "美式漢堡")
	e.AddItem(entry, models.TempNone, "toast")

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "豬排起司蛋 - 美式漢堡", lines[0].Name)
	assert.Equal(t, []string{"美式漢堡"}, lines[0].Variants)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "豬排起司蛋 - 鮮奶吐司", lines[1].Name)

	e.SetQuantity(entry.ID, models.TempNone, []string{"美式漢堡"}, 0)
	assert.Equal(t, 1, e.TotalCount())
}

func TestAddBeverageTemperature(t *testing.T) {
	e := New(nil, nil)

	e.AddItem(tea, models.TempHot)
	e.AddItem(tea, models.TempHot)
	e.AddItem(tea, models.TempIce)

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Black tea (熱)", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Black tea (冰)", lines[1].Name)
}

func TestFoodAndBeverageWithSameIDAreDistinct(t *testing.T) {
	e := New(nil, nil)

	e.AddItem(platter, models.TempNone)
	e.AddItem(tea, models.TempIce)

	assert.Len(t, e.Lines(), 2)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{name: "update", quantity: 4, wantLines: 1, wantQty: 4},
		{name: "zeroRemoves", quantity: 0, wantLines: 0},
		{name: "negativeRemoves", quantity: -3, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil, nil)
			e.AddItem(sandwich, models.TempNone)

			e.SetQuantity(sandwich.ID, models.TempNone, []string{"hamburger"}, tt.quantity)

			lines := e.Lines()
			require.Len(t, lines, tt.wantLines)
			if tt.wantLines > 0 {
				assert.Equal(t, tt.wantQty, lines[0].Quantity)
			}
		})
	}
}

func TestSetQuantityUnknownKeyIsNoop(t *testing.T) {
	e := New(nil, nil)
	e.AddItem(tea, models.TempHot)
	before := e.Lines()

	e.SetQuantity(tea.ID, models.TempIce, nil, 3)

	assert.Equal(t, before, e.Lines())
}

func TestRemoveItem(t *testing.T) {
	e := New(nil, nil)
	e.AddItem(tea, models.TempHot)
	e.AddItem(platter, models.TempNone)
	before := e.Lines()

	e.RemoveItem(99, models.TempNone, nil)
	assert.Equal(t, before, e.Lines())

	e.RemoveItem(tea.ID, models.TempHot, nil)
	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, platter.ID, lines[0].EntryID)
}

func TestVariantOrderMatters(t *testing.T) {
	e := New(nil, nil)
	e.AddItem(platter, models.TempNone, "a", "b")
	e.AddItem(platter, models.TempNone, "b", "a")
	e.AddItem(platter, models.TempNone, "a", "b")

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestClearErasesPersistedFields(t *testing.T) {
	store := storage.NewMemoryStore()
	e := New(store, nil)
	e.AddItem(platter, models.TempNone)
	e.SetDeliveryTime("8:30")
	e.SetRoomNumber("101")
	e.SetOrderDate("2026-10-20")
	e.SetOrderNote("no onion")

	e.Clear()

	assert.True(t, e.IsEmpty())
	assert.Equal(t, Delivery{}, e.Delivery())
	for _, key := range storage.AllKeys {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	e := New(store, nil)
	e.AddItem(sandwich, models.TempNone, "toast")
	e.AddItem(tea, models.TempNoIce)
	e.AddItem(platter, models.TempNone)
	e.AddItem(tea, models.TempNoIce)
	e.SetDeliveryTime("9:00")
	e.SetRoomNumber("203")

	reloaded := New(store, nil)

	assert.Equal(t, e.Lines(), reloaded.Lines())
	assert.Equal(t, e.Delivery(), reloaded.Delivery())
	slot, ok := reloaded.Delivery().DeliveryTime.Get()
	assert.True(t, ok)
	assert.Equal(t, "9:00", slot)
	assert.False(t, reloaded.Delivery().OrderNote.IsSome())
}

func TestLoadWithoutPriorState(t *testing.T) {
	e := New(storage.NewMemoryStore(), nil)
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0, e.TotalCount())
	assert.Equal(t, Delivery{}, e.Delivery())
}

func TestLoadDiscardsBadState(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyCart, "{not json"))
	assert.True(t, New(store, nil).IsEmpty())

	require.NoError(t, store.Set(storage.KeyCart,
		`[{"id":1,"name":"a","quantity":2},{"id":1,"name":"a","quantity":3},{"id":2,"name":"b","quantity":0}]`))
	lines := New(store, nil).Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestPersistenceFailuresAreIgnored(t *testing.T) {
	e := New(failingStore{}, nil)

	e.AddItem(platter, models.TempNone)
	e.SetDeliveryTime("8:00")
	assert.Equal(t, 1, e.TotalCount())

	e.Clear()
	assert.True(t, e.IsEmpty())
}

func TestSetFieldEmptyClears(t *testing.T) {
	store := storage.NewMemoryStore()
	e := New(store, nil)
	e.SetOrderNote("extra egg")
	e.SetOrderNote("")

	assert.False(t, e.Delivery().OrderNote.IsSome())
	_, ok, _ := store.Get(storage.KeyOrderNote)
	assert.False(t, ok)
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	entries := []models.Orderable{sandwich, platter, tea}
	temps := []models.Temperature{models.TempNone, models.TempIce, models.TempHot}

	store := storage.NewMemoryStore()
	e := New(store, nil)
	for i := 0; i < 500; i++ {
		entry := entries[rng.Intn(len(entries))]
		kind := temps[rng.Intn(len(temps))]
		switch rng.Intn(4) {
		case 0, 1:
			e.AddItem(entry, kind)
		case 2:
			lines := e.Lines()
			if len(lines) > 0 {
				l := lines[rng.Intn(len(lines))]
				e.SetQuantity(l.EntryID, l.Kind, l.Variants, rng.Intn(5)-1)
			}
		case 3:
			e.RemoveItem(entry.ItemID(), kind, nil)
		}

		sum := 0
		seen := map[models.LineKey]bool{}
		for _, l := range e.Lines() {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.False(t, seen[l.Key()], "duplicate key")
			seen[l.Key()] = true
			sum += l.Quantity
		}
		require.Equal(t, sum, e.TotalCount())
		require.Equal(t, e.TotalCount(), e.Summarize(Food).Total()+e.Summarize(Beverage).Total())
	}

	assert.Equal(t, e.Lines(), New(store, nil).Lines())
}
