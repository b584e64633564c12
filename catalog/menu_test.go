package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	assert.Equal(t, []string{"8:00", "8:30", "9:00", "9:30", "10:00"}, TimeSlots())
	assert.True(t, IsTimeSlot("8:30"))
	assert.False(t, IsTimeSlot("10:30"))
	assert.False(t, IsTimeSlot(""))
}

func TestFindMenuEntry(t *testing.T) {
	entry, err := FindMenuEntry(2)
	require.NoError(t, err)
	require.Len(t, entry.Variants, 2)
	assert.Equal(t, "hamburger", entry.Variants[0].ID)

	_, err = FindMenuEntry(42)
	assert.Error(t, err)
}

func TestFindBeverage(t *testing.T) {
	drink, err := FindBeverage(1)
	require.NoError(t, err)
	assert.True(t, drink.NoIce)
	assert.Len(t, drink.Temperatures(), 3)

	_, err = FindBeverage(0)
	assert.Error(t, err)
}

func TestMenuReturnsCopy(t *testing.T) {
	m := Menu()
	m[0].Name = "changed"
	assert.NotEqual(t, "changed", Menu()[0].Name)
}
