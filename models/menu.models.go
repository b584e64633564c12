package models

// Temperature is the preparation choice for a beverage; the empty value means none
type Temperature string

const (
	TempNone  Temperature = ""
	TempIce   Temperature = "ice"
	TempHot   Temperature = "hot"
	TempNoIce Temperature = "no-ice"
)

// Label returns the suffix shown next to a beverage name
func (t Temperature) Label() string {
	switch t {
	case TempIce:
		return "冰"
	case TempHot:
		return "熱"
	case TempNoIce:
		return "去冰"
	}
	return ""
}

// Valid reports whether t is one of the known temperatures (or none)
func (t Temperature) Valid() bool {
	switch t {
	case TempNone, TempIce, TempHot, TempNoIce:
		return true
	}
	return false
}

// Variant is a mutually exclusive preparation choice for a menu entry
type Variant struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Orderable is anything from the catalog that can be put in the cart
type Orderable interface {
	ItemID() int
	ItemName() string
	ItemVariants() []Variant
}

// MenuEntry represents a food item in the catalog
type MenuEntry struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

func (m MenuEntry) ItemID() int             { return m.ID }
func (m MenuEntry) ItemName() string        { return m.Name }
func (m MenuEntry) ItemVariants() []Variant { return m.Variants }

// BeverageEntry represents a drink in the catalog. Ice and hot are always offered,
// no-ice only when NoIce is set.
type BeverageEntry struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	NoIce bool   `json:"no_ice"`
}

func (b BeverageEntry) ItemID() int             { return b.ID }
func (b BeverageEntry) ItemName() string        { return b.Name }
func (b BeverageEntry) ItemVariants() []Variant { return nil }

// Offers reports whether the beverage can be prepared at temperature t
func (b BeverageEntry) Offers(t Temperature) bool {
	switch t {
	case TempIce, TempHot:
		return true
	case TempNoIce:
		return b.NoIce
	}
	return false
}

// Temperatures lists the choices offered for the beverage in display order
func (b BeverageEntry) Temperatures() []Temperature {
	temps := []Temperature{TempIce, TempHot}
	if b.NoIce {
		temps = append(temps, TempNoIce)
	}
	return temps
}
