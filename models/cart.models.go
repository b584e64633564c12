package models

import "strings"

// CartLine represents one distinct orderable configuration in the cart
type CartLine struct {
	EntryID  int         `json:"id"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Kind     Temperature `json:"type,omitempty"`
	Variants []string    `json:"variants,omitempty"`
}

// LineKey is the composite identity used to merge cart additions
type LineKey struct {
	EntryID  int
	Kind     Temperature
	Variants string
}

// variantSep never appears in a display label, so joined labels compare by value
const variantSep = "\x1f"

// NewLineKey builds the comparable key for an entry, temperature and ordered labels
func NewLineKey(entryID int, kind Temperature, variants []string) LineKey {
	return LineKey{EntryID: entryID, Kind: kind, Variants: strings.Join(variants, variantSep)}
}

// Key returns the line's composite key
func (l CartLine) Key() LineKey {
	return NewLineKey(l.EntryID, l.Kind, l.Variants)
}

// IsBeverage reports whether the line was added with a temperature
func (l CartLine) IsBeverage() bool {
	return l.Kind != TempNone
}

// IsFood is the complement of IsBeverage
func (l CartLine) IsFood() bool {
	return l.Kind == TempNone
}
