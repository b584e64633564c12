package cart

import "github.com/JasonLinn/bnb-breakfast/models"

// Predicate selects cart lines for a summary
type Predicate func(models.CartLine) bool

// Food selects lines added without a temperature
func Food(l models.CartLine) bool { return l.IsFood() }

// Beverage selects lines added with a temperature
func Beverage(l models.CartLine) bool { return l.IsBeverage() }

// Summary is an ordered display-name to quantity mapping
type Summary []models.OrderItem

// Total sums the quantities of the summary
func (s Summary) Total() int {
	total := 0
	for _, item := range s {
		total += item.Quantity
	}
	return total
}

// Summarize aggregates quantities by display name, ordered by first occurrence.
// A nil predicate selects every line.
func (e *Engine) Summarize(pred Predicate) Summary {
	return SummarizeLines(e.Lines(), pred)
}

// SummarizeLines is Summarize over an arbitrary slice of lines
func SummarizeLines(lines []models.CartLine, pred Predicate) Summary {
	var out Summary
	index := make(map[string]int)
	for _, l := range lines {
		if pred != nil && !pred(l) {
			continue
		}
		if i, ok := index[l.Name]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.Name] = len(out)
		out = append(out, models.OrderItem{Name: l.Name, Quantity: l.Quantity})
	}
	return out
}
