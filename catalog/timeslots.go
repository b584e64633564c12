package catalog

import "fmt"

// Breakfast is served between these hours, every half hour
const (
	firstHour = 8
	lastHour  = 10
)

// TimeSlots returns the selectable delivery times, 8:00 through 10:00
func TimeSlots() []string {
	var slots []string
	for hour := firstHour; hour <= lastHour; hour++ {
		slots = append(slots, fmt.Sprintf("%d:00", hour))
		if hour < lastHour {
			slots = append(slots, fmt.Sprintf("%d:30", hour))
		}
	}
	return slots
}

// IsTimeSlot reports whether s is one of TimeSlots
func IsTimeSlot(s string) bool {
	for _, slot := range TimeSlots() {
		if slot == s {
			return true
		}
	}
	return false
}
