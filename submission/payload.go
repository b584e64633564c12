package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/JasonLinn/bnb-breakfast/cart"
	"github.com/JasonLinn/bnb-breakfast/models"
)

// taipei is the shop's local time; a fixed zone avoids depending on tzdata
var taipei = time.FixedZone("CST", 8*60*60)

// DraftFrom snapshots the engine into a draft stamped with now
func DraftFrom(e *cart.Engine, now time.Time) models.OrderDraft {
	d := e.Delivery()
	return models.OrderDraft{
		RoomNumber:   d.RoomNumber,
		DeliveryTime: d.DeliveryTime.OrElse(""),
		OrderDate:    d.OrderDate,
		OrderNote:    d.OrderNote,
		Lines:        e.Lines(),
		CreatedAt:    now,
	}
}

// FormatTimestamp renders t the way the shop reads dates, e.g. 2026/10/19 上午8:30:00
func FormatTimestamp(t time.Time) string {
	t = t.In(taipei)
	period := "上午"
	if t.Hour() >= 12 {
		period = "下午"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d/%d/%d %s%d:%02d:%02d", t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute(), t.Second())
}

// BuildPayload turns a draft into the request body. Optional fields become
// their sentinel strings only here.
func BuildPayload(d models.OrderDraft) models.OrderPayload {
	food := cart.SummarizeLines(d.Lines, cart.Food)
	drinks := cart.SummarizeLines(d.Lines, cart.Beverage)
	all := cart.SummarizeLines(d.Lines, nil)

	details := make([]string, 0, len(all))
	for _, it := range all {
		details = append(details, fmt.Sprintf("%s: %d", it.Name, it.Quantity))
	}

	return models.OrderPayload{
		Timestamp:     FormatTimestamp(d.CreatedAt),
		DeliveryTime:  d.DeliveryTime,
		RoomNumber:    d.RoomNumber.OrElse(models.RoomNotProvided),
		OrderDate:     d.OrderDate.OrElse(models.DateUnspecified),
		OrderNote:     d.OrderNote.OrElse(models.NoteNone),
		OrderDetails:  strings.Join(details, "\n"),
		FoodItems:     food,
		BeverageItems: drinks,
		FoodTotal:     food.Total(),
		BeverageTotal: drinks.Total(),
		TotalItems:    all.Total(),
		Items:         all,
	}
}
