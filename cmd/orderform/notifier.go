package main

import (
	"fmt"
	"io"

	"github.com/JasonLinn/bnb-breakfast/submission"
)

var fieldPrompts = map[string]string{
	"items":        "Your order list is empty.",
	"deliveryTime": "Please choose a delivery time (time <slot>).",
	"roomNumber":   "Please enter your room number (room <number>).",
}

// consoleNotifier prints submission outcomes
type consoleNotifier struct {
	out io.Writer
}

func (n *consoleNotifier) Invalid(err *submission.ValidationError) {
	msg, ok := fieldPrompts[err.Field]
	if !ok {
		msg = err.Error()
	}
	fmt.Fprintln(n.out, "⚠️ "+msg)
}

func (n *consoleNotifier) Success(r submission.Receipt) {
	fmt.Fprintf(n.out, "✅ Order sent!\n  Room: %s\n  Delivery: %s\n  Date: %s\n  Food: %d  Drinks: %d  Total: %d\n",
		r.RoomNumber, r.DeliveryTime, r.OrderDate, r.FoodTotal, r.BeverageTotal, r.TotalItems)
}

func (n *consoleNotifier) Failure(reason string) {
	fmt.Fprintf(n.out, "❌ The order could not be delivered to the kitchen: %s\n   Please contact the shop directly to place your order.\n", reason)
}
