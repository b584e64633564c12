package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JasonLinn/bnb-breakfast/cart"
	"github.com/JasonLinn/bnb-breakfast/catalog"
	"github.com/JasonLinn/bnb-breakfast/models"
	"github.com/JasonLinn/bnb-breakfast/submission"
)

const helpText = `commands:
  menu                         list food and drinks
  add <id> [variant]           add a food entry (default: first variant)
  drink <id> <ice|hot|no-ice>  add a drink
  inc|dec <line>               change a line's quantity by one
  qty <line> <n>               set a line's quantity (0 removes)
  rm <line>                    remove a line
  time <slot>                  delivery time, one of ` + "%s" + `
  room <number>                room number
  date <date>                  order date
  note <text>                  note for the kitchen
  show                         show the order list
  clear                        empty the order list
  submit                       send the order
  ping                         check the mail relay
  test-email                   send a test order
  quit`

type shell struct {
	engine    *cart.Engine
	submitter *submission.Submitter
	in        *bufio.Scanner
	out       io.Writer
	timeout   time.Duration
}

func newShell(e *cart.Engine, s *submission.Submitter, in io.Reader, out io.Writer, timeout time.Duration) *shell {
	return &shell{engine: e, submitter: s, in: bufio.NewScanner(in), out: out, timeout: timeout}
}

// Run reads commands until quit, EOF or ctx is done
func (sh *shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := sh.readLines(done)

	fmt.Fprintf(sh.out, "🍳 Breakfast order form. %d item(s) in your list. Type help for commands.\n", sh.engine.TotalCount())
	for {
		fmt.Fprint(sh.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return err
				}
				return io.EOF
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := sh.exec(ctx, cmd, rest); err != nil {
			fmt.Fprintln(sh.out, "error:", err)
		}
	}
}

// readLines scans input in the background so Run can stop on ctx while a read is blocked.
// The scanner error, possibly nil, is ready on the error channel once lines is closed.
func (sh *shell) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		for sh.in.Scan() {
			select {
			case lines <- sh.in.Text():
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- sh.in.Err()
	}()
	return lines, errc
}

func (sh *shell) exec(ctx context.Context, cmd, rest string) error {
	args := strings.Fields(rest)
	switch cmd {
	case "help":
		fmt.Fprintf(sh.out, helpText+"\n", strings.Join(catalog.TimeSlots(), ", "))
	case "menu":
		sh.printMenu()
	case "add":
		return sh.addFood(args)
	case "drink":
		return sh.addDrink(args)
	case "inc", "dec", "rm":
		l, err := sh.lineArg(args)
		if err != nil {
			return err
		}
		switch cmd {
		case "inc":
			sh.engine.SetQuantity(l.EntryID, l.Kind, l.Variants, l.Quantity+1)
		case "dec":
			sh.engine.SetQuantity(l.EntryID, l.Kind, l.Variants, l.Quantity-1)
		default:
			sh.engine.RemoveItem(l.EntryID, l.Kind, l.Variants)
		}
		sh.printCart()
	case "qty":
		l, err := sh.lineArg(args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: qty <line> <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		sh.engine.SetQuantity(l.EntryID, l.Kind, l.Variants, n)
		sh.printCart()
	case "time":
		if rest != "" && !catalog.IsTimeSlot(rest) {
			return fmt.Errorf("delivery time must be one of %s", strings.Join(catalog.TimeSlots(), ", "))
		}
		sh.engine.SetDeliveryTime(rest)
	case "room":
		sh.engine.SetRoomNumber(rest)
	case "date":
		sh.engine.SetOrderDate(rest)
	case "note":
		sh.engine.SetOrderNote(rest)
	case "show":
		sh.printCart()
	case "clear":
		sh.engine.Clear()
		fmt.Fprintln(sh.out, "Order list cleared.")
	case "submit":
		if sh.submitter.Pending() {
			return fmt.Errorf("a submission is already in progress")
		}
		fmt.Fprintln(sh.out, "Sending...")
		ctx, cancel := context.WithTimeout(ctx, sh.timeout)
		defer cancel()
		// outcomes are reported through the notifier
		_, _ = sh.submitter.Submit(ctx, sh.engine)
	case "ping":
		ctx, cancel := context.WithTimeout(ctx, sh.timeout)
		defer cancel()
		res, err := sh.submitter.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, "✅ "+res.Message)
	case "test-email":
		ctx, cancel := context.WithTimeout(ctx, sh.timeout)
		defer cancel()
		res, err := sh.submitter.SendTestOrder(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "✅ Test email sent. Message ID: %s\n", res.MessageID)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}
	return nil
}

func (sh *shell) addFood(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <id> [variant]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	entry, err := catalog.FindMenuEntry(id)
	if err != nil {
		return err
	}
	var labels []string
	if len(args) > 1 {
		label, ok := findVariant(entry, args[1])
		if !ok {
			return fmt.Errorf("%s has no variant %q", entry.Name, args[1])
		}
		labels = []string{label}
	}
	sh.engine.AddItem(entry, models.TempNone, labels...)
	fmt.Fprintf(sh.out, "Added. %d item(s) in your list.\n", sh.engine.TotalCount())
	return nil
}

func findVariant(entry models.MenuEntry, s string) (string, bool) {
	for _, v := range entry.Variants {
		if v.ID == s || v.Label == s {
			return v.Label, true
		}
	}
	return "", false
}

func (sh *shell) addDrink(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: drink <id> <ice|hot|no-ice>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	drink, err := catalog.FindBeverage(id)
	if err != nil {
		return err
	}
	temp := models.Temperature(args[1])
	if !drink.Offers(temp) {
		return fmt.Errorf("%s is not offered %q", drink.Name, args[1])
	}
	sh.engine.AddItem(drink, temp)
	fmt.Fprintf(sh.out, "Added. %d item(s) in your list.\n", sh.engine.TotalCount())
	return nil
}

func (sh *shell) lineArg(args []string) (models.CartLine, error) {
	if len(args) < 1 {
		return models.CartLine{}, fmt.Errorf("missing line number, see show")
	}
	n, err := strconv.Atoi(args[0])
	lines := sh.engine.Lines()
	if err != nil || n < 1 || n > len(lines) {
		return models.CartLine{}, fmt.Errorf("no line %q, see show", args[0])
	}
	return lines[n-1], nil
}

func (sh *shell) printMenu() {
	fmt.Fprintln(sh.out, "Food:")
	for _, m := range catalog.Menu() {
		fmt.Fprintf(sh.out, "  %d. %s", m.ID, m.Name)
		if len(m.Variants) > 0 {
			ids := make([]string, len(m.Variants))
			for i, v := range m.Variants {
				ids[i] = v.ID + "=" + v.Label
			}
			fmt.Fprintf(sh.out, " [%s]", strings.Join(ids, ", "))
		}
		if m.Description != "" {
			fmt.Fprintf(sh.out, "\n     %s", m.Description)
		}
		fmt.Fprintln(sh.out)
	}
	fmt.Fprintln(sh.out, "Drinks:")
	for _, b := range catalog.Beverages() {
		temps := make([]string, 0, 3)
		for _, t := range b.Temperatures() {
			temps = append(temps, string(t))
		}
		fmt.Fprintf(sh.out, "  %d. %s (%s)\n", b.ID, b.Name, strings.Join(temps, " | "))
	}
}

func (sh *shell) printCart() {
	d := sh.engine.Delivery()
	fmt.Fprintf(sh.out, "Room: %s  Delivery: %s  Date: %s  Note: %s\n",
		d.RoomNumber.OrElse("-"), d.DeliveryTime.OrElse("-"), d.OrderDate.OrElse("-"), d.OrderNote.OrElse("-"))

	lines := sh.engine.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(sh.out, "Nothing ordered yet.")
		return
	}
	for i, l := range lines {
		fmt.Fprintf(sh.out, "  %d) %s x%d\n", i+1, l.Name, l.Quantity)
	}
	food := sh.engine.Summarize(cart.Food)
	drinks := sh.engine.Summarize(cart.Beverage)
	fmt.Fprintf(sh.out, "Food: %d  Drinks: %d  Total: %d\n", food.Total(), drinks.Total(), sh.engine.TotalCount())
}
