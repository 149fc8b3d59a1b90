package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/iliamunaev/doorstep/internal/app"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/config"
	"github.com/iliamunaev/doorstep/internal/order"
	"github.com/iliamunaev/doorstep/internal/service/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := run(context.Background(), cfg, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run places a single order described by args and prints the confirmation.
//
//	doorstep -service milk -items 1,1,2 -method upi -upi-id user@bank
//	doorstep -service maid -vendor 2 -from 2024-02-01 -to 2024-02-05 -method cash
//	doorstep -service water -items 2,2 -address "A-301, HSR Layout" -start 2024-02-01 -frequency weekly
func run(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("doorstep", flag.ContinueOnError)
	fs.SetOutput(out)

	service := fs.String("service", string(catalog.FruitsVegetables), "milk, water, fruits-vegetables or maid")
	vendorID := fs.String("vendor", "", "vendor id (default vendor when empty)")
	items := fs.String("items", "", "comma-separated item ids, one per unit")
	from := fs.String("from", "", "first booking day, YYYY-MM-DD")
	to := fs.String("to", "", "last booking day, YYYY-MM-DD")
	method := fs.String("method", string(payment.UPI), "upi, card or cash")
	upiID := fs.String("upi-id", "", "UPI id; scan-to-pay when empty")
	cardNumber := fs.String("card", "", "card number")
	cardHolder := fs.String("holder", "", "card holder name")
	list := fs.Bool("list", false, "print the catalog and exit")
	address := fs.String("address", "", "delivery address; schedules the delivery when set")
	startDate := fs.String("start", "", "first delivery day, YYYY-MM-DD")
	slot := fs.String("slot", "", "delivery slot id (first available when empty)")
	frequency := fs.String("frequency", "", "weekly, biweekly or monthly for a subscription")

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	if *list {
		printCatalog(out, a.Store, catalog.Category(*service))
		return nil
	}

	m, err := payment.ParseMethod(*method)
	if err != nil {
		return err
	}

	var handoff url.Values
	if catalog.Category(*service) == catalog.Maid {
		b := a.Booker(*vendorID)
		for _, d := range []string{*from, *to} {
			if d == "" {
				continue
			}
			if err := b.PickDate(d); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, b.Describe())
		handoff, err = b.Handoff()
	} else if *address != "" {
		sc := a.Scheduler(catalog.Category(*service), *vendorID)
		addItems(sc.Composer, *items)
		sc.SetAddress(*address)
		if err := sc.SetStartDate(*startDate); err != nil {
			return err
		}
		if *slot != "" {
			if err := sc.SelectSlot(*slot); err != nil {
				return err
			}
		}
		if *frequency != "" {
			if err := sc.Subscribe(*frequency); err != nil {
				return err
			}
		}
		p := sc.Plan()
		plan := p.Type
		if p.Frequency != "" {
			plan += " " + p.Frequency
		}
		fmt.Fprintf(out, "Delivery: %s, %s from %s\n", plan, p.Slot, p.StartDate)
		handoff, err = sc.Handoff()
	} else {
		c := a.Composer(catalog.Category(*service), *vendorID)
		addItems(c, *items)
		handoff, err = c.Handoff()
	}
	if err != nil {
		return err
	}

	s := a.Checkout()
	if err := s.Open(handoff); err != nil {
		return err
	}
	sum, _ := s.Summary()
	for _, li := range sum.Items {
		fmt.Fprintf(out, "%-24s %3d x %s = %s\n", li.Item.Name, li.Quantity,
			order.FormatAmount(li.Item.UnitPrice), order.FormatAmount(li.Subtotal()))
	}
	if sum.DeliveryFee > 0 {
		fmt.Fprintf(out, "Delivery fee: %s\n", order.FormatAmount(sum.DeliveryFee))
	}
	fmt.Fprintf(out, "Total: %s\n", s.AmountDue())

	s.SelectMethod(m)
	switch m {
	case payment.UPI:
		if *upiID != "" {
			s.SelectUPIOption(payment.UPIByID)
			s.SetUPIID(*upiID)
		} else {
			s.SelectUPIOption(payment.UPIByQR)
		}
	case payment.Card:
		s.SetCard(*cardNumber, *cardHolder)
	}

	conf, err := s.Pay(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\nOrder %s\n", conf.Message, conf.OrderID)
	return nil
}

func addItems(c *order.Composer, ids string) {
	for _, id := range strings.Split(ids, ",") {
		if id = strings.TrimSpace(id); id != "" {
			c.Increment(id)
		}
	}
}

func printCatalog(out io.Writer, st *catalog.Store, c catalog.Category) {
	p := st.Category(c)
	for _, v := range p.Vendors() {
		if c == catalog.Maid {
			fmt.Fprintf(out, "%s  %s  %s/day\n", v.ID, v.Name, order.FormatAmount(p.DayRate(v.ID)))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", v.ID, v.Name)
		for _, it := range v.Items {
			fmt.Fprintf(out, "    %s  %-24s %s/%s\n", it.ID, it.Name, order.FormatAmount(it.UnitPrice), it.Unit)
		}
	}
}
