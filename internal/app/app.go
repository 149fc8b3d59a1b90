// Package app wires the storefront together from a Config.
package app

import (
	"fmt"

	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/checkout"
	"github.com/iliamunaev/doorstep/internal/config"
	"github.com/iliamunaev/doorstep/internal/order"
	"github.com/iliamunaev/doorstep/internal/service/payment"
	"github.com/iliamunaev/doorstep/internal/service/shared"
	"github.com/iliamunaev/doorstep/internal/service/tracker"
	"github.com/iliamunaev/doorstep/internal/service/vendor"
)

type App struct {
	Store   *catalog.Store
	History *order.History

	gateway  payment.Gateway
	notifier vendor.Notifier
	tr       *tracker.Tracker
}

func New(cfg config.Config) (*App, error) {
	opts := []catalog.Option{
		catalog.WithDefaultVendor(cfg.DefaultVendor),
		catalog.WithFallbackDayRate(cfg.FallbackDayRate),
	}

	var st *catalog.Store
	if cfg.CatalogFile != "" {
		var err error
		st, err = catalog.LoadFile(cfg.CatalogFile, opts...)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	} else {
		st = catalog.Default(opts...)
	}

	tr := &tracker.Tracker{}

	return &App{
		Store:    st,
		History:  order.NewHistory(),
		gateway:  payment.Simulated{Delay: shared.DelayForStep(cfg.DelayMS, config.StepPayment, payment.DefaultDelay)},
		notifier: vendor.Simulated{Delay: shared.DelayForStep(cfg.DelayMS, config.StepVendor, vendor.DefaultDelay), Tr: tr},
		tr:       tr,
	}, nil
}

// Composer opens a selection screen for an item-based category. An empty
// vendorID falls back to the default vendor.
func (a *App) Composer(c catalog.Category, vendorID string) *order.Composer {
	p := a.Store.Category(c)
	return order.NewComposer(c, p.ResolveVendor(vendorID), p)
}

// Scheduler opens a scheduled delivery screen, such as water jar booking.
func (a *App) Scheduler(c catalog.Category, vendorID string) *order.Scheduler {
	p := a.Store.Category(c)
	return order.NewScheduler(c, p.ResolveVendor(vendorID), p, p)
}

// Booker opens the maid booking screen.
func (a *App) Booker(vendorID string) *order.Booker {
	p := a.Store.Category(catalog.Maid)
	return order.NewBooker(p.ResolveVendor(vendorID), p)
}

// Checkout starts a payment session that records into the shared history.
func (a *App) Checkout() *checkout.Session {
	return checkout.New(checkout.Deps{
		Store:    a.Store,
		Gateway:  a.gateway,
		Notifier: a.notifier,
		History:  a.History,
		Tracker:  a.tr,
	})
}

// Running reports how many checkout steps are in flight across sessions.
func (a *App) Running() int64 { return a.tr.Running() }
