package order

import (
	"net/url"
	"slices"
	"time"

	"github.com/iliamunaev/doorstep/internal/booking"
	"github.com/iliamunaev/doorstep/internal/cart"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/model"
)

// Composer owns the per-item selection of one vendor screen
// (fruits and vegetables, milk, water).
type Composer struct {
	service  catalog.Category
	vendorID string
	provider catalog.Provider
	cart     *cart.Cart
}

// NewComposer starts an empty selection for vendorID. The vendor id must
// already be resolved; an unknown vendor has an empty catalog.
func NewComposer(service catalog.Category, vendorID string, p catalog.Provider) *Composer {
	if p == nil {
		panic("order.NewComposer: nil provider")
	}
	return &Composer{
		service:  service,
		vendorID: vendorID,
		provider: p,
		cart:     cart.New(),
	}
}

func (c *Composer) VendorID() string          { return c.vendorID }
func (c *Composer) Service() catalog.Category { return c.service }

// Items returns the vendor's catalog in display order.
func (c *Composer) Items() []model.CatalogItem {
	return slices.Clone(c.provider.Catalog(c.vendorID))
}

// Increment adds one unit of itemID and returns its quantity. An item the
// vendor marks unavailable is refused and its quantity stays unchanged.
func (c *Composer) Increment(itemID string) int {
	for _, it := range c.provider.Catalog(c.vendorID) {
		if it.ID == itemID && !it.Available() {
			return c.cart.Quantity(itemID)
		}
	}
	return c.cart.Increment(itemID)
}

func (c *Composer) Decrement(itemID string) int { return c.cart.Decrement(itemID) }
func (c *Composer) Quantity(itemID string) int  { return c.cart.Quantity(itemID) }

// Total recomputes the selection total, delivery fee included, from the
// current catalog.
func (c *Composer) Total() int64 { return c.Summary().Total }

// CanProceed reports whether billing may be opened: something is selected
// and the vendor's minimum order is met.
func (c *Composer) CanProceed() bool {
	return c.cart.CanProceed() && CheckMinimum(c.Summary(), c.provider) == nil
}

// Summary derives the order summary of the current selection.
func (c *Composer) Summary() model.OrderSummary {
	return BuildSummary(c.service, c.vendorID, c.provider, c.cart)
}

// Handoff packs the selection for the billing step. It fails with
// apperr.ErrEmptySelection when nothing is selected and with
// apperr.ErrBelowMinimumOrder under the vendor's minimum.
func (c *Composer) Handoff() (url.Values, error) {
	v, err := EncodeSelection(c.service, c.vendorID, c.cart)
	if err != nil {
		return nil, err
	}
	if err := CheckMinimum(c.Summary(), c.provider); err != nil {
		return nil, err
	}
	return v, nil
}

// Booker owns the date-range selection of a day-rate vendor screen.
type Booker struct {
	vendorID string
	rates    catalog.RateProvider
	rng      booking.Range
}

// NewBooker starts an empty booking for vendorID.
func NewBooker(vendorID string, rates catalog.RateProvider) *Booker {
	if rates == nil {
		panic("order.NewBooker: nil rate provider")
	}
	return &Booker{vendorID: vendorID, rates: rates}
}

func (b *Booker) VendorID() string { return b.vendorID }

// DayRate returns the vendor's rate, or the fallback rate.
func (b *Booker) DayRate() int64 { return b.rates.DayRate(b.vendorID) }

// Pick applies a calendar click.
func (b *Booker) Pick(d time.Time) { b.rng.Pick(d) }

// PickDate applies a YYYY-MM-DD calendar click.
func (b *Booker) PickDate(s string) error { return b.rng.PickDate(s) }

func (b *Booker) State() booking.State { return b.rng.State() }
func (b *Booker) CanBook() bool        { return b.rng.CanBook() }
func (b *Booker) Days() int            { return b.rng.Days() }
func (b *Booker) Dates() []string      { return b.rng.Dates() }
func (b *Booker) Describe() string     { return b.rng.String() }

// Total is inclusive days × day rate; zero until the range is complete.
func (b *Booker) Total() int64 { return b.rng.Total(b.DayRate()) }

// Summary derives the order summary of the current booking.
func (b *Booker) Summary() model.OrderSummary {
	return BuildBookingSummary(b.vendorID, b.rates, &b.rng)
}

// Handoff packs the booking for the payment step. It fails with
// apperr.ErrEmptySelection unless both dates are chosen.
func (b *Booker) Handoff() (url.Values, error) {
	return EncodeBooking(b.vendorID, b.rates, &b.rng)
}
