// Package order composes selections into order summaries and carries them
// across the hand-off to checkout.
package order

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/booking"
	"github.com/iliamunaev/doorstep/internal/cart"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/model"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "₹"

// FormatAmount renders a whole-rupee amount, e.g. "₹300".
func FormatAmount(amount int64) string {
	return CurrencySymbol + strconv.FormatInt(amount, 10)
}

// BuildSummary derives the summary of a per-item selection. It never
// fails: a nil or empty cart yields an empty summary with a zero total.
// An empty vendorID resolves to the provider's default vendor. Unavailable
// items are left out, and a non-empty order carries the vendor's delivery fee.
func BuildSummary(service catalog.Category, vendorID string, p catalog.Provider, c *cart.Cart) model.OrderSummary {
	vendorID = resolveVendor(p, vendorID)
	s := model.OrderSummary{VendorID: vendorID, Service: string(service)}
	if c == nil || p == nil {
		return s
	}
	items := availableItems(p.Catalog(vendorID))
	s.Items = c.Lines(items)
	if len(s.Items) == 0 {
		s.Items = nil
		return s
	}
	s.DeliveryFee = termsOf(p, vendorID).DeliveryFee
	s.Total = c.Total(items) + s.DeliveryFee
	return s
}

// BuildBookingSummary derives the summary of a day-rate booking. An
// incomplete range yields an empty summary with a zero total.
func BuildBookingSummary(vendorID string, rates catalog.RateProvider, r *booking.Range) model.OrderSummary {
	vendorID = resolveVendor(rates, vendorID)
	s := model.OrderSummary{VendorID: vendorID, Service: string(catalog.Maid)}
	if r == nil || rates == nil || !r.CanBook() {
		return s
	}
	start, _ := r.Start()
	end, _ := r.End()
	rate := rates.DayRate(vendorID)
	s.Booking = &model.BookingPeriod{
		Start:   booking.FormatDate(start),
		End:     booking.FormatDate(end),
		Days:    r.Days(),
		DayRate: rate,
	}
	s.Total = r.Total(rate)
	return s
}

// CheckMinimum fails with apperr.ErrBelowMinimumOrder when the item
// subtotal of s is under the vendor's minimum order. Providers without
// terms have no minimum.
func CheckMinimum(s model.OrderSummary, p catalog.Provider) error {
	minOrder := termsOf(p, s.VendorID).MinOrder
	if sub := s.Subtotal(); sub < minOrder {
		return fmt.Errorf("order: %s < %s: %w", FormatAmount(sub), FormatAmount(minOrder), apperr.ErrBelowMinimumOrder)
	}
	return nil
}

func resolveVendor(p any, vendorID string) string {
	if r, ok := p.(catalog.VendorResolver); ok {
		return r.ResolveVendor(vendorID)
	}
	return vendorID
}

func termsOf(p any, vendorID string) catalog.Terms {
	if tp, ok := p.(catalog.TermsProvider); ok {
		return tp.Terms(vendorID)
	}
	return catalog.Terms{}
}

// CheckAvailable reports apperr.ErrItemUnavailable when c holds an item the
// vendor lists but currently cannot supply.
func CheckAvailable(vendorID string, p catalog.Provider, c *cart.Cart) error {
	if c == nil || p == nil {
		return nil
	}
	vendorID = resolveVendor(p, vendorID)
	for _, it := range p.Catalog(vendorID) {
		if !it.Available() && c.Quantity(it.ID) > 0 {
			return fmt.Errorf("order: item %q: %w", it.ID, apperr.ErrItemUnavailable)
		}
	}
	return nil
}

func availableItems(items []model.CatalogItem) []model.CatalogItem {
	return slices.DeleteFunc(slices.Clone(items), func(it model.CatalogItem) bool { return !it.Available() })
}
