package order

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/booking"
	"github.com/iliamunaev/doorstep/internal/cart"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/model"
)

// Hand-off parameter names.
const (
	ParamVendor  = "vendorId"
	ParamService = "service"
	ParamCart    = "cart"
	ParamStart   = "start"
	ParamEnd     = "end"
	ParamDays    = "days"
	ParamTotal   = "total"

	ParamPlan      = "type"
	ParamFrequency = "frequency"
	ParamSlot      = "slot"
	ParamStartDate = "startDate"
	ParamAddress   = "address"
)

// EncodeSelection packs a per-item selection into hand-off parameters.
// The cart travels as a JSON object of item id to quantity.
func EncodeSelection(service catalog.Category, vendorID string, c *cart.Cart) (url.Values, error) {
	if c == nil || !c.CanProceed() {
		return nil, fmt.Errorf("order: %w", apperr.ErrEmptySelection)
	}
	raw, err := c.Encode()
	if err != nil {
		return nil, err
	}
	v := url.Values{}
	v.Set(ParamVendor, vendorID)
	v.Set(ParamService, string(service))
	v.Set(ParamCart, raw)
	return v, nil
}

// EncodeBooking packs a complete booking into hand-off parameters. Days and
// total are informational; DecodeSummary recomputes them.
func EncodeBooking(vendorID string, rates catalog.RateProvider, r *booking.Range) (url.Values, error) {
	s := BuildBookingSummary(vendorID, rates, r)
	if s.Booking == nil {
		return nil, fmt.Errorf("order: %w", apperr.ErrEmptySelection)
	}
	v := url.Values{}
	v.Set(ParamVendor, vendorID)
	v.Set(ParamService, string(catalog.Maid))
	v.Set(ParamStart, s.Booking.Start)
	v.Set(ParamEnd, s.Booking.End)
	v.Set(ParamDays, strconv.Itoa(s.Booking.Days))
	v.Set(ParamTotal, strconv.FormatInt(s.Total, 10))
	return v, nil
}

// EncodePlan adds a delivery plan to hand-off parameters.
func EncodePlan(v url.Values, p model.DeliveryPlan) {
	v.Set(ParamPlan, p.Type)
	if p.Frequency != "" {
		v.Set(ParamFrequency, p.Frequency)
	}
	v.Set(ParamSlot, p.SlotID)
	v.Set(ParamStartDate, p.StartDate)
	v.Set(ParamAddress, p.Address)
}

// DecodePlan unpacks and validates the delivery plan of a hand-off against
// slots. ok is false when the hand-off carries no plan.
func DecodePlan(v url.Values, slots catalog.SlotProvider) (plan model.DeliveryPlan, ok bool, err error) {
	if !v.Has(ParamPlan) {
		return model.DeliveryPlan{}, false, nil
	}
	plan = model.DeliveryPlan{
		Type:      v.Get(ParamPlan),
		Frequency: v.Get(ParamFrequency),
		SlotID:    v.Get(ParamSlot),
		StartDate: v.Get(ParamStartDate),
		Address:   strings.TrimSpace(v.Get(ParamAddress)),
	}
	if err := ValidatePlan(plan, slots); err != nil {
		return model.DeliveryPlan{}, true, err
	}
	sl, _ := slots.Slot(plan.SlotID)
	plan.Slot = sl.Time
	return plan, true, nil
}

// DecodeSelection unpacks the vendor and cart of a per-item hand-off.
func DecodeSelection(v url.Values) (string, *cart.Cart, error) {
	c, err := cart.Decode(v.Get(ParamCart))
	if err != nil {
		return v.Get(ParamVendor), c, fmt.Errorf("order: %w", err)
	}
	return v.Get(ParamVendor), c, nil
}

// DecodeBooking unpacks the vendor and date range of a booking hand-off.
func DecodeBooking(v url.Values) (string, *booking.Range, error) {
	vendorID := v.Get(ParamVendor)
	var r booking.Range
	if v.Get(ParamStart) == "" || v.Get(ParamEnd) == "" {
		return vendorID, &r, fmt.Errorf("order: start and end are required: %w", apperr.ErrInvalidPayload)
	}
	if err := r.PickDate(v.Get(ParamStart)); err != nil {
		return vendorID, &booking.Range{}, fmt.Errorf("order: %w", err)
	}
	if err := r.PickDate(v.Get(ParamEnd)); err != nil {
		return vendorID, &booking.Range{}, fmt.Errorf("order: %w", err)
	}
	return vendorID, &r, nil
}

// DecodeSummary rebuilds the summary of a hand-off against the catalog.
// Totals are always recomputed; the informational total parameter is ignored.
// Item orders must meet the vendor minimum and may carry a delivery plan.
func DecodeSummary(v url.Values, store *catalog.Store) (model.OrderSummary, error) {
	service := catalog.Category(v.Get(ParamService))
	if service == "" {
		return model.OrderSummary{}, fmt.Errorf("order: missing %s: %w", ParamService, apperr.ErrInvalidPayload)
	}
	st := store.Category(service)

	if service == catalog.Maid {
		vendorID, r, err := DecodeBooking(v)
		if err != nil {
			return model.OrderSummary{}, err
		}
		return BuildBookingSummary(st.ResolveVendor(vendorID), st, r), nil
	}

	vendorID, c, err := DecodeSelection(v)
	if err != nil {
		return model.OrderSummary{}, err
	}
	if err := CheckAvailable(vendorID, st, c); err != nil {
		return model.OrderSummary{}, err
	}
	sum := BuildSummary(service, vendorID, st, c)
	if sum.IsEmpty() {
		return sum, nil
	}
	if err := CheckMinimum(sum, st); err != nil {
		return model.OrderSummary{}, err
	}
	plan, ok, err := DecodePlan(v, st)
	if err != nil {
		return model.OrderSummary{}, err
	}
	if ok {
		sum.Delivery = &plan
	}
	return sum, nil
}
