// Package model defines the catalog, order and checkout payloads shared
// by the composer, checkout and history packages.
package model

import "time"

// CatalogItem is a purchasable item or service offered by a vendor.
type CatalogItem struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Unit      string `json:"unit" yaml:"unit"`
	UnitPrice int64  `json:"unit_price" yaml:"price"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`

	Unavailable bool `json:"unavailable,omitempty" yaml:"unavailable,omitempty"`
}

// Available reports whether the item can be added to a selection.
func (i CatalogItem) Available() bool { return !i.Unavailable }

// LineItem is a selected catalog item with its quantity.
type LineItem struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

// Subtotal returns quantity × unit price.
func (l LineItem) Subtotal() int64 {
	return int64(l.Quantity) * l.Item.UnitPrice
}

// BookingPeriod describes a day-rate booking. Dates are YYYY-MM-DD.
type BookingPeriod struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Days    int    `json:"days"`
	DayRate int64  `json:"day_rate"`
}

// DeliveryPlan schedules the delivery of a per-item order.
type DeliveryPlan struct {
	Type      string `json:"type"`                // "onetime" | "subscription"
	Frequency string `json:"frequency,omitempty"` // subscriptions only
	SlotID    string `json:"slot_id"`
	Slot      string `json:"slot"`
	StartDate string `json:"start_date"`
	Address   string `json:"address"`
}

// OrderSummary is derived from a selection and handed to checkout.
// Either Items or Booking is set, never both. Total includes DeliveryFee.
type OrderSummary struct {
	VendorID    string         `json:"vendor_id"`
	Service     string         `json:"service"` // "milk" | "water" | "fruits-vegetables" | "maid"
	Items       []LineItem     `json:"items,omitempty"`
	Booking     *BookingPeriod `json:"booking,omitempty"`
	Delivery    *DeliveryPlan  `json:"delivery,omitempty"`
	DeliveryFee int64          `json:"delivery_fee,omitempty"`
	Total       int64          `json:"total"`
}

// Subtotal sums the line items, excluding the delivery fee.
func (s OrderSummary) Subtotal() int64 {
	var total int64
	for _, l := range s.Items {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the summary carries nothing to pay for.
func (s OrderSummary) IsEmpty() bool {
	return len(s.Items) == 0 && s.Booking == nil
}

// StepResult captures the outcome of a checkout step.
type StepResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "ok" | "error" | "canceled"
	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"` // error kind when Status is "error"
}

// Confirmation is returned when an order is placed.
type Confirmation struct {
	OrderID     string        `json:"order_id"`
	VendorID    string        `json:"vendor_id"`
	Service     string        `json:"service"`
	Method      string        `json:"method"`
	MethodLabel string        `json:"method_label"`
	Total       int64         `json:"total"`
	Delivery    *DeliveryPlan `json:"delivery,omitempty"`
	Message     string        `json:"message"`
	PlacedAt    time.Time     `json:"placed_at"`
	Steps       []StepResult  `json:"steps,omitempty"`
}
