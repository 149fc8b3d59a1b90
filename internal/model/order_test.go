package model

import (
	"encoding/json"
	"testing"
)

func TestLineItemSubtotal(t *testing.T) {
	t.Parallel()

	l := LineItem{Item: CatalogItem{ID: "1", Name: "Apple", UnitPrice: 120}, Quantity: 3}
	if got := l.Subtotal(); got != 360 {
		t.Fatalf("expected 360, got %d", got)
	}
}

func TestOrderSummaryIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    OrderSummary
		want bool
	}{
		{name: "zero", s: OrderSummary{}, want: true},
		{name: "vendor_only", s: OrderSummary{VendorID: "1"}, want: true},
		{name: "items", s: OrderSummary{Items: []LineItem{{Quantity: 1}}}, want: false},
		{name: "booking", s: OrderSummary{Booking: &BookingPeriod{Days: 1}}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.s.IsEmpty(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOrderSummaryOmitEmptyFields(t *testing.T) {
	t.Parallel()

	s := OrderSummary{VendorID: "2", Service: "maid", Total: 0}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}

	if _, ok := raw["items"]; ok {
		t.Fatalf("expected items to be omitted")
	}
	if _, ok := raw["booking"]; ok {
		t.Fatalf("expected booking to be omitted")
	}
	if raw["vendor_id"] != "2" {
		t.Fatalf("expected vendor_id=2, got %v", raw["vendor_id"])
	}
}

func TestOrderSummarySubtotalExcludesFee(t *testing.T) {
	t.Parallel()

	s := OrderSummary{
		Items: []LineItem{
			{Item: CatalogItem{ID: "1", UnitPrice: 60}, Quantity: 2},
			{Item: CatalogItem{ID: "2", UnitPrice: 45}, Quantity: 1},
		},
		DeliveryFee: 20,
		Total:       185,
	}
	if got := s.Subtotal(); got != 165 {
		t.Fatalf("expected 165, got %d", got)
	}
}

func TestCatalogItemAvailable(t *testing.T) {
	t.Parallel()

	if !(CatalogItem{ID: "1"}).Available() {
		t.Fatal("items are available by default")
	}
	if (CatalogItem{ID: "1", Unavailable: true}).Available() {
		t.Fatal("expected unavailable item")
	}
}
