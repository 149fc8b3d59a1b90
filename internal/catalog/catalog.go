// Package catalog resolves vendor catalogs and day rates.
//
// Catalog data is static reference data decoded once from YAML. Lookups are
// pure and total: an unknown vendor yields an empty catalog, never an error.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/iliamunaev/doorstep/internal/model"
)

//go:embed catalog.yaml
var builtin []byte

// Category is a service line of the storefront.
type Category string

const (
	Milk             Category = "milk"
	Water            Category = "water"
	FruitsVegetables Category = "fruits-vegetables"
	Maid             Category = "maid"
)

// Provider returns the ordered catalog of a vendor.
type Provider interface {
	Catalog(vendorID string) []model.CatalogItem
}

// RateProvider returns the per-day rate of a day-rate vendor.
type RateProvider interface {
	DayRate(vendorID string) int64
}

// VendorResolver maps an empty vendor id to a default vendor.
type VendorResolver interface {
	ResolveVendor(vendorID string) string
}

// TermsProvider returns the ordering terms of a vendor.
type TermsProvider interface {
	Terms(vendorID string) Terms
}

// SlotProvider lists the delivery slots of a category.
type SlotProvider interface {
	Slots() []Slot
	Slot(id string) (Slot, bool)
}

// Terms are the per-vendor ordering conditions, in rupees. MinOrder applies
// to the item subtotal; DeliveryFee is added once to a non-empty order.
type Terms struct {
	MinOrder    int64
	DeliveryFee int64
}

// Vendor is a service provider and what it sells.
type Vendor struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	DayRate     int64               `yaml:"day_rate,omitempty"`
	MinOrder    int64               `yaml:"min_order,omitempty"`
	DeliveryFee int64               `yaml:"delivery_fee,omitempty"`
	Items       []model.CatalogItem `yaml:"items,omitempty"`
}

// Slot is a delivery time window.
type Slot struct {
	ID          string `yaml:"id"`
	Time        string `yaml:"time"`
	Unavailable bool   `yaml:"unavailable,omitempty"`
}

// Available reports whether the slot can be booked.
func (s Slot) Available() bool { return !s.Unavailable }

type document struct {
	DefaultVendor   string                `yaml:"default_vendor"`
	FallbackDayRate int64                 `yaml:"fallback_day_rate"`
	Categories      map[Category]category `yaml:"categories"`
}

type category struct {
	Vendors []Vendor `yaml:"vendors"`
	Slots   []Slot   `yaml:"slots,omitempty"`
}

// Store holds the catalogs of every category.
type Store struct {
	defaultVendor string
	fallbackRate  int64
	categories    map[Category]*Static
}

// Option overrides document-level settings when loading a Store.
type Option func(*document)

// WithDefaultVendor sets the vendor used when a lookup has no vendor id.
func WithDefaultVendor(id string) Option {
	return func(d *document) {
		if id != "" {
			d.DefaultVendor = id
		}
	}
}

// WithFallbackDayRate sets the rate used for unknown day-rate vendors.
func WithFallbackDayRate(rate int64) Option {
	return func(d *document) {
		if rate > 0 {
			d.FallbackDayRate = rate
		}
	}
}

// Default returns the built-in store. It panics if the embedded data is invalid.
func Default(opts ...Option) *Store {
	s, err := Parse(builtin, opts...)
	if err != nil {
		panic("catalog.Default: " + err.Error())
	}
	return s
}

// LoadFile decodes a store from a YAML file.
func LoadFile(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f, opts...)
}

// Parse decodes a store from YAML bytes.
func Parse(data []byte, opts ...Option) (*Store, error) {
	return Load(bytes.NewReader(data), opts...)
}

// Load decodes a store from r. Unknown YAML fields are rejected.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return build(doc, opts)
}

func build(doc document, opts []Option) (*Store, error) {
	for _, opt := range opts {
		opt(&doc)
	}
	if doc.DefaultVendor == "" {
		return nil, fmt.Errorf("catalog: default_vendor is required")
	}
	if doc.FallbackDayRate <= 0 {
		return nil, fmt.Errorf("catalog: fallback_day_rate must be positive")
	}

	s := &Store{
		defaultVendor: doc.DefaultVendor,
		fallbackRate:  doc.FallbackDayRate,
		categories:    make(map[Category]*Static, len(doc.Categories)),
	}
	for name, c := range doc.Categories {
		st, err := newStatic(name, doc.DefaultVendor, doc.FallbackDayRate, c)
		if err != nil {
			return nil, err
		}
		s.categories[name] = st
	}
	return s, nil
}

// Category returns the catalog of c. An unknown category is empty, not nil.
func (s *Store) Category(c Category) *Static {
	if st, ok := s.categories[c]; ok {
		return st
	}
	return &Static{
		category:      c,
		defaultVendor: s.defaultVendor,
		fallbackRate:  s.fallbackRate,
		byID:          map[string]int{},
	}
}

// Categories returns the loaded categories in sorted order.
func (s *Store) Categories() []Category {
	out := make([]Category, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Static is an in-memory Provider and RateProvider for one category.
type Static struct {
	category      Category
	defaultVendor string
	fallbackRate  int64
	vendors       []Vendor
	byID          map[string]int
	slots         []Slot
}

func newStatic(c Category, defaultVendor string, fallbackRate int64, doc category) (*Static, error) {
	vendors := doc.Vendors
	st := &Static{
		category:      c,
		defaultVendor: defaultVendor,
		fallbackRate:  fallbackRate,
		vendors:       vendors,
		byID:          make(map[string]int, len(vendors)),
		slots:         doc.Slots,
	}
	for i, v := range vendors {
		if v.ID == "" {
			return nil, fmt.Errorf("catalog: %s: vendor #%d has no id", c, i)
		}
		if _, dup := st.byID[v.ID]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate vendor %q", c, v.ID)
		}
		if v.DayRate < 0 || v.MinOrder < 0 || v.DeliveryFee < 0 {
			return nil, fmt.Errorf("catalog: %s: vendor %q: negative day_rate, min_order or delivery_fee", c, v.ID)
		}
		seen := make(map[string]bool, len(v.Items))
		for _, it := range v.Items {
			if it.ID == "" || it.UnitPrice <= 0 {
				return nil, fmt.Errorf("catalog: %s: vendor %q: item %q needs an id and a positive price", c, v.ID, it.ID)
			}
			if seen[it.ID] {
				return nil, fmt.Errorf("catalog: %s: vendor %q: duplicate item %q", c, v.ID, it.ID)
			}
			seen[it.ID] = true
		}
		st.byID[v.ID] = i
	}
	slotIDs := make(map[string]bool, len(doc.Slots))
	for _, sl := range doc.Slots {
		if sl.ID == "" || slotIDs[sl.ID] {
			return nil, fmt.Errorf("catalog: %s: slot %q is unnamed or duplicated", c, sl.ID)
		}
		slotIDs[sl.ID] = true
	}
	return st, nil
}

// Name returns the category of the catalog.
func (s *Static) Name() Category { return s.category }

// DefaultVendor returns the vendor id used when none is supplied.
func (s *Static) DefaultVendor() string { return s.defaultVendor }

// ResolveVendor maps an empty vendor id to the default vendor.
func (s *Static) ResolveVendor(vendorID string) string {
	if vendorID == "" {
		return s.defaultVendor
	}
	return vendorID
}

// Catalog returns a copy of the vendor's items in catalog order.
func (s *Static) Catalog(vendorID string) []model.CatalogItem {
	v, ok := s.Vendor(vendorID)
	if !ok || v.Items == nil {
		return []model.CatalogItem{}
	}
	return v.Items
}

// DayRate returns the vendor's per-day rate, or the fallback rate when the
// vendor is unknown or has no rate.
func (s *Static) DayRate(vendorID string) int64 {
	if v, ok := s.Vendor(vendorID); ok && v.DayRate > 0 {
		return v.DayRate
	}
	return s.fallbackRate
}

// Terms returns the ordering terms of a vendor; an unknown vendor has none.
func (s *Static) Terms(vendorID string) Terms {
	v, ok := s.Vendor(vendorID)
	if !ok {
		return Terms{}
	}
	return Terms{MinOrder: v.MinOrder, DeliveryFee: v.DeliveryFee}
}

// Slots returns the delivery slots of the category in display order.
func (s *Static) Slots() []Slot { return slices.Clone(s.slots) }

// Slot looks up a delivery slot by id.
func (s *Static) Slot(id string) (Slot, bool) {
	for _, sl := range s.slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return Slot{}, false
}

// Vendor looks up a vendor. An empty id resolves to the default vendor.
func (s *Static) Vendor(vendorID string) (Vendor, bool) {
	i, ok := s.byID[s.ResolveVendor(vendorID)]
	if !ok {
		return Vendor{}, false
	}
	v := s.vendors[i]
	v.Items = slices.Clone(v.Items)
	return v, true
}

// Vendors returns every vendor of the category in declaration order.
func (s *Static) Vendors() []Vendor {
	out := make([]Vendor, len(s.vendors))
	for i, v := range s.vendors {
		v.Items = slices.Clone(v.Items)
		out[i] = v
	}
	return out
}

// Item looks up a single catalog item of a vendor.
func (s *Static) Item(vendorID, itemID string) (model.CatalogItem, bool) {
	v, ok := s.Vendor(vendorID)
	if !ok {
		return model.CatalogItem{}, false
	}
	for _, it := range v.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return model.CatalogItem{}, false
}
