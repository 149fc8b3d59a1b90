package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	fruits := Default().Category(FruitsVegetables)

	tests := []struct {
		name      string
		vendorID  string
		wantNames []string
	}{
		{name: "vendor_1", vendorID: "1", wantNames: []string{"Apple", "Carrot", "Spinach"}},
		{name: "vendor_2", vendorID: "2", wantNames: []string{"Banana", "Broccoli", "Carrot"}},
		{name: "empty_uses_default", vendorID: "", wantNames: []string{"Apple", "Carrot", "Spinach"}},
		{name: "unknown", vendorID: "42", wantNames: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := fruits.Catalog(tt.vendorID)
			require.NotNil(t, items)

			names := make([]string, 0, len(items))
			for _, it := range items {
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestCatalogIsCopied(t *testing.T) {
	t.Parallel()

	fruits := Default().Category(FruitsVegetables)

	items := fruits.Catalog("1")
	items[0].UnitPrice = 1

	it, ok := fruits.Item("1", "1")
	require.True(t, ok)
	assert.Equal(t, int64(120), it.UnitPrice)
}

func TestDayRate(t *testing.T) {
	t.Parallel()

	maid := Default().Category(Maid)

	assert.Equal(t, int64(400), maid.DayRate("1"))
	assert.Equal(t, int64(500), maid.DayRate("2"))
	assert.Equal(t, int64(300), maid.DayRate("3"))
	assert.Equal(t, int64(400), maid.DayRate("9"), "unknown vendor falls back")
	assert.Equal(t, int64(400), maid.DayRate(""), "empty id resolves to default vendor")

	custom := Default(WithFallbackDayRate(350)).Category(Maid)
	assert.Equal(t, int64(350), custom.DayRate("9"))
}

func TestUnknownCategoryIsEmpty(t *testing.T) {
	t.Parallel()

	st := Default().Category(Category("laundry"))
	require.NotNil(t, st)
	assert.Empty(t, st.Catalog("1"))
	assert.Empty(t, st.Vendors())
	assert.Equal(t, int64(400), st.DayRate("1"))
}

func TestDefaultVendorOverride(t *testing.T) {
	t.Parallel()

	water := Default(WithDefaultVendor("2")).Category(Water)
	assert.Equal(t, "2", water.DefaultVendor())

	items := water.Catalog("")
	require.Len(t, items, 2)
	assert.Equal(t, int64(58), items[0].UnitPrice)
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown_field",
			doc:  "default_vendor: \"1\"\nfallback_day_rate: 400\ncolour: red\n",
		},
		{
			name: "missing_default_vendor",
			doc:  "fallback_day_rate: 400\n",
		},
		{
			name: "non_positive_price",
			doc: `default_vendor: "1"
fallback_day_rate: 400
categories:
  milk:
    vendors:
      - id: "1"
        name: Dairy
        items:
          - {id: "1", name: Milk, unit: litre, price: 0}
`,
		},
		{
			name: "duplicate_item",
			doc: `default_vendor: "1"
fallback_day_rate: 400
categories:
  milk:
    vendors:
      - id: "1"
        name: Dairy
        items:
          - {id: "1", name: Cow Milk, unit: litre, price: 55}
          - {id: "1", name: Buffalo Milk, unit: litre, price: 65}
`,
		},
		{
			name: "negative_delivery_fee",
			doc: `default_vendor: "1"
fallback_day_rate: 400
categories:
  water:
    vendors:
      - {id: "1", name: Spring, delivery_fee: -5}
`,
		},
		{
			name: "duplicate_slot",
			doc: `default_vendor: "1"
fallback_day_rate: 400
categories:
  water:
    slots:
      - {id: "1", time: "8-10"}
      - {id: "1", time: "10-12"}
`,
		},
		{
			name: "duplicate_vendor",
			doc: `default_vendor: "1"
fallback_day_rate: 400
categories:
  maid:
    vendors:
      - {id: "1", name: A, day_rate: 100}
      - {id: "1", name: B, day_rate: 200}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestStoreCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]Category{FruitsVegetables, Maid, Milk, Water},
		Default().Categories(),
	)
}

func TestTermsAndSlots(t *testing.T) {
	t.Parallel()

	store := Default()

	milk := store.Category(Milk)
	assert.Equal(t, Terms{MinOrder: 50}, milk.Terms("1"))
	assert.Equal(t, Terms{MinOrder: 50}, milk.Terms(""), "empty id resolves to the default vendor")
	assert.Equal(t, Terms{}, milk.Terms("9"))

	water := store.Category(Water)
	assert.Equal(t, int64(55), water.Terms("2").MinOrder)

	sl, ok := water.Slot("4")
	require.True(t, ok)
	assert.False(t, sl.Available())
	_, ok = water.Slot("9")
	assert.False(t, ok)

	assert.Empty(t, store.Category(Maid).Slots())
}
