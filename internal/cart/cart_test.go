package cart

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/model"
)

var greenBasket = []model.CatalogItem{
	{ID: "1", Name: "Apple", Unit: "kg", UnitPrice: 120},
	{ID: "2", Name: "Carrot", Unit: "kg", UnitPrice: 60},
	{ID: "3", Name: "Spinach", Unit: "bunch", UnitPrice: 40},
}

func TestIncrementDecrement(t *testing.T) {
	t.Parallel()

	c := New()

	assert.Equal(t, 1, c.Increment("1"))
	assert.Equal(t, 2, c.Increment("1"))
	assert.Equal(t, 1, c.Decrement("1"))
	assert.Equal(t, 0, c.Decrement("1"))
	assert.Equal(t, 0, c.Len(), "zero quantity must not persist")

	assert.Equal(t, 0, c.Decrement("2"), "decrement of absent item")
	assert.False(t, c.CanProceed())
}

func TestQuantityIsClampedDifference(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 200; run++ {
		c := New()
		want := 0
		for step := 0; step < 30; step++ {
			if r.IntN(2) == 0 {
				c.Increment("apple")
				want++
			} else {
				c.Decrement("apple")
				want = max(want-1, 0)
			}

			require.Equal(t, want, c.Quantity("apple"))
			_, present := c.qty["apple"]
			require.Equal(t, want > 0, present, "key present iff quantity > 0")
		}
	}
}

func TestTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		qty  map[string]int
		want int64
	}{
		{name: "empty", qty: nil, want: 0},
		{name: "apple_and_carrot", qty: map[string]int{"1": 2, "2": 1}, want: 300},
		{name: "unknown_item_contributes_zero", qty: map[string]int{"1": 1, "99": 5}, want: 120},
		{name: "all", qty: map[string]int{"1": 1, "2": 1, "3": 3}, want: 300},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			for id, q := range tt.qty {
				for i := 0; i < q; i++ {
					c.Increment(id)
				}
			}
			assert.Equal(t, tt.want, c.Total(greenBasket))
		})
	}
}

func TestLinesFollowCatalogOrder(t *testing.T) {
	t.Parallel()

	c := New()
	c.Increment("3")
	c.Increment("1")
	c.Increment("1")

	lines := c.Lines(greenBasket)
	require.Len(t, lines, 2)
	assert.Equal(t, "Apple", lines[0].Item.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Spinach", lines[1].Item.Name)
	assert.Equal(t, []string{"1", "3"}, c.IDs())
}

func TestZeroValueCart(t *testing.T) {
	t.Parallel()

	var c Cart
	assert.Equal(t, 0, c.Decrement("1"))
	assert.Equal(t, 1, c.Increment("1"))
	assert.True(t, c.CanProceed())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	c.Increment("1")
	c.Increment("1")
	c.Increment("2")

	s, err := c.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":2,"2":1}`, s)

	got, err := Decode(s)
	require.NoError(t, err)
	assert.Equal(t, c.Total(greenBasket), got.Total(greenBasket))
	assert.Equal(t, c.IDs(), got.IDs())

	empty, err := New().Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantLen int
		wantErr error
	}{
		{name: "empty_string", in: "", wantLen: 0},
		{name: "drops_non_positive", in: `{"1":0,"2":-3,"3":1}`, wantLen: 1},
		{name: "malformed", in: `{"1":`, wantLen: 0, wantErr: apperr.ErrInvalidPayload},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := Decode(tt.in)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.wantLen, c.Len())
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	c := New()
	c.Increment("1")

	cp := c.Clone()
	cp.Increment("1")

	assert.Equal(t, 1, c.Quantity("1"))
	assert.Equal(t, 2, cp.Quantity("1"))
}
