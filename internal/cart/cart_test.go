package cart_test

import (
	"math/rand/v2"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/catalog"
)

var (
	mug = catalog.Product{ID: "a", Name: "Mug", Price: decimal.RequireFromString("5.00")}
	pen = catalog.Product{ID: "b", Name: "Pen", Price: decimal.RequireFromString("1.50")}
)

func TestCart_Scenario(t *testing.T) {
	c := cart.New()
	c.Add(mug)
	c.Add(pen)
	c.Add(mug)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].Product.ID)
	assert.Equal(t, 1, lines[1].Quantity)

	assert.Equal(t, "11.50", c.TotalPrice().StringFixed(2))
	assert.Equal(t, 2, c.LineCount())
}

func TestCart_AddTwiceMergesLine(t *testing.T) {
	c := cart.New()
	c.Add(pen)
	c.Add(pen)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, c.LineCount())
}

func TestCart_Remove(t *testing.T) {
	c := cart.New()
	c.Add(mug)
	c.Add(pen)

	assert.False(t, c.Remove("missing"))
	assert.Equal(t, 2, c.LineCount(), "removing an absent id is a no-op")

	assert.True(t, c.Remove("a"))
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].Product.ID)
}

func TestCart_EmptyTotal(t *testing.T) {
	assert.Equal(t, "0.00", cart.New().TotalPrice().StringFixed(2))
	assert.Zero(t, cart.New().LineCount())
}

func TestCart_TotalRoundsHalfUp(t *testing.T) {
	c := cart.New()
	c.Add(catalog.Product{ID: "x", Price: decimal.RequireFromString("0.125")})

	assert.Equal(t, "0.13", c.TotalPrice().StringFixed(2))
}

func TestCart_LinesIsACopy(t *testing.T) {
	c := cart.New()
	c.Add(mug)

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestRestore_EnforcesInvariants(t *testing.T) {
	c := cart.Restore([]cart.Line{
		{Product: mug, Quantity: 1},
		{Product: pen, Quantity: 0},
		{Product: mug, Quantity: 2},
		{Product: pen, Quantity: -3},
	})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

// Random add/remove sequences never produce duplicate ids or empty lines, and
// the total matches an independently computed sum.
func TestCart_RandomOperationsKeepInvariants(t *testing.T) {
	faker := gofakeit.New(42)
	rng := rand.New(rand.NewPCG(42, 7))

	products := make([]catalog.Product, 6)
	for i := range products {
		products[i] = catalog.Product{
			ID:    faker.UUID(),
			Name:  faker.ProductName(),
			Price: decimal.NewFromFloat(faker.Price(0, 100)).Round(2),
		}
	}

	for run := 0; run < 50; run++ {
		c := cart.New()
		want := map[string]int{}

		for op := 0; op < 40; op++ {
			p := products[rng.IntN(len(products))]
			if rng.IntN(3) == 0 {
				c.Remove(p.ID)
				delete(want, p.ID)
				continue
			}
			c.Add(p)
			want[p.ID]++
		}

		seen := map[string]bool{}
		expected := decimal.Zero
		for _, l := range c.Lines() {
			require.False(t, seen[l.Product.ID], "duplicate line for %s", l.Product.ID)
			seen[l.Product.ID] = true
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.Equal(t, want[l.Product.ID], l.Quantity)
			expected = expected.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.Len(t, seen, len(want))
		require.True(t, expected.Round(2).Equal(c.TotalPrice()))
	}
}

func TestCart_TotalIndependentOfOrder(t *testing.T) {
	a := cart.New()
	a.Add(mug)
	a.Add(pen)
	a.Add(pen)

	b := cart.New()
	b.Add(pen)
	b.Add(mug)
	b.Add(pen)

	assert.True(t, a.TotalPrice().Equal(b.TotalPrice()))
	assert.Equal(t, "8.00", a.TotalPrice().StringFixed(2))
}
