package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/product"
)

func TestCartAddMergesLines(t *testing.T) {
	sparkler := product.Product{ID: 1, Name: "Sparkler", OfferPrice: 100}

	var c Cart
	c.Add(sparkler, 2)
	c.Add(sparkler, 3)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5, c.TotalQuantity)
	assert.EqualValues(t, 500, c.TotalAmount)
}

func TestCartAddNegativeDeltaRemovesLine(t *testing.T) {
	sparkler := product.Product{ID: 1, OfferPrice: 100}

	var c Cart
	c.Add(sparkler, 2)
	c.Add(sparkler, -2)

	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalAmount)
}

func TestCartAddNegativeDeltaForNewProductIsIgnored(t *testing.T) {
	var c Cart
	c.Add(product.Product{ID: 1, OfferPrice: 100}, -1)

	assert.Empty(t, c.Items)
}

func TestCartSetQuantity(t *testing.T) {
	var c Cart
	c.Add(product.Product{ID: 1, OfferPrice: 100}, 2)
	c.Add(product.Product{ID: 2, OfferPrice: 50}, 1)

	c.SetQuantity(1, 4)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.EqualValues(t, 450, c.TotalAmount)

	c.SetQuantity(2, 0)
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 400, c.TotalAmount)
}

func TestCartLineItemsSnapshotOfferPrice(t *testing.T) {
	var c Cart
	c.Add(product.Product{ID: 1, Name: "Sparkler", OfferPrice: 100}, 2)
	c.Add(product.Product{ID: 2, Name: "Rocket", OfferPrice: 300}, 1)

	items := c.LineItems()

	require.Len(t, items, 2)
	assert.EqualValues(t, 100, items[0].Price)
	assert.EqualValues(t, 200, items[0].TotalPrice)
	assert.Equal(t, "Rocket", items[1].ProductName)
	assert.EqualValues(t, 300, items[1].TotalPrice)
}

func TestCartClear(t *testing.T) {
	var c Cart
	c.Add(product.Product{ID: 1, OfferPrice: 100}, 2)

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Zero(t, c.TotalQuantity)
	assert.Zero(t, c.TotalAmount)
}
