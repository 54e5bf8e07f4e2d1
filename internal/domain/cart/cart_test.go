package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) ProductSnapshot {
	return ProductSnapshot{
		ID:     id,
		Slug:   id + "-slug",
		Name:   "Product " + id,
		Price:  decimal.NewFromInt(price),
		Images: []string{"https://cdn.example.com/" + id + ".jpg"},
	}
}

// assertConsistent checks that the running totals equal a full scan.
func assertConsistent(t *testing.T, c *Cart) {
	t.Helper()
	sum := decimal.Zero
	qty := 0
	for _, item := range c.Items() {
		sum = sum.Add(item.Subtotal())
		qty += item.Quantity
	}
	assert.True(t, sum.Equal(c.TotalPrice()), "totalPrice %s != scan %s", c.TotalPrice(), sum)
	assert.Equal(t, qty, c.TotalQuantity())
}

func TestLineKey(t *testing.T) {
	assert.Equal(t, "p1-M-red", LineKey("p1", "M", "red"))
	assert.Equal(t, "p1-no-size-red", LineKey("p1", "", "red"))
	assert.Equal(t, "p1-M-no-color", LineKey("p1", "M", ""))
	assert.Equal(t, "p1-no-size-no-color", LineKey("p1", "", ""))
}

func TestCart_AddItem(t *testing.T) {
	t.Run("scenario single product", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())

		item, err := c.AddItem(product("A", 500), 2, "", "")
		require.NoError(t, err)

		assert.Equal(t, "A-no-size-no-color", item.Key)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 2, c.TotalQuantity())
		assert.True(t, decimal.NewFromInt(1000).Equal(c.TotalPrice()))
		assert.True(t, decimal.NewFromInt(1200).Equal(c.FinalTotal()))
		assertConsistent(t, c)
	})

	t.Run("merges same product and variant", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		p := product("P", 100)

		_, err := c.AddItem(p, 2, "M", "red")
		require.NoError(t, err)
		item, err := c.AddItem(p, 3, "M", "red")
		require.NoError(t, err)

		require.Equal(t, 1, c.Len())
		assert.Equal(t, 5, item.Quantity)
		assert.Equal(t, 5, c.Items()[0].Quantity)
		assertConsistent(t, c)
	})

	t.Run("distinct variants stay separate", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		p := product("P", 100)

		_, err := c.AddItem(p, 1, "M", "red")
		require.NoError(t, err)
		_, err = c.AddItem(p, 1, "L", "red")
		require.NoError(t, err)

		require.Equal(t, 2, c.Len())
		assert.Equal(t, "P-M-red", c.Items()[0].Key)
		assert.Equal(t, "P-L-red", c.Items()[1].Key)
		assertConsistent(t, c)
	})

	t.Run("preserves insertion order on merge", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 10), 1, "", "")
		_, _ = c.AddItem(product("B", 20), 1, "", "")
		_, _ = c.AddItem(product("A", 10), 4, "", "")

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "A", items[0].Product.ID)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, "B", items[1].Product.ID)
	})

	t.Run("merge keeps the first snapshot price", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 100), 1, "", "")
		_, err := c.AddItem(product("A", 150), 1, "", "")
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(200).Equal(c.TotalPrice()))
		assertConsistent(t, c)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 100), 1, "", "")

		for _, q := range []int{0, -1, -50} {
			_, err := c.AddItem(product("A", 100), q, "", "")
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		}
		assert.Equal(t, 1, c.TotalQuantity())
		assert.True(t, decimal.NewFromInt(100).Equal(c.TotalPrice()))
	})

	t.Run("rejects incomplete snapshot", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())

		_, err := c.AddItem(ProductSnapshot{Name: "x", Price: decimal.NewFromInt(1)}, 1, "", "")
		assert.ErrorIs(t, err, ErrInvalidProduct)
		_, err = c.AddItem(ProductSnapshot{ID: "x", Price: decimal.NewFromInt(1)}, 1, "", "")
		assert.ErrorIs(t, err, ErrInvalidProduct)
		_, err = c.AddItem(ProductSnapshot{ID: "x", Name: "x", Price: decimal.NewFromInt(-1)}, 1, "", "")
		assert.ErrorIs(t, err, ErrInvalidProduct)
		assert.True(t, c.IsEmpty())
	})

	t.Run("snapshot is isolated from caller", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		p := product("A", 100)
		_, _ = c.AddItem(p, 1, "", "")

		p.Images[0] = "mutated"
		items := c.Items()
		items[0].Product.Images[0] = "mutated too"

		assert.Equal(t, "https://cdn.example.com/A.jpg", c.Items()[0].Product.Images[0])
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("restores pre-add totals", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("B", 75), 1, "", "")
		beforePrice, beforeQty := c.TotalPrice(), c.TotalQuantity()

		item, err := c.AddItem(product("A", 500), 2, "", "")
		require.NoError(t, err)
		assert.True(t, c.RemoveItem(item.Key))

		assert.True(t, beforePrice.Equal(c.TotalPrice()))
		assert.Equal(t, beforeQty, c.TotalQuantity())
		assertConsistent(t, c)
	})

	t.Run("empty cart returns to zero", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 500), 2, "", "")

		assert.True(t, c.RemoveItem(item.Key))
		assert.True(t, c.TotalPrice().IsZero())
		assert.Equal(t, 0, c.TotalQuantity())
		assert.True(t, c.IsEmpty())
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 500), 2, "", "")

		assert.False(t, c.RemoveItem("missing"))
		assert.False(t, c.RemoveItem(""))
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 2, c.TotalQuantity())
	})

	t.Run("removing twice is idempotent", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 500), 2, "", "")

		assert.True(t, c.RemoveItem(item.Key))
		assert.False(t, c.RemoveItem(item.Key))
		assertConsistent(t, c)
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("scenario update to five", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 500), 2, "", "")

		assert.True(t, mustUpdate(t, c, item.Key, 5))
		assert.Equal(t, 5, c.TotalQuantity())
		assert.True(t, decimal.NewFromInt(2500).Equal(c.TotalPrice()))
		assertConsistent(t, c)
	})

	t.Run("decrease adjusts by delta", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("B", 30), 3, "", "")
		item, _ := c.AddItem(product("A", 500), 4, "", "")

		assert.True(t, mustUpdate(t, c, item.Key, 1))
		assert.Equal(t, 4, c.TotalQuantity())
		assert.True(t, decimal.NewFromInt(590).Equal(c.TotalPrice()))
		assertConsistent(t, c)
	})

	t.Run("same quantity reports unchanged", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 500), 2, "", "")

		assert.False(t, mustUpdate(t, c, item.Key, 2))
		assert.Equal(t, 2, c.TotalQuantity())
	})

	t.Run("zero equals remove", func(t *testing.T) {
		build := func() (*Cart, string) {
			c := New(DefaultDeliveryPolicy())
			_, _ = c.AddItem(product("B", 30), 1, "S", "")
			item, _ := c.AddItem(product("A", 500), 2, "M", "blue")
			return c, item.Key
		}

		updated, key := build()
		removed, _ := build()
		assert.True(t, mustUpdate(t, updated, key, 0))
		assert.True(t, removed.RemoveItem(key))

		assert.Equal(t, removed.Snapshot(), updated.Snapshot())
	})

	t.Run("negative removes", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 500), 2, "", "")

		assert.True(t, mustUpdate(t, c, item.Key, -3))
		assert.True(t, c.IsEmpty())
		assertConsistent(t, c)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 500), 2, "", "")

		assert.False(t, mustUpdate(t, c, "missing", 7))
		assert.False(t, mustUpdate(t, c, "missing", 0))
		assert.Equal(t, 2, c.TotalQuantity())
	})
}

func TestCart_Clear(t *testing.T) {
	c := New(DefaultDeliveryPolicy())
	p := product("P", 250)
	_, _ = c.AddItem(p, 1, "M", "red")
	_, _ = c.AddItem(p, 2, "L", "red")
	require.Equal(t, 2, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, 0, c.TotalQuantity())
	assert.NotNil(t, c.Items())

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCart_DeliveryFee(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		fee   int64
	}{
		{"just below threshold", 9999, 200},
		{"at threshold", 10000, 0},
		{"above threshold", 25000, 0},
		{"small order", 1, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultDeliveryPolicy())
			_, err := c.AddItem(product("A", tt.price), 1, "", "")
			require.NoError(t, err)

			assert.True(t, decimal.NewFromInt(tt.fee).Equal(c.DeliveryFee()), "fee %s", c.DeliveryFee())
			assert.True(t, decimal.NewFromInt(tt.price+tt.fee).Equal(c.FinalTotal()))
		})
	}

	t.Run("reflects current total after mutation", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 5000), 2, "", "")
		assert.True(t, c.DeliveryFee().IsZero())

		mustUpdate(t, c, item.Key, 1)
		assert.True(t, decimal.NewFromInt(200).Equal(c.DeliveryFee()))
	})

	t.Run("custom policy", func(t *testing.T) {
		policy := DeliveryPolicy{Fee: decimal.NewFromInt(150), FreeThreshold: decimal.NewFromInt(500)}
		c := New(policy)
		_, _ = c.AddItem(product("A", 499), 1, "", "")
		assert.True(t, decimal.NewFromInt(150).Equal(c.DeliveryFee()))
		_, _ = c.AddItem(product("B", 1), 1, "", "")
		assert.True(t, c.DeliveryFee().IsZero())
	})
}

func TestCart_InvariantUnderMixedOperations(t *testing.T) {
	c := New(DefaultDeliveryPolicy())
	ops := []func(){
		func() { _, _ = c.AddItem(product("A", 500), 2, "M", "red") },
		func() { _, _ = c.AddItem(product("B", 1250), 1, "", "") },
		func() { _, _ = c.AddItem(product("A", 500), 3, "M", "red") },
		func() { _, _ = c.UpdateQuantity(LineKey("B", "", ""), 4) },
		func() { _, _ = c.AddItem(product("A", 500), 1, "L", "") },
		func() { c.RemoveItem(LineKey("A", "M", "red")) },
		func() { _, _ = c.UpdateQuantity(LineKey("A", "L", ""), 0) },
		func() { _, _ = c.AddItem(product("C", 99), 7, "", "green") },
		func() { c.RemoveItem("nope") },
	}
	for _, op := range ops {
		op()
		assertConsistent(t, c)
	}
	assert.Equal(t, 2, c.Len())
}

func mustUpdate(t *testing.T, c *Cart, key string, quantity int) bool {
	t.Helper()
	changed, err := c.UpdateQuantity(key, quantity)
	require.NoError(t, err)
	return changed
}

func TestCart_QuantityLimit(t *testing.T) {
	t.Run("add above the limit is rejected", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, err := c.AddItem(product("A", 10), MaxLineQuantity+1, "", "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())

		_, err = c.AddItem(product("A", 10), math.MaxInt, "", "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
	})

	t.Run("merge past the limit leaves the line as it was", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, err := c.AddItem(product("A", 10), MaxLineQuantity, "", "")
		require.NoError(t, err)

		_, err = c.AddItem(product("A", 10), 1, "", "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		item, ok := c.Item(LineKey("A", "", ""))
		require.True(t, ok)
		assert.Equal(t, MaxLineQuantity, item.Quantity)
		assert.Equal(t, MaxLineQuantity, c.TotalQuantity())
		assertConsistent(t, c)
	})

	t.Run("update above the limit is rejected", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		item, _ := c.AddItem(product("A", 10), 2, "", "")

		changed, err := c.UpdateQuantity(item.Key, math.MaxInt)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.False(t, changed)
		assert.Equal(t, 2, c.TotalQuantity())

		assert.True(t, mustUpdate(t, c, item.Key, MaxLineQuantity))
		assertConsistent(t, c)
	})

	t.Run("a full line still round trips", func(t *testing.T) {
		c := New(DefaultDeliveryPolicy())
		_, _ = c.AddItem(product("A", 10), MaxLineQuantity, "", "")

		data, err := Encode(c, 1)
		require.NoError(t, err)
		restored, err := Decode(data, DefaultDeliveryPolicy())
		require.NoError(t, err)
		assert.Equal(t, MaxLineQuantity, restored.TotalQuantity())
	})
}

func TestCart_ItemIsACopy(t *testing.T) {
	c := New(DefaultDeliveryPolicy())
	p := product("A", 100)
	p.Images = []string{"front.jpg"}
	added, err := c.AddItem(p, 1, "", "")
	require.NoError(t, err)
	added.Product.Images[0] = "changed-by-add-result.jpg"

	item, ok := c.Item(added.Key)
	require.True(t, ok)
	item.Product.Images[0] = "changed-by-lookup.jpg"

	again, _ := c.Item(added.Key)
	assert.Equal(t, "front.jpg", again.Product.Images[0])
	assert.Equal(t, "front.jpg", c.Items()[0].Product.Images[0])
}

func TestCart_Clone(t *testing.T) {
	c := New(DefaultDeliveryPolicy())
	_, _ = c.AddItem(product("A", 100), 2, "", "")

	clone := c.Clone()
	_, _ = clone.AddItem(product("B", 50), 1, "", "")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.TotalQuantity())
	assert.Equal(t, 2, clone.Len())
	assertConsistent(t, clone)
}
