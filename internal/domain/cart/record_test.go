package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	c := New(DefaultDeliveryPolicy())
	_, _ = c.AddItem(product("A", 500), 2, "M", "")
	_, _ = c.AddItem(product("B", 120), 1, "", "blue")

	data, err := Encode(c, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), RevisionOf(data))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "revision")
	assert.Contains(t, raw, "items")
	assert.Contains(t, raw, "totalPrice")
	assert.Contains(t, raw, "totalQuantity")

	restored, err := Decode(data, DefaultDeliveryPolicy())
	require.NoError(t, err)
	require.Equal(t, c.Len(), restored.Len())
	for i, item := range restored.Items() {
		want := c.Items()[i]
		assert.Equal(t, want.Key, item.Key)
		assert.Equal(t, want.Quantity, item.Quantity)
		assert.Equal(t, want.SelectedSize, item.SelectedSize)
		assert.Equal(t, want.SelectedColor, item.SelectedColor)
		assert.Equal(t, want.Product.Name, item.Product.Name)
		assert.True(t, want.Product.Price.Equal(item.Product.Price))
	}
	assert.True(t, c.TotalPrice().Equal(restored.TotalPrice()))
	assert.Equal(t, c.TotalQuantity(), restored.TotalQuantity())
}

func TestDecode_AcceptsNumericTotals(t *testing.T) {
	data := []byte(`{
		"items": [{"key":"A-no-size-no-color","product":{"id":"A","name":"Gloves","price":450},"quantity":2}],
		"totalPrice": 900,
		"totalQuantity": 2
	}`)

	c, err := Decode(data, DefaultDeliveryPolicy())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900).Equal(c.TotalPrice()))
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestDecode_RecomputesDriftedTotals(t *testing.T) {
	data := []byte(`{"items":[{"key":"A-no-size-no-color","product":{"id":"A","name":"Mask","price":"10"},"quantity":3}],"totalPrice":"999","totalQuantity":42}`)

	c, err := Decode(data, DefaultDeliveryPolicy())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(c.TotalPrice()))
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"items": [`},
		{"wrong type", `{"items": "lots"}`},
		{"missing key", `{"items":[{"product":{"id":"A","name":"x","price":1},"quantity":1}]}`},
		{"zero quantity", `{"items":[{"key":"A-no-size-no-color","product":{"id":"A","name":"x","price":1},"quantity":0}]}`},
		{"quantity above limit", `{"items":[{"key":"A-no-size-no-color","product":{"id":"A","name":"x","price":1},"quantity":10000}]}`},
		{"negative price", `{"items":[{"key":"A-no-size-no-color","product":{"id":"A","name":"x","price":-1},"quantity":1}]}`},
		{"missing product id", `{"items":[{"key":"A-no-size-no-color","product":{"name":"x","price":1},"quantity":1}]}`},
		{"duplicate key", `{"items":[{"key":"A-no-size-no-color","product":{"id":"A","name":"x","price":1},"quantity":1},{"key":"A-no-size-no-color","product":{"id":"A","name":"x","price":1},"quantity":1}]}`},
		{"key for another product", `{"items":[{"key":"B-no-size-no-color","product":{"id":"A","name":"x","price":1},"quantity":1}]}`},
		{"key for another variant", `{"items":[{"key":"A-M-no-color","product":{"id":"A","name":"x","price":1},"quantity":1,"selectedSize":"L"}]}`},
		{"arbitrary key", `{"items":[{"key":"k","product":{"id":"A","name":"x","price":1},"quantity":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode([]byte(tt.data), DefaultDeliveryPolicy())
			assert.ErrorIs(t, err, ErrMalformedRecord)
			assert.Nil(t, c)
		})
	}
}

func TestDecode_EmptyRecord(t *testing.T) {
	for _, data := range []string{`{}`, `null`, `{"items":[]}`} {
		c, err := Decode([]byte(data), DefaultDeliveryPolicy())
		require.NoError(t, err, data)
		assert.True(t, c.IsEmpty())
		assert.True(t, c.TotalPrice().IsZero())
	}
}

func TestDecode_VariantKeyMatches(t *testing.T) {
	data := []byte(`{"items":[{"key":"A-M-red","product":{"id":"A","name":"Scrubs","price":"800"},"quantity":1,"selectedSize":"M","selectedColor":"red"}]}`)

	c, err := Decode(data, DefaultDeliveryPolicy())
	require.NoError(t, err)

	_, err = c.AddItem(ProductSnapshot{ID: "A", Name: "Scrubs", Price: decimal.NewFromInt(800)}, 2, "M", "red")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestRevisionOf(t *testing.T) {
	assert.Equal(t, int64(3), RevisionOf([]byte(`{"revision":3,"items":[]}`)))
	assert.Zero(t, RevisionOf([]byte(`{"items":[]}`)))
	assert.Zero(t, RevisionOf([]byte(`{"revision":"3"}`)))
	assert.Zero(t, RevisionOf([]byte(`not json`)))
}
