package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_AddMergesVariants(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Digital BP Monitor", 4500, []string{"Adult", "Child"}, nil)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{
		"productId": p.ID, "quantity": 1, "size": "adult",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)

	item := data["item"].(map[string]any)
	assert.Equal(t, p.ID.String()+"-Adult-no-color", item["key"])
	assert.Equal(t, true, data["changed"])
	pixel := data["pixel"].(map[string]any)
	assert.Equal(t, tracking.PixelTrack, pixel["method"])
	assert.Equal(t, tracking.EventAddToCart, pixel["event"])

	w = env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{
		"productId": p.ID, "quantity": 2, "size": "Adult",
	})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Len(t, data["items"], 1)
	assert.Equal(t, float64(3), data["totalQuantity"])
	assert.Equal(t, "13500", data["totalPrice"])
	assert.Equal(t, "0", data["deliveryFee"])
	assert.Equal(t, "13500", data["finalTotal"])

	w = env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{
		"productId": p.ID, "size": "Child",
	})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Len(t, data["items"], 2)
	assert.Equal(t, float64(4), data["totalQuantity"])
}

func TestCartHandler_DeliveryFeeBelowThreshold(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Pulse Oximeter", 2500, nil, nil)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": p.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "5000", data["totalPrice"])
	assert.Equal(t, "200", data["deliveryFee"])
	assert.Equal(t, "5200", data["finalTotal"])
	assert.Equal(t, "10000", data["freeDeliveryThreshold"])
}

func TestCartHandler_BuyNowTracksCustomEvent(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Nebulizer", 6000, nil, nil)

	w := env.do(t, http.MethodPost, "/api/v1/cart/buy-now", "s1", map[string]any{"productId": p.ID})
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	pixel := data["pixel"].(map[string]any)
	assert.Equal(t, tracking.PixelTrackCustom, pixel["method"])
	assert.Equal(t, tracking.EventBuyNow, pixel["event"])
	assert.Equal(t, float64(1), data["totalQuantity"])
}

func TestCartHandler_AddErrors(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Surgical Gloves", 900, []string{"M", "L"}, nil)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"missing product id", map[string]any{"quantity": 1}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"unknown product", map[string]any{"productId": uuid.New()}, http.StatusNotFound, dto.ErrCodeNotFound},
		{"size not offered", map[string]any{"productId": p.ID, "size": "XXL"}, http.StatusBadRequest, dto.ErrCodeValidationVariant},
		{"negative quantity", map[string]any{"productId": p.ID, "size": "M", "quantity": -2}, http.StatusBadRequest, dto.ErrCodeValidationRange},
		{"quantity above limit", map[string]any{"productId": p.ID, "size": "M", "quantity": 10000}, http.StatusBadRequest, dto.ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp, _ := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCartHandler_UpdateRemoveClear(t *testing.T) {
	env := newStoreEnv(t)
	a := env.seedProduct(t, "Thermometer", 800, nil, nil)
	b := env.seedProduct(t, "Face Masks", 300, nil, nil)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		w := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": id})
		require.Equal(t, http.StatusOK, w.Code)
	}
	keyA := a.ID.String() + "-no-size-no-color"
	keyB := b.ID.String() + "-no-size-no-color"

	w := env.do(t, http.MethodPut, "/api/v1/cart/items/"+keyA, "s1", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, float64(6), data["totalQuantity"])

	w = env.do(t, http.MethodPut, "/api/v1/cart/items/"+keyA, "s1", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Len(t, data["items"], 1)

	w = env.do(t, http.MethodPut, "/api/v1/cart/items/"+keyA, "s1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/cart/items/"+keyB, "s1", map[string]any{"quantity": 10000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/cart/items/unknown-key", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, false, data["changed"])

	w = env.do(t, http.MethodDelete, "/api/v1/cart/items/"+keyB, "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, true, data["changed"])
	assert.Empty(t, data["items"])

	env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": a.ID})
	w = env.do(t, http.MethodDelete, "/api/v1/cart", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, float64(0), data["totalQuantity"])
	assert.Equal(t, "200", data["finalTotal"])
}

func TestCartHandler_MergePastLimit(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Cotton Rolls", 50, nil, nil)

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": p.ID, "quantity": 9999})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": p.ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp, _ := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidationRange, resp.Error.Code)

	w = env.do(t, http.MethodGet, "/api/v1/cart", "s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, float64(9999), data["totalQuantity"])
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	env := newStoreEnv(t)
	p := env.seedProduct(t, "Wheelchair", 25000, nil, nil)

	env.do(t, http.MethodPost, "/api/v1/cart/items", "s1", map[string]any{"productId": p.ID})

	w := env.do(t, http.MethodGet, "/api/v1/cart", "s2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Empty(t, data["items"])
	assert.NotContains(t, data, "changed")

	w = env.do(t, http.MethodGet, "/api/v1/cart", "s1", nil)
	_, data = decode(t, w)
	assert.Len(t, data["items"], 1)
}
