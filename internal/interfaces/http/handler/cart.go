package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcart "github.com/hmehmood121/ZuhaSurgical/internal/application/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
	"github.com/hmehmood121/ZuhaSurgical/internal/domain/cart"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
)

// CartHandler serves the shopper's session cart
type CartHandler struct {
	BaseHandler
	carts *appcart.Service
	shop  *appcart.Shop
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *appcart.Service, shop *appcart.Shop) *CartHandler {
	return &CartHandler{carts: carts, shop: shop}
}

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"max=9999"`
	Size      string    `json:"size" binding:"max=50"`
	Color     string    `json:"color" binding:"max=50"`
}

// UpdateQuantityRequest sets a line's quantity; 0 or less removes it
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=9999"`
}

// CartResponse is the cart view plus the outcome of a mutation
type CartResponse struct {
	appcart.View
	Item    *cart.LineItem       `json:"item,omitempty"`
	Changed *bool                `json:"changed,omitempty"`
	Pixel   *tracking.PixelEvent `json:"pixel,omitempty"`
	Warning string               `json:"warning,omitempty"`
}

func mutationResponse(res appcart.MutationResult) CartResponse {
	changed := res.Changed
	return CartResponse{
		View:    res.View,
		Item:    res.Item,
		Changed: &changed,
		Warning: res.Warning,
	}
}

// Get handles GET /cart
// @Summary      Get the session cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	manager, err := h.carts.Session(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, CartResponse{View: manager.View(c.Request.Context())})
}

// AddItem handles POST /cart/items
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Param        request body AddItemRequest true "Product, quantity (1-9999) and variant"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	h.add(c, false)
}

// BuyNow handles POST /cart/buy-now. It adds like AddItem and reports the
// BuyNow conversion instead of AddToCart.
// @Summary      Add a product and go to checkout
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Param        request body AddItemRequest true "Product, quantity (1-9999) and variant"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/buy-now [post]
func (h *CartHandler) BuyNow(c *gin.Context) {
	h.add(c, true)
}

func (h *CartHandler) add(c *gin.Context, buyNow bool) {
	var req AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.shop.AddProduct(c.Request.Context(), middleware.GetCartSession(c), requestContext(c), appcart.AddProductInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		BuyNow:    buyNow,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := mutationResponse(res.MutationResult)
	resp.Pixel = &res.Pixel
	h.Success(c, resp)
}

// UpdateQuantity handles PUT /cart/items/:key
// @Summary      Set a line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Param        key path string true "Line key"
// @Param        request body UpdateQuantityRequest true "New quantity, 0 removes the line"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/items/{key} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	manager, err := h.carts.Session(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	res, err := manager.UpdateQuantity(c.Request.Context(), c.Param("key"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mutationResponse(res))
}

// RemoveItem handles DELETE /cart/items/:key
// @Summary      Remove a line
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Param        key path string true "Line key"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart/items/{key} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	manager, err := h.carts.Session(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mutationResponse(manager.RemoveItem(c.Request.Context(), c.Param("key"))))
}

// Clear handles DELETE /cart
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Success      200 {object} dto.Response{data=CartResponse}
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	manager, err := h.carts.Session(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mutationResponse(manager.Clear(c.Request.Context())))
}
