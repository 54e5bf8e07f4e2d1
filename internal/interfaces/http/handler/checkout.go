package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/hmehmood121/ZuhaSurgical/internal/application/checkout"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/middleware"
)

// CheckoutHandler turns the session cart into an order
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Begin handles GET /checkout. An empty cart is rejected so the front end
// can send the shopper back to the store.
// @Summary      Start checkout
// @Tags         checkout
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Success      200 {object} dto.Response{data=checkoutapp.BeginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [get]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	resp, err := h.checkout.Begin(c.Request.Context(), middleware.GetCartSession(c), requestContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PlaceOrder handles POST /checkout
// @Summary      Place an order from the cart
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session header string false "Cart session id, issued on first request"
// @Param        request body checkoutapp.PlaceOrderRequest true "Customer details and payment method"
// @Success      201 {object} dto.Response{data=checkoutapp.PlaceOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req checkoutapp.PlaceOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.checkout.PlaceOrder(c.Request.Context(), middleware.GetCartSession(c), requestContext(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Summary handles GET /orders/:orderId/summary
// @Summary      Order confirmation summary
// @Tags         checkout
// @Produce      json
// @Param        orderId path string true "Order number"
// @Success      200 {object} dto.Response{data=checkoutapp.OrderSummary}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{orderId}/summary [get]
func (h *CheckoutHandler) Summary(c *gin.Context) {
	summary, err := h.checkout.Summary(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
