package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/hmehmood121/ZuhaSurgical/internal/application/order"
)

// Slip formats
const (
	SlipFormatHTML = "html"
	SlipFormatPDF  = "pdf"
)

// OrderAdminHandler manages placed orders from the admin console
type OrderAdminHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderAdminHandler creates a new OrderAdminHandler
func NewOrderAdminHandler(orders *orderapp.Service) *OrderAdminHandler {
	return &OrderAdminHandler{orders: orders}
}

// DashboardQuery selects the dashboard window: all, daily, monthly or yearly
type DashboardQuery struct {
	Period string `form:"period"`
}

// List handles GET /admin/orders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        search query string false "Customer name, email or order number"
// @Param        status query string false "pending, shipped or delivered"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderAdminHandler) List(c *gin.Context) {
	var filter orderapp.ListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(&h.BaseHandler, c, page)
}

// Get handles GET /admin/orders/:orderId
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        orderId path string true "Order number"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{orderId} [get]
func (h *OrderAdminHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// UpdateStatus handles PATCH /admin/orders/:orderId/status
// @Summary      Change an order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order number"
// @Param        request body orderapp.StatusRequest true "New status"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{orderId}/status [patch]
func (h *OrderAdminHandler) UpdateStatus(c *gin.Context) {
	var req orderapp.StatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// UpdateCustomer handles PUT /admin/orders/:orderId/customer
func (h *OrderAdminHandler) UpdateCustomer(c *gin.Context) {
	var req orderapp.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	o, err := h.orders.UpdateCustomer(c.Request.Context(), c.Param("orderId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Delete handles DELETE /admin/orders/:orderId
func (h *OrderAdminHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Slip handles GET /admin/orders/:orderId/slip. ?format=pdf returns the
// rendered PDF as an attachment; the default is the printable HTML page.
func (h *OrderAdminHandler) Slip(c *gin.Context) {
	number := c.Param("orderId")
	switch c.DefaultQuery("format", SlipFormatHTML) {
	case SlipFormatHTML:
		body, err := h.orders.SlipHTML(c.Request.Context(), number)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	case SlipFormatPDF:
		body, err := h.orders.SlipPDF(c.Request.Context(), number)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="slip-`+number+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", body)
	default:
		h.BadRequest(c, "format must be html or pdf")
	}
}

// Dashboard handles GET /admin/dashboard
func (h *OrderAdminHandler) Dashboard(c *gin.Context) {
	var q DashboardQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.orders.Dashboard(c.Request.Context(), q.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
