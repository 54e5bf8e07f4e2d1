package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/hmehmood121/ZuhaSurgical/internal/application/catalog"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/tracking"
)

// BrowseTracker reports catalog browsing conversions
type BrowseTracker interface {
	Search(ctx context.Context, rc tracking.RequestContext, query string) tracking.PixelEvent
	ViewContent(ctx context.Context, rc tracking.RequestContext, p tracking.Product) tracking.PixelEvent
}

// StorefrontHandler serves the shopper-facing catalog
type StorefrontHandler struct {
	BaseHandler
	storefront *catalogapp.StorefrontService
	tracker    BrowseTracker
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(storefront *catalogapp.StorefrontService, tracker BrowseTracker) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront, tracker: tracker}
}

// ProductListResponse is a page of products; Pixel is set for searches
type ProductListResponse struct {
	Products []catalogapp.ProductResponse `json:"products"`
	Pixel    *tracking.PixelEvent         `json:"pixel,omitempty"`
}

// ProductPageResponse is the product page with its ViewContent pixel
type ProductPageResponse struct {
	catalogapp.ProductDetailResponse
	Pixel tracking.PixelEvent `json:"pixel"`
}

// ListProducts handles GET /products
// @Summary      List active products
// @Tags         storefront
// @Produce      json
// @Param        search query string false "Name search"
// @Param        category query string false "Category slug or all"
// @Param        price_range query string false "under-1000, 1000-5000, 5000-10000 or over-10000"
// @Param        sort query string false "name (default), price-low, price-high or newest"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=ProductListResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	var filter catalogapp.ShopProductFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	page, err := h.storefront.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := ProductListResponse{Products: page.Items}
	if resp.Products == nil {
		resp.Products = []catalogapp.ProductResponse{}
	}
	if query := strings.TrimSpace(filter.Search); query != "" {
		pixel := h.tracker.Search(c.Request.Context(), requestContext(c), query)
		resp.Pixel = &pixel
	}
	h.SuccessWithMeta(c, resp, page.Total, page.Page, page.PageSize)
}

// GetProduct handles GET /products/:slug
// @Summary      Get a product page
// @Tags         storefront
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.Response{data=ProductPageResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{slug} [get]
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	detail, err := h.storefront.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p := detail.Product
	tp := tracking.Product{ID: p.ID.String(), Name: p.Name, Price: p.Price, Quantity: 1}
	if p.Category != nil {
		tp.Category = p.Category.Name
	}
	h.Success(c, ProductPageResponse{
		ProductDetailResponse: *detail,
		Pixel:                 h.tracker.ViewContent(c.Request.Context(), requestContext(c), tp),
	})
}

// ListCategories handles GET /categories
// @Summary      List categories
// @Tags         storefront
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse}
// @Router       /categories [get]
func (h *StorefrontHandler) ListCategories(c *gin.Context) {
	categories, err := h.storefront.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CategoryProducts handles GET /categories/:slug/products
// @Summary      List products of a category
// @Tags         storefront
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryProductsResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/{slug}/products [get]
func (h *StorefrontHandler) CategoryProducts(c *gin.Context) {
	var filter catalogapp.ShopProductFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	resp, err := h.storefront.CategoryProducts(c.Request.Context(), c.Param("slug"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProductAdminHandler manages products from the admin console
type ProductAdminHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductAdminHandler creates a new ProductAdminHandler
func NewProductAdminHandler(products *catalogapp.ProductService) *ProductAdminHandler {
	return &ProductAdminHandler{products: products}
}

// List handles GET /admin/products
func (h *ProductAdminHandler) List(c *gin.Context) {
	var filter catalogapp.AdminProductFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(&h.BaseHandler, c, page)
}

// Get handles GET /admin/products/:id
func (h *ProductAdminHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create handles POST /admin/products
func (h *ProductAdminHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update handles PUT /admin/products/:id
func (h *ProductAdminHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetStatus handles PATCH /admin/products/:id/status
func (h *ProductAdminHandler) SetStatus(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	product, err := h.products.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /admin/products/:id
func (h *ProductAdminHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CategoryAdminHandler manages categories from the admin console
type CategoryAdminHandler struct {
	BaseHandler
	categories *catalogapp.CategoryService
}

// NewCategoryAdminHandler creates a new CategoryAdminHandler
func NewCategoryAdminHandler(categories *catalogapp.CategoryService) *CategoryAdminHandler {
	return &CategoryAdminHandler{categories: categories}
}

// List handles GET /admin/categories. Product counts are included.
func (h *CategoryAdminHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context(), true)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Get handles GET /admin/categories/:id
func (h *CategoryAdminHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create handles POST /admin/categories
func (h *CategoryAdminHandler) Create(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update handles PUT /admin/categories/:id
func (h *CategoryAdminHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete handles DELETE /admin/categories/:id. A category that still has
// products is a conflict.
func (h *CategoryAdminHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

