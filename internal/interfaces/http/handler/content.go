package handler

import (
	"github.com/gin-gonic/gin"
	contentapp "github.com/hmehmood121/ZuhaSurgical/internal/application/content"
)

// ContentHandler serves banners, announcements and contact messages
type ContentHandler struct {
	BaseHandler
	content *contentapp.Service
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(content *contentapp.Service) *ContentHandler {
	return &ContentHandler{content: content}
}

// ListBanners handles GET /banners and GET /admin/banners
func (h *ContentHandler) ListBanners(c *gin.Context) {
	banners, err := h.content.ListBanners(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, banners)
}

// CreateBanner handles POST /admin/banners
func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var req contentapp.BannerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	banner, err := h.content.CreateBanner(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, banner)
}

// DeleteBanner handles DELETE /admin/banners/:id
func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteBanner(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ActiveAnnouncements handles GET /announcements
func (h *ContentHandler) ActiveAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, true)
}

// ListAnnouncements handles GET /admin/announcements
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	h.listAnnouncements(c, false)
}

func (h *ContentHandler) listAnnouncements(c *gin.Context, activeOnly bool) {
	announcements, err := h.content.ListAnnouncements(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, announcements)
}

// CreateAnnouncement handles POST /admin/announcements
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req contentapp.AnnouncementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	a, err := h.content.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, a)
}

// UpdateAnnouncement handles PUT /admin/announcements/:id
func (h *ContentHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req contentapp.AnnouncementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	a, err := h.content.UpdateAnnouncement(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// DeleteAnnouncement handles DELETE /admin/announcements/:id
func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SubmitContact handles POST /contact
func (h *ContentHandler) SubmitContact(c *gin.Context) {
	var req contentapp.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.content.SubmitContact(c.Request.Context(), requestContext(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListContacts handles GET /admin/contacts
func (h *ContentHandler) ListContacts(c *gin.Context) {
	var filter contentapp.ContactFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.content.ListContacts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	paginated(&h.BaseHandler, c, page)
}

// UpdateContact handles PUT /admin/contacts/:id
func (h *ContentHandler) UpdateContact(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req contentapp.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}
	m, err := h.content.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// DeleteContact handles DELETE /admin/contacts/:id
func (h *ContentHandler) DeleteContact(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteContact(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
