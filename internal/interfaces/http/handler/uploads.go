package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/uploads"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
)

// UploadHandler issues upload URLs and accepts direct image uploads
type UploadHandler struct {
	BaseHandler
	uploads *uploads.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(svc *uploads.Service) *UploadHandler {
	return &UploadHandler{uploads: svc}
}

// Presign handles POST /admin/uploads/presign
func (h *UploadHandler) Presign(c *gin.Context) {
	var req uploads.PresignRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.uploads.Presign(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Upload handles POST /admin/uploads, a multipart form with "prefix" and
// "file" fields.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleError(c, err)
			return
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "Multipart field \"file\" is required")
		return
	}
	if fh.Size > uploads.MaxUploadSize {
		h.HandleError(c, uploads.ErrTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, uploads.MaxUploadSize+1))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.uploads.Upload(c.Request.Context(), c.PostForm("prefix"), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
