package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hmehmood121/ZuhaSurgical/internal/application/uploads"
	"github.com/hmehmood121/ZuhaSurgical/internal/infrastructure/storage"
	"github.com/hmehmood121/ZuhaSurgical/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type memoryObjects struct {
	objects map[string][]byte
}

func (m *memoryObjects) GenerateUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, time.Time, error) {
	return "https://s3.example.com/" + key + "?sig=1", time.Now().Add(15 * time.Minute), nil
}

func (m *memoryObjects) Upload(_ context.Context, key string, data []byte, _ string) error {
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) DeleteObject(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func uploadEngine(objects uploads.ObjectStorage) *gin.Engine {
	h := NewUploadHandler(uploads.NewService(objects))
	r := gin.New()
	r.POST("/admin/uploads", h.Upload)
	r.POST("/admin/uploads/presign", h.Presign)
	return r
}

func multipartRequest(t *testing.T, prefix, fileName, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("prefix", prefix))
	if data != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler_Upload(t *testing.T) {
	objects := &memoryObjects{objects: map[string][]byte{}}
	r := uploadEngine(objects)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "products", "BP monitor (1).png", "image/png", pngHeader))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := decode(t, w)

	key := data["key"].(string)
	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, "_BP_monitor_1_.png"))
	assert.Equal(t, "https://cdn.example.com/"+key, data["publicUrl"])
	assert.Equal(t, pngHeader, objects.objects[key])
}

func TestUploadHandler_UploadErrors(t *testing.T) {
	r := uploadEngine(&memoryObjects{objects: map[string][]byte{}})

	tests := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{"missing file", multipartRequest(t, "products", "", "", nil), http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad prefix", multipartRequest(t, "invoices", "a.png", "image/png", pngHeader), http.StatusBadRequest, dto.ErrCodeValidation},
		{"not an image", multipartRequest(t, "banners", "notes.txt", "text/plain", []byte("hello")), http.StatusUnsupportedMediaType, dto.ErrCodeUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp, _ := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestUploadHandler_Presign(t *testing.T) {
	r := uploadEngine(&memoryObjects{objects: map[string][]byte{}})

	body := `{"prefix":"banners","fileName":"eid sale.jpg","contentType":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/uploads/presign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)
	assert.Contains(t, data["uploadUrl"], "sig=1")
	assert.True(t, strings.HasPrefix(data["key"].(string), "banners/"))
}

func TestUploadHandler_StorageDisabled(t *testing.T) {
	r := uploadEngine(storage.DisabledStorage{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "products", "a.png", "image/png", pngHeader))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
