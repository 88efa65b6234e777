package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/dealcraft/dealcraft-server/internal/storage"
	"github.com/gin-gonic/gin"
)

// MaxImageSize bounds a single product image upload.
const MaxImageSize = 10 << 20

// ImageUploader stores product images. *storage.MinIOStorage implements it.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (storage.Uploaded, error)
}

type UploadHandler struct {
	images ImageUploader
}

// NewUploadHandler accepts a nil uploader; the route then answers 503.
func NewUploadHandler(images ImageUploader) *UploadHandler {
	return &UploadHandler{images: images}
}

// Image stores the multipart "image" field and returns its key and a presigned URL.
func (h *UploadHandler) Image(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "image storage not configured"})
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		handleBindError(c, "uploads.image", err)
		return
	}
	if fh.Size > MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "image too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, "uploads.image", err)
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	up, err := h.images.UploadImage(c.Request.Context(), fh.Filename, f, fh.Size, contentType)
	if err != nil {
		respondError(c, "uploads.image", err)
		return
	}
	c.JSON(http.StatusOK, up)
}
