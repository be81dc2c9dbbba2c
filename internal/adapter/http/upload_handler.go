package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"resume-builder/internal/adapter/http/presenter"

	"github.com/gofiber/fiber/v2"
)

type ImageStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadHandler accepts profile pictures. With no store configured every
// upload is answered with 503.
type UploadHandler struct {
	store    ImageStore
	maxBytes int64
}

func NewUploadHandler(store ImageStore, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes}
}

func (h *UploadHandler) Image(c *fiber.Ctx) error {
	if h.store == nil {
		return presenter.Error(c, fiber.StatusServiceUnavailable, "image uploads are not configured")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return presenter.Error(c, fiber.StatusBadRequest, "multipart field \"file\" is required")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return presenter.Error(c, fiber.StatusRequestEntityTooLarge, "image is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return presenter.FromError(c, err)
	}
	defer f.Close()

	// trust the bytes, not the client's Content-Type
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return presenter.FromError(c, err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		return presenter.Error(c, fiber.StatusBadRequest, "file must be a PNG, JPEG, WebP or GIF image")
	}

	url, err := h.store.Put(c.UserContext(), fh.Filename, contentType, io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, fiber.StatusCreated, fiber.Map{"url": url})
}
