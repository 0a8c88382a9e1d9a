package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/blob"
)

// MediaHandler serves stored image blobs.
type MediaHandler struct {
	Blobs *blob.Store
}

// NewMediaHandler creates a MediaHandler backed by the given blob store.
func NewMediaHandler(blobs *blob.Store) *MediaHandler {
	return &MediaHandler{Blobs: blobs}
}

// ServeBlob handles GET /media/:hash. Content is immutable by construction,
// so clients may cache indefinitely.
func (h *MediaHandler) ServeBlob(c echo.Context) error {
	hash := c.Param("hash")
	b, ok := h.Blobs.Get(hash)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	c.Response().Header().Set("ETag", fmt.Sprintf("%q", hash))
	return c.Blob(http.StatusOK, b.Mime, b.Data)
}

// Health handles GET /health.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
