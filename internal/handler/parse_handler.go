// Package handler implements the HTTP endpoints around the parser.
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/takeda9/rulesheet-go/internal/logger"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/blob"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/images"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/models"
)

// SheetPayload is one parsed sheet plus its bound images.
type SheetPayload struct {
	Result *models.Document           `json:"result"`
	Images map[string]models.ImageRef `json:"images"`
}

// ParseResponse is the /api/parse response body.
type ParseResponse struct {
	OK            bool                    `json:"ok"`
	Sheets        map[string]SheetPayload `json:"sheets,omitempty"`
	SkippedSheets []string                `json:"skipped_sheets,omitempty"`
	BlobStoreSize int                     `json:"blob_store_size"`
	Error         string                  `json:"error,omitempty"`
}

// ParseHandler accepts workbook uploads and returns the parsed documents
// with image references.
type ParseHandler struct {
	Blobs *blob.Store
}

// NewParseHandler creates a ParseHandler backed by the given blob store.
func NewParseHandler(blobs *blob.Store) *ParseHandler {
	return &ParseHandler{Blobs: blobs}
}

// ParseExcel handles POST /api/parse: a multipart upload with a "file" part
// and an optional "sheet" form field.
func (h *ParseHandler) ParseExcel(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ParseResponse{Error: "missing file upload"})
	}
	sheet := c.FormValue("sheet")

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ParseResponse{Error: "unreadable file upload"})
	}
	defer src.Close()

	tmpDir, err := os.MkdirTemp("", "rulesheet-")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ParseResponse{Error: err.Error()})
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "upload.xlsx")
	if err := writeTempFile(tmpPath, src); err != nil {
		return c.JSON(http.StatusInternalServerError, ParseResponse{Error: err.Error()})
	}

	result, err := rulesheet.ParseFile(tmpPath, rulesheet.Options{Sheet: sheet})
	if err != nil {
		ctx := c.Request().Context()
		logger.ErrorLog(ctx, fmt.Sprintf("parse failed: %v", err))
		if errors.Is(err, rulesheet.ErrSheetNotFound) {
			return c.JSON(http.StatusNotFound, ParseResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ParseResponse{Error: err.Error()})
	}

	sheets := make(map[string]SheetPayload, len(result.Sheets))
	for name, doc := range result.Sheets {
		anchored, err := images.ExtractSheetImages(tmpPath, name)
		if err != nil {
			// Image binding is best effort; the parsed document still ships.
			anchored = nil
		}
		sheets[name] = SheetPayload{
			Result: doc,
			Images: images.Bind(doc, anchored, h.Blobs.Put),
		}
	}

	ctx := c.Request().Context()
	logger.InfoLog(ctx, fmt.Sprintf("parse complete: %d sheets, %d skipped", len(result.Sheets), len(result.SkippedSheets)))

	return c.JSON(http.StatusOK, ParseResponse{
		OK:            true,
		Sheets:        sheets,
		SkippedSheets: result.SkippedSheets,
		BlobStoreSize: h.Blobs.Size(),
	})
}

func writeTempFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}
