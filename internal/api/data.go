package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/transfer"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DataHandler struct {
	data      *service.DataService
	exports   *config.S3Config
	exportTTL time.Duration
}

// NewDataHandler builds the handler. exports may be nil, which disables
// ?upload=s3.
func NewDataHandler(data *service.DataService, exports *config.S3Config, exportTTL time.Duration) *DataHandler {
	if exportTTL <= 0 {
		exportTTL = 15 * time.Minute
	}
	return &DataHandler{data: data, exports: exports, exportTTL: exportTTL}
}

func (h *DataHandler) RegisterRoutes(router *gin.RouterGroup) {
	data := router.Group("/data")
	{
		data.GET("/export", h.Export)
		data.POST("/import", h.Import)
		data.GET("/storage", h.Storage)
		data.DELETE("", h.Clear)
	}
}

// Export downloads the household backup as JSON (default) or XLSX. With
// ?upload=s3 the file is stored in the export bucket and a temporary link is
// returned instead.
func (h *DataHandler) Export(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	doc, err := h.data.Export(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var (
		buf         bytes.Buffer
		filename    string
		contentType string
	)
	switch c.DefaultQuery("format", "json") {
	case "json":
		err = doc.WriteJSON(&buf)
		filename, contentType = transfer.Filename(doc.ExportDate), "application/json"
	case "xlsx":
		err = transfer.WriteXLSX(&buf, doc)
		filename, contentType = transfer.XLSXFilename(doc.ExportDate), xlsxContentType
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or xlsx"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("upload") == "s3" {
		h.upload(c, id.String(), filename, contentType, buf.Bytes())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *DataHandler) upload(c *gin.Context, householdID, filename, contentType string, body []byte) {
	if h.exports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "export uploads are not configured"})
		return
	}
	ctx := c.Request.Context()
	key := fmt.Sprintf("exports/%s/%s", householdID, filename)
	if err := h.exports.Upload(ctx, key, contentType, body); err != nil {
		respondError(c, err)
		return
	}
	url, err := h.exports.GeneratePresignedURL(ctx, key, h.exportTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"filename":   filename,
		"expires_in": int(h.exportTTL.Seconds()),
	})
}

// Import replaces the pantry and saved recipes from a backup, sent either as
// the request body or as the multipart field "file".
func (h *DataHandler) Import(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}

	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()
		body = f
	}

	doc, err := transfer.Decode(body)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.data.Import(c.Request.Context(), id, doc); err != nil {
		respondError(c, err)
		return
	}

	info, err := h.data.StorageInfo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *DataHandler) Storage(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	info, err := h.data.StorageInfo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Clear wipes the household's data and resets its settings to proxy mode.
func (h *DataHandler) Clear(c *gin.Context) {
	id, ok := household(c)
	if !ok {
		return
	}
	if err := h.data.ClearAll(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
