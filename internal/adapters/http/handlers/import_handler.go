package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MaxImportFileSize caps uploads at 10 MB
const MaxImportFileSize = 10 << 20

// ImportHandler handles bulk import endpoints
type ImportHandler struct {
	importService *services.ImportService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService *services.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Import handles a CSV/XLSX upload of holding assets
// @Summary Bulk import assets
// @Description Upload a CSV or XLSX file of assets into the holding area
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV or XLSX file"
// @Param type formData string false "Default asset type for rows without one"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Import file is required")
	}
	if fileHeader.Size > MaxImportFileSize {
		return response.BadRequest(c, "Import file too large")
	}

	// Format from the explicit field, falling back to the file extension
	format := strings.ToLower(c.FormValue("format"))
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	}

	targetType := c.FormValue("type")

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read import file")
	}
	defer file.Close()

	rows, err := h.importService.Parse(file, format)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFormat):
			return response.BadRequest(c, "Unsupported import format, use csv or xlsx")
		case errors.Is(err, services.ErrEmptyImportFile):
			return response.BadRequest(c, "Import file contains no data rows")
		default:
			return response.BadRequest(c, "Failed to parse import file")
		}
	}

	result, err := h.importService.BulkImport(c.Context(), rows, targetType)
	if err != nil {
		return response.InternalServerError(c, "Failed to import assets")
	}

	return response.Success(c, "Import completed", result)
}
