package handlers

import (
	"errors"

	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler handles asset export endpoints
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportRequest carries the export format and the asset filter
type ExportRequest struct {
	Format     string `json:"format"`
	Type       string `json:"type"`
	State      string `json:"state"`
	Status     string `json:"status"`
	LocationID *uint  `json:"location_id"`
	Query      string `json:"q"`
}

// Export downloads the filtered asset list
// @Summary Export assets
// @Description Download the filtered asset list as CSV or PDF
// @Tags Export
// @Accept json
// @Produce octet-stream
// @Security BearerAuth
// @Param body body ExportRequest true "Export format and filter"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Router /assets/export [post]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	var req ExportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	filter := &repositories.AssetFilter{
		Type:       req.Type,
		State:      req.State,
		Status:     req.Status,
		LocationID: req.LocationID,
		Query:      req.Query,
	}

	file, err := h.exportService.Export(c.Context(), filter, req.Format)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedExportFormat) {
			return response.BadRequest(c, "Unsupported export format, use csv or pdf")
		}
		return response.InternalServerError(c, "Failed to export assets")
	}

	c.Set("Content-Type", file.ContentType)
	c.Set("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}
