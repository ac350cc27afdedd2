package handlers

import (
	"strconv"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
	chartService  *services.ChartService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, chartService *services.ChartService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		chartService:  chartService,
	}
}

// CountsByType returns asset counts per type
// @Summary Asset counts by type
// @Description Asset counts per type, zero counts included
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/by-type [get]
func (h *ReportHandler) CountsByType(c *fiber.Ctx) error {
	counts, err := h.reportService.CountsByType(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute type counts")
	}
	return response.Success(c, "Type counts retrieved successfully", counts)
}

// CountsByState returns asset counts per state
// @Summary Asset counts by state
// @Description Asset counts per lifecycle state, zero counts included
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/by-state [get]
func (h *ReportHandler) CountsByState(c *fiber.Ctx) error {
	counts, err := h.reportService.CountsByState(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute state counts")
	}
	return response.Success(c, "State counts retrieved successfully", counts)
}

// CountsByYear returns asset counts per creation year
// @Summary Asset counts by year
// @Description Asset counts grouped by creation year, oldest first
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports/by-year [get]
func (h *ReportHandler) CountsByYear(c *fiber.Ctx) error {
	counts, err := h.reportService.CountsByYear(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute year counts")
	}
	return response.Success(c, "Year counts retrieved successfully", counts)
}

// TypeBreakdownByState returns per-type counts for one state
// @Summary Type breakdown for a state
// @Description Per-type counts restricted to one lifecycle state
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param state path string true "Lifecycle state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/by-state/{state} [get]
func (h *ReportHandler) TypeBreakdownByState(c *fiber.Ctx) error {
	state := c.Params("state")
	if !models.IsValidState(state) {
		return response.BadRequest(c, "Invalid asset state")
	}

	counts, err := h.reportService.TypeBreakdownByState(c.Context(), state)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute breakdown")
	}
	return response.Success(c, "Breakdown retrieved successfully", counts)
}

// Depreciation returns the projected value series for all assets
// @Summary Depreciation report
// @Description Year-by-year projected values for every asset
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param method query string false "straight or declining" default(straight)
// @Param years query int false "Depreciation period in years" default(4)
// @Success 200 {object} response.Response
// @Router /reports/depreciation [get]
func (h *ReportHandler) Depreciation(c *fiber.Ctx) error {
	years, _ := strconv.Atoi(c.Query("years", "4"))

	input := &services.DepreciationInput{
		Method: c.Query("method", services.DepreciationStraight),
		Years:  years,
	}

	// Optional comma-free repeated query values, e.g. ?percent=50&percent=25
	args := c.Context().QueryArgs()
	args.VisitAll(func(key, value []byte) {
		if string(key) == "percent" {
			if p, err := strconv.ParseFloat(string(value), 64); err == nil {
				input.DecliningPercents = append(input.DecliningPercents, p)
			}
		}
	})

	report, err := h.reportService.DepreciationReport(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to build depreciation report")
	}
	return response.Success(c, "Depreciation report retrieved successfully", report)
}

// ChartPNG returns the assets-by-type bar chart
// @Summary Asset chart
// @Description PNG bar chart of asset counts by type, cached server-side
// @Tags Reports
// @Produce png
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /reports/chart.png [get]
func (h *ReportHandler) ChartPNG(c *fiber.Ctx) error {
	png, err := h.chartService.ChartPNG(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to render chart")
	}

	ttl := h.chartService.TTL(c.Context())

	c.Set("Content-Type", "image/png")
	c.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(ttl.Seconds())))
	return c.Send(png)
}
