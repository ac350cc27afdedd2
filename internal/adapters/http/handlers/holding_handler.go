package handlers

import (
	"errors"
	"strconv"

	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/pagination"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HoldingHandler handles holding asset endpoints
type HoldingHandler struct {
	assetService *services.AssetService
	holdingRepo  *repositories.HoldingAssetRepository
}

// NewHoldingHandler creates a new holding asset handler
func NewHoldingHandler(assetService *services.AssetService, holdingRepo *repositories.HoldingAssetRepository) *HoldingHandler {
	return &HoldingHandler{
		assetService: assetService,
		holdingRepo:  holdingRepo,
	}
}

// List lists holding assets
// @Summary List holding assets
// @Description List assets awaiting number assignment
// @Tags Holding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /holding-assets [get]
func (h *HoldingHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	holdings, total, err := h.holdingRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list holding assets")
	}

	return response.Success(c, "Holding assets retrieved successfully",
		pagination.NewResponse(holdings, params, total))
}

// AssignRequest represents assign-from-holding request
type AssignRequest struct {
	HoldingAssetID uint   `json:"holding_asset_id"`
	AssetNumber    string `json:"asset_number"`
	Type           string `json:"type"`
}

// Assign promotes a holding asset to a full asset
// @Summary Assign asset number
// @Description Promote a holding asset to a full asset under the given number
// @Tags Holding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssignRequest true "Holding asset, number and type"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /holding-assets/assign [post]
func (h *HoldingHandler) Assign(c *fiber.Ctx) error {
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.HoldingAssetID == 0 {
		return response.BadRequest(c, "Holding asset ID is required")
	}
	if req.AssetNumber == "" {
		return response.BadRequest(c, "Asset number is required")
	}
	if req.Type == "" {
		return response.BadRequest(c, "Asset type is required")
	}

	userID, _ := c.Locals("userID").(uint)

	input := &services.AssignHoldingInput{
		HoldingAssetID: req.HoldingAssetID,
		AssetNumber:    req.AssetNumber,
		Type:           req.Type,
		UserID:         userID,
	}

	asset, err := h.assetService.AssignHoldingAsset(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Asset number is required")
		case errors.Is(err, domain.ErrInvalidAssetType):
			return response.BadRequest(c, "Invalid asset type")
		case errors.Is(err, domain.ErrHoldingAssetNotFound):
			return response.NotFound(c, "Holding asset not found")
		case errors.Is(err, domain.ErrDuplicateAssetNumber):
			return response.Conflict(c, "Asset number already in use")
		case errors.Is(err, domain.ErrDuplicateSerialNumber):
			return response.Conflict(c, "Serial number already in use")
		default:
			return response.InternalServerError(c, "Failed to assign asset number")
		}
	}

	return response.Created(c, "Asset number assigned successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// Delete removes a holding asset
// @Summary Delete holding asset
// @Description Remove a holding asset without promoting it
// @Tags Holding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Holding asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /holding-assets/{id} [delete]
func (h *HoldingHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid holding asset ID")
	}

	exists, err := h.holdingRepo.Exists(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to delete holding asset")
	}
	if !exists {
		return response.NotFound(c, "Holding asset not found")
	}

	if err := h.holdingRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete holding asset")
	}

	return response.Success(c, "Holding asset deleted successfully", nil)
}
