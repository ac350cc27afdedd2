package handlers

import (
	"errors"
	"strconv"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles asset endpoints
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// assetFilterFromQuery builds the shared list/export filter
func assetFilterFromQuery(c *fiber.Ctx) *repositories.AssetFilter {
	filter := &repositories.AssetFilter{
		Type:   c.Query("type"),
		State:  c.Query("state"),
		Status: c.Query("status"),
		Query:  c.Query("q"),
	}
	if locationID := c.Query("location_id"); locationID != "" {
		if id, err := strconv.ParseUint(locationID, 10, 32); err == nil {
			uid := uint(id)
			filter.LocationID = &uid
		}
	}
	return filter
}

// CreateAssetRequest represents create asset request
type CreateAssetRequest struct {
	AssetNumber    string  `json:"asset_number"`
	Type           string  `json:"type"`
	State          string  `json:"state"`
	Status         string  `json:"status"`
	SerialNumber   string  `json:"serial_number"`
	Description    string  `json:"description"`
	PurchasePrice  float64 `json:"purchase_price"`
	PurchaseDate   string  `json:"purchase_date"`
	LocationID     *uint   `json:"location_id"`
	AssignmentType string  `json:"assignment_type"`
}

// Create creates a new asset
// @Summary Create asset
// @Description Create an asset directly, bypassing the holding area
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAssetRequest true "Asset data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var req CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Type == "" {
		return response.BadRequest(c, "Asset type is required")
	}
	if req.SerialNumber == "" {
		return response.BadRequest(c, "Serial number is required")
	}

	userID, _ := c.Locals("userID").(uint)

	input := &services.CreateAssetInput{
		AssetNumber:    req.AssetNumber,
		Type:           req.Type,
		State:          req.State,
		Status:         req.Status,
		SerialNumber:   req.SerialNumber,
		Description:    req.Description,
		PurchasePrice:  req.PurchasePrice,
		PurchaseDate:   req.PurchaseDate,
		LocationID:     req.LocationID,
		AssignmentType: req.AssignmentType,
	}

	asset, err := h.assetService.Create(c.Context(), input, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAssetType):
			return response.BadRequest(c, "Invalid asset type")
		case errors.Is(err, domain.ErrInvalidAssetState):
			return response.BadRequest(c, "Invalid asset state")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid asset data")
		case errors.Is(err, domain.ErrDuplicateAssetNumber):
			return response.Conflict(c, "Asset number already in use")
		case errors.Is(err, domain.ErrDuplicateSerialNumber):
			return response.Conflict(c, "Serial number already in use")
		default:
			return response.InternalServerError(c, "Failed to create asset")
		}
	}

	return response.Created(c, "Asset created successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// List lists assets
// @Summary List assets
// @Description List assets with filters and pagination
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param type query string false "Filter by type"
// @Param state query string false "Filter by state"
// @Param status query string false "Filter by status"
// @Param location_id query int false "Filter by location"
// @Param q query string false "Text search"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	input := &services.ListInput{
		Page:   page,
		Limit:  limit,
		Filter: assetFilterFromQuery(c),
	}

	result, err := h.assetService.List(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}

	return response.Success(c, "Assets retrieved successfully", result)
}

// GetByAssetNumber gets an asset by its number
// @Summary Get asset by number
// @Description Get a specific asset by its human-facing number
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assetNumber path string true "Asset number"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{assetNumber} [get]
func (h *AssetHandler) GetByAssetNumber(c *fiber.Ctx) error {
	assetNumber := c.Params("assetNumber")
	if assetNumber == "" {
		return response.BadRequest(c, "Asset number is required")
	}

	asset, err := h.assetService.GetByAssetNumber(c.Context(), assetNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to get asset")
	}

	return response.Success(c, "Asset retrieved successfully", fiber.Map{
		"asset": asset,
	})
}

// UpdateAssetRequest represents asset update request
type UpdateAssetRequest struct {
	Description    *string  `json:"description"`
	PurchasePrice  *float64 `json:"purchase_price"`
	LocationID     *uint    `json:"location_id"`
	Status         *string  `json:"status"`
	AssignmentType *string  `json:"assignment_type"`
	AssignedTo     *string  `json:"assigned_to"`
	EmployeeID     *string  `json:"employee_id"`
	Department     *string  `json:"department"`
}

// Update updates an asset
// @Summary Update asset
// @Description Update descriptive asset fields
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body UpdateAssetRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var req UpdateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateAssetInput{
		Description:    req.Description,
		PurchasePrice:  req.PurchasePrice,
		LocationID:     req.LocationID,
		Status:         req.Status,
		AssignmentType: req.AssignmentType,
	}
	// Assignee fields replace as a unit
	if req.AssignedTo != nil || req.EmployeeID != nil || req.Department != nil {
		assignee := &models.Assignee{}
		if req.AssignedTo != nil {
			assignee.Name = *req.AssignedTo
		}
		if req.EmployeeID != nil {
			assignee.EmployeeID = *req.EmployeeID
		}
		if req.Department != nil {
			assignee.Department = *req.Department
		}
		input.Assignee = assignee
	}

	asset, err := h.assetService.Update(c.Context(), uint(id), input)
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to update asset")
	}

	return response.Success(c, "Asset updated successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// ChangeStateRequest represents state change request
type ChangeStateRequest struct {
	State  string `json:"state"`
	Reason string `json:"reason"`
}

// ChangeState moves an asset to a new lifecycle state
// @Summary Change asset state
// @Description Move an asset to a new lifecycle state with an audit entry
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body ChangeStateRequest true "Target state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id}/state [patch]
func (h *AssetHandler) ChangeState(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var req ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.State == "" {
		return response.BadRequest(c, "State is required")
	}

	userID, _ := c.Locals("userID").(uint)

	input := &services.ChangeStateInput{
		State:  req.State,
		Reason: req.Reason,
	}

	asset, err := h.assetService.ChangeState(c.Context(), uint(id), input, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAssetState):
			return response.BadRequest(c, "Invalid asset state")
		case errors.Is(err, domain.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		default:
			return response.InternalServerError(c, "Failed to change asset state")
		}
	}

	return response.Success(c, "Asset state changed successfully", fiber.Map{
		"asset": asset.ToResponse(),
	})
}

// DisposeRequest represents dispose request
type DisposeRequest struct {
	Reason string `json:"reason"`
}

// Dispose recycles an asset
// @Summary Dispose asset
// @Description Mark an asset recycled and remove it from circulation
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [delete]
func (h *AssetHandler) Dispose(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var req DisposeRequest
	_ = c.BodyParser(&req)

	userID, _ := c.Locals("userID").(uint)

	if err := h.assetService.Dispose(c.Context(), uint(id), userID, req.Reason); err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to dispose asset")
	}

	return response.Success(c, "Asset disposed successfully", nil)
}

// GetHistory gets an asset's audit trail
// @Summary Get asset history
// @Description Get the audit trail for an asset, newest first
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id}/history [get]
func (h *AssetHandler) GetHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	history, err := h.assetService.GetHistory(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to get asset history")
	}

	return response.Success(c, "Asset history retrieved successfully", fiber.Map{
		"history": history,
	})
}
