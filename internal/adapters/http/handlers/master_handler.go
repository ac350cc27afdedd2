package handlers

import (
	"errors"
	"strconv"
	"strings"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/services"
	"assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MasterHandler handles master data endpoints: locations, departments,
// asset type/state enumerations and settings
type MasterHandler struct {
	locationRepo   *repositories.LocationRepository
	departmentRepo *repositories.DepartmentRepository
	settingRepo    *repositories.SettingRepository
	chartService   *services.ChartService
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(
	locationRepo *repositories.LocationRepository,
	departmentRepo *repositories.DepartmentRepository,
	settingRepo *repositories.SettingRepository,
	chartService *services.ChartService,
) *MasterHandler {
	return &MasterHandler{
		locationRepo:   locationRepo,
		departmentRepo: departmentRepo,
		settingRepo:    settingRepo,
		chartService:   chartService,
	}
}

// GetAssetTypes returns the known asset types
// @Summary List asset types
// @Tags Master
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/asset-types [get]
func (h *MasterHandler) GetAssetTypes(c *fiber.Ctx) error {
	return response.Success(c, "Asset types retrieved successfully", models.AssetTypes())
}

// GetAssetStates returns the known asset states
// @Summary List asset states
// @Tags Master
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/asset-states [get]
func (h *MasterHandler) GetAssetStates(c *fiber.Ctx) error {
	return response.Success(c, "Asset states retrieved successfully", models.AssetStates())
}

// MasterEntryRequest represents location/department create and update bodies
type MasterEntryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// ListLocations lists active locations
// @Summary List locations
// @Tags Master
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/locations [get]
func (h *MasterHandler) ListLocations(c *fiber.Ctx) error {
	var (
		locations []*models.Location
		err       error
	)
	if c.Query("all") == "true" {
		locations, err = h.locationRepo.ListAll(c.Context())
	} else {
		locations, err = h.locationRepo.List(c.Context())
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list locations")
	}
	return response.Success(c, "Locations retrieved successfully", locations)
}

// CreateLocation creates a location
// @Summary Create location
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MasterEntryRequest true "Location data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /master/locations [post]
func (h *MasterHandler) CreateLocation(c *fiber.Ctx) error {
	var req MasterEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	if _, err := h.locationRepo.GetByName(c.Context(), req.Name); err == nil {
		return response.Conflict(c, "Location already exists")
	}

	location := &models.Location{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.locationRepo.Create(c.Context(), location); err != nil {
		return response.InternalServerError(c, "Failed to create location")
	}

	return response.Created(c, "Location created successfully", location)
}

// UpdateLocation updates a location
// @Summary Update location
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Param body body MasterEntryRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/locations/{id} [put]
func (h *MasterHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	var req MasterEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	location, err := h.locationRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to get location")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		location.Name = name
	}
	if req.Description != "" {
		location.Description = req.Description
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := h.locationRepo.Update(c.Context(), location); err != nil {
		return response.InternalServerError(c, "Failed to update location")
	}

	return response.Success(c, "Location updated successfully", location)
}

// DeleteLocation soft deletes a location
// @Summary Delete location
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Location ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/locations/{id} [delete]
func (h *MasterHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid location ID")
	}

	if _, err := h.locationRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to get location")
	}

	if err := h.locationRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete location")
	}

	return response.Success(c, "Location deleted successfully", nil)
}

// ListDepartments lists active departments
// @Summary List departments
// @Tags Master
// @Produce json
// @Success 200 {object} response.Response
// @Router /master/departments [get]
func (h *MasterHandler) ListDepartments(c *fiber.Ctx) error {
	var (
		departments []*models.Department
		err         error
	)
	if c.Query("all") == "true" {
		departments, err = h.departmentRepo.ListAll(c.Context())
	} else {
		departments, err = h.departmentRepo.List(c.Context())
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}
	return response.Success(c, "Departments retrieved successfully", departments)
}

// CreateDepartment creates a department
// @Summary Create department
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MasterEntryRequest true "Department data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /master/departments [post]
func (h *MasterHandler) CreateDepartment(c *fiber.Ctx) error {
	var req MasterEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := h.departmentRepo.Create(c.Context(), department); err != nil {
		return response.InternalServerError(c, "Failed to create department")
	}

	return response.Created(c, "Department created successfully", department)
}

// UpdateDepartment updates a department
// @Summary Update department
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param body body MasterEntryRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/departments/{id} [put]
func (h *MasterHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	var req MasterEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	department, err := h.departmentRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to get department")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		department.Name = name
	}
	if req.Description != "" {
		department.Description = req.Description
	}
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}

	if err := h.departmentRepo.Update(c.Context(), department); err != nil {
		return response.InternalServerError(c, "Failed to update department")
	}

	return response.Success(c, "Department updated successfully", department)
}

// DeleteDepartment soft deletes a department
// @Summary Delete department
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/departments/{id} [delete]
func (h *MasterHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	if _, err := h.departmentRepo.GetByID(c.Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to get department")
	}

	if err := h.departmentRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete department")
	}

	return response.Success(c, "Department deleted successfully", nil)
}

// ListSettings lists all settings
// @Summary List settings
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /master/settings [get]
func (h *MasterHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.settingRepo.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list settings")
	}
	return response.Success(c, "Settings retrieved successfully", settings)
}

// SettingRequest represents a setting upsert body
type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SetSetting upserts a setting
// @Summary Set setting
// @Description Upsert a setting; changing the chart TTL drops the cached chart
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SettingRequest true "Setting"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /master/settings [put]
func (h *MasterHandler) SetSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Key == "" {
		return response.BadRequest(c, "Setting key is required")
	}

	if err := h.settingRepo.Set(c.Context(), req.Key, req.Value); err != nil {
		return response.InternalServerError(c, "Failed to save setting")
	}

	// A new TTL takes effect on the next render
	if req.Key == models.SettingChartCacheMinutes {
		h.chartService.Invalidate()
	}

	return response.Success(c, "Setting saved successfully", fiber.Map{
		"key":   req.Key,
		"value": req.Value,
	})
}
