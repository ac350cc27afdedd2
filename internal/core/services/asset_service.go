package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"assetdesk/internal/adapters/persistence/models"
	"assetdesk/internal/adapters/persistence/repositories"
	"assetdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ReasonAssignedFromHolding is the audit reason written when a holding
// asset is promoted to a full asset.
const ReasonAssignedFromHolding = "assigned number and moved from holding"

// AssetService handles the asset lifecycle: promotion from holding,
// state transitions, disposition. Every mutation that spans tables runs
// in a single database transaction and leaves an audit row behind.
type AssetService struct {
	db          *gorm.DB
	assetRepo   *repositories.AssetRepository
	holdingRepo *repositories.HoldingAssetRepository
	historyRepo *repositories.AssetHistoryRepository
}

// NewAssetService creates a new asset service
func NewAssetService(
	db *gorm.DB,
	assetRepo *repositories.AssetRepository,
	holdingRepo *repositories.HoldingAssetRepository,
	historyRepo *repositories.AssetHistoryRepository,
) *AssetService {
	return &AssetService{
		db:          db,
		assetRepo:   assetRepo,
		holdingRepo: holdingRepo,
		historyRepo: historyRepo,
	}
}

// historyDetails is the structured snapshot serialized into the audit row
type historyDetails struct {
	AssetNumber  string `json:"asset_number,omitempty"`
	Description  string `json:"description,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Type         string `json:"type,omitempty"`
	Status       string `json:"status,omitempty"`
}

func marshalDetails(d historyDetails) string {
	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(b)
}

// AssignHoldingInput represents assign-from-holding input
type AssignHoldingInput struct {
	HoldingAssetID uint   `json:"holding_asset_id" validate:"required"`
	AssetNumber    string `json:"asset_number" validate:"required"`
	UserID         uint   `json:"user_id"`
	Type           string `json:"type" validate:"required"`
}

// AssignHoldingAsset promotes a holding asset to a full asset under the
// given asset number. All checks run before the transaction opens, so a
// rejection leaves the store untouched; the insert/insert/delete triple
// commits atomically.
func (s *AssetService) AssignHoldingAsset(ctx context.Context, input *AssignHoldingInput) (*models.Asset, error) {
	if input.AssetNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if !models.IsValidType(input.Type) {
		return nil, domain.ErrInvalidAssetType
	}

	holding, err := s.holdingRepo.GetByID(ctx, input.HoldingAssetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHoldingAssetNotFound
		}
		return nil, err
	}

	exists, err := s.assetRepo.ExistsByAssetNumber(ctx, input.AssetNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAssetNumber
	}

	exists, err = s.assetRepo.ExistsBySerialNumber(ctx, holding.SerialNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateSerialNumber
	}

	assetNumber := input.AssetNumber
	userID := input.UserID
	now := time.Now()

	asset := &models.Asset{
		AssetNumber:    &assetNumber,
		Type:           input.Type,
		State:          models.StateAvailable,
		Status:         models.StatusStock,
		SerialNumber:   holding.SerialNumber,
		Description:    holding.Description,
		PurchasePrice:  holding.PurchasePrice,
		PurchaseDate:   holding.PurchaseDate,
		LocationID:     holding.LocationID,
		AssignmentType: holding.AssignmentType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		history := &models.AssetHistory{
			AssetID:      asset.ID,
			NewState:     models.StateAvailable,
			ChangedBy:    &userID,
			ChangeReason: ReasonAssignedFromHolding,
			Details: marshalDetails(historyDetails{
				AssetNumber:  assetNumber,
				Description:  holding.Description,
				SerialNumber: holding.SerialNumber,
				Type:         input.Type,
			}),
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		return tx.Delete(&models.HoldingAsset{}, holding.ID).Error
	})
	if err != nil {
		return nil, err
	}

	// Defensive re-check: the transaction's own delete is authoritative,
	// a surviving row is only logged.
	stillThere, checkErr := s.holdingRepo.Exists(ctx, holding.ID)
	if checkErr == nil && stillThere {
		log.Printf("⚠️ Warning: holding asset %d still present after assignment of %s", holding.ID, assetNumber)
	}

	log.Printf("✅ Holding asset %d assigned number %s", holding.ID, assetNumber)
	return asset, nil
}

// CreateAssetInput represents direct asset creation input
type CreateAssetInput struct {
	AssetNumber    string  `json:"asset_number"`
	Type           string  `json:"type" validate:"required"`
	State          string  `json:"state"`
	Status         string  `json:"status"`
	SerialNumber   string  `json:"serial_number" validate:"required"`
	Description    string  `json:"description,omitempty"`
	PurchasePrice  float64 `json:"purchase_price"`
	PurchaseDate   string  `json:"purchase_date,omitempty"`
	LocationID     *uint   `json:"location_id,omitempty"`
	AssignmentType string  `json:"assignment_type,omitempty"`
}

// Create creates an asset directly (not via holding) with the same
// uniqueness checks and a first audit row.
func (s *AssetService) Create(ctx context.Context, input *CreateAssetInput, userID uint) (*models.Asset, error) {
	if !models.IsValidType(input.Type) {
		return nil, domain.ErrInvalidAssetType
	}
	if input.SerialNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	state := input.State
	if state == "" {
		state = models.StateAvailable
	}
	if !models.IsValidState(state) {
		return nil, domain.ErrInvalidAssetState
	}

	status := input.Status
	if status == "" {
		status = models.StatusStock
	}

	assignmentType := input.AssignmentType
	if assignmentType == "" {
		assignmentType = models.AssignmentIndividual
	}

	if input.AssetNumber != "" {
		exists, err := s.assetRepo.ExistsByAssetNumber(ctx, input.AssetNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateAssetNumber
		}
	}

	exists, err := s.assetRepo.ExistsBySerialNumber(ctx, input.SerialNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateSerialNumber
	}

	asset := &models.Asset{
		Type:           input.Type,
		State:          state,
		Status:         status,
		SerialNumber:   input.SerialNumber,
		Description:    input.Description,
		PurchasePrice:  input.PurchasePrice,
		PurchaseDate:   parseDateOrNow(input.PurchaseDate),
		LocationID:     input.LocationID,
		AssignmentType: assignmentType,
	}
	if input.AssetNumber != "" {
		n := input.AssetNumber
		asset.AssetNumber = &n
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		history := &models.AssetHistory{
			AssetID:      asset.ID,
			NewState:     state,
			ChangedBy:    &userID,
			ChangeReason: "asset created",
			Details: marshalDetails(historyDetails{
				AssetNumber:  input.AssetNumber,
				Description:  input.Description,
				SerialNumber: input.SerialNumber,
				Type:         input.Type,
			}),
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// ChangeStateInput represents state change input
type ChangeStateInput struct {
	State  string `json:"state" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// ChangeState moves an asset to a new lifecycle state and records the
// transition. Any known state may follow any other; no transition table
// is enforced.
func (s *AssetService) ChangeState(ctx context.Context, assetID uint, input *ChangeStateInput, userID uint) (*models.Asset, error) {
	if !models.IsValidState(input.State) {
		return nil, domain.ErrInvalidAssetState
	}

	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	previousState := asset.State
	asset.State = input.State

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(asset).Error; err != nil {
			return err
		}

		history := &models.AssetHistory{
			AssetID:       asset.ID,
			PreviousState: &previousState,
			NewState:      input.State,
			ChangedBy:     &userID,
			ChangeReason:  input.Reason,
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// UpdateAssetInput represents asset update input
type UpdateAssetInput struct {
	Description    *string          `json:"description,omitempty"`
	PurchasePrice  *float64         `json:"purchase_price,omitempty"`
	LocationID     *uint            `json:"location_id,omitempty"`
	Status         *string          `json:"status,omitempty"`
	AssignmentType *string          `json:"assignment_type,omitempty"`
	Assignee       *models.Assignee `json:"assignee,omitempty"`
}

// Update updates descriptive asset fields
func (s *AssetService) Update(ctx context.Context, assetID uint, input *UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.PurchasePrice != nil {
		asset.PurchasePrice = *input.PurchasePrice
	}
	if input.LocationID != nil {
		asset.LocationID = input.LocationID
	}
	if input.Status != nil {
		asset.Status = *input.Status
	}
	if input.AssignmentType != nil {
		asset.AssignmentType = *input.AssignmentType
	}
	if input.Assignee != nil {
		asset.SetAssignee(*input.Assignee)
	}

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// Dispose recycles an asset: marks it recycled, soft deletes it and
// appends the final audit row, all in one transaction. Soft-deleted
// assets drop out of every search and report.
func (s *AssetService) Dispose(ctx context.Context, assetID uint, userID uint, reason string) error {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAssetNotFound
		}
		return err
	}

	previousState := asset.State
	if reason == "" {
		reason = "asset disposed"
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Asset{}).Where("id = ?", asset.ID).
			Update("status", models.StatusRecycled).Error; err != nil {
			return err
		}

		history := &models.AssetHistory{
			AssetID:       asset.ID,
			PreviousState: &previousState,
			NewState:      asset.State,
			ChangedBy:     &userID,
			ChangeReason:  reason,
			Details: marshalDetails(historyDetails{
				SerialNumber: asset.SerialNumber,
				Type:         asset.Type,
				Status:       models.StatusRecycled,
			}),
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Asset{}, asset.ID).Error
	})
}

// GetByID gets an asset by ID
func (s *AssetService) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// GetByAssetNumber resolves an asset by its number, including the
// location name and the name of whoever last touched it ("System" when
// the trail is empty or the change was unattributed).
func (s *AssetService) GetByAssetNumber(ctx context.Context, assetNumber string) (*models.AssetResponse, error) {
	asset, err := s.assetRepo.GetByAssetNumber(ctx, assetNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}

	resp := asset.ToResponse()
	resp.LastEditedBy = "System"

	latest, err := s.historyRepo.LatestByAssetID(ctx, asset.ID)
	if err == nil && latest.User != nil {
		resp.LastEditedBy = latest.User.Name
	}

	return resp, nil
}

// ListInput represents asset list input
type ListInput struct {
	Page   int
	Limit  int
	Filter *repositories.AssetFilter
}

// ListOutput represents asset list output
type ListOutput struct {
	Assets     []*models.Asset `json:"assets"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// List lists assets
func (s *AssetService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	assets, total, err := s.assetRepo.List(ctx, input.Filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListOutput{
		Assets:     assets,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetHistory gets the audit trail for an asset
func (s *AssetService) GetHistory(ctx context.Context, assetID uint) ([]*models.AssetHistory, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return s.historyRepo.ListByAssetID(ctx, assetID)
}

// parseDateOrNow parses YYYY-MM-DD, falling back to now on malformed input
func parseDateOrNow(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Now()
	}
	return t
}
