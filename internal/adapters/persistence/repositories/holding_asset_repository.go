package repositories

import (
	"context"

	"assetdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// HoldingAssetRepository handles holding asset data access
type HoldingAssetRepository struct {
	db *gorm.DB
}

// NewHoldingAssetRepository creates a new holding asset repository
func NewHoldingAssetRepository(db *gorm.DB) *HoldingAssetRepository {
	return &HoldingAssetRepository{db: db}
}

// Create creates a new holding asset
func (r *HoldingAssetRepository) Create(ctx context.Context, holding *models.HoldingAsset) error {
	return r.db.WithContext(ctx).Create(holding).Error
}

// BulkCreate inserts a batch of holding assets as a single statement.
// A failure aborts the entire batch.
func (r *HoldingAssetRepository) BulkCreate(ctx context.Context, holdings []*models.HoldingAsset) error {
	if len(holdings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&holdings).Error
}

// GetByID gets a holding asset by ID
func (r *HoldingAssetRepository) GetByID(ctx context.Context, id uint) (*models.HoldingAsset, error) {
	var holding models.HoldingAsset
	err := r.db.WithContext(ctx).
		Preload("Location").
		First(&holding, id).Error
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// List lists holding assets with pagination
func (r *HoldingAssetRepository) List(ctx context.Context, offset, limit int) ([]*models.HoldingAsset, int64, error) {
	var holdings []*models.HoldingAsset
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.HoldingAsset{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Location").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&holdings).Error

	return holdings, total, err
}

// Delete removes a holding asset
func (r *HoldingAssetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.HoldingAsset{}, id).Error
}

// Exists checks whether a holding asset row is present
func (r *HoldingAssetRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HoldingAsset{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
