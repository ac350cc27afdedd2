package repositories

import (
	"context"

	"assetdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AssetFilter narrows asset list/export queries
type AssetFilter struct {
	Type       string
	State      string
	Status     string
	LocationID *uint
	Query      string
}

// AssetRepository handles asset data access
type AssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create creates a new asset
func (r *AssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// GetByID gets an asset by ID with location
func (r *AssetRepository) GetByID(ctx context.Context, id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Location").
		First(&asset, id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetByAssetNumber gets an asset by its human-facing number
func (r *AssetRepository) GetByAssetNumber(ctx context.Context, assetNumber string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("asset_number = ?", assetNumber).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func applyFilter(q *gorm.DB, filter *AssetFilter) *gorm.DB {
	if filter == nil {
		return q
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LocationID != nil {
		q = q.Where("location_id = ?", *filter.LocationID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("LOWER(asset_number) LIKE LOWER(?) OR LOWER(serial_number) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	return q
}

// List lists assets with filters and pagination
func (r *AssetRepository) List(ctx context.Context, filter *AssetFilter, offset, limit int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Asset{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Location").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&assets).Error

	return assets, total, err
}

// ListAll lists all assets matching the filter without pagination (export)
func (r *AssetRepository) ListAll(ctx context.Context, filter *AssetFilter) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Location").
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}

// Update updates an asset
func (r *AssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete soft deletes an asset
func (r *AssetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Asset{}, id).Error
}

// ExistsByAssetNumber checks if a non-deleted asset holds the number
func (r *AssetRepository) ExistsByAssetNumber(ctx context.Context, assetNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("asset_number = ?", assetNumber).
		Count(&count).Error
	return count > 0, err
}

// ExistsBySerialNumber checks if a non-deleted asset holds the serial
func (r *AssetRepository) ExistsBySerialNumber(ctx context.Context, serialNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Asset{}).
		Where("serial_number = ?", serialNumber).
		Count(&count).Error
	return count > 0, err
}

// Search finds assets by case-insensitive partial match on key text fields
func (r *AssetRepository) Search(ctx context.Context, query string, limit int) ([]*models.Asset, error) {
	var assets []*models.Asset
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("LOWER(asset_number) LIKE LOWER(?) OR LOWER(serial_number) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(assigned_to) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern).
		Limit(limit).
		Find(&assets).Error
	return assets, err
}

// AssetHistoryRepository handles audit trail data access
type AssetHistoryRepository struct {
	db *gorm.DB
}

// NewAssetHistoryRepository creates a new asset history repository
func NewAssetHistoryRepository(db *gorm.DB) *AssetHistoryRepository {
	return &AssetHistoryRepository{db: db}
}

// Create appends an audit record
func (r *AssetHistoryRepository) Create(ctx context.Context, history *models.AssetHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}

// ListByAssetID gets history rows for an asset, newest first
func (r *AssetHistoryRepository) ListByAssetID(ctx context.Context, assetID uint) ([]*models.AssetHistory, error) {
	var history []*models.AssetHistory
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}

// LatestByAssetID gets the most recent history row for an asset, if any
func (r *AssetHistoryRepository) LatestByAssetID(ctx context.Context, assetID uint) (*models.AssetHistory, error) {
	var history models.AssetHistory
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		First(&history).Error
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// Recent gets the most recent history rows across all assets
func (r *AssetHistoryRepository) Recent(ctx context.Context, limit int) ([]*models.AssetHistory, error) {
	var history []*models.AssetHistory
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Asset").
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}
