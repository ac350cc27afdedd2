package repositories

import (
	"context"

	"assetdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LocationRepository handles location data access
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create creates a new location
func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// GetByID gets a location by ID
func (r *LocationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).First(&location, id).Error
	return &location, err
}

// GetByName gets a location by name
func (r *LocationRepository) GetByName(ctx context.Context, name string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&location).Error
	return &location, err
}

// List lists all active locations
func (r *LocationRepository) List(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&locations).Error
	return locations, err
}

// ListAll lists all locations including inactive
func (r *LocationRepository) ListAll(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

// Update updates a location
func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete soft deletes a location. Assets referencing it keep their
// location_id; the reference is never cascaded.
func (r *LocationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Location{}, id).Error
}

// Search finds locations by case-insensitive partial name match
func (r *LocationRepository) Search(ctx context.Context, query string, limit int) ([]*models.Location, error) {
	var locations []*models.Location
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&locations).Error
	return locations, err
}

// DepartmentRepository handles department data access
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

// GetByID gets a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).First(&department, id).Error
	return &department, err
}

// List lists all active departments
func (r *DepartmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&departments).Error
	return departments, err
}

// ListAll lists all departments including inactive
func (r *DepartmentRepository) ListAll(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error
	return departments, err
}

// Update updates a department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete soft deletes a department
func (r *DepartmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Department{}, id).Error
}

// SettingRepository handles settings data access
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get returns the value for key, or defaultValue when absent
func (r *SettingRepository) Get(ctx context.Context, key, defaultValue string) (string, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return defaultValue, nil
		}
		return defaultValue, err
	}
	return setting.Value, nil
}

// Set upserts a setting
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return r.db.WithContext(ctx).Create(&models.Setting{Key: key, Value: value}).Error
		}
		return err
	}
	setting.Value = value
	return r.db.WithContext(ctx).Save(&setting).Error
}

// ListAll lists all settings
func (r *SettingRepository) ListAll(ctx context.Context) ([]*models.Setting, error) {
	var settings []*models.Setting
	err := r.db.WithContext(ctx).Order("setting_key ASC").Find(&settings).Error
	return settings, err
}
